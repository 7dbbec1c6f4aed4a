package userstore

import (
	"context"

	"github.com/dalemusser/cityfix/internal/app/system/apperr"
	"github.com/dalemusser/cityfix/internal/app/system/paging"
	"github.com/dalemusser/cityfix/internal/app/system/queryspec"
	"github.com/dalemusser/cityfix/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// listProjection strips the fields that must never leave the store on a
// multi-document read.
var listProjection = bson.M{"password": 0, "nin_driver_license": 0}

// Page is one window of a list query.
type Page struct {
	Items   []models.User
	HasMore bool
}

// List runs a normalized query against the users collection. A query that
// matches nothing returns apperr.ErrNoMatch so callers can distinguish
// "empty page" from a transport failure.
func (s *Store) List(ctx context.Context, spec queryspec.Spec) (Page, error) {
	filter := withVisible(spec.Query())
	opts := options.Find().
		SetSort(spec.Sort()).
		SetSkip(spec.Skip).
		SetLimit(paging.LimitPlusOne(spec.Limit)).
		SetProjection(listProjection)

	rows, err := s.findAll(ctx, filter, opts)
	if err != nil && apperr.Retryable(err) && ctx.Err() == nil {
		// One transparent retry for idempotent reads.
		rows, err = s.findAll(ctx, filter, opts)
	}
	if err != nil {
		return Page{}, err
	}
	if len(rows) == 0 {
		return Page{}, apperr.ErrNoMatch
	}

	hasMore := paging.Trim(&rows, spec.Limit)
	return Page{Items: rows, HasMore: hasMore}, nil
}

// Count returns the total match count for a normalized query, ignoring
// paging. Used by admin dashboards, never on the hot path.
func (s *Store) Count(ctx context.Context, spec queryspec.Spec) (int64, error) {
	n, err := s.c.CountDocuments(ctx, withVisible(spec.Query()))
	if err != nil {
		return 0, apperr.FromStore(err)
	}
	return n, nil
}

func (s *Store) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer cur.Close(ctx)

	var rows []models.User
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperr.FromStore(err)
	}
	return rows, nil
}

// withVisible conjoins the soft-delete guard with a client filter.
func withVisible(q bson.M) bson.M {
	if len(q) == 0 {
		return bson.M{"is_deleted": false}
	}
	return bson.M{"$and": []bson.M{{"is_deleted": false}, q}}
}
