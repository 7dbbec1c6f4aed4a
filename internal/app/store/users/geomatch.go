package userstore

import (
	"context"
	"time"

	"github.com/dalemusser/cityfix/internal/app/system/apperr"
	"github.com/dalemusser/cityfix/internal/app/system/geo"
	"github.com/dalemusser/cityfix/internal/app/system/paging"
	"github.com/dalemusser/cityfix/internal/app/system/queryspec"
	"github.com/dalemusser/cityfix/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GeoQuery bundles a normalized attribute filter with the caller's position.
type GeoQuery struct {
	queryspec.Spec

	Lat float64
	Lng float64

	// Boost restricts results to providers with an unexpired subscription.
	Boost bool
}

// GeoResult is a matched provider plus the computed distance in meters.
type GeoResult struct {
	models.User `bson:",inline"`
	Distance    float64 `bson:"distance" json:"distance"`
}

// GeoMatch finds complete-profile providers near a point, closest first.
// Attribute filters from the Spec are applied after the distance stage.
// Paging follows the same look-ahead contract as List.
func (s *Store) GeoMatch(ctx context.Context, q GeoQuery) ([]GeoResult, bool, error) {
	if err := geo.ValidateCoords(q.Lat, q.Lng); err != nil {
		return nil, false, err
	}

	// Client filters first, then the forced predicates so a client can
	// never widen the provider pool past them.
	match := bson.M{}
	for k, v := range q.Filter {
		match[k] = v
	}
	match["account_type"] = models.AccountTypeCityBuilder
	match["profile_updated"] = true
	match["is_deleted"] = false
	if q.Boost {
		match["sub_expiry_date"] = bson.M{"$gte": time.Now()}
	}

	matchDoc := match
	if len(q.Or) > 0 {
		matchDoc = bson.M{"$and": []bson.M{match, {"$or": q.Or}}}
	}

	// Distance is always the primary key; the requested sort and _id
	// break ties between equidistant providers.
	dir := 1
	if !q.SortAsc {
		dir = -1
	}
	sort := bson.D{{Key: "distance", Value: 1}}
	if q.SortField != "" && q.SortField != "distance" {
		sort = append(sort, bson.E{Key: q.SortField, Value: dir})
	}
	sort = append(sort, bson.E{Key: "_id", Value: dir})

	pipe := mongo.Pipeline{
		// $geoNear must be the first stage; it both filters by the
		// distance ceiling and emits the computed distance.
		{{Key: "$geoNear", Value: bson.M{
			"near":          bson.M{"type": "Point", "coordinates": []float64{q.Lng, q.Lat}},
			"key":           "location_coord",
			"distanceField": "distance",
			"maxDistance":   s.maxDistance,
			"spherical":     true,
		}}},
		{{Key: "$match", Value: matchDoc}},
		{{Key: "$sort", Value: sort}},
		{{Key: "$skip", Value: q.Skip}},
		{{Key: "$limit", Value: paging.LimitPlusOne(q.Limit)}},
		{{Key: "$project", Value: listProjection}},
	}

	rows, err := s.aggregateGeo(ctx, pipe)
	if err != nil && apperr.Retryable(err) && ctx.Err() == nil {
		rows, err = s.aggregateGeo(ctx, pipe)
	}
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, apperr.ErrNoMatch
	}

	hasMore := paging.Trim(&rows, q.Limit)
	return rows, hasMore, nil
}

func (s *Store) aggregateGeo(ctx context.Context, pipe mongo.Pipeline) ([]GeoResult, error) {
	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer cur.Close(ctx)

	var rows []GeoResult
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperr.FromStore(err)
	}
	return rows, nil
}
