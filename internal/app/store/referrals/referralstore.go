// Package referralstore maintains the marketer referral ledger: issuing the
// deterministic per-marketer link and crediting signups against it.
package referralstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/cityfix/internal/app/system/apperr"
	"github.com/dalemusser/cityfix/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const linkSuffix = "-referral-link"

type Store struct {
	users   *mongo.Collection
	events  *mongo.Collection
	baseURL string
}

func New(db *mongo.Database, baseURL string) *Store {
	return &Store{
		users:   db.Collection("users"),
		events:  db.Collection("referral_events"),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// referralEvent is the idempotency record written alongside each credit.
// The unique index on event_key swallows replays.
type referralEvent struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	EventKey       string             `bson:"event_key"`
	ReferrerID     primitive.ObjectID `bson:"referrer_id"`
	ReferredUserID primitive.ObjectID `bson:"referred_user_id"`
	CreatedAt      time.Time          `bson:"created_at"`
}

// Link returns the deterministic referral link for a marketer ID. The link
// never changes for a given marketer, so reissuing is harmless.
func (s *Store) Link(id primitive.ObjectID) string {
	return fmt.Sprintf("%s/marketer/%s%s", s.baseURL, id.Hex(), linkSuffix)
}

// ParseLink extracts the marketer ID from a referral link, accepting either
// the full URL or the bare "{hex}-referral-link" token.
func ParseLink(raw string) (primitive.ObjectID, bool) {
	raw = strings.TrimSpace(raw)
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		raw = raw[i+1:]
	}
	hex, ok := strings.CutSuffix(raw, linkSuffix)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// IssueLink promotes a user to marketer and stamps their referral link in
// one write. Promotion is one-way: a user who is already a marketer gets
// ErrConflict, never a second link.
func (s *Store) IssueLink(ctx context.Context, id primitive.ObjectID) (string, error) {
	link := s.Link(id)
	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": false, "account_type": bson.M{"$ne": models.AccountTypeMarketer}},
		bson.M{"$set": bson.M{
			"account_type":  models.AccountTypeMarketer,
			"referral_link": link,
			"updated_at":    time.Now(),
		}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return "", apperr.ErrConflict
		}
		return "", apperr.FromStore(err)
	}
	if res.MatchedCount == 0 {
		// Missing entirely, or already a marketer. Disambiguate.
		n, cerr := s.users.CountDocuments(ctx, bson.M{"_id": id, "is_deleted": false})
		if cerr != nil {
			return "", apperr.FromStore(cerr)
		}
		if n == 0 {
			return "", apperr.ErrNotFound
		}
		return "", apperr.ErrConflict
	}
	return link, nil
}

// Record credits a signup to the marketer: one atomic increment plus a set
// insert, guarded by the event ledger so a retried signup cannot credit
// twice. A dangling referrer is not an error; the signup stands either way.
func (s *Store) Record(ctx context.Context, referrerID, newUserID primitive.ObjectID, eventKey string) error {
	_, err := s.events.InsertOne(ctx, referralEvent{
		EventKey:       eventKey,
		ReferrerID:     referrerID,
		ReferredUserID: newUserID,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		if wafflemongo.IsDup(err) {
			// Replay of an already-credited event.
			return nil
		}
		return apperr.FromStore(err)
	}

	_, err = s.users.UpdateOne(ctx,
		bson.M{"_id": referrerID, "account_type": models.AccountTypeMarketer},
		bson.M{
			"$inc":      bson.M{"referrals": 1},
			"$addToSet": bson.M{"users_referred": newUserID},
			"$set":      bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return apperr.FromStore(err)
	}
	return nil
}

// PruneEventsBefore deletes ledger entries older than the cutoff. The ledger
// only guards against near-term signup retries, so old entries are dead
// weight. Returns the number of events removed.
func (s *Store) PruneEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.events.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, apperr.FromStore(err)
	}
	return res.DeletedCount, nil
}

// ReferredUsers returns the accounts credited to a marketer, newest first.
func (s *Store) ReferredUsers(ctx context.Context, marketerID primitive.ObjectID) ([]models.User, error) {
	var m models.User
	err := s.users.FindOne(ctx,
		bson.M{"_id": marketerID, "account_type": models.AccountTypeMarketer, "is_deleted": false},
		options.FindOne().SetProjection(bson.M{"users_referred": 1})).Decode(&m)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	if len(m.UsersReferred) == 0 {
		return nil, nil
	}

	cur, err := s.users.Find(ctx,
		bson.M{"_id": bson.M{"$in": m.UsersReferred}, "is_deleted": false},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
			SetProjection(bson.M{"password": 0, "nin_driver_license": 0}))
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
