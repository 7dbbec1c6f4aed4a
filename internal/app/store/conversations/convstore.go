// Package convstore persists conversations. A conversation is identified by
// its participant pair, stored in canonical order so there is exactly one
// document per pair regardless of who opened it.
package convstore

import (
	"context"
	"time"

	"github.com/dalemusser/cityfix/internal/app/system/apperr"
	"github.com/dalemusser/cityfix/internal/app/system/paging"
	"github.com/dalemusser/cityfix/internal/app/system/queryspec"
	"github.com/dalemusser/cityfix/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("conversations")}
}

// CanonicalPair orders two participant IDs so (a,b) and (b,a) map to the
// same pair. ObjectIDs compare bytewise via their hex form.
func CanonicalPair(a, b primitive.ObjectID) (primitive.ObjectID, primitive.ObjectID) {
	if a.Hex() > b.Hex() {
		return b, a
	}
	return a, b
}

// Upsert finds or creates the conversation between two participants and
// bumps its activity stamp. The unique pair index makes concurrent upserts
// for the same pair converge on one document.
func (s *Store) Upsert(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	if a == b {
		return nil, apperr.Validation("cannot open a conversation with yourself")
	}
	one, two := CanonicalPair(a, b)
	now := time.Now()

	var conv models.Conversation
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"entity_one": one, "entity_two": two},
		bson.M{
			"$setOnInsert": bson.M{
				"entity_one": one,
				"entity_two": two,
				"status":     models.ConversationNotViewed,
				"created_at": now,
			},
			"$set": bson.M{"last_activity_at": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&conv)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return &conv, nil
}

// Get loads a conversation the caller participates in.
func (s *Store) Get(ctx context.Context, id, callerID primitive.ObjectID) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.c.FindOne(ctx, bson.M{"_id": id, "$or": participantOr(callerID)}).Decode(&conv)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return &conv, nil
}

// Page is one window of a conversation listing.
type Page struct {
	Items   []models.Conversation
	HasMore bool
}

// ListForParticipant returns the caller's conversations per the normalized
// spec (most recently active first by default). An empty inbox is a normal
// outcome and returns an empty page, not an error.
func (s *Store) ListForParticipant(ctx context.Context, userID primitive.ObjectID, spec queryspec.Spec) (Page, error) {
	filter := bson.M{"$or": participantOr(userID)}

	opts := options.Find().
		SetSort(spec.Sort()).
		SetSkip(spec.Skip).
		SetLimit(paging.LimitPlusOne(spec.Limit))

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return Page{}, apperr.FromStore(err)
	}
	defer cur.Close(ctx)

	var rows []models.Conversation
	if err := cur.All(ctx, &rows); err != nil {
		return Page{}, apperr.FromStore(err)
	}

	hasMore := paging.Trim(&rows, spec.Limit)
	return Page{Items: rows, HasMore: hasMore}, nil
}

// MarkViewed flips the conversation to viewed. Only a participant may do it.
func (s *Store) MarkViewed(ctx context.Context, id, callerID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "$or": participantOr(callerID)},
		bson.M{"$set": bson.M{"status": models.ConversationViewed}})
	if err != nil {
		return apperr.FromStore(err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Touch records new activity: the conversation becomes unread again and
// moves to the top of both inboxes.
func (s *Store) Touch(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": models.ConversationNotViewed, "last_activity_at": at}})
	if err != nil {
		return apperr.FromStore(err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func participantOr(id primitive.ObjectID) []bson.M {
	return []bson.M{{"entity_one": id}, {"entity_two": id}}
}
