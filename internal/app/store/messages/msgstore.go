package msgstore

import (
	"context"
	"time"

	"github.com/dalemusser/cityfix/internal/app/system/apperr"
	"github.com/dalemusser/cityfix/internal/app/system/paging"
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
	return &Store{c: db.Collection("messages")}
}

// Append inserts a message. The caller bumps the parent conversation.
func (s *Store) Append(ctx context.Context, m models.Message) (models.Message, error) {
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now()
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Message{}, apperr.FromStore(err)
	}
	return m, nil
}

// ListForConversation returns messages oldest first, with the usual
// look-ahead paging.
func (s *Store) ListForConversation(ctx context.Context, convID primitive.ObjectID, skip, limit int64) ([]models.Message, bool, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(paging.LimitPlusOne(limit))

	cur, err := s.c.Find(ctx, bson.M{"conversation_id": convID}, opts)
	if err != nil {
		return nil, false, apperr.FromStore(err)
	}
	defer cur.Close(ctx)

	var rows []models.Message
	if err := cur.All(ctx, &rows); err != nil {
		return nil, false, apperr.FromStore(err)
	}

	hasMore := paging.Trim(&rows, limit)
	return rows, hasMore, nil
}
