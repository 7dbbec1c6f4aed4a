// internal/domain/models/conversation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation statuses. A conversation moves not-viewed -> viewed when read,
// and any new message activity resets it to not-viewed.
const (
	ConversationNotViewed = "not-viewed"
	ConversationViewed    = "viewed"
)

// Conversation is the single thread between an unordered pair of users.
//
// EntityOne/EntityTwo hold the canonical ordering of the pair (EntityOne is
// always the lesser ObjectID), so (A,B) and (B,A) resolve to the same
// document and the unique index on the pair can hold.
type Conversation struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EntityOne      primitive.ObjectID `bson:"entity_one" json:"entity_one"`
	EntityTwo      primitive.ObjectID `bson:"entity_two" json:"entity_two"`
	Status         string             `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	LastActivityAt time.Time          `bson:"last_activity_at" json:"last_activity_at"`
}

// Message is a single message inside a conversation.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID primitive.ObjectID `bson:"conversation_id" json:"conversation_id"`
	SenderID       primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	RecipientID    primitive.ObjectID `bson:"recipient_id" json:"recipient_id"`
	Body           string             `bson:"body" json:"body"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
