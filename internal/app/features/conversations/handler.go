// internal/app/features/conversations/handler.go
package conversations

import (
	convstore "github.com/dalemusser/cityfix/internal/app/store/conversations"
	msgstore "github.com/dalemusser/cityfix/internal/app/store/messages"
	"github.com/dalemusser/cityfix/internal/app/system/queryspec"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the messaging surface: one conversation per participant
// pair, plus the messages inside it.
type Handler struct {
	Log      *zap.Logger
	Convs    *convstore.Store
	Messages *msgstore.Store
	Norm     *queryspec.Normalizer
}

func NewHandler(db *mongo.Database, norm *queryspec.Normalizer, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		Convs:    convstore.New(db),
		Messages: msgstore.New(db),
		Norm:     norm,
	}
}
