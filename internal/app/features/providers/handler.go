// internal/app/features/providers/handler.go
package providers

import (
	userstore "github.com/dalemusser/cityfix/internal/app/store/users"
	"github.com/dalemusser/cityfix/internal/app/system/queryspec"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the provider matching endpoint: distance-ranked
// CityBuilders around a caller-supplied point.
type Handler struct {
	Log   *zap.Logger
	Users *userstore.Store
	Norm  *queryspec.Normalizer
}

func NewHandler(db *mongo.Database, cfg userstore.Config, norm *queryspec.Normalizer, logger *zap.Logger) *Handler {
	return &Handler{
		Log:   logger,
		Users: userstore.New(db, cfg),
		Norm:  norm,
	}
}
