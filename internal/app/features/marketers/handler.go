// internal/app/features/marketers/handler.go
package marketers

import (
	referralstore "github.com/dalemusser/cityfix/internal/app/store/referrals"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the admin-only marketer operations.
type Handler struct {
	Log       *zap.Logger
	Referrals *referralstore.Store
}

func NewHandler(db *mongo.Database, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:       logger,
		Referrals: referralstore.New(db, baseURL),
	}
}
