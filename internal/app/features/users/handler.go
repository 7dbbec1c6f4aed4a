// internal/app/features/users/handler.go
package users

import (
	referralstore "github.com/dalemusser/cityfix/internal/app/store/referrals"
	userstore "github.com/dalemusser/cityfix/internal/app/store/users"
	"github.com/dalemusser/cityfix/internal/app/system/mailer"
	"github.com/dalemusser/cityfix/internal/app/system/queryspec"
	"github.com/dalemusser/cityfix/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Config carries the per-feature settings injected at startup.
type Config struct {
	SiteName          string
	BaseURL           string
	MaxDistanceMeters float64
}

// Handler is the feature-level handler for accounts: signup, login, profile,
// directory listing, and the caller's referral view.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Users     *userstore.Store
	Referrals *referralstore.Store
	Norm      *queryspec.Normalizer
	Mail      mailer.Mailer
	Logins    *ratelimit.LoginLimiter
	Cfg       Config
}

func NewHandler(db *mongo.Database, cfg Config, norm *queryspec.Normalizer, mail mailer.Mailer, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Users:     userstore.New(db, userstore.Config{MaxDistanceMeters: cfg.MaxDistanceMeters}),
		Referrals: referralstore.New(db, cfg.BaseURL),
		Norm:      norm,
		Mail:      mail,
		Logins:    ratelimit.NewLoginLimiter(),
		Cfg:       cfg,
	}
}
