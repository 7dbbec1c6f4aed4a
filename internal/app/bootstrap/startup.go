// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	referralstore "github.com/dalemusser/cityfix/internal/app/store/referrals"
	"github.com/dalemusser/cityfix/internal/app/system/authutil"
	"github.com/dalemusser/cityfix/internal/app/system/normalize"
	"github.com/dalemusser/cityfix/internal/app/system/workers"
	"github.com/dalemusser/cityfix/internal/domain/models"
)

// referralPrune runs for the life of the process; Shutdown stops it.
var referralPrune *workers.ReferralPrune

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, appCfg.AdminPassword, logger); err != nil {
			return err
		}
	}

	refStore := referralstore.New(deps.MongoDatabase, appCfg.BaseURL)
	referralPrune = workers.NewReferralPrune(refStore, logger, time.Hour, 90*24*time.Hour)
	referralPrune.Start()

	return nil
}

// ensureAdmin guarantees an Admin account exists for the configured email.
// An existing account is promoted in place; a missing one is created with
// the configured password.
func ensureAdmin(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	users := deps.MongoDatabase.Collection("users")
	email = normalize.Email(email)

	var existing models.User
	err := users.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	switch {
	case err == nil:
		if existing.AccountType == models.AccountTypeAdmin {
			return nil
		}
		_, err = users.UpdateOne(ctx,
			bson.M{"_id": existing.ID},
			bson.M{"$set": bson.M{"account_type": models.AccountTypeAdmin, "updated_at": time.Now()}})
		if err != nil {
			return err
		}
		logger.Info("promoted existing user to admin", zap.String("email", email))
		return nil

	case err == mongo.ErrNoDocuments:
		if password == "" {
			logger.Warn("admin_email set but admin_password empty; skipping admin bootstrap",
				zap.String("email", email))
			return nil
		}
		hash, err := authutil.HashPassword(password)
		if err != nil {
			return err
		}
		now := time.Now()
		_, err = users.InsertOne(ctx, models.User{
			ID:          primitive.NewObjectID(),
			FirstName:   "CityFix",
			LastName:    "Admin",
			FullNameCI:  text.Fold("CityFix Admin"),
			Email:       email,
			Password:    hash,
			AccountType: models.AccountTypeAdmin,
			Status:      models.StatusActive,
			IsVerified:  true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}
		logger.Info("created bootstrap admin", zap.String("email", email))
		return nil

	default:
		return err
	}
}
