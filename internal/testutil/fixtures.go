package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/cityfix/internal/app/system/normalize"
	"github.com/dalemusser/cityfix/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insertUser(ctx context.Context, u models.User) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.FullNameCI = text.Fold(u.FirstName + " " + u.LastName)
	if u.Status == "" {
		u.Status = models.StatusActive
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("insert fixture user: %v", err)
	}
	return u
}

// CreateUser creates a plain consumer account.
func (f *Fixtures) CreateUser(ctx context.Context, firstName, email string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, models.User{
		FirstName:   firstName,
		LastName:    "Test",
		Email:       email,
		Password:    "$2a$12$fixturefixturefixturefixturefix", // never verified
		AccountType: models.AccountTypeUser,
	})
}

// CreateProvider creates a CityBuilder at the given coordinates. The
// profile fields are filled so profile_updated holds; pass subExpiry nil
// for a provider without an active subscription.
func (f *Fixtures) CreateProvider(ctx context.Context, firstName, email, profession string, lat, lng float64, subExpiry *time.Time) models.User {
	f.t.Helper()
	return f.insertUser(ctx, models.User{
		FirstName:        firstName,
		LastName:         "Test",
		Email:            email,
		Password:         "$2a$12$fixturefixturefixturefixturefix",
		AccountType:      models.AccountTypeCityBuilder,
		Profession:       profession,
		State:            "Lagos",
		LocalGovernment:  "Ikeja",
		NINDriverLicense: "A1234567",
		LocationCoord:    models.NewGeoPoint(lat, lng, "fixture address"),
		ProfileUpdated:   true,
		SubExpiryDate:    subExpiry,
	})
}

// CreateMarketer creates a marketer with a stamped referral link.
func (f *Fixtures) CreateMarketer(ctx context.Context, firstName, email, link string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, models.User{
		FirstName:    firstName,
		LastName:     "Test",
		Email:        email,
		Password:     "$2a$12$fixturefixturefixturefixturefix",
		AccountType:  models.AccountTypeMarketer,
		ReferralLink: &link,
	})
}

// CreateAdmin creates an admin account.
func (f *Fixtures) CreateAdmin(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, models.User{
		FirstName:   "Admin",
		LastName:    "Test",
		Email:       email,
		Password:    "$2a$12$fixturefixturefixturefixturefix",
		AccountType: models.AccountTypeAdmin,
	})
}

// CreateConversation creates a conversation between two users in canonical
// pair order.
func (f *Fixtures) CreateConversation(ctx context.Context, a, b primitive.ObjectID) models.Conversation {
	f.t.Helper()
	if a.Hex() > b.Hex() {
		a, b = b, a
	}
	now := time.Now().UTC()
	conv := models.Conversation{
		ID:             primitive.NewObjectID(),
		EntityOne:      a,
		EntityTwo:      b,
		Status:         models.ConversationNotViewed,
		CreatedAt:      now,
		LastActivityAt: now,
	}
	if _, err := f.db.Collection("conversations").InsertOne(ctx, conv); err != nil {
		f.t.Fatalf("insert fixture conversation: %v", err)
	}
	return conv
}
