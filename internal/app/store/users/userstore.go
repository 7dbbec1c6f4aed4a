package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/cityfix/internal/app/system/apperr"
	"github.com/dalemusser/cityfix/internal/app/system/normalize"
	"github.com/dalemusser/cityfix/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultMaxDistanceMeters is the matching ceiling applied when the config
// leaves it unset. It is deliberately enormous (an entire country and then
// some) so distance ranks results rather than excluding them.
const DefaultMaxDistanceMeters = 16_000_000

// Config carries the tunables injected at construction.
type Config struct {
	MaxDistanceMeters float64
}

type Store struct {
	c           *mongo.Collection
	maxDistance float64
}

func New(db *mongo.Database, cfg Config) *Store {
	max := cfg.MaxDistanceMeters
	if max <= 0 {
		max = DefaultMaxDistanceMeters
	}
	return &Store{c: db.Collection("users"), maxDistance: max}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadAccountType = errors.New(`account_type must be "User"|"CityBuilder"|"Marketer"`)
	errBadStatus      = errors.New(`status must be "Active"|"InActive"|"Disabled"|"Pending"`)
)

// Create inserts a new user after normalizing & validating fields. The
// password must already be hashed by the caller.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FirstName = normalize.Name(u.FirstName)
	u.LastName = normalize.Name(u.LastName)
	u.FullNameCI = text.Fold(u.FirstName + " " + u.LastName)
	u.Email = normalize.Email(u.Email)
	u.Phone = normalize.Phone(u.Phone)
	if u.AccountType == "" {
		u.AccountType = models.AccountTypeUser
	}
	if u.Status == "" {
		u.Status = models.StatusActive
	}

	if !models.ValidAccountType(u.AccountType) {
		return models.User{}, errBadAccountType
	}
	if !models.ValidStatus(u.Status) {
		return models.User{}, errBadStatus
	}

	// The stored flag is derived, never caller-supplied.
	u.ProfileUpdated = u.ProfileComplete()

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, apperr.FromStore(err)
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&u); err != nil {
		return nil, apperr.FromStore(err)
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. The password hash is
// included; this is the login path.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email), "is_deleted": false}).Decode(&u); err != nil {
		return nil, apperr.FromStore(err)
	}
	return &u, nil
}

// ProfileUpdate holds the profile fields a signed-in user may change.
// Everything is overwritten as a unit; callers send the full profile.
type ProfileUpdate struct {
	Profession        string
	YearsOfExperience int
	About             string
	Location          string
	State             string
	LocalGovernment   string
	NearestBusStop    string
	NINDriverLicense  string
	ProfileImage      string
	Gallery           []string
	LocationCoord     *models.GeoPoint
}

// UpdateProfile overwrites the profile fields and recomputes profile_updated
// in the same atomic write, so the derived flag can never drift from the
// fields it is derived from.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	set := bson.M{
		"profession":          normalize.Name(upd.Profession),
		"years_of_experience": upd.YearsOfExperience,
		"about":               upd.About,
		"location":            normalize.Name(upd.Location),
		"state":               normalize.Name(upd.State),
		"local_government":    normalize.Name(upd.LocalGovernment),
		"nearest_bus_stop":    normalize.Name(upd.NearestBusStop),
		"nin_driver_license":  normalize.Name(upd.NINDriverLicense),
		"profile_image":       upd.ProfileImage,
		"gallery":             upd.Gallery,
		"updated_at":          time.Now(),
	}
	if upd.LocationCoord != nil {
		set["location_coord"] = upd.LocationCoord
	}

	// Pipeline update: the second stage reads the fields the first stage
	// just wrote, so the recomputation sees the new values.
	pipe := mongo.Pipeline{
		{{Key: "$set", Value: set}},
		{{Key: "$set", Value: bson.M{"profile_updated": profileCompleteExpr()}}},
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "is_deleted": false}, pipe)
	if err != nil {
		return apperr.FromStore(err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// profileCompleteExpr is the aggregation-side mirror of models.User.ProfileComplete.
func profileCompleteExpr() bson.M {
	nonEmpty := func(field string) bson.M {
		return bson.M{"$ne": bson.A{bson.M{"$ifNull": bson.A{"$" + field, ""}}, ""}}
	}
	return bson.M{"$and": bson.A{
		nonEmpty("state"),
		nonEmpty("local_government"),
		nonEmpty("profession"),
		nonEmpty("nin_driver_license"),
	}}
}

// ChangePassword replaces the stored hash. The caller verifies the old
// password and hashes the new one.
func (s *Store) ChangePassword(ctx context.Context, id primitive.ObjectID, newHash string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"password": newHash, "updated_at": time.Now()}})
	if err != nil {
		return apperr.FromStore(err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// SetSubscriptionExpiry stamps the boosted-visibility window for a provider.
func (s *Store) SetSubscriptionExpiry(ctx context.Context, id primitive.ObjectID, expiry time.Time) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"sub_expiry_date": expiry, "updated_at": time.Now()}})
	if err != nil {
		return apperr.FromStore(err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// SoftDelete hides the account from every read path without destroying the
// record (referral ledgers may still point at it).
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "status": models.StatusDisabled, "updated_at": time.Now()}})
	if err != nil {
		return apperr.FromStore(err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
