// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents consumers, CityBuilders (service providers), and marketers.
//
// NOTE:
//   - ProfileUpdated is derived: it is recomputed on every profile write from
//     State, LocalGovernment, Profession, and NINDriverLicense. It is never
//     set directly by a caller.
//   - ReferralLink is a pointer so the unique index on referral_link can be
//     sparse: only marketers carry a link.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName  string             `bson:"first_name" json:"first_name"`
	LastName   string             `bson:"last_name" json:"last_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password,omitempty" json:"-"`
	Phone      string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`

	AccountType string `bson:"account_type" json:"account_type"` // User | CityBuilder | Marketer
	Status      string `bson:"status" json:"status"`             // Active | InActive | Disabled | Pending

	Profession        string   `bson:"profession,omitempty" json:"profession,omitempty"`
	YearsOfExperience int      `bson:"years_of_experience,omitempty" json:"years_of_experience,omitempty"`
	About             string   `bson:"about,omitempty" json:"about,omitempty"`
	Location          string   `bson:"location,omitempty" json:"location,omitempty"`
	State             string   `bson:"state,omitempty" json:"state,omitempty"`
	LocalGovernment   string   `bson:"local_government,omitempty" json:"local_government,omitempty"`
	NearestBusStop    string   `bson:"nearest_bus_stop,omitempty" json:"nearest_bus_stop,omitempty"`
	NINDriverLicense  string   `bson:"nin_driver_license,omitempty" json:"-"`
	ProfileImage      string   `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	Gallery           []string `bson:"gallery,omitempty" json:"gallery,omitempty"`

	LocationCoord  *GeoPoint  `bson:"location_coord,omitempty" json:"location_coord,omitempty"`
	ProfileUpdated bool       `bson:"profile_updated" json:"profile_updated"`
	SubExpiryDate  *time.Time `bson:"sub_expiry_date,omitempty" json:"sub_expiry_date,omitempty"`

	Referrals     int64                `bson:"referrals,omitempty" json:"referrals,omitempty"`
	UsersReferred []primitive.ObjectID `bson:"users_referred,omitempty" json:"users_referred,omitempty"`
	ReferralLink  *string              `bson:"referral_link,omitempty" json:"referral_link,omitempty"`

	IsVerified bool `bson:"is_verified" json:"is_verified"`
	IsDeleted  bool `bson:"is_deleted" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// GeoPoint is a GeoJSON point as stored in Mongo 2dsphere indexes.
// Coordinates are [longitude, latitude] per the GeoJSON spec.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
}

// NewGeoPoint builds a GeoJSON point from latitude/longitude.
func NewGeoPoint(lat, lng float64, address string) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}, Address: address}
}

// Lat returns the latitude of the point, or 0 when malformed.
func (p *GeoPoint) Lat() float64 {
	if p == nil || len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Lng returns the longitude of the point, or 0 when malformed.
func (p *GeoPoint) Lng() float64 {
	if p == nil || len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

// ProfileComplete reports whether the fixed set of required profile fields is
// populated. The stored profile_updated flag must always equal this.
func (u *User) ProfileComplete() bool {
	return u.State != "" && u.LocalGovernment != "" && u.Profession != "" && u.NINDriverLicense != ""
}

// SubscriptionActive reports whether the user's subscription has not expired
// at the given instant.
func (u *User) SubscriptionActive(now time.Time) bool {
	return u.SubExpiryDate != nil && !u.SubExpiryDate.Before(now)
}
