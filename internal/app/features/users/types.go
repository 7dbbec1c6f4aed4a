// internal/app/features/users/types.go
package users

import "github.com/dalemusser/cityfix/internal/domain/models"

type signupRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone_number"`
	AccountType  string `json:"account_type"`
	ReferralLink string `json:"referral_link"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Profession        string   `json:"profession"`
	YearsOfExperience int      `json:"years_of_experience"`
	About             string   `json:"about"`
	Location          string   `json:"location"`
	State             string   `json:"state"`
	LocalGovernment   string   `json:"local_government"`
	NearestBusStop    string   `json:"nearest_bus_stop"`
	NINDriverLicense  string   `json:"nin_driver_license"`
	ProfileImage      string   `json:"profile_image"`
	Gallery           []string `json:"gallery"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type listResponse struct {
	Items   []models.User `json:"items"`
	HasMore bool          `json:"has_more"`
}

type referralsResponse struct {
	ReferralLink string        `json:"referral_link,omitempty"`
	Referrals    int64         `json:"referrals"`
	Users        []models.User `json:"users"`
}
