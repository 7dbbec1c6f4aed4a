// internal/domain/models/roles.go
package models

// Account types. CityBuilder is the provider role eligible for geo matching;
// Marketer is the only role that can hold a referral link. Admin accounts are
// created out of band and can promote users to marketers.
const (
	AccountTypeUser        = "User"
	AccountTypeCityBuilder = "CityBuilder"
	AccountTypeMarketer    = "Marketer"
	AccountTypeAdmin       = "Admin"
)

// Account statuses.
const (
	StatusActive   = "Active"
	StatusInActive = "InActive"
	StatusDisabled = "Disabled"
	StatusPending  = "Pending"
)

// ValidAccountType reports whether t is a known account type.
func ValidAccountType(t string) bool {
	switch t {
	case AccountTypeUser, AccountTypeCityBuilder, AccountTypeMarketer, AccountTypeAdmin:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known account status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInActive, StatusDisabled, StatusPending:
		return true
	}
	return false
}
