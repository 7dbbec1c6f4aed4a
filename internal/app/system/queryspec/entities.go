// internal/app/system/queryspec/entities.go
package queryspec

// Canonical entity definitions. Field names are the bson field names of the
// models package; anything not listed here is rejected at normalization.

// Users returns the allow-list for the users collection. The search fields
// are the fixed set the marketplace fans free text over: profession,
// location, first name, last name, and email.
func Users() Entity {
	return Entity{
		Name:        "users",
		DefaultSort: "created_at",
		SortFields: []string{
			"created_at", "full_name_ci", "email", "referrals", "years_of_experience",
		},
		ExactFields: []string{
			"account_type", "status", "state", "local_government",
		},
		PatternFields: []string{
			"profession", "location", "first_name", "last_name", "email", "nearest_bus_stop",
		},
		SearchFields: []string{
			"profession", "location", "first_name", "last_name", "email",
		},
	}
}

// Conversations returns the allow-list for the conversations collection.
// Conversations are listed most-recently-active first and carry no
// client-facing field filters.
func Conversations() Entity {
	return Entity{
		Name:        "conversations",
		DefaultSort: "-last_activity_at",
		SortFields:  []string{"last_activity_at", "created_at"},
	}
}
