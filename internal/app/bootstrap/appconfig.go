// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging,
// CORS, body limits). AppConfig is everything specific to CityFix: database
// connection details, session settings, mail relay, and the matching and
// paging tunables.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// Email/SMTP configuration. A blank host selects the log mailer.
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string

	// Base URL used in referral links and email links.
	BaseURL string

	// Display name used in outbound email.
	SiteName string

	// Query paging bounds applied to every list endpoint.
	DefaultPageSize int64
	MaxPageSize     int64

	// Geo matching ceiling in meters.
	GeoMaxDistanceMeters float64

	// Admin bootstrap: when both are set, Startup guarantees an Admin
	// account with these credentials exists.
	AdminEmail    string
	AdminPassword string
}
