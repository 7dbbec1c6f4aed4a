// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CityFix.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_key, etc.
//   - Environment variables: CITYFIX_MONGO_URI, CITYFIX_SESSION_KEY, etc.
//   - Command-line flags: --mongo_uri, --session_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "cityfix", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank logs mail instead of sending)"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@cityfix.app", Desc: "From email address"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for referral and email links"},
	{Name: "site_name", Default: "CityFix", Desc: "Display name used in outbound email"},

	// Paging bounds for list endpoints
	{Name: "default_page_size", Default: 20, Desc: "Default page size for list endpoints"},
	{Name: "max_page_size", Default: 100, Desc: "Maximum page size a client may request"},

	// Geo matching
	{Name: "geo_max_distance_meters", Default: 16_000_000, Desc: "Distance ceiling for provider matching, in meters"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the bootstrap admin account (created/promoted on startup)"},
	{Name: "admin_password", Default: "", Desc: "Password for the bootstrap admin account (only used on create)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, CITYFIX_* for app), and
// command-line flags, merged with precedence: flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CITYFIX", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionDomain: appValues.String("session_domain"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),

		BaseURL:  appValues.String("base_url"),
		SiteName: appValues.String("site_name"),

		DefaultPageSize: int64(appValues.Int("default_page_size")),
		MaxPageSize:     int64(appValues.Int("max_page_size")),

		GeoMaxDistanceMeters: float64(appValues.Int("geo_max_distance_meters")),

		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation. Return nil to
// accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.DefaultPageSize < 1 || appCfg.MaxPageSize < appCfg.DefaultPageSize {
		return fmt.Errorf("page sizes out of order: default %d, max %d",
			appCfg.DefaultPageSize, appCfg.MaxPageSize)
	}
	if appCfg.GeoMaxDistanceMeters <= 0 {
		return fmt.Errorf("geo_max_distance_meters must be positive")
	}
	if coreCfg.Env == "prod" && appCfg.AdminPassword != "" && len(appCfg.AdminPassword) < 12 {
		return fmt.Errorf("admin_password must be at least 12 characters in production")
	}
	return nil
}
