// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	conversationsfeature "github.com/dalemusser/cityfix/internal/app/features/conversations"
	healthfeature "github.com/dalemusser/cityfix/internal/app/features/health"
	marketersfeature "github.com/dalemusser/cityfix/internal/app/features/marketers"
	providersfeature "github.com/dalemusser/cityfix/internal/app/features/providers"
	usersfeature "github.com/dalemusser/cityfix/internal/app/features/users"
	userstore "github.com/dalemusser/cityfix/internal/app/store/users"
	"github.com/dalemusser/cityfix/internal/app/system/auth"
	"github.com/dalemusser/cityfix/internal/app/system/mailer"
	"github.com/dalemusser/cityfix/internal/app/system/queryspec"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. It builds the session store, the one normalizer
// instance every list endpoint shares, the mailer, and the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies in production mode only.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	norm := queryspec.New(
		queryspec.Config{
			DefaultLimit: appCfg.DefaultPageSize,
			MaxLimit:     appCfg.MaxPageSize,
		},
		queryspec.Users(),
		queryspec.Conversations(),
	)

	var mail mailer.Mailer
	if appCfg.MailSMTPHost != "" {
		mail = &mailer.SMTPMailer{
			Host:     appCfg.MailSMTPHost,
			Port:     appCfg.MailSMTPPort,
			Username: appCfg.MailSMTPUser,
			Password: appCfg.MailSMTPPass,
			From:     appCfg.MailFrom,
		}
	} else {
		mail = &mailer.LogMailer{Log: logger}
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Accounts: signup, login, profile, directory, referral view
	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, usersfeature.Config{
		SiteName:          appCfg.SiteName,
		BaseURL:           appCfg.BaseURL,
		MaxDistanceMeters: appCfg.GeoMaxDistanceMeters,
	}, norm, mail, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	// Provider matching
	providersHandler := providersfeature.NewHandler(deps.MongoDatabase,
		userstore.Config{MaxDistanceMeters: appCfg.GeoMaxDistanceMeters}, norm, logger)
	r.Mount("/providers", providersfeature.Routes(providersHandler))

	// Messaging
	convHandler := conversationsfeature.NewHandler(deps.MongoDatabase, norm, logger)
	r.Mount("/conversations", conversationsfeature.Routes(convHandler))

	// Marketer administration
	marketersHandler := marketersfeature.NewHandler(deps.MongoDatabase, appCfg.BaseURL, logger)
	r.Mount("/marketers", marketersfeature.Routes(marketersHandler))

	return r, nil
}
