package router

import (
	"github.com/oksasatya/ornakala-backend/internal/application"
	"github.com/oksasatya/ornakala-backend/internal/container"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
	pginfra "github.com/oksasatya/ornakala-backend/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/ornakala-backend/internal/interface/http"
	"github.com/oksasatya/ornakala-backend/internal/router/modules"
	"github.com/oksasatya/ornakala-backend/pkg/helpers"
)

// Deps is everything the HTTP modules need. Build it from the container with
// BuildDeps, or by hand in tests with in-memory repositories.
type Deps struct {
	Users    repo.UserRepository
	KYC      repo.KYCRepository
	Denylist repo.TokenDenylist
	Audit    handlers.AuditRecorder
}

type ModuleDeps struct {
	Gate        *application.AuthGate
	AuthHandler *handlers.AuthHandler
	UserHandler *handlers.UserHandler
	KYCHandler  *handlers.KYCHandler
}

// BuildDeps wires the gorm repositories and optional infrastructure from the container.
func BuildDeps() Deps {
	return Deps{
		Users:    pginfra.NewUserRepository(container.GetDB()),
		KYC:      pginfra.NewKYCRepository(container.GetDB()),
		Denylist: container.GetDenylist(),
		Audit:    pginfra.NewAuditLog(container.GetPGPool(), container.GetLogger()),
	}
}

func buildModuleDeps(d Deps) ModuleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()
	hasher := container.GetHasher()

	var pub application.JobPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	notifier := application.NewNotifier(pub, cfg, logger)

	gate := application.NewAuthGate(d.Users, jwt, d.Denylist, logger)
	users := application.NewUserService(d.Users, logger, container.GetES(), cfg.ESUsersIndex, notifier)
	kyc := application.NewKYCService(d.KYC, container.GetGCS(), cfg.GCSBucket, notifier, logger)

	auth := handlers.NewAuthHandler(
		application.NewSignupService(d.Users, hasher, logger),
		application.NewLoginService(d.Users, hasher, jwt, logger),
		application.NewPasswordResetService(d.Users, hasher, jwt, d.Denylist, logger),
		gate,
		users,
		notifier,
		d.Audit,
		helpers.NewAuthCookies(cfg.CookieDomain, cfg.CookieSecure),
		logger,
	)

	return ModuleDeps{
		Gate:        gate,
		AuthHandler: auth,
		UserHandler: handlers.NewUserHandler(users, logger),
		KYCHandler:  handlers.NewKYCHandler(kyc, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, d Deps) {
	md := buildModuleDeps(d)
	r.Add(modules.NewAuthModule(md.AuthHandler, md.Gate))
	r.Add(modules.NewUserModule(md.UserHandler, md.Gate))
	r.Add(modules.NewKYCModule(md.KYCHandler, md.Gate))
	if cfg := container.GetConfig(); cfg != nil && cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
