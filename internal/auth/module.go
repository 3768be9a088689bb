package auth

import (
	"mediguide/internal/auth/handler"
	"mediguide/internal/auth/repository"
	"mediguide/internal/auth/service"
	"mediguide/internal/events"
	apphttp "mediguide/internal/http"
	"mediguide/platform/config"
	"mediguide/platform/logger"
	"mediguide/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ModuleConfig is the configuration the auth module needs.
type ModuleConfig interface {
	config.AuthServiceConfig
	config.CookieConfig
}

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg ModuleConfig, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	return NewModuleWithRepository(repository.New(pool), cfg, eventBus, val, log)
}

// NewModuleWithRepository wires the module over any AuthRepository.
func NewModuleWithRepository(repo repository.AuthRepository, cfg ModuleConfig, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, cfg, eventBus, log)
	return &Module{
		handler: handler.New(svc, cfg, val),
		service: svc,
	}
}

func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for use by other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	ctx.Protected.GET("/accounts/me", m.handler.GetMe)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
