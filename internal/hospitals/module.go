// Package hospitals serves the dashboard and listing profile of a logged-in hospital.
package hospitals

import (
	"mediguide/internal/events"
	"mediguide/internal/hospitals/handler"
	"mediguide/internal/hospitals/repository"
	"mediguide/internal/hospitals/service"
	apphttp "mediguide/internal/http"
	"mediguide/platform/cache"
	"mediguide/platform/config"
	"mediguide/platform/logger"
	"mediguide/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
}

// NewModule wires the module; profile updates are published on eventBus.
func NewModule(pool *pgxpool.Pool, c cache.Cache, cfg config.RedisConfig, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	return NewModuleWithRepository(repository.New(pool), c, cfg, eventBus, val, log)
}

func NewModuleWithRepository(repo repository.HospitalRepository, c cache.Cache, cfg config.RedisConfig, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, c, cfg.GetDashboardCacheTTL(), eventBus, log)
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string {
	return "hospitals"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Hospital.Group("/hospitals/me"))
}

var _ apphttp.Module = (*Module)(nil)
