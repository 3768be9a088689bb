// Package searchtrigger turns a search button press into a single user notification.
package searchtrigger

import (
	apphttp "mediguide/internal/http"
	"mediguide/internal/searchtrigger/handler"
	"mediguide/internal/searchtrigger/service"
	"mediguide/platform/logger"
)

// Module is the search trigger module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

func NewModule(log *logger.Logger) *Module {
	return &Module{handler: handler.New(service.New(log))}
}

func (m *Module) Name() string {
	return "searchtrigger"
}

// RegisterRoutes mounts the public trigger routes under /api/v1/search.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/search"))
}

var _ apphttp.Module = (*Module)(nil)
