// Package disease predicts a likely disease from selected symptoms.
package disease

import (
	"fmt"

	"mediguide/internal/disease/catalog"
	"mediguide/internal/disease/handler"
	"mediguide/internal/disease/service"
	apphttp "mediguide/internal/http"
	"mediguide/platform/config"
	"mediguide/platform/validator"
)

type Module struct {
	handler *handler.Handler
}

// NewModule loads the catalog named by cfg, or the embedded one.
func NewModule(cfg config.DiseaseConfig, val *validator.Validator) (*Module, error) {
	c, err := catalog.Load(cfg.GetDiseaseCatalogPath())
	if err != nil {
		return nil, fmt.Errorf("disease module: %w", err)
	}
	return &Module{handler: handler.New(service.New(c), val)}, nil
}

func (m *Module) Name() string {
	return "disease"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/disease"))
}

var _ apphttp.Module = (*Module)(nil)
