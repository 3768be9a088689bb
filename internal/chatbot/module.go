// Package chatbot answers health questions through an OpenAI-compatible model.
package chatbot

import (
	"mediguide/internal/chatbot/handler"
	"mediguide/internal/chatbot/service"
	apphttp "mediguide/internal/http"
	"mediguide/platform/ai/openrouter"
	"mediguide/platform/config"
	"mediguide/platform/httpkit"
	"mediguide/platform/logger"
	"mediguide/platform/validator"

	"google.golang.org/adk/model"
)

type Module struct {
	handler *handler.Handler
	limiter *httpkit.IPRateLimiter
}

// NewModule builds the OpenRouter model when an API key is configured.
func NewModule(cfg config.ChatbotConfig, val *validator.Validator, log *logger.Logger) *Module {
	var llm model.LLM
	if cfg.IsChatbotEnabled() {
		llm = openrouter.NewModel(openrouter.Config{
			APIKey:  cfg.GetOpenRouterAPIKey(),
			BaseURL: cfg.GetOpenRouterBaseURL(),
			Model:   cfg.GetOpenRouterModel(),
		})
	} else {
		log.Warn("OPENROUTER_API_KEY not set, chatbot answers will be unavailable")
	}
	return NewModuleWithModel(llm, val, log)
}

// NewModuleWithModel wires the module over any model.LLM. A nil llm disables answers.
func NewModuleWithModel(llm model.LLM, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{
		handler: handler.New(service.New(llm, log), val),
		limiter: httpkit.NewChatRateLimiter(log),
	}
}

func (m *Module) Name() string {
	return "chatbot"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/chatbot")
	group.Use(m.limiter.RateLimit())
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
