package handler

import (
	"net/http"

	"mediguide/internal/chatbot/service"
	"mediguide/internal/chatbot/transport"
	"mediguide/platform/httpkit"
	"mediguide/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ask", h.Ask)
}

func (h *Handler) Ask(c *gin.Context) {
	var req transport.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	answer, err := h.svc.Ask(c.Request.Context(), req.Question)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.AskResponse{Answer: answer})
}
