// Package handler binds the search trigger to GET and POST /search/trigger.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"mediguide/internal/searchtrigger/service"
	"mediguide/internal/searchtrigger/transport"
	"mediguide/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request"

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/trigger", h.TriggerQuery)
	rg.POST("/trigger", h.TriggerJSON)
}

// TriggerQuery reads pincode and hospital from the query string.
func (h *Handler) TriggerQuery(c *gin.Context) {
	var req transport.TriggerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	h.trigger(c, req)
}

// TriggerJSON reads pincode and hospital from a JSON body. An empty body
// is treated as both fields empty.
func (h *Handler) TriggerJSON(c *gin.Context) {
	var req transport.TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	h.trigger(c, req)
}

func (h *Handler) trigger(c *gin.Context, req transport.TriggerRequest) {
	query := service.Query{Location: req.Pincode, Facility: req.Hospital}
	if _, err := h.svc.Trigger(c.Request.Context(), query, responseNotifier{c: c}); err != nil {
		_ = c.Error(err)
	}
}

type responseNotifier struct {
	c *gin.Context
}

func (n responseNotifier) Notify(_ context.Context, notification service.Notification) error {
	httpkit.OK(n.c, transport.NotificationResponse{
		Kind:    string(notification.Kind),
		Message: notification.Message,
	})
	return nil
}
