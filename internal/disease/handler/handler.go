package handler

import (
	"net/http"

	"mediguide/internal/disease/service"
	"mediguide/internal/disease/transport"
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
	rg.GET("/symptoms", h.ListSymptoms)
	rg.POST("/predict", h.Predict)
}

func (h *Handler) ListSymptoms(c *gin.Context) {
	httpkit.OK(c, transport.SymptomsResponse{Symptoms: h.svc.Symptoms()})
}

func (h *Handler) Predict(c *gin.Context) {
	var req transport.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	prediction, err := h.svc.Predict(req.Symptoms)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.PredictResponse{Prediction: prediction})
}
