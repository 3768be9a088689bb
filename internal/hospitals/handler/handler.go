package handler

import (
	"net/http"

	"mediguide/internal/hospitals/repository"
	"mediguide/internal/hospitals/service"
	"mediguide/internal/hospitals/transport"
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

// RegisterRoutes mounts the routes on a group that already requires the
// hospital role.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.GetDashboard)
	rg.GET("/profile", h.GetProfile)
	rg.PUT("/profile", h.UpdateProfile)
}

func (h *Handler) GetDashboard(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	dashboard, err := h.svc.Dashboard(c.Request.Context(), identity.AccountID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, dashboard)
}

func (h *Handler) GetProfile(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	hospital, err := h.svc.GetProfile(c.Request.Context(), identity.AccountID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toProfileResponse(hospital))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	hospital, err := h.svc.UpdateProfile(c.Request.Context(), identity.AccountID(), repository.Profile{
		Name:               req.Name,
		Address:            req.Address,
		Pincode:            req.Pincode,
		Speciality:         req.Speciality,
		AyushmanSupported:  req.AyushmanSupported,
		Phone:              req.Phone,
		Email:              req.Email,
		TotalBeds:          req.TotalBeds,
		AvailableBeds:      req.AvailableBeds,
		BedCharge:          req.BedCharge,
		AmbulanceAvailable: req.AmbulanceAvailable,
		EmergencyAvailable: req.EmergencyAvailable,
		OpeningTime:        req.OpeningTime,
		ClosingTime:        req.ClosingTime,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toProfileResponse(hospital))
}

func toProfileResponse(h repository.Hospital) transport.ProfileResponse {
	return transport.ProfileResponse{
		ID:                 h.ID.String(),
		Name:               h.Name,
		Address:            h.Address,
		Pincode:            h.Pincode,
		Speciality:         h.Speciality,
		AyushmanSupported:  h.AyushmanSupported,
		Phone:              h.Phone,
		Email:              h.Email,
		TotalBeds:          h.TotalBeds,
		AvailableBeds:      h.AvailableBeds,
		BedCharge:          h.BedCharge,
		AmbulanceAvailable: h.AmbulanceAvailable,
		EmergencyAvailable: h.EmergencyAvailable,
		OpeningTime:        h.OpeningTime,
		ClosingTime:        h.ClosingTime,
		UpdatedAt:          h.UpdatedAt,
	}
}
