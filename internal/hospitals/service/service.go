package service

import (
	"context"
	"errors"
	"time"

	"mediguide/internal/events"
	"mediguide/internal/hospitals/repository"
	"mediguide/platform/apperr"
	"mediguide/platform/cache"
	"mediguide/platform/logger"
	"mediguide/platform/phone"
	"mediguide/platform/sanitize"

	"github.com/google/uuid"
)

const (
	msgHospitalNotFound = "hospital not found"
	msgBedsExceedTotal  = "available beds cannot exceed total beds"
	msgNegativeValue    = "beds and bed charge cannot be negative"
	msgNameRequired     = "hospital name is required"
)

// Dashboard is the summary shown to a logged-in hospital.
type Dashboard struct {
	Name               string `json:"name"`
	TotalBeds          int    `json:"totalBeds"`
	AvailableBeds      int    `json:"availableBeds"`
	BedCharge          int    `json:"bedCharge"`
	EmergencyAvailable bool   `json:"emergencyAvailable"`
}

type Service struct {
	repo     repository.HospitalRepository
	cache    cache.Cache
	cacheTTL time.Duration
	eventBus events.Bus
	log      *logger.Logger
}

func New(repo repository.HospitalRepository, c cache.Cache, cacheTTL time.Duration, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cache: c, cacheTTL: cacheTTL, eventBus: eventBus, log: log}
}

func dashboardKey(accountID uuid.UUID) string {
	return "dashboard:" + accountID.String()
}

func (s *Service) InvalidateDashboard(ctx context.Context, accountID uuid.UUID) error {
	key := dashboardKey(accountID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.CacheError("delete", key, err)
		return err
	}
	return nil
}

// Dashboard returns the listing summary, served from cache when possible.
// Cache failures fall back to the database.
func (s *Service) Dashboard(ctx context.Context, accountID uuid.UUID) (Dashboard, error) {
	key := dashboardKey(accountID)

	var cached Dashboard
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.log.CacheError("get", key, err)
	}
	if hit {
		return cached, nil
	}

	h, err := s.load(ctx, accountID, "hospitals.Dashboard")
	if err != nil {
		return Dashboard{}, err
	}

	dashboard := Dashboard{
		Name:               h.Name,
		TotalBeds:          h.TotalBeds,
		AvailableBeds:      h.AvailableBeds,
		BedCharge:          h.BedCharge,
		EmergencyAvailable: h.EmergencyAvailable,
	}
	if dashboard.Name == "" {
		dashboard.Name = "Hospital"
	}
	if err := s.cache.SetJSON(ctx, key, dashboard, s.cacheTTL); err != nil {
		s.log.CacheError("set", key, err)
	}
	return dashboard, nil
}

func (s *Service) GetProfile(ctx context.Context, accountID uuid.UUID) (repository.Hospital, error) {
	return s.load(ctx, accountID, "hospitals.GetProfile")
}

// UpdateProfile replaces every editable field of the listing.
func (s *Service) UpdateProfile(ctx context.Context, accountID uuid.UUID, p repository.Profile) (repository.Hospital, error) {
	p = clean(p)
	if err := validate(p); err != nil {
		return repository.Hospital{}, err
	}

	h, err := s.repo.UpdateByAccountID(ctx, accountID, p)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return repository.Hospital{}, apperr.NotFound(msgHospitalNotFound)
	case errors.Is(err, repository.ErrBedsExceedTotal):
		return repository.Hospital{}, apperr.Validation(msgBedsExceedTotal)
	case err != nil:
		s.log.DatabaseError("update hospital", err)
		return repository.Hospital{}, apperr.Wrap(apperr.KindInternal, "failed to update hospital", err).WithOp("hospitals.UpdateProfile")
	}

	// Drop the cached dashboard before returning so the next read sees the update.
	_ = s.InvalidateDashboard(ctx, accountID)

	s.eventBus.Publish(ctx, events.HospitalProfileUpdated{
		BaseEvent:     events.NewBaseEvent(),
		AccountID:     accountID,
		HospitalID:    h.ID,
		AvailableBeds: h.AvailableBeds,
	})
	return h, nil
}

func (s *Service) load(ctx context.Context, accountID uuid.UUID, op string) (repository.Hospital, error) {
	h, err := s.repo.GetByAccountID(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Hospital{}, apperr.NotFound(msgHospitalNotFound)
	}
	if err != nil {
		s.log.DatabaseError("get hospital", err)
		return repository.Hospital{}, apperr.Wrap(apperr.KindInternal, "failed to load hospital", err).WithOp(op)
	}
	return h, nil
}

func clean(p repository.Profile) repository.Profile {
	p.Name = sanitize.Line(p.Name)
	p.Address = sanitize.Text(p.Address)
	p.Speciality = sanitize.Line(p.Speciality)
	p.Pincode = sanitize.Line(p.Pincode)
	p.Email = sanitize.Line(p.Email)
	p.Phone = phone.NormalizeE164(p.Phone)
	return p
}

func validate(p repository.Profile) error {
	if p.Name == "" {
		return apperr.Validation(msgNameRequired)
	}
	if p.TotalBeds < 0 || p.AvailableBeds < 0 || p.BedCharge < 0 {
		return apperr.Validation(msgNegativeValue)
	}
	if p.AvailableBeds > p.TotalBeds {
		return apperr.Validation(msgBedsExceedTotal).WithDetails(map[string]int{
			"totalBeds":     p.TotalBeds,
			"availableBeds": p.AvailableBeds,
		})
	}
	return nil
}
