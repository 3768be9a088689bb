package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("hospital not found")
var ErrBedsExceedTotal = errors.New("available beds exceed total beds")

const checkViolation = "23514"

// HospitalRepository reads and replaces the listing owned by an account.
type HospitalRepository interface {
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (Hospital, error)
	UpdateByAccountID(ctx context.Context, accountID uuid.UUID, p Profile) (Hospital, error)
}

type Hospital struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Profile
	UpdatedAt time.Time
}

// Profile is the editable part of a listing.
type Profile struct {
	Name               string
	Address            string
	Pincode            string
	Speciality         string
	AyushmanSupported  bool
	Phone              string
	Email              string
	TotalBeds          int
	AvailableBeds      int
	BedCharge          int
	AmbulanceAvailable bool
	EmergencyAvailable bool
	OpeningTime        string
	ClosingTime        string
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const hospitalColumns = `id, account_id, name, address, pincode, speciality, ayushman_supported,
	phone, email, total_beds, available_beds, bed_charge, ambulance_available,
	emergency_available, opening_time, closing_time, updated_at`

const selectByAccountQuery = `SELECT ` + hospitalColumns + ` FROM hospitals WHERE account_id = $1`

const updateByAccountQuery = `
	UPDATE hospitals SET
		name = $2, address = $3, pincode = $4, speciality = $5, ayushman_supported = $6,
		phone = $7, email = $8, total_beds = $9, available_beds = $10, bed_charge = $11,
		ambulance_available = $12, emergency_available = $13, opening_time = $14,
		closing_time = $15, updated_at = now()
	WHERE account_id = $1
	RETURNING ` + hospitalColumns

func (r *Repository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (Hospital, error) {
	var h Hospital
	err := scanHospital(r.pool.QueryRow(ctx, selectByAccountQuery, accountID), &h)
	if errors.Is(err, pgx.ErrNoRows) {
		return Hospital{}, ErrNotFound
	}
	return h, err
}

func (r *Repository) UpdateByAccountID(ctx context.Context, accountID uuid.UUID, p Profile) (Hospital, error) {
	var h Hospital
	err := scanHospital(r.pool.QueryRow(ctx, updateByAccountQuery,
		accountID,
		p.Name, p.Address, p.Pincode, p.Speciality, p.AyushmanSupported,
		p.Phone, p.Email, p.TotalBeds, p.AvailableBeds, p.BedCharge,
		p.AmbulanceAvailable, p.EmergencyAvailable, p.OpeningTime, p.ClosingTime,
	), &h)
	if errors.Is(err, pgx.ErrNoRows) {
		return Hospital{}, ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == checkViolation {
		return Hospital{}, ErrBedsExceedTotal
	}
	return h, err
}

func scanHospital(row pgx.Row, h *Hospital) error {
	return row.Scan(
		&h.ID,
		&h.AccountID,
		&h.Name,
		&h.Address,
		&h.Pincode,
		&h.Speciality,
		&h.AyushmanSupported,
		&h.Phone,
		&h.Email,
		&h.TotalBeds,
		&h.AvailableBeds,
		&h.BedCharge,
		&h.AmbulanceAvailable,
		&h.EmergencyAvailable,
		&h.OpeningTime,
		&h.ClosingTime,
		&h.UpdatedAt,
	)
}

var _ HospitalRepository = (*Repository)(nil)
