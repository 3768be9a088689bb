package transport

import "time"

// UpdateProfileRequest replaces the whole listing.
type UpdateProfileRequest struct {
	Name               string `json:"name" validate:"required,max=200"`
	Address            string `json:"address" validate:"max=500"`
	Pincode            string `json:"pincode" validate:"omitempty,indianpincode"`
	Speciality         string `json:"speciality" validate:"max=200"`
	AyushmanSupported  bool   `json:"ayushman_supported"`
	Phone              string `json:"phone" validate:"max=32"`
	Email              string `json:"email" validate:"omitempty,email,max=254"`
	TotalBeds          int    `json:"total_beds" validate:"min=0"`
	AvailableBeds      int    `json:"available_beds" validate:"min=0,ltefield=TotalBeds"`
	BedCharge          int    `json:"bed_charge" validate:"min=0"`
	AmbulanceAvailable bool   `json:"ambulance_available"`
	EmergencyAvailable bool   `json:"emergency_available"`
	OpeningTime        string `json:"opening_time" validate:"omitempty,clocktime"`
	ClosingTime        string `json:"closing_time" validate:"omitempty,clocktime"`
}

type ProfileResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Address            string    `json:"address"`
	Pincode            string    `json:"pincode"`
	Speciality         string    `json:"speciality"`
	AyushmanSupported  bool      `json:"ayushman_supported"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email"`
	TotalBeds          int       `json:"total_beds"`
	AvailableBeds      int       `json:"available_beds"`
	BedCharge          int       `json:"bed_charge"`
	AmbulanceAvailable bool      `json:"ambulance_available"`
	EmergencyAvailable bool      `json:"emergency_available"`
	OpeningTime        string    `json:"opening_time"`
	ClosingTime        string    `json:"closing_time"`
	UpdatedAt          time.Time `json:"updated_at"`
}
