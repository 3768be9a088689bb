// Package auth provides the hospital account bounded context: registration,
// login, refresh token rotation and logout.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// AccountSummary is the account information other modules may read.
type AccountSummary struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Roles     []string
	CreatedAt time.Time
}
