// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RoleHospital is granted to every hospital account.
const RoleHospital = "hospital"

// Identity represents the authenticated hospital account.
// Handlers read it without touching gin context keys directly.
type Identity interface {
	// AccountID returns the authenticated hospital account ID.
	AccountID() uuid.UUID
	// Roles returns the account's roles.
	Roles() []string
	// HasRole checks if the account has a specific role.
	HasRole(role string) bool
	// IsAuthenticated returns true if a valid access token was presented.
	IsAuthenticated() bool
}

type identity struct {
	accountID     uuid.UUID
	roles         []string
	authenticated bool
}

func (i *identity) AccountID() uuid.UUID     { return i.accountID }
func (i *identity) Roles() []string          { return i.roles }
func (i *identity) HasRole(role string) bool { return slices.Contains(i.roles, role) }
func (i *identity) IsAuthenticated() bool    { return i.authenticated }

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if account info is not present.
func GetIdentity(c *gin.Context) Identity {
	raw, ok := c.Get(ContextAccountIDKey)
	if !ok {
		return &identity{}
	}

	accountID, ok := raw.(uuid.UUID)
	if !ok {
		return &identity{}
	}

	var roles []string
	if value, ok := c.Get(ContextRolesKey); ok {
		roles, _ = value.([]string)
	}

	return &identity{
		accountID:     accountID,
		roles:         roles,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the caller is not authenticated, it aborts with 401 and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return nil
	}
	return id
}
