package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims accepted by the simulator. ClientID binds a
// customer token to the one client whose simulations it may see.
type Claims struct {
	jwt.RegisteredClaims
	ClientID string   `json:"client_id,omitempty"`
	Roles    []string `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// CanAccessClient reports whether the bearer may run or read simulations
// for clientID. Advisors and admins act for any client.
func (c Claims) CanAccessClient(clientID string) bool {
	if c.HasRole(RoleAdmin) || c.HasRole(RoleAdvisor) {
		return true
	}
	return c.HasRole(RoleClient) && c.ClientID != "" && c.ClientID == clientID
}

// Role constants
const (
	RoleAdmin   = "admin"
	RoleAdvisor = "advisor"
	RoleClient  = "client"
)
