package auth

import "strings"

type Role string

const (
	RoleStandard Role = "standard"
	RoleElevated Role = "elevated"
)

// Actor is the signed-in user. It is built once per request from the token
// and passed explicitly wherever the role matters.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (a *Actor) Elevated() bool {
	return a != nil && a.Role == RoleElevated
}

// ParseRole maps a role claim onto the two roles the console knows about.
// Unknown names fall back to standard.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "elevated", "superuser":
		return RoleElevated
	default:
		return RoleStandard
	}
}

// ActorFromClaims returns nil when the claims carry no user id.
func ActorFromClaims(claims *Claims) *Actor {
	if claims == nil || strings.TrimSpace(claims.UserID) == "" {
		return nil
	}
	return &Actor{ID: claims.UserID, Role: ParseRole(claims.Role)}
}
