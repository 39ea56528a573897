package auth

import (
	"context"
	"reflect"
	"strings"
)

const UnknownUser = "unknown user"

// Owned is any record carrying a fixed creator marker.
type Owned interface {
	Owner() string
}

// Ownership is embedded by every mutable entity. CreatedBy is set once at creation.
type Ownership struct {
	CreatedBy string `json:"createdBy"`
}

func (o Ownership) Owner() string {
	return o.CreatedBy
}

// CanMutate reports whether actor may edit or delete record: elevated actors
// may touch anything, everyone else only what they created.
func CanMutate(actor *Actor, record Owned) bool {
	if actor == nil || isNil(record) {
		return false
	}
	if actor.Role == RoleElevated {
		return true
	}
	owner := record.Owner()
	return owner != "" && actor.ID != "" && actor.ID == owner
}

// isNil also catches a nil pointer stored in a non-nil interface, whose
// promoted Owner method would dereference it.
func isNil(record Owned) bool {
	if record == nil {
		return true
	}
	v := reflect.ValueOf(record)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// CanDecide gates leave approval and refusal. Ownership plays no part.
func CanDecide(actor *Actor) bool {
	return actor.Elevated()
}

type NameLookup interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// OwnerLabel names the creator of a record for a denial message.
func OwnerLabel(ctx context.Context, lookup NameLookup, ownerID string) string {
	if strings.TrimSpace(ownerID) == "" || lookup == nil {
		return UnknownUser
	}
	name, err := lookup.DisplayName(ctx, ownerID)
	if err != nil || strings.TrimSpace(name) == "" {
		return UnknownUser
	}
	return name
}
