package auth

import "errors"

var (
	ErrForbidden       = errors.New("auth: forbidden")
	ErrUnauthenticated = errors.New("auth: authentication required")
)

// DeniedError reports a refused mutation together with the record's creator,
// so callers can name the owner in the message they show.
type DeniedError struct {
	OwnerID string
}

func (e *DeniedError) Error() string {
	return "auth: record belongs to another user"
}

func (e *DeniedError) Is(target error) bool {
	return target == ErrForbidden
}

// RequireMutate returns nil when CanMutate holds, otherwise a *DeniedError
// (or ErrUnauthenticated when there is no actor).
func RequireMutate(actor *Actor, record Owned) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if CanMutate(actor, record) {
		return nil
	}
	owner := ""
	if !isNil(record) {
		owner = record.Owner()
	}
	return &DeniedError{OwnerID: owner}
}
