package auth

import (
	"context"
	"errors"
	"testing"
)

type record struct {
	Ownership
}

func owned(by string) record {
	return record{Ownership{CreatedBy: by}}
}

func TestCanMutateTruthTable(t *testing.T) {
	t.Parallel()

	ids := []string{"", "1", "2"}
	roles := []Role{RoleStandard, RoleElevated}
	for _, actorID := range ids {
		for _, role := range roles {
			for _, owner := range ids {
				actor := &Actor{ID: actorID, Role: role}
				want := role == RoleElevated || (actorID != "" && actorID == owner)
				if got := CanMutate(actor, owned(owner)); got != want {
					t.Fatalf("CanMutate(%+v, createdBy=%q) = %v, want %v", actor, owner, got, want)
				}
			}
		}
	}
}

func TestCanMutateNilActor(t *testing.T) {
	t.Parallel()

	for _, owner := range []string{"", "1", "2"} {
		if CanMutate(nil, owned(owner)) {
			t.Fatalf("nil actor must not mutate record owned by %q", owner)
		}
	}
	if CanMutate(&Actor{ID: "1", Role: RoleElevated}, nil) {
		t.Fatal("nil record must not be mutable")
	}
}

func TestCanMutateScenarios(t *testing.T) {
	t.Parallel()

	standard := &Actor{ID: "1", Role: RoleStandard}
	if !CanMutate(standard, owned("1")) {
		t.Fatal("owner should be able to mutate own record")
	}
	if CanMutate(standard, owned("2")) {
		t.Fatal("standard actor should not mutate someone else's record")
	}

	elevated := &Actor{ID: "1", Role: RoleElevated}
	if !CanMutate(elevated, owned("2")) {
		t.Fatal("elevated actor should mutate any record")
	}
}

func TestCanDecideIgnoresOwnership(t *testing.T) {
	t.Parallel()

	if CanDecide(nil) {
		t.Fatal("nil actor cannot decide")
	}
	if CanDecide(&Actor{ID: "1", Role: RoleStandard}) {
		t.Fatal("standard actor cannot decide, even on own records")
	}
	if !CanDecide(&Actor{ID: "1", Role: RoleElevated}) {
		t.Fatal("elevated actor can decide")
	}
}

type lookupFunc func(ctx context.Context, userID string) (string, error)

func (f lookupFunc) DisplayName(ctx context.Context, userID string) (string, error) {
	return f(ctx, userID)
}

func TestOwnerLabel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	found := lookupFunc(func(ctx context.Context, userID string) (string, error) {
		return "Ada Lovelace", nil
	})
	failing := lookupFunc(func(ctx context.Context, userID string) (string, error) {
		return "", errors.New("lookup down")
	})
	blank := lookupFunc(func(ctx context.Context, userID string) (string, error) {
		return "  ", nil
	})

	if got := OwnerLabel(ctx, found, "u1"); got != "Ada Lovelace" {
		t.Fatalf("expected display name, got %q", got)
	}
	if got := OwnerLabel(ctx, failing, "u1"); got != UnknownUser {
		t.Fatalf("expected fallback on error, got %q", got)
	}
	if got := OwnerLabel(ctx, blank, "u1"); got != UnknownUser {
		t.Fatalf("expected fallback on blank name, got %q", got)
	}
	if got := OwnerLabel(ctx, found, ""); got != UnknownUser {
		t.Fatalf("expected fallback on missing owner, got %q", got)
	}
	if got := OwnerLabel(ctx, nil, "u1"); got != UnknownUser {
		t.Fatalf("expected fallback without lookup, got %q", got)
	}
}

func TestRequireMutate(t *testing.T) {
	t.Parallel()

	if err := RequireMutate(nil, owned("1")); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if err := RequireMutate(&Actor{ID: "1"}, owned("1")); err != nil {
		t.Fatalf("expected owner to pass, got %v", err)
	}

	err := RequireMutate(&Actor{ID: "1"}, owned("2"))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	var denied *DeniedError
	if !errors.As(err, &denied) || denied.OwnerID != "2" {
		t.Fatalf("expected denial naming owner 2, got %v", err)
	}
}

func TestNilPointerRecordIsDenied(t *testing.T) {
	t.Parallel()
	var missing *record
	for _, actor := range []*Actor{{ID: "1", Role: RoleStandard}, {ID: "1", Role: RoleElevated}} {
		if CanMutate(actor, missing) {
			t.Fatalf("nil record must never be mutable, actor %+v", actor)
		}
	}
	var denied *DeniedError
	if err := RequireMutate(&Actor{ID: "1"}, missing); !errors.As(err, &denied) || denied.OwnerID != "" {
		t.Fatalf("expected denial without owner, got %v", err)
	}
}
