package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	claims := Claims{UserID: "u1", Role: string(RoleElevated)}

	token, err := GenerateToken(secret, claims, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.UserID != claims.UserID || parsed.Role != claims.Role {
		t.Fatalf("claims mismatch: %+v", parsed)
	}

	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("expected signature mismatch error")
	}
}

func TestExpiredToken(t *testing.T) {
	token, err := GenerateToken("s", Claims{UserID: "u1"}, -time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("s", token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestActorFromClaims(t *testing.T) {
	if ActorFromClaims(nil) != nil {
		t.Fatal("expected nil actor for nil claims")
	}
	if ActorFromClaims(&Claims{Role: "elevated"}) != nil {
		t.Fatal("expected nil actor without user id")
	}

	actor := ActorFromClaims(&Claims{UserID: "u1", Role: "SuperUser"})
	if actor == nil || actor.ID != "u1" || actor.Role != RoleElevated {
		t.Fatalf("unexpected actor: %+v", actor)
	}

	actor = ActorFromClaims(&Claims{UserID: "u2", Role: "manager"})
	if actor.Role != RoleStandard {
		t.Fatalf("unknown role should map to standard, got %s", actor.Role)
	}
	if actor.Elevated() {
		t.Fatal("standard actor reported elevated")
	}
}
