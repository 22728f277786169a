package session

import (
	"errors"
	"testing"
	"time"

	"authms/internal/core/domain/account"
)

const SECRET = "test-secret"

func TestIssueAndVerify(t *testing.T) {
	now := time.Now().UTC()
	issuer := NewJWTIssuer(SECRET, time.Hour, func() time.Time { return now })
	accountID := account.NewID()

	token, err := issuer.Issue(accountID, account.RoleAdministrator)
	if err != nil {
		t.Fatalf("could not issue token: %v", err)
	}
	if token == account.SessionToken("") {
		t.Fatal("token must not be empty")
	}

	verifiedID, role, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("could not verify token: %v", err)
	}
	if verifiedID != accountID {
		t.Fatalf("expected account id %v, got %v", accountID, verifiedID)
	}
	if role != account.RoleAdministrator {
		t.Fatalf("expected admin role, got %v", role)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuedAt := time.Now().UTC()
	issuer := NewJWTIssuer(SECRET, time.Hour, func() time.Time { return issuedAt })

	token, err := issuer.Issue(account.NewID(), account.RoleStandardUser)
	if err != nil {
		t.Fatalf("could not issue token: %v", err)
	}

	expired := NewJWTIssuer(SECRET, time.Hour, func() time.Time { return issuedAt.Add(2 * time.Hour) })
	_, _, err = expired.Verify(token)
	if !errors.Is(err, account.ErrSessionTokenExpired) {
		t.Fatalf("expected expired token error, got: %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	now := time.Now().UTC()
	issuer := NewJWTIssuer(SECRET, time.Hour, func() time.Time { return now })

	token, err := issuer.Issue(account.NewID(), account.RoleStandardUser)
	if err != nil {
		t.Fatalf("could not issue token: %v", err)
	}

	other := NewJWTIssuer("other-secret", time.Hour, func() time.Time { return now })
	_, _, err = other.Verify(token)
	if !errors.Is(err, account.ErrInvalidSessionToken) {
		t.Fatalf("expected invalid token error, got: %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	issuer := NewJWTIssuer(SECRET, time.Hour, time.Now)
	for _, garbage := range []string{"", "garbage", "a.b.c"} {
		_, _, err := issuer.Verify(account.SessionToken(garbage))
		if !errors.Is(err, account.ErrInvalidSessionToken) {
			t.Fatalf("expected invalid token error for %q, got: %v", garbage, err)
		}
	}
}
