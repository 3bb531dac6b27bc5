package service

import (
	"testing"
	"time"
)

func newTestTokens(t *testing.T) *TokenService {
	t.Helper()
	tokens, err := NewTokenService("access-secret", "refresh-secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return tokens
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tokens := newTestTokens(t)

	token, err := tokens.IssueAccess("user-1", "Admin")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	sub, role, err := tokens.VerifyAccess(token)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if sub != "user-1" || role != "Admin" {
		t.Fatalf("got sub=%q role=%q", sub, role)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tokens := newTestTokens(t)

	token, err := tokens.IssueRefresh("user-2")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	sub, err := tokens.VerifyRefresh(token)
	if err != nil {
		t.Fatalf("VerifyRefresh: %v", err)
	}
	if sub != "user-2" {
		t.Fatalf("got sub=%q", sub)
	}
}

func TestTokenKindsAreDisjoint(t *testing.T) {
	tokens := newTestTokens(t)

	access, _ := tokens.IssueAccess("user-1", "User")
	refresh, _ := tokens.IssueRefresh("user-1")

	if _, err := tokens.VerifyRefresh(access); err == nil {
		t.Fatal("access token accepted as refresh token")
	}
	if _, _, err := tokens.VerifyAccess(refresh); err == nil {
		t.Fatal("refresh token accepted as access token")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tokens := &TokenService{
		accessSecret:  []byte("access-secret"),
		refreshSecret: []byte("refresh-secret"),
		accessTTL:     -time.Minute,
		refreshTTL:    -time.Minute,
	}

	access, err := tokens.IssueAccess("user-1", "User")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, _, err := tokens.VerifyAccess(access); err == nil {
		t.Fatal("expired access token accepted")
	}

	refresh, err := tokens.IssueRefresh("user-1")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	if _, err := tokens.VerifyRefresh(refresh); err == nil {
		t.Fatal("expired refresh token accepted")
	}
}

func TestMalformedTokenRejected(t *testing.T) {
	tokens := newTestTokens(t)
	if _, _, err := tokens.VerifyAccess("not-a-token"); err == nil {
		t.Fatal("malformed token accepted")
	}
}

func TestTokenServiceRequiresDistinctSecrets(t *testing.T) {
	if _, err := NewTokenService("same", "same", time.Minute, time.Hour); err == nil {
		t.Fatal("expected error for identical secrets")
	}
	if _, err := NewTokenService("", "refresh", time.Minute, time.Hour); err == nil {
		t.Fatal("expected error for empty access secret")
	}
}
