package network

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParseToken(t *testing.T) {
	a := NewAuth("secret")
	raw, err := a.IssueToken("op-1", "alice", []string{"colormix.admin"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := a.ParseToken(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "op-1" || claims.Name != "alice" {
		t.Errorf("claims = %+v", claims)
	}
	if !claims.Has("colormix.admin") || claims.Has("other") {
		t.Errorf("Has mismatch for perms %v", claims.Perms)
	}
}

func TestParseTokenFailures(t *testing.T) {
	a := NewAuth("secret")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return base }

	expired, err := a.IssueToken("op", "bob", nil, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	forged, err := NewAuth("other").IssueToken("op", "eve", []string{"*"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	a.now = func() time.Time { return base.Add(time.Hour) }

	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"expired", expired, ErrTokenExpired},
		{"wrong secret", forged, ErrInvalidToken},
		{"garbage", "not.a.token", ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.ParseToken(tt.raw); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEmptySecretDisablesTokens(t *testing.T) {
	a := NewAuth("")
	if _, err := a.IssueToken("op", "x", nil, time.Hour); !errors.Is(err, ErrNoSecret) {
		t.Errorf("issue err = %v", err)
	}
	if _, err := a.ParseToken("anything"); !errors.Is(err, ErrNoSecret) {
		t.Errorf("parse err = %v", err)
	}
}

func TestWildcardPermission(t *testing.T) {
	c := &Claims{Perms: []string{"*"}}
	if !c.Has("colormix.admin") {
		t.Error("wildcard should grant every permission")
	}
}
