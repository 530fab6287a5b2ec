package token

import (
	"errors"
	"strings"
	"testing"
)

func TestNewOpaque_Distinct(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		tok, err := NewOpaque(DefaultBytes)
		if err != nil {
			t.Fatalf("NewOpaque: %v", err)
		}
		if tok == "" {
			t.Fatalf("empty token")
		}
		if strings.ContainsAny(tok, "=+/") {
			t.Fatalf("token not base64url-unpadded: %q", tok)
		}
		if _, dup := seen[tok]; dup {
			t.Fatalf("duplicate token after %d draws", i)
		}
		seen[tok] = struct{}{}
	}
}

func TestNewOpaque_RefusesLowEntropy(t *testing.T) {
	if _, err := NewOpaque(8); !errors.Is(err, ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
}

func TestDigestHex_StableAndSized(t *testing.T) {
	a := DigestHex("some-token")
	b := DigestHex("some-token")
	if a != b {
		t.Fatalf("digest not deterministic")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if DigestHex("other-token") == a {
		t.Fatalf("distinct tokens must not collide in tests")
	}
}

func TestEqual(t *testing.T) {
	if !Equal("abc", "abc") {
		t.Fatalf("expected equal")
	}
	if Equal("abc", "abd") {
		t.Fatalf("expected not equal")
	}
}
