package password

import (
	"errors"
	"strings"
	"testing"
)

// testParams keeps the KDF cheap so the suite stays fast.
func testParams() Params {
	return Params{
		MemoryKiB:   8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestHashAndVerify_OK(t *testing.T) {
	h := New(testParams())

	enc, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(enc, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %q", enc)
	}

	ok, err := h.Verify(enc, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatalf("expected match")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	h := New(testParams())

	enc, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := h.Verify(enc, "wrong password")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestHash_Salted(t *testing.T) {
	h := New(testParams())

	a, err := h.Hash("same input")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := h.Hash("same input")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
}

func TestHash_EmptyPassword(t *testing.T) {
	h := New(testParams())

	if _, err := h.Hash(""); !errors.Is(err, ErrPasswordEmpty) {
		t.Fatalf("expected ErrPasswordEmpty, got %v", err)
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	h := New(testParams())

	cases := []string{
		"",
		"not a hash",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA",
	}
	for _, enc := range cases {
		if _, err := h.Verify(enc, "whatever"); !errors.Is(err, ErrInvalidHash) {
			t.Fatalf("Verify(%q): expected ErrInvalidHash, got %v", enc, err)
		}
	}
}

func TestVerify_RefusesOversizedParams(t *testing.T) {
	// A hash claiming far larger cost than configured must be rejected
	// before any key derivation.
	h := New(testParams())

	hostile := "$argon2id$v=19$m=1048576,t=64,p=8$c2FsdHNhbHRzYWx0c2FsdA$" +
		strings.Repeat("a", 43)
	if _, err := h.Verify(hostile, "whatever"); !errors.Is(err, ErrInvalidHash) {
		t.Fatalf("expected ErrInvalidHash for oversized params, got %v", err)
	}
}
