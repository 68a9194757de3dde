package internal

import (
	"strings"
	"testing"
)

func TestSecureToken(t *testing.T) {
	seen := map[string]struct{}{}

	for range 64 {
		tok := SecureToken(32)

		// 32 bytes of entropy base64-encodes to 43 characters.
		if len(tok) != 43 {
			t.Errorf("wanted token of length 43, got %d: %q", len(tok), tok)
		}

		if strings.ContainsAny(tok, "+/=") {
			t.Errorf("token %q is not URL-safe", tok)
		}

		if _, ok := seen[tok]; ok {
			t.Fatalf("token %q was generated twice", tok)
		}
		seen[tok] = struct{}{}
	}
}

func TestTokenFingerprint(t *testing.T) {
	tok := SecureToken(32)
	fp := TokenFingerprint(tok)

	if fp == "" {
		t.Fatal("fingerprint is empty")
	}

	if strings.Contains(fp, tok) || strings.Contains(tok, fp) {
		t.Errorf("fingerprint %q leaks token %q", fp, tok)
	}

	if fp != TokenFingerprint(tok) {
		t.Error("fingerprint is not deterministic")
	}
}
