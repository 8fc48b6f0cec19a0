package util

import (
	"strings"
	"testing"
)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := GenerateCode(8)
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if len(code) != 8 {
			t.Fatalf("code %q has length %d, want 8", code, len(code))
		}
		for _, ch := range code {
			if !strings.ContainsRune(codeAlphabet, ch) {
				t.Fatalf("code %q contains %q outside the alphabet", code, ch)
			}
		}
		seen[code] = true
	}
	// 200 draws from a 31^8 space colliding would point at a broken RNG.
	if len(seen) < 190 {
		t.Fatalf("only %d distinct codes out of 200", len(seen))
	}
}

func TestGenerateAPIKey(t *testing.T) {
	key, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}
	if len(key) != 64 {
		t.Fatalf("key length = %d, want 64", len(key))
	}
}

func TestKeyHint(t *testing.T) {
	if got := KeyHint("abcdef123456"); got != "...3456" {
		t.Errorf("KeyHint = %q, want ...3456", got)
	}
	if got := KeyHint("ab"); got != "ab" {
		t.Errorf("KeyHint short = %q, want ab", got)
	}
}
