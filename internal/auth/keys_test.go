package auth

import (
	"strings"
	"testing"
)

func TestGenerateAPIKey(t *testing.T) {
	key, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}
	if !strings.HasPrefix(key, KeyPrefix) {
		t.Fatalf("key %q missing prefix %q", key, KeyPrefix)
	}

	other, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}
	if key == other {
		t.Fatal("two generated keys should not collide")
	}
}

func TestHashAndVerifyAPIKey(t *testing.T) {
	key := "adk_test-key-value"
	hash, err := HashAPIKey(key)
	if err != nil {
		t.Fatalf("HashAPIKey: %v", err)
	}
	if !VerifyAPIKey(key, hash) {
		t.Fatal("hash should verify against original key")
	}
	if VerifyAPIKey("adk_wrong", hash) {
		t.Fatal("hash should not verify against a different key")
	}
}

func TestVerifyAPIKeyConstantTime(t *testing.T) {
	if !VerifyAPIKeyConstantTime("secret", "secret") {
		t.Fatal("equal keys should verify")
	}
	if VerifyAPIKeyConstantTime("secret", "other") {
		t.Fatal("different keys should not verify")
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Bearer abc123", want: "abc123"},
		{in: "bearer abc123", want: "abc123"},
		{in: "  Bearer   abc123  ", want: "abc123"},
		{in: "abc123", want: "abc123"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := ExtractBearerToken(tt.in); got != tt.want {
			t.Fatalf("ExtractBearerToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
