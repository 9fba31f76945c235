package utils

import "testing"

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		expected bool
	}{
		{name: "admin", role: "admin", expected: true},
		{name: "staff", role: "staff", expected: true},
		{name: "unknown role", role: "superuser", expected: false},
		{name: "empty", role: "", expected: false},
		{name: "case sensitive", role: "Admin", expected: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidRole(tc.role); got != tc.expected {
				t.Fatalf("expected %v for role %q, got %v", tc.expected, tc.role, got)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("unexpected error hashing: %v", err)
	}
	if err := CheckPassword("admin123", hash); err != nil {
		t.Fatalf("expected matching password to verify, got %v", err)
	}
	if err := CheckPassword("wrong", hash); err == nil {
		t.Fatal("expected mismatched password to fail verification")
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "trims whitespace", input: "  Asha  ", expected: "Asha"},
		{name: "strips null bytes", input: "As\x00ha", expected: "Asha"},
		{name: "plain passthrough", input: "Verma", expected: "Verma"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeString(tc.input); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
