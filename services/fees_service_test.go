package services

import (
	"testing"
	"time"
)

func TestMonthKey(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "zero-padded month",
			input:    time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC),
			expected: "2024-03",
		},
		{
			name:     "two-digit month",
			input:    time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
			expected: "2024-12",
		},
		{
			name:     "january boundary",
			input:    time.Date(2025, time.January, 31, 23, 59, 59, 0, time.UTC),
			expected: "2025-01",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := MonthKey(tc.input); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestMonthDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "march",
			key:      "2024-03",
			expected: "March 2024",
		},
		{
			name:     "december",
			key:      "2023-12",
			expected: "December 2023",
		},
		{
			name:     "malformed key returned unchanged",
			key:      "not-a-month",
			expected: "not-a-month",
		},
		{
			name:     "empty key returned unchanged",
			key:      "",
			expected: "",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := MonthDisplayName(tc.key); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestMonthKeyRoundTrip(t *testing.T) {
	now := time.Date(2024, time.July, 4, 12, 0, 0, 0, time.UTC)
	if got := MonthDisplayName(MonthKey(now)); got != "July 2024" {
		t.Fatalf("expected %q, got %q", "July 2024", got)
	}
}
