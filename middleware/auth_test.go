package middleware

import "testing"

func TestLoginRedirect(t *testing.T) {
	tests := []struct {
		name     string
		next     string
		expected string
	}{
		{
			name:     "plain path",
			next:     "/fees/",
			expected: "/admin/login/?next=%2Ffees%2F",
		},
		{
			name:     "path with query string",
			next:     "/fees/payment-history/?month=2024-03&status=paid",
			expected: "/admin/login/?next=%2Ffees%2Fpayment-history%2F%3Fmonth%3D2024-03%26status%3Dpaid",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := LoginRedirect(tc.next); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
