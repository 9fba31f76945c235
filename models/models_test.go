package models

import (
	"bytes"
	"html/template"
	"testing"
	"time"
)

func TestNormalizePaymentDate(t *testing.T) {
	now := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

	t.Run("newly paid gets stamped", func(t *testing.T) {
		p := Payment{Paid: true}
		p.NormalizePaymentDate(now)
		if p.PaymentDate == nil || !p.PaymentDate.Equal(now) {
			t.Fatalf("expected payment date %v, got %v", now, p.PaymentDate)
		}
	})

	t.Run("existing stamp preserved when already paid", func(t *testing.T) {
		p := Payment{Paid: true, PaymentDate: &earlier}
		p.NormalizePaymentDate(now)
		if p.PaymentDate == nil || !p.PaymentDate.Equal(earlier) {
			t.Fatalf("expected payment date %v preserved, got %v", earlier, p.PaymentDate)
		}
	})

	t.Run("marking unpaid clears stamp", func(t *testing.T) {
		p := Payment{Paid: false, PaymentDate: &earlier}
		p.NormalizePaymentDate(now)
		if p.PaymentDate != nil {
			t.Fatalf("expected nil payment date, got %v", p.PaymentDate)
		}
	})

	t.Run("unpaid without stamp stays clear", func(t *testing.T) {
		p := Payment{Paid: false}
		p.NormalizePaymentDate(now)
		if p.PaymentDate != nil {
			t.Fatalf("expected nil payment date, got %v", p.PaymentDate)
		}
	})

	t.Run("toggle paid then unpaid ends without stamp", func(t *testing.T) {
		p := Payment{Paid: true}
		p.NormalizePaymentDate(now)
		p.Paid = false
		p.NormalizePaymentDate(now.Add(time.Hour))
		if p.PaymentDate != nil {
			t.Fatalf("expected nil payment date after toggle, got %v", p.PaymentDate)
		}
	})
}

func TestStudentFullName(t *testing.T) {
	tests := []struct {
		name     string
		student  Student
		expected string
	}{
		{
			name:     "first and last",
			student:  Student{FirstName: "Asha", LastName: "Verma"},
			expected: "Asha Verma",
		},
		{
			name:     "first only",
			student:  Student{FirstName: "Kiran"},
			expected: "Kiran",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.student.FullName(); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

// The views call FullName on Student values passed through context maps and
// on the Student field of ranged Payment rows, so the method must be callable
// on a non-addressable value.
func TestStudentFullNameInTemplate(t *testing.T) {
	tmpl := template.Must(template.New("row").Parse(`{{.student.FullName}} / {{range .payments}}{{.Student.FullName}}{{end}}`))

	data := map[string]interface{}{
		"student": Student{FirstName: "Asha", LastName: "Verma"},
		"payments": []Payment{
			{Student: Student{FirstName: "Kiran"}},
		},
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		t.Fatalf("template execution failed: %v", err)
	}
	if got := buf.String(); got != "Asha Verma / Kiran" {
		t.Fatalf("expected %q, got %q", "Asha Verma / Kiran", got)
	}
}

func TestUserIsAdmin(t *testing.T) {
	admin := User{Role: "admin"}
	staff := User{Role: "staff"}
	if !admin.IsAdmin() {
		t.Fatal("expected admin role to be admin")
	}
	if staff.IsAdmin() {
		t.Fatal("expected staff role to not be admin")
	}
}
