package controllers

import (
	"database/sql"
	"reflect"
	"strings"
	"testing"

	"feesmanagement_go/models"
	"feesmanagement_go/services"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestParsePaidFlag(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{name: "checkbox on", value: "on", expected: true},
		{name: "absent", value: "", expected: false},
		{name: "other value", value: "true", expected: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := parsePaidFlag(tc.value); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
		wantErr  bool
	}{
		{name: "plain", value: "500.00", expected: "500"},
		{name: "whitespace trimmed", value: " 550.50 ", expected: "550.5"},
		{name: "integer", value: "600", expected: "600"},
		{name: "empty", value: "", wantErr: true},
		{name: "not a number", value: "abc", wantErr: true},
		{name: "two decimals kept exactly", value: "0.10", expected: "0.1"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseAmount(tc.value)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got.String())
			}
		})
	}
}

// dryRunDB opens a GORM session that builds SQL without touching a server,
// for asserting generated query shapes.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("mysql", "root:@tcp(127.0.0.1:3306)/dryrun?parseTime=true")
	if err != nil {
		t.Fatalf("failed to open sql handle: %v", err)
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("failed to open gorm session: %v", err)
	}
	return db
}

func TestHistoryQueryFilters(t *testing.T) {
	db := dryRunDB(t)

	tests := []struct {
		name        string
		filters     historyFilters
		wantClauses []string
		wantAbsent  []string
		wantVars    []interface{}
	}{
		{
			name:        "no filters imposes no restriction",
			filters:     historyFilters{},
			wantAbsent:  []string{"WHERE", "JOIN"},
			wantVars:    nil,
			wantClauses: []string{"SELECT"},
		},
		{
			name:    "month only",
			filters: historyFilters{Month: "2024-03"},
			wantClauses: []string{
				"JOIN months ON months.id = payments.month_id",
				"months.month = ?",
			},
			wantAbsent: []string{"JOIN students", "payments.paid"},
			wantVars:   []interface{}{"2024-03"},
		},
		{
			name:        "status paid only",
			filters:     historyFilters{Status: services.StatusPaid},
			wantClauses: []string{"payments.paid = ?"},
			wantAbsent:  []string{"JOIN"},
			wantVars:    []interface{}{true},
		},
		{
			name:        "status unpaid only",
			filters:     historyFilters{Status: services.StatusUnpaid},
			wantClauses: []string{"payments.paid = ?"},
			wantVars:    []interface{}{false},
		},
		{
			name:    "class only",
			filters: historyFilters{Class: "2"},
			wantClauses: []string{
				"JOIN students ON students.id = payments.student_id",
				"students.student_class_id = ?",
			},
			wantAbsent: []string{"JOIN months"},
			wantVars:   []interface{}{"2"},
		},
		{
			name:    "all filters compose with AND",
			filters: historyFilters{Month: "2024-03", Status: services.StatusPaid, Class: "2"},
			wantClauses: []string{
				"JOIN months ON months.id = payments.month_id",
				"JOIN students ON students.id = payments.student_id",
				"months.month = ?",
				"payments.paid = ?",
				"students.student_class_id = ?",
				"AND",
			},
			wantVars: []interface{}{"2024-03", true, "2"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var payments []models.Payment
			stmt := historyQuery(db, tc.filters).Find(&payments).Statement
			query := stmt.SQL.String()

			for _, clause := range tc.wantClauses {
				if !strings.Contains(query, clause) {
					t.Fatalf("expected query to contain %q, got %q", clause, query)
				}
			}
			for _, clause := range tc.wantAbsent {
				if strings.Contains(query, clause) {
					t.Fatalf("expected query to not contain %q, got %q", clause, query)
				}
			}
			if len(tc.wantVars) == 0 {
				if len(stmt.Vars) != 0 {
					t.Fatalf("expected no vars, got %v", stmt.Vars)
				}
			} else if !reflect.DeepEqual(stmt.Vars, tc.wantVars) {
				t.Fatalf("expected vars %v, got %v", tc.wantVars, stmt.Vars)
			}
		})
	}
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "local path kept", input: "/fees/students/", expected: "/fees/students/"},
		{name: "empty falls back", input: "", expected: "/fees/"},
		{name: "absolute url rejected", input: "https://evil.example/", expected: "/fees/"},
		{name: "protocol-relative rejected", input: "//evil.example/", expected: "/fees/"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := safeNext(tc.input); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
