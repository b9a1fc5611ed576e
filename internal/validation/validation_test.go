package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@example.com", false},
		{"valid with plus", "user+tag@example.com", false},
		{"empty", "", true},
		{"no at sign", "userexample.com", true},
		{"no domain", "user@", true},
		{"too long", strings.Repeat("a", 250) + "@x.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) err = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "tr0ub4dor&3", false},
		{"too short", "abc123", true},
		{"too long", strings.Repeat("x", 73), true},
		{"contains password", "mypassword1", true},
		{"contains qwerty uppercased", "QWERTYuiop", true},
		{"sequential digits", "12345678", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) err = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "jane_doe", false},
		{"valid with dots", "jane.doe-99", false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 31), true},
		{"spaces", "jane doe", true},
		{"special chars", "jane@doe", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) err = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Jane Doe"); err != nil {
		t.Errorf("ValidateName valid name failed: %v", err)
	}
	if err := ValidateName("   "); err == nil {
		t.Error("ValidateName accepted blank name")
	}
	if err := ValidateName(strings.Repeat("a", 101)); err == nil {
		t.Error("ValidateName accepted overlong name")
	}
}

func TestValidateGoal(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	target := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		goalName   string
		category   string
		amount     string
		targetDate time.Time
		wantErr    bool
	}{
		{"valid", "House fund", "Home Purchase", "25000", target, false},
		{"blank name", "  ", "Home Purchase", "25000", target, true},
		{"overlong name", strings.Repeat("a", 121), "Home Purchase", "25000", target, true},
		{"unknown category", "House fund", "Yacht", "25000", target, true},
		{"zero amount", "House fund", "Home Purchase", "0", target, true},
		{"negative amount", "House fund", "Home Purchase", "-100", target, true},
		{"target before start", "House fund", "Home Purchase", "25000", start.AddDate(0, -1, 0), true},
		{"target equals start", "House fund", "Home Purchase", "25000", start, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGoal(tt.goalName, tt.category, decimal.RequireFromString(tt.amount), tt.targetDate, start)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGoal err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
