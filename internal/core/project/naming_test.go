package project

import (
	"errors"
	"testing"
)

func TestPackageName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{".", "backend-app"},
		{"", "backend-app"},
		{"orders-api", "orders-api"},
		{"Orders API", "orders-api"},
		{"  My   Backend\tApp ", "my-backend-app"},
		{"Cafe\u0301", "caf\u00e9"}, // decomposed accent is composed
		{"ÜBER", "über"},
		{"apps/api", "api"},
		{"services/Billing API", "billing-api"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := PackageName(tt.in); got != tt.want {
				t.Errorf("PackageName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{".", false},
		{"api", false},
		{"my backend", false},
		{"", true},
		{"   ", true},
		{"..", true},
		{"apps/api", false},
		{"apps/./api", false},
		{"apps/../api", false},
		{"../api", true},
		{"apps/../..", true},
		{"apps/..", true},
		{"./", true},
		{"/abs", true},
		{`\abs`, true},
		{"bad\x00name", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateProjectName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidName) {
				t.Errorf("error = %v, want ErrInvalidName", err)
			}
		})
	}
}
