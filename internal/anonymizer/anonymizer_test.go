package anonymizer_test

import (
	"errors"
	"testing"

	"github.com/tirasundara/mobile-money-etl/internal/anonymizer"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"John Doe", "JD"},
		{"Mary Jane Watson", "MJW"},
		{"Madonna", "M"},
		{"  grace   njoki ", "GN"},
		{"Patricia\tChepkorir", "PC"},
		{"élodie ñúñez", "ÉÑ"},
		{"KPLC", "K"},
	}

	for _, tt := range tests {
		got, err := anonymizer.Initials(tt.name)
		if err != nil {
			t.Errorf("Unexpected error for %q: %v", tt.name, err)
			continue
		}

		if got != tt.expected {
			t.Errorf("Expected initials of %q to be '%s', got '%s'", tt.name, tt.expected, got)
		}
	}
}

func TestInitials_EmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := anonymizer.Initials(name)
		if !errors.Is(err, anonymizer.ErrEmptyName) {
			t.Errorf("Expected ErrEmptyName for %q, got %v", name, err)
		}
	}
}

func TestInitials_Deterministic(t *testing.T) {
	first, _ := anonymizer.Initials("Samuel Otieno")
	second, _ := anonymizer.Initials("Samuel Otieno")

	if first != second {
		t.Errorf("Expected identical initials for identical names, got '%s' and '%s'", first, second)
	}
}
