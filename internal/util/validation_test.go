package util

import (
	"errors"
	"testing"
)

func TestValidateMMSI(t *testing.T) {
	if err := ValidateMMSI(244660616); err != nil {
		t.Fatalf("expected valid mmsi: %v", err)
	}

	for _, mmsi := range []int{0, -1, 1000000000} {
		if err := ValidateMMSI(mmsi); !errors.Is(err, ErrInvalidMMSI) {
			t.Fatalf("expected ErrInvalidMMSI for %d, got %v", mmsi, err)
		}
	}
}

func TestValidateIMO(t *testing.T) {
	if err := ValidateIMO(9074729); err != nil {
		t.Fatalf("expected valid imo: %v", err)
	}

	for _, imo := range []int{0, -7, 10000000} {
		if err := ValidateIMO(imo); !errors.Is(err, ErrInvalidIMO) {
			t.Fatalf("expected ErrInvalidIMO for %d, got %v", imo, err)
		}
	}
}

func TestAreaValidate(t *testing.T) {
	if err := WholeWorld().Validate(); err != nil {
		t.Fatalf("expected whole world to be valid: %v", err)
	}

	tests := []struct {
		name string
		area Area
	}{
		{"latitude below range", Area{LatMin: -91, LatMax: 90, LonMin: -180, LonMax: 180}},
		{"latitude above range", Area{LatMin: -90, LatMax: 91, LonMin: -180, LonMax: 180}},
		{"longitude below range", Area{LatMin: -90, LatMax: 90, LonMin: -181, LonMax: 180}},
		{"longitude above range", Area{LatMin: -90, LatMax: 90, LonMin: -180, LonMax: 181}},
		{"min exceeds max", Area{LatMin: 10, LatMax: 5, LonMin: -180, LonMax: 180}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.area.Validate(); !errors.Is(err, ErrInvalidArea) {
				t.Fatalf("expected ErrInvalidArea, got %v", err)
			}
		})
	}
}
