package util

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMMSI is returned when a vessel identifier is not a plausible
	// Maritime Mobile Service Identity.
	ErrInvalidMMSI = errors.New("invalid mmsi")
	// ErrInvalidIMO is returned when an IMO number is out of range.
	ErrInvalidIMO = errors.New("invalid imo number")
	// ErrInvalidArea indicates a geographic bounding box outside the valid
	// latitude/longitude ranges.
	ErrInvalidArea = errors.New("invalid area bounds")
)

// ValidateMMSI checks that the identifier is positive and at most nine
// digits, the width defined by the AIS standard.
func ValidateMMSI(mmsi int) error {
	if mmsi <= 0 || mmsi > 999999999 {
		return fmt.Errorf("%w: %d", ErrInvalidMMSI, mmsi)
	}
	return nil
}

// ValidateIMO checks that the IMO number is positive and at most seven
// digits.
func ValidateIMO(imo int) error {
	if imo <= 0 || imo > 9999999 {
		return fmt.Errorf("%w: %d", ErrInvalidIMO, imo)
	}
	return nil
}

// Area is a geographic bounding box in degrees.
type Area struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// WholeWorld covers every valid position; it is the default query area.
func WholeWorld() Area {
	return Area{LatMin: -90, LatMax: 90, LonMin: -180, LonMax: 180}
}

// Validate checks the bounds against the valid coordinate ranges
// (latitude within [-90, 90], longitude within [-180, 180]) and that each
// minimum does not exceed its maximum.
func (a Area) Validate() error {
	if a.LatMin < -90 || a.LatMax > 90 || a.LonMin < -180 || a.LonMax > 180 {
		return fmt.Errorf("%w: latitude must stay within [-90, 90] and longitude within [-180, 180]", ErrInvalidArea)
	}
	if a.LatMin > a.LatMax || a.LonMin > a.LonMax {
		return fmt.Errorf("%w: minimum exceeds maximum", ErrInvalidArea)
	}
	return nil
}
