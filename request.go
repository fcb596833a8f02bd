package utilitycost

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-utilitycost/dataset"
	"github.com/aouyang1/go-utilitycost/feature"
)

const (
	MinArea      = 1.0
	MaxArea      = 1000.0
	MinOccupants = 1
	MaxOccupants = 20
)

var (
	ErrBelowMinimum          = errors.New("value must be greater than or equal to 1")
	ErrAreaBelowMinimum      = fmt.Errorf("building area %w", ErrBelowMinimum)
	ErrOccupantsBelowMinimum = fmt.Errorf("occupant count %w", ErrBelowMinimum)

	ErrAboveMaximum          = errors.New("value above maximum")
	ErrAreaAboveMaximum      = fmt.Errorf("building area must be less than or equal to %v, %w", MaxArea, ErrAboveMaximum)
	ErrOccupantsAboveMaximum = fmt.Errorf("occupant count must be less than or equal to %d, %w", MaxOccupants, ErrAboveMaximum)
)

// Request holds the customer attributes to estimate a monthly cost for
type Request struct {
	CustomerType string  `json:"customer_type"`
	Region       string  `json:"region"`
	Area         float64 `json:"building_area_m2"`
	Occupants    int     `json:"occupant_count"`
}

// Validate rejects building areas and occupant counts below 1 or above the form limits of
// 1000 and 20. Categories are not checked and values outside of the training vocabulary
// encode as all zero.
func (r Request) Validate() error {
	// NaN compares false and is rejected
	if !(r.Area >= MinArea) {
		return fmt.Errorf("got %v, %w", r.Area, ErrAreaBelowMinimum)
	}
	if r.Area > MaxArea || math.IsInf(r.Area, 1) {
		return fmt.Errorf("got %v, %w", r.Area, ErrAreaAboveMaximum)
	}
	if r.Occupants < MinOccupants {
		return fmt.Errorf("got %d, %w", r.Occupants, ErrOccupantsBelowMinimum)
	}
	if r.Occupants > MaxOccupants {
		return fmt.Errorf("got %d, %w", r.Occupants, ErrOccupantsAboveMaximum)
	}
	return nil
}

// Row frames the request as a single encoder row
func (r Request) Row() feature.Row {
	return feature.Row{
		Categorical: map[string]string{
			dataset.FieldCustomerType: r.CustomerType,
			dataset.FieldRegion:       r.Region,
		},
		Numeric: map[string]float64{
			dataset.FieldArea:      r.Area,
			dataset.FieldOccupants: float64(r.Occupants),
		},
	}
}

func recordRow(r dataset.Record) feature.Row {
	return Request{
		CustomerType: r.CustomerType,
		Region:       r.Region,
		Area:         r.Area,
		Occupants:    r.Occupants,
	}.Row()
}
