// Package dataset loads the historical customer cost records used to train the model
package dataset

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoRecords     = errors.New("no records in dataset")
	ErrNegativeCost  = errors.New("monthly cost must be non-negative")
	ErrInvalidNumber = errors.New("numeric field is not finite")
	ErrUnknownField  = errors.New("unknown categorical field")
)

// Categorical field names used when framing records for the encoder
const (
	FieldCustomerType = "customer_type"
	FieldRegion       = "region"
	FieldArea         = "building_area_m2"
	FieldOccupants    = "occupant_count"
)

// Record is a single historical customer observation
type Record struct {
	CustomerType string  `json:"customer_type"`
	Region       string  `json:"region"`
	Area         float64 `json:"building_area_m2"`
	Occupants    int     `json:"occupant_count"`
	Cost         float64 `json:"monthly_cost"`
}

// Validate checks the invariants of a single record
func (r Record) Validate() error {
	if math.IsNaN(r.Area) || math.IsInf(r.Area, 0) {
		return fmt.Errorf("area, %w", ErrInvalidNumber)
	}
	if math.IsNaN(r.Cost) || math.IsInf(r.Cost, 0) {
		return fmt.Errorf("cost, %w", ErrInvalidNumber)
	}
	if r.Cost < 0 {
		return fmt.Errorf("got %.2f, %w", r.Cost, ErrNegativeCost)
	}
	return nil
}

// Dataset is an immutable set of training records
type Dataset struct {
	records []Record
}

// NewDataset validates and copies the input records
func NewDataset(records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("at record %d, %w", i, err)
		}
	}

	rs := make([]Record, len(records))
	copy(rs, records)
	return &Dataset{records: rs}, nil
}

// Copy returns a deep copy of the dataset
func (d *Dataset) Copy() *Dataset {
	return &Dataset{records: d.Records()}
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a copy of all records in load order
func (d *Dataset) Records() []Record {
	rs := make([]Record, len(d.records))
	copy(rs, d.records)
	return rs
}

// Costs returns the monthly cost column
func (d *Dataset) Costs() []float64 {
	out := make([]float64, 0, len(d.records))
	for _, r := range d.records {
		out = append(out, r.Cost)
	}
	return out
}

// CustomerTypes returns the customer type column
func (d *Dataset) CustomerTypes() []string {
	out := make([]string, 0, len(d.records))
	for _, r := range d.records {
		out = append(out, r.CustomerType)
	}
	return out
}

// Regions returns the region column
func (d *Dataset) Regions() []string {
	out := make([]string, 0, len(d.records))
	for _, r := range d.records {
		out = append(out, r.Region)
	}
	return out
}

// Vocabulary returns the distinct values of a categorical field in first seen order
func (d *Dataset) Vocabulary(field string) ([]string, error) {
	var col []string
	switch field {
	case FieldCustomerType:
		col = d.CustomerTypes()
	case FieldRegion:
		col = d.Regions()
	default:
		return nil, fmt.Errorf("%s, %w", field, ErrUnknownField)
	}

	seen := make(map[string]struct{})
	var out []string
	for _, v := range col {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// Areas returns the building area column
func (d *Dataset) Areas() []float64 {
	out := make([]float64, 0, len(d.records))
	for _, r := range d.records {
		out = append(out, r.Area)
	}
	return out
}

// OccupantCounts returns the occupant count column as floats
func (d *Dataset) OccupantCounts() []float64 {
	out := make([]float64, 0, len(d.records))
	for _, r := range d.records {
		out = append(out, float64(r.Occupants))
	}
	return out
}
