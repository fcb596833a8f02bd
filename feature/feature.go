// Package feature describes the columns of an encoded design matrix and converts raw customer
// rows into that matrix with one-hot encoding.
package feature

import "fmt"

type FeatureType int

const (
	FeatureTypeCategory FeatureType = iota
	FeatureTypeNumeric
)

func (f FeatureType) String() string {
	switch f {
	case FeatureTypeCategory:
		return "category"
	case FeatureTypeNumeric:
		return "numeric"
	}
	return fmt.Sprintf("unknown(%d)", int(f))
}

// Feature is a single column of the design matrix
type Feature interface {
	String() string
	Get(string) (string, bool)
	Type() FeatureType
	Decode() map[string]string
}
