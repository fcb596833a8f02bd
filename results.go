package utilitycost

import "github.com/aouyang1/go-utilitycost/stats"

// Result is a single estimate placed on the range of costs observed during training
type Result struct {
	Request Request `json:"request"`
	Value   float64 `json:"predicted_cost"`
	Min     float64 `json:"min_cost"`
	Max     float64 `json:"max_cost"`

	// Position is 0 at Min and 1 at Max. Estimates outside of the range fall below 0 or
	// above 1.
	Position float64 `json:"position"`
	InRange  bool    `json:"in_range"`
}

func newResult(req Request, val float64, s stats.Summary) *Result {
	r := &Result{
		Request:  req,
		Value:    val,
		Min:      s.Min,
		Max:      s.Max,
		Position: 0.5,
		InRange:  val >= s.Min && val <= s.Max,
	}
	if span := s.Max - s.Min; span > 0 {
		r.Position = (val - s.Min) / span
	}
	return r
}
