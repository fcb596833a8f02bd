package utilitycost

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aouyang1/go-utilitycost/feature"
	"github.com/aouyang1/go-utilitycost/stats"

	"github.com/goccy/go-json"
)

var (
	ErrUnknownFeatureType = errors.New("unknown feature type")
	ErrModelShapeMismatch = errors.New("model weights do not match encoder columns")
)

// Model is the serializeable form of a fitted Predictor
type Model struct {
	Options *Options             `json:"options"`
	Encoder feature.EncoderModel `json:"encoder"`
	Weights Weights              `json:"weights"`
	Scores  *Scores              `json:"scores,omitempty"`
	Summary *stats.Summary       `json:"cost_summary,omitempty"`
}

// TablePrint writes a human readable view of the model
func (m Model) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%sUtility Cost Model:\n", prefix); err != nil {
		return err
	}

	if m.Summary != nil {
		if _, err := fmt.Fprintf(w, "%s%sTraining Costs:\n", prefix, indentExpand(indent, 1)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sCount: %d    Mean: %.2f    Min: %.2f    Max: %.2f\n",
			prefix, indentExpand(indent, 2),
			m.Summary.Count, m.Summary.Mean, m.Summary.Min, m.Summary.Max,
		); err != nil {
			return err
		}
	}

	if len(m.Encoder.Categorical) > 0 {
		if _, err := fmt.Fprintf(w, "%s%sCategories:\n", prefix, indentExpand(indent, 1)); err != nil {
			return err
		}
		for _, v := range m.Encoder.Categorical {
			if _, err := fmt.Fprintf(w, "%s%s%s: %v\n", prefix, indentExpand(indent, 2), v.Field, v.Values); err != nil {
				return err
			}
		}
	}

	if m.Scores != nil {
		if _, err := fmt.Fprintf(w, "%s%sScores:\n", prefix, indentExpand(indent, 1)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sMAPE: %.3f    MSE: %.3f    R2: %.3f\n",
			prefix, indentExpand(indent, 2),
			m.Scores.MAPE,
			m.Scores.MSE,
			m.Scores.R2,
		); err != nil {
			return err
		}
	}

	return m.Weights.tablePrint(w, prefix, indent, 1)
}

// Weights stores the intercept and the per feature coefficients in encoder column order
type Weights struct {
	Intercept float64         `json:"intercept"`
	Coef      []FeatureWeight `json:"coefficients"`
}

// FeatureLabels returns all of the feature labels in the same order as the coefficients
func (w *Weights) FeatureLabels() ([]feature.Feature, error) {
	labels := make([]feature.Feature, 0, len(w.Coef))
	for _, fw := range w.Coef {
		feat, err := fw.ToFeature()
		if err != nil {
			return nil, err
		}
		labels = append(labels, feat)
	}
	return labels, nil
}

// Coefficients returns a slice copy of the coefficients ignoring the intercept
func (w *Weights) Coefficients() []float64 {
	coef := make([]float64, 0, len(w.Coef))
	for _, fw := range w.Coef {
		coef = append(coef, fw.Value)
	}
	return coef
}

func (w *Weights) matchLabels(labels *feature.Labels) error {
	if len(w.Coef) != labels.Len() {
		return fmt.Errorf("got %d weights and %d columns, %w", len(w.Coef), labels.Len(), ErrModelShapeMismatch)
	}
	weightLabels, err := w.FeatureLabels()
	if err != nil {
		return err
	}
	for i, l := range weightLabels {
		idx, exists := labels.Index(l)
		if !exists || idx != i {
			return fmt.Errorf("weight %d labelled %s, %w", i, l, ErrModelShapeMismatch)
		}
	}
	return nil
}

func (w Weights) tablePrint(wr io.Writer, prefix, indent string, indentGrowth int) error {
	if _, err := fmt.Fprintf(wr, "%s%sWeights:\n", prefix, indentExpand(indent, indentGrowth)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(wr, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sType\tLabels\tValue\t\n", prefix, indentExpand(indent, indentGrowth+1)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tbl, "%s%s%s\t%s\t%.3f\t\n",
		prefix, indentExpand(indent, indentGrowth+1),
		"intercept", "{}", w.Intercept); err != nil {
		return err
	}
	for _, fw := range w.Coef {
		labelOut, err := json.Marshal(fw.Labels)
		if err != nil {
			return err
		}
		val := fmt.Sprintf("%.3f", fw.Value)
		if fw.Value == 0 {
			val = "..."
		}
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%s\t%s\t\n",
			prefix, indentExpand(indent, indentGrowth+1),
			fw.Type, string(labelOut), val); err != nil {
			return err
		}
	}
	return tbl.Flush()
}

// FeatureWeight is a coefficient along with the type and labels of the column it scales
type FeatureWeight struct {
	Labels map[string]string   `json:"labels"`
	Type   feature.FeatureType `json:"type"`
	Value  float64             `json:"value"`
}

// NewFeatureWeight pairs a feature with its coefficient
func NewFeatureWeight(f feature.Feature, val float64) FeatureWeight {
	return FeatureWeight{
		Labels: f.Decode(),
		Type:   f.Type(),
		Value:  val,
	}
}

// ToFeature transforms the Type and Labels back into a feature
func (fw *FeatureWeight) ToFeature() (feature.Feature, error) {
	if fw == nil {
		return nil, ErrUnknownFeatureType
	}

	bytes, err := json.Marshal(fw.Labels)
	if err != nil {
		return nil, err
	}

	var feat feature.Feature
	switch fw.Type {
	case feature.FeatureTypeCategory:
		feat = new(feature.Category)
	case feature.FeatureTypeNumeric:
		feat = new(feature.Numeric)
	default:
		return nil, fmt.Errorf("got %s, %w", fw.Type, ErrUnknownFeatureType)
	}
	if err := json.Unmarshal(bytes, feat); err != nil {
		return nil, err
	}
	return feat, nil
}
