package feature

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Category is the indicator column for a single value of a categorical field
type Category struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// NewCategory creates the indicator feature for field == value
func NewCategory(field, value string) *Category {
	return &Category{Field: field, Value: value}
}

// String returns the string representation of the category feature
func (c Category) String() string {
	return fmt.Sprintf("%s_%s", c.Field, c.Value)
}

// Get returns the value of an arbitrary label and returns the value along with whether
// the label exists
func (c Category) Get(label string) (string, bool) {
	switch strings.ToLower(label) {
	case "field":
		return c.Field, true
	case "value":
		return c.Value, true
	}
	return "", false
}

// Type returns the type of this feature
func (c Category) Type() FeatureType {
	return FeatureTypeCategory
}

// Decode converts the feature into a map of label values
func (c Category) Decode() map[string]string {
	res := make(map[string]string)
	res["field"] = c.Field
	res["value"] = c.Value
	return res
}

// UnmarshalJSON converts a map[string]string of labels back into a category feature
func (c *Category) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &labelStr); err != nil {
		return err
	}
	c.Field = labelStr.Field
	c.Value = labelStr.Value
	return nil
}
