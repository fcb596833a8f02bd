package feature

import (
	"strings"

	"github.com/goccy/go-json"
)

// Numeric is a column passed through to the design matrix unencoded
type Numeric struct {
	Name string `json:"name"`
}

func NewNumeric(name string) *Numeric {
	return &Numeric{name}
}

func (n Numeric) String() string {
	return n.Name
}

func (n Numeric) Get(label string) (string, bool) {
	switch strings.ToLower(label) {
	case "name":
		return n.Name, true
	}
	return "", false
}

func (n Numeric) Type() FeatureType {
	return FeatureTypeNumeric
}

func (n Numeric) Decode() map[string]string {
	res := make(map[string]string)
	res["name"] = n.Name
	return res
}

func (n *Numeric) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &labelStr); err != nil {
		return err
	}
	n.Name = labelStr.Name
	return nil
}
