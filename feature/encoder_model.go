package feature

import "fmt"

// EncoderModel is the serializeable form of a fitted OneHotEncoder
type EncoderModel struct {
	Categorical []Vocabulary `json:"categorical"`
	Numeric     []string     `json:"numeric"`
}

// Vocabulary lists the known values of one categorical field in column order
type Vocabulary struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
}

// Model returns the serializeable representation of the fitted encoder
func (e *OneHotEncoder) Model() (EncoderModel, error) {
	if !e.fitted {
		return EncoderModel{}, ErrUnfitted
	}
	m := EncoderModel{
		Categorical: make([]Vocabulary, 0, len(e.categorical)),
		Numeric:     e.NumericFields(),
	}
	for _, field := range e.categorical {
		values, err := e.Vocabulary(field)
		if err != nil {
			return EncoderModel{}, err
		}
		m.Categorical = append(m.Categorical, Vocabulary{Field: field, Values: values})
	}
	return m, nil
}

// NewOneHotEncoderFromModel restores a fitted encoder that is ready for Transform
func NewOneHotEncoderFromModel(m EncoderModel) (*OneHotEncoder, error) {
	categorical := make([]string, 0, len(m.Categorical))
	vocab := make(map[string][]string, len(m.Categorical))
	for _, v := range m.Categorical {
		categorical = append(categorical, v.Field)
		values := make([]string, len(v.Values))
		copy(values, v.Values)
		vocab[v.Field] = values
	}

	e := NewOneHotEncoder(categorical, m.Numeric)
	if err := e.checkSchema(); err != nil {
		return nil, fmt.Errorf("invalid encoder model, %w", err)
	}
	if err := e.setVocabulary(vocab); err != nil {
		return nil, fmt.Errorf("invalid encoder model, %w", err)
	}
	return e, nil
}
