package feature

import (
	"errors"
	"fmt"
	"slices"

	mat_ "github.com/aouyang1/go-utilitycost/mat"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoRows          = errors.New("no rows to encode")
	ErrUnfitted        = errors.New("encoder has not been fit")
	ErrShapeMismatch   = errors.New("row fields do not match the fitted schema")
	ErrDuplicateField  = errors.New("field declared more than once")
	ErrDuplicateValue  = errors.New("category value repeated in vocabulary")
	ErrUnknownCategory = errors.New("unknown categorical field")
)

// Row is a single observation split into its categorical and numeric fields
type Row struct {
	Categorical map[string]string
	Numeric     map[string]float64
}

// OneHotEncoder converts rows into a design matrix. Each categorical field becomes a block of
// indicator columns, one per value seen during Fit in first seen order, followed by the numeric
// fields in declaration order. A value not seen during Fit encodes as an all zero block.
type OneHotEncoder struct {
	categorical []string
	numeric     []string

	vocab   map[string][]string
	index   map[string]map[string]int
	offsets map[string]int
	width   int
	fitted  bool
}

// NewOneHotEncoder declares the categorical and numeric fields every row must carry
func NewOneHotEncoder(categorical, numeric []string) *OneHotEncoder {
	cat := make([]string, len(categorical))
	copy(cat, categorical)
	num := make([]string, len(numeric))
	copy(num, numeric)
	return &OneHotEncoder{
		categorical: cat,
		numeric:     num,
	}
}

// Fit learns the vocabulary of each categorical field
func (e *OneHotEncoder) Fit(rows []Row) error {
	if len(rows) == 0 {
		return ErrNoRows
	}
	if err := e.checkSchema(); err != nil {
		return err
	}

	vocab := make(map[string][]string, len(e.categorical))
	for i, row := range rows {
		if err := e.checkRow(row); err != nil {
			return fmt.Errorf("at row %d, %w", i, err)
		}
		for _, field := range e.categorical {
			val := row.Categorical[field]
			if !slices.Contains(vocab[field], val) {
				vocab[field] = append(vocab[field], val)
			}
		}
	}
	return e.setVocabulary(vocab)
}

// Transform encodes each row into a row of the resulting m x Width() matrix
func (e *OneHotEncoder) Transform(rows []Row) (*mat.Dense, error) {
	if !e.fitted {
		return nil, ErrUnfitted
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	data := make([][]float64, 0, len(rows))
	for i, row := range rows {
		encoded, err := e.TransformRow(row)
		if err != nil {
			return nil, fmt.Errorf("at row %d, %w", i, err)
		}
		data = append(data, encoded)
	}
	return mat_.NewDenseFromArray(data)
}

// TransformRow encodes a single row into a slice of Width() values
func (e *OneHotEncoder) TransformRow(row Row) ([]float64, error) {
	if !e.fitted {
		return nil, ErrUnfitted
	}
	if err := e.checkRow(row); err != nil {
		return nil, err
	}

	out := make([]float64, e.width)
	for _, field := range e.categorical {
		if idx, exists := e.index[field][row.Categorical[field]]; exists {
			out[e.offsets[field]+idx] = 1.0
		}
	}
	numOffset := e.width - len(e.numeric)
	for j, field := range e.numeric {
		out[numOffset+j] = row.Numeric[field]
	}
	return out, nil
}

func (e *OneHotEncoder) checkSchema() error {
	seen := make(map[string]struct{}, len(e.categorical)+len(e.numeric))
	for _, field := range append(append([]string{}, e.categorical...), e.numeric...) {
		if _, exists := seen[field]; exists {
			return fmt.Errorf("%s, %w", field, ErrDuplicateField)
		}
		seen[field] = struct{}{}
	}
	return nil
}

func (e *OneHotEncoder) checkRow(row Row) error {
	if len(row.Categorical) != len(e.categorical) {
		return fmt.Errorf("expected %d categorical fields, but got %d, %w", len(e.categorical), len(row.Categorical), ErrShapeMismatch)
	}
	if len(row.Numeric) != len(e.numeric) {
		return fmt.Errorf("expected %d numeric fields, but got %d, %w", len(e.numeric), len(row.Numeric), ErrShapeMismatch)
	}
	for _, field := range e.categorical {
		if _, exists := row.Categorical[field]; !exists {
			return fmt.Errorf("missing categorical field %q, %w", field, ErrShapeMismatch)
		}
	}
	for _, field := range e.numeric {
		if _, exists := row.Numeric[field]; !exists {
			return fmt.Errorf("missing numeric field %q, %w", field, ErrShapeMismatch)
		}
	}
	return nil
}

func (e *OneHotEncoder) setVocabulary(vocab map[string][]string) error {
	index := make(map[string]map[string]int, len(e.categorical))
	offsets := make(map[string]int, len(e.categorical))
	width := 0
	for _, field := range e.categorical {
		values := vocab[field]
		idx := make(map[string]int, len(values))
		for i, v := range values {
			if _, exists := idx[v]; exists {
				return fmt.Errorf("%s=%s, %w", field, v, ErrDuplicateValue)
			}
			idx[v] = i
		}
		index[field] = idx
		offsets[field] = width
		width += len(values)
	}

	e.vocab = vocab
	e.index = index
	e.offsets = offsets
	e.width = width + len(e.numeric)
	e.fitted = true
	return nil
}

// Width returns the number of columns produced by Transform
func (e *OneHotEncoder) Width() int {
	return e.width
}

// Fitted reports whether the vocabulary has been learned
func (e *OneHotEncoder) Fitted() bool {
	return e.fitted
}

// CategoricalFields returns the categorical field names in block order
func (e *OneHotEncoder) CategoricalFields() []string {
	out := make([]string, len(e.categorical))
	copy(out, e.categorical)
	return out
}

// NumericFields returns the pass through field names in column order
func (e *OneHotEncoder) NumericFields() []string {
	out := make([]string, len(e.numeric))
	copy(out, e.numeric)
	return out
}

// Vocabulary returns the known values of a categorical field in column order
func (e *OneHotEncoder) Vocabulary(field string) ([]string, error) {
	if !e.fitted {
		return nil, ErrUnfitted
	}
	values, exists := e.vocab[field]
	if !exists {
		return nil, fmt.Errorf("%s, %w", field, ErrUnknownCategory)
	}
	out := make([]string, len(values))
	copy(out, values)
	return out, nil
}

// Labels returns a feature label for every encoded column
func (e *OneHotEncoder) Labels() *Labels {
	if !e.fitted {
		return NewLabels(nil)
	}
	labels := make([]Feature, 0, e.width)
	for _, field := range e.categorical {
		for _, v := range e.vocab[field] {
			labels = append(labels, NewCategory(field, v))
		}
	}
	for _, field := range e.numeric {
		labels = append(labels, NewNumeric(field))
	}
	return NewLabels(labels)
}
