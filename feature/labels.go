package feature

// Labels names the encoder columns in order. The i-th label describes the i-th column of a
// transformed matrix and the i-th model coefficient.
type Labels struct {
	names  []string
	column map[string]int
	labels []Feature
}

// NewLabels copies the features and indexes them by their string form
func NewLabels(labels []Feature) *Labels {
	l := &Labels{
		names:  make([]string, len(labels)),
		column: make(map[string]int, len(labels)),
		labels: make([]Feature, len(labels)),
	}
	copy(l.labels, labels)
	for i, f := range l.labels {
		l.names[i] = f.String()
		l.column[l.names[i]] = i
	}
	return l
}

// Len is the number of encoded columns
func (l *Labels) Len() int {
	if l == nil {
		return 0
	}
	return len(l.labels)
}

// Labels returns a copy of the features in column order
func (l *Labels) Labels() []Feature {
	if l == nil {
		return nil
	}
	return append([]Feature(nil), l.labels...)
}

// Strings returns the string form of every label in column order
func (l *Labels) Strings() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.names...)
}

// Index returns the column of a feature, or -1 if the encoder has no such column
func (l *Labels) Index(f Feature) (int, bool) {
	if l == nil {
		return -1, false
	}
	i, ok := l.column[f.String()]
	if !ok {
		return -1, false
	}
	return i, true
}
