package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	ErrMissingColumn = errors.New("missing column in header")
	ErrMalformedRow  = errors.New("malformed row")
	ErrDelimiter     = errors.New("delimiter must be a single character")
)

// Load reads a delimited dataset file from disk
func Load(path string, cols *Columns) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open dataset, %w", err)
	}
	defer f.Close()

	ds, err := Read(f, cols)
	if err != nil {
		return nil, fmt.Errorf("unable to read dataset %s, %w", path, err)
	}
	return ds, nil
}

// Read parses a delimited dataset with a header row. The identifier column is discarded.
func Read(r io.Reader, cols *Columns) (*Dataset, error) {
	cols = cols.Validate()
	delim, size := utf8.DecodeRuneInString(cols.Delimiter)
	if size != len(cols.Delimiter) {
		return nil, fmt.Errorf("got %q, %w", cols.Delimiter, ErrDelimiter)
	}

	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoRecords
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read header, %w", err)
	}

	idx, err := headerIndex(header, cols)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w, %w", ErrMalformedRow, err)
		}
		line, _ := cr.FieldPos(0)

		rec, err := parseRecord(row, idx)
		if err != nil {
			return nil, fmt.Errorf("at line %d, %w", line, err)
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("at line %d, %w", line, err)
		}
		records = append(records, rec)
	}
	return NewDataset(records)
}

type columnIndex struct {
	customerType int
	region       int
	area         int
	occupants    int
	cost         int
}

func headerIndex(header []string, cols *Columns) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		pos[h] = i
	}

	lookup := func(name string) (int, error) {
		i, exists := pos[name]
		if !exists {
			return -1, fmt.Errorf("%s, %w", name, ErrMissingColumn)
		}
		return i, nil
	}

	var (
		idx columnIndex
		err error
	)
	if idx.customerType, err = lookup(cols.CustomerType); err != nil {
		return idx, err
	}
	if idx.region, err = lookup(cols.Region); err != nil {
		return idx, err
	}
	if idx.area, err = lookup(cols.Area); err != nil {
		return idx, err
	}
	if idx.occupants, err = lookup(cols.Occupants); err != nil {
		return idx, err
	}
	if idx.cost, err = lookup(cols.Cost); err != nil {
		return idx, err
	}
	return idx, nil
}

func parseRecord(row []string, idx columnIndex) (Record, error) {
	field := func(i int) string {
		return strings.TrimSpace(row[i])
	}

	area, err := strconv.ParseFloat(field(idx.area), 64)
	if err != nil {
		return Record{}, fmt.Errorf("area %q, %w", field(idx.area), ErrMalformedRow)
	}
	occupants, err := parseCount(field(idx.occupants))
	if err != nil {
		return Record{}, fmt.Errorf("occupants %q, %w", field(idx.occupants), ErrMalformedRow)
	}
	cost, err := strconv.ParseFloat(field(idx.cost), 64)
	if err != nil {
		return Record{}, fmt.Errorf("cost %q, %w", field(idx.cost), ErrMalformedRow)
	}

	return Record{
		CustomerType: field(idx.customerType),
		Region:       field(idx.region),
		Area:         area,
		Occupants:    occupants,
		Cost:         cost,
	}, nil
}

// parseCount accepts integers and floats without a fractional part such as "2.0"
func parseCount(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	return int(f), nil
}

// Write encodes the dataset with a header row using the column names. Identifiers are
// numbered from 1 in record order.
func Write(w io.Writer, ds *Dataset, cols *Columns) error {
	cols = cols.Validate()
	delim, size := utf8.DecodeRuneInString(cols.Delimiter)
	if size != len(cols.Delimiter) {
		return fmt.Errorf("got %q, %w", cols.Delimiter, ErrDelimiter)
	}
	if ds.Len() == 0 {
		return ErrNoRecords
	}

	cw := csv.NewWriter(w)
	cw.Comma = delim

	if err := cw.Write([]string{cols.ID, cols.CustomerType, cols.Region, cols.Area, cols.Occupants, cols.Cost}); err != nil {
		return fmt.Errorf("unable to write header, %w", err)
	}
	for i, r := range ds.records {
		row := []string{
			strconv.Itoa(i + 1),
			r.CustomerType,
			r.Region,
			strconv.FormatFloat(r.Area, 'f', -1, 64),
			strconv.Itoa(r.Occupants),
			strconv.FormatFloat(r.Cost, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("unable to write record %d, %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
