package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataset(t *testing.T) {
	testData := map[string]struct {
		records []Record
		err     error
	}{
		"no records": {
			err: ErrNoRecords,
		},
		"valid": {
			records: []Record{
				{CustomerType: "Residential", Region: "North", Area: 17, Occupants: 1, Cost: 52.56},
				{CustomerType: "Commercial", Region: "South", Area: 77, Occupants: 4, Cost: 0},
			},
		},
		"negative cost": {
			records: []Record{
				{CustomerType: "Residential", Region: "North", Area: 17, Occupants: 1, Cost: -0.01},
			},
			err: ErrNegativeCost,
		},
		"nan area": {
			records: []Record{
				{CustomerType: "Residential", Region: "North", Area: math.NaN(), Occupants: 1, Cost: 10},
			},
			err: ErrInvalidNumber,
		},
		"infinite cost": {
			records: []Record{
				{CustomerType: "Residential", Region: "North", Area: 17, Occupants: 1, Cost: math.Inf(1)},
			},
			err: ErrInvalidNumber,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds, err := NewDataset(td.records)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, len(td.records), ds.Len())
			assert.Equal(t, td.records, ds.Records())
		})
	}
}

func TestDatasetImmutable(t *testing.T) {
	records := []Record{
		{CustomerType: "Residential", Region: "North", Area: 17, Occupants: 1, Cost: 52.56},
	}
	ds, err := NewDataset(records)
	require.Nil(t, err)

	records[0].Cost = 1000
	assert.Equal(t, 52.56, ds.Costs()[0], "input slice is copied")

	out := ds.Records()
	out[0].Region = "South"
	assert.Equal(t, "North", ds.Regions()[0], "returned slice is copied")

	assert.Equal(t, []float64{17}, ds.Areas())
	assert.Equal(t, []float64{1}, ds.OccupantCounts())
	assert.Equal(t, []string{"Residential"}, ds.CustomerTypes())

	cp := ds.Copy()
	assert.Equal(t, ds.Records(), cp.Records())

	var empty *Dataset
	assert.Equal(t, 0, empty.Len())
}

func TestDatasetVocabulary(t *testing.T) {
	ds, err := NewDataset([]Record{
		{CustomerType: "Residential", Region: "South", Area: 17, Occupants: 1, Cost: 1},
		{CustomerType: "Commercial", Region: "North", Area: 17, Occupants: 1, Cost: 1},
		{CustomerType: "Residential", Region: "South", Area: 17, Occupants: 1, Cost: 1},
		{CustomerType: "Residential", Region: "East", Area: 17, Occupants: 1, Cost: 1},
	})
	require.Nil(t, err)

	testData := map[string]struct {
		field    string
		expected []string
		err      error
	}{
		"customer type": {FieldCustomerType, []string{"Residential", "Commercial"}, nil},
		"region":        {FieldRegion, []string{"South", "North", "East"}, nil},
		"numeric field": {FieldArea, nil, ErrUnknownField},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := ds.Vocabulary(td.field)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestGenerate(t *testing.T) {
	assert.Nil(t, Generate(0, 1))

	first := Generate(500, 7)
	second := Generate(500, 7)
	require.Equal(t, 500, first.Len())
	assert.Equal(t, first.Records(), second.Records(), "same seed")

	other := Generate(500, 8)
	assert.NotEqual(t, first.Records(), other.Records(), "different seed")

	for _, r := range first.Records() {
		require.Nil(t, r.Validate())
		assert.GreaterOrEqual(t, r.Area, 10.0)
		assert.LessOrEqual(t, r.Area, 100.0)
		assert.GreaterOrEqual(t, r.Occupants, 1)
		assert.LessOrEqual(t, r.Occupants, 6)
	}

	types, err := first.Vocabulary(FieldCustomerType)
	require.Nil(t, err)
	assert.ElementsMatch(t, simCustomerTypes, types)
}
