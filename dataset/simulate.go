package dataset

import (
	"math"
	"math/rand/v2"
)

var (
	simCustomerTypes = []string{"Residential", "Commercial"}
	simRegions       = []string{"North", "South", "East", "West"}
	simTypeCost      = map[string]float64{"Residential": 0.0, "Commercial": 18.0}
	simRegionCost    = map[string]float64{"North": 4.0, "South": -3.0, "East": 1.5, "West": -2.5}
)

// Generate produces n synthetic records with a known linear cost structure. The same seed
// always produces the same dataset.
func Generate(n int, seed uint64) *Dataset {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		ct := simCustomerTypes[rng.IntN(len(simCustomerTypes))]
		region := simRegions[rng.IntN(len(simRegions))]
		area := float64(10 + rng.IntN(91))
		occupants := 1 + rng.IntN(6)

		cost := 20.0 + 1.2*area + 6.0*float64(occupants) + simTypeCost[ct] + simRegionCost[region]
		cost += rng.NormFloat64() * 3.0
		cost = math.Max(0, math.Round(cost*100)/100)

		records = append(records, Record{
			CustomerType: ct,
			Region:       region,
			Area:         area,
			Occupants:    occupants,
			Cost:         cost,
		})
	}
	return &Dataset{records: records}
}
