// Package risk scores suppliers on a weighted composite of carbon, water,
// and compliance, normalized into [0,100].
package risk

const (
	carbonCeiling = 2000.0  // tons CO2e/year at which the carbon component saturates
	waterCeiling  = 25000.0 // m³/year at which the water component saturates

	carbonWeight     = 0.4
	waterWeight      = 0.3
	complianceWeight = 0.3
)

// Score computes the composite risk score. Compliance is expected in [0,1];
// carbon and water must be non-negative.
func Score(carbon, water, compliance float64) float64 {
	normCarbon := min(carbon/carbonCeiling, 1.0)
	normWater := min(water/waterCeiling, 1.0)
	normCompliance := 1 - compliance
	return (carbonWeight*normCarbon + waterWeight*normWater + complianceWeight*normCompliance) * 100
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
