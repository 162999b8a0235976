package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaredmarko/worldly-demo/internal/agent/keywords"
	"github.com/jaredmarko/worldly-demo/internal/models"
)

func newTestResolver() *Resolver {
	return New(keywords.NewExtractor([]string{
		"Shahjalal Textile Mills",
		"Marzotto Group",
		"Patagonia Suppliers",
		"Arvind Limited",
	}))
}

func TestResolve_Categories(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name     string
		question string
		category models.QueryCategory
	}{
		{
			"location and material with low carbon",
			"Which products in India use cotton and have a low carbon footprint?",
			models.CategoryProductsByLocationMaterialLowCarbon,
		},
		{
			"location and material with high water",
			"Which products in China use polyester and have high water usage?",
			models.CategoryProductsByLocationMaterialHighWater,
		},
		{
			"location and material plain",
			"What products in Italy are made of wool?",
			models.CategoryProductsByLocationMaterial,
		},
		{
			"suppliers by location highest carbon",
			"What suppliers in China have the highest carbon footprint?",
			models.CategorySuppliersByLocationHighestCarbon,
		},
		{
			"suppliers by location highest water",
			"Which suppliers in India have the highest water usage?",
			models.CategorySuppliersByLocationHighestWater,
		},
		{
			"suppliers by location low compliance",
			"Which suppliers in Bangladesh have compliance scores below 0.9?",
			models.CategorySuppliersByLocationLowCompliance,
		},
		{
			"suppliers by location plain",
			"Which suppliers are in Pakistan?",
			models.CategorySuppliersByLocation,
		},
		{
			"material only",
			"Show products made of denim",
			models.CategoryProductsByMaterial,
		},
		{
			"trend by supplier",
			"Show historical trends for Shahjalal Textile Mills",
			models.CategoryTrendBySupplier,
		},
		{
			"global highest carbon",
			"Who has the highest carbon footprint?",
			models.CategoryGlobalHighestCarbon,
		},
		{
			"global highest water",
			"Who has the highest water usage?",
			models.CategoryGlobalHighestWater,
		},
		{
			"global lowest compliance",
			"Which supplier has the lowest compliance score?",
			models.CategoryGlobalLowestCompliance,
		},
		{
			"water intensive products",
			"How does weather affect water-intensive products?",
			models.CategoryGlobalWaterIntensiveProducts,
		},
		{
			"compliance breaches",
			"Which products exceed compliance thresholds?",
			models.CategoryGlobalComplianceBreaches,
		},
		{
			"highest risk",
			"Which supplier has the highest risk?",
			models.CategoryGlobalHighestRisk,
		},
		{
			"fallback",
			"Tell me something interesting",
			models.CategoryFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, _ := r.Resolve(tt.question)
			assert.Equal(t, tt.category, query.Category)
		})
	}
}

func TestResolve_BindsFilterValuesAsArgs(t *testing.T) {
	r := newTestResolver()

	query, kw := r.Resolve("What suppliers in China have the highest carbon footprint?")

	assert.Equal(t, "China", kw.Location)
	assert.Contains(t, query.SQL, "location LIKE ?")
	assert.Contains(t, query.SQL, "ORDER BY carbon_footprint DESC")
	assert.NotContains(t, query.SQL, "China")
	assert.Equal(t, []interface{}{"%China%"}, query.Args)
}

func TestResolve_ProductQueryBindsBothFilters(t *testing.T) {
	r := newTestResolver()

	query, _ := r.Resolve("Which products in India use cotton and have a low carbon footprint?")

	assert.Equal(t, []interface{}{"%India%", "%Cotton%"}, query.Args)
	assert.Contains(t, query.SQL, "ORDER BY p.carbon_per_unit ASC")
}

func TestResolve_TrendBindsSupplierName(t *testing.T) {
	r := newTestResolver()

	query, _ := r.Resolve("Show historical trends for Shahjalal Textile Mills")

	require.Len(t, query.Args, 1)
	assert.Equal(t, "Shahjalal Textile Mills", query.Args[0])
	assert.Contains(t, query.SQL, "ORDER BY sh.year")
}

// The bare word "compliance" appears in two rules with different shapes.
// Location-scoped supplier questions take the 0.9 threshold filter, while
// unscoped compliance questions fall through to the product join.
func TestResolve_CompliancePrecedence(t *testing.T) {
	r := newTestResolver()

	scoped, _ := r.Resolve("Which suppliers in India have low compliance?")
	assert.Equal(t, models.CategorySuppliersByLocationLowCompliance, scoped.Category)
	assert.Contains(t, scoped.SQL, "compliance_score < 0.9")

	global, _ := r.Resolve("Which products have compliance issues?")
	assert.Equal(t, models.CategoryGlobalComplianceBreaches, global.Category)
	assert.Contains(t, global.SQL, "s.compliance_score < 0.9")
}

func TestResolve_Deterministic(t *testing.T) {
	r := newTestResolver()

	first, _ := r.Resolve("Who has the highest water usage?")
	for i := 0; i < 5; i++ {
		next, _ := r.Resolve("Who has the highest water usage?")
		assert.Equal(t, first, next)
	}
}

func TestResolve_FallbackSQL(t *testing.T) {
	r := newTestResolver()

	query, _ := r.Resolve("Tell me something interesting")
	assert.Equal(t, `SELECT * FROM suppliers LIMIT 1;`, query.SQL)
	assert.Empty(t, query.Args)
}
