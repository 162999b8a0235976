package insight

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaredmarko/worldly-demo/internal/agent/external"
	"github.com/jaredmarko/worldly-demo/internal/agent/weather"
	"github.com/jaredmarko/worldly-demo/internal/common/logger"
	"github.com/jaredmarko/worldly-demo/internal/models"
)

type stubTrends struct {
	records []models.HistoryRecord
	err     error
}

func (s *stubTrends) SupplierTrends(ctx context.Context, name string) ([]models.HistoryRecord, error) {
	return s.records, s.err
}

var shahjalalHistory = []models.HistoryRecord{
	{Year: 2021, CarbonFootprint: 1700.0, WaterUsage: 21000.0, ComplianceScore: 0.78},
	{Year: 2022, CarbonFootprint: 1600.0, WaterUsage: 20000.0, ComplianceScore: 0.80},
	{Year: 2023, CarbonFootprint: 1550.0, WaterUsage: 19000.0, ComplianceScore: 0.81},
	{Year: 2024, CarbonFootprint: 1500.0, WaterUsage: 18500.0, ComplianceScore: 0.82},
}

func newTestComposer(t *testing.T, trends TrendSource) *Composer {
	if trends == nil {
		trends = &stubTrends{records: shahjalalHistory}
	}
	return NewComposer(trends, logger.NewTestLogger(t))
}

func clearSnapshot(suppliers ...string) *external.Snapshot {
	conditions := make(map[string]weather.Data, len(suppliers))
	for _, s := range suppliers {
		conditions[s] = weather.Data{Condition: "Clear"}
	}
	return &external.Snapshot{Weather: conditions}
}

func TestCompose_EmptyResults(t *testing.T) {
	c := newTestComposer(t, nil)
	ctx := context.Background()
	snap := clearSnapshot()

	tests := []struct {
		name     string
		question string
		expected string
	}{
		{
			"compliance filter named in message",
			"Which suppliers in USA have compliance scores below 0.9?",
			"No suppliers in USA have compliance scores below the threshold of 0.9—Worldly can leverage this strength for ESG compliance.",
		},
		{
			"material filter named in message",
			"What products in Italy use cotton?",
			"No products in Italy use cotton—Worldly can explore alternative materials or regions.",
		},
		{
			"unrecognized material still reported",
			"What products in Italy use hemp?",
			"No products in Italy use unknown—Worldly can explore alternative materials or regions.",
		},
		{
			"no filters",
			"Who has the highest carbon footprint?",
			"No data available to generate insight.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Compose(ctx, tt.question, nil, snap))
		})
	}
}

func TestCompose_ProductHighWater(t *testing.T) {
	c := newTestComposer(t, nil)
	rows := []models.Row{{
		"name":           "Organic Cotton Shirt",
		"supplier":       "Shahjalal Textile Mills",
		"water_per_unit": 18.5,
	}}

	got := c.Compose(context.Background(),
		"Which products in Bangladesh use cotton and have high water usage?",
		rows, clearSnapshot("Shahjalal Textile Mills"))

	// (18.5 - 15) / 15 = 23.3% above the reference value.
	assert.Equal(t,
		"Organic Cotton Shirt from Shahjalal Textile Mills uses cotton and has high water usage at 18.5 m³, 23.3% above the industry average of 15.0 m³. Weather conditions (Clear) may impact production—Worldly can explore sustainable alternatives to reduce water impact.",
		got)
}

func TestCompose_ProductLowCarbon(t *testing.T) {
	c := newTestComposer(t, nil)
	rows := []models.Row{{
		"name":            "Wool Sweater",
		"supplier":        "Marzotto Group",
		"carbon_per_unit": 0.35,
	}}

	got := c.Compose(context.Background(),
		"Which products in Italy use wool and have a low carbon footprint?",
		rows, clearSnapshot("Marzotto Group"))

	assert.Contains(t, got, "Wool Sweater from Marzotto Group uses wool")
	assert.Contains(t, got, "0.35 kg CO2e, 30.0% below the industry average of 0.5 kg CO2e")
	assert.Contains(t, got, "(Clear)")
}

func TestCompose_ProductGeneric_UnknownWeather(t *testing.T) {
	c := newTestComposer(t, nil)
	rows := []models.Row{{
		"name":     "Denim Jeans",
		"supplier": "Arvind Limited",
	}}

	// Snapshot has no entry for the supplier.
	got := c.Compose(context.Background(),
		"What products in India are made of denim?", rows, clearSnapshot())

	assert.Equal(t,
		"Denim Jeans from Arvind Limited uses denim, which may have sustainability implications. Weather conditions (unknown) may impact production—Worldly can assess its environmental impact.",
		got)
}

func TestCompose_TrendCarbon(t *testing.T) {
	c := newTestComposer(t, nil)
	rows := []models.Row{
		{"name": "Shahjalal Textile Mills", "year": "2021", "carbon_footprint": 1700.0},
		{"name": "Shahjalal Textile Mills", "year": "2022", "carbon_footprint": 1600.0},
		{"name": "Shahjalal Textile Mills", "year": "2023", "carbon_footprint": 1550.0},
		{"name": "Shahjalal Textile Mills", "year": "2024", "carbon_footprint": 1500.0},
	}

	got := c.Compose(context.Background(),
		"Show historical trends for Shahjalal Textile Mills", rows, clearSnapshot())

	assert.Equal(t,
		"Shahjalal Textile Mills’s carbon footprint is decreasing from 1700.0 in 2021 to 1500.0 in 2024 (-11.8% change). If trends continue, it may be 1433.3 tons CO2e by 2025—Worldly can leverage this trend to meet client ESG goals.",
		got)
}

func TestCompose_TrendMetricSelection(t *testing.T) {
	c := newTestComposer(t, nil)
	rows := []models.Row{
		{"name": "Shahjalal Textile Mills", "year": "2021", "carbon_footprint": 1700.0, "water_usage": 21000.0, "compliance_score": 0.78},
		{"name": "Shahjalal Textile Mills", "year": "2024", "carbon_footprint": 1500.0, "water_usage": 18500.0, "compliance_score": 0.82},
	}
	ctx := context.Background()

	water := c.Compose(ctx, "Show water usage trends for Shahjalal Textile Mills", rows, clearSnapshot())
	assert.Contains(t, water, "water usage is decreasing from 21000.0")
	assert.Contains(t, water, "m³ by 2025")

	compliance := c.Compose(ctx, "Show compliance trends for Shahjalal Textile Mills", rows, clearSnapshot())
	assert.Contains(t, compliance, "compliance score is increasing from 0.78")
	assert.Contains(t, compliance, "score by 2025")
}

func TestCompose_SuppliersByLocationHighestCarbon(t *testing.T) {
	c := newTestComposer(t, &stubTrends{records: shahjalalHistory})
	rows := []models.Row{{
		"name":             "Crystal Group",
		"location":         "Hong Kong, China",
		"carbon_footprint": 1100.0,
	}}
	ctx := context.Background()

	china := c.Compose(ctx, "What suppliers in China have the highest carbon footprint?", rows, clearSnapshot())
	assert.Contains(t, china, "Crystal Group in China has the highest carbon footprint at 1500.0 tons CO2e in 2024")
	assert.Contains(t, china, "decreasing trend (-11.8% since 2021)")
	assert.Contains(t, china, "1433.3 tons by 2025")

	india := c.Compose(ctx, "What suppliers in India have the highest carbon footprint?", rows, clearSnapshot())
	assert.Contains(t, india, "in India has the highest carbon footprint")
	assert.Contains(t, india, "growing textile sector")
}

func TestCompose_SuppliersByLocationHighestCarbon_TrendUnavailable(t *testing.T) {
	c := newTestComposer(t, &stubTrends{err: errors.New("database closed")})
	rows := []models.Row{{"name": "Crystal Group", "carbon_footprint": 1100.0}}

	got := c.Compose(context.Background(),
		"What suppliers in China have the highest carbon footprint?", rows, clearSnapshot())

	assert.Contains(t, got, "Crystal Group has the highest carbon footprint in China")
}

func TestCompose_SuppliersByLocationHighestWater(t *testing.T) {
	c := newTestComposer(t, nil)
	rows := []models.Row{{
		"name":        "Shahjalal Textile Mills",
		"location":    "Dhaka, Bangladesh",
		"water_usage": 18000.0,
	}}

	got := c.Compose(context.Background(),
		"Which suppliers in Bangladesh have the highest water usage?", rows, clearSnapshot())

	assert.Equal(t,
		"Shahjalal Textile Mills has the highest water usage at 18000.0 m³, 20.0% above the industry average of 15000.0 m³—Worldly can target them for water reduction initiatives.",
		got)
}

func TestCompose_SuppliersByLocationLowCompliance(t *testing.T) {
	c := newTestComposer(t, nil)
	rows := []models.Row{{
		"name":             "Shahjalal Textile Mills",
		"location":         "Dhaka, Bangladesh",
		"compliance_score": 0.82,
	}}

	got := c.Compose(context.Background(),
		"Which suppliers in Bangladesh have compliance scores below 0.9?", rows, clearSnapshot())

	assert.Equal(t,
		"Shahjalal Textile Mills has the lowest compliance score at 0.82—Worldly should prioritize an audit to improve ESG performance.",
		got)
}

func TestCompose_SuppliersByLocationPlain(t *testing.T) {
	c := newTestComposer(t, nil)
	rows := []models.Row{{"name": "Nishat Mills", "location": "Lahore, Pakistan"}}

	got := c.Compose(context.Background(), "Which suppliers are in Pakistan?", rows, clearSnapshot())

	assert.Equal(t,
		"Nishat Mills is located in Pakistan, which may face regional sustainability challenges—Worldly can assess local impacts.",
		got)
}

func TestCompose_GlobalBranches(t *testing.T) {
	c := newTestComposer(t, &stubTrends{records: shahjalalHistory})
	ctx := context.Background()
	snap := clearSnapshot("Shahjalal Textile Mills")

	t.Run("highest carbon uses history", func(t *testing.T) {
		rows := []models.Row{{"name": "Shahjalal Textile Mills", "carbon_footprint": 1450.0}}
		got := c.Compose(ctx, "Who has the highest carbon footprint?", rows, snap)
		assert.Contains(t, got, "Shahjalal Textile Mills’s 1500.0 tons CO2e in 2024 is the highest")
		assert.Contains(t, got, "Higg Index")
	})

	t.Run("water intensive products", func(t *testing.T) {
		rows := []models.Row{{"name": "Recycled Poly Jacket", "water_per_unit": 25.0, "supplier": "Shahjalal Textile Mills"}}
		got := c.Compose(ctx, "How does weather affect water-intensive products?", rows, snap)
		assert.Equal(t,
			"Worldly can flag water-intensive products from Shahjalal Textile Mills, potentially delayed by Clear conditions—consider sourcing from Patagonia Suppliers with lower risk.",
			got)
	})

	t.Run("compliance breaches", func(t *testing.T) {
		rows := []models.Row{{"name": "Organic Cotton Shirt", "supplier": "Shahjalal Textile Mills", "compliance_score": 0.82}}
		got := c.Compose(ctx, "Which products exceed compliance thresholds?", rows, snap)
		assert.Equal(t,
			"Organic Cotton Shirt from Shahjalal Textile Mills falls below Worldly’s 0.9 compliance threshold—recommend auditing their practices to meet client ESG standards.",
			got)
	})

	t.Run("highest risk", func(t *testing.T) {
		rows := []models.Row{{
			"name":             "Shahjalal Textile Mills",
			"carbon_footprint": 1450.0,
			"water_usage":      18000.0,
			"compliance_score": 0.82,
		}}
		got := c.Compose(ctx, "Which supplier has the highest risk?", rows, snap)
		assert.Equal(t,
			"Shahjalal Textile Mills has the highest risk score of 56.0—Worldly should prioritize them for sustainability interventions.",
			got)
	})
}

func TestCompose_NoBranchMatches(t *testing.T) {
	c := newTestComposer(t, nil)
	rows := []models.Row{{"name": "Shahjalal Textile Mills"}}

	got := c.Compose(context.Background(), "Tell me something interesting", rows, clearSnapshot())
	assert.Equal(t, "No specific insight generated.", got)
}
