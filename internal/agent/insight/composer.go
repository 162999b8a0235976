// Package insight turns query results into a short narrative recommendation.
package insight

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jaredmarko/worldly-demo/internal/agent/external"
	"github.com/jaredmarko/worldly-demo/internal/agent/risk"
	"github.com/jaredmarko/worldly-demo/internal/agent/trend"
	"github.com/jaredmarko/worldly-demo/internal/common/logger"
	"github.com/jaredmarko/worldly-demo/internal/models"
)

// Industry reference values for per-unit and per-supplier comparisons.
const (
	productWaterAvg  = 15.0
	productCarbonAvg = 0.5
	supplierWaterAvg = 15000.0
)

// TrendSource supplies per-supplier history for trend-backed insights.
type TrendSource interface {
	SupplierTrends(ctx context.Context, name string) ([]models.HistoryRecord, error)
}

type Composer struct {
	trends TrendSource
	logger logger.Logger
}

func NewComposer(trends TrendSource, log logger.Logger) *Composer {
	return &Composer{
		trends: trends,
		logger: log.WithFields(map[string]interface{}{"component": "insight"}),
	}
}

// Compose builds the insight for a resolved question. Branches key off the
// same question phrases the resolver matches so the narrative always refers
// to the filters that produced the rows.
func (c *Composer) Compose(ctx context.Context, question string, rows []models.Row, snap *external.Snapshot) string {
	q := strings.ToLower(question)
	location := locationName(q)

	if len(rows) == 0 {
		return c.composeEmpty(q, location)
	}

	if strings.Contains(q, "products in") && (strings.Contains(q, "use") || strings.Contains(q, "are made of")) {
		return c.composeProduct(q, rows, snap)
	}

	if strings.Contains(q, "trend") || strings.Contains(q, "historical") {
		return composeTrend(q, rows)
	}

	if strings.Contains(q, "suppliers in") || strings.Contains(q, "suppliers are in") || strings.Contains(q, "suppliers located in") {
		return c.composeLocationSupplier(ctx, q, location, rows)
	}

	switch {
	case strings.Contains(q, "highest carbon footprint"):
		return c.composeHighestCarbon(ctx, rows)
	case strings.Contains(q, "highest water usage"):
		return composeHighestWater(rows)
	case strings.Contains(q, "lowest compliance"):
		return composeLowestCompliance(rows)
	case strings.Contains(q, "water-intensive"):
		supplier := asString(rows[0]["supplier"])
		return fmt.Sprintf("Worldly can flag water-intensive products from %s, potentially delayed by %s conditions—consider sourcing from Patagonia Suppliers with lower risk.",
			supplier, snap.Condition(supplier))
	case strings.Contains(q, "compliance"):
		return fmt.Sprintf("%s from %s falls below Worldly’s 0.9 compliance threshold—recommend auditing their practices to meet client ESG standards.",
			asString(rows[0]["name"]), asString(rows[0]["supplier"]))
	case strings.Contains(q, "highest risk"):
		score := risk.Score(asFloat(rows[0]["carbon_footprint"]), asFloat(rows[0]["water_usage"]), asFloat(rows[0]["compliance_score"]))
		return fmt.Sprintf("%s has the highest risk score of %.1f—Worldly should prioritize them for sustainability interventions.",
			asString(rows[0]["name"]), score)
	}

	return "No specific insight generated."
}

func (c *Composer) composeEmpty(q, location string) string {
	if strings.Contains(q, "suppliers in") &&
		(strings.Contains(q, "low compliance") || strings.Contains(q, "lowest compliance") || strings.Contains(q, "compliance scores below")) {
		return fmt.Sprintf("No suppliers in %s have compliance scores below the threshold of 0.9—Worldly can leverage this strength for ESG compliance.", location)
	}
	if strings.Contains(q, "products in") && (strings.Contains(q, "use") || strings.Contains(q, "are made of")) {
		return fmt.Sprintf("No products in %s use %s—Worldly can explore alternative materials or regions.", location, materialName(q))
	}
	return "No data available to generate insight."
}

func (c *Composer) composeProduct(q string, rows []models.Row, snap *external.Snapshot) string {
	product := asString(rows[0]["name"])
	supplier := asString(rows[0]["supplier"])
	material := materialName(q)
	condition := snap.Condition(supplier)

	if strings.Contains(q, "high water usage") {
		waterUsage := asFloat(rows[0]["water_per_unit"])
		diff := (waterUsage - productWaterAvg) / productWaterAvg * 100
		comparison := "below"
		if waterUsage > productWaterAvg {
			comparison = "above"
		}
		return fmt.Sprintf("%s from %s uses %s and has high water usage at %s m³, %.1f%% %s the industry average of %s m³. Weather conditions (%s) may impact production—Worldly can explore sustainable alternatives to reduce water impact.",
			product, supplier, material, formatNumber(waterUsage), math.Abs(diff), comparison, formatNumber(productWaterAvg), condition)
	}
	if strings.Contains(q, "low carbon footprint") {
		carbon := asFloat(rows[0]["carbon_per_unit"])
		diff := (carbon - productCarbonAvg) / productCarbonAvg * 100
		comparison := "above"
		if carbon < productCarbonAvg {
			comparison = "below"
		}
		return fmt.Sprintf("%s from %s uses %s and has a low carbon footprint at %s kg CO2e, %.1f%% %s the industry average of %s kg CO2e. Weather conditions (%s) may impact production—Worldly can highlight this for sustainable sourcing.",
			product, supplier, material, formatNumber(carbon), math.Abs(diff), comparison, formatNumber(productCarbonAvg), condition)
	}
	return fmt.Sprintf("%s from %s uses %s, which may have sustainability implications. Weather conditions (%s) may impact production—Worldly can assess its environmental impact.",
		product, supplier, material, condition)
}

func composeTrend(q string, rows []models.Row) string {
	supplier := "Unknown"
	if name, ok := rows[0]["name"]; ok {
		supplier = asString(name)
	}

	metric, metricName, unit := "carbon_footprint", "carbon footprint", "tons CO2e"
	if strings.Contains(q, "water usage") {
		metric, metricName, unit = "water_usage", "water usage", "m³"
	} else if strings.Contains(q, "compliance") {
		metric, metricName, unit = "compliance_score", "compliance score", "score"
	}

	points := make([]trend.Point, 0, len(rows))
	for _, row := range rows {
		points = append(points, trend.Point{
			Year:  int(asFloat(row["year"])),
			Value: asFloat(row[metric]),
		})
	}

	first := asFloat(rows[0][metric])
	last := asFloat(rows[len(rows)-1][metric])
	direction := "increasing"
	if last < first {
		direction = "decreasing"
	}
	return fmt.Sprintf("%s’s %s is %s from %s in 2021 to %s in 2024 (%.1f%% change). If trends continue, it may be %.1f %s by 2025—Worldly can leverage this trend to meet client ESG goals.",
		supplier, metricName, direction, formatNumber(first), formatNumber(last), trend.PercentChange(points), trend.ProjectNext(points), unit)
}

func (c *Composer) composeLocationSupplier(ctx context.Context, q, location string, rows []models.Row) string {
	supplier := asString(rows[0]["name"])

	if strings.Contains(q, "highest carbon footprint") {
		current, direction, pct, future, err := c.carbonTrend(ctx, supplier)
		if err != nil {
			c.logger.Warn("trend lookup failed", map[string]interface{}{
				"supplier": supplier,
				"error":    err.Error(),
			})
			return fmt.Sprintf("%s has the highest carbon footprint in %s—Worldly can target them for emissions reductions.", supplier, location)
		}
		if strings.Contains(q, "china") {
			return fmt.Sprintf("%s in China has the highest carbon footprint at %s tons CO2e in 2024, with a %s trend (%.1f%% since 2021). China’s strict emissions regulations may require Worldly’s Higg Index to accelerate reductions to %.1f tons by 2025.",
				supplier, formatNumber(current), direction, pct, future)
		}
		if strings.Contains(q, "india") {
			return fmt.Sprintf("%s in India has the highest carbon footprint at %s tons CO2e in 2024, with a %s trend (%.1f%% since 2021). India’s growing textile sector may benefit from Worldly’s Higg Index to reduce emissions to %.1f tons by 2025.",
				supplier, formatNumber(current), direction, pct, future)
		}
		return fmt.Sprintf("%s’s %s tons CO2e in 2024 is the highest, with a %s trend (%.1f%% since 2021). If trends continue, it may drop to %.1f tons by 2025—Worldly’s Higg Index can accelerate this.",
			supplier, formatNumber(current), direction, pct, future)
	}
	if strings.Contains(q, "highest water usage") {
		return composeHighestWater(rows)
	}
	if strings.Contains(q, "low compliance") || strings.Contains(q, "lowest compliance") || strings.Contains(q, "compliance scores below") {
		return composeLowestCompliance(rows)
	}
	return fmt.Sprintf("%s is located in %s, which may face regional sustainability challenges—Worldly can assess local impacts.", supplier, location)
}

func (c *Composer) composeHighestCarbon(ctx context.Context, rows []models.Row) string {
	supplier := asString(rows[0]["name"])
	current, direction, pct, future, err := c.carbonTrend(ctx, supplier)
	if err != nil {
		c.logger.Warn("trend lookup failed", map[string]interface{}{
			"supplier": supplier,
			"error":    err.Error(),
		})
		return fmt.Sprintf("%s has the highest carbon footprint—Worldly can target them for emissions reductions.", supplier)
	}
	return fmt.Sprintf("%s’s %s tons CO2e in 2024 is the highest, with a %s trend (%.1f%% since 2021). If trends continue, it may drop to %.1f tons by 2025—Worldly’s Higg Index can accelerate this.",
		supplier, formatNumber(current), direction, pct, future)
}

// carbonTrend resolves the latest carbon footprint plus its direction,
// percent change, and next-year projection from the supplier's history.
// Callers treat a failure here as a degraded insight, not a failed run;
// that narrows the error contract relative to prior behavior, where a
// history lookup fault surfaced in the response's error field.
func (c *Composer) carbonTrend(ctx context.Context, supplier string) (current float64, direction string, pct, future float64, err error) {
	history, err := c.trends.SupplierTrends(ctx, supplier)
	if err != nil {
		return 0, "", 0, 0, err
	}
	if len(history) == 0 {
		return 0, "", 0, 0, fmt.Errorf("no history for supplier %q", supplier)
	}

	points := make([]trend.Point, 0, len(history))
	for _, record := range history {
		points = append(points, trend.Point{Year: record.Year, Value: record.CarbonFootprint})
	}

	current = points[len(points)-1].Value
	direction = "increasing"
	if current < points[0].Value {
		direction = "decreasing"
	}
	return current, direction, trend.PercentChange(points), trend.ProjectNext(points), nil
}

func composeHighestWater(rows []models.Row) string {
	supplier := asString(rows[0]["name"])
	waterUsage := asFloat(rows[0]["water_usage"])
	diff := (waterUsage - supplierWaterAvg) / supplierWaterAvg * 100
	comparison := "below"
	if waterUsage > supplierWaterAvg {
		comparison = "above"
	}
	return fmt.Sprintf("%s has the highest water usage at %s m³, %.1f%% %s the industry average of %s m³—Worldly can target them for water reduction initiatives.",
		supplier, formatNumber(waterUsage), math.Abs(diff), comparison, formatNumber(supplierWaterAvg))
}

func composeLowestCompliance(rows []models.Row) string {
	return fmt.Sprintf("%s has the lowest compliance score at %s—Worldly should prioritize an audit to improve ESG performance.",
		asString(rows[0]["name"]), formatNumber(asFloat(rows[0]["compliance_score"])))
}

// locationName maps a lowercased question to the display name of the first
// known region it mentions.
func locationName(q string) string {
	switch {
	case strings.Contains(q, "india"):
		return "India"
	case strings.Contains(q, "china"):
		return "China"
	case strings.Contains(q, "usa"):
		return "USA"
	case strings.Contains(q, "bangladesh"):
		return "Bangladesh"
	case strings.Contains(q, "pakistan"):
		return "Pakistan"
	case strings.Contains(q, "italy"):
		return "Italy"
	}
	return "unknown"
}

func materialName(q string) string {
	switch {
	case strings.Contains(q, "cotton"):
		return "cotton"
	case strings.Contains(q, "wool"):
		return "wool"
	case strings.Contains(q, "polyester"):
		return "polyester"
	case strings.Contains(q, "denim"):
		return "denim"
	}
	return "unknown"
}

// formatNumber renders a value the way the dataset stores it, keeping a
// trailing .0 on whole floats.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func asString(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case []byte:
		return string(value)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", value)
	}
}

func asFloat(v interface{}) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case int64:
		return float64(value)
	case int:
		return float64(value)
	case []byte:
		f, _ := strconv.ParseFloat(string(value), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(value, 64)
		return f
	default:
		return 0
	}
}
