// Package chart picks a visualization for a result set and returns a
// reference the caller can hand to a rendering frontend. The chart kind is
// inferred from the shape of the result columns, checked in a fixed order so
// a result set always maps to the same kind.
package chart

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jaredmarko/worldly-demo/internal/models"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render returns a chart reference for the rows, or "" when no chart shape
// matches.
func (r *Renderer) Render(rows []models.Row) string {
	if len(rows) == 0 {
		return ""
	}
	kind := classify(rows[0])
	if kind == "" {
		return ""
	}
	return reference(kind)
}

// classify maps the first row's columns onto a chart kind. Order matters:
// supplier-level metrics win over per-unit ones, and any row carrying a year
// column is a trend series regardless of its other metrics.
func classify(row models.Row) string {
	_, hasYear := row["year"]
	_, hasName := row["name"]
	_, hasLocation := row["location"]
	_, hasCarbon := row["carbon_footprint"]
	_, hasWater := row["water_usage"]
	_, hasWaterPerUnit := row["water_per_unit"]
	_, hasCarbonPerUnit := row["carbon_per_unit"]
	_, hasCompliance := row["compliance_score"]
	_, hasLat := row["latitude"]
	_, hasLon := row["longitude"]

	switch {
	case hasCarbon && hasName && !hasYear:
		return "carbon"
	case hasWater && hasName && !hasYear:
		return "water_usage"
	case hasWaterPerUnit && hasName && !hasYear:
		return "water"
	case hasCarbonPerUnit && hasName && !hasYear:
		return "carbon_per_unit"
	case hasCompliance && hasLocation && !hasYear:
		return "compliance"
	case hasYear && (hasCarbon || hasWater || hasCompliance):
		return "trend"
	case hasLocation && hasName && hasLat && hasLon:
		return "location"
	}
	return ""
}

func reference(kind string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("worldly_%s_viz_%s.html", kind, id)
}
