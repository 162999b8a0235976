// Package external gathers the enrichment data that rides alongside query
// results: live weather per supplier site and static sustainability risk
// labels.
package external

import (
	"context"

	"github.com/jaredmarko/worldly-demo/internal/agent/weather"
	"github.com/jaredmarko/worldly-demo/internal/common/logger"
	"github.com/jaredmarko/worldly-demo/internal/models"
)

// RiskProfile labels a supplier's emissions and water exposure.
type RiskProfile struct {
	EmissionsRisk string
	WaterRisk     string
}

// sustainabilityRisks mirrors public ESG assessments for the seeded
// suppliers. Keys are supplier names as stored.
var sustainabilityRisks = map[string]RiskProfile{
	"Shahjalal Textile Mills": {EmissionsRisk: "High", WaterRisk: "High"},
	"Marzotto Group":          {EmissionsRisk: "Moderate", WaterRisk: "Low"},
	"Patagonia Suppliers":     {EmissionsRisk: "Low", WaterRisk: "Low"},
	"Arvind Limited":          {EmissionsRisk: "High", WaterRisk: "Moderate"},
	"Crystal Group":           {EmissionsRisk: "Moderate", WaterRisk: "Moderate"},
	"Esquel Group":            {EmissionsRisk: "Low", WaterRisk: "Low"},
	"Nishat Mills":            {EmissionsRisk: "High", WaterRisk: "High"},
	"Vardhman Textiles":       {EmissionsRisk: "Moderate", WaterRisk: "Moderate"},
}

// SiteSource provides the coordinates of every supplier site.
type SiteSource interface {
	SupplierSites(ctx context.Context) ([]models.SupplierSite, error)
}

// WeatherSource looks up current conditions for a coordinate pair.
type WeatherSource interface {
	Fetch(ctx context.Context, lat, lon float64) weather.Data
}

// Snapshot holds the enrichment fetched for a single question.
type Snapshot struct {
	Weather        map[string]weather.Data
	Sustainability map[string]RiskProfile
}

// Condition returns the observed weather condition at a supplier's site, or
// "unknown" when the lookup failed or the supplier has no site on record.
func (s *Snapshot) Condition(supplier string) string {
	if s == nil {
		return "unknown"
	}
	data, ok := s.Weather[supplier]
	if !ok || data.Failed() {
		return "unknown"
	}
	return data.Condition
}

// Summary flattens the snapshot into the response shape.
func (s *Snapshot) Summary() *models.ExternalSummary {
	if s == nil {
		return nil
	}
	summary := &models.ExternalSummary{
		WeatherConditions: make(map[string]string, len(s.Weather)),
		EmissionsRisks:    make(map[string]string, len(s.Sustainability)),
	}
	for name, data := range s.Weather {
		if data.Failed() {
			summary.WeatherConditions[name] = data.Err
		} else {
			summary.WeatherConditions[name] = data.Condition
		}
	}
	for name, profile := range s.Sustainability {
		summary.EmissionsRisks[name] = profile.EmissionsRisk
	}
	return summary
}

// Fetcher assembles snapshots for the suppliers in the store.
type Fetcher struct {
	sites   SiteSource
	weather WeatherSource
	logger  logger.Logger
}

func NewFetcher(sites SiteSource, weather WeatherSource, log logger.Logger) *Fetcher {
	return &Fetcher{
		sites:   sites,
		weather: weather,
		logger:  log.WithFields(map[string]interface{}{"component": "external"}),
	}
}

// Fetch builds a snapshot covering every supplier site. A failed site
// listing yields an empty snapshot rather than an error so enrichment can
// never block the answer.
func (f *Fetcher) Fetch(ctx context.Context) *Snapshot {
	snap := &Snapshot{
		Weather:        make(map[string]weather.Data),
		Sustainability: sustainabilityRisks,
	}

	sites, err := f.sites.SupplierSites(ctx)
	if err != nil {
		f.logger.Warn("supplier site listing failed", map[string]interface{}{
			"error": err.Error(),
		})
		return snap
	}

	for _, site := range sites {
		snap.Weather[site.Name] = f.weather.Fetch(ctx, site.Latitude, site.Longitude)
	}
	return snap
}
