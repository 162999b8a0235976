package models

// Row is a generic result row keyed by column name.
type Row map[string]interface{}

// Supplier mirrors the suppliers table.
type Supplier struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Location        string  `json:"location"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	CarbonFootprint float64 `json:"carbon_footprint"`
	WaterUsage      float64 `json:"water_usage"`
	ComplianceScore float64 `json:"compliance_score"` // in [0,1]
}

// Product mirrors the products table.
type Product struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	SupplierID     int64   `json:"supplier_id"`
	ProductionDate string  `json:"production_date"`
	CarbonPerUnit  float64 `json:"carbon_per_unit"`
	WaterPerUnit   float64 `json:"water_per_unit"`
	Material       string  `json:"material"`
}

// HistoryRecord is one year of a supplier's history, ordered by year.
type HistoryRecord struct {
	Year            int     `json:"year"`
	CarbonFootprint float64 `json:"carbon_footprint"`
	WaterUsage      float64 `json:"water_usage"`
	ComplianceScore float64 `json:"compliance_score"`
}

// SupplierSite is the coordinate snapshot used for weather lookups.
type SupplierSite struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ExternalSummary condenses the per-request external snapshot for responses.
type ExternalSummary struct {
	WeatherConditions map[string]string `json:"weather_conditions"`
	EmissionsRisks    map[string]string `json:"emissions_risks"`
}

// Response is the result of one Run invocation. Either Error is set, or the
// success fields are populated.
type Response struct {
	Message             string           `json:"message,omitempty"`
	Query               string           `json:"query,omitempty"`
	Results             []Row            `json:"results"`
	Insight             string           `json:"insight,omitempty"`
	Visualization       string           `json:"visualization,omitempty"`
	ExternalDataSummary *ExternalSummary `json:"external_data_summary,omitempty"`
	Error               string           `json:"error,omitempty"`
}

// IsError reports whether the response carries an error instead of results.
func (r *Response) IsError() bool {
	return r.Error != ""
}
