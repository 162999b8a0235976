package models

// QueryCategory tags which SQL template and which insight/chart branch apply
// to a resolved question. The resolver and the insight composer must agree on
// this tag or the insight text can silently mismatch the returned rows.
type QueryCategory string

const (
	CategoryProductsByLocationMaterialLowCarbon QueryCategory = "products_by_location_material_low_carbon"
	CategoryProductsByLocationMaterialHighWater QueryCategory = "products_by_location_material_high_water"
	CategoryProductsByLocationMaterial          QueryCategory = "products_by_location_material"

	CategorySuppliersByLocationHighestCarbon QueryCategory = "suppliers_by_location_highest_carbon"
	CategorySuppliersByLocationHighestWater  QueryCategory = "suppliers_by_location_highest_water"
	CategorySuppliersByLocationLowCompliance QueryCategory = "suppliers_by_location_low_compliance"
	CategorySuppliersByLocation              QueryCategory = "suppliers_by_location"

	CategoryProductsByMaterial QueryCategory = "products_by_material"

	CategoryTrendBySupplier QueryCategory = "trend_by_supplier"

	CategoryGlobalHighestCarbon          QueryCategory = "global_highest_carbon"
	CategoryGlobalHighestWater           QueryCategory = "global_highest_water"
	CategoryGlobalLowestCompliance       QueryCategory = "global_lowest_compliance"
	CategoryGlobalWaterIntensiveProducts QueryCategory = "global_water_intensive_products"
	CategoryGlobalComplianceBreaches     QueryCategory = "global_compliance_breaches"
	CategoryGlobalHighestRisk            QueryCategory = "global_highest_risk"

	CategoryFallback QueryCategory = "fallback"
)
