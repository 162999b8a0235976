package resolver

import (
	"strings"

	"github.com/jaredmarko/worldly-demo/internal/agent/keywords"
	"github.com/jaredmarko/worldly-demo/internal/models"
)

// rule pairs a predicate over the lower-cased question and extracted filters
// with the query it produces. The slice below is evaluated top to bottom;
// order is load-bearing. Several substrings ("compliance" in particular)
// appear in more than one rule with different thresholds, and the original
// precedence is preserved deliberately rather than second-guessed.
type rule struct {
	match func(q string, kw keywords.Extract) bool
	build func(q string, kw keywords.Extract) Query
}

const fallbackSQL = `SELECT * FROM suppliers LIMIT 1;`

var rules = []rule{
	// 1. Product queries scoped by both location and material.
	{
		match: func(q string, kw keywords.Extract) bool {
			return strings.Contains(q, "products") && kw.Location != "" && kw.Material != ""
		},
		build: buildLocationMaterialProducts,
	},

	// 2. Supplier queries scoped by location.
	{
		match: func(q string, kw keywords.Extract) bool {
			return strings.Contains(q, "suppliers") && kw.Location != ""
		},
		build: buildLocationSuppliers,
	},

	// 3. Material-only product listing.
	{
		match: func(q string, kw keywords.Extract) bool {
			return kw.Material != ""
		},
		build: func(q string, kw keywords.Extract) Query {
			return Query{
				SQL:      `SELECT p.name, s.name AS supplier, p.water_per_unit FROM products p JOIN suppliers s ON p.supplier_id = s.id WHERE p.material LIKE ?;`,
				Args:     []interface{}{like(kw.Material)},
				Category: models.CategoryProductsByMaterial,
			}
		},
	},

	// 4. Historical trend for a resolved supplier.
	{
		match: func(q string, kw keywords.Extract) bool {
			return (strings.Contains(q, "trend") || strings.Contains(q, "historical")) && kw.SupplierName != ""
		},
		build: func(q string, kw keywords.Extract) Query {
			return Query{
				SQL:      `SELECT s.name, sh.year, sh.carbon_footprint, sh.water_usage, sh.compliance_score FROM supplier_history sh JOIN suppliers s ON sh.supplier_id = s.id WHERE s.name = ? ORDER BY sh.year;`,
				Args:     []interface{}{kw.SupplierName},
				Category: models.CategoryTrendBySupplier,
			}
		},
	},

	// 5. Global cascade keyed by literal substrings.
	{
		match: func(q string, kw keywords.Extract) bool {
			return strings.Contains(q, "highest carbon footprint")
		},
		build: func(q string, kw keywords.Extract) Query {
			return Query{
				SQL:      `SELECT name, carbon_footprint FROM suppliers ORDER BY carbon_footprint DESC;`,
				Category: models.CategoryGlobalHighestCarbon,
			}
		},
	},
	{
		match: func(q string, kw keywords.Extract) bool {
			return strings.Contains(q, "highest water usage")
		},
		build: func(q string, kw keywords.Extract) Query {
			return Query{
				SQL:      `SELECT name, water_usage FROM suppliers ORDER BY water_usage DESC;`,
				Category: models.CategoryGlobalHighestWater,
			}
		},
	},
	{
		match: func(q string, kw keywords.Extract) bool {
			return strings.Contains(q, "lowest compliance")
		},
		build: func(q string, kw keywords.Extract) Query {
			return Query{
				SQL:      `SELECT name, compliance_score FROM suppliers ORDER BY compliance_score ASC;`,
				Category: models.CategoryGlobalLowestCompliance,
			}
		},
	},
	{
		match: func(q string, kw keywords.Extract) bool {
			return strings.Contains(q, "weather affect water-intensive") || strings.Contains(q, "water-intensive products")
		},
		build: func(q string, kw keywords.Extract) Query {
			return Query{
				SQL:      `SELECT p.name, p.water_per_unit, s.name AS supplier FROM products p JOIN suppliers s ON p.supplier_id = s.id WHERE p.water_per_unit > 15;`,
				Category: models.CategoryGlobalWaterIntensiveProducts,
			}
		},
	},
	{
		match: func(q string, kw keywords.Extract) bool {
			return strings.Contains(q, "exceed compliance thresholds") || strings.Contains(q, "compliance")
		},
		build: func(q string, kw keywords.Extract) Query {
			return Query{
				SQL:      `SELECT p.name, s.name AS supplier, s.compliance_score FROM products p JOIN suppliers s ON p.supplier_id = s.id WHERE s.compliance_score < 0.9;`,
				Category: models.CategoryGlobalComplianceBreaches,
			}
		},
	},
	{
		match: func(q string, kw keywords.Extract) bool {
			return strings.Contains(q, "highest risk")
		},
		build: func(q string, kw keywords.Extract) Query {
			return Query{
				SQL:      `SELECT name, carbon_footprint, water_usage, compliance_score FROM suppliers;`,
				Category: models.CategoryGlobalHighestRisk,
			}
		},
	},

	// 6. Fallback: one arbitrary supplier row.
	{
		match: func(q string, kw keywords.Extract) bool { return true },
		build: func(q string, kw keywords.Extract) Query {
			return Query{SQL: fallbackSQL, Category: models.CategoryFallback}
		},
	},
}

func buildLocationMaterialProducts(q string, kw keywords.Extract) Query {
	args := []interface{}{like(kw.Location), like(kw.Material)}

	if strings.Contains(q, "low carbon footprint") {
		return Query{
			SQL:      `SELECT p.name, s.name AS supplier, p.carbon_per_unit FROM products p JOIN suppliers s ON p.supplier_id = s.id WHERE s.location LIKE ? AND p.material LIKE ? ORDER BY p.carbon_per_unit ASC;`,
			Args:     args,
			Category: models.CategoryProductsByLocationMaterialLowCarbon,
		}
	}
	if strings.Contains(q, "high water usage") || strings.Contains(q, "highest water usage") {
		return Query{
			SQL:      `SELECT p.name, s.name AS supplier, p.water_per_unit FROM products p JOIN suppliers s ON p.supplier_id = s.id WHERE s.location LIKE ? AND p.material LIKE ? ORDER BY p.water_per_unit DESC;`,
			Args:     args,
			Category: models.CategoryProductsByLocationMaterialHighWater,
		}
	}
	return Query{
		SQL:      `SELECT p.name, s.name AS supplier, p.water_per_unit FROM products p JOIN suppliers s ON p.supplier_id = s.id WHERE s.location LIKE ? AND p.material LIKE ?;`,
		Args:     args,
		Category: models.CategoryProductsByLocationMaterial,
	}
}

func buildLocationSuppliers(q string, kw keywords.Extract) Query {
	args := []interface{}{like(kw.Location)}

	if strings.Contains(q, "highest carbon footprint") {
		return Query{
			SQL:      `SELECT name, location, carbon_footprint FROM suppliers WHERE location LIKE ? ORDER BY carbon_footprint DESC;`,
			Args:     args,
			Category: models.CategorySuppliersByLocationHighestCarbon,
		}
	}
	if strings.Contains(q, "highest water usage") {
		return Query{
			SQL:      `SELECT name, location, water_usage FROM suppliers WHERE location LIKE ? ORDER BY water_usage DESC;`,
			Args:     args,
			Category: models.CategorySuppliersByLocationHighestWater,
		}
	}
	if strings.Contains(q, "low compliance") || strings.Contains(q, "lowest compliance") || strings.Contains(q, "compliance scores below") {
		return Query{
			SQL:      `SELECT name, location, compliance_score FROM suppliers WHERE location LIKE ? AND compliance_score < 0.9 ORDER BY compliance_score ASC;`,
			Args:     args,
			Category: models.CategorySuppliersByLocationLowCompliance,
		}
	}
	return Query{
		SQL:      `SELECT name, location, latitude, longitude FROM suppliers WHERE location LIKE ?;`,
		Args:     args,
		Category: models.CategorySuppliersByLocation,
	}
}
