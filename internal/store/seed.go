package store

import "context"

// Seed data mirrors the fixed reference dataset the agent answers over.

var seedSuppliers = []struct {
	name       string
	location   string
	latitude   float64
	longitude  float64
	carbon     float64
	water      float64
	compliance float64
}{
	{"Shahjalal Textile Mills", "Dhaka, Bangladesh", 23.8103, 90.4125, 1450.0, 18000.0, 0.82},
	{"Marzotto Group", "Vicenza, Italy", 45.5495, 11.5475, 950.0, 11000.0, 0.91},
	{"Patagonia Suppliers", "Ventura, USA", 34.2805, -119.2945, 700.0, 8500.0, 0.96},
	{"Arvind Limited", "Ahmedabad, India", 23.0225, 72.5714, 1300.0, 16000.0, 0.87},
	{"Crystal Group", "Hong Kong, China", 22.3193, 114.1694, 1100.0, 14000.0, 0.89},
	{"Esquel Group", "Guangzhou, China", 23.1291, 113.2644, 900.0, 12000.0, 0.93},
	{"Nishat Mills", "Lahore, Pakistan", 31.5204, 74.3587, 1200.0, 15500.0, 0.84},
	{"Vardhman Textiles", "Ludhiana, India", 30.9010, 75.8573, 1050.0, 13000.0, 0.90},
}

var seedProducts = []struct {
	name       string
	supplierID int64
	date       string
	carbon     float64
	water      float64
	material   string
}{
	{"Organic Cotton Shirt", 1, "2025-03-20", 0.45, 18.5, "Organic Cotton"},
	{"Wool Sweater", 2, "2025-03-22", 0.35, 12.0, "Wool"},
	{"Recycled Poly Jacket", 3, "2025-03-24", 0.65, 25.0, "Recycled Polyester"},
	{"Denim Jeans", 4, "2025-03-21", 0.55, 22.0, "Denim"},
	{"Polyester Tee", 5, "2025-03-23", 0.40, 15.0, "Polyester"},
	{"Linen Shirt", 6, "2025-03-22", 0.30, 10.0, "Linen"},
	{"Cotton Polo", 7, "2025-03-20", 0.50, 20.0, "Cotton"},
	{"Viscose Dress", 8, "2025-03-23", 0.38, 14.0, "Viscose"},
}

var seedHistory = []struct {
	supplierID int64
	year       string
	carbon     float64
	water      float64
	compliance float64
}{
	{1, "2021", 1700.0, 21000.0, 0.78}, {1, "2022", 1600.0, 20000.0, 0.80}, {1, "2023", 1550.0, 19000.0, 0.81}, {1, "2024", 1500.0, 18500.0, 0.82},
	{2, "2021", 1100.0, 13000.0, 0.88}, {2, "2022", 1050.0, 12500.0, 0.89}, {2, "2023", 1000.0, 12000.0, 0.90}, {2, "2024", 975.0, 11500.0, 0.91},
	{3, "2021", 900.0, 10000.0, 0.93}, {3, "2022", 850.0, 9500.0, 0.94}, {3, "2023", 800.0, 9000.0, 0.95}, {3, "2024", 750.0, 8750.0, 0.96},
	{4, "2021", 1500.0, 18000.0, 0.83}, {4, "2022", 1450.0, 17500.0, 0.84}, {4, "2023", 1400.0, 17000.0, 0.85}, {4, "2024", 1350.0, 16500.0, 0.86},
	{5, "2021", 1300.0, 16000.0, 0.86}, {5, "2022", 1250.0, 15500.0, 0.87}, {5, "2023", 1200.0, 15000.0, 0.88}, {5, "2024", 1150.0, 14500.0, 0.89},
	{6, "2021", 1000.0, 14000.0, 0.90}, {6, "2022", 975.0, 13500.0, 0.91}, {6, "2023", 950.0, 13000.0, 0.92}, {6, "2024", 925.0, 12500.0, 0.93},
	{7, "2021", 1400.0, 17000.0, 0.81}, {7, "2022", 1350.0, 16500.0, 0.82}, {7, "2023", 1300.0, 16000.0, 0.83}, {7, "2024", 1250.0, 15750.0, 0.84},
	{8, "2021", 1150.0, 14500.0, 0.87}, {8, "2022", 1100.0, 14000.0, 0.88}, {8, "2023", 1075.0, 13500.0, 0.89}, {8, "2024", 1050.0, 13250.0, 0.90},
}

// Seed populates the schema with the reference dataset. It assumes InitSchema
// ran first, so the tables are empty and autoincrement ids start at 1.
func (s *Store) Seed(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, sup := range seedSuppliers {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO suppliers (name, location, latitude, longitude, carbon_footprint, water_usage, compliance_score)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sup.name, sup.location, sup.latitude, sup.longitude, sup.carbon, sup.water, sup.compliance); err != nil {
			return err
		}
	}

	for _, p := range seedProducts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products (name, supplier_id, production_date, carbon_per_unit, water_per_unit, material)
			VALUES (?, ?, ?, ?, ?, ?)`,
			p.name, p.supplierID, p.date, p.carbon, p.water, p.material); err != nil {
			return err
		}
	}

	for _, h := range seedHistory {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO supplier_history (supplier_id, year, carbon_footprint, water_usage, compliance_score)
			VALUES (?, ?, ?, ?, ?)`,
			h.supplierID, h.year, h.carbon, h.water, h.compliance); err != nil {
			return err
		}
	}

	return tx.Commit()
}
