package models

// Product represents a catalog product row.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	ID    int     `db:"id" json:"id"`
	Name  string  `db:"name" json:"name"`
	Price float64 `db:"price" json:"price"`
	Image string  `db:"image" json:"image"`
}

// ProductWithSuppliers is a product with the suppliers attached to it,
// in the order the join returned them.
type ProductWithSuppliers struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Image     string     `json:"image"`
	Suppliers []Supplier `json:"suppliers"`
}
