package models

import "database/sql"

// Supplier represents a supplier linked to exactly one product.
type Supplier struct {
	ID      int    `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Contact string `db:"contact" json:"contact"`
	Address string `db:"address" json:"address"`
}

// ProductSupplierRow is one flattened row of the products/suppliers left join.
// Supplier columns are NULL when the product has no supplier.
type ProductSupplierRow struct {
	ProductID    int            `db:"product_id"`
	ProductName  string         `db:"product_name"`
	Price        float64        `db:"price"`
	Image        string         `db:"image"`
	SupplierID   sql.NullInt64  `db:"supplier_id"`
	SupplierName sql.NullString `db:"supplier_name"`
	Contact      sql.NullString `db:"contact"`
	Address      sql.NullString `db:"address"`
}

// HasSupplier reports whether the row carries a supplier.
func (r ProductSupplierRow) HasSupplier() bool {
	return r.SupplierID.Valid
}

// Supplier builds the supplier carried by the row.
func (r ProductSupplierRow) Supplier() Supplier {
	return Supplier{
		ID:      int(r.SupplierID.Int64),
		Name:    r.SupplierName.String,
		Contact: r.Contact.String,
		Address: r.Address.String,
	}
}
