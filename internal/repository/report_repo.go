package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/gtd_report/internal/models"
)

// ReportRepository runs the read-only catalog report queries.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// TopProducts returns at most limit products, most expensive first.
// Equal prices are ordered by id so repeated calls return the same sequence.
func (r *ReportRepository) TopProducts(ctx context.Context, limit int) ([]models.Product, error) {
	const q = `
        SELECT id, name, price, image
        FROM products
        ORDER BY price DESC, id ASC
        LIMIT $1`

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, q, limit); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductSupplierRows returns every product left-joined with its suppliers,
// ordered by product id. Products without suppliers yield one row with NULL
// supplier columns.
func (r *ReportRepository) ProductSupplierRows(ctx context.Context) ([]models.ProductSupplierRow, error) {
	const q = `
        SELECT
            p.id AS product_id, p.name AS product_name, p.price, p.image,
            s.id AS supplier_id, s.name AS supplier_name, s.contact, s.address
        FROM products p
        LEFT JOIN suppliers s ON s.product_id = p.id
        ORDER BY p.id`

	var rows []models.ProductSupplierRow
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// Ping checks that the database is reachable.
func (r *ReportRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
