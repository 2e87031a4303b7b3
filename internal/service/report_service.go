package service

import (
	"context"
	"fmt"

	"github.com/GTDGit/gtd_report/internal/models"
	"github.com/GTDGit/gtd_report/internal/utils"
)

// TopProductsLimit is the number of products returned by the top products report.
const TopProductsLimit = 5

// ReportStore is the data access needed by ReportService.
// *repository.ReportRepository implements it.
type ReportStore interface {
	TopProducts(ctx context.Context, limit int) ([]models.Product, error)
	ProductSupplierRows(ctx context.Context) ([]models.ProductSupplierRow, error)
}

// ReportService builds the catalog reports.
type ReportService struct {
	store ReportStore
}

// NewReportService constructs a ReportService.
func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store}
}

// GetTopProducts returns the highest priced products, most expensive first.
// The result is never nil.
func (s *ReportService) GetTopProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.TopProducts(ctx, TopProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: top products: %v", utils.ErrDatabase, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProductsWithSuppliers returns every product with its suppliers nested
// under it, in product id order.
func (s *ReportService) GetProductsWithSuppliers(ctx context.Context) ([]models.ProductWithSuppliers, error) {
	rows, err := s.store.ProductSupplierRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: products with suppliers: %v", utils.ErrDatabase, err)
	}
	return GroupProductSuppliers(rows), nil
}

// GroupProductSuppliers folds flat join rows into one entry per product id.
// Products keep the order in which their id was first seen and suppliers keep
// row order within their product. Rows without a supplier only register the
// product, so a product with no suppliers gets an empty list.
func GroupProductSuppliers(rows []models.ProductSupplierRow) []models.ProductWithSuppliers {
	products := make([]models.ProductWithSuppliers, 0, len(rows))
	index := make(map[int]int, len(rows))

	for _, r := range rows {
		i, ok := index[r.ProductID]
		if !ok {
			i = len(products)
			index[r.ProductID] = i
			products = append(products, models.ProductWithSuppliers{
				ID:        r.ProductID,
				Name:      r.ProductName,
				Price:     r.Price,
				Image:     r.Image,
				Suppliers: []models.Supplier{},
			})
		}
		if r.HasSupplier() {
			products[i].Suppliers = append(products[i].Suppliers, r.Supplier())
		}
	}
	return products
}
