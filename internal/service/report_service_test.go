package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_report/internal/models"
	"github.com/GTDGit/gtd_report/internal/utils"
)

// memStore is an in-memory ReportStore that orders rows the way the SQL does.
type memStore struct {
	products  []models.Product
	suppliers map[int][]models.Supplier
	err       error
}

func (m *memStore) TopProducts(_ context.Context, limit int) ([]models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	sorted := append([]models.Product{}, m.products...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Price != sorted[j].Price {
			return sorted[i].Price > sorted[j].Price
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (m *memStore) ProductSupplierRows(_ context.Context) ([]models.ProductSupplierRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	sorted := append([]models.Product{}, m.products...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var rows []models.ProductSupplierRow
	for _, p := range sorted {
		base := models.ProductSupplierRow{ProductID: p.ID, ProductName: p.Name, Price: p.Price, Image: p.Image}
		sups := m.suppliers[p.ID]
		if len(sups) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, s := range sups {
			r := base
			r.SupplierID = sql.NullInt64{Int64: int64(s.ID), Valid: true}
			r.SupplierName = sql.NullString{String: s.Name, Valid: true}
			r.Contact = sql.NullString{String: s.Contact, Valid: true}
			r.Address = sql.NullString{String: s.Address, Valid: true}
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func productRow(id int, name string, price float64) models.ProductSupplierRow {
	return models.ProductSupplierRow{ProductID: id, ProductName: name, Price: price, Image: name + ".png"}
}

func withSupplier(r models.ProductSupplierRow, id int, name string) models.ProductSupplierRow {
	r.SupplierID = sql.NullInt64{Int64: int64(id), Valid: true}
	r.SupplierName = sql.NullString{String: name, Valid: true}
	r.Contact = sql.NullString{String: name + "@example.com", Valid: true}
	r.Address = sql.NullString{String: "Street " + name, Valid: true}
	return r
}

func TestGetTopProducts_FewerThanLimit(t *testing.T) {
	store := &memStore{products: []models.Product{
		{ID: 1, Name: "A", Price: 10},
		{ID: 2, Name: "B", Price: 30},
		{ID: 3, Name: "C", Price: 20},
	}}
	svc := NewReportService(store)

	got, err := svc.GetTopProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{2, 3, 1}, ids(got))
}

func TestGetTopProducts_TruncatesToLimit(t *testing.T) {
	var products []models.Product
	for i := 1; i <= 8; i++ {
		products = append(products, models.Product{ID: i, Name: "P", Price: float64((i * 37) % 11)})
	}
	svc := NewReportService(&memStore{products: products})

	got, err := svc.GetTopProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, TopProductsLimit)

	returned := map[int]bool{}
	minReturned := got[0].Price
	for i, p := range got {
		returned[p.ID] = true
		if i > 0 {
			assert.LessOrEqual(t, p.Price, got[i-1].Price)
		}
		if p.Price < minReturned {
			minReturned = p.Price
		}
	}
	for _, p := range products {
		if !returned[p.ID] {
			assert.LessOrEqual(t, p.Price, minReturned)
		}
	}
}

func TestGetTopProducts_EmptyStore(t *testing.T) {
	svc := NewReportService(&memStore{})

	got, err := svc.GetTopProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetTopProducts_DatabaseError(t *testing.T) {
	svc := NewReportService(&memStore{err: errors.New("connection reset")})

	_, err := svc.GetTopProducts(context.Background())
	assert.ErrorIs(t, err, utils.ErrDatabase)
}

func TestGetProductsWithSuppliers_Scenario(t *testing.T) {
	store := &memStore{
		products: []models.Product{
			{ID: 2, Name: "B", Price: 50, Image: "b.png"},
			{ID: 1, Name: "A", Price: 100, Image: "a.png"},
		},
		suppliers: map[int][]models.Supplier{
			1: {{ID: 11, Name: "s1", Contact: "c", Address: "addr"}},
		},
	}
	svc := NewReportService(store)

	got, err := svc.GetProductsWithSuppliers(context.Background())
	require.NoError(t, err)

	want := []models.ProductWithSuppliers{
		{ID: 1, Name: "A", Price: 100, Image: "a.png", Suppliers: []models.Supplier{{ID: 11, Name: "s1", Contact: "c", Address: "addr"}}},
		{ID: 2, Name: "B", Price: 50, Image: "b.png", Suppliers: []models.Supplier{}},
	}
	assert.Equal(t, want, got)
}

func TestGetProductsWithSuppliers_DatabaseError(t *testing.T) {
	svc := NewReportService(&memStore{err: errors.New("no such table: suppliers")})

	got, err := svc.GetProductsWithSuppliers(context.Background())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, utils.ErrDatabase)
}

func TestGroupProductSuppliers_Counts(t *testing.T) {
	rows := []models.ProductSupplierRow{
		withSupplier(productRow(1, "A", 10), 100, "x"),
		withSupplier(productRow(1, "A", 10), 101, "y"),
		productRow(2, "B", 20),
		withSupplier(productRow(3, "C", 30), 102, "z"),
		withSupplier(productRow(3, "C", 30), 103, "w"),
		withSupplier(productRow(3, "C", 30), 104, "v"),
	}

	got := GroupProductSuppliers(rows)

	distinct := map[int]int{}
	for _, r := range rows {
		if _, ok := distinct[r.ProductID]; !ok {
			distinct[r.ProductID] = 0
		}
		if r.HasSupplier() {
			distinct[r.ProductID]++
		}
	}
	require.Len(t, got, len(distinct))
	for _, p := range got {
		assert.Len(t, p.Suppliers, distinct[p.ID], "product %d", p.ID)
	}
	assert.Equal(t, []int{1, 2, 3}, groupedIDs(got))
}

func TestGroupProductSuppliers_PreservesSupplierOrder(t *testing.T) {
	rows := []models.ProductSupplierRow{
		withSupplier(productRow(1, "A", 10), 9, "late"),
		withSupplier(productRow(1, "A", 10), 3, "early"),
	}

	got := GroupProductSuppliers(rows)

	require.Len(t, got, 1)
	require.Len(t, got[0].Suppliers, 2)
	assert.Equal(t, 9, got[0].Suppliers[0].ID)
	assert.Equal(t, 3, got[0].Suppliers[1].ID)
}

func TestGroupProductSuppliers_KeepsDuplicateSuppliers(t *testing.T) {
	rows := []models.ProductSupplierRow{
		withSupplier(productRow(1, "A", 10), 5, "dup"),
		withSupplier(productRow(1, "A", 10), 5, "dup"),
	}

	got := GroupProductSuppliers(rows)

	require.Len(t, got, 1)
	assert.Len(t, got[0].Suppliers, 2)
}

func TestGroupProductSuppliers_FirstSeenOrderWhenUnsorted(t *testing.T) {
	rows := []models.ProductSupplierRow{
		productRow(5, "E", 1),
		withSupplier(productRow(2, "B", 1), 1, "s"),
		withSupplier(productRow(5, "E", 1), 2, "t"),
	}

	got := GroupProductSuppliers(rows)

	assert.Equal(t, []int{5, 2}, groupedIDs(got))
	assert.Len(t, got[0].Suppliers, 1)
}

func TestGroupProductSuppliers_Empty(t *testing.T) {
	got := GroupProductSuppliers(nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestReports_Idempotent(t *testing.T) {
	store := &memStore{
		products: []models.Product{
			{ID: 1, Name: "A", Price: 100},
			{ID: 2, Name: "B", Price: 100},
			{ID: 3, Name: "C", Price: 70},
		},
		suppliers: map[int][]models.Supplier{
			3: {{ID: 1, Name: "s"}, {ID: 2, Name: "t"}},
		},
	}
	svc := NewReportService(store)
	ctx := context.Background()

	top1, err := svc.GetTopProducts(ctx)
	require.NoError(t, err)
	top2, err := svc.GetTopProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, mustJSON(t, top1), mustJSON(t, top2))

	ps1, err := svc.GetProductsWithSuppliers(ctx)
	require.NoError(t, err)
	ps2, err := svc.GetProductsWithSuppliers(ctx)
	require.NoError(t, err)
	assert.Equal(t, mustJSON(t, ps1), mustJSON(t, ps2))
}

func ids(products []models.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func groupedIDs(products []models.ProductWithSuppliers) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
