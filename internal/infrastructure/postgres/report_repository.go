package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura (joins) para las vistas de reportes.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// RecentDeals tratos más recientes primero; limit <= 0 devuelve todos.
func (r *ReportRepo) RecentDeals(ctx context.Context, limit int) ([]repository.RecentDealRow, error) {
	query := `
		SELECT d.id, d.kind, c.name, c.type, d.total_cost, d.created_at
		FROM deals d
		JOIN companies c ON c.id = d.company_id
		ORDER BY d.created_at DESC, d.id
		LIMIT NULLIF($1::int, 0)`
	if limit < 0 {
		limit = 0
	}
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent deals: %w", err)
	}
	defer rows.Close()

	var list []repository.RecentDealRow
	for rows.Next() {
		var row repository.RecentDealRow
		if err := rows.Scan(&row.DealID, &row.Kind, &row.CompanyName, &row.CompanyType, &row.TotalCost, &row.Date); err != nil {
			return nil, fmt.Errorf("scan recent deal: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// WarehouseSummaries suma las cantidades de los ítems de las categorías asociadas a cada bodega.
// Las bodegas sin categorías aparecen con total 0.
func (r *ReportRepo) WarehouseSummaries(ctx context.Context, name string) ([]repository.WarehouseSummary, error) {
	query := `
		SELECT w.name, w.governorate, w.city, w.responsible, w.capacity,
		       COALESCE(SUM(i.quantity), 0)::bigint AS total_quantity
		FROM warehouses w
		LEFT JOIN warehouse_categories wc ON wc.warehouse_id = w.id
		LEFT JOIN items i ON i.category_id = wc.category_id
		WHERE ($1::text = '' OR w.name = $1)
		GROUP BY w.id, w.name, w.governorate, w.city, w.responsible, w.capacity
		ORDER BY w.name`
	rows, err := r.q.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("warehouse summaries: %w", err)
	}
	defer rows.Close()

	var list []repository.WarehouseSummary
	for rows.Next() {
		var s repository.WarehouseSummary
		if err := rows.Scan(&s.Name, &s.Governorate, &s.City, &s.Responsible, &s.Capacity, &s.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan warehouse summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// WarehouseCategoryItems ítems de las categorías asociadas a la bodega.
func (r *ReportRepo) WarehouseCategoryItems(ctx context.Context, warehouseID string) ([]repository.CategoryItemRow, error) {
	query := `
		SELECT c.name, COALESCE(i.name, ''), COALESCE(i.unit_price, 0), COALESCE(i.quantity, 0),
		       COALESCE(s.name, '')
		FROM warehouse_categories wc
		JOIN categories c ON c.id = wc.category_id
		LEFT JOIN items i ON i.category_id = c.id
		LEFT JOIN companies s ON s.id = i.supplier_id
		WHERE wc.warehouse_id = $1
		ORDER BY c.name, i.name NULLS FIRST`
	return r.categoryItems(ctx, query, warehouseID)
}

// SupplierCategoryItems ítems suministrados por la empresa.
func (r *ReportRepo) SupplierCategoryItems(ctx context.Context, companyID string) ([]repository.CategoryItemRow, error) {
	query := `
		SELECT c.name, i.name, i.unit_price, i.quantity, s.name
		FROM items i
		JOIN categories c ON c.id = i.category_id
		JOIN companies s ON s.id = i.supplier_id
		WHERE i.supplier_id = $1
		ORDER BY c.name, i.name`
	return r.categoryItems(ctx, query, companyID)
}

func (r *ReportRepo) categoryItems(ctx context.Context, query, arg string) ([]repository.CategoryItemRow, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("category items: %w", err)
	}
	defer rows.Close()

	var list []repository.CategoryItemRow
	for rows.Next() {
		var row repository.CategoryItemRow
		if err := rows.Scan(&row.CategoryName, &row.ItemName, &row.UnitPrice, &row.Quantity, &row.SupplierName); err != nil {
			return nil, fmt.Errorf("scan category item: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// DealHeader cabecera enriquecida con empresa, bodega y vendedor.
func (r *ReportRepo) DealHeader(ctx context.Context, dealID string) (*repository.DealHeader, error) {
	query := `
		SELECT d.id, d.kind, c.name, c.type, w.name, w.governorate, w.city, v.name,
		       d.total_cost, d.created_at
		FROM deals d
		JOIN companies c ON c.id = d.company_id
		JOIN warehouses w ON w.id = d.warehouse_id
		JOIN vendors v ON v.id = d.vendor_id
		WHERE d.id = $1`
	var h repository.DealHeader
	err := r.q.QueryRow(ctx, query, dealID).Scan(
		&h.DealID, &h.Kind, &h.CompanyName, &h.CompanyType, &h.WarehouseName, &h.Governorate, &h.City,
		&h.VendorName, &h.TotalCost, &h.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("deal header: %w", err)
	}
	return &h, nil
}

// DealLines líneas del trato leídas de deal_items (cantidad y precio de la foto).
func (r *ReportRepo) DealLines(ctx context.Context, dealID string) ([]repository.DealLineRow, error) {
	query := `
		SELECT di.line_no, i.name, c.name, di.quantity, di.unit_price, di.stock_after
		FROM deal_items di
		JOIN items i ON i.id = di.item_id
		JOIN categories c ON c.id = i.category_id
		WHERE di.deal_id = $1
		ORDER BY di.line_no`
	rows, err := r.q.Query(ctx, query, dealID)
	if err != nil {
		return nil, fmt.Errorf("deal lines: %w", err)
	}
	defer rows.Close()

	var list []repository.DealLineRow
	for rows.Next() {
		var l repository.DealLineRow
		if err := rows.Scan(&l.LineNo, &l.ItemName, &l.CategoryName, &l.Quantity, &l.UnitPrice, &l.StockAfter); err != nil {
			return nil, fmt.Errorf("scan deal line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
