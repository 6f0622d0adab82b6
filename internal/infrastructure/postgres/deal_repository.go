package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/domain/entity"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

var _ repository.DealRepository = (*DealRepo)(nil)

// DealRepo persiste tratos y sus líneas. Los registros no se actualizan ni se borran.
type DealRepo struct {
	q Querier
}

// NewDealRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDealRepository(q Querier) *DealRepo {
	return &DealRepo{q: q}
}

// Create inserta la cabecera del trato.
func (r *DealRepo) Create(ctx context.Context, d *entity.Deal) error {
	query := `
		INSERT INTO deals (id, kind, vendor_id, company_id, warehouse_id, total_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Kind, d.VendorID, d.CompanyID, d.WarehouseID, d.TotalCost, d.CreatedAt,
	)
	if err != nil {
		if isNumericOutOfRange(err) {
			return domain.Validation("total cost out of range")
		}
		return fmt.Errorf("insert deal: %w", conflictOr(err, "deal already exists"))
	}
	return nil
}

// AddLine inserta una línea con la foto de precio y stock.
func (r *DealRepo) AddLine(ctx context.Context, l *entity.DealLine) error {
	if l.Quantity <= 0 {
		return domain.Validation("quantity must be greater than zero")
	}
	query := `
		INSERT INTO deal_items (deal_id, line_no, item_id, quantity, unit_price, stock_after)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		l.DealID, l.LineNo, l.ItemID, l.Quantity, l.UnitPrice, l.StockAfter,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("deal not found")
		}
		return fmt.Errorf("insert deal item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un trato.
func (r *DealRepo) GetByID(ctx context.Context, id string) (*entity.Deal, error) {
	query := `
		SELECT id, kind, vendor_id, company_id, warehouse_id, total_cost, created_at
		FROM deals WHERE id = $1`
	var d entity.Deal
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Kind, &d.VendorID, &d.CompanyID, &d.WarehouseID, &d.TotalCost, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deal: %w", err)
	}
	return &d, nil
}

// Lines devuelve las líneas del trato en orden de registro.
func (r *DealRepo) Lines(ctx context.Context, dealID string) ([]*entity.DealLine, error) {
	query := `
		SELECT deal_id, line_no, item_id, quantity, unit_price, stock_after
		FROM deal_items WHERE deal_id = $1
		ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, dealID)
	if err != nil {
		return nil, fmt.Errorf("list deal items: %w", err)
	}
	defer rows.Close()

	var list []*entity.DealLine
	for rows.Next() {
		var l entity.DealLine
		if err := rows.Scan(&l.DealID, &l.LineNo, &l.ItemID, &l.Quantity, &l.UnitPrice, &l.StockAfter); err != nil {
			return nil, fmt.Errorf("scan deal item: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
