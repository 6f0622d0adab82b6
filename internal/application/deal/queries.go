package deal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/domain"
)

const defaultRecentLimit = 50

// Receipt documento descargable de un trato.
type Receipt struct {
	Filename    string
	ContentType string
	Body        []byte
}

// GetDetail devuelve la cabecera y las líneas registradas del trato.
// Las líneas salen de la foto guardada al liquidar, no del stock actual.
func (uc *SettlementUseCase) GetDetail(ctx context.Context, dealID string) (*dto.DealDetailResponse, error) {
	if _, err := uuid.Parse(dealID); err != nil {
		return nil, domain.Validation("invalid deal id")
	}
	header, err := uc.reportRepo.DealHeader(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, domain.NotFound("deal not found")
	}
	lines, err := uc.reportRepo.DealLines(ctx, dealID)
	if err != nil {
		return nil, err
	}

	out := &dto.DealDetailResponse{
		General: dto.DealGeneralResponse{
			DealID:      header.DealID,
			Kind:        header.Kind,
			CompanyName: header.CompanyName,
			CompanyType: header.CompanyType,
			Warehouse:   header.WarehouseName,
			Governorate: header.Governorate,
			City:        header.City,
			VendorName:  header.VendorName,
			TotalCost:   header.TotalCost,
			Date:        header.Date,
		},
		Items: make([]dto.DealItemResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.Items = append(out.Items, dto.DealItemResponse{
			LineNo:     l.LineNo,
			Name:       l.ItemName,
			Category:   l.CategoryName,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			Subtotal:   l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)),
			StockAfter: l.StockAfter,
		})
	}
	return out, nil
}

// RecentDeals lista los tratos más recientes primero; NotFound si no hay ninguno.
func (uc *SettlementUseCase) RecentDeals(ctx context.Context, limit int) ([]dto.RecentDealResponse, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := uc.reportRepo.RecentDeals(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.NotFound("no recent deals found")
	}
	out := make([]dto.RecentDealResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RecentDealResponse{
			DealID:      r.DealID,
			Kind:        r.Kind,
			CompanyName: r.CompanyName,
			CompanyType: r.CompanyType,
			TotalCost:   r.TotalCost,
			Date:        r.Date,
		})
	}
	return out, nil
}

// Receipt genera el comprobante del trato en el formato pedido (pdf, xml).
func (uc *SettlementUseCase) Receipt(ctx context.Context, dealID, format string) (*Receipt, error) {
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, domain.Validation("unsupported receipt format %q", format)
	}
	detail, err := uc.GetDetail(ctx, dealID)
	if err != nil {
		return nil, err
	}
	body, err := renderer.Render(ctx, detail)
	if err != nil {
		return nil, fmt.Errorf("render %s receipt: %w", format, err)
	}
	return &Receipt{
		Filename:    fmt.Sprintf("deal-%s.%s", dealID, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}
