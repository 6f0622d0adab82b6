package deal

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/domain/entity"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

// StatusSuccess estado devuelto al liquidar un trato.
const StatusSuccess = "success"

// SettlementUseCase liquida tratos de importación/exportación: resuelve las contrapartes,
// valida la regla de emparejamiento y aplica los movimientos de stock en una sola transacción.
type SettlementUseCase struct {
	txRunner      repository.TxRunner
	companyRepo   repository.CompanyRepository
	vendorRepo    repository.VendorRepository
	warehouseRepo repository.WarehouseRepository
	dealRepo      repository.DealRepository
	reportRepo    repository.ReportRepository
	idem          IdempotencyStore
	renderers     map[string]ReceiptRenderer
	now           func() time.Time
}

// Option configura dependencias opcionales del caso de uso.
type Option func(*SettlementUseCase)

// WithIdempotency habilita las claves Idempotency-Key.
func WithIdempotency(store IdempotencyStore) Option {
	return func(uc *SettlementUseCase) { uc.idem = store }
}

// WithRenderer registra un formato de comprobante (pdf, xml).
func WithRenderer(format string, r ReceiptRenderer) Option {
	return func(uc *SettlementUseCase) { uc.renderers[format] = r }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *SettlementUseCase) { uc.now = now }
}

// NewSettlementUseCase construye el caso de uso.
func NewSettlementUseCase(
	txRunner repository.TxRunner,
	companyRepo repository.CompanyRepository,
	vendorRepo repository.VendorRepository,
	warehouseRepo repository.WarehouseRepository,
	dealRepo repository.DealRepository,
	reportRepo repository.ReportRepository,
	opts ...Option,
) *SettlementUseCase {
	uc := &SettlementUseCase{
		txRunner:      txRunner,
		companyRepo:   companyRepo,
		vendorRepo:    vendorRepo,
		warehouseRepo: warehouseRepo,
		dealRepo:      dealRepo,
		reportRepo:    reportRepo,
		renderers:     map[string]ReceiptRenderer{},
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// SettleImport liquida un trato de entrada: suma stock y asocia las categorías a la bodega.
func (uc *SettlementUseCase) SettleImport(ctx context.Context, in dto.SettleDealRequest) (*dto.DealResult, error) {
	return uc.settle(ctx, entity.DealKindImport, in)
}

// SettleExport liquida un trato de salida: resta stock; falla completo si alguna línea no alcanza.
func (uc *SettlementUseCase) SettleExport(ctx context.Context, in dto.SettleDealRequest) (*dto.DealResult, error) {
	return uc.settle(ctx, entity.DealKindExport, in)
}

func (uc *SettlementUseCase) settle(ctx context.Context, kind string, in dto.SettleDealRequest) (res *dto.DealResult, err error) {
	if err := validateRequest(in); err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" && uc.idem != nil {
		key := kind + ":" + in.IdempotencyKey
		dealID, reserved, rerr := uc.idem.Reserve(ctx, key)
		if rerr != nil {
			return nil, fmt.Errorf("reserve idempotency key: %w", rerr)
		}
		if !reserved {
			return uc.replay(ctx, dealID)
		}
		defer func() {
			bg := context.WithoutCancel(ctx)
			if err != nil {
				if rerr := uc.idem.Release(bg, key); rerr != nil {
					log.Warn().Err(rerr).Str("key", key).Msg("no se pudo liberar la clave de idempotencia")
				}
				return
			}
			if cerr := uc.idem.Complete(bg, key, res.DealID); cerr != nil {
				log.Warn().Err(cerr).Str("key", key).Msg("no se pudo completar la clave de idempotencia")
			}
		}()
	}

	company, vendor, warehouse, err := uc.resolve(ctx, kind, in)
	if err != nil {
		return nil, err
	}

	deal := &entity.Deal{
		ID:          uuid.New().String(),
		Kind:        kind,
		VendorID:    vendor.ID,
		CompanyID:   company.ID,
		WarehouseID: warehouse.ID,
		CreatedAt:   uc.now(),
	}

	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		items, err := lockItems(ctx, repos.Items, in.Items)
		if err != nil {
			return err
		}

		deal.TotalCost = computedCost(in.Items, items)
		if in.TotalPrice != nil {
			deal.TotalCost = in.TotalPrice.Round(2)
		}
		if deal.TotalCost.GreaterThanOrEqual(entity.MaxAmount) {
			return domain.Validation("total cost must be less than %s", entity.MaxAmount)
		}
		if err := repos.Deals.Create(ctx, deal); err != nil {
			return err
		}

		for i, line := range in.Items {
			item := items[line.Name]
			after, err := applyLine(ctx, repos.Items, kind, item, line.Quantity)
			if err != nil {
				return err
			}
			if err := repos.Deals.AddLine(ctx, &entity.DealLine{
				DealID:     deal.ID,
				LineNo:     i + 1,
				ItemID:     item.ID,
				Quantity:   line.Quantity,
				UnitPrice:  item.UnitPrice,
				StockAfter: after,
			}); err != nil {
				return err
			}
			if kind == entity.DealKindImport {
				created, err := repos.WarehouseCategories.Ensure(ctx, warehouse.ID, item.CategoryID)
				if err != nil {
					return err
				}
				if created {
					log.Debug().Str("warehouse", warehouse.Name).Str("category_id", item.CategoryID).Msg("categoría asociada a bodega")
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("deal_id", deal.ID).Str("kind", kind).Int("lines", len(in.Items)).
		Str("total_cost", deal.TotalCost.StringFixed(2)).Msg("trato liquidado")

	return &dto.DealResult{
		Status:    StatusSuccess,
		DealID:    deal.ID,
		Kind:      kind,
		TotalCost: deal.TotalCost,
	}, nil
}

// replay devuelve el resultado de un trato ya liquidado con la misma clave.
func (uc *SettlementUseCase) replay(ctx context.Context, dealID string) (*dto.DealResult, error) {
	if dealID == "" {
		return nil, domain.Conflict("a request with this idempotency key is still in progress")
	}
	d, err := uc.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.NotFound("deal %s not found", dealID)
	}
	return &dto.DealResult{
		Status:    StatusSuccess,
		DealID:    d.ID,
		Kind:      d.Kind,
		TotalCost: d.TotalCost,
		Replayed:  true,
	}, nil
}

func validateRequest(in dto.SettleDealRequest) error {
	if strings.TrimSpace(in.CompanyName) == "" || strings.TrimSpace(in.Warehouse()) == "" || strings.TrimSpace(in.VendorName) == "" {
		return domain.Validation("missing data: company, warehouse and vendor are required")
	}
	if len(in.Items) == 0 {
		return domain.Validation("missing data: at least one item is required")
	}
	for _, line := range in.Items {
		if strings.TrimSpace(line.Name) == "" {
			return domain.Validation("item name is required")
		}
		if line.Quantity <= 0 {
			return domain.Validation("quantity of %s must be greater than zero", line.Name)
		}
		if line.Quantity > entity.MaxLineQuantity {
			return domain.Validation("quantity of %s must be at most %d", line.Name, entity.MaxLineQuantity)
		}
	}
	if in.TotalPrice != nil && in.TotalPrice.IsNegative() {
		return domain.Validation("total price cannot be negative")
	}
	if in.TotalPrice != nil && in.TotalPrice.Round(2).GreaterThanOrEqual(entity.MaxAmount) {
		return domain.Validation("total price must be less than %s", entity.MaxAmount)
	}
	return nil
}

// resolve busca empresa, vendedor y bodega y aplica la regla de emparejamiento.
func (uc *SettlementUseCase) resolve(ctx context.Context, kind string, in dto.SettleDealRequest) (*entity.Company, *entity.Vendor, *entity.Warehouse, error) {
	company, err := uc.companyRepo.GetByName(ctx, in.CompanyName)
	if err != nil {
		return nil, nil, nil, err
	}
	if company == nil {
		return nil, nil, nil, domain.NotFound("company not found: %s", in.CompanyName)
	}
	vendor, err := uc.vendorRepo.GetByName(ctx, in.VendorName)
	if err != nil {
		return nil, nil, nil, err
	}
	if vendor == nil {
		return nil, nil, nil, domain.NotFound("vendor not found: %s", in.VendorName)
	}
	warehouse, err := uc.warehouseRepo.GetByName(ctx, in.Warehouse())
	if err != nil {
		return nil, nil, nil, err
	}
	if warehouse == nil {
		return nil, nil, nil, domain.NotFound("warehouse not found: %s", in.Warehouse())
	}

	companyType, vendorType, _ := entity.Counterparties(kind)
	if company.Type != companyType {
		return nil, nil, nil, domain.Validation("%s deals require a %s company, %s is %s", kind, companyType, company.Name, company.Type)
	}
	if vendor.Type != vendorType {
		return nil, nil, nil, domain.Validation("%s deals require an %s vendor, %s is %s", kind, vendorType, vendor.Name, vendor.Type)
	}
	if vendor.WarehouseID != warehouse.ID {
		return nil, nil, nil, domain.Validation("vendor %s does not belong to warehouse %s", vendor.Name, warehouse.Name)
	}
	return company, vendor, warehouse, nil
}

// lockItems bloquea los ítems del trato en orden alfabético para que dos liquidaciones
// concurrentes no se bloqueen mutuamente.
func lockItems(ctx context.Context, repo repository.ItemRepository, lines []dto.DealLineRequest) (map[string]*entity.Item, error) {
	names := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.Name] {
			seen[l.Name] = true
			names = append(names, l.Name)
		}
	}
	sort.Strings(names)

	items := make(map[string]*entity.Item, len(names))
	for _, name := range names {
		item, err := repo.GetByNameForUpdate(ctx, name)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.NotFound("item not found: %s", name)
		}
		items[name] = item
	}
	return items, nil
}

// applyLine mueve el stock de una línea con una actualización atómica y devuelve la cantidad resultante.
func applyLine(ctx context.Context, repo repository.ItemRepository, kind string, item *entity.Item, qty int64) (int64, error) {
	if kind == entity.DealKindImport {
		return repo.AddQuantity(ctx, item.ID, qty)
	}
	after, ok, err := repo.SubtractQuantity(ctx, item.ID, qty)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.InsufficientStock("not enough quantity of %s: requested %d, available %d", item.Name, qty, after)
	}
	return after, nil
}

func computedCost(lines []dto.DealLineRequest, items map[string]*entity.Item) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(items[l.Name].UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total.Round(2)
}
