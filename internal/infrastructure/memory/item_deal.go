package memory

import (
	"context"
	"math"
	"sort"

	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/domain/entity"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

// ItemRepo implementa repository.ItemRepository.
type ItemRepo struct{ v view }

func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	return r.v.do(func(st *state) error {
		if it.Quantity < 0 {
			return domain.Validation("quantity cannot be negative")
		}
		if _, ok := st.categories[it.CategoryID]; !ok {
			return domain.NotFound("category does not exist")
		}
		if _, ok := st.companies[it.SupplierID]; !ok {
			return domain.NotFound("supplier does not exist")
		}
		for _, existing := range st.items {
			if existing.Name == it.Name {
				return domain.Conflict("item %q already exists", it.Name)
			}
		}
		st.items[it.ID] = *it
		return nil
	})
}

func (r *ItemRepo) GetByName(ctx context.Context, name string) (*entity.Item, error) {
	var out *entity.Item
	err := r.v.do(func(st *state) error {
		for _, it := range st.items {
			if it.Name == name {
				out = &it
				return nil
			}
		}
		return nil
	})
	return out, err
}

// GetByNameForUpdate no necesita bloqueo extra: la transacción ya tiene el Store en exclusiva.
func (r *ItemRepo) GetByNameForUpdate(ctx context.Context, name string) (*entity.Item, error) {
	return r.GetByName(ctx, name)
}

func (r *ItemRepo) AddQuantity(ctx context.Context, itemID string, delta int64) (int64, error) {
	var qty int64
	err := r.v.do(func(st *state) error {
		it, ok := st.items[itemID]
		if !ok {
			return domain.NotFound("item not found")
		}
		if delta > 0 && it.Quantity > math.MaxInt64-delta {
			return domain.Validation("quantity of %s out of range", it.Name)
		}
		if it.Quantity+delta < 0 {
			return domain.InsufficientStock("not enough quantity for %s", it.Name)
		}
		it.Quantity += delta
		it.UpdatedAt = now()
		st.items[itemID] = it
		qty = it.Quantity
		return nil
	})
	return qty, err
}

func (r *ItemRepo) SubtractQuantity(ctx context.Context, itemID string, n int64) (int64, bool, error) {
	var (
		qty int64
		ok  bool
	)
	err := r.v.do(func(st *state) error {
		it, found := st.items[itemID]
		if !found {
			return domain.NotFound("item not found")
		}
		qty = it.Quantity
		if it.Quantity < n {
			return nil
		}
		it.Quantity -= n
		it.UpdatedAt = now()
		st.items[itemID] = it
		qty, ok = it.Quantity, true
		return nil
	})
	return qty, ok, err
}

// DealRepo implementa repository.DealRepository.
type DealRepo struct{ v view }

func (r *DealRepo) Create(ctx context.Context, d *entity.Deal) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.deals[d.ID]; ok {
			return domain.Conflict("deal already exists")
		}
		st.deals[d.ID] = *d
		return nil
	})
}

func (r *DealRepo) AddLine(ctx context.Context, l *entity.DealLine) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.deals[l.DealID]; !ok {
			return domain.NotFound("deal not found")
		}
		if l.Quantity <= 0 {
			return domain.Validation("quantity must be greater than zero")
		}
		st.dealLines[l.DealID] = append(st.dealLines[l.DealID], *l)
		return nil
	})
}

func (r *DealRepo) GetByID(ctx context.Context, id string) (*entity.Deal, error) {
	var out *entity.Deal
	err := r.v.do(func(st *state) error {
		if d, ok := st.deals[id]; ok {
			out = &d
		}
		return nil
	})
	return out, err
}

func (r *DealRepo) Lines(ctx context.Context, dealID string) ([]*entity.DealLine, error) {
	var out []*entity.DealLine
	err := r.v.do(func(st *state) error {
		for _, l := range st.dealLines[dealID] {
			out = append(out, &l)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].LineNo < out[j].LineNo })
	return out, err
}

var (
	_ repository.ItemRepository = (*ItemRepo)(nil)
	_ repository.DealRepository = (*DealRepo)(nil)
)
