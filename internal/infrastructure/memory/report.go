package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

// ReportRepo implementa repository.ReportRepository con los mismos criterios de orden que las consultas SQL.
type ReportRepo struct{ v view }

func (r *ReportRepo) RecentDeals(ctx context.Context, limit int) ([]repository.RecentDealRow, error) {
	var out []repository.RecentDealRow
	err := r.v.do(func(st *state) error {
		for _, d := range st.deals {
			c := st.companies[d.CompanyID]
			out = append(out, repository.RecentDealRow{
				DealID:      d.ID,
				Kind:        d.Kind,
				CompanyName: c.Name,
				CompanyType: c.Type,
				TotalCost:   d.TotalCost,
				Date:        d.CreatedAt,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].DealID < out[j].DealID
		}
		return out[i].Date.After(out[j].Date)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r *ReportRepo) WarehouseSummaries(ctx context.Context, name string) ([]repository.WarehouseSummary, error) {
	var out []repository.WarehouseSummary
	err := r.v.do(func(st *state) error {
		for _, w := range st.warehouses {
			if name != "" && w.Name != name {
				continue
			}
			var total int64
			for _, it := range st.items {
				if _, ok := st.whCats[whCatKey{w.ID, it.CategoryID}]; ok {
					total += it.Quantity
				}
			}
			out = append(out, repository.WarehouseSummary{
				Name:          w.Name,
				Governorate:   w.Governorate,
				City:          w.City,
				Responsible:   w.Responsible,
				Capacity:      w.Capacity,
				TotalQuantity: total,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *ReportRepo) WarehouseCategoryItems(ctx context.Context, warehouseID string) ([]repository.CategoryItemRow, error) {
	var out []repository.CategoryItemRow
	err := r.v.do(func(st *state) error {
		for key := range st.whCats {
			if key.warehouseID != warehouseID {
				continue
			}
			cat := st.categories[key.categoryID]
			found := false
			for _, it := range st.items {
				if it.CategoryID != cat.ID {
					continue
				}
				found = true
				out = append(out, repository.CategoryItemRow{
					CategoryName: cat.Name,
					ItemName:     it.Name,
					UnitPrice:    it.UnitPrice,
					Quantity:     it.Quantity,
					SupplierName: st.companies[it.SupplierID].Name,
				})
			}
			if !found {
				out = append(out, repository.CategoryItemRow{CategoryName: cat.Name})
			}
		}
		return nil
	})
	sortCategoryItems(out)
	return out, err
}

func (r *ReportRepo) SupplierCategoryItems(ctx context.Context, companyID string) ([]repository.CategoryItemRow, error) {
	var out []repository.CategoryItemRow
	err := r.v.do(func(st *state) error {
		supplier := st.companies[companyID].Name
		for _, it := range st.items {
			if it.SupplierID != companyID {
				continue
			}
			out = append(out, repository.CategoryItemRow{
				CategoryName: st.categories[it.CategoryID].Name,
				ItemName:     it.Name,
				UnitPrice:    it.UnitPrice,
				Quantity:     it.Quantity,
				SupplierName: supplier,
			})
		}
		return nil
	})
	sortCategoryItems(out)
	return out, err
}

func (r *ReportRepo) DealHeader(ctx context.Context, dealID string) (*repository.DealHeader, error) {
	var out *repository.DealHeader
	err := r.v.do(func(st *state) error {
		d, ok := st.deals[dealID]
		if !ok {
			return nil
		}
		c := st.companies[d.CompanyID]
		w := st.warehouses[d.WarehouseID]
		out = &repository.DealHeader{
			DealID:        d.ID,
			Kind:          d.Kind,
			CompanyName:   c.Name,
			CompanyType:   c.Type,
			WarehouseName: w.Name,
			Governorate:   w.Governorate,
			City:          w.City,
			VendorName:    st.vendors[d.VendorID].Name,
			TotalCost:     d.TotalCost,
			Date:          d.CreatedAt,
		}
		return nil
	})
	return out, err
}

func (r *ReportRepo) DealLines(ctx context.Context, dealID string) ([]repository.DealLineRow, error) {
	var out []repository.DealLineRow
	err := r.v.do(func(st *state) error {
		for _, l := range st.dealLines[dealID] {
			it := st.items[l.ItemID]
			out = append(out, repository.DealLineRow{
				LineNo:       l.LineNo,
				ItemName:     it.Name,
				CategoryName: st.categories[it.CategoryID].Name,
				Quantity:     l.Quantity,
				UnitPrice:    l.UnitPrice,
				StockAfter:   l.StockAfter,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].LineNo < out[j].LineNo })
	return out, err
}

func sortCategoryItems(rows []repository.CategoryItemRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CategoryName != rows[j].CategoryName {
			return rows[i].CategoryName < rows[j].CategoryName
		}
		return rows[i].ItemName < rows[j].ItemName
	})
}

var _ repository.ReportRepository = (*ReportRepo)(nil)
