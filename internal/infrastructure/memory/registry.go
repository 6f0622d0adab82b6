package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/domain/entity"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

// ManagerRepo implementa repository.ManagerRepository.
type ManagerRepo struct{ v view }

func (r *ManagerRepo) Create(ctx context.Context, m *entity.Manager) error {
	return r.v.do(func(st *state) error {
		for _, existing := range st.managers {
			if existing.Email == m.Email {
				return domain.Conflict("email already exists")
			}
		}
		st.managers[m.ID] = *m
		return nil
	})
}

func (r *ManagerRepo) GetByEmail(ctx context.Context, email string) (*entity.Manager, error) {
	var out *entity.Manager
	err := r.v.do(func(st *state) error {
		for _, m := range st.managers {
			if m.Email == email {
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ManagerRepo) List(ctx context.Context) ([]*entity.Manager, error) {
	var out []*entity.Manager
	err := r.v.do(func(st *state) error {
		for _, m := range st.managers {
			out = append(out, &m)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// WarehouseRepo implementa repository.WarehouseRepository.
type WarehouseRepo struct{ v view }

func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	return r.v.do(func(st *state) error {
		for _, existing := range st.warehouses {
			if existing.Name == w.Name {
				return domain.Conflict("warehouse %q already exists", w.Name)
			}
		}
		st.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.v.do(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) GetByName(ctx context.Context, name string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.v.do(func(st *state) error {
		out = findWarehouseByName(st, name)
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	err := r.v.do(func(st *state) error {
		for _, w := range st.warehouses {
			out = append(out, &w)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func findWarehouseByName(st *state, name string) *entity.Warehouse {
	for _, w := range st.warehouses {
		if w.Name == name {
			return &w
		}
	}
	return nil
}

// CompanyRepo implementa repository.CompanyRepository.
type CompanyRepo struct{ v view }

func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	return r.v.do(func(st *state) error {
		for _, existing := range st.companies {
			if existing.Name == c.Name {
				return domain.Conflict("company %q already exists", c.Name)
			}
		}
		st.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.v.do(func(st *state) error {
		if c, ok := st.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	var out *entity.Company
	err := r.v.do(func(st *state) error {
		for _, c := range st.companies {
			if c.Name == name {
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) List(ctx context.Context, companyType string) ([]*entity.Company, error) {
	var out []*entity.Company
	err := r.v.do(func(st *state) error {
		for _, c := range st.companies {
			if companyType != "" && c.Type != companyType {
				continue
			}
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// VendorRepo implementa repository.VendorRepository.
type VendorRepo struct{ v view }

func (r *VendorRepo) Create(ctx context.Context, vd *entity.Vendor) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.warehouses[vd.WarehouseID]; !ok {
			return domain.NotFound("warehouse does not exist")
		}
		for _, existing := range st.vendors {
			if existing.Name == vd.Name {
				return domain.Conflict("vendor %q already exists", vd.Name)
			}
		}
		st.vendors[vd.ID] = *vd
		return nil
	})
}

func (r *VendorRepo) GetByName(ctx context.Context, name string) (*entity.Vendor, error) {
	var out *entity.Vendor
	err := r.v.do(func(st *state) error {
		for _, vd := range st.vendors {
			if vd.Name == name {
				out = &vd
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *VendorRepo) List(ctx context.Context) ([]repository.VendorWithWarehouse, error) {
	var out []repository.VendorWithWarehouse
	err := r.v.do(func(st *state) error {
		for _, vd := range st.vendors {
			out = append(out, repository.VendorWithWarehouse{
				Name:          vd.Name,
				WarehouseName: st.warehouses[vd.WarehouseID].Name,
				Type:          vd.Type,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *VendorRepo) ListByWarehouseAndType(ctx context.Context, warehouseID, vendorType string) ([]*entity.Vendor, error) {
	var out []*entity.Vendor
	err := r.v.do(func(st *state) error {
		for _, vd := range st.vendors {
			if vd.WarehouseID == warehouseID && vd.Type == vendorType {
				out = append(out, &vd)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ v view }

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return r.v.do(func(st *state) error {
		for _, existing := range st.categories {
			if existing.Name == c.Name {
				return domain.Conflict("category %q already exists", c.Name)
			}
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.v.do(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	err := r.v.do(func(st *state) error {
		for _, c := range st.categories {
			if c.Name == name {
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.v.do(func(st *state) error {
		for _, c := range st.categories {
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// WarehouseCategoryRepo implementa repository.WarehouseCategoryRepository.
type WarehouseCategoryRepo struct{ v view }

func (r *WarehouseCategoryRepo) Exists(ctx context.Context, warehouseID, categoryID string) (bool, error) {
	var ok bool
	err := r.v.do(func(st *state) error {
		_, ok = st.whCats[whCatKey{warehouseID, categoryID}]
		return nil
	})
	return ok, err
}

func (r *WarehouseCategoryRepo) Ensure(ctx context.Context, warehouseID, categoryID string) (bool, error) {
	var created bool
	err := r.v.do(func(st *state) error {
		key := whCatKey{warehouseID, categoryID}
		if _, ok := st.whCats[key]; ok {
			return nil
		}
		st.whCats[key] = now()
		created = true
		return nil
	})
	return created, err
}

var (
	_ repository.ManagerRepository           = (*ManagerRepo)(nil)
	_ repository.WarehouseRepository         = (*WarehouseRepo)(nil)
	_ repository.CompanyRepository           = (*CompanyRepo)(nil)
	_ repository.VendorRepository            = (*VendorRepo)(nil)
	_ repository.CategoryRepository          = (*CategoryRepo)(nil)
	_ repository.WarehouseCategoryRepository = (*WarehouseCategoryRepo)(nil)
)
