// Package memory implementa todos los puertos de repositorio sobre un estado en memoria
// con transacciones de copia al confirmar. Se usa en tests y con DB_DRIVER=memory.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/jhoicas/Invex-api/internal/domain/entity"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

type whCatKey struct {
	warehouseID string
	categoryID  string
}

type state struct {
	managers   map[string]entity.Manager
	warehouses map[string]entity.Warehouse
	companies  map[string]entity.Company
	vendors    map[string]entity.Vendor
	categories map[string]entity.Category
	items      map[string]entity.Item
	whCats     map[whCatKey]time.Time
	deals      map[string]entity.Deal
	dealLines  map[string][]entity.DealLine
}

func newState() *state {
	return &state{
		managers:   map[string]entity.Manager{},
		warehouses: map[string]entity.Warehouse{},
		companies:  map[string]entity.Company{},
		vendors:    map[string]entity.Vendor{},
		categories: map[string]entity.Category{},
		items:      map[string]entity.Item{},
		whCats:     map[whCatKey]time.Time{},
		deals:      map[string]entity.Deal{},
		dealLines:  map[string][]entity.DealLine{},
	}
}

// clone copia el estado; las entidades se guardan por valor, así que basta con copiar los mapas.
func (s *state) clone() *state {
	lines := make(map[string][]entity.DealLine, len(s.dealLines))
	for k, v := range s.dealLines {
		lines[k] = append([]entity.DealLine(nil), v...)
	}
	return &state{
		managers:   maps.Clone(s.managers),
		warehouses: maps.Clone(s.warehouses),
		companies:  maps.Clone(s.companies),
		vendors:    maps.Clone(s.vendors),
		categories: maps.Clone(s.categories),
		items:      maps.Clone(s.items),
		whCats:     maps.Clone(s.whCats),
		deals:      maps.Clone(s.deals),
		dealLines:  lines,
	}
}

// Store es el almacén en memoria. Las transacciones se serializan con mu.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// view ejecuta fn sobre el estado de la transacción o, fuera de ella, sobre el estado
// confirmado bajo el lock del Store.
type view struct {
	store *Store
	tx    *state
}

func (v view) do(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

// Run implementa repository.TxRunner: fn trabaja sobre una copia que solo se publica si devuelve nil.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	v := view{store: s, tx: work}
	repos := repository.TxRepos{
		Items:               &ItemRepo{v: v},
		Deals:               &DealRepo{v: v},
		Categories:          &CategoryRepo{v: v},
		WarehouseCategories: &WarehouseCategoryRepo{v: v},
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Managers devuelve el repositorio de managers fuera de transacción.
func (s *Store) Managers() *ManagerRepo { return &ManagerRepo{v: view{store: s}} }

// Warehouses devuelve el repositorio de bodegas.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{v: view{store: s}} }

// Companies devuelve el repositorio de empresas.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{v: view{store: s}} }

// Vendors devuelve el repositorio de vendedores.
func (s *Store) Vendors() *VendorRepo { return &VendorRepo{v: view{store: s}} }

// Categories devuelve el repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{v: view{store: s}} }

// WarehouseCategories devuelve el repositorio de asociaciones bodega↔categoría.
func (s *Store) WarehouseCategories() *WarehouseCategoryRepo {
	return &WarehouseCategoryRepo{v: view{store: s}}
}

// Items devuelve el repositorio de ítems.
func (s *Store) Items() *ItemRepo { return &ItemRepo{v: view{store: s}} }

// Deals devuelve el repositorio de tratos.
func (s *Store) Deals() *DealRepo { return &DealRepo{v: view{store: s}} }

// Reports devuelve el repositorio de consultas de reportes.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{v: view{store: s}} }

var _ repository.TxRunner = (*Store)(nil)

func now() time.Time { return time.Now().UTC() }
