package repository

import "context"

// TxRepos agrupa los repositorios atados a una misma transacción.
type TxRepos struct {
	Items               ItemRepository
	Deals               DealRepository
	Categories          CategoryRepository
	WarehouseCategories WarehouseCategoryRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
