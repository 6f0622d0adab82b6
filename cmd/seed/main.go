// seed carga un catálogo de ítems desde CSV (supplier,category,item,price).
// Las categorías faltantes se crean; los ítems existentes se omiten. Los proveedores deben existir.
//
// Uso: go run ./cmd/seed catalogo.csv [charset]
// charset: utf-8 (defecto), windows-1256, iso-8859-6, iso-8859-1.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/application/usecase"
	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Invex-api/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed <catalogo.csv> [charset]")
		os.Exit(2)
	}
	charset := ""
	if len(os.Args) > 2 {
		charset = os.Args[2]
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := parseCatalog(f, charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	categories := postgres.NewCategoryRepository(pool)
	companies := postgres.NewCompanyRepository(pool)
	categoryUC := usecase.NewCategoryUseCase(postgres.NewTxRunner(pool), categories, postgres.NewWarehouseRepository(pool))
	itemUC := usecase.NewItemUseCase(postgres.NewItemRepository(pool), categories, companies)

	res, err := load(ctx, categoryUC, itemUC, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar catálogo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Catálogo cargado: %d categorías nuevas, %d ítems nuevos, %d omitidos\n",
		res.categories, res.items, res.skipped)
}

type loadResult struct {
	categories int
	items      int
	skipped    int
}

// load crea categorías e ítems por los casos de uso; un Conflict cuenta como ya existente.
func load(ctx context.Context, categoryUC *usecase.CategoryUseCase, itemUC *usecase.ItemUseCase, rows []catalogRow) (loadResult, error) {
	var res loadResult
	seen := map[string]bool{}
	for _, r := range rows {
		if !seen[r.Category] {
			seen[r.Category] = true
			_, err := categoryUC.Create(ctx, dto.CreateCategoryRequest{Name: r.Category})
			switch {
			case err == nil:
				res.categories++
			case !errors.Is(err, domain.ErrConflict):
				return res, fmt.Errorf("línea %d: %w", r.Line, err)
			}
		}

		_, err := itemUC.Create(ctx, dto.CreateItemRequest{Supplier: r.Supplier, Category: r.Category, Item: r.Item, Price: r.Price})
		switch {
		case err == nil:
			res.items++
		case errors.Is(err, domain.ErrConflict):
			res.skipped++
		default:
			return res, fmt.Errorf("línea %d: %w", r.Line, err)
		}
	}
	return res, nil
}
