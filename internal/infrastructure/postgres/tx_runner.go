package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Insumos-api/internal/application/inventory"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// NewRepos construye el conjunto de repositorios sobre q (pool para lecturas, tx dentro de Run).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Lines:         NewInventoryLineRepository(q),
		Movements:     NewMovementRepository(q),
		Alerts:        NewAlertRepository(q),
		Sequences:     NewSequenceRepository(q),
		Receptions:    NewReceptionRepository(q),
		Deliveries:    NewDeliveryRepository(q),
		Clients:       NewClientRepository(q),
		ClientConfigs: NewClientConfigRepository(q),
		Brands:        NewBrandRepository(q),
		Suppliers:     NewSupplierRepository(q),
		Varieties:     NewVarietyRepository(q),
		Presentations: NewPresentationRepository(q),
		Categories:    NewCategoryRepository(q),
		Lots:          NewProductionLotRepository(q),
		Users:         NewUserRepository(q),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
