package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/application/inventory"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/infrastructure/memory"
)

type stubExporter struct{ rows int }

func (e *stubExporter) ExportInventory(_ context.Context, lines []dto.InventoryLineResponse) ([]byte, error) {
	e.rows = len(lines)
	return []byte("xlsx"), nil
}

type fixture struct {
	ctx        context.Context
	store      *memory.Store
	lines      *inventory.LineUseCase
	movements  *inventory.ApplyMovementUseCase
	alerts     *inventory.AlertUseCase
	exporter   *stubExporter
	userID     string
	categoryID string
	clientID   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	now := time.Now()

	f := &fixture{
		ctx:        ctx,
		store:      store,
		exporter:   &stubExporter{},
		userID:     uuid.New().String(),
		categoryID: uuid.New().String(),
		clientID:   uuid.New().String(),
	}
	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: f.userID, Email: "almacen@mezcal.mx", Name: "Almacén", Role: entity.RoleOperator, Active: true, CreatedAt: now}))
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: f.categoryID, Name: "Botellas", Unit: entity.UnitPieces, Active: true, CreatedAt: now}))
	require.NoError(t, repos.Clients.Create(ctx, &entity.Client{ID: f.clientID, Name: "Mezcal Oaxaqueño", Active: true, CreatedAt: now}))

	engine := inventory.NewAlertEngine()
	ledger := inventory.NewLedger(engine, nil)
	f.lines = inventory.NewLineUseCase(repos, store, ledger, engine, f.exporter)
	f.movements = inventory.NewApplyMovementUseCase(store, ledger)
	f.alerts = inventory.NewAlertUseCase(repos, store)
	return f
}

func intPtr(n int) *int { return &n }

// newLine crea una línea con stock inicial y mínimo opcional.
func (f *fixture) newLine(t *testing.T, lot string, qty int, min *int) *dto.InventoryLineResponse {
	t.Helper()
	line, err := f.lines.Create(f.ctx, f.userID, dto.CreateInventoryLineRequest{
		CategoryID:  f.categoryID,
		ClientID:    &f.clientID,
		LotCode:     lot,
		Quantity:    qty,
		MinQuantity: min,
	})
	require.NoError(t, err, "la línea debe crearse")
	return line
}

func (f *fixture) apply(kind, lineID string, amount int) (*dto.MovementResultResponse, error) {
	return f.movements.Apply(f.ctx, f.userID, dto.ApplyMovementRequest{InventoryID: lineID, Kind: kind, Amount: amount})
}
