package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/application/inventory"
	"github.com/jhoicas/Insumos-api/internal/application/reception"
	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
	"github.com/jhoicas/Insumos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Insumos-api/migrations"
	"github.com/jhoicas/Insumos-api/pkg/config"
)

// setupTestDB usa una base dedicada: TEST_DATABASE_URL en el entorno o en ../../../.env.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../../.env")
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL no definido; se omite la prueba de integración")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dbURL, MaxConns: 5})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = migrations.Apply(ctx, pool)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE client_varieties, client_presentations, client_shipment_types,
			inventory_alerts, inventory_movements, delivery_details, deliveries, reception_details, receptions, document_sequences, inventory_lines, production_lots,
			categories, presentations, varieties, suppliers, brands, clients, users CASCADE`)
	require.NoError(t, err)
	return pool
}

type seed struct {
	userID     string
	supplierID string
	lineA      string
	lineB      string
}

func seedData(t *testing.T, ctx context.Context, repos repository.Repos) seed {
	t.Helper()
	now := time.Now()
	s := seed{
		userID:     uuid.New().String(),
		supplierID: uuid.New().String(),
		lineA:      uuid.New().String(),
		lineB:      uuid.New().String(),
	}
	categoryID := uuid.New().String()
	minB := 20
	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: s.userID, Email: "almacen@mezcal.mx", PasswordHash: "x", Name: "Almacén", Role: entity.RoleOperator, Active: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Suppliers.Create(ctx, &entity.Supplier{ID: s.supplierID, Name: "Vidriera del Sur", Active: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: categoryID, Name: "Botellas", Unit: entity.UnitPieces, Active: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Lines.Create(ctx, &entity.InventoryLine{ID: s.lineA, CategoryID: categoryID, LotCode: "A", Quantity: 50, Unit: entity.UnitPieces, ShipmentType: entity.ShipmentDomestic, Active: true, LastUpdated: now, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Lines.Create(ctx, &entity.InventoryLine{ID: s.lineB, CategoryID: categoryID, LotCode: "B", Quantity: 10, MinQuantity: &minB, Unit: entity.UnitRolls, ShipmentType: entity.ShipmentDomestic, Active: true, LastUpdated: now, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Alerts.Create(ctx, &entity.Alert{ID: uuid.New().String(), InventoryLineID: s.lineB, Kind: entity.AlertLow, Message: "Stock bajo en B", RaisedAt: now}))
	return s
}

func TestIntegration_RecepcionCompletaYRollback(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repos := postgres.NewRepos(pool)
	s := seedData(t, ctx, repos)

	uc := reception.NewUseCase(repos, postgres.NewTxRunner(pool), inventory.NewLedger(inventory.NewAlertEngine(), nil), nil, nil)
	rec, err := uc.Create(ctx, s.userID, dto.CreateReceptionRequest{
		Date:       "2024-05-10",
		SupplierID: s.supplierID,
		Details: []dto.ReceptionDetailRequest{
			{InventoryID: s.lineA, Amount: 30},
			{InventoryID: s.lineB, Amount: 15},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "REC-000001", rec.Number)

	a, err := repos.Lines.GetByID(ctx, s.lineA)
	require.NoError(t, err)
	assert.Equal(t, 80, a.Quantity)
	open, err := repos.Alerts.GetOpenByLine(ctx, s.lineB)
	require.NoError(t, err)
	assert.Nil(t, open, "la entrada resuelve la alerta de B")

	movs, total, err := repos.Movements.ListByLine(ctx, s.lineA, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 50, movs[0].QuantityBefore)
	assert.Equal(t, 80, movs[0].QuantityAfter)
	assert.Equal(t, "Almacén", movs[0].ActorName)

	_, err = uc.Create(ctx, s.userID, dto.CreateReceptionRequest{
		Date:       "2024-05-11",
		SupplierID: s.supplierID,
		Details: []dto.ReceptionDetailRequest{
			{InventoryID: s.lineA, Amount: 5},
			{InventoryID: uuid.New().String(), Amount: 5},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	a, err = repos.Lines.GetByID(ctx, s.lineA)
	require.NoError(t, err)
	assert.Equal(t, 80, a.Quantity, "rollback: el primer renglón no se aplica")

	next, err := uc.Create(ctx, s.userID, dto.CreateReceptionRequest{
		Date: "2024-05-12", SupplierID: s.supplierID,
		Details: []dto.ReceptionDetailRequest{{InventoryID: s.lineA, Amount: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "REC-000002", next.Number, "el consecutivo consumido por la tx fallida se revierte")
}

func TestIntegration_ConsecutivosConcurrentes(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	tx := postgres.NewTxRunner(pool)

	const n = 10
	var (
		mu   sync.Mutex
		seen = map[int64]bool{}
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tx.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
				v, err := repos.Sequences.Next(ctx, "ENT")
				if err != nil {
					return err
				}
				mu.Lock()
				seen[v] = true
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n, "sin números repetidos")
}

func TestIntegration_LoteDecimalYAlertaUnica(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repos := postgres.NewRepos(pool)
	s := seedData(t, ctx, repos)
	now := time.Now()

	err := repos.Alerts.Create(ctx, &entity.Alert{ID: uuid.New().String(), InventoryLineID: s.lineB, Kind: entity.AlertCritical, Message: "dup", RaisedAt: now})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "una sola alerta abierta por línea")

	clientID, brandID, varietyID, presID := uuid.New().String(), uuid.New().String(), uuid.New().String(), uuid.New().String()
	require.NoError(t, repos.Clients.Create(ctx, &entity.Client{ID: clientID, Name: "Mezcal Oaxaqueño", Active: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Brands.Create(ctx, &entity.Brand{ID: brandID, Name: "Tierra", ClientID: &clientID, Active: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Varieties.Create(ctx, &entity.Variety{ID: varietyID, Name: "Espadín", Active: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Presentations.Create(ctx, &entity.Presentation{ID: presID, Volume: "750ml", Active: true, CreatedAt: now, UpdatedAt: now}))
	lot := &entity.ProductionLot{
		ID: uuid.New().String(), ClientID: clientID, BrandID: brandID, VarietyID: varietyID, PresentationID: presID,
		LotCode: "PL-01", ProductionDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		BottlesProduced: 500, BottlesRemaining: 500, AlcoholGrade: decimal.RequireFromString("47.50"),
		Status: entity.LotActive, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repos.Lots.Create(ctx, lot))

	got, err := repos.Lots.GetByID(ctx, lot.ID)
	require.NoError(t, err)
	assert.True(t, got.AlcoholGrade.Equal(decimal.RequireFromString("47.5")))

	openLots, err := repos.Lots.List(ctx, entity.ProductionLotFilter{OpenOnly: true})
	require.NoError(t, err)
	assert.Len(t, openLots, 1)

	brands, err := repos.Brands.List(ctx, clientID, true)
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "Mezcal Oaxaqueño", brands[0].ClientName)

	lineA, err := repos.Lines.GetByID(ctx, s.lineA)
	require.NoError(t, err)
	for _, code := range []string{"LOT_1", "LOTX1"} {
		require.NoError(t, repos.Lines.Create(ctx, &entity.InventoryLine{ID: uuid.New().String(), CategoryID: lineA.CategoryID, LotCode: code, Unit: entity.UnitPieces, ShipmentType: entity.ShipmentDomestic, Active: true, LastUpdated: now, CreatedAt: now, UpdatedAt: now}))
	}
	found, err := repos.Lines.List(ctx, entity.InventoryLineFilter{Search: "lot_1"})
	require.NoError(t, err)
	require.Len(t, found, 1, "el guion bajo no actúa como comodín")
	assert.Equal(t, "LOT_1", found[0].LotCode)

	missing, err := repos.Lines.GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_ConfiguracionDeCliente(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repos := postgres.NewRepos(pool)
	now := time.Now()

	clientID, espadin, tobala, p750 := uuid.NewString(), uuid.NewString(), uuid.NewString(), uuid.NewString()
	require.NoError(t, repos.Clients.Create(ctx, &entity.Client{ID: clientID, Name: "Mezcal Tosba", Active: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Varieties.Create(ctx, &entity.Variety{ID: espadin, Name: "Espadín", Active: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Varieties.Create(ctx, &entity.Variety{ID: tobala, Name: "Tobalá", Active: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Presentations.Create(ctx, &entity.Presentation{ID: p750, Volume: "750ml", Active: true, CreatedAt: now, UpdatedAt: now}))

	require.NoError(t, repos.ClientConfigs.ReplaceVarieties(ctx, clientID, []string{tobala, espadin}))
	require.NoError(t, repos.ClientConfigs.ReplacePresentations(ctx, clientID, []string{p750}))
	require.NoError(t, repos.ClientConfigs.ReplaceShipmentTypes(ctx, clientID, []string{entity.ShipmentDomestic, entity.ShipmentExport}))

	cfg, err := repos.ClientConfigs.Get(ctx, clientID)
	require.NoError(t, err)
	assert.Equal(t, "Mezcal Tosba", cfg.ClientName)
	require.Len(t, cfg.Varieties, 2)
	assert.Equal(t, "Espadín", cfg.Varieties[0].Name)
	assert.Equal(t, []entity.CatalogRef{{ID: p750, Name: "750ml"}}, cfg.Presentations)
	assert.Equal(t, []string{entity.ShipmentDomestic, entity.ShipmentExport}, cfg.ShipmentTypes)

	// Retirar y volver a asignar reutiliza la fila existente (ON CONFLICT).
	require.NoError(t, repos.ClientConfigs.ReplaceVarieties(ctx, clientID, []string{tobala}))
	require.NoError(t, repos.ClientConfigs.ReplacePresentations(ctx, clientID, nil))
	require.NoError(t, repos.ClientConfigs.ReplaceVarieties(ctx, clientID, []string{tobala, espadin}))

	cfg, err = repos.ClientConfigs.Get(ctx, clientID)
	require.NoError(t, err)
	assert.Len(t, cfg.Varieties, 2)
	assert.Empty(t, cfg.Presentations)

	err = repos.ClientConfigs.ReplaceShipmentTypes(ctx, clientID, []string{"Export"})
	assert.Error(t, err, "el CHECK rechaza tipos desconocidos")
}
