package delivery_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Insumos-api/internal/application/delivery"
	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/application/inventory"
	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/infrastructure/memory"
)

type stubPDF struct{}

func (stubPDF) DeliveryPDF(_ context.Context, d *entity.Delivery) ([]byte, error) {
	return []byte(d.Number), nil
}

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	uc       *delivery.UseCase
	userID   string
	clientID string
	lotID    string
	lineA    string
	lineB    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	now := time.Now()
	f := &fixture{
		ctx:      ctx,
		store:    store,
		userID:   uuid.New().String(),
		clientID: uuid.New().String(),
		lotID:    uuid.New().String(),
		lineA:    uuid.New().String(),
		lineB:    uuid.New().String(),
	}
	bottles, labels := uuid.New().String(), uuid.New().String()
	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: f.userID, Email: "entrega@mezcal.mx", Name: "Entrega", Role: entity.RoleOperator, Active: true}))
	require.NoError(t, repos.Clients.Create(ctx, &entity.Client{ID: f.clientID, Name: "Mezcal Oaxaqueño", Active: true}))
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: bottles, Name: "Botellas", Active: true}))
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: labels, Name: "Etiquetas", Active: true}))
	require.NoError(t, repos.Lots.Create(ctx, &entity.ProductionLot{
		ID: f.lotID, ClientID: f.clientID, LotCode: "LP-2024-01", ProductionDate: now,
		BottlesProduced: 40, BottlesRemaining: 40, AlcoholGrade: decimal.RequireFromString("47.5"),
		Status: entity.LotActive, Active: true,
	}))
	require.NoError(t, repos.Lines.Create(ctx, &entity.InventoryLine{ID: f.lineA, CategoryID: bottles, LotCode: "BOT-A", Quantity: 50, Unit: entity.UnitPieces, ShipmentType: entity.ShipmentDomestic, Active: true}))
	require.NoError(t, repos.Lines.Create(ctx, &entity.InventoryLine{ID: f.lineB, CategoryID: labels, LotCode: "ETQ-B", Quantity: 30, Unit: entity.UnitSheets, ShipmentType: entity.ShipmentDomestic, Active: true}))

	ledger := inventory.NewLedger(inventory.NewAlertEngine(), nil)
	f.uc = delivery.NewUseCase(repos, store, ledger, stubPDF{}, nil)
	return f
}

func (f *fixture) request(status string, lotID *string, details ...dto.DeliveryDetailRequest) dto.CreateDeliveryRequest {
	return dto.CreateDeliveryRequest{
		Date:            "2024-06-01",
		ProductionOrder: "OP-12",
		ProductionLotID: lotID,
		ClientID:        f.clientID,
		Status:          status,
		Details:         details,
	}
}

func (f *fixture) quantity(t *testing.T, id string) int {
	t.Helper()
	line, err := f.store.Repos().Lines.GetByID(f.ctx, id)
	require.NoError(t, err)
	return line.Quantity
}

func (f *fixture) lot(t *testing.T) *entity.ProductionLot {
	t.Helper()
	lot, err := f.store.Repos().Lots.GetByID(f.ctx, f.lotID)
	require.NoError(t, err)
	return lot
}

func TestCreate_StockInsuficienteRevierteTodo(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(f.ctx, f.userID, f.request("", nil,
		dto.DeliveryDetailRequest{InventoryID: f.lineB, Amount: 10},
		dto.DeliveryDetailRequest{InventoryID: f.lineA, Amount: 60},
	))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 50, f.quantity(t, f.lineA))
	assert.Equal(t, 30, f.quantity(t, f.lineB), "el primer renglón también se revierte")
	assert.Equal(t, 0, f.store.MovementCount())
	assert.Equal(t, 0, f.store.DeliveryCount())
}

func TestCreate_SalidaConMermaYConsumoDeLote(t *testing.T) {
	f := newFixture(t)

	del, err := f.uc.Create(f.ctx, f.userID, f.request("", &f.lotID,
		dto.DeliveryDetailRequest{InventoryID: f.lineA, Amount: 20, WasteAmount: 5},
	))
	require.NoError(t, err)
	assert.Equal(t, "ENT-000001", del.Number)
	assert.Equal(t, 25, f.quantity(t, f.lineA))
	assert.Equal(t, 2, f.store.MovementCount(), "salida más merma")
	assert.Equal(t, 20, f.lot(t).BottlesRemaining, "el lote descuenta solo lo entregado")

	require.NotNil(t, del.ProductionLot)
	assert.Equal(t, "LP-2024-01", del.ProductionLot.LotCode)
	require.Len(t, del.Details, 1)
	assert.Equal(t, 5, del.Details[0].WasteAmount)
	assert.Equal(t, entity.UnitPieces, del.Details[0].Unit)
}

func TestCreate_MermaSinStockRevierte(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(f.ctx, f.userID, f.request("", nil,
		dto.DeliveryDetailRequest{InventoryID: f.lineA, Amount: 45, WasteAmount: 10},
	))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 50, f.quantity(t, f.lineA))
	assert.Equal(t, 0, f.store.MovementCount())
}

func TestLoteAgotadoYCancelacion(t *testing.T) {
	f := newFixture(t)
	del, err := f.uc.Create(f.ctx, f.userID, f.request("", &f.lotID,
		dto.DeliveryDetailRequest{InventoryID: f.lineA, Amount: 30},
		dto.DeliveryDetailRequest{InventoryID: f.lineB, Amount: 15, WasteAmount: 2},
	))
	require.NoError(t, err)
	lot := f.lot(t)
	assert.Equal(t, 0, lot.BottlesRemaining, "nunca negativo")
	assert.Equal(t, entity.LotCompleted, lot.Status)

	cancelled := entity.StatusCancelled
	out, err := f.uc.Update(f.ctx, f.userID, del.ID, dto.UpdateDeliveryRequest{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, out.Status)
	assert.Equal(t, 50, f.quantity(t, f.lineA))
	assert.Equal(t, 30, f.quantity(t, f.lineB), "se devuelve entrega y merma")
	assert.Equal(t, 5, f.store.MovementCount(), "3 originales + 2 compensatorios")

	lot = f.lot(t)
	assert.Equal(t, 40, lot.BottlesRemaining, "se restaura sin superar las producidas")
	assert.Equal(t, entity.LotActive, lot.Status)
}

func TestCreate_ValidaLote(t *testing.T) {
	f := newFixture(t)
	missing := uuid.New().String()
	_, err := f.uc.Create(f.ctx, f.userID, f.request("", &missing, dto.DeliveryDetailRequest{InventoryID: f.lineA, Amount: 1}))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	otherClient := uuid.New().String()
	repos := f.store.Repos()
	require.NoError(t, repos.Clients.Create(f.ctx, &entity.Client{ID: otherClient, Name: "Otro", Active: true}))
	req := f.request("", &f.lotID, dto.DeliveryDetailRequest{InventoryID: f.lineA, Amount: 1})
	req.ClientID = otherClient
	_, err = f.uc.Create(f.ctx, f.userID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el lote es de otro cliente")

	lot := f.lot(t)
	lot.Status = entity.LotClosed
	require.NoError(t, repos.Lots.Update(f.ctx, lot))
	_, err = f.uc.Create(f.ctx, f.userID, f.request("", &f.lotID, dto.DeliveryDetailRequest{InventoryID: f.lineA, Amount: 1}))
	assert.ErrorIs(t, err, domain.ErrInvalidState, "lote cerrado")
	assert.Equal(t, 50, f.quantity(t, f.lineA))
	assert.Equal(t, 0, f.store.DeliveryCount())
}

func TestPendienteCompletarYEliminar(t *testing.T) {
	f := newFixture(t)
	del, err := f.uc.Create(f.ctx, f.userID, f.request(entity.StatusPending, &f.lotID,
		dto.DeliveryDetailRequest{InventoryID: f.lineA, Amount: 10},
	))
	require.NoError(t, err)
	assert.Equal(t, 50, f.quantity(t, f.lineA))
	assert.Equal(t, 40, f.lot(t).BottlesRemaining)

	completed := entity.StatusCompleted
	_, err = f.uc.Update(f.ctx, f.userID, del.ID, dto.UpdateDeliveryRequest{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, 40, f.quantity(t, f.lineA))
	assert.Equal(t, 30, f.lot(t).BottlesRemaining)

	_, err = f.uc.Delete(f.ctx, del.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una completada no se elimina")

	_, err = f.uc.Update(f.ctx, f.userID, del.ID, dto.UpdateDeliveryRequest{
		Details: []dto.DeliveryDetailRequest{{InventoryID: f.lineA, Amount: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	pending, err := f.uc.Create(f.ctx, f.userID, f.request(entity.StatusPending, nil, dto.DeliveryDetailRequest{InventoryID: f.lineB, Amount: 1}))
	require.NoError(t, err)
	assert.Equal(t, "ENT-000002", pending.Number)
	_, err = f.uc.Delete(f.ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.DeliveryCount())
}

func TestWasteReport(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(f.ctx, f.userID, f.request("", nil,
		dto.DeliveryDetailRequest{InventoryID: f.lineA, Amount: 20, WasteAmount: 5},
		dto.DeliveryDetailRequest{InventoryID: f.lineB, Amount: 10},
	))
	require.NoError(t, err)
	_, err = f.uc.Create(f.ctx, f.userID, f.request(entity.StatusPending, nil,
		dto.DeliveryDetailRequest{InventoryID: f.lineA, Amount: 7, WasteAmount: 7},
	))
	require.NoError(t, err)

	report, err := f.uc.WasteReport(f.ctx, dto.DocumentListQuery{From: "2024-06-01", To: "2024-06-30"})
	require.NoError(t, err)
	require.Len(t, report.Rows, 1, "las pendientes y las categorías sin merma no cuentan")

	assert.Equal(t, "Botellas", report.Rows[0].CategoryName)
	assert.Equal(t, 20, report.Rows[0].Delivered)
	assert.Equal(t, 5, report.Rows[0].Waste)
	assert.True(t, report.Rows[0].WastePercent.Equal(decimal.NewFromInt(25)), "5 sobre 20 entregadas es 25%%, obtuvo %s", report.Rows[0].WastePercent)

	assert.Equal(t, 20, report.TotalDelivered)
	assert.Equal(t, 5, report.TotalWaste)
	assert.True(t, report.WastePercent.Equal(decimal.NewFromInt(25)), "obtuvo %s", report.WastePercent)

	empty, err := f.uc.WasteReport(f.ctx, dto.DocumentListQuery{From: "2025-01-01"})
	require.NoError(t, err)
	assert.Empty(t, empty.Rows)
	assert.True(t, empty.WastePercent.IsZero())
}

func TestListFormDataYPDF(t *testing.T) {
	f := newFixture(t)
	del, err := f.uc.Create(f.ctx, f.userID, f.request("", &f.lotID, dto.DeliveryDetailRequest{InventoryID: f.lineA, Amount: 1}))
	require.NoError(t, err)

	list, err := f.uc.List(f.ctx, dto.DocumentListQuery{LotID: f.lotID})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)

	list, err = f.uc.List(f.ctx, dto.DocumentListQuery{Status: entity.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Page.Total)

	form, err := f.uc.FormData(f.ctx)
	require.NoError(t, err)
	require.Len(t, form.Lots, 1)
	assert.Equal(t, "LP-2024-01 (39 botellas)", form.Lots[0].Name)

	b, name, err := f.uc.PDF(f.ctx, del.ID)
	require.NoError(t, err)
	assert.Equal(t, "ENT-000001.pdf", name)
	assert.Equal(t, []byte("ENT-000001"), b)
}
