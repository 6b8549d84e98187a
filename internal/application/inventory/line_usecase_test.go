package inventory_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/application/inventory"
	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

func TestLineUseCase_CreateAplicaValoresPorDefecto(t *testing.T) {
	f := newFixture(t)
	line := f.newLine(t, "BOT-750-010", 12, nil)

	assert.Equal(t, entity.ShipmentDomestic, line.ShipmentType)
	assert.Equal(t, entity.UnitPieces, line.Unit, "la unidad se hereda de la categoría")
	assert.Equal(t, "Botellas", line.CategoryName)
	assert.Equal(t, "Mezcal Oaxaqueño", line.ClientName)
	assert.Equal(t, 12, line.Quantity)
	assert.Empty(t, line.StockLevel, "sin mínimo no hay nivel")
	require.Len(t, line.RecentMovements, 1)
	assert.Equal(t, entity.MovementIn, line.RecentMovements[0].Kind)
}

func TestLineUseCase_CreateValidaReferencias(t *testing.T) {
	f := newFixture(t)
	missing := uuid.New().String()

	_, err := f.lines.Create(f.ctx, f.userID, dto.CreateInventoryLineRequest{CategoryID: missing, LotCode: "X-1", Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.lines.Create(f.ctx, f.userID, dto.CreateInventoryLineRequest{CategoryID: f.categoryID, SupplierID: &missing, LotCode: "X-2"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.lines.List(f.ctx, dto.InventoryListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "ninguna línea queda persistida")
	assert.Equal(t, 0, f.store.MovementCount())
}

func TestLineUseCase_CreateLoteDuplicado(t *testing.T) {
	f := newFixture(t)
	f.newLine(t, "DUP-1", 1, nil)
	_, err := f.lines.Create(f.ctx, f.userID, dto.CreateInventoryLineRequest{CategoryID: f.categoryID, LotCode: "DUP-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLineUseCase_CreateValidaEntrada(t *testing.T) {
	f := newFixture(t)
	_, err := f.lines.Create(f.ctx, f.userID, dto.CreateInventoryLineRequest{CategoryID: f.categoryID, LotCode: "N-1", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.lines.Create(f.ctx, f.userID, dto.CreateInventoryLineRequest{CategoryID: f.categoryID, LotCode: "N-2", ShipmentType: "Aéreo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLineUseCase_UpdateMinimoReevaluaAlertas(t *testing.T) {
	f := newFixture(t)
	line := f.newLine(t, "ETQ-100", 5, nil)
	assert.Equal(t, 0, f.store.OpenAlertCount(line.ID))

	updated, err := f.lines.Update(f.ctx, line.ID, dto.UpdateInventoryLineRequest{MinQuantity: intPtr(20)})
	require.NoError(t, err)
	assert.Equal(t, "critical", updated.StockLevel)
	assert.True(t, updated.IsCriticalStock)
	assert.Equal(t, 1, f.store.OpenAlertCount(line.ID))

	updated, err = f.lines.Update(f.ctx, line.ID, dto.UpdateInventoryLineRequest{MinQuantity: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, "adequate", updated.StockLevel)
	assert.Equal(t, 0, f.store.OpenAlertCount(line.ID), "al bajar el mínimo la alerta se resuelve")
	assert.Equal(t, 5, updated.Quantity, "la edición no toca la cantidad")
}

func TestLineUseCase_UpdateNoEncontrada(t *testing.T) {
	f := newFixture(t)
	_, err := f.lines.Update(f.ctx, uuid.New().String(), dto.UpdateInventoryLineRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLineUseCase_ListPorNivelDeStock(t *testing.T) {
	f := newFixture(t)
	f.newLine(t, "L-ADEQ", 100, intPtr(50))
	f.newLine(t, "L-LOW", 40, intPtr(50))
	f.newLine(t, "L-CRIT", 10, intPtr(50))
	f.newLine(t, "L-NONE", 0, nil)

	for level, want := range map[string]string{"adequate": "L-ADEQ", "low": "L-LOW", "critical": "L-CRIT"} {
		list, err := f.lines.List(f.ctx, dto.InventoryListQuery{StockLevel: level})
		require.NoError(t, err)
		require.Len(t, list.Items, 1, level)
		assert.Equal(t, want, list.Items[0].LotCode)
	}

	all, err := f.lines.List(f.ctx, dto.InventoryListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Total)

	search, err := f.lines.List(f.ctx, dto.InventoryListQuery{Search: "crit"})
	require.NoError(t, err)
	assert.Equal(t, 1, search.Total, "la búsqueda no distingue mayúsculas")

	_, err = f.lines.List(f.ctx, dto.InventoryListQuery{StockLevel: "medio"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLineUseCase_DeleteEsBajaLogica(t *testing.T) {
	f := newFixture(t)
	line := f.newLine(t, "BAJA-1", 3, nil)

	msg, err := f.lines.Delete(f.ctx, line.ID)
	require.NoError(t, err)
	assert.Contains(t, msg.Message, "BAJA-1")

	active, err := f.lines.List(f.ctx, dto.InventoryListQuery{})
	require.NoError(t, err)
	assert.Empty(t, active.Items)

	inactive := false
	list, err := f.lines.List(f.ctx, dto.InventoryListQuery{Active: &inactive})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	got, err := f.lines.GetByID(f.ctx, line.ID)
	require.NoError(t, err)
	assert.Len(t, got.RecentMovements, 1, "el historial se conserva")
}

func TestLineUseCase_Stats(t *testing.T) {
	f := newFixture(t)
	f.newLine(t, "S-1", 100, intPtr(50))
	f.newLine(t, "S-2", 40, intPtr(50))
	_, err := f.lines.Create(f.ctx, f.userID, dto.CreateInventoryLineRequest{CategoryID: f.categoryID, LotCode: "S-3", Quantity: 5, MinQuantity: intPtr(50)})
	require.NoError(t, err)

	stats, err := f.lines.Stats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalLines)
	assert.Equal(t, 145, stats.TotalQuantity)
	assert.Equal(t, 1, stats.LowStock)
	assert.Equal(t, 1, stats.CriticalStock)
	assert.Equal(t, 2, stats.UnseenAlerts)
	require.Len(t, stats.ByCategory, 1)
	assert.Equal(t, 3, stats.ByCategory[0].Lines)
	require.Len(t, stats.ByClient, 2)
	assert.Equal(t, "Mezcal Oaxaqueño", stats.ByClient[0].Name)
	assert.Equal(t, "Sin cliente", stats.ByClient[1].Name)
}

func TestLineUseCase_FilterOptionsOrdenEspanol(t *testing.T) {
	f := newFixture(t)
	repos := f.store.Repos()
	for _, name := range []string{"Zacatecas", "Ñuu Savi", "Oaxaca", "Nopal"} {
		require.NoError(t, repos.Clients.Create(f.ctx, &entity.Client{ID: uuid.New().String(), Name: name, Active: true, CreatedAt: time.Now()}))
	}

	opts, err := f.lines.FilterOptions(f.ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(opts.Clients))
	for _, c := range opts.Clients {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Mezcal Oaxaqueño", "Nopal", "Ñuu Savi", "Oaxaca", "Zacatecas"}, names, "la ñ va después de la n")
	assert.Equal(t, []string{"Nacional", "Exportación"}, opts.ShipmentTypes)
}

func TestSortOptions(t *testing.T) {
	opts := []dto.OptionResponse{{Name: "ámbar"}, {Name: "Azul"}, {Name: "blanco"}}
	inventory.SortOptions(opts)
	assert.Equal(t, "ámbar", opts[0].Name)
	assert.Equal(t, "blanco", opts[2].Name)
}

func TestLineUseCase_Export(t *testing.T) {
	f := newFixture(t)
	f.newLine(t, "EXP-1", 1, nil)
	f.newLine(t, "EXP-2", 2, nil)

	out, err := f.lines.Export(f.ctx, dto.InventoryListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), out)
	assert.Equal(t, 2, f.exporter.rows)
}
