package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/application/inventory"
	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

func TestAlertEngine_ReevaluarEsIdempotente(t *testing.T) {
	f := newFixture(t)
	created := f.newLine(t, "BOT-CRIT", 0, intPtr(10))
	require.Equal(t, 1, f.store.OpenAlertCount(created.ID), "stock 0 con mínimo abre alerta crítica al crear")

	repos := f.store.Repos()
	line, err := repos.Lines.GetByID(f.ctx, created.ID)
	require.NoError(t, err)

	engine := inventory.NewAlertEngine()
	for i := 0; i < 3; i++ {
		alert, err := engine.Reevaluate(f.ctx, repos.Alerts, line)
		require.NoError(t, err)
		assert.Nil(t, alert, "sin cambios de nivel no se crea ni resuelve nada")
	}
	assert.Equal(t, 1, f.store.OpenAlertCount(created.ID))

	list, err := f.alerts.List(f.ctx, dto.AlertListQuery{}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, entity.AlertCritical, list.Items[0].Kind)
	assert.Equal(t, "BOT-CRIT", list.Items[0].LotCode)
	assert.Contains(t, list.Items[0].Message, "crítico")
}

func TestAlertEngine_SinMinimoNoAlerta(t *testing.T) {
	f := newFixture(t)
	line := f.newLine(t, "SIN-MIN", 0, nil)
	assert.Equal(t, 0, f.store.OpenAlertCount(line.ID))
}

func TestAlertUseCase_CreateManualConflicto(t *testing.T) {
	f := newFixture(t)
	line := f.newLine(t, "TAP-002", 100, intPtr(10))

	alert, err := f.alerts.Create(f.ctx, dto.CreateAlertRequest{InventoryID: line.ID, Kind: entity.AlertLow, Message: "revisar tapones"})
	require.NoError(t, err)
	assert.False(t, alert.Resolved)

	_, err = f.alerts.Create(f.ctx, dto.CreateAlertRequest{InventoryID: line.ID, Kind: entity.AlertCritical, Message: "otra"})
	assert.ErrorIs(t, err, domain.ErrConflict, "ya existe una alerta abierta")

	_, err = f.alerts.Create(f.ctx, dto.CreateAlertRequest{InventoryID: line.ID, Kind: "medium", Message: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAlertUseCase_VistasYResolucion(t *testing.T) {
	f := newFixture(t)
	a := f.newLine(t, "A-001", 1, intPtr(10))
	f.newLine(t, "B-001", 2, intPtr(10))

	count, err := f.alerts.CountUnseen(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count.Count)

	list, err := f.alerts.List(f.ctx, dto.AlertListQuery{}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	var alertA string
	for _, it := range list.Items {
		if it.InventoryID == a.ID {
			alertA = it.ID
		}
	}
	require.NotEmpty(t, alertA)

	seen, err := f.alerts.MarkSeen(f.ctx, alertA)
	require.NoError(t, err)
	assert.True(t, seen.Seen)

	count, err = f.alerts.CountUnseen(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count.Count)

	msg, err := f.alerts.MarkAllSeen(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "1 alertas marcadas como vistas", msg.Message)

	resolved, err := f.alerts.Resolve(f.ctx, alertA, f.userID)
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, f.userID, *resolved.ResolvedBy)

	again, err := f.alerts.Resolve(f.ctx, alertA, "")
	require.NoError(t, err)
	assert.Equal(t, *resolved.ResolvedAt, *again.ResolvedAt, "resolver dos veces no cambia la fecha")
	assert.Equal(t, 0, f.store.OpenAlertCount(a.ID))

	require.NoError(t, f.alerts.Delete(f.ctx, alertA))
	_, err = f.alerts.MarkSeen(f.ctx, alertA)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAlertUseCase_FiltroPorTipoInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.alerts.List(f.ctx, dto.AlertListQuery{Kind: "medium"}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
