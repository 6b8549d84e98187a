package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

func TestApplyMovement_SalidaAbreAlertaYEntradaLaResuelve(t *testing.T) {
	f := newFixture(t)
	line := f.newLine(t, "BOT-750-001", 100, intPtr(50))
	assert.Equal(t, 0, f.store.OpenAlertCount(line.ID), "stock sobre el mínimo no alerta")

	res, err := f.apply(entity.MovementOut, line.ID, 60)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Before)
	assert.Equal(t, 40, res.After)
	assert.Equal(t, 1, f.store.OpenAlertCount(line.ID), "bajo el mínimo se abre una alerta")

	_, err = f.apply(entity.MovementOut, line.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.OpenAlertCount(line.ID), "nunca más de una alerta abierta por línea")

	open, err := f.alerts.List(f.ctx, dto.AlertListQuery{Resolved: boolPtr(false)}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, open.Items, 1)
	assert.Equal(t, entity.AlertLow, open.Items[0].Kind, "la alerta baja no escala a crítica")

	res, err = f.apply(entity.MovementIn, line.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 110, res.After)
	assert.Equal(t, 0, f.store.OpenAlertCount(line.ID), "al recuperar el mínimo la alerta se resuelve")

	resolved, err := f.alerts.List(f.ctx, dto.AlertListQuery{Resolved: boolPtr(true)}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resolved.Items, 1)
	assert.NotNil(t, resolved.Items[0].ResolvedAt)
}

func TestApplyMovement_StockInsuficienteNoModificaNada(t *testing.T) {
	f := newFixture(t)
	line := f.newLine(t, "TAP-001", 10, nil)
	before := f.store.MovementCount()

	_, err := f.apply(entity.MovementOut, line.ID, 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.lines.GetByID(f.ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity, "la cantidad no debe cambiar")
	assert.Equal(t, before, f.store.MovementCount(), "no se registra movimiento")
}

func TestApplyMovement_FalloAlRegistrarHaceRollback(t *testing.T) {
	f := newFixture(t)
	line := f.newLine(t, "ETQ-001", 20, intPtr(15))
	f.store.FailOn("movements.create", errors.New("disco lleno"))

	_, err := f.apply(entity.MovementOut, line.ID, 10)
	require.Error(t, err)

	f.store.FailOn("movements.create", nil)
	got, err := f.lines.GetByID(f.ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Quantity, "la actualización de cantidad se revierte")
	assert.Equal(t, 0, f.store.OpenAlertCount(line.ID), "tampoco queda alerta abierta")
}

func TestApplyMovement_AjusteYMerma(t *testing.T) {
	f := newFixture(t)
	line := f.newLine(t, "CAJ-001", 30, nil)

	res, err := f.apply(entity.MovementAdjust, line.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, 30, res.Before)
	assert.Equal(t, 25, res.After)

	res, err = f.apply(entity.MovementWaste, line.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 20, res.After)
	assert.Equal(t, entity.MovementWaste, res.Movement.Kind)
}

func TestApplyMovement_IdaYVueltaRestauraCantidad(t *testing.T) {
	f := newFixture(t)
	line := f.newLine(t, "BOT-050-001", 37, intPtr(10))

	_, err := f.apply(entity.MovementIn, line.ID, 13)
	require.NoError(t, err)
	res, err := f.apply(entity.MovementOut, line.ID, 13)
	require.NoError(t, err)
	assert.Equal(t, 37, res.After)
}

func TestApplyMovement_Validaciones(t *testing.T) {
	f := newFixture(t)
	line := f.newLine(t, "BOT-001", 5, nil)

	_, err := f.apply(entity.MovementOut, line.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = f.apply("transfer", line.ID, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = f.apply(entity.MovementIn, "00000000-0000-0000-0000-000000000099", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound, "línea inexistente")

	_, err = f.movements.Apply(f.ctx, f.userID, dto.ApplyMovementRequest{
		InventoryID: line.ID, Kind: entity.MovementIn, Amount: 1,
		ActorID: "00000000-0000-0000-0000-000000000098",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "actor inexistente")
}

func TestLedger_RegistraAntesYDespues(t *testing.T) {
	f := newFixture(t)
	line := f.newLine(t, "BOT-002", 8, nil)
	_, err := f.apply(entity.MovementIn, line.ID, 2)
	require.NoError(t, err)

	hist, err := f.lines.Movements(f.ctx, line.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, hist.Items, 2, "stock inicial más la entrada")
	assert.Equal(t, 2, hist.Page.Total)

	last := hist.Items[0]
	assert.Equal(t, 8, last.QuantityBefore)
	assert.Equal(t, 10, last.QuantityAfter)
	assert.Equal(t, "Almacén", last.ActorName)

	first := hist.Items[1]
	assert.Equal(t, "Stock inicial", first.Reason)
	assert.Equal(t, 0, first.QuantityBefore)
}

func boolPtr(b bool) *bool { return &b }

func TestApplyMovement_LineaInactivaRechazada(t *testing.T) {
	f := newFixture(t)
	line := f.newLine(t, "SEL-001", 40, nil)
	_, err := f.lines.Delete(f.ctx, line.ID)
	require.NoError(t, err)
	before := f.store.MovementCount()

	_, err = f.apply(entity.MovementIn, line.ID, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una línea dada de baja no recibe movimientos manuales")
	assert.Equal(t, before, f.store.MovementCount())
}
