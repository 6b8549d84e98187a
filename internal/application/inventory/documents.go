package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

// Prefijos de numeración de documentos.
const (
	PrefixReception = "REC"
	PrefixDelivery  = "ENT"
)

const dateOnly = "2006-01-02"

// DocumentNumber formatea el consecutivo con seis dígitos: REC-000001.
func DocumentNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}

// ParseDate acepta "2006-01-02" o RFC3339.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha inválida %q, use AAAA-MM-DD", domain.ErrInvalidInput, s)
	}
	return t, nil
}

// ParseDateRange interpreta los filtros from/to; un "to" sin hora incluye el día completo.
func ParseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var f, t *time.Time
	if from != "" {
		v, err := ParseDate(from)
		if err != nil {
			return nil, nil, err
		}
		f = &v
	}
	if to != "" {
		v, err := ParseDate(to)
		if err != nil {
			return nil, nil, err
		}
		if len(to) == len(dateOnly) {
			v = v.Add(24*time.Hour - time.Nanosecond)
		}
		t = &v
	}
	if f != nil && t != nil && t.Before(*f) {
		return nil, nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	return f, t, nil
}

// CheckTransition valida el cambio de estado de una recepción o entrega.
// cancelled es terminal y un documento completado no vuelve a pendiente.
func CheckTransition(from, to string) error {
	if !entity.ValidDocumentStatus(to) {
		return fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, to)
	}
	switch {
	case from == to:
		return nil
	case from == entity.StatusPending:
		return nil
	case from == entity.StatusCompleted && to == entity.StatusCancelled:
		return nil
	}
	return fmt.Errorf("%w: no se puede pasar de %s a %s", domain.ErrInvalidState, from, to)
}

// InitialStatus estado de creación: completed por defecto, o pending.
func InitialStatus(s string) (string, error) {
	switch s {
	case "":
		return entity.StatusCompleted, nil
	case entity.StatusPending, entity.StatusCompleted:
		return s, nil
	}
	return "", fmt.Errorf("%w: un documento se crea como pending o completed", domain.ErrInvalidInput)
}

// ActiveLine valida que la línea de un renglón exista y esté activa.
func ActiveLine(line *entity.InventoryLine, id string) error {
	if line == nil {
		return fmt.Errorf("%w: línea de inventario %s", domain.ErrNotFound, id)
	}
	if !line.Active {
		return fmt.Errorf("%w: la línea %s está inactiva", domain.ErrInvalidInput, line.LotCode)
	}
	return nil
}
