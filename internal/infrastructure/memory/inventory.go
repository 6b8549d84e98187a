package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

type lineRepo struct{ a *access }

func (d *dataset) withNames(l entity.InventoryLine) *entity.InventoryLine {
	l.CategoryName = d.categories[l.CategoryID].Name
	if l.ClientID != nil {
		l.ClientName = d.clients[*l.ClientID].Name
	}
	if l.BrandID != nil {
		l.BrandName = d.brands[*l.BrandID].Name
	}
	if l.VarietyID != nil {
		l.VarietyName = d.varieties[*l.VarietyID].Name
	}
	if l.PresentationID != nil {
		l.PresentationName = d.presentations[*l.PresentationID].Volume
	}
	if l.SupplierID != nil {
		l.SupplierName = d.suppliers[*l.SupplierID].Name
	}
	return &l
}

func (d *dataset) lotCodeTaken(code, exceptID string) bool {
	for id, l := range d.lines {
		if id != exceptID && l.LotCode == code {
			return true
		}
	}
	return false
}

func (r *lineRepo) Create(_ context.Context, line *entity.InventoryLine) error {
	return r.a.write("lines.create", func(d *dataset) error {
		if d.lotCodeTaken(line.LotCode, "") {
			return fmt.Errorf("%w: lot_code %s", domain.ErrDuplicate, line.LotCode)
		}
		d.lines[line.ID] = *line
		return nil
	})
}

func (r *lineRepo) GetByID(_ context.Context, id string) (*entity.InventoryLine, error) {
	var out *entity.InventoryLine
	err := r.a.read("lines.get", func(d *dataset) error {
		if l, ok := d.lines[id]; ok {
			out = d.withNames(l)
		}
		return nil
	})
	return out, err
}

func (r *lineRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryLine, error) {
	return r.GetByID(ctx, id)
}

func (r *lineRepo) Update(_ context.Context, line *entity.InventoryLine) error {
	return r.a.write("lines.update", func(d *dataset) error {
		cur, ok := d.lines[line.ID]
		if !ok {
			return nil
		}
		if d.lotCodeTaken(line.LotCode, line.ID) {
			return fmt.Errorf("%w: lot_code %s", domain.ErrDuplicate, line.LotCode)
		}
		next := *line
		next.Quantity = cur.Quantity
		next.LastUpdated = cur.LastUpdated
		d.lines[line.ID] = next
		return nil
	})
}

func (r *lineRepo) UpdateQuantity(_ context.Context, id string, quantity int, at time.Time) error {
	return r.a.write("lines.update_quantity", func(d *dataset) error {
		l, ok := d.lines[id]
		if !ok {
			return fmt.Errorf("%w: línea %s", domain.ErrNotFound, id)
		}
		if quantity < 0 {
			return fmt.Errorf("check constraint: quantity >= 0")
		}
		l.Quantity = quantity
		l.LastUpdated = at
		l.UpdatedAt = at
		d.lines[id] = l
		return nil
	})
}

func (r *lineRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.a.write("lines.set_active", func(d *dataset) error {
		if l, ok := d.lines[id]; ok {
			l.Active = active
			l.UpdatedAt = time.Now()
			d.lines[id] = l
		}
		return nil
	})
}

func (r *lineRepo) List(_ context.Context, f entity.InventoryLineFilter) ([]*entity.InventoryLine, error) {
	var out []*entity.InventoryLine
	err := r.a.read("lines.list", func(d *dataset) error {
		active := true
		if f.Active != nil {
			active = *f.Active
		}
		search := strings.ToLower(f.Search)
		for _, l := range d.lines {
			switch {
			case l.Active != active,
				f.CategoryID != "" && l.CategoryID != f.CategoryID,
				f.ClientID != "" && (l.ClientID == nil || *l.ClientID != f.ClientID),
				f.BrandID != "" && (l.BrandID == nil || *l.BrandID != f.BrandID),
				f.VarietyID != "" && (l.VarietyID == nil || *l.VarietyID != f.VarietyID),
				f.PresentationID != "" && (l.PresentationID == nil || *l.PresentationID != f.PresentationID),
				f.ShipmentType != "" && l.ShipmentType != f.ShipmentType,
				search != "" && !strings.Contains(strings.ToLower(l.LotCode), search):
				continue
			}
			out = append(out, d.withNames(l))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].LotCode < out[j].LotCode })
	return out, err
}

type movementRepo struct{ a *access }

func (r *movementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.a.write("movements.create", func(d *dataset) error {
		d.movements = append(d.movements, *m)
		return nil
	})
}

func (r *movementRepo) ListByLine(_ context.Context, lineID string, limit, offset int) ([]*entity.Movement, int, error) {
	var all []*entity.Movement
	err := r.a.read("movements.list", func(d *dataset) error {
		for i := len(d.movements) - 1; i >= 0; i-- {
			m := d.movements[i]
			if m.InventoryLineID == lineID {
				m.ActorName = d.users[m.ActorID].Name
				all = append(all, &m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return paginate(all, limit, offset), len(all), nil
}

type alertRepo struct{ a *access }

func (d *dataset) alertIndex(id string) int {
	for i, a := range d.alerts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (d *dataset) withLotCode(a entity.Alert) *entity.Alert {
	a.LotCode = d.lines[a.InventoryLineID].LotCode
	return &a
}

func (r *alertRepo) Create(_ context.Context, a *entity.Alert) error {
	return r.a.write("alerts.create", func(d *dataset) error {
		if !a.Resolved {
			for _, cur := range d.alerts {
				if cur.InventoryLineID == a.InventoryLineID && !cur.Resolved {
					return fmt.Errorf("%w: alerta abierta para la línea %s", domain.ErrDuplicate, a.InventoryLineID)
				}
			}
		}
		d.alerts = append(d.alerts, *a)
		return nil
	})
}

func (r *alertRepo) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	var out *entity.Alert
	err := r.a.read("alerts.get", func(d *dataset) error {
		if i := d.alertIndex(id); i >= 0 {
			out = d.withLotCode(d.alerts[i])
		}
		return nil
	})
	return out, err
}

func (r *alertRepo) GetOpenByLine(_ context.Context, lineID string) (*entity.Alert, error) {
	var out *entity.Alert
	err := r.a.read("alerts.get_open", func(d *dataset) error {
		for _, a := range d.alerts {
			if a.InventoryLineID == lineID && !a.Resolved {
				out = d.withLotCode(a)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *alertRepo) Update(_ context.Context, a *entity.Alert) error {
	return r.a.write("alerts.update", func(d *dataset) error {
		i := d.alertIndex(a.ID)
		if i < 0 {
			return nil
		}
		cur := d.alerts[i]
		cur.Seen = a.Seen
		cur.Resolved = a.Resolved
		cur.ResolvedBy = a.ResolvedBy
		cur.ResolvedAt = a.ResolvedAt
		d.alerts[i] = cur
		return nil
	})
}

func (r *alertRepo) MarkAllSeen(_ context.Context) (int64, error) {
	var n int64
	err := r.a.write("alerts.mark_all_seen", func(d *dataset) error {
		for i := range d.alerts {
			if !d.alerts[i].Seen {
				d.alerts[i].Seen = true
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *alertRepo) CountUnseen(_ context.Context) (int, error) {
	n := 0
	err := r.a.read("alerts.count_unseen", func(d *dataset) error {
		for _, a := range d.alerts {
			if !a.Seen && !a.Resolved {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *alertRepo) List(_ context.Context, f entity.AlertFilter, limit, offset int) ([]*entity.Alert, int, error) {
	var all []*entity.Alert
	err := r.a.read("alerts.list", func(d *dataset) error {
		for i := len(d.alerts) - 1; i >= 0; i-- {
			a := d.alerts[i]
			switch {
			case f.Seen != nil && a.Seen != *f.Seen,
				f.Resolved != nil && a.Resolved != *f.Resolved,
				f.Kind != "" && a.Kind != f.Kind,
				f.LineID != "" && a.InventoryLineID != f.LineID:
				continue
			}
			all = append(all, d.withLotCode(a))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return paginate(all, limit, offset), len(all), nil
}

func (r *alertRepo) Delete(_ context.Context, id string) error {
	return r.a.write("alerts.delete", func(d *dataset) error {
		if i := d.alertIndex(id); i >= 0 {
			d.alerts = append(d.alerts[:i], d.alerts[i+1:]...)
		}
		return nil
	})
}

type sequenceRepo struct{ a *access }

func (r *sequenceRepo) Next(_ context.Context, prefix string) (int64, error) {
	var n int64
	err := r.a.write("sequences.next", func(d *dataset) error {
		d.sequences[prefix]++
		n = d.sequences[prefix]
		return nil
	})
	return n, err
}
