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

// getCopy devuelve una copia del valor o nil si no existe.
func getCopy[V any](m map[string]V, id string) *V {
	v, ok := m[id]
	if !ok {
		return nil
	}
	return &v
}

// listActive devuelve copias de los valores, opcionalmente solo activos, ordenadas por key.
func listActive[V any](m map[string]V, activeOnly bool, isActive func(V) bool, key func(V) string) []*V {
	out := make([]*V, 0, len(m))
	for _, v := range m {
		if activeOnly && !isActive(v) {
			continue
		}
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return key(*out[i]) < key(*out[j]) })
	return out
}

type clientRepo struct{ a *access }

func (r *clientRepo) Create(_ context.Context, c *entity.Client) error {
	return r.a.write("clients.create", func(d *dataset) error { d.clients[c.ID] = *c; return nil })
}

func (r *clientRepo) GetByID(_ context.Context, id string) (out *entity.Client, err error) {
	err = r.a.read("clients.get", func(d *dataset) error { out = getCopy(d.clients, id); return nil })
	return out, err
}

func (r *clientRepo) Update(_ context.Context, c *entity.Client) error {
	return r.a.write("clients.update", func(d *dataset) error { d.clients[c.ID] = *c; return nil })
}

func (r *clientRepo) List(_ context.Context, activeOnly bool) (out []*entity.Client, err error) {
	err = r.a.read("clients.list", func(d *dataset) error {
		out = listActive(d.clients, activeOnly, func(c entity.Client) bool { return c.Active }, func(c entity.Client) string { return c.Name })
		return nil
	})
	return out, err
}

func (r *clientRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.a.write("clients.set_active", func(d *dataset) error {
		if c, ok := d.clients[id]; ok {
			c.Active, c.UpdatedAt = active, time.Now()
			d.clients[id] = c
		}
		return nil
	})
}

type brandRepo struct{ a *access }

func (r *brandRepo) Create(_ context.Context, b *entity.Brand) error {
	return r.a.write("brands.create", func(d *dataset) error { d.brands[b.ID] = *b; return nil })
}

func (r *brandRepo) GetByID(_ context.Context, id string) (out *entity.Brand, err error) {
	err = r.a.read("brands.get", func(d *dataset) error {
		out = getCopy(d.brands, id)
		if out != nil && out.ClientID != nil {
			out.ClientName = d.clients[*out.ClientID].Name
		}
		return nil
	})
	return out, err
}

func (r *brandRepo) Update(_ context.Context, b *entity.Brand) error {
	return r.a.write("brands.update", func(d *dataset) error { d.brands[b.ID] = *b; return nil })
}

func (r *brandRepo) List(_ context.Context, clientID string, activeOnly bool) (out []*entity.Brand, err error) {
	err = r.a.read("brands.list", func(d *dataset) error {
		all := listActive(d.brands, activeOnly, func(b entity.Brand) bool { return b.Active }, func(b entity.Brand) string { return b.Name })
		for _, b := range all {
			if clientID != "" && (b.ClientID == nil || *b.ClientID != clientID) {
				continue
			}
			if b.ClientID != nil {
				b.ClientName = d.clients[*b.ClientID].Name
			}
			out = append(out, b)
		}
		return nil
	})
	return out, err
}

func (r *brandRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.a.write("brands.set_active", func(d *dataset) error {
		if b, ok := d.brands[id]; ok {
			b.Active, b.UpdatedAt = active, time.Now()
			d.brands[id] = b
		}
		return nil
	})
}

type supplierRepo struct{ a *access }

func (r *supplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.a.write("suppliers.create", func(d *dataset) error { d.suppliers[s.ID] = *s; return nil })
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (out *entity.Supplier, err error) {
	err = r.a.read("suppliers.get", func(d *dataset) error { out = getCopy(d.suppliers, id); return nil })
	return out, err
}

func (r *supplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	return r.a.write("suppliers.update", func(d *dataset) error { d.suppliers[s.ID] = *s; return nil })
}

func (r *supplierRepo) List(_ context.Context, activeOnly bool) (out []*entity.Supplier, err error) {
	err = r.a.read("suppliers.list", func(d *dataset) error {
		out = listActive(d.suppliers, activeOnly, func(s entity.Supplier) bool { return s.Active }, func(s entity.Supplier) string { return s.Name })
		return nil
	})
	return out, err
}

func (r *supplierRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.a.write("suppliers.set_active", func(d *dataset) error {
		if s, ok := d.suppliers[id]; ok {
			s.Active, s.UpdatedAt = active, time.Now()
			d.suppliers[id] = s
		}
		return nil
	})
}

type varietyRepo struct{ a *access }

func (r *varietyRepo) Create(_ context.Context, v *entity.Variety) error {
	return r.a.write("varieties.create", func(d *dataset) error { d.varieties[v.ID] = *v; return nil })
}

func (r *varietyRepo) GetByID(_ context.Context, id string) (out *entity.Variety, err error) {
	err = r.a.read("varieties.get", func(d *dataset) error { out = getCopy(d.varieties, id); return nil })
	return out, err
}

func (r *varietyRepo) Update(_ context.Context, v *entity.Variety) error {
	return r.a.write("varieties.update", func(d *dataset) error { d.varieties[v.ID] = *v; return nil })
}

func (r *varietyRepo) List(_ context.Context, activeOnly bool) (out []*entity.Variety, err error) {
	err = r.a.read("varieties.list", func(d *dataset) error {
		out = listActive(d.varieties, activeOnly, func(v entity.Variety) bool { return v.Active }, func(v entity.Variety) string { return v.Name })
		return nil
	})
	return out, err
}

func (r *varietyRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.a.write("varieties.set_active", func(d *dataset) error {
		if v, ok := d.varieties[id]; ok {
			v.Active, v.UpdatedAt = active, time.Now()
			d.varieties[id] = v
		}
		return nil
	})
}

type presentationRepo struct{ a *access }

func (r *presentationRepo) Create(_ context.Context, p *entity.Presentation) error {
	return r.a.write("presentations.create", func(d *dataset) error { d.presentations[p.ID] = *p; return nil })
}

func (r *presentationRepo) GetByID(_ context.Context, id string) (out *entity.Presentation, err error) {
	err = r.a.read("presentations.get", func(d *dataset) error { out = getCopy(d.presentations, id); return nil })
	return out, err
}

func (r *presentationRepo) Update(_ context.Context, p *entity.Presentation) error {
	return r.a.write("presentations.update", func(d *dataset) error { d.presentations[p.ID] = *p; return nil })
}

func (r *presentationRepo) List(_ context.Context, activeOnly bool) (out []*entity.Presentation, err error) {
	err = r.a.read("presentations.list", func(d *dataset) error {
		out = listActive(d.presentations, activeOnly, func(p entity.Presentation) bool { return p.Active }, func(p entity.Presentation) string { return p.Volume })
		return nil
	})
	return out, err
}

func (r *presentationRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.a.write("presentations.set_active", func(d *dataset) error {
		if p, ok := d.presentations[id]; ok {
			p.Active, p.UpdatedAt = active, time.Now()
			d.presentations[id] = p
		}
		return nil
	})
}

type categoryRepo struct{ a *access }

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.a.write("categories.create", func(d *dataset) error { d.categories[c.ID] = *c; return nil })
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (out *entity.Category, err error) {
	err = r.a.read("categories.get", func(d *dataset) error { out = getCopy(d.categories, id); return nil })
	return out, err
}

func (r *categoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.a.write("categories.update", func(d *dataset) error { d.categories[c.ID] = *c; return nil })
}

func (r *categoryRepo) List(_ context.Context, activeOnly bool) (out []*entity.Category, err error) {
	err = r.a.read("categories.list", func(d *dataset) error {
		out = listActive(d.categories, activeOnly, func(c entity.Category) bool { return c.Active }, func(c entity.Category) string { return c.Name })
		return nil
	})
	return out, err
}

func (r *categoryRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.a.write("categories.set_active", func(d *dataset) error {
		if c, ok := d.categories[id]; ok {
			c.Active, c.UpdatedAt = active, time.Now()
			d.categories[id] = c
		}
		return nil
	})
}

type lotRepo struct{ a *access }

func (d *dataset) lotCodeInUse(code, exceptID string) bool {
	for id, l := range d.lots {
		if id != exceptID && l.LotCode == code {
			return true
		}
	}
	return false
}

func (r *lotRepo) Create(_ context.Context, l *entity.ProductionLot) error {
	return r.a.write("lots.create", func(d *dataset) error {
		if d.lotCodeInUse(l.LotCode, "") {
			return fmt.Errorf("%w: lot_code %s", domain.ErrDuplicate, l.LotCode)
		}
		d.lots[l.ID] = *l
		return nil
	})
}

func (r *lotRepo) GetByID(_ context.Context, id string) (out *entity.ProductionLot, err error) {
	err = r.a.read("lots.get", func(d *dataset) error { out = getCopy(d.lots, id); return nil })
	return out, err
}

func (r *lotRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionLot, error) {
	return r.GetByID(ctx, id)
}

func (r *lotRepo) Update(_ context.Context, l *entity.ProductionLot) error {
	return r.a.write("lots.update", func(d *dataset) error {
		if d.lotCodeInUse(l.LotCode, l.ID) {
			return fmt.Errorf("%w: lot_code %s", domain.ErrDuplicate, l.LotCode)
		}
		d.lots[l.ID] = *l
		return nil
	})
}

func (r *lotRepo) List(_ context.Context, f entity.ProductionLotFilter) (out []*entity.ProductionLot, err error) {
	err = r.a.read("lots.list", func(d *dataset) error {
		all := listActive(d.lots, f.ActiveOnly, func(l entity.ProductionLot) bool { return l.Active }, func(l entity.ProductionLot) string { return l.LotCode })
		for _, l := range all {
			switch {
			case f.ClientID != "" && l.ClientID != f.ClientID,
				f.Status != "" && l.Status != f.Status,
				f.OpenOnly && !l.IsOpen():
				continue
			}
			out = append(out, l)
		}
		return nil
	})
	return out, err
}

func (r *lotRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.a.write("lots.set_active", func(d *dataset) error {
		if l, ok := d.lots[id]; ok {
			l.Active, l.UpdatedAt = active, time.Now()
			d.lots[id] = l
		}
		return nil
	})
}

type userRepo struct{ a *access }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	return r.a.write("users.create", func(d *dataset) error {
		for _, cur := range d.users {
			if strings.EqualFold(cur.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id string) (out *entity.User, err error) {
	err = r.a.read("users.get", func(d *dataset) error { out = getCopy(d.users, id); return nil })
	return out, err
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (out *entity.User, err error) {
	err = r.a.read("users.find_by_email", func(d *dataset) error {
		for _, u := range d.users {
			if strings.EqualFold(u.Email, email) {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	return r.a.write("users.update", func(d *dataset) error { d.users[u.ID] = *u; return nil })
}

func (r *userRepo) List(_ context.Context, limit, offset int) (out []*entity.User, err error) {
	err = r.a.read("users.list", func(d *dataset) error {
		all := listActive(d.users, false, func(entity.User) bool { return true }, func(u entity.User) string { return u.Name })
		out = paginate(all, limit, offset)
		return nil
	})
	return out, err
}

func (r *userRepo) Count(_ context.Context) (n int, err error) {
	err = r.a.read("users.count", func(d *dataset) error { n = len(d.users); return nil })
	return n, err
}

// clientAssignments conjunto activo de un cliente. Los slices se reemplazan, nunca se mutan.
type clientAssignments struct {
	varieties     []string
	presentations []string
	shipmentTypes []string
}

type clientConfigRepo struct{ a *access }

func (r *clientConfigRepo) Get(_ context.Context, clientID string) (out *entity.ClientConfig, err error) {
	err = r.a.read("client_configs.get", func(d *dataset) error {
		as := d.clientConfigs[clientID]
		out = &entity.ClientConfig{
			ClientID:      clientID,
			ClientName:    d.clients[clientID].Name,
			Varieties:     make([]entity.CatalogRef, 0, len(as.varieties)),
			Presentations: make([]entity.CatalogRef, 0, len(as.presentations)),
			ShipmentTypes: append([]string{}, as.shipmentTypes...),
		}
		for _, id := range as.varieties {
			out.Varieties = append(out.Varieties, entity.CatalogRef{ID: id, Name: d.varieties[id].Name})
		}
		for _, id := range as.presentations {
			out.Presentations = append(out.Presentations, entity.CatalogRef{ID: id, Name: d.presentations[id].Volume})
		}
		sortRefs(out.Varieties)
		sortRefs(out.Presentations)
		return nil
	})
	return out, err
}

func sortRefs(refs []entity.CatalogRef) {
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
}

func (r *clientConfigRepo) ReplaceVarieties(_ context.Context, clientID string, ids []string) error {
	return r.a.write("client_configs.replace_varieties", func(d *dataset) error {
		as := d.clientConfigs[clientID]
		as.varieties = append([]string(nil), ids...)
		d.clientConfigs[clientID] = as
		return nil
	})
}

func (r *clientConfigRepo) ReplacePresentations(_ context.Context, clientID string, ids []string) error {
	return r.a.write("client_configs.replace_presentations", func(d *dataset) error {
		as := d.clientConfigs[clientID]
		as.presentations = append([]string(nil), ids...)
		d.clientConfigs[clientID] = as
		return nil
	})
}

func (r *clientConfigRepo) ReplaceShipmentTypes(_ context.Context, clientID string, types []string) error {
	return r.a.write("client_configs.replace_shipment_types", func(d *dataset) error {
		as := d.clientConfigs[clientID]
		as.shipmentTypes = append([]string(nil), types...)
		d.clientConfigs[clientID] = as
		return nil
	})
}
