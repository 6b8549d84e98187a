package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

type receptionRepo struct{ a *access }

func (d *dataset) loadReception(r entity.Reception, inc repository.ReceptionInclude) *entity.Reception {
	if inc.Supplier {
		if s, ok := d.suppliers[r.SupplierID]; ok {
			r.Supplier = &s
		}
	}
	if inc.Client && r.ClientID != nil {
		if c, ok := d.clients[*r.ClientID]; ok {
			r.Client = &c
		}
	}
	if inc.Actor {
		if u, ok := d.users[r.ActorID]; ok {
			r.Actor = &u
		}
	}
	r.Details = nil
	if inc.Details {
		for _, det := range d.receptionDetails[r.ID] {
			if inc.Lines {
				if l, ok := d.lines[det.InventoryLineID]; ok {
					det.Line = d.withNames(l)
				}
			}
			r.Details = append(r.Details, &det)
		}
	}
	return &r
}

func (r *receptionRepo) Create(_ context.Context, rec *entity.Reception) error {
	return r.a.write("receptions.create", func(d *dataset) error {
		header := *rec
		header.Details, header.Supplier, header.Client, header.Actor = nil, nil, nil, nil
		d.receptions[rec.ID] = header
		dets := make([]entity.ReceptionDetail, 0, len(rec.Details))
		for _, det := range rec.Details {
			v := *det
			v.Line = nil
			dets = append(dets, v)
		}
		d.receptionDetails[rec.ID] = dets
		return nil
	})
}

func (r *receptionRepo) Load(_ context.Context, id string, inc repository.ReceptionInclude) (*entity.Reception, error) {
	var out *entity.Reception
	err := r.a.read("receptions.load", func(d *dataset) error {
		if rec, ok := d.receptions[id]; ok {
			out = d.loadReception(rec, inc)
		}
		return nil
	})
	return out, err
}

func (r *receptionRepo) List(_ context.Context, f entity.ReceptionFilter, inc repository.ReceptionInclude) ([]*entity.Reception, int, error) {
	var all []*entity.Reception
	err := r.a.read("receptions.list", func(d *dataset) error {
		for _, rec := range d.receptions {
			switch {
			case f.From != nil && rec.Date.Before(*f.From),
				f.To != nil && rec.Date.After(*f.To),
				f.ClientID != "" && (rec.ClientID == nil || *rec.ClientID != f.ClientID),
				f.SupplierID != "" && rec.SupplierID != f.SupplierID,
				f.Status != "" && rec.Status != f.Status:
				continue
			}
			all = append(all, d.loadReception(rec, inc))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].Number > all[j].Number
	})
	return paginate(all, f.Limit, f.Offset), len(all), nil
}

func (r *receptionRepo) UpdateHeader(_ context.Context, rec *entity.Reception) error {
	return r.a.write("receptions.update", func(d *dataset) error {
		cur, ok := d.receptions[rec.ID]
		if !ok {
			return nil
		}
		cur.Status = rec.Status
		cur.Notes = rec.Notes
		cur.UpdatedAt = rec.UpdatedAt
		d.receptions[rec.ID] = cur
		return nil
	})
}

func (r *receptionRepo) ReplaceDetails(_ context.Context, receptionID string, details []*entity.ReceptionDetail) error {
	return r.a.write("receptions.replace_details", func(d *dataset) error {
		dets := make([]entity.ReceptionDetail, 0, len(details))
		for _, det := range details {
			v := *det
			v.Line = nil
			dets = append(dets, v)
		}
		d.receptionDetails[receptionID] = dets
		return nil
	})
}

func (r *receptionRepo) Delete(_ context.Context, id string) error {
	return r.a.write("receptions.delete", func(d *dataset) error {
		delete(d.receptionDetails, id)
		delete(d.receptions, id)
		return nil
	})
}

type deliveryRepo struct{ a *access }

func (d *dataset) loadDelivery(del entity.Delivery, inc repository.DeliveryInclude) *entity.Delivery {
	if inc.Client {
		if c, ok := d.clients[del.ClientID]; ok {
			del.Client = &c
		}
	}
	if inc.Lot && del.ProductionLotID != nil {
		if l, ok := d.lots[*del.ProductionLotID]; ok {
			del.Lot = &l
		}
	}
	if inc.Actor {
		if u, ok := d.users[del.ActorID]; ok {
			del.Actor = &u
		}
	}
	del.Details = nil
	if inc.Details {
		for _, det := range d.deliveryDetails[del.ID] {
			if inc.Lines {
				if l, ok := d.lines[det.InventoryLineID]; ok {
					det.Line = d.withNames(l)
				}
			}
			del.Details = append(del.Details, &det)
		}
	}
	return &del
}

func (r *deliveryRepo) Create(_ context.Context, del *entity.Delivery) error {
	return r.a.write("deliveries.create", func(d *dataset) error {
		header := *del
		header.Details, header.Client, header.Lot, header.Actor = nil, nil, nil, nil
		d.deliveries[del.ID] = header
		dets := make([]entity.DeliveryDetail, 0, len(del.Details))
		for _, det := range del.Details {
			v := *det
			v.Line = nil
			dets = append(dets, v)
		}
		d.deliveryDetails[del.ID] = dets
		return nil
	})
}

func (r *deliveryRepo) Load(_ context.Context, id string, inc repository.DeliveryInclude) (*entity.Delivery, error) {
	var out *entity.Delivery
	err := r.a.read("deliveries.load", func(d *dataset) error {
		if del, ok := d.deliveries[id]; ok {
			out = d.loadDelivery(del, inc)
		}
		return nil
	})
	return out, err
}

func (r *deliveryRepo) List(_ context.Context, f entity.DeliveryFilter, inc repository.DeliveryInclude) ([]*entity.Delivery, int, error) {
	var all []*entity.Delivery
	err := r.a.read("deliveries.list", func(d *dataset) error {
		for _, del := range d.deliveries {
			switch {
			case f.From != nil && del.Date.Before(*f.From),
				f.To != nil && del.Date.After(*f.To),
				f.ClientID != "" && del.ClientID != f.ClientID,
				f.LotID != "" && (del.ProductionLotID == nil || *del.ProductionLotID != f.LotID),
				f.Status != "" && del.Status != f.Status:
				continue
			}
			all = append(all, d.loadDelivery(del, inc))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].Number > all[j].Number
	})
	return paginate(all, f.Limit, f.Offset), len(all), nil
}

func (r *deliveryRepo) UpdateHeader(_ context.Context, del *entity.Delivery) error {
	return r.a.write("deliveries.update", func(d *dataset) error {
		cur, ok := d.deliveries[del.ID]
		if !ok {
			return nil
		}
		cur.Status = del.Status
		cur.Notes = del.Notes
		cur.UpdatedAt = del.UpdatedAt
		d.deliveries[del.ID] = cur
		return nil
	})
}

func (r *deliveryRepo) ReplaceDetails(_ context.Context, deliveryID string, details []*entity.DeliveryDetail) error {
	return r.a.write("deliveries.replace_details", func(d *dataset) error {
		dets := make([]entity.DeliveryDetail, 0, len(details))
		for _, det := range details {
			v := *det
			v.Line = nil
			dets = append(dets, v)
		}
		d.deliveryDetails[deliveryID] = dets
		return nil
	})
}

func (r *deliveryRepo) Delete(_ context.Context, id string) error {
	return r.a.write("deliveries.delete", func(d *dataset) error {
		delete(d.deliveryDetails, id)
		delete(d.deliveries, id)
		return nil
	})
}

func (r *deliveryRepo) WasteByCategory(_ context.Context, f entity.WasteFilter) ([]*entity.WasteRow, error) {
	byCategory := map[string]*entity.WasteRow{}
	err := r.a.read("deliveries.waste", func(d *dataset) error {
		for _, del := range d.deliveries {
			switch {
			case del.Status != entity.StatusCompleted,
				f.From != nil && del.Date.Before(*f.From),
				f.To != nil && del.Date.After(*f.To),
				f.ClientID != "" && del.ClientID != f.ClientID:
				continue
			}
			for _, det := range d.deliveryDetails[del.ID] {
				catID := d.lines[det.InventoryLineID].CategoryID
				row, ok := byCategory[catID]
				if !ok {
					row = &entity.WasteRow{CategoryID: catID, CategoryName: d.categories[catID].Name}
					byCategory[catID] = row
				}
				row.Delivered += det.Amount
				row.Waste += det.WasteAmount
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.WasteRow, 0, len(byCategory))
	for _, row := range byCategory {
		if row.Waste > 0 {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryName < out[j].CategoryName })
	return out, nil
}
