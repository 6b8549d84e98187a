// Package memory implementa los puertos de persistencia en memoria. Run toma una copia
// del estado y la restaura si el callback falla, con la misma semántica de
// Commit/Rollback que el TxRunner de PostgreSQL. Lo usan los tests y cmd/api con
// STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

type dataset struct {
	lines            map[string]entity.InventoryLine
	movements        []entity.Movement
	alerts           []entity.Alert
	sequences        map[string]int64
	receptions       map[string]entity.Reception
	receptionDetails map[string][]entity.ReceptionDetail
	deliveries       map[string]entity.Delivery
	deliveryDetails  map[string][]entity.DeliveryDetail
	clients          map[string]entity.Client
	clientConfigs    map[string]clientAssignments
	brands           map[string]entity.Brand
	suppliers        map[string]entity.Supplier
	varieties        map[string]entity.Variety
	presentations    map[string]entity.Presentation
	categories       map[string]entity.Category
	lots             map[string]entity.ProductionLot
	users            map[string]entity.User
}

func newDataset() *dataset {
	return &dataset{
		lines:            map[string]entity.InventoryLine{},
		sequences:        map[string]int64{},
		receptions:       map[string]entity.Reception{},
		receptionDetails: map[string][]entity.ReceptionDetail{},
		deliveries:       map[string]entity.Delivery{},
		deliveryDetails:  map[string][]entity.DeliveryDetail{},
		clients:          map[string]entity.Client{},
		clientConfigs:    map[string]clientAssignments{},
		brands:           map[string]entity.Brand{},
		suppliers:        map[string]entity.Supplier{},
		varieties:        map[string]entity.Variety{},
		presentations:    map[string]entity.Presentation{},
		categories:       map[string]entity.Category{},
		lots:             map[string]entity.ProductionLot{},
		users:            map[string]entity.User{},
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyDetails[V any](m map[string][]V) map[string][]V {
	out := make(map[string][]V, len(m))
	for k, v := range m {
		out[k] = append([]V(nil), v...)
	}
	return out
}

// clone copia el estado. Los campos puntero de las entidades nunca se mutan en sitio,
// por lo que basta con copiar valores.
func (d *dataset) clone() *dataset {
	return &dataset{
		lines:            copyMap(d.lines),
		movements:        append([]entity.Movement(nil), d.movements...),
		alerts:           append([]entity.Alert(nil), d.alerts...),
		sequences:        copyMap(d.sequences),
		receptions:       copyMap(d.receptions),
		receptionDetails: copyDetails(d.receptionDetails),
		deliveries:       copyMap(d.deliveries),
		deliveryDetails:  copyDetails(d.deliveryDetails),
		clients:          copyMap(d.clients),
		clientConfigs:    copyMap(d.clientConfigs),
		brands:           copyMap(d.brands),
		suppliers:        copyMap(d.suppliers),
		varieties:        copyMap(d.varieties),
		presentations:    copyMap(d.presentations),
		categories:       copyMap(d.categories),
		lots:             copyMap(d.lots),
		users:            copyMap(d.users),
	}
}

// Store almacén en memoria; seguro para uso concurrente.
type Store struct {
	mu       sync.Mutex
	data     *dataset
	failures map[string]error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newDataset(), failures: map[string]error{}}
}

// FailOn hace que la operación op (p. ej. "movements.create") devuelva err hasta que se
// llame a FailOn(op, nil). Sirve para probar rollbacks a mitad de transacción.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Repos devuelve repositorios en modo autocommit (cada operación toma el lock).
func (s *Store) Repos() repository.Repos {
	return s.repos(false)
}

// Run ejecuta fn de forma exclusiva; si fn devuelve error el estado previo se restaura.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos repository.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.data.clone()
	if err := fn(ctx, s.repos(true)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// MovementCount total de movimientos registrados (todas las líneas).
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.movements)
}

// ReceptionCount total de recepciones persistidas.
func (s *Store) ReceptionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.receptions)
}

// DeliveryCount total de entregas persistidas.
func (s *Store) DeliveryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.deliveries)
}

// OpenAlertCount alertas sin resolver de una línea.
func (s *Store) OpenAlertCount(lineID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.data.alerts {
		if a.InventoryLineID == lineID && !a.Resolved {
			n++
		}
	}
	return n
}

func (s *Store) repos(inTx bool) repository.Repos {
	a := &access{s: s, inTx: inTx}
	return repository.Repos{
		Lines:         &lineRepo{a},
		Movements:     &movementRepo{a},
		Alerts:        &alertRepo{a},
		Sequences:     &sequenceRepo{a},
		Receptions:    &receptionRepo{a},
		Deliveries:    &deliveryRepo{a},
		Clients:       &clientRepo{a},
		ClientConfigs: &clientConfigRepo{a},
		Brands:        &brandRepo{a},
		Suppliers:     &supplierRepo{a},
		Varieties:     &varietyRepo{a},
		Presentations: &presentationRepo{a},
		Categories:    &categoryRepo{a},
		Lots:          &lotRepo{a},
		Users:         &userRepo{a},
	}
}

// access serializa el acceso al dataset: dentro de Run el lock ya está tomado.
type access struct {
	s    *Store
	inTx bool
}

func (a *access) read(op string, fn func(d *dataset) error) error {
	if !a.inTx {
		a.s.mu.Lock()
		defer a.s.mu.Unlock()
	}
	if err := a.s.failures[op]; err != nil {
		return err
	}
	return fn(a.s.data)
}

// write en modo autocommit restaura el estado si fn falla a mitad de camino.
func (a *access) write(op string, fn func(d *dataset) error) error {
	if a.inTx {
		return a.read(op, fn)
	}
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if err := a.s.failures[op]; err != nil {
		return err
	}
	snapshot := a.s.data.clone()
	if err := fn(a.s.data); err != nil {
		a.s.data = snapshot
		return err
	}
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
