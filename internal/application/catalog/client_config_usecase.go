package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/application/inventory"
	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

// shipmentOrder orden canónico de los tipos de envío.
var shipmentOrder = []string{entity.ShipmentDomestic, entity.ShipmentExport}

// ClientConfigUseCase variedades, presentaciones y tipos de envío que maneja cada cliente.
type ClientConfigUseCase struct {
	repos    repository.Repos
	txRunner inventory.TxRunner
}

// NewClientConfigUseCase construye el caso de uso.
func NewClientConfigUseCase(repos repository.Repos, txRunner inventory.TxRunner) *ClientConfigUseCase {
	return &ClientConfigUseCase{repos: repos, txRunner: txRunner}
}

// Get configuración de un cliente; 404 si el cliente no existe.
func (uc *ClientConfigUseCase) Get(ctx context.Context, clientID string) (*dto.ClientConfigResponse, error) {
	if err := requireClient(ctx, uc.repos, clientID); err != nil {
		return nil, err
	}
	cfg, err := uc.repos.ClientConfigs.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toClientConfigResponse(cfg), nil
}

// ListAll configuración de todos los clientes activos, ordenados por nombre.
func (uc *ClientConfigUseCase) ListAll(ctx context.Context) ([]dto.ClientConfigResponse, error) {
	clients, err := uc.repos.Clients.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientConfigResponse, 0, len(clients))
	for _, c := range clients {
		cfg, err := uc.repos.ClientConfigs.Get(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		cfg.ClientName = c.Name
		out = append(out, *toClientConfigResponse(cfg))
	}
	return out, nil
}

// Update reemplaza en una sola transacción las listas presentes en in y devuelve la
// configuración resultante. IDs inexistentes o tipos de envío desconocidos dan 400.
func (uc *ClientConfigUseCase) Update(ctx context.Context, clientID string, in dto.ClientConfigRequest) (*dto.ClientConfigResponse, error) {
	var out *entity.ClientConfig
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		if err := requireClient(ctx, repos, clientID); err != nil {
			return err
		}
		if in.Varieties != nil {
			ids, err := existingIDs(ctx, "variedad", in.Varieties, func(ctx context.Context, id string) (bool, error) {
				v, err := repos.Varieties.GetByID(ctx, id)
				return v != nil, err
			})
			if err != nil {
				return err
			}
			if err := repos.ClientConfigs.ReplaceVarieties(ctx, clientID, ids); err != nil {
				return err
			}
		}
		if in.Presentations != nil {
			ids, err := existingIDs(ctx, "presentación", in.Presentations, func(ctx context.Context, id string) (bool, error) {
				p, err := repos.Presentations.GetByID(ctx, id)
				return p != nil, err
			})
			if err != nil {
				return err
			}
			if err := repos.ClientConfigs.ReplacePresentations(ctx, clientID, ids); err != nil {
				return err
			}
		}
		if in.ShipmentTypes != nil {
			types, err := normalizeShipmentTypes(in.ShipmentTypes)
			if err != nil {
				return err
			}
			if err := repos.ClientConfigs.ReplaceShipmentTypes(ctx, clientID, types); err != nil {
				return err
			}
		}
		cfg, err := repos.ClientConfigs.Get(ctx, clientID)
		out = cfg
		return err
	})
	if err != nil {
		return nil, err
	}
	return toClientConfigResponse(out), nil
}

// UpdateVarieties reemplaza solo las variedades.
func (uc *ClientConfigUseCase) UpdateVarieties(ctx context.Context, clientID string, ids []string) (*dto.ClientConfigResponse, error) {
	return uc.Update(ctx, clientID, dto.ClientConfigRequest{Varieties: nonNil(ids)})
}

// UpdatePresentations reemplaza solo las presentaciones.
func (uc *ClientConfigUseCase) UpdatePresentations(ctx context.Context, clientID string, ids []string) (*dto.ClientConfigResponse, error) {
	return uc.Update(ctx, clientID, dto.ClientConfigRequest{Presentations: nonNil(ids)})
}

// UpdateShipmentTypes reemplaza solo los tipos de envío.
func (uc *ClientConfigUseCase) UpdateShipmentTypes(ctx context.Context, clientID string, types []string) (*dto.ClientConfigResponse, error) {
	return uc.Update(ctx, clientID, dto.ClientConfigRequest{ShipmentTypes: nonNil(types)})
}

func requireClient(ctx context.Context, repos repository.Repos, clientID string) error {
	c, err := repos.Clients.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, clientID)
	}
	return nil
}

// existingIDs quita duplicados conservando el orden y exige que cada ID exista.
func existingIDs(ctx context.Context, what string, ids []string, exists func(context.Context, string) (bool, error)) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		ok, err := exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s %s no existe", domain.ErrInvalidInput, what, id)
		}
		out = append(out, id)
	}
	return out, nil
}

func normalizeShipmentTypes(types []string) ([]string, error) {
	want := make(map[string]bool, len(types))
	for _, t := range types {
		if !entity.ValidShipmentType(t) {
			return nil, fmt.Errorf("%w: tipo de envío inválido %q; permitidos: %s",
				domain.ErrInvalidInput, t, strings.Join(shipmentOrder, ", "))
		}
		want[t] = true
	}
	out := make([]string, 0, len(want))
	for _, t := range shipmentOrder {
		if want[t] {
			out = append(out, t)
		}
	}
	return out, nil
}

// nonNil distingue "lista vacía" de "lista ausente" en ClientConfigRequest.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toClientConfigResponse(cfg *entity.ClientConfig) *dto.ClientConfigResponse {
	out := &dto.ClientConfigResponse{
		ClientID:      cfg.ClientID,
		ClientName:    cfg.ClientName,
		Varieties:     make([]dto.OptionResponse, 0, len(cfg.Varieties)),
		Presentations: make([]dto.OptionResponse, 0, len(cfg.Presentations)),
		ShipmentTypes: append([]string{}, cfg.ShipmentTypes...),
	}
	for _, v := range cfg.Varieties {
		out.Varieties = append(out.Varieties, dto.OptionResponse{ID: v.ID, Name: v.Name})
	}
	for _, p := range cfg.Presentations {
		out.Presentations = append(out.Presentations, dto.OptionResponse{ID: p.ID, Name: p.Name})
	}
	return out
}
