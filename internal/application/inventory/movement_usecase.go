package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

// ApplyMovementUseCase registra un movimiento manual en su propia transacción.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	ledger   *Ledger
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner, ledger *Ledger) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner, ledger: ledger}
}

// Apply aplica el movimiento. El actor del body tiene prioridad sobre el usuario autenticado.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, userID string, in dto.ApplyMovementRequest) (*dto.MovementResultResponse, error) {
	actorID := in.ActorID
	if actorID == "" {
		actorID = userID
	}
	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		actor, err := repos.Users.GetByID(ctx, actorID)
		if err != nil {
			return err
		}
		if actor == nil {
			return fmt.Errorf("%w: actor %s", domain.ErrNotFound, actorID)
		}
		result, err = uc.ledger.ApplyInTx(ctx, repos, MovementInput{
			LineID:    in.InventoryID,
			Kind:      in.Kind,
			Amount:    in.Amount,
			ActorID:   actorID,
			Reason:    in.Reason,
			Reference: in.Reference,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.MovementResultResponse{
		Movement: ToMovementResponse(result.Movement),
		Before:   result.Movement.QuantityBefore,
		After:    result.Movement.QuantityAfter,
	}, nil
}
