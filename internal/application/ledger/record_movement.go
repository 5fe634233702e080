package ledger

import (
	"context"

	"github.com/avelasquez/control-stock-api/internal/application/dto"
)

// RecordMovementFromRequest adapta el request HTTP al caso de uso RecordMovement(ctx, MovementInput).
// Usar desde handlers HTTP que ya tengan el userID autenticado.
func (uc *RecordMovementUseCase) RecordMovementFromRequest(ctx context.Context, userID string, in dto.RecordMovementRequest) (string, error) {
	input := MovementInput{
		UserID:    userID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		BatchCode: in.BatchCode,
		ExpiresAt: in.ExpiresAt,
		Notes:     in.Notes,
	}
	return uc.RecordMovement(ctx, input)
}
