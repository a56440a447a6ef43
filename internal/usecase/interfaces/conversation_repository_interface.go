package interfaces

import (
	"context"

	"sms_invoicer/internal/domain/entities"
)

// IConversationRepository abstracts DynamoDB persistence for ConversationState.
//
// The write methods are conditional and report a lost race by returning an
// empty ConversationState with a nil error:
//   - Create fails when an active conversation already exists for (business, phone)
//   - Update fails when the stored id or phase no longer matches expectedPhase
type IConversationRepository interface {
	GetActive(ctx context.Context, businessID, phone string) (entities.ConversationState, error)
	Create(ctx context.Context, c entities.ConversationState) (entities.ConversationState, error)
	Update(ctx context.Context, c entities.ConversationState, expectedPhase entities.ConversationPhase, patch entities.ConversationPatch) (entities.ConversationState, error)
	Delete(ctx context.Context, c entities.ConversationState) error
}
