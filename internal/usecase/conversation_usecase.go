package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sms_invoicer/internal/domain/entities"
	"sms_invoicer/internal/infrastructure/logger"
	"sms_invoicer/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrBlankReply           = errors.New("blank reply")
	ErrConversationRaceLost = errors.New("conversation changed concurrently")
	// ErrCompletionFailed wraps a failure after the swap to completed. The
	// conversation is gone by then; the user has to resend the request.
	ErrCompletionFailed = errors.New("conversation completion failed")

	errPhaseChanged = errors.New("conversation phase changed")
)

// TurnOutcome is what a conversation turn produced. Document is only set on
// the turn that completes the conversation.
type TurnOutcome struct {
	Reply    string
	Phase    entities.ConversationPhase
	Document entities.Document
}

// IConversationUseCase drives the client-detail dialogue:
//
//	awaiting_client_phone -> awaiting_client_address -> completed (deleted)
//
// Every transition is a compare-and-swap on the stored phase. A lost swap is
// retried once against a fresh read, then reported as ErrConversationRaceLost.
type IConversationUseCase interface {
	Start(ctx context.Context, business entities.Business, phone, clientName string, req entities.ParsedDocumentRequest) (TurnOutcome, error)
	HandleReply(ctx context.Context, business entities.Business, conv entities.ConversationState, text string) (TurnOutcome, error)
}

type ConversationUseCase struct {
	repo      interfaces.IConversationRepository
	clients   interfaces.IClientRepository
	documents IDocumentUseCase
	log       *logger.Logger
}

var _ IConversationUseCase = (*ConversationUseCase)(nil)

func NewConversationUseCase(
	repo interfaces.IConversationRepository,
	clients interfaces.IClientRepository,
	documents IDocumentUseCase,
	log *logger.Logger,
) *ConversationUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &ConversationUseCase{repo: repo, clients: clients, documents: documents, log: log}
}

// Start parks req and asks for the new client's phone number.
func (u *ConversationUseCase) Start(ctx context.Context, business entities.Business, phone, clientName string, req entities.ParsedDocumentRequest) (TurnOutcome, error) {
	pending, err := entities.NewPendingRequest(req)
	if err != nil {
		return TurnOutcome{}, err
	}
	raw, err := pending.Encode()
	if err != nil {
		return TurnOutcome{}, err
	}

	now := time.Now().UTC()
	conv := entities.ConversationState{
		ID:          uuid.NewString(),
		BusinessID:  business.ID,
		PhoneNumber: phone,
		Phase:       entities.ConversationPhaseAwaitingClientPhone,
		PendingData: string(raw),
		ClientName:  clientName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := u.repo.Create(ctx, conv)
	if err != nil {
		return TurnOutcome{}, err
	}
	if created.ID == "" {
		// Another turn opened a conversation for this sender first.
		return TurnOutcome{}, ErrConversationRaceLost
	}

	conversationTransitionsCounter.WithLabelValues(string(created.Phase)).Inc()
	u.log.Info("[conversation][usecase] started", "conversation_id", created.ID, "phone", phone)
	return TurnOutcome{Reply: replyAskPhone(clientName), Phase: created.Phase}, nil
}

// HandleReply applies one inbound reply to an active conversation.
//
// Blank replies return ErrBlankReply without touching the record. Pending data
// that fails validation deletes the conversation and returns an error wrapping
// entities.ErrMalformedPending.
func (u *ConversationUseCase) HandleReply(ctx context.Context, business entities.Business, conv entities.ConversationState, text string) (TurnOutcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return TurnOutcome{Phase: conv.Phase}, ErrBlankReply
	}

	out, err := u.advance(ctx, business, conv, text)
	if !errors.Is(err, errPhaseChanged) {
		return out, err
	}

	conversationRaceRetriesCounter.Inc()
	fresh, err := u.repo.GetActive(ctx, conv.BusinessID, conv.PhoneNumber)
	if err != nil {
		return TurnOutcome{}, err
	}
	// Only the same transition is retried; a conversation that moved on has
	// already consumed an equivalent reply.
	if !fresh.Active() || fresh.ID != conv.ID || fresh.Phase != conv.Phase {
		return TurnOutcome{}, ErrConversationRaceLost
	}

	out, err = u.advance(ctx, business, fresh, text)
	if errors.Is(err, errPhaseChanged) {
		return TurnOutcome{}, ErrConversationRaceLost
	}
	return out, err
}

func (u *ConversationUseCase) advance(ctx context.Context, business entities.Business, conv entities.ConversationState, text string) (TurnOutcome, error) {
	pending, err := conv.DecodePending()
	if err != nil {
		u.discard(ctx, conv)
		return TurnOutcome{}, err
	}

	next, ok := conv.Phase.Next()
	if !ok || next.Rank() <= conv.Phase.Rank() {
		return TurnOutcome{}, fmt.Errorf("conversation %s: no transition from phase %q", conv.ID, conv.Phase)
	}

	patch := entities.ConversationPatch{Phase: next}
	switch conv.Phase {
	case entities.ConversationPhaseAwaitingClientPhone:
		patch.ClientPhone = &text
	case entities.ConversationPhaseAwaitingClientAddress:
		patch.ClientAddress = &text
	}

	updated, err := u.repo.Update(ctx, conv, conv.Phase, patch)
	if err != nil {
		return TurnOutcome{}, err
	}
	if updated.ID == "" {
		return TurnOutcome{}, errPhaseChanged
	}
	conversationTransitionsCounter.WithLabelValues(string(updated.Phase)).Inc()

	if updated.Phase != entities.ConversationPhaseCompleted {
		return TurnOutcome{Reply: replyAskAddress(updated.ClientName), Phase: updated.Phase}, nil
	}
	return u.complete(ctx, business, updated, pending)
}

// complete runs after the swap to completed, so a concurrent duplicate of the
// final reply can no longer reach this point. The record is deleted whatever
// the result.
func (u *ConversationUseCase) complete(ctx context.Context, business entities.Business, conv entities.ConversationState, pending entities.PendingRequest) (TurnOutcome, error) {
	defer u.discard(ctx, conv)

	out, err := u.finish(ctx, business, conv, pending)
	if err != nil {
		return TurnOutcome{}, fmt.Errorf("%w: %w", ErrCompletionFailed, err)
	}
	return out, nil
}

func (u *ConversationUseCase) finish(ctx context.Context, business entities.Business, conv entities.ConversationState, pending entities.PendingRequest) (TurnOutcome, error) {
	now := time.Now().UTC()
	client, err := u.clients.Create(ctx, entities.Client{
		ID:         uuid.NewString(),
		BusinessID: conv.BusinessID,
		Name:       conv.ClientName,
		Phone:      conv.ClientPhone,
		Email:      deref(pending.Request.ClientEmail),
		Address:    conv.ClientAddress,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return TurnOutcome{}, err
	}
	if client.ID == "" {
		// Same name registered in the meantime; use that record.
		client, err = u.clients.FindByName(ctx, conv.BusinessID, conv.ClientName)
		if err != nil {
			return TurnOutcome{}, err
		}
		if client.ID == "" {
			return TurnOutcome{}, fmt.Errorf("client %q vanished after create conflict", conv.ClientName)
		}
	}

	req := pending.Request
	name, phone, address := conv.ClientName, conv.ClientPhone, conv.ClientAddress
	req.ClientName = &name
	req.ClientPhone = &phone
	req.ClientAddress = &address

	doc, err := u.documents.CreateFromRequest(ctx, business, client, req)
	if err != nil {
		return TurnOutcome{}, err
	}

	u.log.Info("[conversation][usecase] completed", "conversation_id", conv.ID, "client_id", client.ID, "document_id", doc.ID)
	return TurnOutcome{
		Reply:    replyDocumentCreated(doc, u.documents.ViewURL(doc)),
		Phase:    entities.ConversationPhaseCompleted,
		Document: doc,
	}, nil
}

func (u *ConversationUseCase) discard(ctx context.Context, conv entities.ConversationState) {
	if err := u.repo.Delete(ctx, conv); err != nil {
		u.log.Warn("[conversation][usecase] delete failed", "conversation_id", conv.ID, "err", err)
	}
}
