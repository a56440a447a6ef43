package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"sms_invoicer/internal/domain/entities"
	"sms_invoicer/internal/domain/smsparser"
	"sms_invoicer/internal/infrastructure/logger"
	"sms_invoicer/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var ErrInvalidMessageID = errors.New("invalid message id")

// Turn outcomes, also used as metric labels.
const (
	OutcomeDuplicate           = "duplicate"
	OutcomeUnknownSender       = "unknown_sender"
	OutcomeParseRejected       = "parse_rejected"
	OutcomeMissingClientName   = "missing_client_name"
	OutcomeConversationStarted = "conversation_started"
	OutcomeConversationTurn    = "conversation_turn"
	OutcomeBlankReply          = "blank_reply"
	OutcomeMalformedPending    = "malformed_pending"
	OutcomeRaceLost            = "race_lost"
	OutcomeDocumentCreated     = "document_created"
	OutcomeError               = "error"
)

// InboundSMS is one webhook delivery; each delivery is one turn.
type InboundSMS struct {
	MessageSID string
	From       string
	To         string
	Body       string
}

type InboundResult struct {
	Outcome    string
	Reply      string
	DocumentID string
}

type ISMSUseCase interface {
	HandleInbound(ctx context.Context, msg InboundSMS) (InboundResult, error)
	UpdateDeliveryStatus(ctx context.Context, messageSID, status string) error
}

// SMSDependencies groups the collaborators of SMSUseCase. Locker may be nil.
type SMSDependencies struct {
	Businesses    interfaces.IBusinessRepository
	Conversations interfaces.IConversationRepository
	Messages      interfaces.IMessageLogRepository
	Notifier      interfaces.INotifier
	Locker        interfaces.ITurnLocker
	Resolver      IClientResolver
	Dialogue      IConversationUseCase
	Documents     IDocumentUseCase
	OnboardingURL string
	Log           *logger.Logger
}

// SMSUseCase routes an inbound text: an active conversation takes every
// message; otherwise the text is classified and either creates a document
// directly or opens a conversation for an unknown client.
type SMSUseCase struct {
	deps SMSDependencies
	log  *logger.Logger
}

var _ ISMSUseCase = (*SMSUseCase)(nil)

func NewSMSUseCase(deps SMSDependencies) *SMSUseCase {
	log := deps.Log
	if log == nil {
		log = logger.NewNop()
	}
	return &SMSUseCase{deps: deps, log: log}
}

// HandleInbound processes one turn and sends the reply. The returned error is
// informational: the user has already been answered when it is non-nil.
func (u *SMSUseCase) HandleInbound(ctx context.Context, msg InboundSMS) (InboundResult, error) {
	start := time.Now()
	msg.From = strings.TrimSpace(msg.From)
	msg.To = strings.TrimSpace(msg.To)
	if msg.MessageSID == "" {
		msg.MessageSID = uuid.NewString()
	}

	business, res, err := u.process(ctx, msg)
	if err != nil {
		u.log.Error("[sms][usecase] turn failed", "message_sid", msg.MessageSID, "from", msg.From, "outcome", res.Outcome, "err", err)
	}

	if res.Reply != "" {
		u.reply(ctx, business, msg, res)
	}

	inboundMessagesCounter.WithLabelValues(res.Outcome).Inc()
	turnDurationHist.WithLabelValues(res.Outcome).Observe(time.Since(start).Seconds())
	return res, err
}

func (u *SMSUseCase) process(ctx context.Context, msg InboundSMS) (entities.Business, InboundResult, error) {
	business, err := u.deps.Businesses.GetByPhone(ctx, msg.From)
	if err != nil {
		return business, InboundResult{Outcome: OutcomeError, Reply: replyTryAgainLater}, err
	}

	fresh, err := u.deps.Messages.Record(ctx, entities.SMSMessage{
		ID:         msg.MessageSID,
		BusinessID: business.ID,
		FromNumber: msg.From,
		ToNumber:   msg.To,
		Body:       msg.Body,
		Direction:  entities.MessageDirectionInbound,
		Status:     "received",
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		// The log is not the source of truth; keep serving the turn.
		u.log.Warn("[sms][usecase] inbound log failed", "message_sid", msg.MessageSID, "err", err)
	} else if !fresh {
		u.log.Info("[sms][usecase] duplicate delivery ignored", "message_sid", msg.MessageSID)
		return business, InboundResult{Outcome: OutcomeDuplicate}, nil
	}

	if business.ID == "" {
		return business, InboundResult{Outcome: OutcomeUnknownSender, Reply: replyOnboarding(u.deps.OnboardingURL)}, nil
	}

	if u.deps.Locker != nil {
		unlock, err := u.deps.Locker.Lock(ctx, turnKey(business.ID, msg.From))
		if err != nil {
			return business, InboundResult{Outcome: OutcomeRaceLost, Reply: replyTryAgainLater}, err
		}
		defer unlock()
	}

	conv, err := u.deps.Conversations.GetActive(ctx, business.ID, msg.From)
	if err != nil {
		return business, InboundResult{Outcome: OutcomeError, Reply: replyTryAgainLater}, err
	}
	if conv.Active() {
		res, err := u.continueConversation(ctx, business, conv, msg.Body)
		return business, res, err
	}
	res, err := u.handleRequest(ctx, business, msg)
	return business, res, err
}

func (u *SMSUseCase) continueConversation(ctx context.Context, business entities.Business, conv entities.ConversationState, body string) (InboundResult, error) {
	out, err := u.deps.Dialogue.HandleReply(ctx, business, conv, body)
	switch {
	case err == nil:
		if out.Document.ID != "" {
			return InboundResult{Outcome: OutcomeDocumentCreated, Reply: out.Reply, DocumentID: out.Document.ID}, nil
		}
		return InboundResult{Outcome: OutcomeConversationTurn, Reply: out.Reply}, nil
	case errors.Is(err, ErrBlankReply):
		return InboundResult{Outcome: OutcomeBlankReply, Reply: promptForPhase(conv)}, nil
	case errors.Is(err, entities.ErrMalformedPending):
		u.log.Warn("[sms][usecase] discarded conversation with malformed pending data", "conversation_id", conv.ID, "err", err)
		return InboundResult{Outcome: OutcomeMalformedPending, Reply: replyResendRequest}, nil
	case errors.Is(err, ErrConversationRaceLost):
		return InboundResult{Outcome: OutcomeRaceLost, Reply: replyTryAgainLater}, nil
	case errors.Is(err, ErrCompletionFailed):
		return InboundResult{Outcome: OutcomeError, Reply: replyRetryRequest}, err
	default:
		return InboundResult{Outcome: OutcomeError, Reply: replyTryAgainLater}, err
	}
}

func (u *SMSUseCase) handleRequest(ctx context.Context, business entities.Business, msg InboundSMS) (InboundResult, error) {
	req, err := smsparser.Classify(msg.Body)
	if errors.Is(err, smsparser.ErrParseRejected) {
		return InboundResult{Outcome: OutcomeParseRejected, Reply: replyParseRejected}, nil
	}
	if err != nil {
		return InboundResult{Outcome: OutcomeError, Reply: replyTryAgainLater}, err
	}

	resolution, err := u.deps.Resolver.Resolve(ctx, business.ID, req)
	if errors.Is(err, ErrMissingClientName) {
		return InboundResult{Outcome: OutcomeMissingClientName, Reply: replyMissingClientName(req.DocumentType)}, nil
	}
	if err != nil {
		return InboundResult{Outcome: OutcomeError, Reply: replyTryAgainLater}, err
	}

	if resolution.Kind == ResolutionNeedsPhone {
		out, err := u.deps.Dialogue.Start(ctx, business, msg.From, resolution.ClientName, req)
		if errors.Is(err, ErrConversationRaceLost) {
			return InboundResult{Outcome: OutcomeRaceLost, Reply: replyTryAgainLater}, nil
		}
		if err != nil {
			return InboundResult{Outcome: OutcomeError, Reply: replyTryAgainLater}, err
		}
		return InboundResult{Outcome: OutcomeConversationStarted, Reply: out.Reply}, nil
	}

	doc, err := u.deps.Documents.CreateFromRequest(ctx, business, resolution.Client, req)
	if err != nil {
		return InboundResult{Outcome: OutcomeError, Reply: replyTryAgainLater}, err
	}
	return InboundResult{
		Outcome:    OutcomeDocumentCreated,
		Reply:      replyDocumentCreated(doc, u.deps.Documents.ViewURL(doc)),
		DocumentID: doc.ID,
	}, nil
}

// reply sends the answer and logs it. Delivery failures do not fail the turn.
func (u *SMSUseCase) reply(ctx context.Context, business entities.Business, msg InboundSMS, res InboundResult) {
	status := "sent"
	sid, err := u.deps.Notifier.SendReply(ctx, msg.From, res.Reply)
	if err != nil {
		status = "failed"
		u.log.Error("[sms][usecase] reply failed", "to", msg.From, "err", err)
	}
	if sid == "" {
		sid = uuid.NewString()
	}

	if _, err := u.deps.Messages.Record(ctx, entities.SMSMessage{
		ID:         sid,
		BusinessID: business.ID,
		FromNumber: msg.To,
		ToNumber:   msg.From,
		Body:       res.Reply,
		Direction:  entities.MessageDirectionOutbound,
		Status:     status,
		DocumentID: res.DocumentID,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		u.log.Warn("[sms][usecase] outbound log failed", "message_sid", sid, "err", err)
	}
}

// UpdateDeliveryStatus stores a provider status callback on the outbound log entry.
func (u *SMSUseCase) UpdateDeliveryStatus(ctx context.Context, messageSID, status string) error {
	messageSID = strings.TrimSpace(messageSID)
	if messageSID == "" {
		return ErrInvalidMessageID
	}
	u.log.Info("[sms][usecase] delivery status", "message_sid", messageSID, "status", status)
	return u.deps.Messages.UpdateStatus(ctx, messageSID, strings.TrimSpace(status))
}

func turnKey(businessID, phone string) string {
	return businessID + "#" + phone
}
