package sms

import (
	"context"
	"errors"
	"strings"

	"sms_invoicer/internal/infrastructure/logger"
	"sms_invoicer/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

var ErrMissingTwilioCredentials = errors.New("missing TWILIO_ACCOUNT_SID or TWILIO_AUTH_TOKEN")
var ErrMissingTwilioSender = errors.New("missing TWILIO_PHONE_NUMBER")

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioNotifier sends replies through the Twilio Messages API. In mock mode
// replies are only logged.
type TwilioNotifier struct {
	api      messageCreator
	from     string
	mockMode bool
	log      *logger.Logger
}

var _ interfaces.INotifier = (*TwilioNotifier)(nil)

func NewTwilioNotifier(accountSID, authToken, from string, mock bool, log *logger.Logger) (*TwilioNotifier, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if mock {
		log.Info("[sms][twilio] mock mode enabled")
		return &TwilioNotifier{from: from, mockMode: true, log: log}, nil
	}
	if accountSID == "" || authToken == "" {
		return nil, ErrMissingTwilioCredentials
	}
	if from == "" {
		return nil, ErrMissingTwilioSender
	}

	c := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioNotifier{api: c.Api, from: from, log: log}, nil
}

func (n *TwilioNotifier) SendReply(ctx context.Context, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return "", errors.New("twilio: recipient required")
	}

	if n.mockMode {
		sid := "SMmock" + strings.ReplaceAll(uuid.NewString(), "-", "")
		n.log.Info("[sms][twilio] mock send", "to", to, "sid", sid, "body_len", len(body))
		return sid, nil
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(body)

	msg, err := n.api.CreateMessage(params)
	if err != nil {
		n.log.Error("[sms][twilio] send failed", "to", to, "err", err)
		return "", err
	}

	sid := ""
	if msg != nil && msg.Sid != nil {
		sid = *msg.Sid
	}
	n.log.Info("[sms][twilio] sent", "to", to, "sid", sid)
	return sid, nil
}
