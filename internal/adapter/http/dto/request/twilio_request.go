package request

import (
	"strings"

	"sms_invoicer/internal/usecase"
)

// TwilioInboundForm is the form Twilio POSTs for an incoming SMS.
type TwilioInboundForm struct {
	MessageSid string `form:"MessageSid"`
	SmsSid     string `form:"SmsSid"`
	From       string `form:"From"`
	To         string `form:"To"`
	Body       string `form:"Body"`
}

// ResolveMessageSID falls back to the legacy SmsSid field.
func (f TwilioInboundForm) ResolveMessageSID() string {
	if v := strings.TrimSpace(f.MessageSid); v != "" {
		return v
	}
	return strings.TrimSpace(f.SmsSid)
}

func (f TwilioInboundForm) ToInboundSMS() usecase.InboundSMS {
	return usecase.InboundSMS{
		MessageSID: f.ResolveMessageSID(),
		From:       strings.TrimSpace(f.From),
		To:         strings.TrimSpace(f.To),
		Body:       f.Body,
	}
}

// TwilioStatusForm is the delivery status callback.
type TwilioStatusForm struct {
	MessageSid    string `form:"MessageSid"`
	SmsSid        string `form:"SmsSid"`
	MessageStatus string `form:"MessageStatus"`
	SmsStatus     string `form:"SmsStatus"`
	ErrorCode     string `form:"ErrorCode"`
}

func (f TwilioStatusForm) ResolveMessageSID() string {
	if v := strings.TrimSpace(f.MessageSid); v != "" {
		return v
	}
	return strings.TrimSpace(f.SmsSid)
}

func (f TwilioStatusForm) ResolveStatus() string {
	if v := strings.TrimSpace(f.MessageStatus); v != "" {
		return v
	}
	return strings.TrimSpace(f.SmsStatus)
}
