package sms

import (
	twilioclient "github.com/twilio/twilio-go/client"
)

// SignatureValidator checks the X-Twilio-Signature header of webhook calls.
type SignatureValidator struct {
	validator twilioclient.RequestValidator
}

func NewSignatureValidator(authToken string) *SignatureValidator {
	return &SignatureValidator{validator: twilioclient.NewRequestValidator(authToken)}
}

// Valid reports whether signature matches the full public URL and the POSTed form.
func (v *SignatureValidator) Valid(url string, params map[string]string, signature string) bool {
	if signature == "" {
		return false
	}
	return v.validator.Validate(url, params, signature)
}
