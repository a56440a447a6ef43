package handlers

import (
	"errors"
	"net/http"

	request "sms_invoicer/internal/adapter/http/dto/request"
	"sms_invoicer/internal/infrastructure/logger"
	"sms_invoicer/internal/usecase"
	"sms_invoicer/pkg"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

var (
	errInvalidTwilioPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errInvalidSignature     = pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid webhook signature", http.StatusForbidden)
)

// SignatureValidator checks provider webhook signatures.
type SignatureValidator interface {
	Valid(url string, params map[string]string, signature string) bool
}

// TwilioHandler receives the SMS webhooks.
//
// Every inbound SMS is one conversation turn. The provider always gets a 200
// with empty TwiML once the signature is accepted; the reply to the sender is
// sent by the use case through the REST API.
type TwilioHandler struct {
	usecase   usecase.ISMSUseCase
	validator SignatureValidator
	publicURL string
	log       *logger.Logger
}

// NewTwilioHandler builds the handler. validator may be nil to skip signature
// checks (local development); publicURL is the externally visible base URL
// Twilio signs against.
func NewTwilioHandler(uc usecase.ISMSUseCase, validator SignatureValidator, publicURL string, log *logger.Logger) *TwilioHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &TwilioHandler{usecase: uc, validator: validator, publicURL: publicURL, log: log}
}

// InboundSMS godoc
// @Summary      Inbound SMS webhook
// @Description  Receives an SMS from Twilio and processes it as one conversation turn.
// @Tags         twilio
// @Accept       x-www-form-urlencoded
// @Produce      xml
// @Param        MessageSid  formData  string  true   "Provider message id"
// @Param        From        formData  string  true   "Sender phone number"
// @Param        To          formData  string  false  "Receiving phone number"
// @Param        Body        formData  string  false  "Message text"
// @Success      200  {string}  string  "empty TwiML"
// @Failure      400  {object}  pkg.HTTPError
// @Failure      403  {object}  pkg.HTTPError
// @Router       /twilio/sms [post]
func (h *TwilioHandler) InboundSMS(c *gin.Context) {
	var form request.TwilioInboundForm
	if !h.bindSigned(c, &form) {
		return
	}

	msg := form.ToInboundSMS()
	res, err := h.usecase.HandleInbound(c.Request.Context(), msg)
	if err != nil {
		appErr := mapSMSError(err)
		h.log.Warn("[sms][handler] inbound turn error", "message_sid", msg.MessageSID, "code", appErr.Code, "outcome", res.Outcome, "err", err)
	} else {
		h.log.Info("[sms][handler] inbound handled", "message_sid", msg.MessageSID, "outcome", res.Outcome, "document_id", res.DocumentID)
	}

	c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(emptyTwiML))
}

// StatusCallback godoc
// @Summary      SMS delivery status callback
// @Tags         twilio
// @Accept       x-www-form-urlencoded
// @Param        MessageSid     formData  string  true  "Provider message id"
// @Param        MessageStatus  formData  string  true  "queued, sent, delivered, failed, ..."
// @Success      200
// @Failure      400  {object}  pkg.HTTPError
// @Failure      403  {object}  pkg.HTTPError
// @Router       /twilio/sms-status [post]
func (h *TwilioHandler) StatusCallback(c *gin.Context) {
	var form request.TwilioStatusForm
	if !h.bindSigned(c, &form) {
		return
	}

	sid := form.ResolveMessageSID()
	if err := h.usecase.UpdateDeliveryStatus(c.Request.Context(), sid, form.ResolveStatus()); err != nil {
		appErr := mapSMSError(err)
		if appErr.HTTPStatus < http.StatusInternalServerError {
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		// Status callbacks are best effort; a storage failure is not worth a provider retry.
		h.log.Warn("[sms][handler] status update failed", "message_sid", sid, "err", err)
	}
	if form.ErrorCode != "" {
		h.log.Warn("[sms][handler] delivery error reported", "message_sid", sid, "status", form.ResolveStatus(), "error_code", form.ErrorCode)
	}
	c.Status(http.StatusOK)
}

// bindSigned parses the form, verifies the signature and binds into dst. It
// writes the error response and returns false on failure.
func (h *TwilioHandler) bindSigned(c *gin.Context, dst any) bool {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(errInvalidTwilioPayload.HTTPStatus, errInvalidTwilioPayload.ToHTTPError())
		return false
	}
	if !h.verify(c) {
		h.log.Warn("[sms][handler] rejected unsigned webhook", "path", c.Request.URL.Path)
		c.JSON(errInvalidSignature.HTTPStatus, errInvalidSignature.ToHTTPError())
		return false
	}
	if err := c.ShouldBindWith(dst, binding.Form); err != nil {
		c.JSON(errInvalidTwilioPayload.HTTPStatus, errInvalidTwilioPayload.ToHTTPError())
		return false
	}
	return true
}

func (h *TwilioHandler) verify(c *gin.Context) bool {
	if h.validator == nil {
		return true
	}
	params := make(map[string]string, len(c.Request.PostForm))
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return h.validator.Valid(h.publicURL+c.Request.URL.RequestURI(), params, c.GetHeader("X-Twilio-Signature"))
}

func mapSMSError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidMessageID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrConversationRaceLost):
		return pkg.NewDomainErrorSimple("CONVERSATION_CONFLICT", "Conversation was updated concurrently", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
