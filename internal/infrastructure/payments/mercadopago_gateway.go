package payments

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"sms_invoicer/internal/domain/entities"
	"sms_invoicer/internal/infrastructure/logger"
	"sms_invoicer/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
var ErrEmptyCheckoutURL = errors.New("mercado pago returned no checkout url")

const mockCheckoutURL = "https://www.mercadopago.com/checkout/v1/redirect"

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPagoGateway creates hosted checkout links (Checkout Pro preferences)
// for invoices.
type MercadoPagoGateway struct {
	client   preferenceCreator
	currency string
	mockMode bool
	log      *logger.Logger
}

var _ interfaces.IPaymentLinkGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken, currency string, mock bool, log *logger.Logger) (*MercadoPagoGateway, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if mock {
		log.Info("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{currency: currency, mockMode: true, log: log}, nil
	}

	if accessToken == "" {
		log.Warn("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Error("[payment][gateway] failed creating sdk config", "err", err)
		return nil, err
	}
	log.Info("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: preference.NewClient(cfg), currency: currency, log: log}, nil
}

// CreatePaymentLink returns the checkout URL for the document total.
func (g *MercadoPagoGateway) CreatePaymentLink(ctx context.Context, doc entities.Document, business entities.Business) (string, error) {
	if g != nil && g.mockMode {
		link := mockCheckoutURL + "?pref_id=" + url.QueryEscape("mock-"+doc.ID)
		g.log.Info("[payment][gateway] mock preference created", "document_id", doc.ID, "total_cents", doc.TotalAmountCents)
		return link, nil
	}

	if g == nil || g.client == nil {
		return "", ErrMercadoPagoGatewayNotConfigured
	}
	g.log.Info("[payment][gateway] create preference start", "document_id", doc.ID, "total_cents", doc.TotalAmountCents)

	resp, err := g.client.Create(ctx, preferenceRequest(doc, business, g.currency))
	if err != nil {
		g.log.Error("[payment][gateway] sdk create failed", "document_id", doc.ID, "err", err)
		return "", err
	}
	if resp == nil || resp.InitPoint == "" {
		return "", ErrEmptyCheckoutURL
	}

	g.log.Info("[payment][gateway] create preference success", "document_id", doc.ID, "preference_id", resp.ID)
	return resp.InitPoint, nil
}

// preferenceRequest bills the whole document as a single item: line item
// quantities may be fractional and the checkout only accepts whole units.
func preferenceRequest(doc entities.Document, business entities.Business, currency string) preference.Request {
	return preference.Request{
		ExternalReference: doc.ID,
		Items: []preference.ItemRequest{
			{
				ID:          doc.Number,
				Title:       fmt.Sprintf("%s %s", doc.Type.Title(), doc.Number),
				Description: fmt.Sprintf("%s for %s", business.DisplayName(), doc.ClientName),
				CurrencyID:  currency,
				Quantity:    1,
				UnitPrice:   float64(doc.TotalAmountCents) / 100,
			},
		},
	}
}
