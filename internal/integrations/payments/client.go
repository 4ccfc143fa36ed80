package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// IntentCreator создание PaymentIntent в Stripe (реализуется paymentintent.Client)
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры платёжного клиента
type Config struct {
	SecretKey     string
	Currency      string
	PaymentMethod string // метод оплаты, которым подтверждается PaymentIntent на сервере
}

// Client клиент платёжного провайдера (Stripe PaymentIntents)
type Client struct {
	intents       IntentCreator
	currency      string
	paymentMethod string
	log           Logger
}

// NewClient создает клиент, работающий с API Stripe
func NewClient(cfg Config, log Logger) *Client {
	intents := &paymentintent.Client{
		B:   stripe.GetBackend(stripe.APIBackend),
		Key: cfg.SecretKey,
	}
	return NewClientWithIntents(intents, cfg, log)
}

// NewClientWithIntents создает клиент с указанной реализацией IntentCreator
func NewClientWithIntents(intents IntentCreator, cfg Config, log Logger) *Client {
	currency := strings.ToLower(cfg.Currency)
	if currency == "" {
		currency = string(stripe.CurrencyEUR)
	}
	return &Client{
		intents:       intents,
		currency:      currency,
		paymentMethod: cfg.PaymentMethod,
		log:           log,
	}
}

// Capture списывает оплату за бронирование
// Нулевая сумма считается успешной без обращения к провайдеру. Повторы не выполняются
func (c *Client) Capture(ctx context.Context, req CaptureRequest) (*CaptureResult, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, req.Amount.String())
	}

	if req.Amount.IsZero() {
		c.log.Info("Capture: zero amount for booking=%s, provider not called", req.BookingReference)
		return &CaptureResult{
			PaymentID: "free-" + req.BookingReference,
			Amount:    decimal.Zero,
			Status:    StatusNotRequired,
		}, nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(toMinorUnits(req.Amount)),
		Currency:      stripe.String(c.currency),
		PaymentMethod: stripe.String(c.paymentMethod),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(fmt.Sprintf("Session booking %s", req.BookingReference)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_reference", req.BookingReference)
	params.AddMetadata("host_id", fmt.Sprintf("%d", req.HostID))
	params.AddMetadata("client_id", fmt.Sprintf("%d", req.ClientID))
	params.AddMetadata("add_ons", joinAddOns(req.AddOns))
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	intent, err := c.intents.New(params)
	if err != nil {
		return nil, c.mapError(req.BookingReference, err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		c.log.Warn("Capture: booking=%s intent=%s finished with status=%s", req.BookingReference, intent.ID, intent.Status)
		return nil, fmt.Errorf("%w: intent=%s status=%s", ErrPaymentNotCompleted, intent.ID, intent.Status)
	}

	c.log.Info("Capture: booking=%s captured intent=%s amount=%s", req.BookingReference, intent.ID, req.Amount.String())
	return &CaptureResult{
		PaymentID: intent.ID,
		Amount:    req.Amount,
		Status:    string(intent.Status),
	}, nil
}

// mapError разделяет отказ по карте и недоступность провайдера
func (c *Client) mapError(reference string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
		c.log.Warn("Capture: booking=%s declined: code=%s msg=%s", reference, stripeErr.Code, stripeErr.Msg)
		return fmt.Errorf("%w: %s", ErrPaymentDeclined, stripeErr.Msg)
	}

	c.log.Error("Capture: booking=%s provider error: %v", reference, err)
	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}

// toMinorUnits переводит сумму в минимальные единицы валюты (центы)
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(domain.CurrencyPrecision).Round(0).IntPart()
}

func joinAddOns(addOns []domain.AddOn) string {
	names := make([]string, 0, len(addOns))
	for _, a := range addOns {
		names = append(names, string(a))
	}
	return strings.Join(names, ",")
}
