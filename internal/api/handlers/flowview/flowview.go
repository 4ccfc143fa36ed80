package flowview

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	bookingModels "github.com/m04kA/SMC-SessionBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SessionBooking/internal/service/flows"
	pricingModels "github.com/m04kA/SMC-SessionBooking/internal/service/pricing/models"
	"github.com/m04kA/SMC-SessionBooking/internal/workflow"
)

const (
	msgFlowNotFound = "процесс бронирования не найден или истёк"
	msgForbidden    = "доступ запрещен"
)

// Flow процесс бронирования, который можно отобразить
type Flow interface {
	View() workflow.View
	Quote(ctx context.Context) (domain.ChargeBreakdown, error)
}

// FlowResponse состояние процесса бронирования в ответе API
type FlowResponse struct {
	ID           string                         `json:"id"`
	HostID       int64                          `json:"hostId"`
	ClientID     int64                          `json:"clientId"`
	State        string                         `json:"state"`
	Selection    SelectionResponse              `json:"selection"`
	Slots        []string                       `json:"slots"`
	Tiers        []TierResponse                 `json:"tiers"`
	HostServices []string                       `json:"hostServices"`
	InFlight     bool                           `json:"inFlight"`
	LastError    string                         `json:"lastError,omitempty"`
	Quote        *bookingModels.ChargeResponse  `json:"quote,omitempty"`
	Receipt      *bookingModels.BookingResponse `json:"receipt,omitempty"`
	UpdatedAt    time.Time                      `json:"updatedAt"`
}

// SelectionResponse текущий выбор клиента
type SelectionResponse struct {
	Date            string   `json:"date,omitempty"`
	Time            string   `json:"time,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	AddOns          []string `json:"addOns"`
}

// TierResponse тариф, доступный клиенту
type TierResponse struct {
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
	AddOns          []string        `json:"addOns"`
}

// Render собирает ответ; стоимость считается, пока процесс активен и тариф выбран
func Render(ctx context.Context, flow Flow) *FlowResponse {
	view := flow.View()
	resp := FromView(view)

	if view.Selection.HasTier() && !view.State.IsTerminal() {
		if quote, err := flow.Quote(ctx); err == nil {
			charge := bookingModels.FromDomainCharge(quote)
			resp.Quote = &charge
		}
	}
	return resp
}

// FromView конвертирует View в ответ без расчёта стоимости
func FromView(view workflow.View) *FlowResponse {
	resp := &FlowResponse{
		ID:           view.ID,
		HostID:       view.HostID,
		ClientID:     view.ClientID,
		State:        view.State.String(),
		Selection:    fromSelection(view.Selection),
		Slots:        make([]string, len(view.Slots)),
		Tiers:        make([]TierResponse, 0, len(view.Tiers)),
		HostServices: make([]string, len(view.HostServices)),
		InFlight:     view.InFlight,
		Receipt:      bookingModels.FromDomainBooking(view.Receipt),
		UpdatedAt:    view.UpdatedAt,
	}

	for i, slot := range view.Slots {
		resp.Slots[i] = slot.String()
	}
	for _, tier := range view.Tiers {
		resp.Tiers = append(resp.Tiers, TierResponse{
			DurationMinutes: tier.DurationMinutes,
			Price:           tier.Price.Round(domain.CurrencyPrecision),
			AddOns:          pricingModels.AddOnNames(tier.IncludedAddOns()),
		})
	}
	for i, a := range view.HostServices {
		resp.HostServices[i] = string(a)
	}
	if view.LastError != nil {
		resp.LastError = view.LastError.Error()
	}
	return resp
}

func fromSelection(s workflow.Selection) SelectionResponse {
	resp := SelectionResponse{AddOns: pricingModels.AddOnNames(s.AddOns)}
	if s.HasDate() {
		resp.Date = s.Date.Format(domain.DateFormat)
	}
	if s.HasTime() {
		resp.Time = s.Time.String()
	}
	if s.HasTier() {
		duration := s.Tier.DurationMinutes
		resp.DurationMinutes = &duration
	}
	return resp
}

// RespondError отвечает на ошибку операции с процессом
// Возвращает true, если ошибка неожиданная и должна логироваться как Error
func RespondError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, flows.ErrFlowNotFound):
		handlers.RespondNotFound(w, msgFlowNotFound)
	case errors.Is(err, flows.ErrAccessDenied):
		handlers.RespondForbidden(w, msgForbidden)
	default:
		if handlers.RespondDomainError(w, err) {
			return false
		}
		handlers.RespondInternalError(w)
		return true
	}
	return false
}
