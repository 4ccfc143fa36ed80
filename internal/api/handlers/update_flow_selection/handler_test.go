package update_flow_selection

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers/flowview"
	"github.com/m04kA/SMC-SessionBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/internal/integrations/payments"
	"github.com/m04kA/SMC-SessionBooking/internal/service/charges"
	"github.com/m04kA/SMC-SessionBooking/internal/service/flows"
	"github.com/m04kA/SMC-SessionBooking/internal/workflow"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedPricer struct{}

func (fixedPricer) Quote(ctx context.Context, req charges.QuoteRequest) (domain.ChargeBreakdown, error) {
	return domain.ChargeBreakdown{BasePrice: req.Tier.Price, Total: req.Tier.Price}, nil
}

type nopPayments struct{}

func (nopPayments) Capture(ctx context.Context, req payments.CaptureRequest) (*payments.CaptureResult, error) {
	return &payments.CaptureResult{PaymentID: "pay-1", Amount: req.Amount}, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, booking domain.Booking) error { return nil }

type fakeRegistry struct {
	flow *workflow.Workflow
}

func (f *fakeRegistry) Get(flowID string, userID int64) (*workflow.Workflow, error) {
	if f.flow == nil || f.flow.ID() != flowID {
		return nil, flows.ErrFlowNotFound
	}
	if f.flow.ClientID() != userID {
		return nil, flows.ErrAccessDenied
	}
	return f.flow, nil
}

func newFlow(t *testing.T) *workflow.Workflow {
	t.Helper()
	settings := domain.DefaultPlatformSettings()
	settings.AllowRecording = true
	settings.AddOnPrices.Recording = decimal.NewFromInt(10)

	flow := workflow.New("flow-1", workflow.Snapshot{
		HostID:   3,
		ClientID: 9,
		Rules: domain.RuleSet{
			Weekly: []domain.WeeklyRule{{HostID: 3, DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30"}},
		},
		Tiers: []domain.PricingTier{
			{HostID: 3, DurationMinutes: 60, Price: decimal.NewFromInt(35), IsActive: true, IncludesRecording: true},
		},
		HostServices: domain.NewAddOnSet(domain.AddOnRecording),
		Settings:     settings,
	}, workflow.Dependencies{
		Pricer:    fixedPricer{},
		Payments:  nopPayments{},
		Publisher: nopPublisher{},
		Logger:    nopLogger{},
	})
	require.NoError(t, flow.Advance(context.Background()))
	return flow
}

func patch(h *Handler, flowID, userID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/booking-flows/{flowId}/selection", h.Handle).Methods(http.MethodPatch)
	req := httptest.NewRequest(http.MethodPatch, "/booking-flows/"+flowID+"/selection", bytes.NewBufferString(body))
	req.Header.Set(middleware.UserIDHeader, userID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle_SelectDate(t *testing.T) {
	reg := &fakeRegistry{flow: newFlow(t)}
	h := NewHandler(reg, nopLogger{})

	rec := patch(h, "flow-1", "9", `{"date":"2030-05-06"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body flowview.FlowResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "select_date", body.State)
	assert.Equal(t, "2030-05-06", body.Selection.Date)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, body.Slots)
}

func TestHandler_Handle_SelectTimeAndTierWithQuote(t *testing.T) {
	flow := newFlow(t)
	reg := &fakeRegistry{flow: flow}
	h := NewHandler(reg, nopLogger{})

	require.Equal(t, http.StatusOK, patch(h, "flow-1", "9", `{"date":"2030-05-06"}`).Code)
	require.NoError(t, flow.Advance(context.Background()))

	rec := patch(h, "flow-1", "9", `{"time":"09:30","durationMinutes":60}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body flowview.FlowResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "09:30", body.Selection.Time)
	require.NotNil(t, body.Selection.DurationMinutes)
	assert.Equal(t, 60, *body.Selection.DurationMinutes)
	require.NotNil(t, body.Quote)
	assert.True(t, body.Quote.Total.Equal(decimal.NewFromInt(35)))
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		flowID     string
		userID     string
		body       string
		wantStatus int
	}{
		{name: "empty body", flowID: "flow-1", userID: "9", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", flowID: "flow-1", userID: "9", body: `{"date":`, wantStatus: http.StatusBadRequest},
		{name: "bad date", flowID: "flow-1", userID: "9", body: `{"date":"06.05.2030"}`, wantStatus: http.StatusBadRequest},
		{name: "date without rules", flowID: "flow-1", userID: "9", body: `{"date":"2030-05-07"}`, wantStatus: http.StatusBadRequest},
		{name: "time on wrong step", flowID: "flow-1", userID: "9", body: `{"time":"09:30"}`, wantStatus: http.StatusConflict},
		{name: "unknown add-on", flowID: "flow-1", userID: "9", body: `{"addOns":{"teleport":true}}`, wantStatus: http.StatusBadRequest},
		{name: "unknown flow", flowID: "flow-2", userID: "9", body: `{"date":"2030-05-06"}`, wantStatus: http.StatusNotFound},
		{name: "foreign flow", flowID: "flow-1", userID: "10", body: `{"date":"2030-05-06"}`, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeRegistry{flow: newFlow(t)}, nopLogger{})

			rec := patch(h, tt.flowID, tt.userID, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_Handle_RejectedRequestChangesNothing(t *testing.T) {
	flow := newFlow(t)
	reg := &fakeRegistry{flow: flow}
	h := NewHandler(reg, nopLogger{})

	// время нельзя выбрать на шаге select_date, поэтому дата тоже не применяется
	rec := patch(h, "flow-1", "9", `{"date":"2030-05-06","time":"09:00"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, flow.Selection().HasDate())
}

func TestHandler_Handle_TimeIsNormalized(t *testing.T) {
	flow := newFlow(t)
	reg := &fakeRegistry{flow: flow}
	h := NewHandler(reg, nopLogger{})

	require.Equal(t, http.StatusOK, patch(h, "flow-1", "9", `{"date":"2030-05-06"}`).Code)
	require.NoError(t, flow.Advance(context.Background()))

	rec := patch(h, "flow-1", "9", `{"time":"9:30"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body flowview.FlowResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "09:30", body.Selection.Time)
}
