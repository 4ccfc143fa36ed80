package flowview

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/internal/service/flows"
	"github.com/m04kA/SMC-SessionBooking/internal/workflow"
	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

type stubFlow struct {
	view     workflow.View
	quote    domain.ChargeBreakdown
	quoteErr error
	quoted   bool
}

func (s *stubFlow) View() workflow.View { return s.view }

func (s *stubFlow) Quote(ctx context.Context) (domain.ChargeBreakdown, error) {
	s.quoted = true
	return s.quote, s.quoteErr
}

func selectedView(state workflow.State) workflow.View {
	tier := domain.PricingTier{DurationMinutes: 60, Price: decimal.NewFromInt(35), IsActive: true, IncludesRecording: true}
	return workflow.View{
		ID:       "flow-1",
		HostID:   3,
		ClientID: 9,
		State:    state,
		Selection: workflow.Selection{
			Date:   time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC),
			Time:   "09:30",
			Tier:   &tier,
			AddOns: domain.NewAddOnSet(domain.AddOnRecording),
		},
		Slots:        []types.TimeString{"09:00", "09:30"},
		Tiers:        []domain.PricingTier{tier},
		HostServices: []domain.AddOn{domain.AddOnRecording},
	}
}

func TestRender_WithQuote(t *testing.T) {
	flow := &stubFlow{
		view:  selectedView(workflow.StateSelectServices),
		quote: domain.ChargeBreakdown{BasePrice: decimal.NewFromInt(35), Total: decimal.RequireFromString("45.004")},
	}

	resp := Render(context.Background(), flow)

	assert.Equal(t, "select_services", resp.State)
	assert.Equal(t, "2030-05-06", resp.Selection.Date)
	assert.Equal(t, "09:30", resp.Selection.Time)
	require.NotNil(t, resp.Selection.DurationMinutes)
	assert.Equal(t, 60, *resp.Selection.DurationMinutes)
	assert.Equal(t, []string{"recording"}, resp.Selection.AddOns)
	assert.Equal(t, []string{"09:00", "09:30"}, resp.Slots)
	require.Len(t, resp.Tiers, 1)
	assert.Equal(t, []string{"recording"}, resp.Tiers[0].AddOns)
	require.NotNil(t, resp.Quote)
	assert.Equal(t, "45", resp.Quote.Total.String())
}

func TestRender_NoQuote(t *testing.T) {
	tests := []struct {
		name       string
		view       workflow.View
		quoteErr   error
		wantQuoted bool
	}{
		{name: "terminal state", view: selectedView(workflow.StateSuccess)},
		{name: "no tier", view: workflow.View{State: workflow.StateSelectDate}},
		{name: "quote failure is hidden", view: selectedView(workflow.StatePayment), quoteErr: errors.New("rates unavailable"), wantQuoted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := &stubFlow{view: tt.view, quoteErr: tt.quoteErr}

			resp := Render(context.Background(), flow)

			assert.Nil(t, resp.Quote)
			assert.Equal(t, tt.wantQuoted, flow.quoted)
		})
	}
}

func TestFromView_LastErrorAndReceipt(t *testing.T) {
	view := workflow.View{
		State:     workflow.StateSuccess,
		LastError: errors.New("card declined"),
		Receipt:   &domain.Booking{Reference: "ref-1", SessionDate: time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC), StartTime: "09:30"},
	}

	resp := FromView(view)

	assert.Equal(t, "card declined", resp.LastError)
	require.NotNil(t, resp.Receipt)
	assert.Equal(t, "ref-1", resp.Receipt.Reference)
	assert.NotNil(t, resp.Slots)
	assert.NotNil(t, resp.Selection.AddOns)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		unexpected bool
	}{
		{name: "not found", err: flows.ErrFlowNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign flow", err: flows.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "invalid transition", err: workflow.ErrClosed, wantStatus: http.StatusConflict},
		{name: "in flight", err: workflow.ErrOperationInFlight, wantStatus: http.StatusConflict},
		{name: "payment failure", err: workflow.ErrPaymentFailed, wantStatus: http.StatusBadGateway},
		{name: "gated", err: workflow.ErrFreeCallsDisabled, wantStatus: http.StatusForbidden},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, unexpected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			unexpected := RespondError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.unexpected, unexpected)
		})
	}
}
