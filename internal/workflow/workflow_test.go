package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/internal/integrations/payments"
	"github.com/m04kA/SMC-SessionBooking/internal/service/charges"
	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

// 2026-03-02 - понедельник, 2026-03-04 - среда
var (
	monday    = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	wednesday = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	tuesday   = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	now       = time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return now }

type settingsStub struct {
	settings domain.PlatformSettings
}

func (s *settingsStub) Get(ctx context.Context) (domain.PlatformSettings, error) {
	return s.settings, nil
}

type fakePayments struct {
	mu       sync.Mutex
	requests []payments.CaptureRequest
	err      error
	started  chan struct{}
	release  chan struct{}
}

func (f *fakePayments) Capture(ctx context.Context, req payments.CaptureRequest) (*payments.CaptureResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	err := f.err
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}

	if err != nil {
		return nil, err
	}
	return &payments.CaptureResult{PaymentID: "pi_" + req.IdempotencyKey, Amount: req.Amount}, nil
}

func (f *fakePayments) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakePayments) calls() []payments.CaptureRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]payments.CaptureRequest(nil), f.requests...)
}

type fakePublisher struct {
	mu       sync.Mutex
	bookings []domain.Booking
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, booking domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, booking)
	return f.err
}

func (f *fakePublisher) published() []domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Booking(nil), f.bookings...)
}

type recordingObserver struct {
	mu          sync.Mutex
	transitions []string
	payments    []bool
}

func (o *recordingObserver) ObserveTransition(from, to string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transitions = append(o.transitions, from+"->"+to)
}

func (o *recordingObserver) ObservePayment(success bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.payments = append(o.payments, success)
}

func testSettings() domain.PlatformSettings {
	s := domain.DefaultPlatformSettings()
	s.AllowScreenSharing = true
	s.AllowTranslation = true
	s.AllowRecording = true
	s.AllowTranscription = false
	s.AddOnPrices = domain.AddOnPriceTable{
		ScreenSharing: decimal.NewFromInt(10),
		Translation:   decimal.NewFromInt(25),
		Recording:     decimal.NewFromInt(10),
		Transcription: decimal.NewFromInt(5),
	}
	return s
}

func testSnapshot() Snapshot {
	return Snapshot{
		HostID:   3,
		ClientID: 9,
		Rules: domain.RuleSet{
			Weekly: []domain.WeeklyRule{{HostID: 3, DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30"}},
			Dates:  []domain.DateRule{{HostID: 3, Date: wednesday, StartTime: "14:00", EndTime: "15:00"}},
		},
		Tiers: []domain.PricingTier{
			{HostID: 3, DurationMinutes: 0, Price: decimal.Zero, IsActive: true},
			{HostID: 3, DurationMinutes: 30, Price: decimal.NewFromInt(20), IsActive: true},
			{HostID: 3, DurationMinutes: 60, Price: decimal.NewFromInt(35), IsActive: true},
		},
		HostServices:     domain.NewAddOnSet(domain.AddOnScreenSharing, domain.AddOnRecording, domain.AddOnTranscription),
		Settings:         testSettings(),
		FreeCallDuration: 0,
	}
}

type harness struct {
	w         *Workflow
	settings  *settingsStub
	payments  *fakePayments
	publisher *fakePublisher
	observer  *recordingObserver
}

func newHarness(snapshot Snapshot, testAccountID int64) *harness {
	h := &harness{
		payments:  &fakePayments{},
		publisher: &fakePublisher{},
		observer:  &recordingObserver{},
		settings:  &settingsStub{settings: snapshot.Settings},
	}
	pricer := charges.NewService(h.settings, charges.NewTestAccountPolicy(testAccountID, nopLogger{}), nopLogger{})
	h.w = New("flow-1", snapshot, Dependencies{
		Pricer:    pricer,
		Payments:  h.payments,
		Publisher: h.publisher,
		Observer:  h.observer,
		Clock:     fixedClock{},
		Logger:    nopLogger{},
	})
	return h
}

func driveToPayment(t *testing.T, w *Workflow) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, w.Advance(ctx))
	require.NoError(t, w.SelectDate(monday))
	require.NoError(t, w.Advance(ctx))
	require.NoError(t, w.SelectTime("09:30"))
	require.NoError(t, w.SelectTier(60))
	require.NoError(t, w.Advance(ctx))
	require.NoError(t, w.Advance(ctx))
	require.Equal(t, StatePayment, w.State())
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got.String())
}

func TestNew_StartsAtHostIntroWithDefaultAddOns(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.HostServices = domain.NewAddOnSet(domain.AddOnScreenSharing, domain.AddOnTranslation, domain.AddOnTranscription)
	snapshot.Settings.AddOnPrices.Translation = decimal.Zero

	h := newHarness(snapshot, 0)

	assert.Equal(t, StateHostIntro, h.w.State())
	// translation бесплатна, transcription запрещена платформой
	assert.Equal(t, domain.NewAddOnSet(domain.AddOnScreenSharing), h.w.Selection().AddOns)
}

func TestWorkflow_HappyPath(t *testing.T) {
	h := newHarness(testSnapshot(), 0)
	ctx := context.Background()

	driveToPayment(t, h.w)

	quote, err := h.w.Quote(ctx)
	require.NoError(t, err)
	assertDecimal(t, "55", quote.Total)

	require.NoError(t, h.w.Advance(ctx))

	assert.Equal(t, StateSuccess, h.w.State())
	calls := h.payments.calls()
	require.Len(t, calls, 1)
	assertDecimal(t, "55", calls[0].Amount)
	assert.Equal(t, []domain.AddOn{domain.AddOnScreenSharing, domain.AddOnRecording}, calls[0].AddOns)

	published := h.publisher.published()
	require.Len(t, published, 1)
	booking := published[0]
	assert.Equal(t, int64(3), booking.HostID)
	assert.Equal(t, int64(9), booking.ClientID)
	assert.Equal(t, types.TimeString("09:30"), booking.StartTime)
	assert.Equal(t, 60, booking.DurationMinutes)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assertDecimal(t, "55", booking.Charge.Total)
	assertDecimal(t, "5.5", booking.Charge.Commission)
	assertDecimal(t, "1.155", booking.Charge.Tax)
	assertDecimal(t, "48.345", booking.Charge.HostPayout)

	receipt := h.w.Receipt()
	require.NotNil(t, receipt)
	assert.Equal(t, booking.Reference, receipt.Reference)
	assert.Equal(t, calls[0].BookingReference, receipt.Reference)

	// выбор сброшен после публикации
	assert.False(t, h.w.Selection().HasTier())

	assert.Equal(t, []string{
		"host_intro->select_date",
		"select_date->select_time",
		"select_time->select_services",
		"select_services->payment",
		"payment->success",
	}, h.observer.transitions)
	assert.Equal(t, []bool{true}, h.observer.payments)
}

func TestWorkflow_ExactlyOneCompletionEvent(t *testing.T) {
	h := newHarness(testSnapshot(), 0)
	ctx := context.Background()
	driveToPayment(t, h.w)

	require.NoError(t, h.w.Advance(ctx))

	assert.ErrorIs(t, h.w.Advance(ctx), ErrInvalidTransition)
	assert.ErrorIs(t, h.w.Retreat(), ErrInvalidTransition)
	assert.ErrorIs(t, h.w.Cancel(), ErrInvalidTransition)
	h.w.Close()
	assert.ErrorIs(t, h.w.Advance(ctx), ErrClosed)

	assert.Len(t, h.publisher.published(), 1)
	assert.Len(t, h.payments.calls(), 1)
}

func TestWorkflow_SelectTimeRequiresDateBeforeAdvancing(t *testing.T) {
	h := newHarness(testSnapshot(), 0)
	ctx := context.Background()

	tier := testSnapshot().Tiers[2]
	h.w.state = StateSelectTime
	h.w.selection.Time = "09:00"
	h.w.selection.Tier = &tier

	err := h.w.Advance(ctx)

	require.ErrorIs(t, err, ErrMissingSelection)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, StateSelectTime, h.w.State())
	assert.ErrorIs(t, h.w.LastError(), ErrMissingSelection)

	require.NoError(t, h.w.SelectDate(monday))
	require.NoError(t, h.w.Advance(ctx))

	assert.Equal(t, StateSelectServices, h.w.State())
	assert.NoError(t, h.w.LastError())
}

func TestWorkflow_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("select_date requires date", func(t *testing.T) {
		h := newHarness(testSnapshot(), 0)
		require.NoError(t, h.w.Advance(ctx))

		assert.ErrorIs(t, h.w.Advance(ctx), ErrMissingSelection)
		assert.Equal(t, StateSelectDate, h.w.State())
	})

	t.Run("select_time requires time", func(t *testing.T) {
		h := newHarness(testSnapshot(), 0)
		require.NoError(t, h.w.Advance(ctx))
		require.NoError(t, h.w.SelectDate(monday))
		require.NoError(t, h.w.Advance(ctx))
		require.NoError(t, h.w.SelectTier(30))

		assert.ErrorIs(t, h.w.Advance(ctx), ErrMissingSelection)
		assert.Equal(t, StateSelectTime, h.w.State())
	})

	t.Run("select_time requires tier", func(t *testing.T) {
		h := newHarness(testSnapshot(), 0)
		require.NoError(t, h.w.Advance(ctx))
		require.NoError(t, h.w.SelectDate(monday))
		require.NoError(t, h.w.Advance(ctx))
		require.NoError(t, h.w.SelectTime("09:00"))

		assert.ErrorIs(t, h.w.Advance(ctx), ErrMissingSelection)
		assert.Equal(t, StateSelectTime, h.w.State())
	})

	t.Run("select_services has no guard", func(t *testing.T) {
		h := newHarness(testSnapshot(), 0)
		driveToPayment(t, h.w)
	})
}

func TestWorkflow_Retreat(t *testing.T) {
	ctx := context.Background()
	h := newHarness(testSnapshot(), 0)

	require.NoError(t, h.w.Retreat())
	assert.Equal(t, StateHostIntro, h.w.State(), "retreat at host_intro is a no-op")

	require.NoError(t, h.w.Advance(ctx))
	require.NoError(t, h.w.SelectDate(monday))
	require.NoError(t, h.w.Advance(ctx))
	require.NoError(t, h.w.Retreat())

	assert.Equal(t, StateSelectDate, h.w.State())
	assert.True(t, h.w.Selection().HasDate(), "retreat keeps selection")

	h.w.Close()
	assert.ErrorIs(t, h.w.Retreat(), ErrClosed)
}

func TestWorkflow_Cancel(t *testing.T) {
	t.Run("at payment steps back keeping selection", func(t *testing.T) {
		h := newHarness(testSnapshot(), 0)
		driveToPayment(t, h.w)

		require.NoError(t, h.w.Cancel())

		assert.Equal(t, StateSelectServices, h.w.State())
		selection := h.w.Selection()
		assert.True(t, selection.HasDate())
		assert.True(t, selection.HasTime())
		require.True(t, selection.HasTier())
		assert.Equal(t, 60, selection.Tier.DurationMinutes)
	})

	t.Run("elsewhere discards selection and closes", func(t *testing.T) {
		h := newHarness(testSnapshot(), 0)
		ctx := context.Background()
		require.NoError(t, h.w.Advance(ctx))
		require.NoError(t, h.w.SelectDate(monday))
		require.NoError(t, h.w.Advance(ctx))

		require.NoError(t, h.w.Cancel())

		assert.Equal(t, StateClosed, h.w.State())
		assert.False(t, h.w.Selection().HasDate())
		assert.ErrorIs(t, h.w.Cancel(), ErrClosed)
		assert.ErrorIs(t, h.w.SelectDate(monday), ErrClosed)
	})
}

func TestWorkflow_PaymentFailure(t *testing.T) {
	h := newHarness(testSnapshot(), 0)
	ctx := context.Background()
	driveToPayment(t, h.w)

	h.payments.setErr(payments.ErrPaymentDeclined)
	err := h.w.Advance(ctx)

	require.ErrorIs(t, err, ErrPaymentFailed)
	assert.ErrorIs(t, err, payments.ErrPaymentDeclined)
	assert.ErrorIs(t, err, domain.ErrExternalOperation)
	assert.Equal(t, StatePayment, h.w.State())
	assert.ErrorIs(t, h.w.LastError(), ErrPaymentFailed)
	assert.Empty(t, h.publisher.published())
	assert.Len(t, h.payments.calls(), 1, "payment is not retried automatically")

	// повтор по действию клиента
	h.payments.setErr(nil)
	require.NoError(t, h.w.Advance(ctx))

	assert.Equal(t, StateSuccess, h.w.State())
	calls := h.payments.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, calls[0].BookingReference, calls[1].BookingReference)
	assert.NotEqual(t, calls[0].IdempotencyKey, calls[1].IdempotencyKey)
	assert.Len(t, h.publisher.published(), 1)
	assert.Equal(t, []bool{false, true}, h.observer.payments)
}

func TestWorkflow_AddOnDisabledAfterOpenBlocksPayment(t *testing.T) {
	h := newHarness(testSnapshot(), 0)
	ctx := context.Background()
	driveToPayment(t, h.w)

	// администратор выключил запись, пока клиент был на шаге оплаты
	h.settings.settings.AllowRecording = false
	err := h.w.Advance(ctx)

	require.ErrorIs(t, err, ErrAddOnDisabled)
	assert.ErrorIs(t, err, domain.ErrConfigurationGated)
	assert.NotErrorIs(t, err, ErrPaymentFailed)
	assert.Equal(t, StatePayment, h.w.State())
	assert.ErrorIs(t, h.w.LastError(), ErrAddOnDisabled)
	assert.Empty(t, h.payments.calls())
	assert.Empty(t, h.publisher.published())
	assert.Empty(t, h.observer.payments)

	// клиент снимает услугу и оплачивает без неё
	require.NoError(t, h.w.Cancel())
	require.NoError(t, h.w.SetAddOn(domain.AddOnRecording, false))
	require.NoError(t, h.w.Advance(ctx))
	require.NoError(t, h.w.Advance(ctx))

	assert.Equal(t, StateSuccess, h.w.State())
	calls := h.payments.calls()
	require.Len(t, calls, 1)
	assertDecimal(t, "45", calls[0].Amount)
	assert.Equal(t, []domain.AddOn{domain.AddOnScreenSharing}, calls[0].AddOns)
}

func TestWorkflow_FreeCallsDisabledAfterOpenBlocksPayment(t *testing.T) {
	ctx := context.Background()
	snapshot := testSnapshot()
	snapshot.Settings.AllowFreeCalls = true
	snapshot.HostServices = domain.NewAddOnSet()
	h := newHarness(snapshot, 0)

	require.NoError(t, h.w.Advance(ctx))
	require.NoError(t, h.w.SelectDate(monday))
	require.NoError(t, h.w.Advance(ctx))
	require.NoError(t, h.w.SelectTime("09:00"))
	require.NoError(t, h.w.SelectTier(0))
	require.NoError(t, h.w.Advance(ctx))
	require.NoError(t, h.w.Advance(ctx))

	h.settings.settings.AllowFreeCalls = false
	err := h.w.Advance(ctx)

	require.ErrorIs(t, err, ErrFreeCallsDisabled)
	assert.Equal(t, StatePayment, h.w.State())
	assert.Empty(t, h.payments.calls())
}

func TestWorkflow_OperationsBlockedWhilePaymentInFlight(t *testing.T) {
	h := newHarness(testSnapshot(), 0)
	ctx := context.Background()
	driveToPayment(t, h.w)

	h.payments.started = make(chan struct{}, 1)
	h.payments.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- h.w.Advance(ctx)
	}()
	<-h.payments.started

	assert.ErrorIs(t, h.w.Advance(ctx), ErrOperationInFlight)
	assert.ErrorIs(t, h.w.Retreat(), ErrOperationInFlight)
	assert.ErrorIs(t, h.w.Cancel(), ErrOperationInFlight)
	assert.ErrorIs(t, h.w.Advance(ctx), domain.ErrOperationInFlight)
	assert.True(t, h.w.View().InFlight)

	close(h.payments.release)
	require.NoError(t, <-done)

	assert.Equal(t, StateSuccess, h.w.State())
	assert.Len(t, h.payments.calls(), 1)
	assert.Len(t, h.publisher.published(), 1)
}

func TestWorkflow_LatePaymentResultAfterCloseIsDiscarded(t *testing.T) {
	h := newHarness(testSnapshot(), 0)
	ctx := context.Background()
	driveToPayment(t, h.w)

	h.payments.started = make(chan struct{}, 1)
	h.payments.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- h.w.Advance(ctx)
	}()
	<-h.payments.started

	h.w.Close()
	close(h.payments.release)

	assert.ErrorIs(t, <-done, ErrClosed)
	assert.Equal(t, StateClosed, h.w.State())
	assert.Nil(t, h.w.Receipt())
	assert.Empty(t, h.publisher.published())
	assert.False(t, h.w.View().InFlight)
}

func TestWorkflow_PublisherFailureKeepsSuccess(t *testing.T) {
	h := newHarness(testSnapshot(), 0)
	h.publisher.err = errors.New("notifier down")
	driveToPayment(t, h.w)

	require.NoError(t, h.w.Advance(context.Background()))

	assert.Equal(t, StateSuccess, h.w.State())
	assert.NotNil(t, h.w.Receipt())
}

func TestWorkflow_TestAccountPaysNothing(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.ClientID = 42
	h := newHarness(snapshot, 42)
	driveToPayment(t, h.w)

	require.NoError(t, h.w.Advance(context.Background()))

	calls := h.payments.calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Amount.IsZero())
	assert.True(t, h.w.Receipt().Charge.IsFree())
}

func TestWorkflow_SelectDate(t *testing.T) {
	ctx := context.Background()

	t.Run("date without rules", func(t *testing.T) {
		h := newHarness(testSnapshot(), 0)
		require.NoError(t, h.w.Advance(ctx))

		err := h.w.SelectDate(tuesday)

		assert.ErrorIs(t, err, ErrDateUnavailable)
		assert.False(t, h.w.Selection().HasDate())
	})

	t.Run("date rule", func(t *testing.T) {
		h := newHarness(testSnapshot(), 0)
		require.NoError(t, h.w.Advance(ctx))

		require.NoError(t, h.w.SelectDate(wednesday.Add(15*time.Hour)))

		assert.Equal(t, wednesday, h.w.Selection().Date)
		assert.Equal(t, []types.TimeString{"14:00", "14:30"}, h.w.View().Slots)
	})

	t.Run("time dropped when not a slot of the new date", func(t *testing.T) {
		h := newHarness(testSnapshot(), 0)
		require.NoError(t, h.w.Advance(ctx))
		require.NoError(t, h.w.SelectDate(monday))
		require.NoError(t, h.w.Advance(ctx))
		require.NoError(t, h.w.SelectTime("09:30"))

		require.NoError(t, h.w.SelectDate(wednesday))

		assert.False(t, h.w.Selection().HasTime())
	})

	t.Run("malformed rule fails fast", func(t *testing.T) {
		snapshot := testSnapshot()
		snapshot.Rules.Weekly = append(snapshot.Rules.Weekly, domain.WeeklyRule{DayOfWeek: 1, StartTime: "9am", EndTime: "10:00"})
		h := newHarness(snapshot, 0)
		require.NoError(t, h.w.Advance(ctx))

		assert.ErrorIs(t, h.w.SelectDate(monday), domain.ErrInvalidRule)
	})

	t.Run("not allowed on host_intro", func(t *testing.T) {
		h := newHarness(testSnapshot(), 0)

		assert.ErrorIs(t, h.w.SelectDate(monday), ErrInvalidTransition)
	})
}

func TestWorkflow_Update(t *testing.T) {
	ctx := context.Background()
	newAtSelectTime := func(t *testing.T) *Workflow {
		t.Helper()
		h := newHarness(testSnapshot(), 0)
		require.NoError(t, h.w.Advance(ctx))
		require.NoError(t, h.w.SelectDate(monday))
		require.NoError(t, h.w.Advance(ctx))
		require.NoError(t, h.w.SelectTime("09:30"))
		return h.w
	}

	t.Run("applies all fields", func(t *testing.T) {
		w := newAtSelectTime(t)
		slot := types.TimeString("14:30")
		duration := 30

		require.NoError(t, w.Update(SelectionUpdate{Date: &wednesday, Time: &slot, DurationMinutes: &duration}))

		sel := w.Selection()
		assert.Equal(t, wednesday, sel.Date)
		assert.Equal(t, slot, sel.Time)
		require.True(t, sel.HasTier())
		assert.Equal(t, 30, sel.Tier.DurationMinutes)
	})

	t.Run("failure restores previous selection", func(t *testing.T) {
		w := newAtSelectTime(t)
		before := w.UpdatedAt()
		slot := types.TimeString("11:00")

		err := w.Update(SelectionUpdate{Date: &wednesday, Time: &slot})

		require.ErrorIs(t, err, ErrSlotUnavailable)
		sel := w.Selection()
		assert.Equal(t, monday, sel.Date)
		assert.Equal(t, types.TimeString("09:30"), sel.Time)
		assert.Equal(t, before, w.UpdatedAt())
	})

	t.Run("time without leading zero matches slot", func(t *testing.T) {
		w := newAtSelectTime(t)
		slot := types.TimeString("9:00")

		require.NoError(t, w.Update(SelectionUpdate{Time: &slot}))
		assert.Equal(t, types.TimeString("09:00"), w.Selection().Time)
	})

	t.Run("malformed time is a validation error", func(t *testing.T) {
		w := newAtSelectTime(t)

		err := w.SelectTime("half past nine")

		assert.ErrorIs(t, err, ErrSlotUnavailable)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, types.TimeString("09:30"), w.Selection().Time)
	})
}

func TestWorkflow_SelectTimeAndTier(t *testing.T) {
	ctx := context.Background()
	h := newHarness(testSnapshot(), 0)
	require.NoError(t, h.w.Advance(ctx))
	require.NoError(t, h.w.SelectDate(monday))
	require.NoError(t, h.w.Advance(ctx))

	assert.ErrorIs(t, h.w.SelectTime("10:30"), ErrSlotUnavailable)
	assert.ErrorIs(t, h.w.SelectTime("25:00"), ErrSlotUnavailable)
	assert.NoError(t, h.w.SelectTime("10:00"))

	assert.ErrorIs(t, h.w.SelectTier(90), ErrTierUnavailable)

	err := h.w.SelectTier(0)
	assert.ErrorIs(t, err, ErrFreeCallsDisabled)
	assert.ErrorIs(t, err, domain.ErrConfigurationGated)

	assert.NoError(t, h.w.SelectTier(30))
}

func TestWorkflow_FreeTierWhenAllowed(t *testing.T) {
	ctx := context.Background()
	snapshot := testSnapshot()
	snapshot.Settings.AllowFreeCalls = true
	snapshot.HostServices = domain.NewAddOnSet()
	h := newHarness(snapshot, 0)

	require.NoError(t, h.w.Advance(ctx))
	require.NoError(t, h.w.SelectDate(monday))
	require.NoError(t, h.w.Advance(ctx))
	require.NoError(t, h.w.SelectTime("09:00"))
	require.NoError(t, h.w.SelectTier(0))
	require.NoError(t, h.w.Advance(ctx))
	require.NoError(t, h.w.Advance(ctx))
	require.NoError(t, h.w.Advance(ctx))

	assert.Equal(t, StateSuccess, h.w.State())
	assert.True(t, h.payments.calls()[0].Amount.IsZero())
}

func TestWorkflow_AddOns(t *testing.T) {
	ctx := context.Background()
	h := newHarness(testSnapshot(), 0)
	require.NoError(t, h.w.Advance(ctx))
	require.NoError(t, h.w.SelectDate(monday))
	require.NoError(t, h.w.Advance(ctx))
	require.NoError(t, h.w.SelectTime("09:00"))
	require.NoError(t, h.w.SelectTier(30))

	assert.ErrorIs(t, h.w.SetAddOn(domain.AddOnRecording, false), ErrInvalidTransition, "add-ons are chosen on select_services")

	require.NoError(t, h.w.Advance(ctx))

	err := h.w.SetAddOn(domain.AddOnTranscription, true)
	assert.ErrorIs(t, err, ErrAddOnDisabled)
	assert.ErrorIs(t, err, domain.ErrConfigurationGated)

	assert.ErrorIs(t, h.w.SetAddOn(domain.AddOnTranslation, true), ErrAddOnNotOffered)
	assert.ErrorIs(t, h.w.SetAddOn(domain.AddOn("hologram"), true), domain.ErrInvalidAddOn)

	selected, err := h.w.ToggleAddOn(domain.AddOnRecording)
	require.NoError(t, err)
	assert.False(t, selected)
	assert.Equal(t, domain.NewAddOnSet(domain.AddOnScreenSharing), h.w.Selection().AddOns)

	quote, err := h.w.Quote(ctx)
	require.NoError(t, err)
	assertDecimal(t, "30", quote.Total)

	selected, err = h.w.ToggleAddOn(domain.AddOnRecording)
	require.NoError(t, err)
	assert.True(t, selected)
}

func TestWorkflow_QuoteRequiresTier(t *testing.T) {
	h := newHarness(testSnapshot(), 0)

	_, err := h.w.Quote(context.Background())

	assert.ErrorIs(t, err, ErrMissingSelection)
}

func TestWorkflow_PaymentGuardedAgainstIncompleteSelection(t *testing.T) {
	h := newHarness(testSnapshot(), 0)
	h.w.state = StatePayment

	err := h.w.Advance(context.Background())

	assert.ErrorIs(t, err, ErrMissingSelection)
	assert.Equal(t, StatePayment, h.w.State())
	assert.Empty(t, h.payments.calls())
}

func TestState_Order(t *testing.T) {
	next, ok := StateHostIntro.next()
	assert.True(t, ok)
	assert.Equal(t, StateSelectDate, next)

	_, ok = StateSuccess.next()
	assert.False(t, ok)

	_, ok = StateHostIntro.prev()
	assert.False(t, ok)

	_, ok = StateClosed.next()
	assert.False(t, ok)

	assert.True(t, StateSuccess.IsTerminal())
	assert.True(t, StateClosed.IsTerminal())
	assert.False(t, StatePayment.IsTerminal())
}
