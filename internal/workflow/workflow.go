package workflow

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/internal/integrations/payments"
	"github.com/m04kA/SMC-SessionBooking/internal/service/availability"
	"github.com/m04kA/SMC-SessionBooking/internal/service/charges"
	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

// Snapshot данные хоста и платформы, прочитанные при открытии процесса
type Snapshot struct {
	HostID           int64
	ClientID         int64
	Rules            domain.RuleSet
	Tiers            []domain.PricingTier // тарифы, доступные клиенту
	HostServices     domain.AddOnSet
	Settings         domain.PlatformSettings
	FreeCallDuration int
}

// Dependencies внешние участники процесса
// Observer и Clock опциональны
type Dependencies struct {
	Pricer    Pricer
	Payments  PaymentGateway
	Publisher Publisher
	Observer  Observer
	Clock     TimeProvider
	Logger    Logger
}

// View состояние процесса для отображения
type View struct {
	ID           string
	HostID       int64
	ClientID     int64
	State        State
	Selection    Selection
	Slots        []types.TimeString
	Tiers        []domain.PricingTier
	HostServices []domain.AddOn
	InFlight     bool
	LastError    error
	Receipt      *domain.Booking
	UpdatedAt    time.Time
}

// Workflow процесс бронирования одной сессии:
// host_intro -> select_date -> select_time -> select_services -> payment -> success, выход в closed
//
// Методы безопасны для конкурентного вызова. Оплата выполняется без удержания мьютекса,
// пока она идёт, Advance/Retreat/Cancel возвращают ErrOperationInFlight
type Workflow struct {
	mu sync.Mutex

	id       string
	snapshot Snapshot
	deps     Dependencies

	state     State
	selection Selection
	lastErr   error
	receipt   *domain.Booking
	updatedAt time.Time

	reference  string // идентификатор бронирования, выдаётся при входе в payment
	attempt    int
	inFlight   bool
	generation uint64 // увеличивается при закрытии, поздние результаты оплаты отбрасываются
}

// New создает процесс в состоянии host_intro
// Услуги предвыбраны: включенные хостом, разрешённые платформой и с ненулевой ценой
func New(id string, snapshot Snapshot, deps Dependencies) *Workflow {
	if deps.Observer == nil {
		deps.Observer = nopObserver{}
	}
	if deps.Clock == nil {
		deps.Clock = &RealTimeProvider{}
	}

	return &Workflow{
		id:        id,
		snapshot:  snapshot,
		deps:      deps,
		state:     StateHostIntro,
		selection: Selection{AddOns: defaultAddOns(snapshot)},
		updatedAt: deps.Clock.Now(),
	}
}

func defaultAddOns(s Snapshot) domain.AddOnSet {
	set := make(domain.AddOnSet)
	for _, a := range domain.AllAddOns {
		if s.HostServices.Has(a) && s.Settings.AddOnAllowed(a) && s.Settings.AddOnPrices.Price(a).IsPositive() {
			set[a] = true
		}
	}
	return set
}

// ID идентификатор процесса
func (w *Workflow) ID() string {
	return w.id
}

// HostID хост, к которому идёт запись
func (w *Workflow) HostID() int64 {
	return w.snapshot.HostID
}

// ClientID клиент, владелец процесса
func (w *Workflow) ClientID() int64 {
	return w.snapshot.ClientID
}

// State текущий шаг
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Selection копия текущего выбора
func (w *Workflow) Selection() Selection {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selection.Clone()
}

// LastError последняя ошибка перехода или оплаты; сбрасывается успешным переходом
func (w *Workflow) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Receipt итог успешной оплаты, nil до перехода в success
func (w *Workflow) Receipt() *domain.Booking {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.receipt == nil {
		return nil
	}
	receipt := *w.receipt
	return &receipt
}

// UpdatedAt время последнего изменения
func (w *Workflow) UpdatedAt() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.updatedAt
}

// View возвращает согласованное состояние процесса
func (w *Workflow) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	view := View{
		ID:           w.id,
		HostID:       w.snapshot.HostID,
		ClientID:     w.snapshot.ClientID,
		State:        w.state,
		Selection:    w.selection.Clone(),
		Tiers:        slices.Clone(w.snapshot.Tiers),
		HostServices: w.snapshot.HostServices.List(),
		InFlight:     w.inFlight,
		LastError:    w.lastErr,
		UpdatedAt:    w.updatedAt,
	}
	if w.selection.HasDate() {
		// правила уже проверены при выборе даты
		view.Slots, _ = availability.ResolveSlots(w.selection.Date, w.snapshot.Rules)
	}
	if w.receipt != nil {
		receipt := *w.receipt
		view.Receipt = &receipt
	}
	return view
}

// SelectDate выбирает дату. Разрешено на шагах select_date и select_time
// Выбранное время сохраняется, только если оно есть среди слотов новой даты
func (w *Workflow) SelectDate(date time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectDate(date)
}

func (w *Workflow) selectDate(date time.Time) error {
	if err := w.requireState(StateSelectDate, StateSelectTime); err != nil {
		return err
	}

	date = domain.DateOnly(date)
	if !availability.IsDateAvailable(date, w.snapshot.Rules) {
		return fmt.Errorf("%w: %s", ErrDateUnavailable, date.Format(domain.DateFormat))
	}

	slots, err := availability.ResolveSlots(date, w.snapshot.Rules)
	if err != nil {
		w.deps.Logger.Error("SelectDate: flow=%s host=%d has misconfigured rules: %v", w.id, w.snapshot.HostID, err)
		return err
	}
	if len(slots) == 0 {
		return fmt.Errorf("%w: %s has no slots", ErrDateUnavailable, date.Format(domain.DateFormat))
	}

	w.selection.Date = date
	if w.selection.HasTime() && !availability.ContainsSlot(slots, w.selection.Time) {
		w.selection.Time = ""
	}
	w.touch()
	return nil
}

// SelectTime выбирает время из слотов выбранной даты. Разрешено на шаге select_time
// Время приводится к HH:MM, поэтому "9:00" совпадает со слотом "09:00"
func (w *Workflow) SelectTime(t types.TimeString) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectTime(t)
}

func (w *Workflow) selectTime(raw types.TimeString) error {
	if err := w.requireState(StateSelectTime); err != nil {
		return err
	}
	if !w.selection.HasDate() {
		return fmt.Errorf("%w: date", ErrMissingSelection)
	}
	t, err := types.NewTimeStringFromString(raw.String())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSlotUnavailable, err)
	}

	slots, err := availability.ResolveSlots(w.selection.Date, w.snapshot.Rules)
	if err != nil {
		return err
	}
	if !availability.ContainsSlot(slots, t) {
		return fmt.Errorf("%w: %s", ErrSlotUnavailable, t)
	}

	w.selection.Time = t
	w.touch()
	return nil
}

// SelectTier выбирает тариф по длительности. Разрешено на шагах select_time и select_services
func (w *Workflow) SelectTier(durationMinutes int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectTier(durationMinutes)
}

func (w *Workflow) selectTier(durationMinutes int) error {
	if err := w.requireState(StateSelectTime, StateSelectServices); err != nil {
		return err
	}

	if durationMinutes == w.snapshot.FreeCallDuration && !w.snapshot.Settings.AllowFreeCalls {
		return ErrFreeCallsDisabled
	}

	for _, tier := range w.snapshot.Tiers {
		if tier.DurationMinutes == durationMinutes && tier.IsActive {
			selected := tier
			w.selection.Tier = &selected
			w.touch()
			return nil
		}
	}
	return fmt.Errorf("%w: %d minutes", ErrTierUnavailable, durationMinutes)
}

// SetAddOn выбирает или снимает услугу. Разрешено на шаге select_services
// Снять услугу можно всегда, выбрать - только разрешённую платформой и включенную хостом
func (w *Workflow) SetAddOn(addOn domain.AddOn, selected bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.setAddOn(addOn, selected)
}

// ToggleAddOn переключает услугу и возвращает новое значение
func (w *Workflow) ToggleAddOn(addOn domain.AddOn) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	selected := !w.selection.AddOns.Has(addOn)
	if err := w.setAddOn(addOn, selected); err != nil {
		return !selected, err
	}
	return selected, nil
}

func (w *Workflow) setAddOn(addOn domain.AddOn, selected bool) error {
	if err := w.requireState(StateSelectServices); err != nil {
		return err
	}
	if _, err := domain.ParseAddOn(string(addOn)); err != nil {
		return err
	}

	if !selected {
		delete(w.selection.AddOns, addOn)
		w.touch()
		return nil
	}

	if !w.snapshot.Settings.AddOnAllowed(addOn) {
		return fmt.Errorf("%w: %s", ErrAddOnDisabled, addOn)
	}
	if !w.snapshot.HostServices.Has(addOn) {
		return fmt.Errorf("%w: %s", ErrAddOnNotOffered, addOn)
	}

	if w.selection.AddOns == nil {
		w.selection.AddOns = make(domain.AddOnSet)
	}
	w.selection.AddOns[addOn] = true
	w.touch()
	return nil
}

// SelectionUpdate изменения выбора, применяемые одной операцией
// nil-поля не меняются
type SelectionUpdate struct {
	Date            *time.Time
	Time            *types.TimeString
	DurationMinutes *int
	AddOns          map[domain.AddOn]bool
}

// Update применяет изменения по порядку: дата, время, тариф, услуги (в порядке domain.AllAddOns)
// Изменения атомарны: при первой ошибке выбор возвращается к состоянию до вызова
func (w *Workflow) Update(u SelectionUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	before := w.selection.Clone()
	updatedAt := w.updatedAt

	if err := w.applyUpdate(u); err != nil {
		w.selection = before
		w.updatedAt = updatedAt
		return err
	}
	return nil
}

func (w *Workflow) applyUpdate(u SelectionUpdate) error {
	if u.Date != nil {
		if err := w.selectDate(*u.Date); err != nil {
			return err
		}
	}
	if u.Time != nil {
		if err := w.selectTime(*u.Time); err != nil {
			return err
		}
	}
	if u.DurationMinutes != nil {
		if err := w.selectTier(*u.DurationMinutes); err != nil {
			return err
		}
	}
	for _, addOn := range domain.AllAddOns {
		selected, ok := u.AddOns[addOn]
		if !ok {
			continue
		}
		if err := w.setAddOn(addOn, selected); err != nil {
			return err
		}
	}
	return nil
}

// Quote рассчитывает стоимость текущего выбора по актуальным ставкам
func (w *Workflow) Quote(ctx context.Context) (domain.ChargeBreakdown, error) {
	w.mu.Lock()
	if w.state == StateClosed {
		w.mu.Unlock()
		return domain.ChargeBreakdown{}, ErrClosed
	}
	if !w.selection.HasTier() {
		w.mu.Unlock()
		return domain.ChargeBreakdown{}, fmt.Errorf("%w: tier", ErrMissingSelection)
	}
	req := w.quoteRequest(w.selection)
	w.mu.Unlock()

	return w.deps.Pricer.Quote(ctx, req)
}

// Advance переходит на следующий шаг
// На шаге payment выполняет оплату: при успехе переходит в success и один раз публикует бронирование,
// при ошибке остаётся на payment, ошибка доступна через LastError. Оплата не повторяется автоматически
func (w *Workflow) Advance(ctx context.Context) error {
	w.mu.Lock()

	if err := w.checkActive(); err != nil {
		w.mu.Unlock()
		return err
	}

	switch w.state {
	case StateSuccess:
		w.mu.Unlock()
		return fmt.Errorf("%w: %s is final", ErrInvalidTransition, w.state)
	case StatePayment:
		// pay освобождает мьютекс
		return w.pay(ctx)
	}

	if err := w.guard(); err != nil {
		w.lastErr = err
		w.mu.Unlock()
		w.deps.Logger.Warn("Advance: flow=%s stays on %s: %v", w.id, w.state, err)
		return err
	}

	next, _ := w.state.next()
	if next == StatePayment {
		w.reference = uuid.NewString()
		w.attempt = 0
	}
	w.lastErr = nil
	w.moveTo(next)
	w.mu.Unlock()
	return nil
}

// Retreat возвращает на предыдущий шаг
// На host_intro ничего не делает, из success и closed переход запрещён
func (w *Workflow) Retreat() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkActive(); err != nil {
		return err
	}
	if w.state == StateSuccess {
		return fmt.Errorf("%w: %s is final", ErrInvalidTransition, w.state)
	}

	prev, ok := w.state.prev()
	if !ok {
		return nil
	}
	w.lastErr = nil
	w.moveTo(prev)
	return nil
}

// Cancel на шаге payment возвращает к select_services с сохранением выбора,
// на остальных шагах сбрасывает выбор и закрывает процесс
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkActive(); err != nil {
		return err
	}

	switch w.state {
	case StateSuccess:
		return fmt.Errorf("%w: %s is final", ErrInvalidTransition, w.state)
	case StatePayment:
		w.lastErr = nil
		w.moveTo(StateSelectServices)
	default:
		w.closeLocked()
	}
	return nil
}

// Close закрывает процесс из любого состояния
// Результат оплаты, пришедший после закрытия, отбрасывается
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateClosed {
		return
	}
	w.closeLocked()
}

func (w *Workflow) closeLocked() {
	w.generation++
	w.selection = Selection{}
	w.moveTo(StateClosed)
}

// pay вызывается с захваченным мьютексом и освобождает его
func (w *Workflow) pay(ctx context.Context) error {
	if !w.selection.HasDate() || !w.selection.HasTime() || !w.selection.HasTier() {
		w.lastErr = fmt.Errorf("%w: date, time and tier are required for payment", ErrMissingSelection)
		err := w.lastErr
		w.mu.Unlock()
		return err
	}

	selection := w.selection.Clone()
	w.attempt++
	reference := w.reference
	idempotencyKey := fmt.Sprintf("%s-%d", reference, w.attempt)
	generation := w.generation
	w.inFlight = true
	w.lastErr = nil
	w.mu.Unlock()

	booking, err := w.capture(ctx, reference, idempotencyKey, selection)

	w.mu.Lock()
	w.inFlight = false

	if generation != w.generation {
		w.mu.Unlock()
		w.discardLateResult(reference, booking, err)
		return ErrClosed
	}

	if err != nil {
		w.lastErr = err
		w.touch()
		if !errors.Is(err, domain.ErrConfigurationGated) {
			w.deps.Observer.ObservePayment(false)
		}
		w.mu.Unlock()
		w.deps.Logger.Warn("Advance: flow=%s payment for booking=%s failed (attempt %d): %v",
			w.id, reference, w.attempt, err)
		return err
	}

	w.deps.Observer.ObservePayment(true)
	w.receipt = &booking
	w.selection = Selection{}
	w.moveTo(StateSuccess)
	w.mu.Unlock()

	// Из success переходов нет, поэтому событие публикуется ровно один раз.
	// Запись бронирования не должна прерываться отменой запроса клиента
	if err := w.deps.Publisher.Publish(context.WithoutCancel(ctx), booking); err != nil {
		w.deps.Logger.Error("Advance: flow=%s booking=%s payment=%s completion not delivered: %v",
			w.id, booking.Reference, booking.PaymentID, err)
	}
	return nil
}

// capture рассчитывает актуальную стоимость и списывает оплату
func (w *Workflow) capture(ctx context.Context, reference, idempotencyKey string, selection Selection) (domain.Booking, error) {
	breakdown, err := w.deps.Pricer.Quote(ctx, w.quoteRequest(selection))
	if err != nil {
		// услугу или бесплатный тариф могли выключить после открытия процесса
		if errors.Is(err, domain.ErrConfigurationGated) {
			return domain.Booking{}, err
		}
		return domain.Booking{}, fmt.Errorf("%w: quote: %w", ErrPaymentFailed, err)
	}

	addOns := selection.AddOns.List()
	result, err := w.deps.Payments.Capture(ctx, payments.CaptureRequest{
		Amount:           breakdown.Total.Round(domain.CurrencyPrecision),
		BookingReference: reference,
		IdempotencyKey:   idempotencyKey,
		AddOns:           addOns,
		HostID:           w.snapshot.HostID,
		ClientID:         w.snapshot.ClientID,
	})
	if err != nil {
		return domain.Booking{}, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	now := w.deps.Clock.Now()
	return domain.Booking{
		Reference:       reference,
		HostID:          w.snapshot.HostID,
		ClientID:        w.snapshot.ClientID,
		SessionDate:     selection.Date,
		StartTime:       selection.Time,
		DurationMinutes: selection.Tier.DurationMinutes,
		AddOns:          addOns,
		Charge:          breakdown,
		PaymentID:       result.PaymentID,
		Status:          domain.StatusConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (w *Workflow) discardLateResult(reference string, booking domain.Booking, err error) {
	if err != nil {
		w.deps.Logger.Warn("Advance: flow=%s closed during payment for booking=%s, failure discarded: %v",
			w.id, reference, err)
		return
	}
	w.deps.Logger.Error("Advance: flow=%s closed during payment, captured payment=%s for booking=%s discarded",
		w.id, booking.PaymentID, reference)
}

func (w *Workflow) quoteRequest(selection Selection) charges.QuoteRequest {
	return charges.QuoteRequest{
		ClientID: w.snapshot.ClientID,
		Tier:     *selection.Tier,
		FreeTier: selection.Tier.DurationMinutes == w.snapshot.FreeCallDuration,
		AddOns:   selection.AddOns.Clone(),
	}
}

// guard проверяет данные, необходимые для выхода из текущего шага
// Условия накопительные: после select_time должны быть дата, время и тариф
func (w *Workflow) guard() error {
	var missing []string
	switch w.state {
	case StateSelectDate:
		if !w.selection.HasDate() {
			missing = append(missing, "date")
		}
	case StateSelectTime:
		if !w.selection.HasDate() {
			missing = append(missing, "date")
		}
		if !w.selection.HasTime() {
			missing = append(missing, "time")
		}
		if !w.selection.HasTier() {
			missing = append(missing, "tier")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSelection, strings.Join(missing, ", "))
	}
	return nil
}

func (w *Workflow) checkActive() error {
	if w.state == StateClosed {
		return ErrClosed
	}
	if w.inFlight {
		return ErrOperationInFlight
	}
	return nil
}

func (w *Workflow) requireState(allowed ...State) error {
	if err := w.checkActive(); err != nil {
		return err
	}
	if !slices.Contains(allowed, w.state) {
		return fmt.Errorf("%w: not allowed on %s", ErrInvalidTransition, w.state)
	}
	return nil
}

func (w *Workflow) moveTo(next State) {
	from := w.state
	w.state = next
	w.touch()
	w.deps.Observer.ObserveTransition(from.String(), next.String())
	w.deps.Logger.Info("Workflow: flow=%s host=%d client=%d %s -> %s",
		w.id, w.snapshot.HostID, w.snapshot.ClientID, from, next)
}

func (w *Workflow) touch() {
	w.updatedAt = w.deps.Clock.Now()
}
