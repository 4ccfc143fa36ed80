package charges

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// QuoteRequest данные для расчёта стоимости бронирования
type QuoteRequest struct {
	ClientID int64
	Tier     domain.PricingTier
	FreeTier bool // тариф является бесплатной консультацией
	AddOns   domain.AddOnSet
}

// Service рассчитывает стоимость бронирования
// Настройки платформы читаются при каждом расчёте: администратор может изменить цены между запросами
type Service struct {
	settings    SettingsProvider
	testAccount *TestAccountPolicy
	logger      Logger
}

// NewService создает новый экземпляр сервиса расчёта
func NewService(settings SettingsProvider, testAccount *TestAccountPolicy, logger Logger) *Service {
	return &Service{
		settings:    settings,
		testAccount: testAccount,
		logger:      logger,
	}
}

// Quote возвращает разбивку стоимости для выбранного тарифа и услуг
// Флаги платформы проверяются по актуальным настройкам: выключенная услуга или
// бесплатный тариф дают ошибку domain.ErrConfigurationGated
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (domain.ChargeBreakdown, error) {
	if req.Tier.Price.IsNegative() {
		return domain.ChargeBreakdown{}, fmt.Errorf("%w: tier price must not be negative", ErrInvalidInput)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Error("Quote: failed to read platform settings: %v", err)
		return domain.ChargeBreakdown{}, fmt.Errorf("%w: Quote - settings: %v", ErrSettingsUnavailable, err)
	}

	if err := checkGates(settings, req); err != nil {
		s.logger.Warn("Quote: client=%d selection is gated: %v", req.ClientID, err)
		return domain.ChargeBreakdown{}, err
	}

	basePrice := req.Tier.Price
	addOnTotal := ComputeAddOnTotal(req.AddOns, settings.AddOnPrices)

	if s.testAccount.Applies(req.ClientID) {
		basePrice = decimal.Zero
		addOnTotal = decimal.Zero
	}

	return NewSplitter(settings).Split(basePrice, addOnTotal), nil
}

func checkGates(settings domain.PlatformSettings, req QuoteRequest) error {
	if req.FreeTier && !settings.AllowFreeCalls {
		return ErrFreeCallsDisabled
	}
	for _, a := range req.AddOns.List() {
		if !settings.AddOnAllowed(a) {
			return fmt.Errorf("%w: %s", ErrAddOnDisabled, a)
		}
	}
	return nil
}
