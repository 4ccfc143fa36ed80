package open_booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/internal/service/pricing"
	"github.com/m04kA/SMC-SessionBooking/internal/workflow"
)

// UseCase use case открытия процесса бронирования
type UseCase struct {
	rules           RulesProvider
	catalog         CatalogLoader
	settings        SettingsProvider
	registry        FlowRegistry
	deps            workflow.Dependencies
	defaultSettings domain.PlatformSettings
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// defaultSettings используются, если настройки платформы прочитать не удалось
func NewUseCase(
	rules RulesProvider,
	catalog CatalogLoader,
	settings SettingsProvider,
	registry FlowRegistry,
	deps workflow.Dependencies,
	defaultSettings domain.PlatformSettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		rules:           rules,
		catalog:         catalog,
		settings:        settings,
		registry:        registry,
		deps:            deps,
		defaultSettings: defaultSettings,
		logger:          logger,
	}
}

// Execute читает правила, тарифы и настройки платформы параллельно, создает и регистрирует процесс
// Ошибки чтения не прерывают открытие: клиент увидит пустой календарь или пустой список тарифов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("OpenBooking: client=%d, host=%d", req.ClientID, req.HostID)

	// 1. Валидация входных данных
	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}
	if req.HostID <= 0 {
		return nil, fmt.Errorf("%w: hostID must be positive", ErrInvalidInput)
	}

	// 2. Читаем снимки источников
	snapshot, err := uc.loadSnapshot(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Создаем и регистрируем процесс
	flow := workflow.New(uuid.NewString(), snapshot, uc.deps)
	uc.registry.Register(flow)

	uc.logger.Info("OpenBooking: flow=%s opened for client=%d host=%d, tiers=%d, weekly rules=%d, dated rules=%d",
		flow.ID(), req.ClientID, req.HostID, len(snapshot.Tiers), len(snapshot.Rules.Weekly), len(snapshot.Rules.Dates))

	return &Response{Flow: flow, View: flow.View()}, nil
}

func (uc *UseCase) loadSnapshot(ctx context.Context, req *Request) (workflow.Snapshot, error) {
	snapshot := workflow.Snapshot{
		HostID:           req.HostID,
		ClientID:         req.ClientID,
		Tiers:            []domain.PricingTier{},
		HostServices:     domain.NewAddOnSet(),
		Settings:         uc.defaultSettings,
		FreeCallDuration: uc.catalog.FreeCallDuration(),
	}

	var (
		rules    domain.RuleSet
		catalog  *pricing.Catalog
		settings domain.PlatformSettings
		rulesOK  bool
		tiersOK  bool
		setOK    bool
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		rules, err = uc.rules.GetRules(gCtx, req.HostID)
		if err != nil {
			uc.logger.Warn("OpenBooking: rules unavailable for host=%d, calendar will be empty: %v", req.HostID, err)
			return nil
		}
		rulesOK = true
		return nil
	})

	g.Go(func() error {
		var err error
		catalog, err = uc.catalog.LoadCatalog(gCtx, req.HostID)
		if err != nil {
			uc.logger.Warn("OpenBooking: pricing unavailable for host=%d, no tiers offered: %v", req.HostID, err)
			return nil
		}
		tiersOK = true
		return nil
	})

	g.Go(func() error {
		var err error
		settings, err = uc.settings.Get(gCtx)
		if err != nil {
			uc.logger.Warn("OpenBooking: platform settings unavailable, using defaults: %v", err)
			return nil
		}
		setOK = true
		return nil
	})

	if err := g.Wait(); err != nil {
		return workflow.Snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return workflow.Snapshot{}, err
	}

	if rulesOK {
		snapshot.Rules = rules
	}
	if tiersOK {
		snapshot.Tiers = catalog.ActiveTiers()
		snapshot.HostServices = catalog.HostServices()
	}
	if setOK {
		snapshot.Settings = settings
	}

	return snapshot, nil
}
