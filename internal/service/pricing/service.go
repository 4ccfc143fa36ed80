package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/internal/service/pricing/models"
	"github.com/m04kA/SMC-SessionBooking/pkg/ptr"
	"github.com/m04kA/SMC-SessionBooking/pkg/txmanager"
)

// Service управляет каталогом тарифов хоста
// Все изменения выполняются в serializable транзакции: чтение каталога, проверка лимита и запись атомарны
type Service struct {
	tierRepo         TierRepository
	settings         SettingsProvider
	txManager        TransactionManager
	metrics          MetricsRecorder
	logger           Logger
	freeCallDuration int
}

// NewService создает новый экземпляр сервиса тарифов
func NewService(
	tierRepo TierRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
	freeCallDuration int,
) *Service {
	return &Service{
		tierRepo:         tierRepo,
		settings:         settings,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
		freeCallDuration: freeCallDuration,
	}
}

// FreeCallDuration длительность бесплатного тарифа
func (s *Service) FreeCallDuration() int {
	return s.freeCallDuration
}

// LoadCatalog читает каталог хоста одним запросом (используется клиентским флоу)
func (s *Service) LoadCatalog(ctx context.Context, hostID int64) (*Catalog, error) {
	if hostID <= 0 {
		return nil, fmt.Errorf("%w: hostID must be positive", ErrInvalidInput)
	}

	var catalog *Catalog
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		catalog, err = s.loadCatalog(txCtx, hostID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// GetCatalog возвращает все тарифы хоста
func (s *Service) GetCatalog(ctx context.Context, hostID int64) (*models.CatalogResponse, error) {
	catalog, err := s.LoadCatalog(ctx, hostID)
	if err != nil {
		s.logger.Error("GetCatalog: host=%d: %v", hostID, err)
		return nil, err
	}
	return s.toResponse(catalog), nil
}

// Activate активирует тариф хоста (или создаёт новый)
func (s *Service) Activate(ctx context.Context, userID, hostID int64, req *models.ActivateTierRequest) (*models.TierResponse, error) {
	// 1. Проверяем права
	if err := s.checkOwner(userID, hostID); err != nil {
		s.logger.Warn("Activate: user=%d tried to modify pricing of host=%d", userID, hostID)
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	// 2. Читаем каталог, активируем, сохраняем
	var activated domain.PricingTier
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		catalog, err := s.loadCatalog(txCtx, hostID)
		if err != nil {
			return err
		}

		activated, err = catalog.Activate(s.toActivateRequest(catalog, req))
		if err != nil {
			return err
		}

		if err := s.tierRepo.Upsert(txCtx, []domain.PricingTier{activated}); err != nil {
			return fmt.Errorf("%w: Activate - upsert: %w", ErrPricingUnavailable, err)
		}
		return nil
	})
	if err != nil {
		err = wrapTxError("Activate", err)
		if errors.Is(err, ErrTooManyActiveTiers) {
			s.metrics.ObserveCapacityRejection()
		}
		s.logger.Warn("Activate: host=%d duration=%d rejected: %v", hostID, req.DurationMinutes, err)
		return nil, err
	}

	s.logger.Info("Activate: host=%d duration=%d price=%s", hostID, activated.DurationMinutes, activated.Price.String())
	return ptr.Ptr(models.FromDomainTier(activated, s.freeCallDuration)), nil
}

// Deactivate выключает тариф хоста. Отсутствующий тариф не является ошибкой
func (s *Service) Deactivate(ctx context.Context, userID, hostID int64, durationMinutes int) error {
	if err := s.checkOwner(userID, hostID); err != nil {
		s.logger.Warn("Deactivate: user=%d tried to modify pricing of host=%d", userID, hostID)
		return err
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		catalog, err := s.loadCatalog(txCtx, hostID)
		if err != nil {
			return err
		}

		tier, ok := catalog.Deactivate(durationMinutes)
		if !ok {
			return nil
		}

		if err := s.tierRepo.Upsert(txCtx, []domain.PricingTier{tier}); err != nil {
			return fmt.Errorf("%w: Deactivate - upsert: %w", ErrPricingUnavailable, err)
		}
		return nil
	})
	if err != nil {
		err = wrapTxError("Deactivate", err)
		s.logger.Error("Deactivate: host=%d duration=%d: %v", hostID, durationMinutes, err)
		return err
	}

	s.logger.Info("Deactivate: host=%d duration=%d", hostID, durationMinutes)
	return nil
}

// SetAddOnInclusion включает или выключает услугу сразу во всех активных тарифах хоста
func (s *Service) SetAddOnInclusion(ctx context.Context, userID, hostID int64, addOn domain.AddOn, included bool) (*models.CatalogResponse, error) {
	if err := s.checkOwner(userID, hostID); err != nil {
		s.logger.Warn("SetAddOnInclusion: user=%d tried to modify pricing of host=%d", userID, hostID)
		return nil, err
	}
	if _, err := domain.ParseAddOn(string(addOn)); err != nil {
		return nil, err
	}

	var catalog *Catalog
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		settings, err := s.settings.Get(txCtx)
		if err != nil {
			return fmt.Errorf("%w: SetAddOnInclusion - settings: %v", ErrPricingUnavailable, err)
		}
		if included && !settings.AddOnAllowed(addOn) {
			return fmt.Errorf("%w: %s", ErrAddOnDisabled, addOn)
		}

		catalog, err = s.loadCatalogWithSettings(txCtx, hostID, settings)
		if err != nil {
			return err
		}

		changed := catalog.SetAddOnInclusion(addOn, included)
		if len(changed) == 0 {
			return nil
		}
		if err := s.tierRepo.Upsert(txCtx, changed); err != nil {
			return fmt.Errorf("%w: SetAddOnInclusion - upsert: %w", ErrPricingUnavailable, err)
		}
		return nil
	})
	if err != nil {
		err = wrapTxError("SetAddOnInclusion", err)
		s.logger.Warn("SetAddOnInclusion: host=%d addOn=%s included=%t: %v", hostID, addOn, included, err)
		return nil, err
	}

	s.logger.Info("SetAddOnInclusion: host=%d addOn=%s included=%t", hostID, addOn, included)
	return s.toResponse(catalog), nil
}

func (s *Service) loadCatalog(ctx context.Context, hostID int64) (*Catalog, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: settings: %v", ErrPricingUnavailable, err)
	}
	return s.loadCatalogWithSettings(ctx, hostID, settings)
}

func (s *Service) loadCatalogWithSettings(ctx context.Context, hostID int64, settings domain.PlatformSettings) (*Catalog, error) {
	tiers, err := s.tierRepo.GetByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("%w: host=%d: %w", ErrPricingUnavailable, hostID, err)
	}
	return NewCatalog(hostID, tiers, Policy{
		AllowFreeCalls:          settings.AllowFreeCalls,
		FreeCallDurationMinutes: s.freeCallDuration,
	}), nil
}

func (s *Service) checkOwner(userID, hostID int64) error {
	if hostID <= 0 {
		return fmt.Errorf("%w: hostID must be positive", ErrInvalidInput)
	}
	if userID != hostID {
		return ErrAccessDenied
	}
	return nil
}

// toActivateRequest переносит nil-флаги запроса на текущие значения тарифа
func (s *Service) toActivateRequest(catalog *Catalog, req *models.ActivateTierRequest) ActivateRequest {
	result := ActivateRequest{
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsCustom:        req.IsCustom,
	}
	if !req.HasFlags() {
		return result
	}

	var current Flags
	if tier, ok := catalog.Tier(req.DurationMinutes); ok {
		current = FlagsFromSet(tier.IncludedAddOns())
	} else {
		current = FlagsFromSet(catalog.HostServices())
	}

	result.Flags = &Flags{
		ScreenSharing: ptr.Deref(req.IncludesScreenSharing, current.ScreenSharing),
		Translation:   ptr.Deref(req.IncludesTranslation, current.Translation),
		Recording:     ptr.Deref(req.IncludesRecording, current.Recording),
		Transcription: ptr.Deref(req.IncludesTranscription, current.Transcription),
	}
	return result
}

func (s *Service) toResponse(catalog *Catalog) *models.CatalogResponse {
	return &models.CatalogResponse{
		HostID:       catalog.HostID(),
		Tiers:        models.FromDomainTiers(catalog.Tiers(), s.freeCallDuration),
		ActiveCount:  catalog.ActiveCount(),
		MaxActive:    domain.MaxActiveTiers,
		HostServices: models.AddOnNames(catalog.HostServices()),
	}
}

// wrapTxError относит сбой начала или коммита транзакции к недоступности хранилища тарифов
func wrapTxError(op string, err error) error {
	if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
		return fmt.Errorf("%w: %s: %w", ErrPricingUnavailable, op, err)
	}
	return err
}
