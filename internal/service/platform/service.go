package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	platformRepo "github.com/m04kA/SMC-SessionBooking/internal/infra/storage/platform"
	"github.com/m04kA/SMC-SessionBooking/internal/service/platform/models"
)

// Service сервис настроек платформы
// Настройки хранятся одной строкой в БД; пока строки нет, действуют значения из конфига
type Service struct {
	repo      SettingsRepository
	txManager TransactionManager
	defaults  domain.PlatformSettings
	adminIDs  map[int64]struct{}
	logger    Logger
}

// NewService создает новый экземпляр сервиса настроек платформы
func NewService(
	repo SettingsRepository,
	txManager TransactionManager,
	defaults domain.PlatformSettings,
	adminIDs []int64,
	logger Logger,
) *Service {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &Service{
		repo:      repo,
		txManager: txManager,
		defaults:  defaults,
		adminIDs:  admins,
		logger:    logger,
	}
}

// Get возвращает действующие настройки платформы
func (s *Service) Get(ctx context.Context) (domain.PlatformSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, platformRepo.ErrSettingsNotFound) {
			return s.defaults, nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return domain.PlatformSettings{}, fmt.Errorf("%w: Get - repository error: %v", ErrSettingsUnavailable, err)
	}
	return *settings, nil
}

// GetSettings возвращает настройки платформы в виде DTO
// Публичный метод - доступен всем
func (s *Service) GetSettings(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(settings), nil
}

// Update обновляет настройки платформы
// Доступно только администраторам, поддерживает частичное обновление
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	// 1. Проверяем права доступа
	if !s.isAdmin(req.UserID) {
		s.logger.Warn("Update: user=%d is not a platform admin", req.UserID)
		return nil, ErrAccessDenied
	}

	var saved *domain.PlatformSettings
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Читаем текущие настройки и применяем изменения к копии
		current, err := s.Get(txCtx)
		if err != nil {
			return err
		}
		updated := current
		req.ApplyToSettings(&updated)

		// 3. Валидируем
		if err := validateSettings(&updated); err != nil {
			return err
		}

		// 4. Сохраняем
		saved, err = s.repo.Save(txCtx, &updated)
		if err != nil {
			return fmt.Errorf("%w: Update - repository error: %v", ErrSettingsUnavailable, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Update: settings not updated by user=%d: %v", req.UserID, err)
		return nil, err
	}

	s.logger.Info("Update: settings updated by user=%d (commission=%s, tax=%s, freeCalls=%t)",
		req.UserID, saved.CommissionRate.String(), saved.TaxRate.String(), saved.AllowFreeCalls)
	return models.FromDomainSettings(*saved), nil
}

// isAdmin проверяет, что пользователь является администратором платформы
func (s *Service) isAdmin(userID int64) bool {
	_, ok := s.adminIDs[userID]
	return ok
}
