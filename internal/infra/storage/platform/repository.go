package platform

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SessionBooking/pkg/psqlbuilder"
)

const (
	settingsTable = "platform_settings"

	// singletonID настройки платформы хранятся одной строкой
	singletonID = 1
)

var settingsColumns = []string{
	"allow_free_calls",
	"allow_screen_sharing",
	"allow_translation",
	"allow_recording",
	"allow_transcription",
	"commission_rate",
	"tax_rate",
	"screen_sharing_price",
	"translation_price",
	"recording_price",
	"transcription_price",
	"updated_at",
}

// Repository репозиторий настроек платформы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек платформы
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает настройки платформы
// Возвращает ErrSettingsNotFound, если администратор ещё ничего не сохранял
func (r *Repository) Get(ctx context.Context) (*domain.PlatformSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From(settingsTable).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.PlatformSettings
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.AllowFreeCalls,
		&s.AllowScreenSharing,
		&s.AllowTranslation,
		&s.AllowRecording,
		&s.AllowTranscription,
		&s.CommissionRate,
		&s.TaxRate,
		&s.AddOnPrices.ScreenSharing,
		&s.AddOnPrices.Translation,
		&s.AddOnPrices.Recording,
		&s.AddOnPrices.Transcription,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

// Save сохраняет настройки платформы (insert или update единственной строки)
func (r *Repository) Save(ctx context.Context, s *domain.PlatformSettings) (*domain.PlatformSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(settingsTable).
		Columns(
			"id",
			"allow_free_calls",
			"allow_screen_sharing",
			"allow_translation",
			"allow_recording",
			"allow_transcription",
			"commission_rate",
			"tax_rate",
			"screen_sharing_price",
			"translation_price",
			"recording_price",
			"transcription_price",
		).
		Values(
			singletonID,
			s.AllowFreeCalls,
			s.AllowScreenSharing,
			s.AllowTranslation,
			s.AllowRecording,
			s.AllowTranscription,
			s.CommissionRate,
			s.TaxRate,
			s.AddOnPrices.ScreenSharing,
			s.AddOnPrices.Translation,
			s.AddOnPrices.Recording,
			s.AddOnPrices.Transcription,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			allow_free_calls = EXCLUDED.allow_free_calls,
			allow_screen_sharing = EXCLUDED.allow_screen_sharing,
			allow_translation = EXCLUDED.allow_translation,
			allow_recording = EXCLUDED.allow_recording,
			allow_transcription = EXCLUDED.allow_transcription,
			commission_rate = EXCLUDED.commission_rate,
			tax_rate = EXCLUDED.tax_rate,
			screen_sharing_price = EXCLUDED.screen_sharing_price,
			translation_price = EXCLUDED.translation_price,
			recording_price = EXCLUDED.recording_price,
			transcription_price = EXCLUDED.transcription_price,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	saved := *s
	saved.UpdatedAt = updatedAt.Time
	return &saved, nil
}
