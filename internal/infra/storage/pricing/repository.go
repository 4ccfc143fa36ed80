package pricing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SessionBooking/pkg/psqlbuilder"
)

const tiersTable = "host_pricing_tiers"

// Repository репозиторий тарифов хостов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByHost читает все тарифы хоста, включая неактивные
func (r *Repository) GetByHost(ctx context.Context, hostID int64) ([]domain.PricingTier, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"host_id",
		"duration_minutes",
		"price",
		"is_active",
		"is_custom",
		"includes_screen_sharing",
		"includes_translation",
		"includes_recording",
		"includes_transcription",
		"updated_at",
	).
		From(tiersTable).
		Where(squirrel.Eq{"host_id": hostID}).
		OrderBy("duration_minutes")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHost - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHost - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	tiers := make([]domain.PricingTier, 0)
	for rows.Next() {
		var tier domain.PricingTier
		var updatedAt sql.NullTime
		err := rows.Scan(
			&tier.HostID,
			&tier.DurationMinutes,
			&tier.Price,
			&tier.IsActive,
			&tier.IsCustom,
			&tier.IncludesScreenSharing,
			&tier.IncludesTranslation,
			&tier.IncludesRecording,
			&tier.IncludesTranscription,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByHost - scan row: %v", ErrScanRow, err)
		}
		tier.UpdatedAt = updatedAt.Time
		tiers = append(tiers, tier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByHost - rows error: %v", ErrScanRow, err)
	}

	return tiers, nil
}

// Upsert сохраняет тарифы одним запросом, ключ - (host_id, duration_minutes)
func (r *Repository) Upsert(ctx context.Context, tiers []domain.PricingTier) error {
	if len(tiers) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(tiersTable).
		Columns(
			"host_id",
			"duration_minutes",
			"price",
			"is_active",
			"is_custom",
			"includes_screen_sharing",
			"includes_translation",
			"includes_recording",
			"includes_transcription",
		)

	for _, tier := range tiers {
		insertBuilder = insertBuilder.Values(
			tier.HostID,
			tier.DurationMinutes,
			tier.Price,
			tier.IsActive,
			tier.IsCustom,
			tier.IncludesScreenSharing,
			tier.IncludesTranslation,
			tier.IncludesRecording,
			tier.IncludesTranscription,
		)
	}

	query, args, err := insertBuilder.
		Suffix(`ON CONFLICT (host_id, duration_minutes) DO UPDATE SET
			price = EXCLUDED.price,
			is_active = EXCLUDED.is_active,
			is_custom = EXCLUDED.is_custom,
			includes_screen_sharing = EXCLUDED.includes_screen_sharing,
			includes_translation = EXCLUDED.includes_translation,
			includes_recording = EXCLUDED.includes_recording,
			includes_transcription = EXCLUDED.includes_transcription,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
