package pricing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/internal/service/pricing/models"
	"github.com/m04kA/SMC-SessionBooking/pkg/ptr"
	"github.com/m04kA/SMC-SessionBooking/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTierRepo struct {
	tiers     map[int]domain.PricingTier
	getErr    error
	upsertErr error
	upserts   [][]domain.PricingTier
}

func newFakeTierRepo(tiers ...domain.PricingTier) *fakeTierRepo {
	repo := &fakeTierRepo{tiers: make(map[int]domain.PricingTier)}
	for _, t := range tiers {
		repo.tiers[t.DurationMinutes] = t
	}
	return repo
}

func (f *fakeTierRepo) GetByHost(ctx context.Context, hostID int64) ([]domain.PricingTier, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	result := make([]domain.PricingTier, 0, len(f.tiers))
	for _, t := range f.tiers {
		result = append(result, t)
	}
	return result, nil
}

func (f *fakeTierRepo) Upsert(ctx context.Context, tiers []domain.PricingTier) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, tiers)
	for _, t := range tiers {
		f.tiers[t.DurationMinutes] = t
	}
	return nil
}

type fakeSettings struct {
	settings domain.PlatformSettings
	err      error
}

func (f *fakeSettings) Get(ctx context.Context) (domain.PlatformSettings, error) {
	return f.settings, f.err
}

type fakeTxManager struct {
	serializable int
	readOnly     int
	commitErr    error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.serializable++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.readOnly++
	return fn(ctx)
}

type fakeMetrics struct {
	capacityRejections int
}

func (f *fakeMetrics) ObserveCapacityRejection() {
	f.capacityRejections++
}

func newTestService(repo *fakeTierRepo, settings domain.PlatformSettings) (*Service, *fakeTxManager, *fakeMetrics) {
	tx := &fakeTxManager{}
	m := &fakeMetrics{}
	return NewService(repo, &fakeSettings{settings: settings}, tx, m, nopLogger{}, domain.FreeCallDurationMinutes), tx, m
}

func TestService_Activate(t *testing.T) {
	repo := newFakeTierRepo()
	svc, tx, _ := newTestService(repo, domain.DefaultPlatformSettings())

	resp, err := svc.Activate(context.Background(), 7, 7, &models.ActivateTierRequest{
		DurationMinutes:     60,
		Price:               price("35"),
		IncludesTranslation: ptr.Ptr(true),
	})

	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.True(t, resp.IsActive)
	assert.True(t, resp.IncludesTranslation)
	assert.Equal(t, 1, tx.serializable)
	require.Len(t, repo.upserts, 1)
	assert.Equal(t, int64(7), repo.upserts[0][0].HostID)
}

func TestService_Activate_AccessDenied(t *testing.T) {
	repo := newFakeTierRepo()
	svc, _, _ := newTestService(repo, domain.DefaultPlatformSettings())

	_, err := svc.Activate(context.Background(), 8, 7, &models.ActivateTierRequest{DurationMinutes: 60, Price: price("35")})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.upserts)
}

func TestService_Activate_CapacityRejectionCounted(t *testing.T) {
	repo := newFakeTierRepo(
		activeTier(15, "10"),
		activeTier(30, "20"),
		activeTier(45, "30"),
		activeTier(60, "40"),
		activeTier(90, "50"),
	)
	svc, _, m := newTestService(repo, domain.DefaultPlatformSettings())

	_, err := svc.Activate(context.Background(), 1, 1, &models.ActivateTierRequest{DurationMinutes: 120, Price: price("60")})

	assert.ErrorIs(t, err, ErrTooManyActiveTiers)
	assert.Equal(t, 1, m.capacityRejections)
	assert.Empty(t, repo.upserts)
}

func TestService_Activate_UpsertFailure(t *testing.T) {
	repo := newFakeTierRepo()
	repo.upsertErr = errors.New("deadlock detected")
	svc, _, _ := newTestService(repo, domain.DefaultPlatformSettings())

	_, err := svc.Activate(context.Background(), 1, 1, &models.ActivateTierRequest{DurationMinutes: 60, Price: price("35")})

	assert.ErrorIs(t, err, ErrPricingUnavailable)
	assert.ErrorIs(t, err, domain.ErrExternalOperation)
}

func TestService_CommitFailureIsExternal(t *testing.T) {
	commitErr := fmt.Errorf("%w: %w", txmanager.ErrCommitTx, &pq.Error{Code: "40001"})

	t.Run("activate", func(t *testing.T) {
		svc, tx, _ := newTestService(newFakeTierRepo(), domain.DefaultPlatformSettings())
		tx.commitErr = commitErr

		_, err := svc.Activate(context.Background(), 1, 1, &models.ActivateTierRequest{DurationMinutes: 60, Price: price("35")})

		assert.ErrorIs(t, err, ErrPricingUnavailable)
		assert.ErrorIs(t, err, domain.ErrExternalOperation)
		assert.True(t, txmanager.IsSerializationFailure(err))
	})

	t.Run("deactivate", func(t *testing.T) {
		svc, tx, _ := newTestService(newFakeTierRepo(activeTier(60, "35")), domain.DefaultPlatformSettings())
		tx.commitErr = commitErr

		err := svc.Deactivate(context.Background(), 1, 1, 60)

		assert.ErrorIs(t, err, domain.ErrExternalOperation)
	})

	t.Run("set add-on inclusion", func(t *testing.T) {
		settings := domain.DefaultPlatformSettings()
		settings.AllowRecording = true
		svc, tx, _ := newTestService(newFakeTierRepo(activeTier(60, "35")), settings)
		tx.commitErr = commitErr

		_, err := svc.SetAddOnInclusion(context.Background(), 1, 1, domain.AddOnRecording, true)

		assert.ErrorIs(t, err, domain.ErrExternalOperation)
	})
}

func TestService_Deactivate(t *testing.T) {
	repo := newFakeTierRepo(activeTier(60, "35"))
	svc, _, _ := newTestService(repo, domain.DefaultPlatformSettings())

	require.NoError(t, svc.Deactivate(context.Background(), 1, 1, 60))
	assert.False(t, repo.tiers[60].IsActive)
	assert.True(t, repo.tiers[60].Price.Equal(activeTier(60, "35").Price))

	// отсутствующий тариф не ошибка и не пишется
	require.NoError(t, svc.Deactivate(context.Background(), 1, 1, 45))
	assert.Len(t, repo.upserts, 1)
}

func TestService_SetAddOnInclusion(t *testing.T) {
	settings := domain.DefaultPlatformSettings()
	settings.AllowRecording = true

	t.Run("applied to all active tiers in one write", func(t *testing.T) {
		repo := newFakeTierRepo(activeTier(30, "20"), activeTier(60, "35"))
		svc, _, _ := newTestService(repo, settings)

		resp, err := svc.SetAddOnInclusion(context.Background(), 1, 1, domain.AddOnRecording, true)

		require.NoError(t, err)
		assert.Equal(t, []string{"recording"}, resp.HostServices)
		require.Len(t, repo.upserts, 1)
		assert.Len(t, repo.upserts[0], 2)
	})

	t.Run("gated by platform", func(t *testing.T) {
		repo := newFakeTierRepo(activeTier(30, "20"))
		svc, _, _ := newTestService(repo, settings)

		_, err := svc.SetAddOnInclusion(context.Background(), 1, 1, domain.AddOnTranslation, true)

		assert.ErrorIs(t, err, ErrAddOnDisabled)
		assert.ErrorIs(t, err, domain.ErrConfigurationGated)
		assert.Empty(t, repo.upserts)
	})

	t.Run("disabling a gated add-on is allowed", func(t *testing.T) {
		tier := activeTier(30, "20")
		tier.IncludesTranslation = true
		repo := newFakeTierRepo(tier)
		svc, _, _ := newTestService(repo, settings)

		_, err := svc.SetAddOnInclusion(context.Background(), 1, 1, domain.AddOnTranslation, false)

		require.NoError(t, err)
		assert.False(t, repo.tiers[30].IncludesTranslation)
	})

	t.Run("unknown add-on", func(t *testing.T) {
		svc, _, _ := newTestService(newFakeTierRepo(), settings)

		_, err := svc.SetAddOnInclusion(context.Background(), 1, 1, domain.AddOn("hologram"), true)

		assert.ErrorIs(t, err, domain.ErrInvalidAddOn)
	})
}

func TestService_GetCatalog(t *testing.T) {
	repo := newFakeTierRepo(activeTier(60, "35.5"), activeTier(30, "20"))
	svc, tx, _ := newTestService(repo, domain.DefaultPlatformSettings())

	resp, err := svc.GetCatalog(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, resp.Tiers, 2)
	assert.Equal(t, 30, resp.Tiers[0].DurationMinutes)
	assert.Equal(t, 2, resp.ActiveCount)
	assert.Equal(t, domain.MaxActiveTiers, resp.MaxActive)
	assert.Equal(t, 1, tx.readOnly)
}

func TestService_GetCatalog_ReadFailure(t *testing.T) {
	repo := newFakeTierRepo()
	repo.getErr = errors.New("connection refused")
	svc, _, _ := newTestService(repo, domain.DefaultPlatformSettings())

	_, err := svc.GetCatalog(context.Background(), 1)

	assert.ErrorIs(t, err, ErrPricingUnavailable)
}
