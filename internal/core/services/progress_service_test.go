package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/progress"
	"github.com/comitanigiacomo/smokefree-tracker/internal/observability"
)

func newProgressFixture(t *testing.T) (*ProgressService, *MockQuitProfileRepository, *MockCheckInRepository, *observability.Metrics) {
	t.Helper()
	metrics, err := observability.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	profiles := new(MockQuitProfileRepository)
	checkIns := new(MockCheckInRepository)
	service := NewProgressService(profiles, checkIns, 30, metrics).WithClock(fixedClock(testNow))
	return service, profiles, checkIns, metrics
}

func TestProgressService_GetSummary(t *testing.T) {
	t.Parallel()

	t.Run("Success: Should summarize profile and recent check-ins", func(t *testing.T) {
		service, profiles, checkIns, metrics := newProgressFixture(t)
		today := domain.TruncateToDay(testNow)

		profiles.On("GetByUserID", mock.Anything, "user-1").Return(&domain.QuitProfile{
			UserID:            "user-1",
			QuitDate:          today.AddDate(0, 0, -14),
			CigarettesPerDay:  15,
			CostPerPack:       12.50,
			CigarettesPerPack: 20,
		}, nil)
		checkIns.On("ListByUserID", mock.Anything, "user-1", today.AddDate(0, 0, -30), testNow).Return([]*domain.CheckIn{
			{CravingIntensity: 3, Mood: "motivated"},
			{CravingIntensity: 5, Mood: "Motivated"},
			{CravingIntensity: 4, Mood: "tired"},
		}, nil)

		summary, err := service.GetSummary(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, 14, summary.DaysSinceQuit)
		assert.Equal(t, 210, summary.CigarettesAvoided)
		assert.InDelta(t, 131.25, summary.MoneySaved, 0.0001)
		assert.Equal(t, 3, summary.HealthSnapshot.RecentCheckInCount)
		assert.InDelta(t, 4.0, summary.HealthSnapshot.AverageCravingIntensity, 0.0001)
		assert.Equal(t, "Motivated", summary.HealthSnapshot.MostCommonMood)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProgressComputed.WithLabelValues(SummarySourceProfile)))
	})

	t.Run("Success: Missing profile yields the default summary", func(t *testing.T) {
		service, profiles, checkIns, metrics := newProgressFixture(t)

		profiles.On("GetByUserID", mock.Anything, "new-user").Return(nil, domain.ErrQuitProfileNotFound)
		checkIns.On("ListByUserID", mock.Anything, "new-user", mock.Anything, mock.Anything).Return([]*domain.CheckIn{}, nil)

		summary, err := service.GetSummary(context.Background(), "new-user")

		require.NoError(t, err)
		assert.Equal(t, progress.Default(), summary)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProgressComputed.WithLabelValues(SummarySourceDefault)))
	})

	t.Run("Fail: Storage error aborts the summary", func(t *testing.T) {
		service, profiles, checkIns, _ := newProgressFixture(t)
		boom := errors.New("db down")

		profiles.On("GetByUserID", mock.Anything, "user-1").Return(nil, boom)
		checkIns.On("ListByUserID", mock.Anything, "user-1", mock.Anything, mock.Anything).Return([]*domain.CheckIn{}, nil)

		summary, err := service.GetSummary(context.Background(), "user-1")

		assert.ErrorIs(t, err, boom)
		assert.Nil(t, summary)
	})

	t.Run("Fail: Empty user id", func(t *testing.T) {
		service, _, _, _ := newProgressFixture(t)

		_, err := service.GetSummary(context.Background(), "")

		assert.ErrorIs(t, err, domain.ErrUserIDRequired)
	})
}

func TestProgressService_DemoSummary(t *testing.T) {
	service := NewProgressService(nil, nil, 0, nil).WithClock(fixedClock(testNow))

	summary, err := service.DemoSummary()

	require.NoError(t, err)
	assert.Equal(t, 15, summary.DaysSinceQuit)
	assert.Equal(t, 225, summary.CigarettesAvoided)
	assert.InDelta(t, 140.63, summary.MoneySaved, 0.0001)
	assert.Equal(t, 7, summary.HealthSnapshot.RecentCheckInCount)
	assert.InDelta(t, 4.3, summary.HealthSnapshot.AverageCravingIntensity, 0.0001)
	assert.Equal(t, "Motivated", summary.HealthSnapshot.MostCommonMood)
}
