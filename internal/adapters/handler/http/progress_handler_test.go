package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

func TestProgressHandler(t *testing.T) {
	t.Run("No profile yields the default summary", func(t *testing.T) {
		env := setupRouter(t, false)

		w, body := env.do(t, http.MethodGet, "/api/v1/progress", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var summary domain.ProgressSummary
		require.NoError(t, json.Unmarshal(body.Data, &summary))
		assert.Zero(t, summary.DaysSinceQuit)
		assert.Zero(t, summary.CigarettesAvoided)
		assert.Equal(t, "N/A", summary.HealthSnapshot.MostCommonMood)
		assert.Equal(t, "Start your smoke-free journey today!", summary.MotivationalMessage)
		for _, m := range summary.MilestoneStatuses {
			assert.False(t, m.Achieved)
		}
	})

	t.Run("Summary reflects profile and check-ins", func(t *testing.T) {
		env := setupRouter(t, false)
		guest := newGuest(t, env)

		w, _ := env.do(t, http.MethodPost, "/api/v1/quit-profile", map[string]any{
			"quitDate":         daysAgo(8),
			"cigarettesPerDay": 10,
			"costPerPack":      10.0,
		}, guest)
		require.Equal(t, http.StatusOK, w.Code)

		for i, mood := range []string{"proud", "proud", "tired"} {
			w, _ := env.do(t, http.MethodPost, "/api/v1/checkins", map[string]any{
				"date":             daysAgo(i),
				"cravingIntensity": []int{4, 6, 2}[i],
				"mood":             mood,
			}, guest)
			require.Equal(t, http.StatusCreated, w.Code)
		}

		w, body := env.do(t, http.MethodGet, "/api/v1/progress", nil, guest)
		require.Equal(t, http.StatusOK, w.Code)

		var summary domain.ProgressSummary
		require.NoError(t, json.Unmarshal(body.Data, &summary))
		assert.Equal(t, 8, summary.DaysSinceQuit)
		assert.Equal(t, 80, summary.CigarettesAvoided)
		assert.InDelta(t, 40.0, summary.MoneySaved, 0.001)
		assert.Equal(t, 3, summary.HealthSnapshot.RecentCheckInCount)
		assert.InDelta(t, 4.0, summary.HealthSnapshot.AverageCravingIntensity, 0.001)
		assert.Equal(t, "Proud", summary.HealthSnapshot.MostCommonMood)

		achieved := map[int]bool{}
		for _, m := range summary.MilestoneStatuses {
			achieved[m.Days] = m.Achieved
		}
		assert.True(t, achieved[1])
		assert.True(t, achieved[7])
		assert.False(t, achieved[30])
	})

	t.Run("Demo summary", func(t *testing.T) {
		env := setupRouter(t, true)

		w, body := env.do(t, http.MethodGet, "/api/v1/progress", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var summary domain.ProgressSummary
		require.NoError(t, json.Unmarshal(body.Data, &summary))
		assert.Equal(t, 15, summary.DaysSinceQuit)
		assert.Equal(t, 225, summary.CigarettesAvoided)
		assert.Equal(t, "Motivated", summary.HealthSnapshot.MostCommonMood)
	})
}
