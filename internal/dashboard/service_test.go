// internal/dashboard/service_test.go
package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gitrank/internal/store"
	"gitrank/internal/store/mocks"
)

func fixedService(q store.Querier) *Service {
	s := NewService(q, 15, 10, 4)
	s.now = func() time.Time {
		return time.Date(2024, time.May, 17, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles the full dashboard document", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		s := fixedService(mockQ)

		stats := store.GlobalStatsRow{TotalCommits: 12, TotalPrs: 3, LinesCode: 4500, TotalReviews: 2, TotalIssuesClosed: 1}
		rows := []store.LeaderboardRow{
			{Username: "ada", Points: 100, Commits: 12},
			{Username: "linus", Points: 50},
			{Username: "grace", Points: 0},
		}
		feed := []store.RecentActivityRow{{ID: 7, Username: "ada", RepoName: "widgets", Type: "PUSH", Points: 1}}
		heat := []store.DailyActivityCountRow{{Date: "2024-05-01", Count: 3}}
		projects := []store.RepositoryBreakdownRow{{Name: "widgets", Commits: 12, Total: 18}}

		// Window: May 2024 minus four months, truncated to the first of January.
		windowStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

		mockQ.On("GetGlobalStats", mock.Anything).Return(stats, nil).Once()
		mockQ.On("GetLeaderboardRows", mock.Anything).Return(rows, nil).Once()
		mockQ.On("GetRecentActivities", mock.Anything, int32(15)).Return(feed, nil).Once()
		mockQ.On("GetDailyActivityCounts", mock.Anything, windowStart).Return(heat, nil).Once()
		mockQ.On("GetRepositoryBreakdown", mock.Anything, int32(10)).Return(projects, nil).Once()

		data, err := s.Get(ctx)

		require.NoError(t, err)
		assert.Equal(t, stats, data.Stats)
		assert.Equal(t, feed, data.RecentActivity)
		assert.Equal(t, heat, data.Heatmap)
		assert.Equal(t, projects, data.Projects)
		assert.Equal(t, "2024-01-01", data.HeatmapWindow)

		require.Len(t, data.Leaderboard, 3)
		assert.Equal(t, 1, data.Leaderboard[0].Rank)
		assert.Equal(t, "S", data.Leaderboard[0].Label)
		assert.Equal(t, "B", data.Leaderboard[1].Label)
		assert.Equal(t, "D", data.Leaderboard[2].Label)

		total := 0
		for _, tc := range data.TierChart {
			total += tc.Count
		}
		assert.Equal(t, 3, total)

		mockQ.AssertExpectations(t)
	})

	t.Run("empty store yields zero KPIs and empty collections", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		s := fixedService(mockQ)

		mockQ.On("GetGlobalStats", mock.Anything).Return(store.GlobalStatsRow{}, nil).Once()
		mockQ.On("GetLeaderboardRows", mock.Anything).Return([]store.LeaderboardRow(nil), nil).Once()
		mockQ.On("GetRecentActivities", mock.Anything, int32(15)).Return([]store.RecentActivityRow(nil), nil).Once()
		mockQ.On("GetDailyActivityCounts", mock.Anything, mock.Anything).Return([]store.DailyActivityCountRow(nil), nil).Once()
		mockQ.On("GetRepositoryBreakdown", mock.Anything, int32(10)).Return([]store.RepositoryBreakdownRow(nil), nil).Once()

		data, err := s.Get(ctx)

		require.NoError(t, err)
		assert.Zero(t, data.Stats.TotalCommits)
		assert.NotNil(t, data.Leaderboard)
		assert.Empty(t, data.Leaderboard)
		assert.NotNil(t, data.RecentActivity)
		assert.NotNil(t, data.Heatmap)
		assert.NotNil(t, data.Projects)
		assert.Len(t, data.TierChart, 5)
	})

	t.Run("a zero-activity active user keeps all-zero metrics", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		s := fixedService(mockQ)

		rows := []store.LeaderboardRow{{Username: "newcomer"}}

		mockQ.On("GetGlobalStats", mock.Anything).Return(store.GlobalStatsRow{}, nil).Once()
		mockQ.On("GetLeaderboardRows", mock.Anything).Return(rows, nil).Once()
		mockQ.On("GetRecentActivities", mock.Anything, mock.Anything).Return([]store.RecentActivityRow(nil), nil).Once()
		mockQ.On("GetDailyActivityCounts", mock.Anything, mock.Anything).Return([]store.DailyActivityCountRow(nil), nil).Once()
		mockQ.On("GetRepositoryBreakdown", mock.Anything, mock.Anything).Return([]store.RepositoryBreakdownRow(nil), nil).Once()

		data, err := s.Get(ctx)

		require.NoError(t, err)
		require.Len(t, data.Leaderboard, 1)
		row := data.Leaderboard[0]
		assert.Equal(t, 1, row.Rank)
		assert.Equal(t, "D", row.Label)
		assert.Zero(t, row.Points)
		assert.Zero(t, row.Commits)
		assert.Zero(t, row.Additions)
		assert.Empty(t, row.Badges)
	})

	t.Run("any store fault fails the whole read", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		s := fixedService(mockQ)

		storeErr := errors.New("connection reset")
		mockQ.On("GetGlobalStats", mock.Anything).Return(store.GlobalStatsRow{}, nil).Maybe()
		mockQ.On("GetLeaderboardRows", mock.Anything).Return([]store.LeaderboardRow(nil), storeErr).Once()
		mockQ.On("GetRecentActivities", mock.Anything, mock.Anything).Return([]store.RecentActivityRow(nil), nil).Maybe()
		mockQ.On("GetDailyActivityCounts", mock.Anything, mock.Anything).Return([]store.DailyActivityCountRow(nil), nil).Maybe()
		mockQ.On("GetRepositoryBreakdown", mock.Anything, mock.Anything).Return([]store.RepositoryBreakdownRow(nil), nil).Maybe()

		_, err := s.Get(ctx)

		assert.ErrorIs(t, err, storeErr)
	})
}
