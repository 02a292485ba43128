// internal/dashboard/service.go

// Package dashboard assembles the aggregated dashboard view. Each read is a
// fresh computation over the store's current contents: nothing here is
// cached, and rank/tier/badge are view functions, not stored state.
package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"gitrank/internal/scoring"
	"gitrank/internal/store"
)

// Service answers dashboard reads.
type Service struct {
	q             store.Querier
	recentLimit   int32
	topRepoLimit  int32
	heatmapMonths int
	now           func() time.Time
}

// NewService creates a dashboard service with the configured result limits.
func NewService(q store.Querier, recentLimit, topRepoLimit, heatmapMonths int) *Service {
	return &Service{
		q:             q,
		recentLimit:   int32(recentLimit),
		topRepoLimit:  int32(topRepoLimit),
		heatmapMonths: heatmapMonths,
		now:           time.Now,
	}
}

// Data is the full dashboard document.
type Data struct {
	Stats          store.GlobalStatsRow           `json:"stats"`
	Leaderboard    []scoring.RankedContributor    `json:"leaderboard"`
	RecentActivity []store.RecentActivityRow      `json:"recentActivity"`
	TierChart      []scoring.TierCount            `json:"tierChart"`
	Heatmap        []store.DailyActivityCountRow  `json:"heatmap"`
	Projects       []store.RepositoryBreakdownRow `json:"projects"`
	HeatmapWindow  string                         `json:"heatmapWindowStart"`
}

// Get runs the fixed set of aggregation queries, then applies ranking,
// tiering and badge evaluation in-process. The queries are independent reads
// and run concurrently; any store fault fails the whole read.
func (s *Service) Get(ctx context.Context) (Data, error) {
	var (
		data Data
		rows []store.LeaderboardRow
	)

	heatmapSince := s.heatmapWindowStart()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.Stats, err = s.q.GetGlobalStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.q.GetLeaderboardRows(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.RecentActivity, err = s.q.GetRecentActivities(gctx, s.recentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		data.Heatmap, err = s.q.GetDailyActivityCounts(gctx, heatmapSince)
		return err
	})
	g.Go(func() error {
		var err error
		data.Projects, err = s.q.GetRepositoryBreakdown(gctx, s.topRepoLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return Data{}, err
	}

	data.Leaderboard = scoring.BuildLeaderboard(rows)
	data.TierChart = scoring.TierDistribution(data.Leaderboard)
	data.HeatmapWindow = heatmapSince.Format("2006-01-02")

	// Empty collections marshal as [], not null.
	if data.Leaderboard == nil {
		data.Leaderboard = []scoring.RankedContributor{}
	}
	if data.RecentActivity == nil {
		data.RecentActivity = []store.RecentActivityRow{}
	}
	if data.Heatmap == nil {
		data.Heatmap = []store.DailyActivityCountRow{}
	}
	if data.Projects == nil {
		data.Projects = []store.RepositoryBreakdownRow{}
	}

	return data, nil
}

// heatmapWindowStart is the first day of the month heatmapMonths back from
// today, in UTC. time.Date normalizes the month subtraction.
func (s *Service) heatmapWindowStart() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month()-time.Month(s.heatmapMonths), 1, 0, 0, 0, 0, time.UTC)
}
