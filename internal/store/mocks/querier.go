// Package mocks provides a testify mock of store.Querier for unit tests.
package mocks

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/mock"

	"gitrank/internal/model"
	"gitrank/internal/store"
)

// Querier is a mock of the store.Querier interface.
type Querier struct {
	mock.Mock
}

var _ store.Querier = (*Querier)(nil)

func (m *Querier) CreateUser(ctx context.Context, arg store.CreateUserParams) (model.User, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *Querier) GetUserByGithubID(ctx context.Context, githubID int64) (model.User, error) {
	args := m.Called(ctx, githubID)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *Querier) SetUserActiveByGithubID(ctx context.Context, arg store.SetUserActiveByGithubIDParams) (model.User, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *Querier) CreateRepository(ctx context.Context, arg store.CreateRepositoryParams) (model.Repository, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(model.Repository), args.Error(1)
}

func (m *Querier) GetRepositoryByGithubID(ctx context.Context, githubID int64) (model.Repository, error) {
	args := m.Called(ctx, githubID)
	return args.Get(0).(model.Repository), args.Error(1)
}

func (m *Querier) CreateActivity(ctx context.Context, arg store.CreateActivityParams) (model.Activity, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(model.Activity), args.Error(1)
}

func (m *Querier) CreateActivities(ctx context.Context, arg []store.CreateActivityParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Querier) GetLatestActivityTimeForRepo(ctx context.Context, arg store.GetLatestActivityTimeForRepoParams) (pgtype.Timestamptz, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(pgtype.Timestamptz), args.Error(1)
}

func (m *Querier) GetGlobalStats(ctx context.Context) (store.GlobalStatsRow, error) {
	args := m.Called(ctx)
	return args.Get(0).(store.GlobalStatsRow), args.Error(1)
}

func (m *Querier) GetLeaderboardRows(ctx context.Context) ([]store.LeaderboardRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.LeaderboardRow), args.Error(1)
}

func (m *Querier) GetRecentActivities(ctx context.Context, limit int32) ([]store.RecentActivityRow, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]store.RecentActivityRow), args.Error(1)
}

func (m *Querier) GetDailyActivityCounts(ctx context.Context, since time.Time) ([]store.DailyActivityCountRow, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]store.DailyActivityCountRow), args.Error(1)
}

func (m *Querier) GetRepositoryBreakdown(ctx context.Context, limit int32) ([]store.RepositoryBreakdownRow, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]store.RepositoryBreakdownRow), args.Error(1)
}
