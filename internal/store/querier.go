// internal/store/querier.go
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"gitrank/internal/model"
)

// Querier is the store interface consumed by the ingest, dashboard and
// backfill packages. Unit tests mock it.
type Querier interface {
	CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error)
	GetUserByGithubID(ctx context.Context, githubID int64) (model.User, error)
	SetUserActiveByGithubID(ctx context.Context, arg SetUserActiveByGithubIDParams) (model.User, error)
	CreateRepository(ctx context.Context, arg CreateRepositoryParams) (model.Repository, error)
	GetRepositoryByGithubID(ctx context.Context, githubID int64) (model.Repository, error)
	CreateActivity(ctx context.Context, arg CreateActivityParams) (model.Activity, error)
	CreateActivities(ctx context.Context, arg []CreateActivityParams) (int64, error)
	GetLatestActivityTimeForRepo(ctx context.Context, arg GetLatestActivityTimeForRepoParams) (pgtype.Timestamptz, error)
	GetGlobalStats(ctx context.Context) (GlobalStatsRow, error)
	GetLeaderboardRows(ctx context.Context) ([]LeaderboardRow, error)
	GetRecentActivities(ctx context.Context, limit int32) ([]RecentActivityRow, error)
	GetDailyActivityCounts(ctx context.Context, since time.Time) ([]DailyActivityCountRow, error)
	GetRepositoryBreakdown(ctx context.Context, limit int32) ([]RepositoryBreakdownRow, error)
}

var _ Querier = (*Queries)(nil)
