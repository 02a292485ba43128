// internal/store/aggregates.go
package store

import (
	"context"
	"time"

	"gitrank/internal/model"
)

// GlobalStatsRow holds the cross-user KPI totals, aggregated over the entire
// activity log (not filtered by the user active flag).
type GlobalStatsRow struct {
	TotalCommits      int64 `json:"totalCommits"`
	TotalPrs          int64 `json:"totalPrs"`
	LinesCode         int64 `json:"linesCode"`
	TotalReviews      int64 `json:"totalReviews"`
	TotalIssuesClosed int64 `json:"totalIssuesClosed"`
}

const getGlobalStats = `
SELECT
    COALESCE(SUM(CASE WHEN type = 'PUSH' THEN 1 ELSE 0 END), 0)::bigint,
    COALESCE(SUM(CASE WHEN type = 'PR_MERGED' THEN 1 ELSE 0 END), 0)::bigint,
    COALESCE(SUM(additions), 0)::bigint,
    COALESCE(SUM(CASE WHEN type = 'CODE_REVIEW' THEN 1 ELSE 0 END), 0)::bigint,
    COALESCE(SUM(CASE WHEN type = 'ISSUE_CLOSED' THEN 1 ELSE 0 END), 0)::bigint
FROM activities
`

// GetGlobalStats computes the dashboard KPI totals. Every aggregate is
// coalesced to zero so an empty log yields all-zero KPIs, never nulls.
func (q *Queries) GetGlobalStats(ctx context.Context) (GlobalStatsRow, error) {
	row := q.db.QueryRow(ctx, getGlobalStats)
	var s GlobalStatsRow
	err := row.Scan(&s.TotalCommits, &s.TotalPrs, &s.LinesCode, &s.TotalReviews, &s.TotalIssuesClosed)
	return s, err
}

// LeaderboardRow is one active user's aggregated metrics. It is a pure
// projection recomputed on every read; nothing here is persisted.
type LeaderboardRow struct {
	Username     string `json:"username"`
	AvatarURL    string `json:"avatar"`
	Points       int64  `json:"points"`
	ProjectCount int64  `json:"projectCount"`
	Commits      int64  `json:"commits"`
	PrsMerged    int64  `json:"prsMerged"`
	PrsOpened    int64  `json:"prsOpened"`
	Reviews      int64  `json:"reviews"`
	IssuesClosed int64  `json:"issuesClosed"`
	Additions    int64  `json:"additions"`
	Deletions    int64  `json:"deletions"`
}

const getLeaderboardRows = `
SELECT
    u.user_name,
    u.avatar_url,
    COALESCE(SUM(a.points), 0)::bigint AS points,
    COUNT(DISTINCT a.repository_id)::bigint,
    COALESCE(SUM(CASE WHEN a.type = 'PUSH' THEN 1 ELSE 0 END), 0)::bigint,
    COALESCE(SUM(CASE WHEN a.type = 'PR_MERGED' THEN 1 ELSE 0 END), 0)::bigint,
    COALESCE(SUM(CASE WHEN a.type = 'PR_OPENED' THEN 1 ELSE 0 END), 0)::bigint,
    COALESCE(SUM(CASE WHEN a.type = 'CODE_REVIEW' THEN 1 ELSE 0 END), 0)::bigint,
    COALESCE(SUM(CASE WHEN a.type = 'ISSUE_CLOSED' THEN 1 ELSE 0 END), 0)::bigint,
    COALESCE(SUM(a.additions), 0)::bigint,
    COALESCE(SUM(a.deletions), 0)::bigint
FROM users u
LEFT JOIN activities a ON a.user_id = u.id
WHERE u.is_active
GROUP BY u.id, u.user_name, u.avatar_url
ORDER BY COALESCE(SUM(a.points), 0) DESC
`

// GetLeaderboardRows aggregates the activity log per active user, ordered by
// points descending. The LEFT JOIN keeps active users with no activities in
// the result with all-zero metrics. Order among equal-points users is
// whatever the grouping produces and is not guaranteed stable across reads.
func (q *Queries) GetLeaderboardRows(ctx context.Context) ([]LeaderboardRow, error) {
	rows, err := q.db.Query(ctx, getLeaderboardRows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LeaderboardRow
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.Username, &r.AvatarURL, &r.Points, &r.ProjectCount,
			&r.Commits, &r.PrsMerged, &r.PrsOpened, &r.Reviews, &r.IssuesClosed,
			&r.Additions, &r.Deletions); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// RecentActivityRow is one feed entry with denormalized display fields.
type RecentActivityRow struct {
	ID        int32              `json:"id"`
	Username  string             `json:"user"`
	AvatarURL string             `json:"avatar"`
	RepoName  string             `json:"project"`
	Type      model.ActivityType `json:"type"`
	Title     string             `json:"title"`
	Points    int32              `json:"points"`
	Additions int32              `json:"additions"`
	Deletions int32              `json:"deletions"`
	CreatedAt time.Time          `json:"createdAt"`
}

const getRecentActivities = `
SELECT a.id, u.user_name, u.avatar_url, r.repo_name,
       a.type, a.title, a.points, a.additions, a.deletions, a.created_at
FROM activities a
JOIN users u ON u.id = a.user_id
JOIN repositories r ON r.id = a.repository_id
ORDER BY a.created_at DESC
LIMIT $1
`

// GetRecentActivities returns the newest activity records, most recent first.
func (q *Queries) GetRecentActivities(ctx context.Context, limit int32) ([]RecentActivityRow, error) {
	rows, err := q.db.Query(ctx, getRecentActivities, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []RecentActivityRow
	for rows.Next() {
		var r RecentActivityRow
		if err := rows.Scan(&r.ID, &r.Username, &r.AvatarURL, &r.RepoName,
			&r.Type, &r.Title, &r.Points, &r.Additions, &r.Deletions, &r.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// DailyActivityCountRow is one heatmap bucket: a calendar day (UTC) and the
// number of activities created on it. Days without activity are absent.
type DailyActivityCountRow struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

const getDailyActivityCounts = `
SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)::bigint
FROM activities
WHERE created_at >= $1
GROUP BY day
ORDER BY day
`

// GetDailyActivityCounts buckets the activity log by calendar day from the
// given window start, across all users and repositories.
func (q *Queries) GetDailyActivityCounts(ctx context.Context, since time.Time) ([]DailyActivityCountRow, error) {
	rows, err := q.db.Query(ctx, getDailyActivityCounts, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []DailyActivityCountRow
	for rows.Next() {
		var r DailyActivityCountRow
		if err := rows.Scan(&r.Date, &r.Count); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// RepositoryBreakdownRow is one repository's share of the activity log.
type RepositoryBreakdownRow struct {
	Name         string `json:"name"`
	Commits      int64  `json:"commits"`
	PrsMerged    int64  `json:"prs"`
	Reviews      int64  `json:"reviews"`
	IssuesClosed int64  `json:"issues"`
	Total        int64  `json:"total"`
}

const getRepositoryBreakdown = `
SELECT r.repo_name,
    COALESCE(SUM(CASE WHEN a.type = 'PUSH' THEN 1 ELSE 0 END), 0)::bigint,
    COALESCE(SUM(CASE WHEN a.type = 'PR_MERGED' THEN 1 ELSE 0 END), 0)::bigint,
    COALESCE(SUM(CASE WHEN a.type = 'CODE_REVIEW' THEN 1 ELSE 0 END), 0)::bigint,
    COALESCE(SUM(CASE WHEN a.type = 'ISSUE_CLOSED' THEN 1 ELSE 0 END), 0)::bigint,
    COUNT(a.id)::bigint AS total
FROM repositories r
JOIN activities a ON a.repository_id = r.id
GROUP BY r.id, r.repo_name
ORDER BY total DESC
LIMIT $1
`

// GetRepositoryBreakdown groups the activity log by repository, ordered by
// total event count descending, capped to the busiest repositories.
func (q *Queries) GetRepositoryBreakdown(ctx context.Context, limit int32) ([]RepositoryBreakdownRow, error) {
	rows, err := q.db.Query(ctx, getRepositoryBreakdown, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []RepositoryBreakdownRow
	for rows.Next() {
		var r RepositoryBreakdownRow
		if err := rows.Scan(&r.Name, &r.Commits, &r.PrsMerged, &r.Reviews, &r.IssuesClosed, &r.Total); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
