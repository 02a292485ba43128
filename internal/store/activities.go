// internal/store/activities.go
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"gitrank/internal/model"
)

const createActivity = `
INSERT INTO activities (user_id, repository_id, type, title, ref_id, points, additions, deletions, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, user_id, repository_id, type, title, ref_id, points, additions, deletions, created_at
`

// CreateActivityParams describes one scored event. Points are fixed at
// creation time from the activity type's point table. A zero CreatedAt means
// "now"; the backfill sets it to the original commit date so time-bucketed
// aggregations stay truthful. Single and bulk inserts treat it identically.
type CreateActivityParams struct {
	UserID       int32
	RepositoryID int32
	Type         model.ActivityType
	Title        string
	RefID        string
	Points       int32
	Additions    int32
	Deletions    int32
	CreatedAt    time.Time
}

// CreateActivity appends one row to the activity log.
func (q *Queries) CreateActivity(ctx context.Context, arg CreateActivityParams) (model.Activity, error) {
	if !arg.Type.Valid() {
		return model.Activity{}, fmt.Errorf("unknown activity type %q", arg.Type)
	}
	createdAt := arg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	row := q.db.QueryRow(ctx, createActivity,
		arg.UserID, arg.RepositoryID, arg.Type, arg.Title, arg.RefID,
		arg.Points, arg.Additions, arg.Deletions, createdAt)
	var a model.Activity
	err := row.Scan(&a.ID, &a.UserID, &a.RepositoryID, &a.Type, &a.Title, &a.RefID,
		&a.Points, &a.Additions, &a.Deletions, &a.CreatedAt)
	return a, err
}

// CreateActivities bulk-inserts activity rows via COPY.
func (q *Queries) CreateActivities(ctx context.Context, arg []CreateActivityParams) (int64, error) {
	return q.db.CopyFrom(ctx,
		pgx.Identifier{"activities"},
		[]string{"user_id", "repository_id", "type", "title", "ref_id", "points", "additions", "deletions", "created_at"},
		pgx.CopyFromSlice(len(arg), func(i int) ([]any, error) {
			a := arg[i]
			if !a.Type.Valid() {
				return nil, fmt.Errorf("unknown activity type %q", a.Type)
			}
			createdAt := a.CreatedAt
			if createdAt.IsZero() {
				createdAt = time.Now()
			}
			return []any{a.UserID, a.RepositoryID, string(a.Type), a.Title, a.RefID,
				a.Points, a.Additions, a.Deletions, createdAt}, nil
		}),
	)
}

const getLatestActivityTimeForRepo = `
SELECT MAX(created_at)
FROM activities
WHERE repository_id = $1 AND type = $2
`

// GetLatestActivityTimeForRepoParams scopes the lookup to one repository and
// activity type.
type GetLatestActivityTimeForRepoParams struct {
	RepositoryID int32
	Type         model.ActivityType
}

// GetLatestActivityTimeForRepo returns the creation time of the newest
// matching activity, invalid when the repository has none.
func (q *Queries) GetLatestActivityTimeForRepo(ctx context.Context, arg GetLatestActivityTimeForRepoParams) (pgtype.Timestamptz, error) {
	row := q.db.QueryRow(ctx, getLatestActivityTimeForRepo, arg.RepositoryID, arg.Type)
	var ts pgtype.Timestamptz
	err := row.Scan(&ts)
	return ts, err
}
