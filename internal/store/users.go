// internal/store/users.go
package store

import (
	"context"

	"gitrank/internal/model"
)

const createUser = `
INSERT INTO users (github_id, user_name, avatar_url)
VALUES ($1, $2, $3)
RETURNING id, github_id, user_name, avatar_url, is_active
`

// CreateUserParams holds the identity fields captured on first sight.
type CreateUserParams struct {
	GithubID  int64
	Username  string
	AvatarURL string
}

// CreateUser inserts a user row. New users are active by default.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.GithubID, arg.Username, arg.AvatarURL)
	var u model.User
	err := row.Scan(&u.ID, &u.GithubID, &u.Username, &u.AvatarURL, &u.IsActive)
	return u, err
}

const getUserByGithubID = `
SELECT id, github_id, user_name, avatar_url, is_active
FROM users
WHERE github_id = $1
`

// GetUserByGithubID looks a user up by their external GitHub account id.
// Returns pgx.ErrNoRows when the user has never been seen.
func (q *Queries) GetUserByGithubID(ctx context.Context, githubID int64) (model.User, error) {
	row := q.db.QueryRow(ctx, getUserByGithubID, githubID)
	var u model.User
	err := row.Scan(&u.ID, &u.GithubID, &u.Username, &u.AvatarURL, &u.IsActive)
	return u, err
}

const setUserActiveByGithubID = `
UPDATE users
SET is_active = $2
WHERE github_id = $1
RETURNING id, github_id, user_name, avatar_url, is_active
`

// SetUserActiveByGithubIDParams flips the leaderboard-exclusion flag.
type SetUserActiveByGithubIDParams struct {
	GithubID int64
	IsActive bool
}

// SetUserActiveByGithubID updates the active flag. The activity log itself is
// never touched; an inactive user simply drops out of the aggregation.
func (q *Queries) SetUserActiveByGithubID(ctx context.Context, arg SetUserActiveByGithubIDParams) (model.User, error) {
	row := q.db.QueryRow(ctx, setUserActiveByGithubID, arg.GithubID, arg.IsActive)
	var u model.User
	err := row.Scan(&u.ID, &u.GithubID, &u.Username, &u.AvatarURL, &u.IsActive)
	return u, err
}
