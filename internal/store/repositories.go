// internal/store/repositories.go
package store

import (
	"context"

	"gitrank/internal/model"
)

const createRepository = `
INSERT INTO repositories (github_id, repo_name, org_name)
VALUES ($1, $2, $3)
RETURNING id, github_id, repo_name, org_name
`

// CreateRepositoryParams holds the fields captured on first sight.
// Repositories are immutable once created.
type CreateRepositoryParams struct {
	GithubID int64
	Name     string
	OrgName  string
}

// CreateRepository inserts a repository row.
func (q *Queries) CreateRepository(ctx context.Context, arg CreateRepositoryParams) (model.Repository, error) {
	row := q.db.QueryRow(ctx, createRepository, arg.GithubID, arg.Name, arg.OrgName)
	var r model.Repository
	err := row.Scan(&r.ID, &r.GithubID, &r.Name, &r.OrgName)
	return r, err
}

const getRepositoryByGithubID = `
SELECT id, github_id, repo_name, org_name
FROM repositories
WHERE github_id = $1
`

// GetRepositoryByGithubID looks a repository up by its external GitHub id.
// Returns pgx.ErrNoRows when the repository has never been seen.
func (q *Queries) GetRepositoryByGithubID(ctx context.Context, githubID int64) (model.Repository, error) {
	row := q.db.QueryRow(ctx, getRepositoryByGithubID, githubID)
	var r model.Repository
	err := row.Scan(&r.ID, &r.GithubID, &r.Name, &r.OrgName)
	return r, err
}
