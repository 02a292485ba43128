// internal/github/client.go
package github

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// Client is a wrapper around the go-github client.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance.
// The provided token is used to create an authenticated http.Client.
func NewClient(token string, logger *slog.Logger) *Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		gh:     github.NewClient(tc),
		logger: logger,
	}
}

// Repository is the subset of repository metadata the backfill needs.
type Repository struct {
	GithubID int64
	Name     string
	OrgName  string
}

// Commit is one commit with its attributable GitHub author. AuthorID is zero
// when GitHub could not link the commit to an account; such commits cannot
// be scored.
type Commit struct {
	SHA             string
	Message         string
	AuthorID        int64
	AuthorLogin     string
	AuthorAvatarURL string
	Date            time.Time
}

// GetRepository fetches repository details and translates them to our internal shape.
func (c *Client) GetRepository(ctx context.Context, owner, name string) (*Repository, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	return toInternalRepository(repo), nil
}

// GetCommits fetches all commits for a repository since a given time.
// It handles API pagination transparently.
func (c *Client) GetCommits(ctx context.Context, owner, name string, since time.Time) ([]Commit, error) {
	var allCommits []Commit

	opts := &github.CommitsListOptions{
		Since: since,
		ListOptions: github.ListOptions{
			PerPage: 100, // Max per page
		},
	}

	for {
		c.logger.Debug("Fetching commits page", "owner", owner, "repo", name, "page", opts.Page)

		commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, name, opts)
		if err != nil {
			return nil, err
		}

		for _, commit := range commits {
			allCommits = append(allCommits, toInternalCommit(commit))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allCommits, nil
}

// toInternalRepository translates a github.Repository object. OrgName falls
// back to the owner login for personal repositories.
func toInternalRepository(r *github.Repository) *Repository {
	orgName := r.GetOrganization().GetLogin()
	if orgName == "" {
		orgName = r.GetOwner().GetLogin()
	}
	return &Repository{
		GithubID: r.GetID(),
		Name:     r.GetName(),
		OrgName:  orgName,
	}
}

// toInternalCommit translates a github.RepositoryCommit object. The author
// fields come from the linked GitHub account, not the git committer line.
func toInternalCommit(c *github.RepositoryCommit) Commit {
	return Commit{
		SHA:             c.GetSHA(),
		Message:         c.GetCommit().GetMessage(),
		AuthorID:        c.GetAuthor().GetID(),
		AuthorLogin:     c.GetAuthor().GetLogin(),
		AuthorAvatarURL: c.GetAuthor().GetAvatarURL(),
		Date:            c.GetCommit().GetAuthor().GetDate().Time,
	}
}
