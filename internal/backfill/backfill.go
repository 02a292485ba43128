// internal/backfill/backfill.go
package backfill

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	custom_errors "gitrank/internal/errors"
	"gitrank/internal/github"
	"gitrank/internal/model"
	"gitrank/internal/store"
)

const (
	// Number of repositories to backfill in parallel
	concurrency = 5
)

// RepoIdentifier holds the owner and name of a repository.
type RepoIdentifier struct {
	Owner string
	Name  string
}

// Backfiller imports historical commits for configured repositories as PUSH
// activities, so a freshly deployed leaderboard does not start from zero.
// Commits arriving later via webhooks for the same SHA are NOT deduplicated
// against backfilled rows; overlap windows double-count by design.
type Backfiller struct {
	pool         *pgxpool.Pool
	q            *store.Queries
	ghClient     *github.Client
	logger       *slog.Logger
	repos        []RepoIdentifier
	interval     time.Duration
	defaultSince time.Time
}

// NewBackfiller creates a new Backfiller instance.
func NewBackfiller(pool *pgxpool.Pool, ghClient *github.Client, logger *slog.Logger, repos []string, interval time.Duration, defaultSince time.Time) (*Backfiller, error) {
	parsedRepos, err := parseRepoIdentifiers(repos)
	if err != nil {
		return nil, err
	}

	return &Backfiller{
		pool:         pool,
		q:            store.New(pool),
		ghClient:     ghClient,
		logger:       logger,
		repos:        parsedRepos,
		interval:     interval,
		defaultSince: defaultSince,
	}, nil
}

// Start begins the continuous backfill process.
func (b *Backfiller) Start(ctx context.Context) {
	b.logger.Info("Starting backfiller", "interval", b.interval.String(), "concurrency", concurrency)
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.runCycle(ctx) // Initial pass

	for {
		select {
		case <-ticker.C:
			b.runCycle(ctx)
		case <-ctx.Done():
			b.logger.Info("Backfiller shutting down", "reason", ctx.Err())
			return
		}
	}
}

// runCycle performs a backfill pass for all configured repositories concurrently.
func (b *Backfiller) runCycle(ctx context.Context) {
	b.logger.Info("Starting new backfill cycle")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, repoID := range b.repos {
		repoID := repoID
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			err := b.backfillRepoInTransaction(gctx, repoID)
			if err != nil && !errors.Is(err, context.Canceled) {
				b.logger.Error("Failed to backfill repository", "owner", repoID.Owner, "repo", repoID.Name, "error", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		b.logger.Error("Backfill cycle finished with an error", "error", err)
	} else {
		b.logger.Info("Backfill cycle finished")
	}
}

// backfillRepoInTransaction wraps the backfill logic for a single repo in a DB transaction.
func (b *Backfiller) backfillRepoInTransaction(ctx context.Context, id RepoIdentifier) error {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // Rollback is a no-op if the transaction is already committed.

	if err := b.backfillRepo(ctx, b.q.WithTx(tx), id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// backfillRepo handles the full backfill logic for a single repository.
func (b *Backfiller) backfillRepo(ctx context.Context, q store.Querier, id RepoIdentifier) error {
	logger := b.logger.With("owner", id.Owner, "repo", id.Name)
	logger.Info("Backfilling repository")

	ghRepo, err := b.ghClient.GetRepository(ctx, id.Owner, id.Name)
	if err != nil {
		return err
	}

	dbRepo, err := b.ensureRepository(ctx, q, ghRepo)
	if err != nil {
		return err
	}
	logger = logger.With("repo_id", dbRepo.ID)

	since, err := b.sinceTimestamp(ctx, q, dbRepo.ID)
	if err != nil {
		return err
	}
	logger.Info("Fetching commits since", "timestamp", since.Format(time.RFC3339))

	commits, err := b.ghClient.GetCommits(ctx, id.Owner, id.Name, since)
	if err != nil {
		return err
	}

	params, skipped, err := b.prepareActivities(ctx, q, dbRepo.ID, commits)
	if err != nil {
		return err
	}
	if skipped > 0 {
		logger.Info("Skipping commits without a linked GitHub author", "count", skipped)
	}
	if len(params) == 0 {
		logger.Info("No new commits found")
		return nil
	}

	n, err := q.CreateActivities(ctx, params)
	if err != nil {
		return err
	}
	logger.Info("Successfully recorded push activities", "count", n)

	return nil
}

// ensureRepository returns the stored repository, creating it on first sight.
func (b *Backfiller) ensureRepository(ctx context.Context, q store.Querier, repo *github.Repository) (model.Repository, error) {
	existing, err := q.GetRepositoryByGithubID(ctx, repo.GithubID)
	if errors.Is(err, pgx.ErrNoRows) {
		b.logger.Info("Repository not found in DB, creating new entry")
		return q.CreateRepository(ctx, store.CreateRepositoryParams{
			GithubID: repo.GithubID,
			Name:     repo.Name,
			OrgName:  repo.OrgName,
		})
	}
	return existing, err
}

// prepareActivities resolves commit authors to stored users and builds the
// activity rows. Commits GitHub could not attribute to an account are skipped.
func (b *Backfiller) prepareActivities(ctx context.Context, q store.Querier, repoID int32, commits []github.Commit) ([]store.CreateActivityParams, int, error) {
	userIDs := make(map[int64]int32)
	var params []store.CreateActivityParams
	var skipped int

	for _, c := range commits {
		if c.AuthorID == 0 {
			skipped++
			continue
		}

		userID, ok := userIDs[c.AuthorID]
		if !ok {
			user, err := q.GetUserByGithubID(ctx, c.AuthorID)
			if errors.Is(err, pgx.ErrNoRows) {
				user, err = q.CreateUser(ctx, store.CreateUserParams{
					GithubID:  c.AuthorID,
					Username:  c.AuthorLogin,
					AvatarURL: c.AuthorAvatarURL,
				})
			}
			if err != nil {
				return nil, 0, err
			}
			userID = user.ID
			userIDs[c.AuthorID] = userID
		}

		params = append(params, store.CreateActivityParams{
			UserID:       userID,
			RepositoryID: repoID,
			Type:         model.TypePush,
			Title:        c.Message,
			RefID:        c.SHA,
			Points:       model.TypePush.Points(),
			CreatedAt:    c.Date,
		})
	}

	return params, skipped, nil
}

func (b *Backfiller) sinceTimestamp(ctx context.Context, q store.Querier, repoID int32) (time.Time, error) {
	latest, err := q.GetLatestActivityTimeForRepo(ctx, store.GetLatestActivityTimeForRepoParams{
		RepositoryID: repoID,
		Type:         model.TypePush,
	})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, err
	}

	if !latest.Valid {
		b.logger.Info("No existing push activities for repository, using default start date", "default_since", b.defaultSince)
		return b.defaultSince, nil
	}

	b.logger.Info("Found latest push activity in DB", "timestamp", latest.Time)
	return latest.Time.Add(1 * time.Second), nil
}

func parseRepoIdentifiers(repos []string) ([]RepoIdentifier, error) {
	var identifiers []RepoIdentifier
	for _, r := range repos {
		parts := strings.Split(r, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, &custom_errors.ErrInvalidRepoFormat{Repo: r}
		}
		identifiers = append(identifiers, RepoIdentifier{Owner: parts[0], Name: parts[1]})
	}
	return identifiers, nil
}
