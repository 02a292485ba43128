// internal/ingest/ingest.go
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/go-github/v62/github"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gitrank/internal/model"
	"gitrank/internal/store"
)

// Service converts GitHub webhook deliveries into scored activity records.
// Malformed or unrecognized deliveries are acknowledged and dropped rather
// than surfaced as errors: webhook producers retry on failure, and a retry
// of garbage is still garbage.
type Service struct {
	pool   *pgxpool.Pool
	q      *store.Queries
	logger *slog.Logger
}

// NewService creates a new ingestion service.
func NewService(pool *pgxpool.Pool, logger *slog.Logger) *Service {
	return &Service{pool: pool, q: store.New(pool), logger: logger}
}

// identity is the repo/sender pair every delivery must carry to be scoreable.
type identity struct {
	repoID     int64
	repoName   string
	orgName    string
	senderID   int64
	senderName string
	avatarURL  string
}

// Process records one webhook delivery inside a single transaction. The
// returned bool reports whether the delivery was accepted (it may still have
// recorded zero activities, e.g. a pull_request closed without merging).
// Only a store fault produces an error.
func (s *Service) Process(ctx context.Context, eventType string, payload []byte) (bool, error) {
	event, err := github.ParseWebHook(eventType, payload)
	if err != nil {
		s.logger.Debug("Ignoring unparseable delivery", "event", eventType, "error", err)
		return false, nil
	}
	if _, ok := extractIdentity(event); !ok {
		s.logger.Debug("Ignoring delivery without repository or sender identity", "event", eventType)
		return false, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx) // Rollback is a no-op if the transaction is already committed.

	accepted, err := s.processEvent(ctx, s.q.WithTx(tx), eventType, event)
	if err != nil {
		return false, err
	}
	if !accepted {
		return false, nil
	}

	return true, tx.Commit(ctx)
}

// processEvent runs the ingestion logic against a Querier so unit tests can
// drive it with a mock.
func (s *Service) processEvent(ctx context.Context, q store.Querier, eventType string, event any) (bool, error) {
	id, ok := extractIdentity(event)
	if !ok {
		s.logger.Debug("Ignoring delivery without repository or sender identity", "event", eventType)
		return false, nil
	}

	repo, err := s.ensureRepository(ctx, q, id)
	if err != nil {
		return false, err
	}
	user, err := s.ensureUser(ctx, q, id)
	if err != nil {
		return false, err
	}

	params := activityParams(event, user.ID, repo.ID)
	n, err := s.record(ctx, q, params)
	if err != nil {
		return false, err
	}

	s.logger.Info("Processed webhook delivery",
		"event", eventType, "sender", id.senderName, "repo", id.repoName, "activities", n)
	return true, nil
}

func (s *Service) record(ctx context.Context, q store.Querier, params []store.CreateActivityParams) (int64, error) {
	switch len(params) {
	case 0:
		return 0, nil
	case 1:
		if _, err := q.CreateActivity(ctx, params[0]); err != nil {
			return 0, err
		}
		return 1, nil
	default:
		return q.CreateActivities(ctx, params)
	}
}

// ensureRepository returns the stored repository, creating it on first sight.
func (s *Service) ensureRepository(ctx context.Context, q store.Querier, id identity) (model.Repository, error) {
	repo, err := q.GetRepositoryByGithubID(ctx, id.repoID)
	if errors.Is(err, pgx.ErrNoRows) {
		return q.CreateRepository(ctx, store.CreateRepositoryParams{
			GithubID: id.repoID,
			Name:     id.repoName,
			OrgName:  id.orgName,
		})
	}
	return repo, err
}

// ensureUser returns the stored user, creating them on first sight.
func (s *Service) ensureUser(ctx context.Context, q store.Querier, id identity) (model.User, error) {
	user, err := q.GetUserByGithubID(ctx, id.senderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return q.CreateUser(ctx, store.CreateUserParams{
			GithubID:  id.senderID,
			Username:  id.senderName,
			AvatarURL: id.avatarURL,
		})
	}
	return user, err
}

// extractIdentity pulls the repository and sender out of the supported event
// payloads. Org name falls back to the sender login when the repository
// carries no organization, matching how personal repos report themselves.
func extractIdentity(event any) (identity, bool) {
	var id identity

	switch e := event.(type) {
	case *github.PushEvent:
		repo, sender := e.GetRepo(), e.GetSender()
		if repo == nil || sender == nil {
			return id, false
		}
		id = identity{
			repoID:     repo.GetID(),
			repoName:   repo.GetName(),
			orgName:    repo.GetOrganization(),
			senderID:   sender.GetID(),
			senderName: sender.GetLogin(),
			avatarURL:  sender.GetAvatarURL(),
		}
	case *github.PullRequestEvent:
		repo, sender := e.GetRepo(), e.GetSender()
		if repo == nil || sender == nil {
			return id, false
		}
		id = identity{
			repoID:     repo.GetID(),
			repoName:   repo.GetName(),
			orgName:    repo.GetOrganization().GetLogin(),
			senderID:   sender.GetID(),
			senderName: sender.GetLogin(),
			avatarURL:  sender.GetAvatarURL(),
		}
	case *github.IssuesEvent:
		repo, sender := e.GetRepo(), e.GetSender()
		if repo == nil || sender == nil {
			return id, false
		}
		id = identity{
			repoID:     repo.GetID(),
			repoName:   repo.GetName(),
			orgName:    repo.GetOrganization().GetLogin(),
			senderID:   sender.GetID(),
			senderName: sender.GetLogin(),
			avatarURL:  sender.GetAvatarURL(),
		}
	case *github.PullRequestReviewEvent:
		repo, sender := e.GetRepo(), e.GetSender()
		if repo == nil || sender == nil {
			return id, false
		}
		id = identity{
			repoID:     repo.GetID(),
			repoName:   repo.GetName(),
			orgName:    repo.GetOrganization().GetLogin(),
			senderID:   sender.GetID(),
			senderName: sender.GetLogin(),
			avatarURL:  sender.GetAvatarURL(),
		}
	default:
		return id, false
	}

	if id.repoID == 0 || id.senderID == 0 {
		return id, false
	}
	if id.orgName == "" {
		id.orgName = id.senderName
	}
	return id, true
}

// activityParams maps an event to zero or more activity inserts per the
// fixed point table. Actions outside the table (a PR closed without merging,
// an issue opened, a review dismissed) yield nothing.
func activityParams(event any, userID, repoID int32) []store.CreateActivityParams {
	switch e := event.(type) {
	case *github.PushEvent:
		params := make([]store.CreateActivityParams, 0, len(e.Commits))
		for _, commit := range e.Commits {
			params = append(params, store.CreateActivityParams{
				UserID:       userID,
				RepositoryID: repoID,
				Type:         model.TypePush,
				Title:        commit.GetMessage(),
				RefID:        commit.GetID(),
				Points:       model.TypePush.Points(),
			})
		}
		return params

	case *github.PullRequestEvent:
		pr := e.GetPullRequest()
		var typ model.ActivityType
		switch {
		case e.GetAction() == "opened":
			typ = model.TypePROpened
		case e.GetAction() == "closed" && pr.GetMerged():
			typ = model.TypePRMerged
		default:
			return nil
		}
		return []store.CreateActivityParams{{
			UserID:       userID,
			RepositoryID: repoID,
			Type:         typ,
			Title:        pr.GetTitle(),
			RefID:        strconv.Itoa(pr.GetNumber()),
			Points:       typ.Points(),
			Additions:    int32(pr.GetAdditions()),
			Deletions:    int32(pr.GetDeletions()),
		}}

	case *github.IssuesEvent:
		if e.GetAction() != "closed" {
			return nil
		}
		issue := e.GetIssue()
		return []store.CreateActivityParams{{
			UserID:       userID,
			RepositoryID: repoID,
			Type:         model.TypeIssueClosed,
			Title:        issue.GetTitle(),
			RefID:        strconv.Itoa(issue.GetNumber()),
			Points:       model.TypeIssueClosed.Points(),
		}}

	case *github.PullRequestReviewEvent:
		if e.GetAction() != "submitted" {
			return nil
		}
		return []store.CreateActivityParams{{
			UserID:       userID,
			RepositoryID: repoID,
			Type:         model.TypeCodeReview,
			Title:        fmt.Sprintf("Reviewed PR #%d", e.GetPullRequest().GetNumber()),
			RefID:        strconv.FormatInt(e.GetReview().GetID(), 10),
			Points:       model.TypeCodeReview.Points(),
		}}
	}

	return nil
}
