// internal/backfill/backfill_test.go
package backfill

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	custom_errors "gitrank/internal/errors"
	"gitrank/internal/github"
	"gitrank/internal/model"
	"gitrank/internal/store"
	"gitrank/internal/store/mocks"
)

func testBackfiller() *Backfiller {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &Backfiller{logger: logger, defaultSince: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestBackfiller_EnsureRepository(t *testing.T) {
	ctx := context.Background()
	ghRepo := &github.Repository{GithubID: 12345, Name: "test-repo", OrgName: "test-org"}

	t.Run("creates a new repository if it does not exist", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		b := testBackfiller()

		mockQ.On("GetRepositoryByGithubID", ctx, int64(12345)).Return(model.Repository{}, pgx.ErrNoRows).Once()
		expected := model.Repository{ID: 1, GithubID: 12345, Name: "test-repo", OrgName: "test-org"}
		mockQ.On("CreateRepository", ctx, store.CreateRepositoryParams{GithubID: 12345, Name: "test-repo", OrgName: "test-org"}).
			Return(expected, nil).Once()

		result, err := b.ensureRepository(ctx, mockQ, ghRepo)

		assert.NoError(t, err)
		assert.Equal(t, expected, result)
		mockQ.AssertExpectations(t)
	})

	t.Run("reuses an existing repository if it is found", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		b := testBackfiller()

		existing := model.Repository{ID: 1, GithubID: 12345, Name: "test-repo"}
		mockQ.On("GetRepositoryByGithubID", ctx, int64(12345)).Return(existing, nil).Once()

		result, err := b.ensureRepository(ctx, mockQ, ghRepo)

		assert.NoError(t, err)
		assert.Equal(t, existing, result)
		mockQ.AssertExpectations(t)
		mockQ.AssertNotCalled(t, "CreateRepository")
	})

	t.Run("returns an error if database lookup fails unexpectedly", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		b := testBackfiller()
		dbError := errors.New("unexpected database error")

		mockQ.On("GetRepositoryByGithubID", ctx, int64(12345)).Return(model.Repository{}, dbError).Once()

		_, err := b.ensureRepository(ctx, mockQ, ghRepo)

		assert.Error(t, err)
		assert.Equal(t, dbError, err)
		mockQ.AssertNotCalled(t, "CreateRepository")
	})
}

func TestBackfiller_PrepareActivities(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

	commits := []github.Commit{
		{SHA: "aaa", Message: "feat: one", AuthorID: 777, AuthorLogin: "ada", Date: day},
		{SHA: "bbb", Message: "feat: two", AuthorID: 777, AuthorLogin: "ada", Date: day.Add(time.Hour)},
		{SHA: "ccc", Message: "imported history", AuthorID: 0, Date: day}, // no linked account
		{SHA: "ddd", Message: "fix: three", AuthorID: 888, AuthorLogin: "linus", Date: day.Add(2 * time.Hour)},
	}

	t.Run("resolves each author once and skips unattributed commits", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		b := testBackfiller()

		mockQ.On("GetUserByGithubID", ctx, int64(777)).Return(model.User{ID: 2, GithubID: 777}, nil).Once()
		mockQ.On("GetUserByGithubID", ctx, int64(888)).Return(model.User{}, pgx.ErrNoRows).Once()
		mockQ.On("CreateUser", ctx, store.CreateUserParams{GithubID: 888, Username: "linus"}).
			Return(model.User{ID: 3, GithubID: 888}, nil).Once()

		params, skipped, err := b.prepareActivities(ctx, mockQ, 5, commits)

		require.NoError(t, err)
		assert.Equal(t, 1, skipped)
		require.Len(t, params, 3)
		for _, p := range params {
			assert.Equal(t, model.TypePush, p.Type)
			assert.Equal(t, int32(1), p.Points)
			assert.Equal(t, int32(5), p.RepositoryID)
		}
		assert.Equal(t, int32(2), params[0].UserID)
		assert.Equal(t, "aaa", params[0].RefID)
		assert.Equal(t, day, params[0].CreatedAt)
		assert.Equal(t, int32(3), params[2].UserID)
		mockQ.AssertExpectations(t)
	})

	t.Run("propagates user resolution failures", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		b := testBackfiller()
		dbError := errors.New("unexpected database error")

		mockQ.On("GetUserByGithubID", ctx, int64(777)).Return(model.User{}, dbError).Once()

		_, _, err := b.prepareActivities(ctx, mockQ, 5, commits)

		assert.Equal(t, dbError, err)
	})
}

func TestBackfiller_SinceTimestamp(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the default start date when the repo has no push activities", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		b := testBackfiller()

		mockQ.On("GetLatestActivityTimeForRepo", ctx, store.GetLatestActivityTimeForRepoParams{RepositoryID: 5, Type: model.TypePush}).
			Return(pgtype.Timestamptz{}, nil).Once()

		since, err := b.sinceTimestamp(ctx, mockQ, 5)

		require.NoError(t, err)
		assert.Equal(t, b.defaultSince, since)
	})

	t.Run("resumes one second after the latest stored push", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		b := testBackfiller()

		latest := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		mockQ.On("GetLatestActivityTimeForRepo", ctx, mock.Anything).
			Return(pgtype.Timestamptz{Time: latest, Valid: true}, nil).Once()

		since, err := b.sinceTimestamp(ctx, mockQ, 5)

		require.NoError(t, err)
		assert.Equal(t, latest.Add(time.Second), since)
	})
}

func TestParseRepoIdentifiers(t *testing.T) {
	t.Run("parses owner/name pairs", func(t *testing.T) {
		ids, err := parseRepoIdentifiers([]string{"acme/widgets", "acme/billing"})

		require.NoError(t, err)
		assert.Equal(t, []RepoIdentifier{{Owner: "acme", Name: "widgets"}, {Owner: "acme", Name: "billing"}}, ids)
	})

	t.Run("rejects malformed entries", func(t *testing.T) {
		var formatErr *custom_errors.ErrInvalidRepoFormat

		_, err := parseRepoIdentifiers([]string{"not-a-repo"})

		require.Error(t, err)
		assert.ErrorAs(t, err, &formatErr)
		assert.Equal(t, "not-a-repo", formatErr.Repo)
	})
}
