// seed loads demo users, repositories and activities into the database so a
// fresh deployment has something to rank.
//
//	go run ./cmd/seed
package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"gitrank/internal/config"
	"gitrank/internal/model"
	"gitrank/internal/store"
)

var demoUsers = []store.CreateUserParams{
	{GithubID: 9001, Username: "ada", AvatarURL: "https://avatars.example/ada.png"},
	{GithubID: 9002, Username: "linus", AvatarURL: "https://avatars.example/linus.png"},
	{GithubID: 9003, Username: "grace", AvatarURL: "https://avatars.example/grace.png"},
	{GithubID: 9004, Username: "dennis", AvatarURL: "https://avatars.example/dennis.png"},
	{GithubID: 9005, Username: "margaret", AvatarURL: "https://avatars.example/margaret.png"},
}

var demoRepos = []store.CreateRepositoryParams{
	{GithubID: 8001, Name: "analytics-engine", OrgName: "acme"},
	{GithubID: 8002, Name: "billing-api", OrgName: "acme"},
	{GithubID: 8003, Name: "web-frontend", OrgName: "acme"},
}

var demoTypes = []model.ActivityType{
	model.TypePush, model.TypePush, model.TypePush, model.TypePush,
	model.TypePROpened, model.TypePRMerged, model.TypeIssueClosed, model.TypeCodeReview,
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	dbpool, err := pgxpool.New(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	q := store.New(dbpool)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	users := make([]model.User, 0, len(demoUsers))
	for _, u := range demoUsers {
		created, err := q.CreateUser(ctx, u)
		if err != nil {
			logger.Error("failed to create user", "username", u.Username, "error", err)
			os.Exit(1)
		}
		users = append(users, created)
	}

	repos := make([]model.Repository, 0, len(demoRepos))
	for _, r := range demoRepos {
		created, err := q.CreateRepository(ctx, r)
		if err != nil {
			logger.Error("failed to create repository", "name", r.Name, "error", err)
			os.Exit(1)
		}
		repos = append(repos, created)
	}

	// Spread ~400 activities over the trailing 90 days, weighted so the
	// leaderboard has a clear spread of tiers.
	var params []store.CreateActivityParams
	for i := 0; i < 400; i++ {
		user := users[weightedUserIndex(rng, len(users))]
		repo := repos[rng.Intn(len(repos))]
		typ := demoTypes[rng.Intn(len(demoTypes))]

		p := store.CreateActivityParams{
			UserID:       user.ID,
			RepositoryID: repo.ID,
			Type:         typ,
			Title:        seedTitle(typ, i),
			RefID:        strconv.Itoa(100000 + i),
			Points:       typ.Points(),
			CreatedAt:    time.Now().AddDate(0, 0, -rng.Intn(90)),
		}
		if typ == model.TypePROpened || typ == model.TypePRMerged {
			p.Additions = int32(rng.Intn(800))
			p.Deletions = int32(rng.Intn(300))
		}
		params = append(params, p)
	}

	n, err := q.CreateActivities(ctx, params)
	if err != nil {
		logger.Error("failed to insert activities", "error", err)
		os.Exit(1)
	}

	logger.Info("seed complete", "users", len(users), "repos", len(repos), "activities", n)
}

// weightedUserIndex skews activity toward lower-index users so scores fan out
// across the tier bands instead of clustering.
func weightedUserIndex(rng *rand.Rand, n int) int {
	for i := 0; i < n-1; i++ {
		if rng.Intn(2) == 0 {
			return i
		}
	}
	return n - 1
}

func seedTitle(typ model.ActivityType, i int) string {
	switch typ {
	case model.TypePush:
		return "chore: routine maintenance " + strconv.Itoa(i)
	case model.TypePROpened:
		return "feat: proposal " + strconv.Itoa(i)
	case model.TypePRMerged:
		return "feat: change " + strconv.Itoa(i)
	case model.TypeIssueClosed:
		return "bug report " + strconv.Itoa(i)
	case model.TypeCodeReview:
		return "Reviewed PR #" + strconv.Itoa(i)
	}
	return "activity " + strconv.Itoa(i)
}
