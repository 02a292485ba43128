// internal/scoring/badge.go
package scoring

import "gitrank/internal/store"

// Badge is a named achievement derived from threshold checks over a
// contributor's aggregated row and rank. Never persisted.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Catalog of every badge the system knows about. pioneer and week-streak are
// defined but not yet wired into evaluation.
var (
	badgeFirstBlood     = Badge{ID: "first-blood", Name: "First Blood", Icon: "🩸", Description: "Made your first commit"}
	badgeCommitted      = Badge{ID: "committed", Name: "Committed", Icon: "💪", Description: "Pushed 10 or more commits"}
	badgeCodeMachine    = Badge{ID: "code-machine", Name: "Code Machine", Icon: "⚙️", Description: "Pushed 50 or more commits"}
	badgeCenturion      = Badge{ID: "centurion", Name: "Centurion", Icon: "🏛️", Description: "Pushed 100 or more commits"}
	badgePRMaster       = Badge{ID: "pr-master", Name: "PR Master", Icon: "🔀", Description: "Merged 10 or more pull requests"}
	badgeCodeReviewer   = Badge{ID: "code-reviewer", Name: "Code Reviewer", Icon: "🔍", Description: "Submitted 5 or more reviews"}
	badgeBugHunter      = Badge{ID: "bug-hunter", Name: "Bug Hunter", Icon: "🐛", Description: "Closed 5 or more issues"}
	badgeTopContributor = Badge{ID: "top-contributor", Name: "Top Contributor", Icon: "👑", Description: "Ranked #1 on the leaderboard"}
	badgePioneer        = Badge{ID: "pioneer", Name: "Pioneer", Icon: "🚀", Description: "First ever contributor"}
	badgeWeekStreak     = Badge{ID: "week-streak", Name: "Week Streak", Icon: "🔥", Description: "Active on 7 or more distinct days"}
)

// AllBadges lists the full catalog, dormant entries included.
var AllBadges = []Badge{
	badgeFirstBlood, badgeCommitted, badgeCodeMachine, badgeCenturion,
	badgePRMaster, badgeCodeReviewer, badgeBugHunter, badgeTopContributor,
	badgePioneer, badgeWeekStreak,
}

// BadgesFor evaluates the badge thresholds for one contributor. Thresholds
// are independent, so a prolific committer holds every commit badge at once.
// The returned order is fixed; presentation truncates to the first few.
func BadgesFor(row store.LeaderboardRow, rank int) []Badge {
	var badges []Badge

	if row.Commits >= 1 {
		badges = append(badges, badgeFirstBlood)
	}
	if row.Commits >= 10 {
		badges = append(badges, badgeCommitted)
	}
	if row.Commits >= 50 {
		badges = append(badges, badgeCodeMachine)
	}
	if row.Commits >= 100 {
		badges = append(badges, badgeCenturion)
	}
	if row.PrsMerged >= 10 {
		badges = append(badges, badgePRMaster)
	}
	if row.Reviews >= 5 {
		badges = append(badges, badgeCodeReviewer)
	}
	if row.IssuesClosed >= 5 {
		badges = append(badges, badgeBugHunter)
	}
	if rank == 1 && row.Points > 0 {
		badges = append(badges, badgeTopContributor)
	}

	return badges
}
