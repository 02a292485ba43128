// internal/scoring/leaderboard.go
package scoring

import "gitrank/internal/store"

// RankedContributor is a leaderboard row augmented with its rank, tier and
// badge set. Tier is embedded so its label and display attributes marshal
// inline with the row.
type RankedContributor struct {
	store.LeaderboardRow
	Rank int `json:"rank"`
	Tier
	Badges []Badge `json:"badges"`
}

// TierCount is one slice of the tier-distribution chart.
type TierCount struct {
	Tier  string `json:"tier"`
	Count int    `json:"count"`
	Fill  string `json:"fill"`
}

// BuildLeaderboard assigns dense 1-based ranks in input order, tiers relative
// to the first row's points, and badges. rows must already be sorted by
// points descending; ties keep the input order, so two equal scorers get
// consecutive ranks in whatever order the store produced them.
func BuildLeaderboard(rows []store.LeaderboardRow) []RankedContributor {
	var maxScore int64
	if len(rows) > 0 {
		maxScore = rows[0].Points
	}

	ranked := make([]RankedContributor, len(rows))
	for i, row := range rows {
		rank := i + 1
		ranked[i] = RankedContributor{
			LeaderboardRow: row,
			Rank:           rank,
			Tier:           AssignTier(row.Points, maxScore),
			Badges:         BadgesFor(row, rank),
		}
	}
	return ranked
}

// TierDistribution counts contributors per tier as a fixed 5-element sequence
// over S..D, zero-filled so chart rendering never sees a missing band.
func TierDistribution(ranked []RankedContributor) []TierCount {
	counts := make(map[string]int, len(TierLabels))
	for _, rc := range ranked {
		counts[rc.Label]++
	}

	dist := make([]TierCount, 0, len(TierLabels))
	for _, label := range TierLabels {
		dist = append(dist, TierCount{
			Tier:  label,
			Count: counts[label],
			Fill:  TierByLabel(label).ChartFill,
		})
	}
	return dist
}
