// internal/scoring/tier.go

// Package scoring turns aggregated contributor rows into a ranked, tiered,
// badged leaderboard. Everything here is a pure function of its inputs: no
// I/O, no stored state, recomputed on every dashboard read.
package scoring

// Tier is a relative-performance band, computed against the current top
// scorer rather than an absolute scale.
type Tier struct {
	Label       string `json:"tier"`
	Color       string `json:"color"`
	BgColor     string `json:"bgColor"`
	BorderColor string `json:"borderColor"`
	ChartFill   string `json:"-"`
}

// TierLabels is the fixed tier order, best first.
var TierLabels = []string{"S", "A", "B", "C", "D"}

var tierConfig = map[string]Tier{
	"S": {Label: "S", Color: "text-yellow-500", BgColor: "bg-yellow-500/20", BorderColor: "border-yellow-500/50", ChartFill: "#eab308"},
	"A": {Label: "A", Color: "text-purple-500", BgColor: "bg-purple-500/20", BorderColor: "border-purple-500/50", ChartFill: "#a855f7"},
	"B": {Label: "B", Color: "text-blue-500", BgColor: "bg-blue-500/20", BorderColor: "border-blue-500/50", ChartFill: "#3b82f6"},
	"C": {Label: "C", Color: "text-green-500", BgColor: "bg-green-500/20", BorderColor: "border-green-500/50", ChartFill: "#22c55e"},
	"D": {Label: "D", Color: "text-neutral-500", BgColor: "bg-neutral-500/20", BorderColor: "border-neutral-500/50", ChartFill: "#737373"},
}

// AssignTier maps a score to a tier relative to the current leader's score.
// When maxScore is zero there is no leader and everyone lands in D, which
// also keeps the percentage math away from a division by zero.
func AssignTier(score, maxScore int64) Tier {
	if maxScore == 0 {
		return tierConfig["D"]
	}

	percentage := float64(score) / float64(maxScore) * 100

	switch {
	case percentage >= 90:
		return tierConfig["S"]
	case percentage >= 70:
		return tierConfig["A"]
	case percentage >= 50:
		return tierConfig["B"]
	case percentage >= 25:
		return tierConfig["C"]
	default:
		return tierConfig["D"]
	}
}

// TierByLabel returns the tier config for a label, defaulting to D.
func TierByLabel(label string) Tier {
	if t, ok := tierConfig[label]; ok {
		return t
	}
	return tierConfig["D"]
}
