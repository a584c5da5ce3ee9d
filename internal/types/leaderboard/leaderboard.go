package leaderboard

type Category string

const (
	CategoryIndividual Category = "individual"
	CategoryTeams      Category = "teams"
	CategoryMonthly    Category = "monthly"
)

// TeamEntryCount is how many rows the teams tab carries. The crew view is a
// podium, not a table, so it is always exactly three.
const TeamEntryCount = 3

// LeaderboardEntry is one ranked row. Rallies and KgCollected back the
// individual and monthly tabs; team rows report Members instead of Rallies.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	Score       int    `json:"score"`
	Rallies     int    `json:"rallies,omitempty"`
	Members     int    `json:"members,omitempty"`
	KgCollected int    `json:"kg_collected"`
}

type Leaderboard struct {
	Category Category            `json:"category"`
	Entries  []*LeaderboardEntry `json:"entries"`
}

// ValidCategory reports whether c names one of the three tabs.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryIndividual, CategoryTeams, CategoryMonthly:
		return true
	}
	return false
}
