package beach

import "shoreSquadAPI/internal/types/geo"

type Status string

const (
	StatusNeedsCleanup Status = "needs-cleanup"
	StatusActiveRally  Status = "active-rally"
	StatusClean        Status = "clean"
)

type Difficulty string

const (
	DifficultyEasy        Difficulty = "Easy"
	DifficultyModerate    Difficulty = "Moderate"
	DifficultyChallenging Difficulty = "Challenging"
)

// Beach is one of the Singapore shorelines the crew tracks. The set is
// curated, not user-editable, so there is no create/update surface.
type Beach struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Coordinate  geo.Coordinate `json:"coordinate"`
	Status      Status         `json:"status"`
	Difficulty  Difficulty     `json:"difficulty"`
	Description string         `json:"description"`
}

// ValidStatus reports whether s is one of the three tracked beach states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNeedsCleanup, StatusActiveRally, StatusClean:
		return true
	}
	return false
}
