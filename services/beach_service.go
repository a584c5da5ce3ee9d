package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shoreSquadAPI/internal/types/beach"
	"shoreSquadAPI/internal/types/geo"
)

var ErrUnknownBeachStatus = errors.New("unknown beach status")

// BeachService serves the curated shoreline list. The set is fixed at
// compile time; there is nothing to persist.
type BeachService struct {
	beaches []beach.Beach
}

func NewBeachService() *BeachService {
	return &BeachService{beaches: singaporeBeaches()}
}

// GetBeaches returns the list, optionally narrowed by a free-text query
// and/or a status. An unrecognized status is an error; an empty result is
// just an empty list.
func (s *BeachService) GetBeaches(ctx context.Context, query string, status beach.Status) ([]beach.Beach, error) {
	if status != "" && !beach.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBeachStatus, status)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]beach.Beach, 0, len(s.beaches))
	for _, b := range s.beaches {
		if status != "" && b.Status != status {
			continue
		}
		if query != "" && !matchesQuery(b, query) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// GetBeach returns one beach by slug ID.
func (s *BeachService) GetBeach(ctx context.Context, id string) (beach.Beach, bool) {
	for _, b := range s.beaches {
		if b.ID == id {
			return b, true
		}
	}
	return beach.Beach{}, false
}

// CountByStatus tallies beaches per status, feeding the impact counters.
func (s *BeachService) CountByStatus(ctx context.Context, status beach.Status) int {
	count := 0
	for _, b := range s.beaches {
		if b.Status == status {
			count++
		}
	}
	return count
}

func matchesQuery(b beach.Beach, query string) bool {
	return strings.Contains(strings.ToLower(b.Name), query) ||
		strings.Contains(strings.ToLower(b.Description), query)
}

// singaporeBeaches is the launch set. IDs are stable slugs; clients link to
// them in popups and deep links.
func singaporeBeaches() []beach.Beach {
	return []beach.Beach{
		{
			ID:          "east-coast-park",
			Name:        "East Coast Park",
			Coordinate:  geo.Coordinate{Lat: 1.3008, Lng: 103.9122},
			Status:      beach.StatusNeedsCleanup,
			Difficulty:  beach.DifficultyEasy,
			Description: "Long stretch near Area C with drink-bottle washup after weekends.",
		},
		{
			ID:          "changi-beach",
			Name:        "Changi Beach",
			Coordinate:  geo.Coordinate{Lat: 1.3900, Lng: 103.9910},
			Status:      beach.StatusActiveRally,
			Difficulty:  beach.DifficultyModerate,
			Description: "Quiet northern shoreline, driftwood and net fragments near the jetty.",
		},
		{
			ID:          "siloso-beach",
			Name:        "Siloso Beach",
			Coordinate:  geo.Coordinate{Lat: 1.2494, Lng: 103.8303},
			Status:      beach.StatusClean,
			Difficulty:  beach.DifficultyEasy,
			Description: "Sentosa tourist strip, kept tidy by daily patrols.",
		},
		{
			ID:          "punggol-beach",
			Name:        "Punggol Beach",
			Coordinate:  geo.Coordinate{Lat: 1.4217, Lng: 103.9060},
			Status:      beach.StatusNeedsCleanup,
			Difficulty:  beach.DifficultyChallenging,
			Description: "Rocky stretch catching tide-borne debris from the strait.",
		},
		{
			ID:          "pasir-ris-park",
			Name:        "Pasir Ris Park",
			Coordinate:  geo.Coordinate{Lat: 1.3721, Lng: 103.9474},
			Status:      beach.StatusActiveRally,
			Difficulty:  beach.DifficultyModerate,
			Description: "Mangrove-adjacent beach, plastics collect along the boardwalk side.",
		},
	}
}
