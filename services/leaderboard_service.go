package services

import (
	"context"
	"errors"
	"fmt"

	"shoreSquadAPI/internal/types/leaderboard"
)

var ErrUnknownCategory = errors.New("unknown leaderboard category")

// LeaderboardService serves the mock standings. Datasets are fixed per
// category; switching tabs swaps the whole table.
type LeaderboardService struct {
	boards map[leaderboard.Category]*leaderboard.Leaderboard
}

func NewLeaderboardService() *LeaderboardService {
	return &LeaderboardService{boards: mockBoards()}
}

// GetLeaderboard returns the full dataset for one category. The teams
// board always carries exactly three entries.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, category leaderboard.Category) (*leaderboard.Leaderboard, error) {
	if !leaderboard.ValidCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return s.boards[category], nil
}

func mockBoards() map[leaderboard.Category]*leaderboard.Leaderboard {
	return map[leaderboard.Category]*leaderboard.Leaderboard{
		leaderboard.CategoryIndividual: {
			Category: leaderboard.CategoryIndividual,
			Entries: []*leaderboard.LeaderboardEntry{
				{Rank: 1, Name: "Aisha Rahman", Avatar: "🌊", Score: 2840, Rallies: 24, KgCollected: 186},
				{Rank: 2, Name: "Marcus Tan", Avatar: "🐢", Score: 2615, Rallies: 21, KgCollected: 173},
				{Rank: 3, Name: "Priya Nair", Avatar: "🦀", Score: 2390, Rallies: 19, KgCollected: 158},
				{Rank: 4, Name: "Daniel Lim", Avatar: "🐚", Score: 2120, Rallies: 18, KgCollected: 141},
				{Rank: 5, Name: "Wei Ling Chua", Avatar: "⭐", Score: 1985, Rallies: 16, KgCollected: 127},
			},
		},
		leaderboard.CategoryTeams: {
			Category: leaderboard.CategoryTeams,
			Entries: []*leaderboard.LeaderboardEntry{
				{Rank: 1, Name: "Tide Turners", Avatar: "🏆", Score: 8450, Members: 12, KgCollected: 612},
				{Rank: 2, Name: "Coastal Crew", Avatar: "🥈", Score: 7920, Members: 9, KgCollected: 548},
				{Rank: 3, Name: "Reef Rangers", Avatar: "🥉", Score: 7180, Members: 11, KgCollected: 496},
			},
		},
		leaderboard.CategoryMonthly: {
			Category: leaderboard.CategoryMonthly,
			Entries: []*leaderboard.LeaderboardEntry{
				{Rank: 1, Name: "Priya Nair", Avatar: "🔥", Score: 640, Rallies: 5, KgCollected: 42},
				{Rank: 2, Name: "Aisha Rahman", Avatar: "🌊", Score: 590, Rallies: 4, KgCollected: 39},
				{Rank: 3, Name: "Jun Kai Ho", Avatar: "🌅", Score: 505, Rallies: 4, KgCollected: 33},
				{Rank: 4, Name: "Marcus Tan", Avatar: "🐢", Score: 470, Rallies: 3, KgCollected: 30},
				{Rank: 5, Name: "Sofia Lee", Avatar: "🪸", Score: 415, Rallies: 3, KgCollected: 26},
			},
		},
	}
}
