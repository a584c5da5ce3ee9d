package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"shoreSquadAPI/internal/types/beach"
	"shoreSquadAPI/internal/types/geo"
	"shoreSquadAPI/internal/types/leaderboard"
	"shoreSquadAPI/internal/types/mapwidget"
	"shoreSquadAPI/internal/types/rally"
	"shoreSquadAPI/utils"
)

// DefaultBootstrapRefresh is how often the warmer rebuilds the snapshot.
const DefaultBootstrapRefresh = 5 * time.Minute

// refreshThrottle bounds how often Refresh actually rebuilds, however many
// callers ask.
const refreshThrottle = 30 * time.Second

// BootstrapSnapshot is the one-call payload an offline-first client caches
// before going out of coverage: everything static plus the current rally
// list, pre-assembled.
type BootstrapSnapshot struct {
	GeneratedAt  time.Time                                       `json:"generated_at"`
	Beaches      []beach.Beach                                   `json:"beaches"`
	Map          *mapwidget.Interactive                          `json:"map"`
	Leaderboards map[leaderboard.Category]*leaderboard.Leaderboard `json:"leaderboards"`
	Stats        ImpactStats                                     `json:"stats"`
	Rallies      []*rally.Rally                                  `json:"rallies"`
}

// BootstrapService is the optional snapshot warmer. When disabled nothing
// else in the API changes; REST semantics never depend on it.
type BootstrapService struct {
	beaches *BeachService
	maps    *MapService
	boards  *LeaderboardService
	stats   *StatsService
	rallies *RallyService

	refresh time.Duration
	clock   clockwork.Clock

	mu       sync.RWMutex
	snapshot *BootstrapSnapshot

	refreshNow func()
}

func NewBootstrapService(beaches *BeachService, maps *MapService, boards *LeaderboardService, stats *StatsService, rallies *RallyService, refresh time.Duration, clock clockwork.Clock) *BootstrapService {
	if refresh <= 0 {
		refresh = DefaultBootstrapRefresh
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	s := &BootstrapService{
		beaches: beaches,
		maps:    maps,
		boards:  boards,
		stats:   stats,
		rallies: rallies,
		refresh: refresh,
		clock:   clock,
	}
	s.refreshNow = utils.Throttle(clock, refreshThrottle, s.rebuild)
	return s
}

// Start builds the first snapshot and keeps it fresh until ctx ends.
func (s *BootstrapService) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *BootstrapService) run(ctx context.Context) {
	s.refreshNow()

	ticker := s.clock.NewTicker(s.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.refreshNow()
		}
	}
}

// Refresh asks for a rebuild. Calls landing inside the throttle window are
// dropped; the handler can call this freely.
func (s *BootstrapService) Refresh() {
	s.refreshNow()
}

// Snapshot returns the latest build, or false before the first one lands.
func (s *BootstrapService) Snapshot() (*BootstrapSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.snapshot != nil
}

func (s *BootstrapService) rebuild() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	beaches, err := s.beaches.GetBeaches(ctx, "", "")
	if err != nil {
		log.Printf("WARN: bootstrap snapshot skipped, beaches: %v", err)
		return
	}

	descriptor, err := s.maps.BuildInteractive(ctx, geo.DefaultCoordinate)
	if err != nil {
		log.Printf("WARN: bootstrap snapshot skipped, map: %v", err)
		return
	}

	boards := make(map[leaderboard.Category]*leaderboard.Leaderboard, 3)
	for _, c := range []leaderboard.Category{leaderboard.CategoryIndividual, leaderboard.CategoryTeams, leaderboard.CategoryMonthly} {
		board, err := s.boards.GetLeaderboard(ctx, c)
		if err != nil {
			log.Printf("WARN: bootstrap snapshot skipped, leaderboard %s: %v", c, err)
			return
		}
		boards[c] = board
	}

	snap := &BootstrapSnapshot{
		GeneratedAt:  s.clock.Now(),
		Beaches:      beaches,
		Map:          descriptor,
		Leaderboards: boards,
		Stats:        s.stats.GetStats(ctx),
		Rallies:      s.rallies.GetRallies(ctx),
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}
