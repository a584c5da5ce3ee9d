package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"shoreSquadAPI/utils"
)

// DefaultWarmupDuration is how long the impact counters take to climb to
// their targets after boot.
const DefaultWarmupDuration = 1500 * time.Millisecond

// countUpSteps is how many ticks the climb is split into.
const countUpSteps = 30

// ImpactStats are the landing page counters.
type ImpactStats struct {
	BeachesCleaned  int `json:"beaches_cleaned"`
	TrashKg         int `json:"trash_kg"`
	Volunteers      int `json:"volunteers"`
	UpcomingRallies int `json:"upcoming_rallies"`
}

// impactTargets are the fixed values the counters settle on.
var impactTargets = ImpactStats{
	BeachesCleaned:  89,
	TrashKg:         2450,
	Volunteers:      1200,
	UpcomingRallies: 12,
}

// StatsService animates the impact counters from zero to their targets
// once, during warmup. After that the values never move again.
type StatsService struct {
	mu      sync.RWMutex
	current ImpactStats
	ready   bool

	targets  ImpactStats
	duration time.Duration
	clock    clockwork.Clock
}

func NewStatsService(warmup time.Duration, clock clockwork.Clock) *StatsService {
	if warmup <= 0 {
		warmup = DefaultWarmupDuration
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StatsService{
		targets:  impactTargets,
		duration: warmup,
		clock:    clock,
	}
}

// Start kicks off the one-shot count-up in the background.
func (s *StatsService) Start(ctx context.Context) {
	go s.countUp(ctx)
}

func (s *StatsService) countUp(ctx context.Context) {
	step := s.duration / countUpSteps
	ticker := s.clock.NewTicker(step)
	defer ticker.Stop()

	for i := 1; i <= countUpSteps; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		}

		frac := float64(i) / countUpSteps
		s.mu.Lock()
		s.current = scaleStats(s.targets, frac)
		if i == countUpSteps {
			s.ready = true
		}
		s.mu.Unlock()
	}
}

// GetStats returns the counters as they stand right now.
func (s *StatsService) GetStats(ctx context.Context) ImpactStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// ImpactScore condenses the counters into the single headline number the
// hero banner shows. It climbs together with the counters.
func (s *StatsService) ImpactScore(ctx context.Context) float64 {
	current := s.GetStats(ctx)
	return utils.CalculateImpactScore(current.BeachesCleaned, current.TrashKg, current.Volunteers)
}

// Warm reports whether the count-up has finished.
func (s *StatsService) Warm() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// CheckReadiness gates /readyz on the warmup.
func (s *StatsService) CheckReadiness() error {
	if !s.Warm() {
		return errors.New("still warming up")
	}
	return nil
}

func scaleStats(t ImpactStats, frac float64) ImpactStats {
	return ImpactStats{
		BeachesCleaned:  int(float64(t.BeachesCleaned) * frac),
		TrashKg:         int(float64(t.TrashKg) * frac),
		Volunteers:      int(float64(t.Volunteers) * frac),
		UpcomingRallies: int(float64(t.UpcomingRallies) * frac),
	}
}
