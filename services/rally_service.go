package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/jonboulle/clockwork"

	"shoreSquadAPI/internal/types/rally"
	"shoreSquadAPI/utils"
)

var ErrRallyNotFound = errors.New("rally not found")

// RallyListener is notified with a fresh list snapshot after every
// successful mutation. Wired from main.go; nil means nobody is listening.
type RallyListener interface {
	RallyListChanged(rallies []*rally.Rally)
}

// RallyService owns the in-memory rally list. The list lives for the
// process session only, newest rally first.
type RallyService struct {
	mu       sync.RWMutex
	rallies  []*rally.Rally
	lastID   int64
	clock    clockwork.Clock
	listener RallyListener
}

func NewRallyService(clock clockwork.Clock) *RallyService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RallyService{
		rallies: make([]*rally.Rally, 0),
		clock:   clock,
	}
}

// SetListener wires the live feed in from main.go after both sides exist.
func (s *RallyService) SetListener(l RallyListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
}

// CreateRally validates the request and prepends the new rally. On
// validation failure the list is untouched and the error carries the
// per-field messages.
func (s *RallyService) CreateRally(ctx context.Context, req *rally.CreateRallyRequest) (*rally.Rally, error) {
	if err := validateRallyRequest(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	r := &rally.Rally{
		ID:           s.nextIDLocked(),
		Name:         req.Name,
		Location:     req.Location,
		StartsAt:     req.Date,
		Description:  req.Description,
		Creator:      req.Creator,
		Participants: 1,
		Status:       rally.StatusActive,
		CreatedAt:    s.clock.Now(),
	}
	s.rallies = append([]*rally.Rally{r}, s.rallies...)
	snapshot := s.snapshotLocked()
	listener := s.listener
	s.mu.Unlock()

	log.Printf("Rally created: %s (%s) at %s", r.Name, r.ID, r.Location)
	if listener != nil {
		listener.RallyListChanged(snapshot)
	}
	return r, nil
}

// JoinRally bumps the participant count for exactly one rally. Unknown IDs
// leave every rally untouched.
func (s *RallyService) JoinRally(ctx context.Context, id string) (*rally.Rally, error) {
	s.mu.Lock()
	var joined *rally.Rally
	for _, r := range s.rallies {
		if r.ID == id {
			r.Participants++
			joined = r
			break
		}
	}
	if joined == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("join %s: %w", id, ErrRallyNotFound)
	}
	snapshot := s.snapshotLocked()
	listener := s.listener
	s.mu.Unlock()

	log.Printf("Rally joined: %s, now %d participants", joined.ID, joined.Participants)
	if listener != nil {
		listener.RallyListChanged(snapshot)
	}
	return joined, nil
}

// JoinNext joins the soonest-starting active rally. With an empty list it
// falls back to creating the canned rally and joining that.
func (s *RallyService) JoinNext(ctx context.Context) (*rally.Rally, error) {
	s.mu.RLock()
	next := nextUpcoming(s.rallies)
	s.mu.RUnlock()

	if next == nil {
		created, err := s.CreateRally(ctx, defaultRallyRequest())
		if err != nil {
			return nil, fmt.Errorf("seed next rally: %w", err)
		}
		next = created
	}
	return s.JoinRally(ctx, next.ID)
}

// GetRally returns one rally by ID.
func (s *RallyService) GetRally(ctx context.Context, id string) (*rally.Rally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rallies {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get %s: %w", id, ErrRallyNotFound)
}

// GetRallies returns the current list, newest first.
func (s *RallyService) GetRallies(ctx context.Context) []*rally.Rally {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// CountUpcoming reports how many rallies are still active.
func (s *RallyService) CountUpcoming(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, r := range s.rallies {
		if r.Status == rally.StatusActive {
			count++
		}
	}
	return count
}

// SeedDemoData loads the canned rallies the page ships with. Called once
// from main.go before the server accepts traffic.
func (s *RallyService) SeedDemoData(ctx context.Context) {
	seeds := []*rally.CreateRallyRequest{
		{
			Name:        "Sunrise Squad",
			Location:    "East Coast Park",
			Date:        "2025-01-18T07:30",
			Description: "Early birds clearing Area C before the crowds roll in.",
			Creator:     "Aisha",
		},
		{
			Name:        "Weekend Warriors",
			Location:    "Pasir Ris Park",
			Date:        "2025-01-25T16:00",
			Description: "Family-friendly cleanup, gloves and grabbers provided.",
			Creator:     "Marcus",
		},
	}

	for i := len(seeds) - 1; i >= 0; i-- {
		if _, err := s.CreateRally(ctx, seeds[i]); err != nil {
			log.Printf("WARN: seed rally %q: %v", seeds[i].Name, err)
		}
	}
}

// snapshotLocked copies the list so callers can't reach the live structs.
// Callers must hold at least the read lock.
func (s *RallyService) snapshotLocked() []*rally.Rally {
	out := make([]*rally.Rally, len(s.rallies))
	for i, r := range s.rallies {
		copied := *r
		out[i] = &copied
	}
	return out
}

// nextIDLocked derives the next millisecond-timestamp ID, bumping past the
// previous one when two creates land in the same tick. Callers must hold
// the write lock.
func (s *RallyService) nextIDLocked() string {
	id := s.clock.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

func nextUpcoming(rallies []*rally.Rally) *rally.Rally {
	var next *rally.Rally
	for _, r := range rallies {
		if r.Status != rally.StatusActive {
			continue
		}
		if next == nil {
			next = r
			continue
		}
		rt, nt := rally.ParseStartsAt(r.StartsAt), rally.ParseStartsAt(next.StartsAt)
		if nt.IsZero() || (!rt.IsZero() && rt.Before(nt)) {
			next = r
		}
	}
	return next
}

func defaultRallyRequest() *rally.CreateRallyRequest {
	return &rally.CreateRallyRequest{
		Name:        "Next Beach Cleanup",
		Location:    "East Coast Park",
		Date:        "2025-02-01T08:00",
		Description: "Spontaneous crew meetup, just show up.",
		Creator:     "ShoreSquad",
	}
}

func validateRallyRequest(req *rally.CreateRallyRequest) error {
	fieldErr := utils.RequireFields(map[string]string{
		"name":     req.Name,
		"location": req.Location,
		"date":     req.Date,
	})
	if fieldErr != nil {
		return fieldErr
	}
	if rally.ParseStartsAt(req.Date).IsZero() {
		return &utils.ValidationError{Fields: map[string]string{
			"date": "date must look like 2025-01-10T09:00",
		}}
	}
	return nil
}
