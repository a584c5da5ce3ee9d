package services

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"shoreSquadAPI/utils"
)

// CrewService backs the landing page's email-capture form. Signups are
// held in memory only; the counter feeds the landing page.
type CrewService struct {
	mu      sync.RWMutex
	members map[string]CrewMember
}

type CrewMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CrewSignupRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewCrewService() *CrewService {
	return &CrewService{members: make(map[string]CrewMember)}
}

// Signup validates the form and records the member. Re-signing the same
// email is idempotent and returns the existing member.
func (s *CrewService) Signup(ctx context.Context, req *CrewSignupRequest) (*CrewMember, error) {
	if err := validateSignup(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.members[email]; ok {
		return &existing, nil
	}

	member := CrewMember{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(req.Name),
		Email: email,
	}
	s.members[email] = member

	log.Printf("Crew signup: %s", member.Email)
	return &member, nil
}

// Count reports how many members have signed up this session.
func (s *CrewService) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}

func validateSignup(req *CrewSignupRequest) error {
	fieldErr := utils.RequireFields(map[string]string{
		"name":  req.Name,
		"email": req.Email,
	})
	if fieldErr != nil {
		return fieldErr
	}
	if !utils.IsValidEmail(strings.TrimSpace(req.Email)) {
		return &utils.ValidationError{Fields: map[string]string{
			"email": "email doesn't look right",
		}}
	}
	return nil
}
