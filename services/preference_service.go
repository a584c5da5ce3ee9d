package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"shoreSquadAPI/internal/types/preferences"
)

var ErrInvalidPreferences = errors.New("preferences must be valid JSON")

// PreferenceService keeps one opaque settings blob per deployment, stored
// under the client's fixed storage key. A missing or corrupt file on boot
// just means "no preferences"; it is never fatal.
type PreferenceService struct {
	mu   sync.RWMutex
	blob preferences.Blob
	path string
}

func NewPreferenceService(dataDir string) *PreferenceService {
	s := &PreferenceService{
		blob: preferences.Empty,
		path: filepath.Join(dataDir, preferences.StorageKey+".json"),
	}
	s.load()
	return s
}

func (s *PreferenceService) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		// First run or unreadable file: start empty.
		return
	}
	if !json.Valid(raw) {
		log.Printf("WARN: preferences file %s is not valid JSON, starting empty", s.path)
		return
	}
	s.blob = raw
}

// Get returns the stored blob verbatim.
func (s *PreferenceService) Get(ctx context.Context) preferences.Blob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blob
}

// Update overwrites the whole blob, mirroring a localStorage set. The new
// document must at least be valid JSON; beyond that the shape is the
// client's business.
func (s *PreferenceService) Update(ctx context.Context, raw preferences.Blob) error {
	if !json.Valid(raw) {
		return ErrInvalidPreferences
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	s.blob = raw
	return nil
}
