package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoreSquadAPI/internal/types/beach"
)

func TestBeachService_FullList(t *testing.T) {
	s := NewBeachService()

	beaches, err := s.GetBeaches(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, beaches, 5)

	for _, b := range beaches {
		assert.NotEmpty(t, b.ID)
		assert.NotEmpty(t, b.Name)
		assert.False(t, b.Coordinate.IsZero())
		assert.True(t, beach.ValidStatus(b.Status))
	}
}

func TestBeachService_FreeTextFilter(t *testing.T) {
	s := NewBeachService()

	beaches, err := s.GetBeaches(context.Background(), "changi", "")
	require.NoError(t, err)
	require.Len(t, beaches, 1)
	assert.Equal(t, "changi-beach", beaches[0].ID)

	// Description text matches too.
	beaches, err = s.GetBeaches(context.Background(), "mangrove", "")
	require.NoError(t, err)
	require.Len(t, beaches, 1)
	assert.Equal(t, "pasir-ris-park", beaches[0].ID)
}

func TestBeachService_StatusFilter(t *testing.T) {
	s := NewBeachService()

	beaches, err := s.GetBeaches(context.Background(), "", beach.StatusActiveRally)
	require.NoError(t, err)
	require.Len(t, beaches, 2)
	for _, b := range beaches {
		assert.Equal(t, beach.StatusActiveRally, b.Status)
	}
}

func TestBeachService_UnknownStatusRejected(t *testing.T) {
	s := NewBeachService()

	_, err := s.GetBeaches(context.Background(), "", beach.Status("pristine"))
	require.ErrorIs(t, err, ErrUnknownBeachStatus)
}

func TestBeachService_NoMatchesIsEmptyNotError(t *testing.T) {
	s := NewBeachService()

	beaches, err := s.GetBeaches(context.Background(), "atlantis", "")
	require.NoError(t, err)
	assert.Empty(t, beaches)
}

func TestBeachService_GetBeach(t *testing.T) {
	s := NewBeachService()

	b, ok := s.GetBeach(context.Background(), "east-coast-park")
	require.True(t, ok)
	assert.Equal(t, "East Coast Park", b.Name)

	_, ok = s.GetBeach(context.Background(), "no-such-beach")
	assert.False(t, ok)
}
