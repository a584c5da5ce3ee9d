package rally

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseStartsAt_FormInput(t *testing.T) {
	got := ParseStartsAt("2025-01-10T09:00")
	assert.Equal(t, time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC), got)
}

func TestParseStartsAt_RFC3339(t *testing.T) {
	got := ParseStartsAt("2025-01-10T09:00:00+08:00")
	assert.False(t, got.IsZero())
	assert.Equal(t, 2025, got.Year())
}

func TestParseStartsAt_GarbageIsZero(t *testing.T) {
	assert.True(t, ParseStartsAt("next tuesday").IsZero())
	assert.True(t, ParseStartsAt("").IsZero())
}
