package client

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip_tracker/internal/models"
)

func TestFileCache_RoundTrip(t *testing.T) {
	c := NewFileCache(t.TempDir(), 0)
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, _, err := c.Load()
	assert.ErrorIs(t, err, ErrCacheMiss)

	trip := &models.Trip{Title: "Coast", TotalDays: 0, Extra: models.Extra{"zoom": []byte("7")}}
	require.NoError(t, c.Save(trip))

	got, saved, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, "Coast", got.Title)
	assert.Contains(t, got.Extra, "zoom")
	assert.True(t, saved.Equal(now))

	raw, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"timestamp":`)

	require.NoError(t, c.Clear())
	require.NoError(t, c.Clear(), "clearing twice is fine")
	_, _, err = c.Load()
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestFileCache_Expiry(t *testing.T) {
	c := NewFileCache(t.TempDir(), 0)
	start := time.Now()
	c.now = func() time.Time { return start }
	require.NoError(t, c.Save(&models.Trip{Title: "old"}))

	c.now = func() time.Time { return start.Add(23 * time.Hour) }
	_, _, err := c.Load()
	assert.NoError(t, err)

	c.now = func() time.Time { return start.Add(DefaultCacheTTL) }
	_, _, err = c.Load()
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestFileCache_Corrupt(t *testing.T) {
	c := NewFileCache(t.TempDir(), 0)
	require.NoError(t, os.WriteFile(c.Path(), []byte("{nope"), 0o644))
	_, _, err := c.Load()
	assert.ErrorIs(t, err, ErrCacheMiss)
}
