package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bandhub/bandhub/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCodec_RoundTrip(t *testing.T) {
	c, err := NewCodec([]string{"key1", "key2"}, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, c.TTL())

	token, issued, err := c.Encode(domain.Session{IsLoggedIn: true, UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, issued.IssuedAt.Add(time.Hour), issued.ExpiresAt)

	s, err := c.Decode(token)
	require.NoError(t, err)
	assert.True(t, s.Authenticated())
	assert.Equal(t, int64(7), s.UserID)
}

func TestCodec_ExpiresAfterOneHour(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c, err := NewCodec([]string{"key1"}, time.Hour)
	require.NoError(t, err)
	c.now = fixedClock(start)

	token, _, err := c.Encode(domain.Session{IsLoggedIn: true, UserID: 1})
	require.NoError(t, err)

	c.now = fixedClock(start.Add(3599 * time.Second))
	_, err = c.Decode(token)
	require.NoError(t, err, "token must be valid inside the window")

	c.now = fixedClock(start.Add(3601 * time.Second))
	_, err = c.Decode(token)
	assert.True(t, errors.Is(err, ErrInvalidToken), "expected expiry, got %v", err)
}

func TestCodec_KeyRotation(t *testing.T) {
	old, err := NewCodec([]string{"key2"}, time.Hour)
	require.NoError(t, err)
	token, _, err := old.Encode(domain.Session{IsLoggedIn: true, UserID: 3})
	require.NoError(t, err)

	rotated, err := NewCodec([]string{"key1", "key2"}, time.Hour)
	require.NoError(t, err)
	_, err = rotated.Decode(token)
	assert.NoError(t, err, "token signed by a listed key must verify")

	retired, err := NewCodec([]string{"key1"}, time.Hour)
	require.NoError(t, err)
	_, err = retired.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_RejectsTampering(t *testing.T) {
	c, err := NewCodec([]string{"key1"}, time.Hour)
	require.NoError(t, err)
	token, _, err := c.Encode(domain.Session{IsLoggedIn: true, UserID: 3})
	require.NoError(t, err)

	_, err = c.Decode(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = c.Decode("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewCodec_RequiresKey(t *testing.T) {
	_, err := NewCodec([]string{"", ""}, time.Hour)
	assert.ErrorIs(t, err, ErrNoKeys)
}
