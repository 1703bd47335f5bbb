package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisKeySchema(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("2d9f0a1c-8a5b-4a6e-9c3d-1f2e3a4b5c6d")
	userID := uuid.MustParse("7b8c9d0e-1f2a-4b3c-8d5e-6f7a8b9c0d1e")

	assert.Equal(t, "session:abc123", redisKeySession("abc123"))
	assert.Equal(t, "session:id:"+id.String(), redisKeyID(id))
	assert.Equal(t, "sessions:user:"+userID.String(), redisKeyUser(userID))
}

func TestRedisScoreFormatting(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	score := unixScore(at)

	assert.Equal(t, float64(at.UnixMilli()), score)
	assert.Equal(t, "1748779200000", formatScore(score))

	// Later activity must sort after earlier activity.
	assert.Greater(t, unixScore(at.Add(time.Second)), score)
}

func TestRedisSessionRoundTripsTokenHash(t *testing.T) {
	t.Parallel()

	s := Session{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		TokenHash: HashToken("raw-token"),
		IsActive:  true,
	}

	// The API type hides the hash from JSON; the stored form must keep it.
	plain, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(plain), s.TokenHash)

	stored, err := json.Marshal(redisSession{Session: s, TokenHash: s.TokenHash})
	require.NoError(t, err)
	assert.Contains(t, string(stored), s.TokenHash)

	var rs redisSession
	require.NoError(t, json.Unmarshal(stored, &rs))
	assert.Equal(t, s.TokenHash, rs.TokenHash)
	assert.Equal(t, s.ID, rs.Session.ID)
}
