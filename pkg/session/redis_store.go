package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis for deployments that keep the session
// hot path off the relational database.
//
// Key schema:
//
//	session:{tokenHash}      JSON session record, TTL = hard expiry
//	session:id:{id}          id -> token hash lookup
//	sessions:user:{userID}   ZSET of ids scored by LastActivity
//	sessions:expiry          ZSET of ids scored by ExpiresAt
//	sessions:activity        ZSET of active ids scored by LastActivity
//
// The per-user ZSET gives ListActiveByUser its LastActivity-ascending order
// directly. TTLs retire records at the hard ceiling even if the sweep never
// runs; the sweep still handles idle-expired rows that are not yet past the
// ceiling. Activity updates are last-writer-wins: concurrent validations of
// one session write near-identical timestamps, which keeps LastActivity
// non-decreasing in practice without a cross-call transaction.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore returns a session store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

const (
	redisKeyExpiry   = "sessions:expiry"
	redisKeyActivity = "sessions:activity"
)

func redisKeySession(tokenHash string) string { return "session:" + tokenHash }
func redisKeyID(id uuid.UUID) string          { return "session:id:" + id.String() }
func redisKeyUser(userID uuid.UUID) string    { return "sessions:user:" + userID.String() }

// redisSession is the stored form of a Session; unlike the API type it
// round-trips the token hash.
type redisSession struct {
	Session
	TokenHash string `json:"token_hash"`
}

// Insert stores a new session, enforcing token hash uniqueness via SETNX.
func (r *RedisStore) Insert(ctx context.Context, s *Session) error {
	if s == nil || s.TokenHash == "" {
		return ErrInvalidSession
	}

	data, err := json.Marshal(redisSession{Session: *s, TokenHash: s.TokenHash})
	if err != nil {
		return err
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return ErrInvalidSession
	}

	ok, err := r.client.SetNX(ctx, redisKeySession(s.TokenHash), data, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("duplicate token hash: %w", ErrStore)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, redisKeyID(s.ID), s.TokenHash, ttl)
	pipe.ZAdd(ctx, redisKeyUser(s.UserID), redis.Z{Score: unixScore(s.LastActivity), Member: s.ID.String()})
	pipe.ZAdd(ctx, redisKeyExpiry, redis.Z{Score: unixScore(s.ExpiresAt), Member: s.ID.String()})
	pipe.ZAdd(ctx, redisKeyActivity, redis.Z{Score: unixScore(s.LastActivity), Member: s.ID.String()})
	_, err = pipe.Exec(ctx)
	return err
}

// FindActiveByTokenHash returns the active, non-hard-expired session for the
// token hash, or ErrSessionNotFoundOrExpired.
func (r *RedisStore) FindActiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*Session, error) {
	s, err := r.getByHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if !s.IsActive || !s.ExpiresAt.After(now) {
		return nil, ErrSessionNotFoundOrExpired
	}
	return s, nil
}

// ListActiveByUser returns the user's active, non-hard-expired sessions
// ordered by LastActivity ascending.
func (r *RedisStore) ListActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]Session, error) {
	ids, err := r.client.ZRange(ctx, redisKeyUser(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var out []Session
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		s, err := r.getByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrSessionNotFoundOrExpired) {
				// TTL already retired the record; drop the index entry.
				r.client.ZRem(ctx, redisKeyUser(userID), raw)
				continue
			}
			return nil, err
		}
		if s.IsActive && s.ExpiresAt.After(now) {
			out = append(out, *s)
		}
	}
	return out, nil
}

// UpdateActivity sets LastActivity and reindexes the activity scores.
func (r *RedisStore) UpdateActivity(ctx context.Context, id uuid.UUID, at time.Time) error {
	s, err := r.getByID(ctx, id)
	if err != nil {
		return err
	}

	s.LastActivity = at
	s.UpdatedAt = at
	if err := r.save(ctx, s); err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.ZAdd(ctx, redisKeyUser(s.UserID), redis.Z{Score: unixScore(at), Member: id.String()})
	pipe.ZAdd(ctx, redisKeyActivity, redis.Z{Score: unixScore(at), Member: id.String()})
	_, err = pipe.Exec(ctx)
	return err
}

// MarkInactive flips IsActive and removes the session from the active index.
func (r *RedisStore) MarkInactive(ctx context.Context, id uuid.UUID) error {
	s, err := r.getByID(ctx, id)
	if err != nil {
		return err
	}
	return r.deactivate(ctx, s)
}

// MarkInactiveOwned flips IsActive only when the session is owned by userID.
func (r *RedisStore) MarkInactiveOwned(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	s, err := r.getByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFoundOrExpired) {
			return false, nil
		}
		return false, err
	}
	if s.UserID != userID {
		return false, nil
	}
	if err := r.deactivate(ctx, s); err != nil {
		return false, err
	}
	return true, nil
}

// MarkAllInactiveByUser flips IsActive for every session owned by the user.
func (r *RedisStore) MarkAllInactiveByUser(ctx context.Context, userID uuid.UUID) error {
	ids, err := r.client.ZRange(ctx, redisKeyUser(userID), 0, -1).Result()
	if err != nil {
		return err
	}

	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		s, err := r.getByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrSessionNotFoundOrExpired) {
				continue
			}
			return err
		}
		if err := r.deactivate(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Delete hard-deletes the session and all its index entries.
func (r *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	s, err := r.getByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFoundOrExpired) {
			return nil
		}
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, redisKeySession(s.TokenHash), redisKeyID(id))
	pipe.ZRem(ctx, redisKeyUser(s.UserID), id.String())
	pipe.ZRem(ctx, redisKeyExpiry, id.String())
	pipe.ZRem(ctx, redisKeyActivity, id.String())
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteExpired hard-deletes hard-expired sessions and active sessions whose
// LastActivity is before idleCutoff.
func (r *RedisStore) DeleteExpired(ctx context.Context, now, idleCutoff time.Time) (int64, error) {
	expired, err := r.client.ZRangeByScore(ctx, redisKeyExpiry, &redis.ZRangeBy{
		Min: "-inf", Max: formatScore(unixScore(now)),
	}).Result()
	if err != nil {
		return 0, err
	}

	stale, err := r.client.ZRangeByScore(ctx, redisKeyActivity, &redis.ZRangeBy{
		Min: "-inf", Max: formatScore(unixScore(idleCutoff)),
	}).Result()
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(expired)+len(stale))
	var deleted int64
	for _, raw := range append(expired, stale...) {
		if _, dup := seen[raw]; dup {
			continue
		}
		seen[raw] = struct{}{}

		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		if err := r.Delete(ctx, id); err != nil {
			return deleted, err
		}
		// Index entries can outlive a TTL-retired record; Delete above is a
		// no-op then, so clear the global indexes explicitly.
		r.client.ZRem(ctx, redisKeyExpiry, raw)
		r.client.ZRem(ctx, redisKeyActivity, raw)
		deleted++
	}
	return deleted, nil
}

func (r *RedisStore) getByHash(ctx context.Context, tokenHash string) (*Session, error) {
	data, err := r.client.Get(ctx, redisKeySession(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFoundOrExpired
		}
		return nil, err
	}

	var rs redisSession
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, err
	}
	s := rs.Session
	s.TokenHash = rs.TokenHash
	return &s, nil
}

func (r *RedisStore) getByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	hash, err := r.client.Get(ctx, redisKeyID(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFoundOrExpired
		}
		return nil, err
	}
	return r.getByHash(ctx, hash)
}

func (r *RedisStore) save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(redisSession{Session: *s, TokenHash: s.TokenHash})
	if err != nil {
		return err
	}
	// KeepTTL preserves the hard-expiry deadline set at insert.
	return r.client.Set(ctx, redisKeySession(s.TokenHash), data, redis.KeepTTL).Err()
}

func (r *RedisStore) deactivate(ctx context.Context, s *Session) error {
	s.IsActive = false
	s.UpdatedAt = time.Now()
	if err := r.save(ctx, s); err != nil {
		return err
	}
	return r.client.ZRem(ctx, redisKeyActivity, s.ID.String()).Err()
}

func unixScore(t time.Time) float64 {
	return float64(t.UnixMilli())
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
