package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"modconsole.com/internal/constants"
	"modconsole.com/internal/domain"
	"modconsole.com/internal/model"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps operator sessions in redis: the bearer token, the
// operator's display name, a pending flash notice, and one snapshot per view.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string {
	return constants.RedisSessionPrefix + id
}

// Create starts a session for token and returns its id.
func (s *SessionStore) Create(ctx context.Context, token, actor string) (string, error) {
	id := uuid.NewString()
	key := sessionKey(id)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, constants.SessionFieldToken, token, constants.SessionFieldActor, actor)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

// Identity returns the token and actor of a session.
func (s *SessionStore) Identity(ctx context.Context, id string) (token, actor string, err error) {
	if id == "" {
		return "", "", ErrSessionNotFound
	}
	vals, err := s.rdb.HMGet(ctx, sessionKey(id), constants.SessionFieldToken, constants.SessionFieldActor).Result()
	if err != nil {
		return "", "", fmt.Errorf("load session: %w", err)
	}
	token, _ = vals[0].(string)
	actor, _ = vals[1].(string)
	if token == "" {
		return "", "", ErrSessionNotFound
	}
	return token, actor, nil
}

// Destroy drops the session with its token, flash and snapshots.
func (s *SessionStore) Destroy(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// SetFlash stores a notice to show on the next rendered page.
func (s *SessionStore) SetFlash(ctx context.Context, id string, notice model.Notice) error {
	return s.setJSON(ctx, id, constants.SessionFieldFlash, notice)
}

// PopFlash returns and clears the pending notice.
func (s *SessionStore) PopFlash(ctx context.Context, id string) (model.Notice, error) {
	var notice model.Notice
	key := sessionKey(id)

	var get *redis.StringCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.HGet(ctx, key, constants.SessionFieldFlash)
		pipe.HDel(ctx, key, constants.SessionFieldFlash)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return notice, fmt.Errorf("pop flash: %w", err)
	}
	raw, err := get.Result()
	if errors.Is(err, redis.Nil) {
		return notice, nil
	}
	if err != nil {
		return notice, fmt.Errorf("pop flash: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &notice); err != nil {
		return model.Notice{}, domain.NewInternalError("decode flash", err)
	}
	return notice, nil
}

// SaveView stores the last state a view rendered, replacing any previous one.
func (s *SessionStore) SaveView(ctx context.Context, id, view string, state any) error {
	return s.setJSON(ctx, id, constants.SessionViewPrefix+view, state)
}

// LoadView decodes the snapshot of view into state. It reports false when
// there is none.
func (s *SessionStore) LoadView(ctx context.Context, id, view string, state any) (bool, error) {
	raw, err := s.rdb.HGet(ctx, sessionKey(id), constants.SessionViewPrefix+view).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load view %s: %w", view, err)
	}
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		return false, domain.NewInternalError("decode view "+view, err)
	}
	return true, nil
}

func (s *SessionStore) setJSON(ctx context.Context, id, field string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return domain.NewInternalError("encode "+field, err)
	}
	key := sessionKey(id)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, field, data)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store %s: %w", field, err)
	}
	return nil
}
