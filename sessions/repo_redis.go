package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/datascope-labs/authrelay/internal/errors"
)

const (
	flowKeyPrefix    = "authrelay:flow:"
	sessionKeyPrefix = "authrelay:session:"
)

var _ Repo = (*RedisRepo)(nil)

// RedisRepo is a Redis-backed implementation of Repo for multi-instance
// deployments. Expiry is delegated to per-key TTLs, and every blob is
// sealed before it is written because the backend is outside the process
// boundary.
type RedisRepo struct {
	client     redis.UniversalClient
	sealer     *Sealer
	flowTTL    time.Duration
	sessionTTL time.Duration
}

// NewRedisRepo creates a Redis-backed session repository.
func NewRedisRepo(client redis.UniversalClient, sealer *Sealer, flowTTL, sessionTTL time.Duration) (*RedisRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if sealer == nil {
		return nil, fmt.Errorf("sealer is required")
	}
	return &RedisRepo{
		client:     client,
		sealer:     sealer,
		flowTTL:    flowTTL,
		sessionTTL: sessionTTL,
	}, nil
}

// PutFlowState stores or replaces the login flow state for a browser.
func (r *RedisRepo) PutFlowState(ctx context.Context, browserID string, state FlowState) error {
	return r.put(ctx, flowKeyPrefix+browserID, state, r.flowTTL)
}

// TakeFlowState retrieves and deletes the flow state in one round trip.
func (r *RedisRepo) TakeFlowState(ctx context.Context, browserID string) (FlowState, error) {
	sealed, err := r.client.GetDel(ctx, flowKeyPrefix+browserID).Bytes()
	if err == redis.Nil {
		return FlowState{}, errors.ErrNotFound
	}
	if err != nil {
		return FlowState{}, fmt.Errorf("redis GETDEL failed: %w", err)
	}

	var state FlowState
	if err := r.open(sealed, &state); err != nil {
		return FlowState{}, err
	}
	return state, nil
}

// PutSession stores or replaces the session for a browser.
func (r *RedisRepo) PutSession(ctx context.Context, browserID string, session Session) error {
	return r.put(ctx, sessionKeyPrefix+browserID, session, r.sessionTTL)
}

// GetSession retrieves the session for a browser.
func (r *RedisRepo) GetSession(ctx context.Context, browserID string) (Session, error) {
	sealed, err := r.client.Get(ctx, sessionKeyPrefix+browserID).Bytes()
	if err == redis.Nil {
		return Session{}, errors.ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("redis GET failed: %w", err)
	}

	var session Session
	if err := r.open(sealed, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// DeleteSession removes the session for a browser.
func (r *RedisRepo) DeleteSession(ctx context.Context, browserID string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+browserID).Err(); err != nil {
		return fmt.Errorf("redis DEL failed: %w", err)
	}
	return nil
}

func (r *RedisRepo) put(ctx context.Context, key string, value any, ttl time.Duration) error {
	plain, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal store entry: %w", err)
	}

	sealed, err := r.sealer.Seal(plain)
	if err != nil {
		return fmt.Errorf("failed to seal store entry: %w", err)
	}

	if err := r.client.Set(ctx, key, sealed, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}
	return nil
}

func (r *RedisRepo) open(sealed []byte, target any) error {
	plain, err := r.sealer.Open(sealed)
	if err != nil {
		return fmt.Errorf("failed to open store entry: %w", err)
	}
	if err := json.Unmarshal(plain, target); err != nil {
		return fmt.Errorf("failed to unmarshal store entry: %w", err)
	}
	return nil
}
