package dicesession

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-progression/internal/redis"
)

const (
	// Key pattern: progression:dice:{entity_id}:{context}
	sessionKeyPrefix = "progression:dice:"

	// DefaultTTL applies when neither the input nor the config sets one
	DefaultTTL = 15 * time.Minute

	// Error messages
	errSessionNil     = "session cannot be nil"
	errEntityIDEmpty  = "entity ID cannot be empty"
	errContextEmpty   = "context cannot be empty"
	errSessionExpired = "session has already expired"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	TTL    time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.TTL < 0 {
		vb.InvalidField("TTL", "must not be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis repository for dice sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Create stores a new dice session, replacing any session under the same key
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl <= 0 {
		ttl = r.ttl
	}

	session := &DiceSession{
		EntityID:  input.EntityID,
		Context:   input.Context,
		Rolls:     input.Rolls,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	if err := r.client.Set(ctx, buildKey(input.EntityID, input.Context), data, ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store session in Redis")
	}

	slog.DebugContext(ctx, "created dice session",
		"entity_id", input.EntityID,
		"context", input.Context,
		"rolls", len(input.Rolls))

	return &CreateOutput{Session: session}, nil
}

// Get retrieves a dice session by entity ID and context
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	key := buildKey(input.EntityID, input.Context)
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("dice session not found")
		}
		return nil, errors.Wrapf(err, "failed to get session from Redis")
	}

	var session DiceSession
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, errors.Internalf("failed to unmarshal dice session: %v", err)
	}

	// Redis expiry and the recorded expiry can disagree when clocks drift
	if r.clock.Now().After(session.ExpiresAt) {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			slog.WarnContext(ctx, "failed to remove expired dice session",
				"entity_id", input.EntityID,
				"context", input.Context,
				"error", err)
		}
		return nil, errors.NotFound("dice session has expired")
	}

	return &GetOutput{Session: &session}, nil
}

// Delete removes a dice session. Deleting a missing session is not an error.
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	var rollsDeleted int
	existing, err := r.Get(ctx, GetInput(input))
	switch {
	case err == nil:
		rollsDeleted = len(existing.Session.Rolls)
	case !errors.IsNotFound(err):
		return nil, err
	}

	if err := r.client.Del(ctx, buildKey(input.EntityID, input.Context)).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete session from Redis")
	}

	return &DeleteOutput{RollsDeleted: rollsDeleted}, nil
}

// Update replaces an existing session with the remaining TTL
func (r *redisRepository) Update(ctx context.Context, session *DiceSession) error {
	if session == nil {
		return errors.InvalidArgument(errSessionNil)
	}
	if err := validateKey(session.EntityID, session.Context); err != nil {
		return err
	}

	now := r.clock.Now()
	if !now.Before(session.ExpiresAt) {
		return errors.FailedPrecondition(errSessionExpired)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal session")
	}

	err = r.client.Set(ctx, buildKey(session.EntityID, session.Context), data, session.ExpiresAt.Sub(now)).Err()
	if err != nil {
		return errors.Wrapf(err, "failed to update session in Redis")
	}

	return nil
}

func validateKey(entityID, context string) error {
	if entityID == "" {
		return errors.InvalidArgument(errEntityIDEmpty)
	}
	if context == "" {
		return errors.InvalidArgument(errContextEmpty)
	}
	return nil
}

func buildKey(entityID, context string) string {
	return fmt.Sprintf("%s%s:%s", sessionKeyPrefix, entityID, context)
}
