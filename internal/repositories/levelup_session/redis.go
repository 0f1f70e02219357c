package levelupsession

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-progression/internal/engine"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-progression/internal/redis"
)

const (
	// Key patterns: progression:levelup:{session_id} and
	// progression:levelup:character:{character_id} -> session_id
	sessionKeyPrefix   = "progression:levelup:"
	characterKeyPrefix = "progression:levelup:character:"

	// DefaultTTL is how long an untouched wizard survives
	DefaultTTL = 30 * time.Minute

	// Error messages
	errSessionNil       = "session cannot be nil"
	errSessionIDEmpty   = "session ID cannot be empty"
	errCharacterIDEmpty = "character ID cannot be empty"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
	// TTL applies when SaveInput.TTL is zero. Defaults to DefaultTTL.
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
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

// NewRedis creates a Redis-backed level-up session repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
		ttl:    ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.Session.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = r.ttl
	}

	session := *input.Session
	now := r.clock.Now().Unix()
	if session.CreatedAt == 0 {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	data, err := json.Marshal(&session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal level up session")
	}

	pointerKey := characterKeyPrefix + session.CharacterID
	current, err := r.client.Get(ctx, pointerKey).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to read active session")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKeyPrefix+session.ID, data, ttl)
		switch {
		case !session.IsCommitted():
			pipe.Set(ctx, pointerKey, session.ID, ttl)
		case current == session.ID:
			pipe.Del(ctx, pointerKey)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save level up session")
	}

	slog.DebugContext(ctx, "saved level up session",
		"session_id", session.ID,
		"character_id", session.CharacterID,
		"step", session.Step,
		"ttl", ttl)

	return &SaveOutput{Session: &session}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	session, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Session: session}, nil
}

func (r *redisRepository) GetActiveForCharacter(
	ctx context.Context,
	input GetActiveForCharacterInput,
) (*GetActiveForCharacterOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	pointerKey := characterKeyPrefix + input.CharacterID
	id, err := r.client.Get(ctx, pointerKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no level up in progress for character %s", input.CharacterID)
		}
		return nil, errors.Wrapf(err, "failed to read active session")
	}

	session, err := r.load(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			// The session expired before its pointer did
			if delErr := r.client.Del(ctx, pointerKey).Err(); delErr != nil {
				slog.WarnContext(ctx, "failed to remove stale level up pointer",
					"character_id", input.CharacterID,
					"error", delErr)
			}
			return nil, errors.NotFoundf("no level up in progress for character %s", input.CharacterID)
		}
		return nil, err
	}
	if session.IsCommitted() {
		return nil, errors.NotFoundf("no level up in progress for character %s", input.CharacterID)
	}

	return &GetActiveForCharacterOutput{Session: session}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	session, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	pointerKey := characterKeyPrefix + session.CharacterID
	current, err := r.client.Get(ctx, pointerKey).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to read active session")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKeyPrefix+session.ID)
		if current == session.ID {
			pipe.Del(ctx, pointerKey)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete level up session")
	}

	slog.DebugContext(ctx, "deleted level up session",
		"session_id", session.ID,
		"character_id", session.CharacterID)

	return &DeleteOutput{}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*engine.LevelUpSession, error) {
	result, err := r.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("level up session %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get level up session")
	}

	var session engine.LevelUpSession
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, errors.Internalf("failed to unmarshal level up session %s: %v", id, err)
	}
	return &session, nil
}
