package character

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-progression/internal/redis"
)

const (
	characterKeyPrefix = "progression:character:"
	playerIndexPrefix  = "progression:character:player:"

	// Error messages
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errPlayerIDEmpty    = "player ID cannot be empty"
	errUpdateNil        = "update cannot be nil"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	char := prepareForCreate(input.Character, r.clock.Now().Unix())
	key := characterKeyPrefix + char.ID

	data, err := json.Marshal(char)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	// SETNX keeps two creates of the same ID from both succeeding
	created, err := r.client.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}
	if !created {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", char.ID)
	}

	if char.PlayerID != "" {
		if err := r.client.SAdd(ctx, playerIndexPrefix+char.PlayerID, char.ID).Err(); err != nil {
			return nil, errors.Wrapf(err, "failed to index character")
		}
	}

	slog.DebugContext(ctx, "created character",
		"character_id", char.ID,
		"player_id", char.PlayerID)

	return &CreateOutput{Character: char}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	result, err := r.client.Get(ctx, characterKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	char, err := decodeCharacter([]byte(result))
	if err != nil {
		return nil, err
	}

	return &GetOutput{Character: char}, nil
}

// Update reads, applies and writes under WATCH so a concurrent writer aborts
// this update rather than being overwritten
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.Update == nil {
		return nil, errors.InvalidArgument(errUpdateNil)
	}
	if err := input.Update.Validate(); err != nil {
		return nil, err
	}

	key := characterKeyPrefix + input.ID
	var updated *dnd5e.Character

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		result, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return errors.NotFoundf("character with ID %s not found", input.ID)
			}
			return errors.Wrapf(err, "failed to get character")
		}

		char, err := decodeCharacter([]byte(result))
		if err != nil {
			return err
		}
		if err := applyUpdate(char, input, r.clock.Now().Unix()); err != nil {
			return err
		}

		data, err := json.Marshal(char)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal character")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = char
		return nil
	}, key)
	if err != nil {
		if err == redis.TxFailedErr {
			return nil, errors.Abortedf("character %s was modified concurrently", input.ID)
		}
		var appErr *errors.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to update character")
	}

	slog.DebugContext(ctx, "updated character",
		"character_id", updated.ID,
		"level", updated.Level)

	return &UpdateOutput{Character: updated}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}
	char := getOutput.Character

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, characterKeyPrefix+input.ID)
	if char.PlayerID != "" {
		pipe.SRem(ctx, playerIndexPrefix+char.PlayerID, input.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByPlayerID(
	ctx context.Context,
	input ListByPlayerIDInput,
) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	indexKey := playerIndexPrefix + input.PlayerID
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		slog.ErrorContext(ctx, "failed to read player index",
			"player_id", input.PlayerID,
			"error", err.Error())
		return nil, errors.Wrapf(err, "failed to list characters for player %s", input.PlayerID)
	}

	characters := make([]*dnd5e.Character, 0, len(ids))
	for _, id := range ids {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			// Stale index entries are cleaned up as they are found
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "character not found, cleaning up index",
					"character_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get character %s", id)
		}
		characters = append(characters, getOutput.Character)
	}
	sortCharacters(characters)

	slog.DebugContext(ctx, "listed characters by player",
		"player_id", input.PlayerID,
		"count", len(characters))

	return &ListByPlayerIDOutput{Characters: characters}, nil
}

func decodeCharacter(data []byte) (*dnd5e.Character, error) {
	var char dnd5e.Character
	if err := json.Unmarshal(data, &char); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character")
	}
	char.SyncAbilityMirrors()
	return &char, nil
}
