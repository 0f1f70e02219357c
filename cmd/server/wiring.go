package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/config"
	"github.com/KirkDiggler/rpg-progression/internal/engine"
	diceorchestrator "github.com/KirkDiggler/rpg-progression/internal/orchestrators/dice"
	progressionorchestrator "github.com/KirkDiggler/rpg-progression/internal/orchestrators/progression"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-progression/internal/redis"
	characterrepo "github.com/KirkDiggler/rpg-progression/internal/repositories/character"
	dicesession "github.com/KirkDiggler/rpg-progression/internal/repositories/dice_session"
	levelupsession "github.com/KirkDiggler/rpg-progression/internal/repositories/levelup_session"
	"github.com/KirkDiggler/rpg-progression/internal/services/progression"
)

// dependencies is everything the server hands to its handlers
type dependencies struct {
	engine        engine.Engine
	characterRepo characterrepo.Repository
	progression   progression.Service
	dice          diceorchestrator.Service

	closers []func() error
}

// Close releases stores in reverse order of opening
func (d *dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			slog.Warn("failed to close dependency", "error", err)
		}
	}
}

func newEngine() (engine.Engine, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	e, err := engine.New(&engine.Config{Catalog: cat})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return e, nil
}

func newRedisClient(cfg *config.Config) (redis.Client, error) {
	opts := &redis.Options{
		PoolSize: cfg.RedisPoolSize,
		UseTLS:   cfg.RedisTLS,
	}
	if cfg.RedisSentinelMaster != "" {
		return redis.NewFailoverClient(cfg.RedisSentinelMaster, cfg.RedisSentinelAddrs, opts)
	}
	return redis.NewClient(cfg.RedisAddr, opts)
}

// openCharacterRepo opens the configured character store. redisClient is
// only used by the redis store.
func openCharacterRepo(
	ctx context.Context,
	cfg *config.Config,
	redisClient redis.Client,
	clk clock.Clock,
) (characterrepo.Repository, func() error, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		repo, err := characterrepo.OpenSQLite(ctx, &characterrepo.SQLiteConfig{
			Path:  cfg.SQLitePath,
			Clock: clk,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite character store: %w", err)
		}
		return repo, repo.Close, nil
	default:
		repo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{
			Client: redisClient,
			Clock:  clk,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis character store: %w", err)
		}
		return repo, func() error { return nil }, nil
	}
}

func buildDependencies(ctx context.Context, cfg *config.Config) (*dependencies, error) {
	deps := &dependencies{}
	clk := clock.New()

	e, err := newEngine()
	if err != nil {
		return nil, err
	}
	deps.engine = e

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	deps.closers = append(deps.closers, redisClient.Close)

	if err := redisClient.Ping(ctx).Err(); err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	charRepo, closeChars, err := openCharacterRepo(ctx, cfg, redisClient, clk)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.characterRepo = charRepo
	deps.closers = append(deps.closers, closeChars)

	sessionRepo, err := levelupsession.NewRedis(&levelupsession.RedisConfig{
		Client: redisClient,
		Clock:  clk,
		TTL:    cfg.LevelUpSessionTTL,
	})
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to create level-up session store: %w", err)
	}

	diceRepo, err := dicesession.NewRedisRepository(&dicesession.Config{
		Client: redisClient,
		Clock:  clk,
		TTL:    cfg.DiceSessionTTL,
	})
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to create dice session store: %w", err)
	}

	diceService, err := diceorchestrator.NewOrchestrator(&diceorchestrator.Config{
		DiceSessionRepo: diceRepo,
		IDGenerator:     idgen.NewUUID("roll"),
		Roller:          dice.DefaultRoller,
		SessionTTL:      cfg.DiceSessionTTL,
	})
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to create dice service: %w", err)
	}
	deps.dice = diceService

	bus := events.NewBus()
	progressionorchestrator.LogEvents(bus)

	progressionService, err := progressionorchestrator.New(&progressionorchestrator.Config{
		CharacterRepo:      charRepo,
		LevelUpSessionRepo: sessionRepo,
		DiceService:        diceService,
		Engine:             e,
		EventBus:           bus,
		IDGenerator:        idgen.NewUUID("lvl"),
		SessionTTL:         cfg.LevelUpSessionTTL,
	})
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to create progression service: %w", err)
	}
	deps.progression = progressionService

	return deps, nil
}
