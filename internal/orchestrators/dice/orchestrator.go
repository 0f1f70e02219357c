// Package dice implements the dice orchestrator for handling dice roll sessions
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/rpg-progression/internal/orchestrators/dice Service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/rpg-progression/internal/repositories/dice_session"
)

const (
	// DefaultSessionTTL applies when neither the input nor the config sets one
	DefaultSessionTTL = 15 * time.Minute

	// maxDice bounds a single notation
	maxDice = 100
)

// Regex for simple dice notation like "2d6", "1d20", "3d8"
var diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)$`)

// Service defines the interface for dice operations
type Service interface {
	// Generic dice rolling
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)
	GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error)
	ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error)

	// RollHitDie rolls one hit die for a level-up and records it
	RollHitDie(ctx context.Context, input *RollHitDieInput) (*RollHitDieOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	DiceSessionRepo dicesession.Repository
	IDGenerator     idgen.Generator
	// Roller defaults to dice.DefaultRoller
	Roller     dice.Roller
	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.DiceSessionRepo == nil {
		vb.RequiredField("DiceSessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.SessionTTL < 0 {
		vb.InvalidField("SessionTTL", "must not be negative")
	}
	return vb.Build()
}

type orchestrator struct {
	diceSessionRepo dicesession.Repository
	idGen           idgen.Generator
	roller          dice.Roller
	sessionTTL      time.Duration
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}
	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &orchestrator{
		diceSessionRepo: cfg.DiceSessionRepo,
		idGen:           cfg.IDGenerator,
		roller:          roller,
		sessionTTL:      ttl,
	}, nil
}

// ParseNotation parses simple dice notation like "2d6" into count and size
func ParseNotation(notation string) (count, size int, err error) {
	matches := diceNotationRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(notation)))
	if len(matches) != 3 {
		return 0, 0, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY)", notation)
	}

	count, err = strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("invalid dice count in notation: %s", notation)
	}
	size, err = strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("invalid die size in notation: %s", notation)
	}

	if count <= 0 || size <= 0 {
		return 0, 0, errors.InvalidArgumentf("dice count and size must be positive: %s", notation)
	}
	if count > maxDice {
		return 0, 0, errors.InvalidArgumentf("at most %d dice per roll: %s", maxDice, notation)
	}

	return count, size, nil
}

// RollDice rolls dice using the specified notation and stores the result in a session
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}
	if input.Notation == "" {
		return nil, errors.InvalidArgument("dice notation is required")
	}

	count, size, err := ParseNotation(input.Notation)
	if err != nil {
		return nil, err
	}

	faces, err := o.roller.RollN(count, size)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %s", input.Notation)
	}

	total := 0
	for _, f := range faces {
		total += f
	}

	roll := &dicesession.DiceRoll{
		RollID:      o.idGen.Generate(),
		Notation:    fmt.Sprintf("%dd%d", count, size),
		Dice:        faces,
		Total:       total,
		Description: input.Description,
	}

	session, err := o.record(ctx, input.EntityID, input.Context, roll, input.TTL)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "dice rolled",
		"entity_id", input.EntityID,
		"context", input.Context,
		"notation", roll.Notation,
		"total", roll.Total,
		"roll_id", roll.RollID,
	)

	return &RollDiceOutput{
		Roll:    roll,
		Session: session,
	}, nil
}

// RollHitDie rolls 1dN where N is the casting style's hit die
func (o *orchestrator) RollHitDie(ctx context.Context, input *RollHitDieInput) (*RollHitDieOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.DieSize <= 0 {
		return nil, errors.InvalidArgumentf("die size must be positive, got %d", input.DieSize)
	}

	description := input.Description
	if description == "" {
		description = fmt.Sprintf("Hit die (d%d)", input.DieSize)
	}

	out, err := o.RollDice(ctx, &RollDiceInput{
		EntityID:    input.EntityID,
		Context:     input.Context,
		Notation:    fmt.Sprintf("1d%d", input.DieSize),
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	return &RollHitDieOutput{
		Value:   out.Roll.Total,
		Roll:    out.Roll,
		Session: out.Session,
	}, nil
}

// record appends roll to the entity's session for context, creating it if needed
func (o *orchestrator) record(
	ctx context.Context,
	entityID, rollContext string,
	roll *dicesession.DiceRoll,
	ttl time.Duration,
) (*dicesession.DiceSession, error) {
	existing, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: entityID,
		Context:  rollContext,
	})
	if err == nil {
		session := existing.Session
		session.Rolls = append(session.Rolls, *roll)
		if err := o.diceSessionRepo.Update(ctx, session); err != nil {
			return nil, errors.Wrap(err, "failed to update dice session")
		}
		return session, nil
	}
	if !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, "failed to check for existing session")
	}

	if ttl <= 0 {
		ttl = o.sessionTTL
	}
	created, err := o.diceSessionRepo.Create(ctx, dicesession.CreateInput{
		EntityID: entityID,
		Context:  rollContext,
		Rolls:    []dicesession.DiceRoll{*roll},
		TTL:      ttl,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dice session")
	}
	return created.Session, nil
}

// GetRollSession retrieves an existing dice roll session
func (o *orchestrator) GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}

	out, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get dice session")
	}

	return &GetRollSessionOutput{Session: out.Session}, nil
}

// ClearRollSession removes a dice roll session
func (o *orchestrator) ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}

	out, err := o.diceSessionRepo.Delete(ctx, dicesession.DeleteInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete dice session")
	}

	slog.InfoContext(ctx, "dice session cleared",
		"entity_id", input.EntityID,
		"context", input.Context,
		"rolls_deleted", out.RollsDeleted,
	)

	return &ClearRollSessionOutput{RollsDeleted: out.RollsDeleted}, nil
}
