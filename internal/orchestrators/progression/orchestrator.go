// Package progression implements the progression orchestrator: it loads
// character snapshots, runs them through the rules engine, persists the
// result and publishes progression events.
package progression

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-progression/internal/engine"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/rpg-progression/internal/repositories/character"
	levelupsession "github.com/KirkDiggler/rpg-progression/internal/repositories/levelup_session"
	"github.com/KirkDiggler/rpg-progression/internal/services/progression"
)

// Config holds the dependencies for the progression orchestrator
type Config struct {
	CharacterRepo      characterrepo.Repository
	LevelUpSessionRepo levelupsession.Repository
	DiceService        dice.Service
	Engine             engine.Engine
	EventBus           events.EventBus
	IDGenerator        idgen.Generator
	// SessionTTL is how long an untouched wizard survives. Zero leaves it to
	// the session repository.
	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.LevelUpSessionRepo == nil {
		vb.RequiredField("LevelUpSessionRepo")
	}
	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.SessionTTL < 0 {
		vb.InvalidField("SessionTTL", "must not be negative")
	}
	return vb.Build()
}

// Orchestrator implements the progression.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	sessionRepo   levelupsession.Repository
	diceService   dice.Service
	engine        engine.Engine
	eventBus      events.EventBus
	idGen         idgen.Generator
	sessionTTL    time.Duration
}

// New creates a new progression orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		sessionRepo:   cfg.LevelUpSessionRepo,
		diceService:   cfg.DiceService,
		engine:        cfg.Engine,
		eventBus:      cfg.EventBus,
		idGen:         cfg.IDGenerator,
		sessionTTL:    cfg.SessionTTL,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ progression.Service = (*Orchestrator)(nil)

// GetCharacter loads a character with its derived benefits
func (o *Orchestrator) GetCharacter(
	ctx context.Context,
	input *progression.GetCharacterInput,
) (*progression.GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	character, err := o.loadCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &progression.GetCharacterOutput{
		Character: character,
		Benefits:  o.engine.Derive(character),
	}, nil
}

// GetDerivedBenefits returns the consolidated benefit view of a character
func (o *Orchestrator) GetDerivedBenefits(
	ctx context.Context,
	input *progression.GetDerivedBenefitsInput,
) (*progression.GetDerivedBenefitsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	character, err := o.loadCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &progression.GetDerivedBenefitsOutput{
		Benefits: o.engine.Derive(character),
	}, nil
}

// ListAvailableFeats lists the feats the character could select at the
// requested level and the heritages it could select at level 1
func (o *Orchestrator) ListAvailableFeats(
	ctx context.Context,
	input *progression.ListAvailableFeatsInput,
) (*progression.ListAvailableFeatsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Level != 0 {
		vb := errors.NewValidationBuilder()
		errors.ValidateRange("level", input.Level, dnd5e.MinLevel, dnd5e.MaxLevel, vb)
		if err := vb.Build(); err != nil {
			return nil, err
		}
	}

	character, err := o.loadCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	prospective := character.Clone()
	if input.Level != 0 {
		prospective.Level = input.Level
	}

	return &progression.ListAvailableFeatsOutput{
		Feats:     o.engine.AvailableFeats(prospective),
		Heritages: o.engine.AvailableHeritages(character),
	}, nil
}

func (o *Orchestrator) loadCharacter(ctx context.Context, id string) (*dnd5e.Character, error) {
	if id == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load character %s", id)
	}
	return out.Character, nil
}

// saveCharacter writes every progression field of character. The write is
// rejected if the stored character moved past the revision it was loaded at.
func (o *Orchestrator) saveCharacter(ctx context.Context, character *dnd5e.Character) (*dnd5e.Character, error) {
	out, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{
		ID:               character.ID,
		Update:           characterrepo.UpdateFrom(character),
		ExpectedRevision: character.Revision,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save character %s", character.ID)
	}
	return out.Character, nil
}
