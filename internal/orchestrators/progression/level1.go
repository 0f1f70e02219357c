package progression

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-progression/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/services/progression"
)

// SetLevel1Choice selects a level 1 feat or innate heritage, or switches the
// choice type and clears the other side
func (o *Orchestrator) SetLevel1Choice(
	ctx context.Context,
	input *progression.SetLevel1ChoiceInput,
) (*progression.SetLevel1ChoiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateLevel1Input(input); err != nil {
		return nil, err
	}

	character, err := o.loadCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}
	previous := character.Level1ChoiceType

	var updated *dnd5e.Character
	switch {
	case input.Feat != nil:
		updated, err = o.engine.SelectLevel1Feat(character, input.Feat)
	case input.Heritage != nil:
		updated, err = o.engine.SelectInnateHeritage(character, input.Heritage)
	default:
		updated, err = o.engine.SetLevel1ChoiceType(character, input.ChoiceType)
	}
	if err != nil {
		return nil, err
	}

	saved, err := o.saveCharacter(ctx, updated)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "level 1 choice changed",
		"character_id", saved.ID,
		"from", previous,
		"to", saved.Level1ChoiceType,
		"innate_heritage", saved.InnateHeritage)

	event := events.NewGameEvent(EventLevel1ChoiceChanged, rpgtoolkit.WrapCharacter(saved), nil)
	event.Context().Set(EventKeyPreviousChoiceType, string(previous))
	event.Context().Set(EventKeyChoiceType, string(saved.Level1ChoiceType))
	o.publish(ctx, event)

	return &progression.SetLevel1ChoiceOutput{
		Character: saved,
		Benefits:  o.engine.Derive(saved),
	}, nil
}

func validateLevel1Input(input *progression.SetLevel1ChoiceInput) error {
	if input.Feat != nil && input.Heritage != nil {
		return errors.InvalidArgument("select either a feat or a heritage, not both")
	}

	switch {
	case input.Feat != nil:
		if input.ChoiceType != dnd5e.Level1ChoiceNone && input.ChoiceType != dnd5e.Level1ChoiceFeat {
			return errors.InvalidArgumentf("choice type %q does not match a feat selection", input.ChoiceType)
		}
	case input.Heritage != nil:
		if input.ChoiceType != dnd5e.Level1ChoiceNone && input.ChoiceType != dnd5e.Level1ChoiceInnateHeritage {
			return errors.InvalidArgumentf("choice type %q does not match a heritage selection", input.ChoiceType)
		}
	case input.ChoiceType == dnd5e.Level1ChoiceNone:
		return errors.InvalidArgument("choice type, feat or heritage is required")
	}
	return nil
}
