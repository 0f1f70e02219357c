package progression

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-progression/internal/engine"
	"github.com/KirkDiggler/rpg-progression/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/orchestrators/dice"
	levelupsession "github.com/KirkDiggler/rpg-progression/internal/repositories/levelup_session"
	"github.com/KirkDiggler/rpg-progression/internal/services/progression"
)

// hitDieContext is the dice session a wizard's rolls are recorded under
func hitDieContext(sessionID string) string {
	return "level_up:" + sessionID
}

// StartLevelUp opens a wizard for the character's next level. An open wizard
// for the same level is resumed instead.
func (o *Orchestrator) StartLevelUp(
	ctx context.Context,
	input *progression.StartLevelUpInput,
) (*progression.StartLevelUpOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	character, err := o.loadCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	active, err := o.sessionRepo.GetActiveForCharacter(ctx, levelupsession.GetActiveForCharacterInput{
		CharacterID: character.ID,
	})
	switch {
	case err == nil && active.Session.FromLevel == max(character.Level, dnd5e.MinLevel):
		slog.InfoContext(ctx, "resuming level up",
			"character_id", character.ID,
			"session_id", active.Session.ID,
			"step", active.Session.Step)
		return &progression.StartLevelUpOutput{
			Session:    active.Session,
			CanProceed: o.engine.CanProceed(active.Session, character),
			Resumed:    true,
		}, nil
	case err != nil && !errors.IsNotFound(err):
		return nil, errors.Wrap(err, "failed to check for an open level up")
	}

	session, err := o.engine.StartLevelUp(character)
	if err != nil {
		return nil, err
	}
	session.ID = o.idGen.Generate()

	saved, err := o.saveSession(ctx, session)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "started level up",
		"character_id", character.ID,
		"session_id", saved.ID,
		"from_level", saved.FromLevel,
		"to_level", saved.ToLevel)

	return &progression.StartLevelUpOutput{
		Session:    saved,
		CanProceed: o.engine.CanProceed(saved, character),
	}, nil
}

// GetLevelUp reads a wizard
func (o *Orchestrator) GetLevelUp(
	ctx context.Context,
	input *progression.GetLevelUpInput,
) (*progression.GetLevelUpOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	session, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	character, err := o.loadCharacter(ctx, session.CharacterID)
	if err != nil {
		return nil, err
	}

	return &progression.GetLevelUpOutput{
		Session:    session,
		CanProceed: !session.IsCommitted() && o.engine.CanProceed(session, character),
	}, nil
}

// UpdateLevelUp applies one action to a wizard and saves it
func (o *Orchestrator) UpdateLevelUp(
	ctx context.Context,
	input *progression.UpdateLevelUpInput,
) (*progression.UpdateLevelUpOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Action == "" {
		return nil, errors.InvalidArgument("action is required")
	}

	session, character, err := o.loadEditable(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	var rolled int
	switch input.Action {
	case progression.LevelUpActionSetHitPoints:
		value := input.HitPointValue
		if input.HitPointMethod == engine.HitPointMethodRoll && value <= 0 {
			rolled, err = o.rollHitDie(ctx, session, character)
			if err != nil {
				return nil, err
			}
			value = rolled
		}
		err = o.engine.SetHitPoints(session, character, input.HitPointMethod, value)
	case progression.LevelUpActionSetAbilityIncreases:
		err = o.engine.SetAbilityIncreases(session, input.AbilityIncreases)
	case progression.LevelUpActionSelectFeat:
		err = o.engine.SelectFeat(session, character, input.Feat)
	case progression.LevelUpActionAdvance:
		err = o.engine.Advance(session, character)
	case progression.LevelUpActionBack:
		err = o.engine.Back(session)
	default:
		return nil, errors.InvalidArgumentf("unknown level up action %q", input.Action)
	}
	if err != nil {
		return nil, err
	}

	saved, err := o.saveSession(ctx, session)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "updated level up",
		"session_id", saved.ID,
		"action", input.Action,
		"step", saved.Step)

	return &progression.UpdateLevelUpOutput{
		Session:    saved,
		CanProceed: o.engine.CanProceed(saved, character),
		Rolled:     rolled,
	}, nil
}

// CommitLevelUp resolves the wizard, saves the character and closes the
// wizard. When the character save fails the wizard is left at review so the
// commit can be retried.
func (o *Orchestrator) CommitLevelUp(
	ctx context.Context,
	input *progression.CommitLevelUpInput,
) (*progression.CommitLevelUpOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	session, character, err := o.loadEditable(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	leveled, err := o.engine.ResolveLevelUp(character, session)
	if err != nil {
		return nil, err
	}

	saved, err := o.saveCharacter(ctx, leveled)
	if err != nil {
		slog.ErrorContext(ctx, "level up commit failed, wizard kept for retry",
			"character_id", character.ID,
			"session_id", session.ID,
			"retryable", errors.IsRetryable(err),
			"error", err)
		return nil, err
	}

	committed := *session
	committed.Step = engine.LevelUpStepCommitted
	closed, err := o.saveSession(ctx, &committed)
	if err != nil {
		// The character is already at the new level, so the stale wizard can
		// no longer match it and will expire on its own.
		slog.WarnContext(ctx, "failed to close committed level up",
			"character_id", saved.ID,
			"session_id", session.ID,
			"error", err)
		closed = &committed
	}

	slog.InfoContext(ctx, "level up committed",
		"character_id", saved.ID,
		"session_id", closed.ID,
		"level", saved.Level,
		"hit_points", saved.HitPoints)

	event := events.NewGameEvent(EventLevelUpCommitted,
		rpgtoolkit.WrapCharacter(saved),
		rpgtoolkit.WrapLevelUpSession(closed))
	event.Context().Set(EventKeySessionID, closed.ID)
	event.Context().Set(EventKeyFromLevel, closed.FromLevel)
	event.Context().Set(EventKeyToLevel, closed.ToLevel)
	event.Context().Set(EventKeyHitPoints, saved.HitPoints)
	event.Context().Set(EventKeyASIChoiceType, closed.ASIChoiceType)
	o.publish(ctx, event)

	return &progression.CommitLevelUpOutput{
		Character: saved,
		Session:   closed,
	}, nil
}

// loadEditable loads an uncommitted wizard and the character it was opened
// for, checking the character has not changed level since
func (o *Orchestrator) loadEditable(ctx context.Context, sessionID string) (*engine.LevelUpSession, *dnd5e.Character, error) {
	session, err := o.loadSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.IsCommitted() {
		return nil, nil, errors.FailedPrecondition("level up has already been committed").
			WithMeta("session_id", session.ID)
	}

	character, err := o.loadCharacter(ctx, session.CharacterID)
	if err != nil {
		return nil, nil, err
	}
	if session.FromLevel != max(character.Level, dnd5e.MinLevel) {
		return nil, nil, errors.FailedPreconditionf(
			"character is level %d but the level up started from %d", character.Level, session.FromLevel).
			WithMeta("session_id", session.ID)
	}

	return session, character, nil
}

func (o *Orchestrator) loadSession(ctx context.Context, id string) (*engine.LevelUpSession, error) {
	if id == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := o.sessionRepo.Get(ctx, levelupsession.GetInput{ID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load level up %s", id)
	}
	return out.Session, nil
}

func (o *Orchestrator) saveSession(ctx context.Context, session *engine.LevelUpSession) (*engine.LevelUpSession, error) {
	out, err := o.sessionRepo.Save(ctx, levelupsession.SaveInput{
		Session: session,
		TTL:     o.sessionTTL,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save level up %s", session.ID)
	}
	return out.Session, nil
}

func (o *Orchestrator) rollHitDie(ctx context.Context, session *engine.LevelUpSession, character *dnd5e.Character) (int, error) {
	out, err := o.diceService.RollHitDie(ctx, &dice.RollHitDieInput{
		EntityID: character.ID,
		Context:  hitDieContext(session.ID),
		DieSize:  character.CastingStyle.HitPoints().HitDie,
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll hit die")
	}
	return out.Value, nil
}
