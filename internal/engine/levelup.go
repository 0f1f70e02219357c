package engine

import (
	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// asiPoints is how many +1 increases an ability score improvement records
const asiPoints = 2

// StartLevelUp opens a wizard taking the character to the next level
func (e *engine) StartLevelUp(character *dnd5e.Character) (*LevelUpSession, error) {
	if character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	level := max(character.Level, dnd5e.MinLevel)
	if level >= dnd5e.MaxLevel {
		return nil, errors.FailedPreconditionf("character is already level %d", level).
			WithMeta("character_id", character.ID)
	}

	return &LevelUpSession{
		CharacterID: character.ID,
		FromLevel:   level,
		ToLevel:     level + 1,
		Step:        LevelUpStepHitPoints,
	}, nil
}

// SetHitPoints records the hit point method and computes the increase shown
// by the wizard. value is the die roll or manual entry.
func (e *engine) SetHitPoints(
	session *LevelUpSession,
	character *dnd5e.Character,
	method HitPointMethod,
	value int,
) error {
	if err := checkEditable(session, character); err != nil {
		return err
	}
	if !method.IsValid() {
		return errors.InvalidArgumentf("unknown hit point method %q", method)
	}

	session.HitPointMethod = method
	session.HitPointInput = value
	if method == HitPointMethodAverage {
		session.HitPointInput = 0
	}
	session.HitPointIncrease = HitPointIncrease(
		character.CastingStyle,
		character.AbilityScore(dnd5e.AbilityConstitution),
		method,
		value,
	)
	return nil
}

// SetAbilityIncreases takes the ASI path. Each entry is +1; one ability may
// appear twice.
func (e *engine) SetAbilityIncreases(session *LevelUpSession, abilities []dnd5e.Ability) error {
	if session == nil {
		return errors.InvalidArgument("session is required")
	}
	if session.IsCommitted() {
		return errors.FailedPrecondition("level up has already been committed")
	}
	if !session.IsASILevel() {
		return errors.FailedPreconditionf("level %d does not grant an ability score improvement", session.ToLevel)
	}
	if len(abilities) > asiPoints {
		return errors.InvalidArgumentf("an ability score improvement is %d increases, got %d", asiPoints, len(abilities))
	}
	for _, a := range abilities {
		if !a.IsValid() {
			return errors.InvalidArgumentf("unknown ability %q", a)
		}
	}

	session.ASIChoiceType = dnd5e.ASIChoiceTypeASI
	session.AbilityIncreases = append([]dnd5e.Ability(nil), abilities...)
	session.SelectedFeat = ""
	session.FeatInstance = 0
	session.FeatChoices = nil
	return nil
}

// SelectFeat takes the feat path. Choices may be incomplete here; the step
// gate checks them.
func (e *engine) SelectFeat(session *LevelUpSession, character *dnd5e.Character, input *SelectFeatInput) error {
	if err := checkEditable(session, character); err != nil {
		return err
	}
	if !session.IsASILevel() {
		return errors.FailedPreconditionf("level %d does not grant a feat", session.ToLevel)
	}
	if input == nil || input.Name == "" {
		return errors.InvalidArgument("feat name is required")
	}

	feat, ok := e.catalog.Feat(input.Name)
	if !ok {
		return errors.NotFoundf("feat %q not found", input.Name)
	}
	if character.HasFeat(feat.Name) && !feat.Repeatable {
		return errors.FailedPreconditionf("character already has feat %q", feat.Name)
	}
	// Prerequisites are checked at the level being reached.
	prospective := character.Clone()
	prospective.Level = session.ToLevel
	if !IsEligible(feat.Prerequisites, prospective) {
		return errors.FailedPreconditionf("character is not eligible for feat %q", feat.Name)
	}

	instance := character.FeatCount(feat.Name)
	session.ASIChoiceType = dnd5e.ASIChoiceTypeFeat
	session.AbilityIncreases = nil
	session.SelectedFeat = feat.Name
	session.FeatInstance = instance
	session.FeatChoices = subjectChoices(input.Choices, feat.Name, instance).ToMap()
	return nil
}

// CanProceed reports whether the current step's gate is satisfied
func (e *engine) CanProceed(session *LevelUpSession, character *dnd5e.Character) bool {
	if session == nil {
		return false
	}

	switch session.Step {
	case LevelUpStepHitPoints:
		return session.HitPointIncrease > 0
	case LevelUpStepASIOrFeat:
		return e.asiOrFeatComplete(session)
	case LevelUpStepReview:
		return true
	default:
		return false
	}
}

func (e *engine) asiOrFeatComplete(session *LevelUpSession) bool {
	switch session.ASIChoiceType {
	case dnd5e.ASIChoiceTypeASI:
		return len(session.AbilityIncreases) == asiPoints
	case dnd5e.ASIChoiceTypeFeat:
		if session.SelectedFeat == "" {
			return false
		}
		if _, ok := e.catalog.Feat(session.SelectedFeat); !ok {
			return false
		}
		missing := e.MissingChoices(session.SelectedFeat, session.FeatInstance, dnd5e.ChoicesFromMap(session.FeatChoices))
		return len(missing) == 0
	default:
		return false
	}
}

// Advance moves to the next step when the gate allows it. Review only moves
// on through ResolveLevelUp and a successful save.
func (e *engine) Advance(session *LevelUpSession, character *dnd5e.Character) error {
	if err := checkEditable(session, character); err != nil {
		return err
	}
	if session.Step == LevelUpStepReview {
		return errors.FailedPrecondition("review is left by committing the level up")
	}
	if !e.CanProceed(session, character) {
		return errors.FailedPreconditionf("step %s is incomplete", session.Step).
			WithMeta("step", string(session.Step))
	}

	steps := session.Steps()
	for i, step := range steps {
		if step == session.Step && i+1 < len(steps) {
			session.Step = steps[i+1]
			return nil
		}
	}
	return errors.FailedPreconditionf("unknown step %s", session.Step)
}

// Back returns to the previous step, keeping everything recorded so far
func (e *engine) Back(session *LevelUpSession) error {
	if session == nil {
		return errors.InvalidArgument("session is required")
	}
	if session.IsCommitted() {
		return errors.FailedPrecondition("level up has already been committed")
	}

	steps := session.Steps()
	for i, step := range steps {
		if step == session.Step {
			if i == 0 {
				return errors.FailedPrecondition("already at the first step")
			}
			session.Step = steps[i-1]
			return nil
		}
	}
	return errors.FailedPreconditionf("unknown step %s", session.Step)
}

// ResolveLevelUp produces the character at the session's new level. The
// session must be at review. Neither argument is modified; the caller marks
// the session committed once the new character is saved.
func (e *engine) ResolveLevelUp(character *dnd5e.Character, session *LevelUpSession) (*dnd5e.Character, error) {
	if character == nil || session == nil {
		return nil, errors.InvalidArgument("character and session are required")
	}
	if session.Step != LevelUpStepReview {
		return nil, errors.FailedPreconditionf("level up is at step %s, not review", session.Step)
	}
	if session.CharacterID != character.ID || session.FromLevel != max(character.Level, dnd5e.MinLevel) {
		return nil, errors.FailedPrecondition("level up session does not match the character").
			WithMeta("character_id", character.ID)
	}

	out := character.Clone()
	out.Level = session.ToLevel
	out.SyncAbilityMirrors()

	if session.IsASILevel() {
		switch session.ASIChoiceType {
		case dnd5e.ASIChoiceTypeASI:
			e.commitASI(out, session)
		case dnd5e.ASIChoiceTypeFeat:
			if err := e.commitFeat(out, session); err != nil {
				return nil, err
			}
		default:
			return nil, errors.FailedPrecondition("no ability score improvement or feat was chosen")
		}
	}

	// Ability scores are final here, so the constitution modifier is current.
	out.HitPoints = FullHitPoints(out.CastingStyle, out.Level, out.AbilityScore(dnd5e.AbilityConstitution))
	delta := out.HitPoints - character.HitPoints
	out.CurrentHitPoints = min(out.HitPoints, max(1, character.CurrentHitPoints+delta))

	out.SyncAbilityMirrors()
	return out, nil
}

func (e *engine) commitASI(out *dnd5e.Character, session *LevelUpSession) {
	var recorded []dnd5e.AbilityIncrease
	for _, a := range session.AbilityIncreases {
		raiseAbility(out, a, 1)

		if n := len(recorded); n > 0 && recorded[n-1].Ability == a {
			recorded[n-1].Increase++
			continue
		}
		recorded = append(recorded, dnd5e.AbilityIncrease{Ability: a, Increase: 1})
	}

	setASIChoice(out, session.ToLevel, &dnd5e.ASIChoice{
		Type:                  dnd5e.ASIChoiceTypeASI,
		AbilityScoreIncreases: recorded,
	})
}

func (e *engine) commitFeat(out *dnd5e.Character, session *LevelUpSession) error {
	feat, ok := e.catalog.Feat(session.SelectedFeat)
	if !ok {
		return errors.NotFoundf("feat %q not found", session.SelectedFeat)
	}

	choices := subjectChoices(session.FeatChoices, feat.Name, session.FeatInstance)
	cur := newCursor(feat.Name, session.FeatInstance)
	for _, grant := range feat.Benefits.AbilityScoreIncreases {
		res, ok := resolveAbility(grant, cur, out, choices)
		if !ok {
			continue
		}
		raiseAbility(out, res.ability, res.amount)
	}

	collectSkillGrants([]*catalog.Benefits{&feat.Benefits}, newCursor(feat.Name, session.FeatInstance), choices).apply(out)

	if out.FeatCount(feat.Name) == session.FeatInstance {
		out.StandardFeats = append(out.StandardFeats, feat.Name)
	}
	out.FeatChoices = mergeChoices(out.FeatChoices, choices)

	setASIChoice(out, session.ToLevel, &dnd5e.ASIChoice{
		Type:         dnd5e.ASIChoiceTypeFeat,
		SelectedFeat: feat.Name,
		FeatChoices:  choices.ToMap(),
	})
	return nil
}

// raiseAbility adds amount up to the advancement cap. Scores already at or
// above the cap are left alone.
func raiseAbility(c *dnd5e.Character, ability dnd5e.Ability, amount int) {
	current := c.AbilityScore(ability)
	if current >= dnd5e.AbilityScoreAdvancementCap {
		return
	}
	c.SetAbilityScore(ability, min(current+amount, dnd5e.AbilityScoreAdvancementCap))
}

func setASIChoice(c *dnd5e.Character, level int, choice *dnd5e.ASIChoice) {
	if c.ASIChoices == nil {
		c.ASIChoices = make(map[int]*dnd5e.ASIChoice)
	}
	c.ASIChoices[level] = choice
}

func checkEditable(session *LevelUpSession, character *dnd5e.Character) error {
	if session == nil {
		return errors.InvalidArgument("session is required")
	}
	if character == nil {
		return errors.InvalidArgument("character is required")
	}
	if session.IsCommitted() {
		return errors.FailedPrecondition("level up has already been committed")
	}
	return nil
}
