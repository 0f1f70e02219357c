package engine_test

import (
	"github.com/KirkDiggler/rpg-progression/internal/engine"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/testutils/builders"
)

// level3Grace is a Grace Caster one level short of the first ASI
func level3Grace() *dnd5e.Character {
	return builders.NewCharacterBuilder().
		WithID("char-grace").
		WithLevel(3).
		WithCastingStyle(dnd5e.CastingStyleGrace).
		WithAbilityScore(dnd5e.AbilityConstitution, 14).
		WithAbilityScore(dnd5e.AbilityCharisma, 16).
		WithHitPoints(24).
		Build()
}

// toASIStep starts a level up and completes the hit point step
func (s *EngineTestSuite) toASIStep(character *dnd5e.Character) *engine.LevelUpSession {
	session, err := s.engine.StartLevelUp(character)
	s.Require().NoError(err)
	s.Require().NoError(s.engine.SetHitPoints(session, character, engine.HitPointMethodAverage, 0))
	s.Require().NoError(s.engine.Advance(session, character))
	s.Require().Equal(engine.LevelUpStepASIOrFeat, session.Step)
	return session
}

func (s *EngineTestSuite) TestStartLevelUp() {
	session, err := s.engine.StartLevelUp(level3Grace())
	s.Require().NoError(err)

	s.Equal("char-grace", session.CharacterID)
	s.Equal(3, session.FromLevel)
	s.Equal(4, session.ToLevel)
	s.Equal(engine.LevelUpStepHitPoints, session.Step)
	s.True(session.IsASILevel())
	s.Equal([]engine.LevelUpStep{
		engine.LevelUpStepHitPoints,
		engine.LevelUpStepASIOrFeat,
		engine.LevelUpStepReview,
	}, session.Steps())
}

func (s *EngineTestSuite) TestStartLevelUp_MaxLevel() {
	_, err := s.engine.StartLevelUp(builders.NewCharacterBuilder().WithLevel(20).Build())
	s.True(errors.IsFailedPrecondition(err))

	_, err = s.engine.StartLevelUp(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestSetHitPoints() {
	character := level3Grace()
	session, err := s.engine.StartLevelUp(character)
	s.Require().NoError(err)

	s.False(s.engine.CanProceed(session, character), "no hit points recorded yet")

	s.Require().NoError(s.engine.SetHitPoints(session, character, engine.HitPointMethodAverage, 3))
	s.Equal(7, session.HitPointIncrease)
	s.Equal(0, session.HitPointInput)
	s.True(s.engine.CanProceed(session, character))

	s.Require().NoError(s.engine.SetHitPoints(session, character, engine.HitPointMethodRoll, 6))
	s.Equal(8, session.HitPointIncrease)
	s.Equal(6, session.HitPointInput)

	s.Require().NoError(s.engine.SetHitPoints(session, character, engine.HitPointMethodManual, -2))
	s.Equal(1, session.HitPointIncrease)

	err = s.engine.SetHitPoints(session, character, engine.HitPointMethod("guess"), 4)
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestASIGate() {
	character := level3Grace()
	session := s.toASIStep(character)

	s.Require().NoError(s.engine.SetAbilityIncreases(session, []dnd5e.Ability{dnd5e.AbilityCharisma}))
	s.False(s.engine.CanProceed(session, character), "one point is not a complete improvement")
	err := s.engine.Advance(session, character)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(engine.LevelUpStepASIOrFeat, session.Step)

	s.Require().NoError(s.engine.SetAbilityIncreases(session, []dnd5e.Ability{dnd5e.AbilityCharisma, dnd5e.AbilityDexterity}))
	s.True(s.engine.CanProceed(session, character))
	s.Require().NoError(s.engine.Advance(session, character))
	s.Equal(engine.LevelUpStepReview, session.Step)
}

func (s *EngineTestSuite) TestSetAbilityIncreases_Invalid() {
	character := level3Grace()
	session := s.toASIStep(character)

	err := s.engine.SetAbilityIncreases(session, []dnd5e.Ability{
		dnd5e.AbilityCharisma, dnd5e.AbilityCharisma, dnd5e.AbilityDexterity,
	})
	s.True(errors.IsInvalidArgument(err))

	err = s.engine.SetAbilityIncreases(session, []dnd5e.Ability{"luck"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestSetAbilityIncreases_NonASILevel() {
	character := builders.NewCharacterBuilder().WithLevel(1).Build()
	session, err := s.engine.StartLevelUp(character)
	s.Require().NoError(err)

	s.False(session.IsASILevel())
	s.Equal([]engine.LevelUpStep{engine.LevelUpStepHitPoints, engine.LevelUpStepReview}, session.Steps())

	err = s.engine.SetAbilityIncreases(session, []dnd5e.Ability{dnd5e.AbilityStrength, dnd5e.AbilityStrength})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *EngineTestSuite) TestResolveLevelUp_ASI() {
	character := level3Grace()
	session := s.toASIStep(character)
	s.Require().NoError(s.engine.SetAbilityIncreases(session, []dnd5e.Ability{dnd5e.AbilityCharisma, dnd5e.AbilityDexterity}))
	s.Require().NoError(s.engine.Advance(session, character))

	out, err := s.engine.ResolveLevelUp(character, session)
	s.Require().NoError(err)

	s.Equal(4, out.Level)
	s.Equal(17, out.AbilityScore(dnd5e.AbilityCharisma))
	s.Equal(11, out.AbilityScore(dnd5e.AbilityDexterity))
	s.Equal(31, out.HitPoints)
	s.Equal(31, out.CurrentHitPoints)
	s.True(out.MirrorsConsistent())
	s.Equal(&dnd5e.ASIChoice{
		Type: dnd5e.ASIChoiceTypeASI,
		AbilityScoreIncreases: []dnd5e.AbilityIncrease{
			{Ability: dnd5e.AbilityCharisma, Increase: 1},
			{Ability: dnd5e.AbilityDexterity, Increase: 1},
		},
	}, out.ASIChoices[4])

	s.Equal(3, character.Level, "input is not modified")
	s.Equal(16, character.Charisma)
	s.Equal(engine.LevelUpStepReview, session.Step, "the caller commits the session after saving")
}

func (s *EngineTestSuite) TestResolveLevelUp_ConstitutionRecomputesHitPoints() {
	character := level3Grace()
	character.CurrentHitPoints = 10
	session := s.toASIStep(character)
	s.Require().NoError(s.engine.SetAbilityIncreases(session, []dnd5e.Ability{dnd5e.AbilityConstitution, dnd5e.AbilityConstitution}))
	s.Require().NoError(s.engine.Advance(session, character))

	out, err := s.engine.ResolveLevelUp(character, session)
	s.Require().NoError(err)

	s.Equal(16, out.Constitution)
	// 8 + 3 + 3*(5+3)
	s.Equal(35, out.HitPoints)
	s.Equal(21, out.CurrentHitPoints, "current hit points rise by the same amount as the maximum")
	s.Equal([]dnd5e.AbilityIncrease{{Ability: dnd5e.AbilityConstitution, Increase: 2}}, out.ASIChoices[4].AbilityScoreIncreases)
}

func (s *EngineTestSuite) TestResolveLevelUp_ScoreCap() {
	testCases := []struct {
		name     string
		start    int
		expected int
	}{
		{name: "already at cap", start: 20, expected: 20},
		{name: "one below cap", start: 19, expected: 20},
		{name: "above cap is left alone", start: 22, expected: 22},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			character := level3Grace()
			character.SetAbilityScore(dnd5e.AbilityConstitution, tc.start)
			session := s.toASIStep(character)
			s.Require().NoError(s.engine.SetAbilityIncreases(session, []dnd5e.Ability{dnd5e.AbilityConstitution, dnd5e.AbilityConstitution}))
			s.Require().NoError(s.engine.Advance(session, character))

			out, err := s.engine.ResolveLevelUp(character, session)
			s.Require().NoError(err)
			s.Equal(tc.expected, out.AbilityScore(dnd5e.AbilityConstitution))
			s.Equal(tc.expected, out.Constitution)
		})
	}
}

func (s *EngineTestSuite) TestResolveLevelUp_NonASILevel() {
	character := builders.NewCharacterBuilder().
		WithID("char-wit").
		WithLevel(1).
		WithAbilityScore(dnd5e.AbilityConstitution, 12).
		WithHitPoints(7).
		WithCurrentHitPoints(3).
		Build()
	session, err := s.engine.StartLevelUp(character)
	s.Require().NoError(err)
	s.Require().NoError(s.engine.SetHitPoints(session, character, engine.HitPointMethodRoll, 2))
	s.Require().NoError(s.engine.Advance(session, character))
	s.Require().Equal(engine.LevelUpStepReview, session.Step)

	out, err := s.engine.ResolveLevelUp(character, session)
	s.Require().NoError(err)

	s.Equal(2, out.Level)
	// 6 + 1 + (4+1)
	s.Equal(12, out.HitPoints)
	s.Equal(8, out.CurrentHitPoints)
	s.Empty(out.ASIChoices)
}

func (s *EngineTestSuite) TestSelectFeat_LevelGatedFeat() {
	character := level3Grace()
	session := s.toASIStep(character)

	s.Require().NoError(s.engine.SelectFeat(session, character, &engine.SelectFeatInput{Name: "War Caster"}))
	s.True(s.engine.CanProceed(session, character))
	s.Require().NoError(s.engine.Advance(session, character))

	out, err := s.engine.ResolveLevelUp(character, session)
	s.Require().NoError(err)

	s.Equal([]string{"War Caster"}, out.StandardFeats)
	s.Equal(dnd5e.ASIChoiceTypeFeat, out.ASIChoices[4].Type)
	s.Equal("War Caster", out.ASIChoices[4].SelectedFeat)
}

func (s *EngineTestSuite) TestSelectFeat_ChoicesGate() {
	character := level3Grace()
	session := s.toASIStep(character)

	s.Require().NoError(s.engine.SelectFeat(session, character, &engine.SelectFeatInput{Name: "Resilient"}))
	s.False(s.engine.CanProceed(session, character))

	s.Require().NoError(s.engine.SelectFeat(session, character, &engine.SelectFeatInput{
		Name:    "Resilient",
		Choices: map[string]string{"Resilient_ability_0": "constitution", "Lucky_ability_0": "wisdom"},
	}))
	s.Equal(map[string]string{"Resilient_ability_0": "constitution"}, session.FeatChoices, "keys for other subjects are dropped")
	s.True(s.engine.CanProceed(session, character))
	s.Require().NoError(s.engine.Advance(session, character))

	out, err := s.engine.ResolveLevelUp(character, session)
	s.Require().NoError(err)

	s.Equal(15, out.AbilityScore(dnd5e.AbilityConstitution))
	s.Equal(31, out.HitPoints)
	s.Equal("constitution", out.FeatChoices["Resilient_ability_0"])
	s.Equal(map[string]string{"Resilient_ability_0": "constitution"}, out.ASIChoices[4].FeatChoices)
}

func (s *EngineTestSuite) TestSelectFeat_RepeatableInstance() {
	character := level3Grace()
	character.StandardFeats = []string{"Skilled"}
	character.Level1ChoiceType = dnd5e.Level1ChoiceFeat
	character.FeatChoices = map[string]string{
		"Skilled_skills_0": dnd5e.SkillStealth,
		"Skilled_skills_1": dnd5e.SkillInsight,
		"Skilled_skills_2": dnd5e.SkillMedicine,
	}
	session := s.toASIStep(character)

	s.Require().NoError(s.engine.SelectFeat(session, character, &engine.SelectFeatInput{
		Name: "Skilled",
		Choices: map[string]string{
			"Skilled_skills_0_1": dnd5e.SkillAcrobatics,
			"Skilled_skills_1_1": dnd5e.SkillHerbology,
			"Skilled_skills_2_1": dnd5e.SkillSurvival,
		},
	}))
	s.Equal(1, session.FeatInstance)
	s.True(s.engine.CanProceed(session, character))
	s.Require().NoError(s.engine.Advance(session, character))

	out, err := s.engine.ResolveLevelUp(character, session)
	s.Require().NoError(err)

	s.Equal([]string{"Skilled", "Skilled"}, out.StandardFeats)
	s.Len(out.FeatChoices, 6)
	s.ElementsMatch([]string{dnd5e.SkillAcrobatics, dnd5e.SkillHerbology, dnd5e.SkillSurvival}, out.SkillProficiencies)
}

func (s *EngineTestSuite) TestSelectFeat_Rejections() {
	character := level3Grace()
	character.StandardFeats = []string{"Actor"}
	session := s.toASIStep(character)

	err := s.engine.SelectFeat(session, character, &engine.SelectFeatInput{Name: "Actor"})
	s.True(errors.IsFailedPrecondition(err), "non-repeatable feat already held")

	err = s.engine.SelectFeat(session, character, &engine.SelectFeatInput{Name: "Beast Whisperer"})
	s.True(errors.IsFailedPrecondition(err), "level 8 feat at level 4")

	err = s.engine.SelectFeat(session, character, &engine.SelectFeatInput{Name: "Not A Feat"})
	s.True(errors.IsNotFound(err))
}

func (s *EngineTestSuite) TestBack() {
	character := level3Grace()
	session := s.toASIStep(character)
	s.Require().NoError(s.engine.SetAbilityIncreases(session, []dnd5e.Ability{dnd5e.AbilityCharisma, dnd5e.AbilityCharisma}))

	s.Require().NoError(s.engine.Back(session))
	s.Equal(engine.LevelUpStepHitPoints, session.Step)
	s.Len(session.AbilityIncreases, 2, "recorded choices survive going back")

	err := s.engine.Back(session)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *EngineTestSuite) TestAdvance_FromReview() {
	character := level3Grace()
	session := s.toASIStep(character)
	s.Require().NoError(s.engine.SetAbilityIncreases(session, []dnd5e.Ability{dnd5e.AbilityCharisma, dnd5e.AbilityCharisma}))
	s.Require().NoError(s.engine.Advance(session, character))

	s.True(s.engine.CanProceed(session, character))
	err := s.engine.Advance(session, character)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *EngineTestSuite) TestCommittedSessionIsFrozen() {
	character := level3Grace()
	session := s.toASIStep(character)
	session.Step = engine.LevelUpStepCommitted

	s.True(errors.IsFailedPrecondition(s.engine.SetHitPoints(session, character, engine.HitPointMethodAverage, 0)))
	s.True(errors.IsFailedPrecondition(s.engine.SetAbilityIncreases(session, []dnd5e.Ability{dnd5e.AbilityCharisma})))
	s.True(errors.IsFailedPrecondition(s.engine.SelectFeat(session, character, &engine.SelectFeatInput{Name: "Lucky"})))
	s.True(errors.IsFailedPrecondition(s.engine.Back(session)))
	s.True(errors.IsFailedPrecondition(s.engine.Advance(session, character)))
	s.False(s.engine.CanProceed(session, character))

	_, err := s.engine.ResolveLevelUp(character, session)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *EngineTestSuite) TestResolveLevelUp_Mismatch() {
	character := level3Grace()
	session := s.toASIStep(character)
	s.Require().NoError(s.engine.SetAbilityIncreases(session, []dnd5e.Ability{dnd5e.AbilityCharisma, dnd5e.AbilityCharisma}))
	s.Require().NoError(s.engine.Advance(session, character))

	other := level3Grace()
	other.ID = "char-other"
	_, err := s.engine.ResolveLevelUp(other, session)
	s.True(errors.IsFailedPrecondition(err))

	leveled := level3Grace()
	leveled.Level = 4
	_, err = s.engine.ResolveLevelUp(leveled, session)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *EngineTestSuite) TestResolveLevelUp_NotAtReview() {
	character := level3Grace()
	session := s.toASIStep(character)

	_, err := s.engine.ResolveLevelUp(character, session)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *EngineTestSuite) TestMissingChoices() {
	s.Equal([]dnd5e.ChoiceKey{
		{Subject: "Skill Expert", Kind: dnd5e.ChoiceKindAbility, Index: 0},
		{Subject: "Skill Expert", Kind: dnd5e.ChoiceKindSkills, Index: 0},
		{Subject: "Skill Expert", Kind: dnd5e.ChoiceKindExpertise, Index: 0},
	}, s.engine.RequiredChoices("Skill Expert", 0))

	missing := s.engine.MissingChoices("Skill Expert", 0, dnd5e.Choices{
		{Subject: "Skill Expert", Kind: dnd5e.ChoiceKindAbility, Index: 0}: "wisdom",
		{Subject: "Skill Expert", Kind: dnd5e.ChoiceKindSkills, Index: 0}:  "Flying",
	})
	s.Equal([]dnd5e.ChoiceKey{
		{Subject: "Skill Expert", Kind: dnd5e.ChoiceKindSkills, Index: 0},
		{Subject: "Skill Expert", Kind: dnd5e.ChoiceKindExpertise, Index: 0},
	}, missing)

	s.Empty(s.engine.RequiredChoices("Actor", 0))
	s.Empty(s.engine.MissingChoices("Not A Feat", 0, nil))
}

func (s *EngineTestSuite) TestMissingHeritageChoices() {
	s.Equal([]dnd5e.ChoiceKey{
		{Subject: "Part-Goblin", Kind: dnd5e.ChoiceKindSkills, Index: 0},
	}, s.engine.MissingHeritageChoices("Part-Goblin", nil, nil))

	s.Equal([]dnd5e.ChoiceKey{
		{Subject: "Seer", Kind: dnd5e.ChoiceKindOption, Index: 0},
	}, s.engine.MissingHeritageChoices("Seer", nil, nil))

	s.Empty(s.engine.MissingHeritageChoices("Part-Veela", map[string]string{"Veela Fire": "Flame Hurl"}, nil))
}
