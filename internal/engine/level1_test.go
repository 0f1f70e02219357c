package engine_test

import (
	"github.com/KirkDiggler/rpg-progression/internal/engine"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/testutils/builders"
)

func (s *EngineTestSuite) veelaCharacter() *dnd5e.Character {
	out, err := s.engine.SelectInnateHeritage(
		builders.NewCharacterBuilder().WithCastingStyle(dnd5e.CastingStyleGrace).Build(),
		&engine.SelectHeritageInput{
			Name:    "Part-Veela",
			Options: map[string]string{"Veela Fire": "Enchanting Song"},
		},
	)
	s.Require().NoError(err)
	return out
}

func (s *EngineTestSuite) TestSelectInnateHeritage() {
	original := builders.NewCharacterBuilder().
		WithCastingStyle(dnd5e.CastingStyleGrace).
		WithLevel1Feat("Actor").
		Build()

	out, err := s.engine.SelectInnateHeritage(original, &engine.SelectHeritageInput{
		Name:    "Part-Veela",
		Options: map[string]string{"Veela Fire": "Enchanting Song"},
	})
	s.Require().NoError(err)

	s.Equal("Part-Veela", out.InnateHeritage)
	s.Equal(dnd5e.Level1ChoiceInnateHeritage, out.Level1ChoiceType)
	s.Equal(map[string]map[string]string{"Part-Veela": {"Veela Fire": "Enchanting Song"}}, out.HeritageChoices)
	s.Empty(out.StandardFeats, "the level 1 feat is dropped")
	s.ElementsMatch([]string{dnd5e.SkillPersuasion, dnd5e.SkillPerformance}, out.SkillProficiencies)

	s.Equal([]string{"Actor"}, original.StandardFeats, "input is not modified")
	s.Empty(original.InnateHeritage)
}

func (s *EngineTestSuite) TestSelectInnateHeritage_GrantChoice() {
	out, err := s.engine.SelectInnateHeritage(builders.NewCharacterBuilder().Build(), &engine.SelectHeritageInput{
		Name:    "Part-Goblin",
		Choices: map[string]string{"Part-Goblin_skills_0": dnd5e.SkillInvestigation},
	})
	s.Require().NoError(err)

	s.Equal([]string{dnd5e.SkillInvestigation}, out.SkillProficiencies)
	s.Equal(dnd5e.SkillInvestigation, out.FeatChoices["Part-Goblin_skills_0"])
}

func (s *EngineTestSuite) TestSelectInnateHeritage_MissingOption() {
	_, err := s.engine.SelectInnateHeritage(builders.NewCharacterBuilder().Build(), &engine.SelectHeritageInput{
		Name: "Part-Veela",
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal([]string{"Part-Veela_option_1"}, errors.GetMeta(err)["missing_choices"])
}

func (s *EngineTestSuite) TestSelectInnateHeritage_UnknownOption() {
	_, err := s.engine.SelectInnateHeritage(builders.NewCharacterBuilder().Build(), &engine.SelectHeritageInput{
		Name:    "Part-Veela",
		Options: map[string]string{"Veela Fire": "Moonbeam"},
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *EngineTestSuite) TestSelectInnateHeritage_Errors() {
	character := builders.NewCharacterBuilder().WithCastingStyle(dnd5e.CastingStyleWit).Build()

	_, err := s.engine.SelectInnateHeritage(character, &engine.SelectHeritageInput{Name: "Unknown"})
	s.True(errors.IsNotFound(err))

	_, err = s.engine.SelectInnateHeritage(character, &engine.SelectHeritageInput{
		Name:    "Animagus Lineage",
		Options: map[string]string{"Animal Affinity": "Stag"},
	})
	s.True(errors.IsFailedPrecondition(err))

	_, err = s.engine.SelectInnateHeritage(character, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.engine.SelectInnateHeritage(nil, &engine.SelectHeritageInput{Name: "Part-Veela"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestSelectLevel1Feat_ReplacesHeritage() {
	veela := s.veelaCharacter()

	out, err := s.engine.SelectLevel1Feat(veela, &engine.SelectFeatInput{
		Name:    "Potioneer",
		Choices: map[string]string{"Potioneer_skills_0": dnd5e.SkillHerbology},
	})
	s.Require().NoError(err)

	s.Equal(dnd5e.Level1ChoiceFeat, out.Level1ChoiceType)
	s.Empty(out.InnateHeritage)
	s.Nil(out.HeritageChoices)
	s.Equal([]string{"Potioneer"}, out.StandardFeats)
	s.ElementsMatch([]string{dnd5e.SkillPotionMaking, dnd5e.SkillHerbology}, out.SkillProficiencies)
	s.Equal(dnd5e.SkillHerbology, out.FeatChoices["Potioneer_skills_0"])

	s.Equal("Part-Veela", veela.InnateHeritage, "input is not modified")
}

func (s *EngineTestSuite) TestSelectLevel1Feat_ReplacesPreviousFeat() {
	character := builders.NewCharacterBuilder().
		WithLevel(5).
		WithLevel1Feat("Actor").
		WithFeats("Alert").
		WithASIChoice(4, &dnd5e.ASIChoice{Type: dnd5e.ASIChoiceTypeFeat, SelectedFeat: "Alert"}).
		Build()

	out, err := s.engine.SelectLevel1Feat(character, &engine.SelectFeatInput{Name: "Lucky"})
	s.Require().NoError(err)

	s.Equal([]string{"Lucky", "Alert"}, out.StandardFeats, "feats taken at ASI levels are kept")
}

func (s *EngineTestSuite) TestSelectLevel1Feat_MissingChoices() {
	_, err := s.engine.SelectLevel1Feat(builders.NewCharacterBuilder().Build(), &engine.SelectFeatInput{
		Name:    "Skilled",
		Choices: map[string]string{"Skilled_skills_0": dnd5e.SkillStealth},
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal([]string{"Skilled_skills_1", "Skilled_skills_2"}, errors.GetMeta(err)["missing_choices"])
}

func (s *EngineTestSuite) TestSelectLevel1Feat_NonRepeatableDuplicate() {
	character := builders.NewCharacterBuilder().
		WithLevel(4).
		WithFeats("Alert").
		WithASIChoice(4, &dnd5e.ASIChoice{Type: dnd5e.ASIChoiceTypeFeat, SelectedFeat: "Alert"}).
		Build()

	_, err := s.engine.SelectLevel1Feat(character, &engine.SelectFeatInput{Name: "Alert"})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *EngineTestSuite) TestSelectLevel1Feat_RepeatableShiftsInstances() {
	character := builders.NewCharacterBuilder().
		WithLevel(4).
		WithFeats("Skilled").
		WithASIChoice(4, &dnd5e.ASIChoice{Type: dnd5e.ASIChoiceTypeFeat, SelectedFeat: "Skilled"}).
		WithFeatChoice("Skilled_skills_0", dnd5e.SkillStealth).
		WithFeatChoice("Skilled_skills_1", dnd5e.SkillInsight).
		WithFeatChoice("Skilled_skills_2", dnd5e.SkillMedicine).
		WithSkills(dnd5e.SkillStealth, dnd5e.SkillInsight, dnd5e.SkillMedicine).
		Build()

	out, err := s.engine.SelectLevel1Feat(character, &engine.SelectFeatInput{
		Name: "Skilled",
		Choices: map[string]string{
			"Skilled_skills_0": dnd5e.SkillAcrobatics,
			"Skilled_skills_1": dnd5e.SkillHerbology,
			"Skilled_skills_2": dnd5e.SkillSurvival,
		},
	})
	s.Require().NoError(err)

	s.Equal([]string{"Skilled", "Skilled"}, out.StandardFeats)
	s.Equal(map[string]string{
		"Skilled_skills_0":   dnd5e.SkillAcrobatics,
		"Skilled_skills_1":   dnd5e.SkillHerbology,
		"Skilled_skills_2":   dnd5e.SkillSurvival,
		"Skilled_skills_0_1": dnd5e.SkillStealth,
		"Skilled_skills_1_1": dnd5e.SkillInsight,
		"Skilled_skills_2_1": dnd5e.SkillMedicine,
	}, out.FeatChoices)
	s.Len(out.SkillProficiencies, 6)
}

func (s *EngineTestSuite) TestSelectLevel1Feat_Errors() {
	character := builders.NewCharacterBuilder().Build()

	_, err := s.engine.SelectLevel1Feat(character, &engine.SelectFeatInput{Name: "Not A Feat"})
	s.True(errors.IsNotFound(err))

	_, err = s.engine.SelectLevel1Feat(character, &engine.SelectFeatInput{Name: "Charmed Voice"})
	s.True(errors.IsFailedPrecondition(err), "the heritage a feat needs cannot coexist with a level 1 feat")

	_, err = s.engine.SelectLevel1Feat(character, &engine.SelectFeatInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestSetLevel1ChoiceType_FeatClearsHeritage() {
	veela := s.veelaCharacter()

	out, err := s.engine.SetLevel1ChoiceType(veela, dnd5e.Level1ChoiceFeat)
	s.Require().NoError(err)

	s.Equal(dnd5e.Level1ChoiceFeat, out.Level1ChoiceType)
	s.Empty(out.InnateHeritage)
	s.Nil(out.HeritageChoices)
	s.Empty(out.SkillProficiencies)
}

func (s *EngineTestSuite) TestSetLevel1ChoiceType_HeritageClearsFeat() {
	character, err := s.engine.SelectLevel1Feat(builders.NewCharacterBuilder().Build(), &engine.SelectFeatInput{
		Name:    "Potioneer",
		Choices: map[string]string{"Potioneer_skills_0": dnd5e.SkillMedicine},
	})
	s.Require().NoError(err)

	out, err := s.engine.SetLevel1ChoiceType(character, dnd5e.Level1ChoiceInnateHeritage)
	s.Require().NoError(err)

	s.Equal(dnd5e.Level1ChoiceInnateHeritage, out.Level1ChoiceType)
	s.Empty(out.StandardFeats)
	s.Empty(out.SkillProficiencies)
	s.NotContains(out.FeatChoices, "Potioneer_skills_0")
}

func (s *EngineTestSuite) TestSetLevel1ChoiceType_FeatKeepsSkillsOfASIFeats() {
	character := builders.NewCharacterBuilder().
		WithLevel(8).
		WithCastingStyle(dnd5e.CastingStyleWisdom).
		WithAbilityScore(dnd5e.AbilityWisdom, 14).
		WithInnateHeritage("Parselmouth", map[string]string{"Serpent Gift": "Venom Ward"}).
		WithFeats("Beast Whisperer").
		WithASIChoice(8, &dnd5e.ASIChoice{Type: dnd5e.ASIChoiceTypeFeat, SelectedFeat: "Beast Whisperer"}).
		WithExpertise(dnd5e.SkillMagicalCreatures).
		Build()

	out, err := s.engine.SetLevel1ChoiceType(character, dnd5e.Level1ChoiceFeat)
	s.Require().NoError(err)

	s.Empty(out.InnateHeritage)
	s.Equal([]string{"Beast Whisperer"}, out.StandardFeats)
	s.Contains(out.SkillProficiencies, dnd5e.SkillMagicalCreatures)
	s.Contains(out.SkillExpertise, dnd5e.SkillMagicalCreatures, "Beast Whisperer still grants expertise")
}

func (s *EngineTestSuite) TestSetLevel1ChoiceType_HeritageKeepsSkillsOfASIFeats() {
	character := builders.NewCharacterBuilder().
		WithLevel(4).
		WithLevel1Feat("Herbologist").
		WithFeats("Potioneer").
		WithFeatChoice("Potioneer_skills_0", dnd5e.SkillHerbology).
		WithASIChoice(4, &dnd5e.ASIChoice{
			Type:         dnd5e.ASIChoiceTypeFeat,
			SelectedFeat: "Potioneer",
			FeatChoices:  map[string]string{"Potioneer_skills_0": dnd5e.SkillHerbology},
		}).
		WithSkills(dnd5e.SkillHerbology, dnd5e.SkillPotionMaking).
		Build()

	out, err := s.engine.SetLevel1ChoiceType(character, dnd5e.Level1ChoiceInnateHeritage)
	s.Require().NoError(err)

	s.Equal([]string{"Potioneer"}, out.StandardFeats)
	s.Equal(dnd5e.SkillHerbology, out.FeatChoices["Potioneer_skills_0"])
	s.ElementsMatch([]string{dnd5e.SkillHerbology, dnd5e.SkillPotionMaking}, out.SkillProficiencies)
}

func (s *EngineTestSuite) TestSetLevel1ChoiceType_Invalid() {
	_, err := s.engine.SetLevel1ChoiceType(builders.NewCharacterBuilder().Build(), dnd5e.Level1ChoiceType("both"))
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestLevel1Choice_MutuallyExclusive() {
	withFeat, err := s.engine.SelectLevel1Feat(s.veelaCharacter(), &engine.SelectFeatInput{Name: "Actor"})
	s.Require().NoError(err)
	s.Empty(withFeat.InnateHeritage)

	withHeritage, err := s.engine.SelectInnateHeritage(withFeat, &engine.SelectHeritageInput{
		Name:    "Part-Veela",
		Options: map[string]string{"Veela Fire": "Flame Hurl"},
	})
	s.Require().NoError(err)
	s.Empty(withHeritage.StandardFeats)
	s.Equal("Part-Veela", withHeritage.InnateHeritage)
}
