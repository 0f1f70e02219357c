package engine_test

import (
	"github.com/KirkDiggler/rpg-progression/internal/engine"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/testutils"
)

func (s *EngineTestSuite) consistentCharacter() *dnd5e.Character {
	c := &dnd5e.Character{
		ID:           "char-audit",
		Level:        4,
		CastingStyle: dnd5e.CastingStyleGrace,
		AbilityScores: map[dnd5e.Ability]int{
			dnd5e.AbilityStrength:     8,
			dnd5e.AbilityDexterity:    14,
			dnd5e.AbilityConstitution: 14,
			dnd5e.AbilityIntelligence: 10,
			dnd5e.AbilityWisdom:       12,
			dnd5e.AbilityCharisma:     18,
		},
		StandardFeats: []string{"Alert"},
		ASIChoices: map[int]*dnd5e.ASIChoice{
			4: {Type: dnd5e.ASIChoiceTypeASI},
		},
		HitPoints:        31,
		CurrentHitPoints: 31,
	}
	c.SyncAbilityMirrors()
	return c
}

func findingKinds(findings []engine.AuditFinding) []string {
	var out []string
	for _, f := range findings {
		out = append(out, f.Kind)
	}
	return out
}

func (s *EngineTestSuite) TestAudit_Consistent() {
	s.Empty(s.engine.Audit(s.consistentCharacter()))
	s.Nil(s.engine.Audit(nil))
}

func (s *EngineTestSuite) TestAudit_Findings() {
	testCases := []struct {
		name   string
		modify func(c *dnd5e.Character)
		kind   string
	}{
		{name: "level above max", modify: func(c *dnd5e.Character) {
			c.Level = 21
			c.HitPoints = engine.FullHitPoints(c.CastingStyle, 21, 14)
		}, kind: engine.FindingLevelRange},
		{name: "unknown feat", modify: func(c *dnd5e.Character) {
			c.StandardFeats = append(c.StandardFeats, "Dueling Club Champion")
		}, kind: engine.FindingUnknownFeat},
		{name: "unknown heritage", modify: func(c *dnd5e.Character) {
			c.StandardFeats = nil
			c.InnateHeritage = "Part-Dragon"
		}, kind: engine.FindingUnknownHerit},
		{name: "heritage with level 1 feat", modify: func(c *dnd5e.Character) {
			c.InnateHeritage = "Part-Veela"
		}, kind: engine.FindingLevel1Conflict},
		{name: "stale hit points", modify: func(c *dnd5e.Character) {
			c.HitPoints = 24
		}, kind: engine.FindingHitPoints},
		{name: "mirror drift", modify: func(c *dnd5e.Character) {
			c.Charisma = 12
		}, kind: engine.FindingAbilityMirror},
		{name: "score above max", modify: func(c *dnd5e.Character) {
			c.AbilityScores[dnd5e.AbilityStrength] = 31
			c.SyncAbilityMirrors()
		}, kind: engine.FindingAbilityCap},
		{name: "asi at a non-asi level", modify: func(c *dnd5e.Character) {
			c.ASIChoices[3] = &dnd5e.ASIChoice{Type: dnd5e.ASIChoiceTypeASI}
		}, kind: engine.FindingASILevel},
		{name: "asi above current level", modify: func(c *dnd5e.Character) {
			c.ASIChoices[8] = &dnd5e.ASIChoice{Type: dnd5e.ASIChoiceTypeASI}
		}, kind: engine.FindingASILevel},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c := s.consistentCharacter()
			tc.modify(c)

			s.Equal([]string{tc.kind}, findingKinds(s.engine.Audit(c)))
		})
	}
}

func (s *EngineTestSuite) TestAudit_ASIFeatIsNotALevel1Feat() {
	c := s.consistentCharacter()
	c.StandardFeats = []string{"Alert"}
	c.ASIChoices[4] = &dnd5e.ASIChoice{Type: dnd5e.ASIChoiceTypeFeat, SelectedFeat: "Alert"}
	c.InnateHeritage = "Part-Veela"
	c.Level1ChoiceType = dnd5e.Level1ChoiceInnateHeritage

	s.Empty(s.engine.Audit(c))
}

func (s *EngineTestSuite) TestAudit_FixtureStagesAreClean() {
	for _, stage := range []string{
		testutils.StageFresh,
		testutils.StageLevel1Feat,
		testutils.StageHeritage,
		testutils.StageBeforeFirstASI,
	} {
		s.Run(stage, func() {
			c := testutils.CreateTestCharacterAtStage("player-audit", stage)
			s.Empty(s.engine.Audit(c))
		})
	}
}
