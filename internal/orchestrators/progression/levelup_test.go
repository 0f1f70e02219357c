package progression_test

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-progression/internal/engine"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/orchestrators/dice"
	orchestrator "github.com/KirkDiggler/rpg-progression/internal/orchestrators/progression"
	characterrepo "github.com/KirkDiggler/rpg-progression/internal/repositories/character"
	levelupsession "github.com/KirkDiggler/rpg-progression/internal/repositories/levelup_session"
	"github.com/KirkDiggler/rpg-progression/internal/services/progression"
)

// openSession is a level 3 -> 4 wizard for level3Grace at step
func openSession(step engine.LevelUpStep) *engine.LevelUpSession {
	return &engine.LevelUpSession{
		ID:          "lvl-1",
		CharacterID: "char-grace",
		FromLevel:   3,
		ToLevel:     4,
		Step:        step,
	}
}

// reviewSession has taken average hit points and +2 charisma
func reviewSession() *engine.LevelUpSession {
	session := openSession(engine.LevelUpStepReview)
	session.HitPointMethod = engine.HitPointMethodAverage
	session.HitPointIncrease = 7
	session.ASIChoiceType = dnd5e.ASIChoiceTypeASI
	session.AbilityIncreases = []dnd5e.Ability{dnd5e.AbilityCharisma, dnd5e.AbilityCharisma}
	return session
}

func (s *OrchestratorTestSuite) TestStartLevelUp_New() {
	character := level3Grace()
	s.expectGetCharacter(character)
	s.mockSessions.EXPECT().
		GetActiveForCharacter(s.ctx, levelupsession.GetActiveForCharacterInput{CharacterID: character.ID}).
		Return(nil, errors.NotFound("no level up in progress"))
	s.expectSessionSave()

	out, err := s.orchestrator.StartLevelUp(s.ctx, &progression.StartLevelUpInput{CharacterID: character.ID})
	s.Require().NoError(err)
	s.False(out.Resumed)
	s.False(out.CanProceed)
	s.Equal("lvl_1", out.Session.ID)
	s.Equal(character.ID, out.Session.CharacterID)
	s.Equal(3, out.Session.FromLevel)
	s.Equal(4, out.Session.ToLevel)
	s.Equal(engine.LevelUpStepHitPoints, out.Session.Step)
}

func (s *OrchestratorTestSuite) TestStartLevelUp_Resumes() {
	character := level3Grace()
	active := openSession(engine.LevelUpStepASIOrFeat)
	active.HitPointIncrease = 7

	s.expectGetCharacter(character)
	s.mockSessions.EXPECT().
		GetActiveForCharacter(s.ctx, gomock.Any()).
		Return(&levelupsession.GetActiveForCharacterOutput{Session: active}, nil)

	out, err := s.orchestrator.StartLevelUp(s.ctx, &progression.StartLevelUpInput{CharacterID: character.ID})
	s.Require().NoError(err)
	s.True(out.Resumed)
	s.Same(active, out.Session)
}

func (s *OrchestratorTestSuite) TestStartLevelUp_ReplacesStaleSession() {
	character := level3Grace()
	stale := openSession(engine.LevelUpStepHitPoints)
	stale.FromLevel = 2
	stale.ToLevel = 3

	s.expectGetCharacter(character)
	s.mockSessions.EXPECT().
		GetActiveForCharacter(s.ctx, gomock.Any()).
		Return(&levelupsession.GetActiveForCharacterOutput{Session: stale}, nil)
	s.expectSessionSave()

	out, err := s.orchestrator.StartLevelUp(s.ctx, &progression.StartLevelUpInput{CharacterID: character.ID})
	s.Require().NoError(err)
	s.False(out.Resumed)
	s.Equal(3, out.Session.FromLevel)
}

func (s *OrchestratorTestSuite) TestStartLevelUp_Errors() {
	character := level3Grace()
	s.expectGetCharacter(character)
	s.mockSessions.EXPECT().
		GetActiveForCharacter(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	_, err := s.orchestrator.StartLevelUp(s.ctx, &progression.StartLevelUpInput{CharacterID: character.ID})
	s.True(errors.IsUnavailable(err))

	maxed := level3Grace()
	maxed.Level = dnd5e.MaxLevel
	s.expectGetCharacter(maxed)
	s.mockSessions.EXPECT().
		GetActiveForCharacter(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("no level up in progress"))

	_, err = s.orchestrator.StartLevelUp(s.ctx, &progression.StartLevelUpInput{CharacterID: maxed.ID})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestGetLevelUp() {
	session := reviewSession()
	s.expectGetSession(session)
	s.expectGetCharacter(level3Grace())

	out, err := s.orchestrator.GetLevelUp(s.ctx, &progression.GetLevelUpInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.Same(session, out.Session)
	s.True(out.CanProceed)

	_, err = s.orchestrator.GetLevelUp(s.ctx, &progression.GetLevelUpInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestUpdateLevelUp_AverageHitPoints() {
	s.expectGetSession(openSession(engine.LevelUpStepHitPoints))
	s.expectGetCharacter(level3Grace())
	s.expectSessionSave()

	out, err := s.orchestrator.UpdateLevelUp(s.ctx, &progression.UpdateLevelUpInput{
		SessionID:      "lvl-1",
		Action:         progression.LevelUpActionSetHitPoints,
		HitPointMethod: engine.HitPointMethodAverage,
	})
	s.Require().NoError(err)
	s.Equal(7, out.Session.HitPointIncrease)
	s.True(out.CanProceed)
	s.Zero(out.Rolled)
}

func (s *OrchestratorTestSuite) TestUpdateLevelUp_ServerRoll() {
	s.expectGetSession(openSession(engine.LevelUpStepHitPoints))
	s.expectGetCharacter(level3Grace())
	s.mockDice.EXPECT().
		RollHitDie(s.ctx, &dice.RollHitDieInput{
			EntityID: "char-grace",
			Context:  "level_up:lvl-1",
			DieSize:  8,
		}).
		Return(&dice.RollHitDieOutput{Value: 6}, nil)
	s.expectSessionSave()

	out, err := s.orchestrator.UpdateLevelUp(s.ctx, &progression.UpdateLevelUpInput{
		SessionID:      "lvl-1",
		Action:         progression.LevelUpActionSetHitPoints,
		HitPointMethod: engine.HitPointMethodRoll,
	})
	s.Require().NoError(err)
	s.Equal(6, out.Rolled)
	s.Equal(6, out.Session.HitPointInput)
	s.Equal(8, out.Session.HitPointIncrease)
}

func (s *OrchestratorTestSuite) TestUpdateLevelUp_PlayerRoll() {
	s.expectGetSession(openSession(engine.LevelUpStepHitPoints))
	s.expectGetCharacter(level3Grace())
	s.expectSessionSave()

	out, err := s.orchestrator.UpdateLevelUp(s.ctx, &progression.UpdateLevelUpInput{
		SessionID:      "lvl-1",
		Action:         progression.LevelUpActionSetHitPoints,
		HitPointMethod: engine.HitPointMethodRoll,
		HitPointValue:  3,
	})
	s.Require().NoError(err)
	s.Zero(out.Rolled)
	s.Equal(5, out.Session.HitPointIncrease)
}

func (s *OrchestratorTestSuite) TestUpdateLevelUp_RollFails() {
	s.expectGetSession(openSession(engine.LevelUpStepHitPoints))
	s.expectGetCharacter(level3Grace())
	s.mockDice.EXPECT().RollHitDie(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("redis down"))

	_, err := s.orchestrator.UpdateLevelUp(s.ctx, &progression.UpdateLevelUpInput{
		SessionID:      "lvl-1",
		Action:         progression.LevelUpActionSetHitPoints,
		HitPointMethod: engine.HitPointMethodRoll,
	})
	s.True(errors.IsUnavailable(err))
}

func (s *OrchestratorTestSuite) TestUpdateLevelUp_AbilityIncreasesAndAdvance() {
	session := openSession(engine.LevelUpStepASIOrFeat)
	session.HitPointIncrease = 7

	s.expectGetSession(session)
	s.expectGetCharacter(level3Grace())
	s.expectSessionSave()

	out, err := s.orchestrator.UpdateLevelUp(s.ctx, &progression.UpdateLevelUpInput{
		SessionID:        "lvl-1",
		Action:           progression.LevelUpActionSetAbilityIncreases,
		AbilityIncreases: []dnd5e.Ability{dnd5e.AbilityCharisma, dnd5e.AbilityDexterity},
	})
	s.Require().NoError(err)
	s.True(out.CanProceed)

	s.expectGetSession(out.Session)
	s.expectGetCharacter(level3Grace())
	s.expectSessionSave()

	out, err = s.orchestrator.UpdateLevelUp(s.ctx, &progression.UpdateLevelUpInput{
		SessionID: "lvl-1",
		Action:    progression.LevelUpActionAdvance,
	})
	s.Require().NoError(err)
	s.Equal(engine.LevelUpStepReview, out.Session.Step)
}

func (s *OrchestratorTestSuite) TestUpdateLevelUp_SelectFeatAndBack() {
	session := openSession(engine.LevelUpStepASIOrFeat)
	session.HitPointIncrease = 7

	s.expectGetSession(session)
	s.expectGetCharacter(level3Grace())
	s.expectSessionSave()

	out, err := s.orchestrator.UpdateLevelUp(s.ctx, &progression.UpdateLevelUpInput{
		SessionID: "lvl-1",
		Action:    progression.LevelUpActionSelectFeat,
		Feat:      &engine.SelectFeatInput{Name: "War Caster"},
	})
	s.Require().NoError(err)
	s.Equal("War Caster", out.Session.SelectedFeat)
	s.True(out.CanProceed)

	s.expectGetSession(out.Session)
	s.expectGetCharacter(level3Grace())
	s.expectSessionSave()

	out, err = s.orchestrator.UpdateLevelUp(s.ctx, &progression.UpdateLevelUpInput{
		SessionID: "lvl-1",
		Action:    progression.LevelUpActionBack,
	})
	s.Require().NoError(err)
	s.Equal(engine.LevelUpStepHitPoints, out.Session.Step)
	s.Equal("War Caster", out.Session.SelectedFeat)
}

func (s *OrchestratorTestSuite) TestUpdateLevelUp_BlockedAdvanceIsNotSaved() {
	s.expectGetSession(openSession(engine.LevelUpStepHitPoints))
	s.expectGetCharacter(level3Grace())

	_, err := s.orchestrator.UpdateLevelUp(s.ctx, &progression.UpdateLevelUpInput{
		SessionID: "lvl-1",
		Action:    progression.LevelUpActionAdvance,
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestUpdateLevelUp_Rejections() {
	_, err := s.orchestrator.UpdateLevelUp(s.ctx, &progression.UpdateLevelUpInput{SessionID: "lvl-1"})
	s.True(errors.IsInvalidArgument(err), "missing action")

	s.expectGetSession(openSession(engine.LevelUpStepHitPoints))
	s.expectGetCharacter(level3Grace())
	_, err = s.orchestrator.UpdateLevelUp(s.ctx, &progression.UpdateLevelUpInput{
		SessionID: "lvl-1",
		Action:    progression.LevelUpAction("skip"),
	})
	s.True(errors.IsInvalidArgument(err), "unknown action")

	s.expectGetSession(openSession(engine.LevelUpStepCommitted))
	_, err = s.orchestrator.UpdateLevelUp(s.ctx, &progression.UpdateLevelUpInput{
		SessionID: "lvl-1",
		Action:    progression.LevelUpActionBack,
	})
	s.True(errors.IsFailedPrecondition(err), "committed")

	leveled := level3Grace()
	leveled.Level = 4
	s.expectGetSession(openSession(engine.LevelUpStepHitPoints))
	s.expectGetCharacter(leveled)
	_, err = s.orchestrator.UpdateLevelUp(s.ctx, &progression.UpdateLevelUpInput{
		SessionID: "lvl-1",
		Action:    progression.LevelUpActionBack,
	})
	s.True(errors.IsFailedPrecondition(err), "character moved on")

	s.mockSessions.EXPECT().
		Get(s.ctx, levelupsession.GetInput{ID: "lvl-gone"}).
		Return(nil, errors.NotFound("level up session lvl-gone not found"))
	_, err = s.orchestrator.UpdateLevelUp(s.ctx, &progression.UpdateLevelUpInput{
		SessionID: "lvl-gone",
		Action:    progression.LevelUpActionBack,
	})
	s.True(errors.IsNotFound(err), "expired")
}

func (s *OrchestratorTestSuite) TestCommitLevelUp() {
	character := level3Grace()
	s.expectGetSession(reviewSession())
	s.expectGetCharacter(character)
	s.expectCharacterUpdate(character, func(u *characterrepo.CharacterUpdate) {
		s.Equal(4, *u.Level)
		s.Equal(31, *u.HitPoints)
		s.Equal(31, *u.CurrentHitPoints)
		s.Equal(18, u.AbilityScores[dnd5e.AbilityCharisma])
		s.Require().Contains(u.ASIChoices, 4)
		s.Equal(dnd5e.ASIChoiceTypeASI, u.ASIChoices[4].Type)
	})
	s.expectSessionSave().Do(func(_ context.Context, input levelupsession.SaveInput) {
		s.True(input.Session.IsCommitted())
	})

	out, err := s.orchestrator.CommitLevelUp(s.ctx, &progression.CommitLevelUpInput{SessionID: "lvl-1"})
	s.Require().NoError(err)
	s.Equal(4, out.Character.Level)
	s.Equal(18, out.Character.AbilityScore(dnd5e.AbilityCharisma))
	s.Equal(18, out.Character.Charisma)
	s.True(out.Session.IsCommitted())

	s.Require().Len(s.published, 1)
	event := s.published[0]
	s.Equal(orchestrator.EventLevelUpCommitted, event.Type())
	s.Equal("char-grace", event.Source().GetID())
	s.Equal("lvl-1", event.Target().GetID())
	toLevel, ok := event.Context().Get(orchestrator.EventKeyToLevel)
	s.True(ok)
	s.Equal(4, toLevel)
	hp, ok := event.Context().Get(orchestrator.EventKeyHitPoints)
	s.True(ok)
	s.Equal(31, hp)
}

func (s *OrchestratorTestSuite) TestCommitLevelUp_SaveFailureKeepsSession() {
	session := reviewSession()
	s.expectGetSession(session)
	s.expectGetCharacter(level3Grace())
	s.mockChars.EXPECT().
		Update(s.ctx, gomock.Any()).
		Return(nil, errors.Aborted("character was modified concurrently"))

	_, err := s.orchestrator.CommitLevelUp(s.ctx, &progression.CommitLevelUpInput{SessionID: "lvl-1"})
	s.Require().Error(err)
	s.True(errors.IsAborted(err))
	s.Equal(engine.LevelUpStepReview, session.Step)
	s.Empty(s.published)
}

func (s *OrchestratorTestSuite) TestCommitLevelUp_SessionCloseFailureStillCommits() {
	character := level3Grace()
	s.expectGetSession(reviewSession())
	s.expectGetCharacter(character)
	s.expectCharacterUpdate(character, nil)
	s.mockSessions.EXPECT().Save(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("redis down"))

	out, err := s.orchestrator.CommitLevelUp(s.ctx, &progression.CommitLevelUpInput{SessionID: "lvl-1"})
	s.Require().NoError(err)
	s.Equal(4, out.Character.Level)
	s.True(out.Session.IsCommitted())
	s.Len(s.published, 1)
}

func (s *OrchestratorTestSuite) TestCommitLevelUp_NotAtReview() {
	s.expectGetSession(openSession(engine.LevelUpStepASIOrFeat))
	s.expectGetCharacter(level3Grace())

	_, err := s.orchestrator.CommitLevelUp(s.ctx, &progression.CommitLevelUpInput{SessionID: "lvl-1"})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestCommitLevelUp_AlreadyCommitted() {
	s.expectGetSession(openSession(engine.LevelUpStepCommitted))

	_, err := s.orchestrator.CommitLevelUp(s.ctx, &progression.CommitLevelUpInput{SessionID: "lvl-1"})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal("lvl-1", errors.GetMeta(err)["session_id"])
}
