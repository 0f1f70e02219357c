package character_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/repositories/character"
	"github.com/KirkDiggler/rpg-progression/internal/testutils"
	"github.com/KirkDiggler/rpg-progression/internal/testutils/builders"
)

func testCharacter(id, playerID string) *dnd5e.Character {
	return builders.NewCharacterBuilder().
		WithID(id).
		WithPlayerID(playerID).
		WithCastingStyle(dnd5e.CastingStyleGrace).
		WithAbilityScore(dnd5e.AbilityConstitution, 14).
		WithFeats("Actor").
		WithHitPoints(10).
		Build()
}

// runContract exercises the behavior every backend must share
func runContract(t *testing.T, repo character.Repository) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		in := testCharacter("char-contract", "player-contract")
		in.CreatedAt = 0

		created, err := repo.Create(ctx, character.CreateInput{Character: in})
		require.NoError(t, err)
		assert.NotZero(t, created.Character.CreatedAt)
		assert.Equal(t, int64(1), created.Character.Revision)

		got, err := repo.Get(ctx, character.GetInput{ID: "char-contract"})
		require.NoError(t, err)
		assert.Equal(t, created.Character, got.Character)
		assert.Equal(t, 14, got.Character.Constitution)
	})

	t.Run("create duplicate", func(t *testing.T) {
		_, err := repo.Create(ctx, character.CreateInput{Character: testCharacter("char-contract", "player-contract")})
		assert.True(t, errors.IsAlreadyExists(err), "got %v", err)
	})

	t.Run("create validation", func(t *testing.T) {
		_, err := repo.Create(ctx, character.CreateInput{})
		assert.True(t, errors.IsInvalidArgument(err))

		_, err = repo.Create(ctx, character.CreateInput{Character: &dnd5e.Character{}})
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := repo.Get(ctx, character.GetInput{ID: "char-missing"})
		assert.True(t, errors.IsNotFound(err))

		_, err = repo.Get(ctx, character.GetInput{})
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("partial update", func(t *testing.T) {
		level := 4
		hp := 31
		out, err := repo.Update(ctx, character.UpdateInput{
			ID: "char-contract",
			Update: &character.CharacterUpdate{
				Level:         &level,
				HitPoints:     &hp,
				AbilityScores: map[dnd5e.Ability]int{dnd5e.AbilityCharisma: 12},
				ASIChoices: map[int]*dnd5e.ASIChoice{
					4: {Type: dnd5e.ASIChoiceTypeASI, AbilityScoreIncreases: []dnd5e.AbilityIncrease{
						{Ability: dnd5e.AbilityCharisma, Increase: 2},
					}},
				},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 4, out.Character.Level)

		got, err := repo.Get(ctx, character.GetInput{ID: "char-contract"})
		require.NoError(t, err)
		assert.Equal(t, 4, got.Character.Level)
		assert.Equal(t, 31, got.Character.HitPoints)
		assert.Equal(t, 10, got.Character.CurrentHitPoints, "unset fields are unchanged")
		assert.Equal(t, 12, got.Character.Charisma, "mirrors follow the map")
		assert.Equal(t, 14, got.Character.Constitution)
		assert.Equal(t, []string{"Actor"}, got.Character.StandardFeats)
		assert.Equal(t, dnd5e.ASIChoiceTypeASI, got.Character.ASIChoices[4].Type)
	})

	t.Run("full update from snapshot", func(t *testing.T) {
		got, err := repo.Get(ctx, character.GetInput{ID: "char-contract"})
		require.NoError(t, err)

		next := got.Character.Clone()
		next.StandardFeats = nil
		next.SkillProficiencies = []string{dnd5e.SkillStealth}

		_, err = repo.Update(ctx, character.UpdateInput{ID: "char-contract", Update: character.UpdateFrom(next)})
		require.NoError(t, err)

		got, err = repo.Get(ctx, character.GetInput{ID: "char-contract"})
		require.NoError(t, err)
		assert.Empty(t, got.Character.StandardFeats)
		assert.Equal(t, []string{dnd5e.SkillStealth}, got.Character.SkillProficiencies)
	})

	t.Run("stale revision is rejected", func(t *testing.T) {
		loaded, err := repo.Get(ctx, character.GetInput{ID: "char-contract"})
		require.NoError(t, err)
		stale := loaded.Character.Clone()

		// Another writer saves between our load and our save.
		hp := 40
		other, err := repo.Update(ctx, character.UpdateInput{
			ID:               "char-contract",
			Update:           &character.CharacterUpdate{HitPoints: &hp},
			ExpectedRevision: loaded.Character.Revision,
		})
		require.NoError(t, err)
		assert.Equal(t, loaded.Character.Revision+1, other.Character.Revision)

		stale.SkillProficiencies = []string{dnd5e.SkillHerbology}
		_, err = repo.Update(ctx, character.UpdateInput{
			ID:               "char-contract",
			Update:           character.UpdateFrom(stale),
			ExpectedRevision: stale.Revision,
		})
		assert.True(t, errors.IsAborted(err), "got %v", err)
		assert.True(t, errors.IsRetryable(err))

		got, err := repo.Get(ctx, character.GetInput{ID: "char-contract"})
		require.NoError(t, err)
		assert.Equal(t, 40, got.Character.HitPoints, "the concurrent write survives")
		assert.Equal(t, []string{dnd5e.SkillStealth}, got.Character.SkillProficiencies)
		assert.Equal(t, other.Character.Revision, got.Character.Revision)
	})

	t.Run("update validation", func(t *testing.T) {
		bad := 21
		_, err := repo.Update(ctx, character.UpdateInput{
			ID:     "char-contract",
			Update: &character.CharacterUpdate{Level: &bad},
		})
		assert.True(t, errors.IsInvalidArgument(err))

		_, err = repo.Update(ctx, character.UpdateInput{ID: "char-contract"})
		assert.True(t, errors.IsInvalidArgument(err))

		level := 2
		_, err = repo.Update(ctx, character.UpdateInput{
			ID:     "char-missing",
			Update: &character.CharacterUpdate{Level: &level},
		})
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("list by player", func(t *testing.T) {
		_, err := repo.Create(ctx, character.CreateInput{Character: testCharacter("char-contract-2", "player-contract")})
		require.NoError(t, err)
		_, err = repo.Create(ctx, character.CreateInput{Character: testCharacter("char-other", "player-other")})
		require.NoError(t, err)

		out, err := repo.ListByPlayerID(ctx, character.ListByPlayerIDInput{PlayerID: "player-contract"})
		require.NoError(t, err)
		require.Len(t, out.Characters, 2)
		assert.Equal(t, "char-contract", out.Characters[0].ID)
		assert.Equal(t, "char-contract-2", out.Characters[1].ID)

		empty, err := repo.ListByPlayerID(ctx, character.ListByPlayerIDInput{PlayerID: "player-none"})
		require.NoError(t, err)
		assert.Empty(t, empty.Characters)

		_, err = repo.ListByPlayerID(ctx, character.ListByPlayerIDInput{})
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("heritage character round trip", func(t *testing.T) {
		in := testutils.CreateTestCharacterAtStage("player-heritage", testutils.StageHeritage)
		in.ID = "char-heritage"

		_, err := repo.Create(ctx, character.CreateInput{Character: in})
		require.NoError(t, err)

		got, err := repo.Get(ctx, character.GetInput{ID: "char-heritage"})
		require.NoError(t, err)
		assert.Equal(t, dnd5e.Level1ChoiceInnateHeritage, got.Character.Level1ChoiceType)
		assert.Equal(t, "Part-Veela", got.Character.InnateHeritage)
		assert.Equal(t, in.HeritageChoices, got.Character.HeritageChoices)
		assert.Equal(t, in.SkillProficiencies, got.Character.SkillProficiencies)
	})

	t.Run("delete", func(t *testing.T) {
		_, err := repo.Delete(ctx, character.DeleteInput{ID: "char-contract-2"})
		require.NoError(t, err)

		_, err = repo.Get(ctx, character.GetInput{ID: "char-contract-2"})
		assert.True(t, errors.IsNotFound(err))

		_, err = repo.Delete(ctx, character.DeleteInput{ID: "char-contract-2"})
		assert.True(t, errors.IsNotFound(err))

		out, err := repo.ListByPlayerID(ctx, character.ListByPlayerIDInput{PlayerID: "player-contract"})
		require.NoError(t, err)
		assert.Len(t, out.Characters, 1)
	})
}
