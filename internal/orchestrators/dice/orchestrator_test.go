package dice_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/rpg-progression/internal/repositories/dice_session"
	dicesessionmock "github.com/KirkDiggler/rpg-progression/internal/repositories/dice_session/mock"
)

// scriptedRoller returns queued faces in order
type scriptedRoller struct {
	faces []int
	err   error
}

func (r *scriptedRoller) Roll(size int) (int, error) {
	faces, err := r.RollN(1, size)
	if err != nil {
		return 0, err
	}
	return faces[0], nil
}

func (r *scriptedRoller) RollN(count, _ int) ([]int, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(r.faces) < count {
		return nil, fmt.Errorf("scripted roller ran out of faces")
	}
	out := r.faces[:count]
	r.faces = r.faces[count:]
	return out, nil
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *dicesessionmock.MockRepository
	roller   *scriptedRoller
	orch     dice.Service
	ctx      context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = dicesessionmock.NewMockRepository(s.ctrl)
	s.roller = &scriptedRoller{}

	orch, err := dice.NewOrchestrator(&dice.Config{
		DiceSessionRepo: s.mockRepo,
		IDGenerator:     idgen.NewSequential("roll"),
		Roller:          s.roller,
		SessionTTL:      10 * time.Minute,
	})
	s.Require().NoError(err)

	s.orch = orch
	s.ctx = context.Background()
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) TestRollDice_CreatesSession() {
	s.roller.faces = []int{3, 5}

	s.mockRepo.EXPECT().
		Get(s.ctx, dicesession.GetInput{EntityID: "char-1", Context: "hit_points"}).
		Return(nil, errors.NotFound("dice session not found"))
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dicesession.CreateInput) (*dicesession.CreateOutput, error) {
			s.Equal(10*time.Minute, input.TTL)
			s.Require().Len(input.Rolls, 1)
			s.Equal([]int{3, 5}, input.Rolls[0].Dice)
			return &dicesession.CreateOutput{Session: &dicesession.DiceSession{
				EntityID: input.EntityID,
				Context:  input.Context,
				Rolls:    input.Rolls,
			}}, nil
		})

	out, err := s.orch.RollDice(s.ctx, &dice.RollDiceInput{
		EntityID: "char-1",
		Context:  "hit_points",
		Notation: "2D6",
	})
	s.Require().NoError(err)
	s.Equal("roll_1", out.Roll.RollID)
	s.Equal("2d6", out.Roll.Notation)
	s.Equal(8, out.Roll.Total)
	s.Len(out.Session.Rolls, 1)
}

func (s *OrchestratorTestSuite) TestRollDice_AppendsToSession() {
	s.roller.faces = []int{4}
	existing := &dicesession.DiceSession{
		EntityID: "char-1",
		Context:  "hit_points",
		Rolls:    []dicesession.DiceRoll{{RollID: "roll_0", Notation: "1d8", Dice: []int{2}, Total: 2}},
	}

	s.mockRepo.EXPECT().
		Get(s.ctx, dicesession.GetInput{EntityID: "char-1", Context: "hit_points"}).
		Return(&dicesession.GetOutput{Session: existing}, nil)
	s.mockRepo.EXPECT().Update(s.ctx, existing).Return(nil)

	out, err := s.orch.RollDice(s.ctx, &dice.RollDiceInput{
		EntityID: "char-1",
		Context:  "hit_points",
		Notation: "1d8",
	})
	s.Require().NoError(err)
	s.Len(out.Session.Rolls, 2)
	s.Equal(4, out.Session.Rolls[1].Total)
}

func (s *OrchestratorTestSuite) TestRollDice_InputTTL() {
	s.roller.faces = []int{1}

	s.mockRepo.EXPECT().Get(s.ctx, gomock.Any()).Return(nil, errors.NotFound("dice session not found"))
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dicesession.CreateInput) (*dicesession.CreateOutput, error) {
			s.Equal(time.Minute, input.TTL)
			return &dicesession.CreateOutput{Session: &dicesession.DiceSession{Rolls: input.Rolls}}, nil
		})

	_, err := s.orch.RollDice(s.ctx, &dice.RollDiceInput{
		EntityID: "char-1",
		Context:  "hit_points",
		Notation: "1d4",
		TTL:      time.Minute,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestRollDice_Validation() {
	testCases := []struct {
		name  string
		input *dice.RollDiceInput
	}{
		{name: "nil input"},
		{name: "missing entity", input: &dice.RollDiceInput{Context: "c", Notation: "1d6"}},
		{name: "missing context", input: &dice.RollDiceInput{EntityID: "e", Notation: "1d6"}},
		{name: "missing notation", input: &dice.RollDiceInput{EntityID: "e", Context: "c"}},
		{name: "bad notation", input: &dice.RollDiceInput{EntityID: "e", Context: "c", Notation: "d6+1"}},
		{name: "zero dice", input: &dice.RollDiceInput{EntityID: "e", Context: "c", Notation: "0d6"}},
		{name: "too many dice", input: &dice.RollDiceInput{EntityID: "e", Context: "c", Notation: "101d6"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orch.RollDice(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestRollDice_RollerFails() {
	s.roller.err = fmt.Errorf("entropy exhausted")

	_, err := s.orch.RollDice(s.ctx, &dice.RollDiceInput{EntityID: "e", Context: "c", Notation: "1d6"})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *OrchestratorTestSuite) TestRollDice_RepositoryFails() {
	s.roller.faces = []int{6}
	s.mockRepo.EXPECT().Get(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("redis down"))

	_, err := s.orch.RollDice(s.ctx, &dice.RollDiceInput{EntityID: "e", Context: "c", Notation: "1d6"})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
}

func (s *OrchestratorTestSuite) TestRollHitDie() {
	s.roller.faces = []int{7}

	s.mockRepo.EXPECT().
		Get(s.ctx, dicesession.GetInput{EntityID: "char-1", Context: "level_up:lvl-1"}).
		Return(nil, errors.NotFound("dice session not found"))
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dicesession.CreateInput) (*dicesession.CreateOutput, error) {
			s.Equal("1d10", input.Rolls[0].Notation)
			s.Equal("Hit die (d10)", input.Rolls[0].Description)
			return &dicesession.CreateOutput{Session: &dicesession.DiceSession{Rolls: input.Rolls}}, nil
		})

	out, err := s.orch.RollHitDie(s.ctx, &dice.RollHitDieInput{
		EntityID: "char-1",
		Context:  "level_up:lvl-1",
		DieSize:  10,
	})
	s.Require().NoError(err)
	s.Equal(7, out.Value)
	s.Equal(out.Roll.Total, out.Value)
}

func (s *OrchestratorTestSuite) TestRollHitDie_Validation() {
	_, err := s.orch.RollHitDie(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orch.RollHitDie(s.ctx, &dice.RollHitDieInput{EntityID: "e", Context: "c"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetRollSession() {
	session := &dicesession.DiceSession{EntityID: "char-1", Context: "hit_points"}
	s.mockRepo.EXPECT().
		Get(s.ctx, dicesession.GetInput{EntityID: "char-1", Context: "hit_points"}).
		Return(&dicesession.GetOutput{Session: session}, nil)

	out, err := s.orch.GetRollSession(s.ctx, &dice.GetRollSessionInput{EntityID: "char-1", Context: "hit_points"})
	s.Require().NoError(err)
	s.Same(session, out.Session)

	s.mockRepo.EXPECT().Get(s.ctx, gomock.Any()).Return(nil, errors.NotFound("dice session not found"))
	_, err = s.orch.GetRollSession(s.ctx, &dice.GetRollSessionInput{EntityID: "char-2", Context: "hit_points"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestClearRollSession() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, dicesession.DeleteInput{EntityID: "char-1", Context: "hit_points"}).
		Return(&dicesession.DeleteOutput{RollsDeleted: 3}, nil)

	out, err := s.orch.ClearRollSession(s.ctx, &dice.ClearRollSessionInput{EntityID: "char-1", Context: "hit_points"})
	s.Require().NoError(err)
	s.Equal(3, out.RollsDeleted)

	_, err = s.orch.ClearRollSession(s.ctx, &dice.ClearRollSessionInput{EntityID: "char-1"})
	s.True(errors.IsInvalidArgument(err))
}

func TestParseNotation(t *testing.T) {
	testCases := []struct {
		notation  string
		wantCount int
		wantSize  int
		wantErr   bool
	}{
		{notation: "1d20", wantCount: 1, wantSize: 20},
		{notation: " 3D8 ", wantCount: 3, wantSize: 8},
		{notation: "1d0", wantErr: true},
		{notation: "2d6+1", wantErr: true},
		{notation: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.notation, func(t *testing.T) {
			count, size, err := dice.ParseNotation(tc.notation)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.notation)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if count != tc.wantCount || size != tc.wantSize {
				t.Fatalf("got %dd%d, want %dd%d", count, size, tc.wantCount, tc.wantSize)
			}
		})
	}
}

func TestNewOrchestrator_Validation(t *testing.T) {
	_, err := dice.NewOrchestrator(nil)
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for nil config, got %v", err)
	}

	_, err = dice.NewOrchestrator(&dice.Config{})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for empty config, got %v", err)
	}
}
