// Package v1alpha1 handles the generic API grpc service interface
package v1alpha1

import (
	"context"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/orchestrators/dice"
	dicesession "github.com/KirkDiggler/rpg-progression/internal/repositories/dice_session"
)

// DiceHandlerConfig holds dependencies for the dice handler
type DiceHandlerConfig struct {
	DiceService dice.Service
}

// Validate ensures all required dependencies are present
func (c *DiceHandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.DiceService == nil {
		return errors.InvalidArgument("dice service is required")
	}
	return nil
}

// DiceHandler implements the generic dice gRPC service
type DiceHandler struct {
	diceService dice.Service
}

var _ DiceServiceServer = (*DiceHandler)(nil)

// NewDiceHandler creates a new dice handler with the given configuration
func NewDiceHandler(cfg *DiceHandlerConfig) (*DiceHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &DiceHandler{
		diceService: cfg.DiceService,
	}, nil
}

// RollDice rolls dice using the specified notation and stores the result in a session
func (h *DiceHandler) RollDice(ctx context.Context, req *RollDiceRequest) (*RollDiceResponse, error) {
	if err := validateSessionRef(req.EntityID, req.Context); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.Notation == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("notation is required"))
	}

	diceOutput, err := h.diceService.RollDice(ctx, &dice.RollDiceInput{
		EntityID:    req.EntityID,
		Context:     req.Context,
		Notation:    req.Notation,
		Description: req.ModifierDescription,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &RollDiceResponse{
		Rolls:     convertRolls(diceOutput.Session.Rolls),
		ExpiresAt: diceOutput.Session.ExpiresAt.Unix(),
	}, nil
}

// GetRollSession retrieves an existing dice roll session
func (h *DiceHandler) GetRollSession(ctx context.Context, req *GetRollSessionRequest) (*GetRollSessionResponse, error) {
	if err := validateSessionRef(req.EntityID, req.Context); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	diceOutput, err := h.diceService.GetRollSession(ctx, &dice.GetRollSessionInput{
		EntityID: req.EntityID,
		Context:  req.Context,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetRollSessionResponse{
		Rolls:     convertRolls(diceOutput.Session.Rolls),
		ExpiresAt: diceOutput.Session.ExpiresAt.Unix(),
		CreatedAt: diceOutput.Session.CreatedAt.Unix(),
	}, nil
}

// ClearRollSession removes a dice roll session
func (h *DiceHandler) ClearRollSession(
	ctx context.Context,
	req *ClearRollSessionRequest,
) (*ClearRollSessionResponse, error) {
	if err := validateSessionRef(req.EntityID, req.Context); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	diceOutput, err := h.diceService.ClearRollSession(ctx, &dice.ClearRollSessionInput{
		EntityID: req.EntityID,
		Context:  req.Context,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ClearRollSessionResponse{
		Message:      "Roll session cleared successfully",
		RollsCleared: diceOutput.RollsDeleted,
	}, nil
}

func validateSessionRef(entityID, context string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("entity_id", entityID, vb)
	errors.ValidateRequired("context", context, vb)
	return vb.Build()
}

func convertRolls(in []dicesession.DiceRoll) []*DiceRoll {
	rolls := make([]*DiceRoll, 0, len(in))
	for _, r := range in {
		rolls = append(rolls, &DiceRoll{
			RollID:      r.RollID,
			Notation:    r.Notation,
			Dice:        r.Dice,
			Total:       r.Total,
			Description: r.Description,
		})
	}
	return rolls
}
