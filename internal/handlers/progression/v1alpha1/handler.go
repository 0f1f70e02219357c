// Package v1alpha1 handles the progression grpc service interface
package v1alpha1

import (
	"context"

	"github.com/KirkDiggler/rpg-progression/internal/engine"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/services/progression"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	ProgressionService progression.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.ProgressionService == nil {
		return errors.InvalidArgument("progression service is required")
	}
	return nil
}

// Handler implements the progression gRPC service
type Handler struct {
	progressionService progression.Service
}

var _ ProgressionServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		progressionService: cfg.ProgressionService,
	}, nil
}

// GetCharacter returns a stored character with its derived benefits
func (h *Handler) GetCharacter(ctx context.Context, req *GetCharacterRequest) (*GetCharacterResponse, error) {
	if err := requireField("character_id", req.CharacterID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.progressionService.GetCharacter(ctx, &progression.GetCharacterInput{
		CharacterID: req.CharacterID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetCharacterResponse{
		Character: out.Character,
		Benefits:  out.Benefits,
	}, nil
}

// GetDerivedBenefits returns the consolidated benefit view of a character
func (h *Handler) GetDerivedBenefits(
	ctx context.Context,
	req *GetDerivedBenefitsRequest,
) (*GetDerivedBenefitsResponse, error) {
	if err := requireField("character_id", req.CharacterID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.progressionService.GetDerivedBenefits(ctx, &progression.GetDerivedBenefitsInput{
		CharacterID: req.CharacterID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetDerivedBenefitsResponse{Benefits: out.Benefits}, nil
}

// ListAvailableFeats lists the feats and heritages a character may select
func (h *Handler) ListAvailableFeats(
	ctx context.Context,
	req *ListAvailableFeatsRequest,
) (*ListAvailableFeatsResponse, error) {
	if err := requireField("character_id", req.CharacterID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.progressionService.ListAvailableFeats(ctx, &progression.ListAvailableFeatsInput{
		CharacterID: req.CharacterID,
		Level:       req.Level,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ListAvailableFeatsResponse{
		Feats:     convertFeats(out.Feats),
		Heritages: convertHeritages(out.Heritages),
	}, nil
}

// SetLevel1Choice switches or fills the character's level 1 pick
func (h *Handler) SetLevel1Choice(
	ctx context.Context,
	req *SetLevel1ChoiceRequest,
) (*SetLevel1ChoiceResponse, error) {
	if err := requireField("character_id", req.CharacterID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	choiceType, err := parseLevel1ChoiceType(req.ChoiceType)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	input := &progression.SetLevel1ChoiceInput{
		CharacterID: req.CharacterID,
		ChoiceType:  choiceType,
		Feat:        convertFeatSelection(req.Feat),
	}
	if req.Heritage != nil {
		input.Heritage = &engine.SelectHeritageInput{
			Name:    req.Heritage.Name,
			Options: req.Heritage.Options,
			Choices: req.Heritage.Choices,
		}
	}

	out, err := h.progressionService.SetLevel1Choice(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &SetLevel1ChoiceResponse{
		Character: out.Character,
		Benefits:  out.Benefits,
	}, nil
}

// StartLevelUp opens a wizard for the character's next level, or resumes
// the open one
func (h *Handler) StartLevelUp(ctx context.Context, req *StartLevelUpRequest) (*StartLevelUpResponse, error) {
	if err := requireField("character_id", req.CharacterID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.progressionService.StartLevelUp(ctx, &progression.StartLevelUpInput{
		CharacterID: req.CharacterID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &StartLevelUpResponse{
		Session:    out.Session,
		CanProceed: out.CanProceed,
		Resumed:    out.Resumed,
	}, nil
}

// GetLevelUp returns a wizard and whether its current step is complete
func (h *Handler) GetLevelUp(ctx context.Context, req *GetLevelUpRequest) (*GetLevelUpResponse, error) {
	if err := requireField("session_id", req.SessionID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.progressionService.GetLevelUp(ctx, &progression.GetLevelUpInput{
		SessionID: req.SessionID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetLevelUpResponse{
		Session:    out.Session,
		CanProceed: out.CanProceed,
	}, nil
}

// UpdateLevelUp applies one wizard action
func (h *Handler) UpdateLevelUp(ctx context.Context, req *UpdateLevelUpRequest) (*UpdateLevelUpResponse, error) {
	input, err := convertUpdateLevelUp(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.progressionService.UpdateLevelUp(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &UpdateLevelUpResponse{
		Session:    out.Session,
		CanProceed: out.CanProceed,
		Rolled:     out.Rolled,
	}, nil
}

// CommitLevelUp applies a wizard at review to its character
func (h *Handler) CommitLevelUp(ctx context.Context, req *CommitLevelUpRequest) (*CommitLevelUpResponse, error) {
	if err := requireField("session_id", req.SessionID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.progressionService.CommitLevelUp(ctx, &progression.CommitLevelUpInput{
		SessionID: req.SessionID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &CommitLevelUpResponse{
		Character: out.Character,
		Session:   out.Session,
	}, nil
}

func requireField(field, value string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired(field, value, vb)
	return vb.Build()
}

func parseLevel1ChoiceType(s string) (dnd5e.Level1ChoiceType, error) {
	switch t := dnd5e.Level1ChoiceType(s); t {
	case dnd5e.Level1ChoiceFeat, dnd5e.Level1ChoiceInnateHeritage:
		return t, nil
	case dnd5e.Level1ChoiceNone:
		return "", errors.InvalidArgument("choice_type is required")
	default:
		return "", errors.InvalidArgumentf("unknown choice_type %q", s)
	}
}
