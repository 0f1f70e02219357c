package v1alpha1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/engine"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/handlers/wire"
)

// ProgressionServiceName is the fully qualified gRPC service name
const ProgressionServiceName = "progression.api.v1alpha1.ProgressionService"

// ProgressionServiceServer is the server API for the progression service
type ProgressionServiceServer interface {
	GetCharacter(ctx context.Context, req *GetCharacterRequest) (*GetCharacterResponse, error)
	GetDerivedBenefits(ctx context.Context, req *GetDerivedBenefitsRequest) (*GetDerivedBenefitsResponse, error)
	ListAvailableFeats(ctx context.Context, req *ListAvailableFeatsRequest) (*ListAvailableFeatsResponse, error)
	SetLevel1Choice(ctx context.Context, req *SetLevel1ChoiceRequest) (*SetLevel1ChoiceResponse, error)
	StartLevelUp(ctx context.Context, req *StartLevelUpRequest) (*StartLevelUpResponse, error)
	GetLevelUp(ctx context.Context, req *GetLevelUpRequest) (*GetLevelUpResponse, error)
	UpdateLevelUp(ctx context.Context, req *UpdateLevelUpRequest) (*UpdateLevelUpResponse, error)
	CommitLevelUp(ctx context.Context, req *CommitLevelUpRequest) (*CommitLevelUpResponse, error)
}

// ProgressionServiceDesc describes the progression service for
// grpc.Server.RegisterService
var ProgressionServiceDesc = grpc.ServiceDesc{
	ServiceName: ProgressionServiceName,
	HandlerType: (*ProgressionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		wire.UnaryMethod(ProgressionServiceName, "GetCharacter", ProgressionServiceServer.GetCharacter),
		wire.UnaryMethod(ProgressionServiceName, "GetDerivedBenefits", ProgressionServiceServer.GetDerivedBenefits),
		wire.UnaryMethod(ProgressionServiceName, "ListAvailableFeats", ProgressionServiceServer.ListAvailableFeats),
		wire.UnaryMethod(ProgressionServiceName, "SetLevel1Choice", ProgressionServiceServer.SetLevel1Choice),
		wire.UnaryMethod(ProgressionServiceName, "StartLevelUp", ProgressionServiceServer.StartLevelUp),
		wire.UnaryMethod(ProgressionServiceName, "GetLevelUp", ProgressionServiceServer.GetLevelUp),
		wire.UnaryMethod(ProgressionServiceName, "UpdateLevelUp", ProgressionServiceServer.UpdateLevelUp),
		wire.UnaryMethod(ProgressionServiceName, "CommitLevelUp", ProgressionServiceServer.CommitLevelUp),
	},
	Metadata: "progression/api/v1alpha1/progression.json",
}

// RegisterProgressionServiceServer registers srv with s
func RegisterProgressionServiceServer(s grpc.ServiceRegistrar, srv ProgressionServiceServer) {
	s.RegisterService(&ProgressionServiceDesc, srv)
}

// Character views

// GetCharacterRequest identifies a character
type GetCharacterRequest struct {
	CharacterID string `json:"character_id"`
}

// GetCharacterResponse carries the stored character and its benefits
type GetCharacterResponse struct {
	Character *dnd5e.Character        `json:"character"`
	Benefits  *engine.DerivedBenefits `json:"benefits"`
}

// GetDerivedBenefitsRequest identifies a character
type GetDerivedBenefitsRequest struct {
	CharacterID string `json:"character_id"`
}

// GetDerivedBenefitsResponse carries the consolidated benefit view
type GetDerivedBenefitsResponse struct {
	Benefits *engine.DerivedBenefits `json:"benefits"`
}

// ListAvailableFeatsRequest lists what a character may pick. Level defaults
// to the character's current level.
type ListAvailableFeatsRequest struct {
	CharacterID string `json:"character_id"`
	Level       int    `json:"level,omitempty"`
}

// ListAvailableFeatsResponse lists selectable feats and heritages
type ListAvailableFeatsResponse struct {
	Feats     []*FeatSummary     `json:"feats"`
	Heritages []*HeritageSummary `json:"heritages"`
}

// FeatSummary is a selectable feat
type FeatSummary struct {
	Name          string                 `json:"name"`
	Preview       string                 `json:"preview"`
	Description   []string               `json:"description,omitempty"`
	Repeatable    bool                   `json:"repeatable,omitempty"`
	Prerequisites *catalog.Prerequisites `json:"prerequisites,omitempty"`
}

// HeritageSummary is a selectable heritage
type HeritageSummary struct {
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Prerequisites *catalog.Prerequisites `json:"prerequisites,omitempty"`
	Features      []FeatureSummary       `json:"features,omitempty"`
}

// FeatureSummary is a heritage feature; choice features list option names
type FeatureSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	IsChoice    bool     `json:"is_choice,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// Level 1 boundary

// FeatSelection names a feat and the picks it needs
type FeatSelection struct {
	Name    string            `json:"name"`
	Choices map[string]string `json:"choices,omitempty"`
}

// HeritageSelection names a heritage, its feature options and grant picks
type HeritageSelection struct {
	Name    string            `json:"name"`
	Options map[string]string `json:"options,omitempty"`
	Choices map[string]string `json:"choices,omitempty"`
}

// SetLevel1ChoiceRequest switches or fills the level 1 pick
type SetLevel1ChoiceRequest struct {
	CharacterID string             `json:"character_id"`
	ChoiceType  string             `json:"choice_type"`
	Feat        *FeatSelection     `json:"feat,omitempty"`
	Heritage    *HeritageSelection `json:"heritage,omitempty"`
}

// SetLevel1ChoiceResponse carries the saved character and its benefits
type SetLevel1ChoiceResponse struct {
	Character *dnd5e.Character        `json:"character"`
	Benefits  *engine.DerivedBenefits `json:"benefits"`
}

// Level-up wizard

// StartLevelUpRequest opens or resumes a wizard
type StartLevelUpRequest struct {
	CharacterID string `json:"character_id"`
}

// StartLevelUpResponse carries the open wizard
type StartLevelUpResponse struct {
	Session    *engine.LevelUpSession `json:"session"`
	CanProceed bool                   `json:"can_proceed"`
	Resumed    bool                   `json:"resumed"`
}

// GetLevelUpRequest identifies a wizard
type GetLevelUpRequest struct {
	SessionID string `json:"session_id"`
}

// GetLevelUpResponse carries a wizard and its gate
type GetLevelUpResponse struct {
	Session    *engine.LevelUpSession `json:"session"`
	CanProceed bool                   `json:"can_proceed"`
}

// UpdateLevelUpRequest applies one action to a wizard
type UpdateLevelUpRequest struct {
	SessionID        string         `json:"session_id"`
	Action           string         `json:"action"`
	HitPointMethod   string         `json:"hit_point_method,omitempty"`
	HitPointValue    int            `json:"hit_point_value,omitempty"`
	AbilityIncreases []string       `json:"ability_increases,omitempty"`
	Feat             *FeatSelection `json:"feat,omitempty"`
}

// UpdateLevelUpResponse carries the wizard after the action
type UpdateLevelUpResponse struct {
	Session    *engine.LevelUpSession `json:"session"`
	CanProceed bool                   `json:"can_proceed"`
	Rolled     int                    `json:"rolled,omitempty"`
}

// CommitLevelUpRequest commits a wizard at review
type CommitLevelUpRequest struct {
	SessionID string `json:"session_id"`
}

// CommitLevelUpResponse carries the leveled character and the closed wizard
type CommitLevelUpResponse struct {
	Character *dnd5e.Character       `json:"character"`
	Session   *engine.LevelUpSession `json:"session"`
}
