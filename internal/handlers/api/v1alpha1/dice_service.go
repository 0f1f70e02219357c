package v1alpha1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/KirkDiggler/rpg-progression/internal/handlers/wire"
)

// DiceServiceName is the fully qualified gRPC service name
const DiceServiceName = "progression.api.v1alpha1.DiceService"

// DiceServiceServer is the server API for the dice service
type DiceServiceServer interface {
	RollDice(ctx context.Context, req *RollDiceRequest) (*RollDiceResponse, error)
	GetRollSession(ctx context.Context, req *GetRollSessionRequest) (*GetRollSessionResponse, error)
	ClearRollSession(ctx context.Context, req *ClearRollSessionRequest) (*ClearRollSessionResponse, error)
}

// DiceServiceDesc describes the dice service for grpc.Server.RegisterService
var DiceServiceDesc = grpc.ServiceDesc{
	ServiceName: DiceServiceName,
	HandlerType: (*DiceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		wire.UnaryMethod(DiceServiceName, "RollDice", DiceServiceServer.RollDice),
		wire.UnaryMethod(DiceServiceName, "GetRollSession", DiceServiceServer.GetRollSession),
		wire.UnaryMethod(DiceServiceName, "ClearRollSession", DiceServiceServer.ClearRollSession),
	},
	Metadata: "progression/api/v1alpha1/dice.json",
}

// RegisterDiceServiceServer registers srv with s
func RegisterDiceServiceServer(s grpc.ServiceRegistrar, srv DiceServiceServer) {
	s.RegisterService(&DiceServiceDesc, srv)
}

// RollDiceRequest rolls notation into the entity's session for context
type RollDiceRequest struct {
	EntityID            string `json:"entity_id"`
	Context             string `json:"context"`
	Notation            string `json:"notation"`
	ModifierDescription string `json:"modifier_description,omitempty"`
}

// DiceRoll is one recorded roll
type DiceRoll struct {
	RollID      string `json:"roll_id"`
	Notation    string `json:"notation"`
	Dice        []int  `json:"dice"`
	Total       int    `json:"total"`
	Description string `json:"description,omitempty"`
}

// RollDiceResponse lists every roll in the session after the new one
type RollDiceResponse struct {
	Rolls     []*DiceRoll `json:"rolls"`
	ExpiresAt int64       `json:"expires_at"`
}

// GetRollSessionRequest identifies a session
type GetRollSessionRequest struct {
	EntityID string `json:"entity_id"`
	Context  string `json:"context"`
}

// GetRollSessionResponse carries the session's rolls
type GetRollSessionResponse struct {
	Rolls     []*DiceRoll `json:"rolls"`
	ExpiresAt int64       `json:"expires_at"`
	CreatedAt int64       `json:"created_at"`
}

// ClearRollSessionRequest identifies a session to clear
type ClearRollSessionRequest struct {
	EntityID string `json:"entity_id"`
	Context  string `json:"context"`
}

// ClearRollSessionResponse reports how many rolls were dropped
type ClearRollSessionResponse struct {
	Message      string `json:"message"`
	RollsCleared int    `json:"rolls_cleared"`
}
