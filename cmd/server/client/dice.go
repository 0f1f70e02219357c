package client

import (
	"github.com/spf13/cobra"

	apiv1alpha1 "github.com/KirkDiggler/rpg-progression/internal/handlers/api/v1alpha1"
)

var rollDescription string

var rollDiceCmd = &cobra.Command{
	Use:   "roll-dice [notation] [entity-id] [context]",
	Short: "Roll dice using dice notation",
	Long: `Roll dice and see individual results. Examples:

  roll-dice 1d8 char-123 level_up:lvl_456
  roll-dice 1d20 char-456 attack`,
	Args: cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(apiv1alpha1.DiceServiceName, "RollDice", &apiv1alpha1.RollDiceRequest{
			Notation:            args[0],
			EntityID:            args[1],
			Context:             args[2],
			ModifierDescription: rollDescription,
		}, &apiv1alpha1.RollDiceResponse{})
	},
}

var getRollSessionCmd = &cobra.Command{
	Use:   "get-roll-session [entity-id] [context]",
	Short: "Get existing dice roll session",
	Long: `Retrieve all dice rolls for a specific entity and context. Hit dice rolled
by the level-up wizard are kept under the context level_up:<session-id>.`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(apiv1alpha1.DiceServiceName, "GetRollSession", &apiv1alpha1.GetRollSessionRequest{
			EntityID: args[0],
			Context:  args[1],
		}, &apiv1alpha1.GetRollSessionResponse{})
	},
}

var clearRollSessionCmd = &cobra.Command{
	Use:   "clear-roll-session [entity-id] [context]",
	Short: "Clear a dice roll session",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(apiv1alpha1.DiceServiceName, "ClearRollSession", &apiv1alpha1.ClearRollSessionRequest{
			EntityID: args[0],
			Context:  args[1],
		}, &apiv1alpha1.ClearRollSessionResponse{})
	},
}

func init() {
	rollDiceCmd.Flags().StringVar(&rollDescription, "description", "", "description recorded with the roll")
}
