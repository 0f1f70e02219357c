package client

import (
	"github.com/spf13/cobra"

	progressionv1alpha1 "github.com/KirkDiggler/rpg-progression/internal/handlers/progression/v1alpha1"
)

var (
	hitPointMethod   string
	hitPointValue    int
	abilityIncreases []string
	levelUpFeat      string
	levelUpChoices   map[string]string
)

var levelUpCmd = &cobra.Command{
	Use:   "levelup",
	Short: "Drive the level-up wizard",
}

var levelUpStartCmd = &cobra.Command{
	Use:   "start [character-id]",
	Short: "Open or resume a wizard for the character's next level",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(progressionv1alpha1.ProgressionServiceName, "StartLevelUp",
			&progressionv1alpha1.StartLevelUpRequest{CharacterID: args[0]},
			&progressionv1alpha1.StartLevelUpResponse{})
	},
}

var levelUpGetCmd = &cobra.Command{
	Use:   "get [session-id]",
	Short: "Show a wizard",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(progressionv1alpha1.ProgressionServiceName, "GetLevelUp",
			&progressionv1alpha1.GetLevelUpRequest{SessionID: args[0]},
			&progressionv1alpha1.GetLevelUpResponse{})
	},
}

var levelUpHitPointsCmd = &cobra.Command{
	Use:   "hit-points [session-id]",
	Short: "Set the hit point increase",
	Long: `Set the hit point increase. Examples:

  levelup hit-points lvl_123 --method average
  levelup hit-points lvl_123 --method roll            (rolled by the server)
  levelup hit-points lvl_123 --method roll --value 6  (physical die)
  levelup hit-points lvl_123 --method manual --value 9`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return update(&progressionv1alpha1.UpdateLevelUpRequest{
			SessionID:      args[0],
			Action:         "set_hit_points",
			HitPointMethod: hitPointMethod,
			HitPointValue:  hitPointValue,
		})
	},
}

var levelUpASICmd = &cobra.Command{
	Use:   "asi [session-id]",
	Short: "Take an ability score improvement",
	Long: `Take two +1 increases. Name one ability twice for +2:

  levelup asi lvl_123 --ability charisma --ability charisma`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return update(&progressionv1alpha1.UpdateLevelUpRequest{
			SessionID:        args[0],
			Action:           "set_ability_increases",
			AbilityIncreases: abilityIncreases,
		})
	},
}

var levelUpFeatCmd = &cobra.Command{
	Use:   "feat [session-id]",
	Short: "Take a feat instead of an ability score improvement",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return update(&progressionv1alpha1.UpdateLevelUpRequest{
			SessionID: args[0],
			Action:    "select_feat",
			Feat:      &progressionv1alpha1.FeatSelection{Name: levelUpFeat, Choices: levelUpChoices},
		})
	},
}

var levelUpNextCmd = &cobra.Command{
	Use:   "next [session-id]",
	Short: "Advance to the next step",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return update(&progressionv1alpha1.UpdateLevelUpRequest{SessionID: args[0], Action: "advance"})
	},
}

var levelUpBackCmd = &cobra.Command{
	Use:   "back [session-id]",
	Short: "Return to the previous step",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return update(&progressionv1alpha1.UpdateLevelUpRequest{SessionID: args[0], Action: "back"})
	},
}

var levelUpCommitCmd = &cobra.Command{
	Use:   "commit [session-id]",
	Short: "Apply a wizard at review to its character",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(progressionv1alpha1.ProgressionServiceName, "CommitLevelUp",
			&progressionv1alpha1.CommitLevelUpRequest{SessionID: args[0]},
			&progressionv1alpha1.CommitLevelUpResponse{})
	},
}

func update(req *progressionv1alpha1.UpdateLevelUpRequest) error {
	return call(progressionv1alpha1.ProgressionServiceName, "UpdateLevelUp", req,
		&progressionv1alpha1.UpdateLevelUpResponse{})
}

func init() {
	levelUpHitPointsCmd.Flags().StringVar(&hitPointMethod, "method", "average", "average, roll or manual")
	levelUpHitPointsCmd.Flags().IntVar(&hitPointValue, "value", 0, "die face or manual increase")

	levelUpASICmd.Flags().StringSliceVar(&abilityIncreases, "ability", nil, "ability to raise by 1 (repeatable)")

	levelUpFeatCmd.Flags().StringVar(&levelUpFeat, "name", "", "feat to take")
	levelUpFeatCmd.Flags().StringToStringVar(&levelUpChoices, "choice", nil, "feat pick, key=value")
	_ = levelUpFeatCmd.MarkFlagRequired("name")

	levelUpCmd.AddCommand(levelUpStartCmd)
	levelUpCmd.AddCommand(levelUpGetCmd)
	levelUpCmd.AddCommand(levelUpHitPointsCmd)
	levelUpCmd.AddCommand(levelUpASICmd)
	levelUpCmd.AddCommand(levelUpFeatCmd)
	levelUpCmd.AddCommand(levelUpNextCmd)
	levelUpCmd.AddCommand(levelUpBackCmd)
	levelUpCmd.AddCommand(levelUpCommitCmd)
}
