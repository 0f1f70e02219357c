package client

import (
	"github.com/spf13/cobra"

	progressionv1alpha1 "github.com/KirkDiggler/rpg-progression/internal/handlers/progression/v1alpha1"
)

var (
	featsLevel int

	level1Type     string
	level1Feat     string
	level1Heritage string
	level1Options  map[string]string
	level1Choices  map[string]string
)

var getCharacterCmd = &cobra.Command{
	Use:   "get-character [character-id]",
	Short: "Get a character with its derived benefits",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(progressionv1alpha1.ProgressionServiceName, "GetCharacter",
			&progressionv1alpha1.GetCharacterRequest{CharacterID: args[0]},
			&progressionv1alpha1.GetCharacterResponse{})
	},
}

var getBenefitsCmd = &cobra.Command{
	Use:   "benefits [character-id]",
	Short: "Get the consolidated benefits of a character's feats and heritage",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(progressionv1alpha1.ProgressionServiceName, "GetDerivedBenefits",
			&progressionv1alpha1.GetDerivedBenefitsRequest{CharacterID: args[0]},
			&progressionv1alpha1.GetDerivedBenefitsResponse{})
	},
}

var listFeatsCmd = &cobra.Command{
	Use:   "available-feats [character-id]",
	Short: "List the feats and heritages a character may select",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(progressionv1alpha1.ProgressionServiceName, "ListAvailableFeats",
			&progressionv1alpha1.ListAvailableFeatsRequest{CharacterID: args[0], Level: featsLevel},
			&progressionv1alpha1.ListAvailableFeatsResponse{})
	},
}

var setLevel1ChoiceCmd = &cobra.Command{
	Use:   "set-level1-choice [character-id]",
	Short: "Pick the level 1 feat or innate heritage",
	Long: `Switch or fill the level 1 pick. Examples:

  set-level1-choice char-123 --type feat --feat Actor
  set-level1-choice char-123 --type innate_heritage --heritage Part-Veela --option "Veela Fire=Flame Hurl"
  set-level1-choice char-123 --type feat`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		req := &progressionv1alpha1.SetLevel1ChoiceRequest{
			CharacterID: args[0],
			ChoiceType:  level1Type,
		}
		if level1Feat != "" {
			req.Feat = &progressionv1alpha1.FeatSelection{Name: level1Feat, Choices: level1Choices}
		}
		if level1Heritage != "" {
			req.Heritage = &progressionv1alpha1.HeritageSelection{
				Name:    level1Heritage,
				Options: level1Options,
				Choices: level1Choices,
			}
		}
		return call(progressionv1alpha1.ProgressionServiceName, "SetLevel1Choice", req,
			&progressionv1alpha1.SetLevel1ChoiceResponse{})
	},
}

func init() {
	listFeatsCmd.Flags().IntVar(&featsLevel, "level", 0, "check prerequisites at this level (default current)")

	setLevel1ChoiceCmd.Flags().StringVar(&level1Type, "type", "", "feat or innate_heritage")
	setLevel1ChoiceCmd.Flags().StringVar(&level1Feat, "feat", "", "feat to take")
	setLevel1ChoiceCmd.Flags().StringVar(&level1Heritage, "heritage", "", "heritage to take")
	setLevel1ChoiceCmd.Flags().StringToStringVar(&level1Options, "option", nil, "heritage feature option, feature=option")
	setLevel1ChoiceCmd.Flags().StringToStringVar(&level1Choices, "choice", nil, "grant pick, key=value")
	_ = setLevel1ChoiceCmd.MarkFlagRequired("type")
}
