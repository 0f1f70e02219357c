package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-progression/internal/config"
	"github.com/KirkDiggler/rpg-progression/internal/orchestrators/roster"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-progression/internal/redis"
)

var (
	importStrict bool
	auditPlayer  string
)

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "Maintain the character store",
}

var importCharactersCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Create or overwrite characters from a YAML file",
	Long: `Import reads a document with a top-level "characters" list, using the
stored snake_case field names, and writes each character to the configured store.`,
	Args: cobra.ExactArgs(1),
	RunE: importCharacters,
}

var auditCharactersCmd = &cobra.Command{
	Use:   "audit [character-id...]",
	Short: "Report stored characters the progression rules would not produce",
	RunE:  auditCharacters,
}

func init() {
	importCharactersCmd.Flags().BoolVar(&importStrict, "strict", false, "skip characters with audit findings")
	auditCharactersCmd.Flags().StringVar(&auditPlayer, "player", "", "audit every character of this player")

	charactersCmd.AddCommand(importCharactersCmd)
	charactersCmd.AddCommand(auditCharactersCmd)
}

// openRoster opens only the stores the roster needs
func openRoster(ctx context.Context) (*roster.Roster, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	setupLogger(cfg)

	e, err := newEngine()
	if err != nil {
		return nil, nil, err
	}

	var redisClient redis.Client
	if cfg.Store == config.StoreRedis {
		redisClient, err = newRedisClient(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
		}
	}

	repo, closeRepo, err := openCharacterRepo(ctx, cfg, redisClient, clock.New())
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = closeRepo()
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}

	r, err := roster.New(&roster.Config{CharacterRepo: repo, Engine: e})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return r, cleanup, nil
}

func importCharacters(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() { _ = f.Close() }()

	characters, err := roster.ParseCharacters(f)
	if err != nil {
		return err
	}

	r, cleanup, err := openRoster(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	out, err := r.Import(cmd.Context(), &roster.ImportInput{Characters: characters, Strict: importStrict})
	if err != nil {
		return err
	}
	return printJSON(out.Results)
}

func auditCharacters(cmd *cobra.Command, args []string) error {
	r, cleanup, err := openRoster(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	out, err := r.Audit(cmd.Context(), &roster.AuditInput{CharacterIDs: args, PlayerID: auditPlayer})
	if err != nil {
		return err
	}

	if err := printJSON(out.Reports); err != nil {
		return err
	}
	if len(out.Reports) > 0 {
		return fmt.Errorf("%d of %d characters have findings", len(out.Reports), out.Checked)
	}
	fmt.Printf("%d characters checked, no findings\n", out.Checked)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
