package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"trivia-quiz-service/internal/config"
	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/infra/bank"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// NewSeedCmd loads the question bank into Postgres, one row per category.
// Without --bank it seeds the embedded bank.
func NewSeedCmd(configPath *string) *cobra.Command {
	var bankPath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the question bank into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, bankPath)
		},
	}
	cmd.Flags().StringVar(&bankPath, "bank", "", "path to a YAML question bank (default: embedded bank)")
	return cmd
}

func runSeed(ctx context.Context, configPath, bankPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	var loader interface {
		LoadCatalog(ctx context.Context) (domain.Catalog, error)
	} = bank.EmbeddedLoader{}
	if bankPath != "" {
		loader = bank.NewFileLoader(bankPath)
	}
	catalog, err := loader.LoadCatalog(ctx)
	if err != nil {
		return err
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	for category, questions := range catalog.Grouped() {
		data, err := json.Marshal(questions)
		if err != nil {
			return fmt.Errorf("marshal questions for %q: %w", category, err)
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO question_bank (category, questions) VALUES (?, ?::jsonb)
			 ON CONFLICT (category) DO UPDATE SET questions = EXCLUDED.questions`,
			category, string(data)); err != nil {
			return fmt.Errorf("seed category %q: %w", category, err)
		}
	}
	log.Printf("seeded %d categories (%d questions)", len(catalog.Grouped()), catalog.Len())
	return nil
}
