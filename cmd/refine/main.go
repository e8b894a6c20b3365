// Command refine is the batch invocation surface for the career refinement
// pipeline: it selects records by name, slug, or all, and fills in the
// generated UI fields.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pathsetu/career-refinement/internal/usecase"
)

var (
	flagName  string
	flagSlug  string
	flagAll   bool
	flagForce bool
)

var rootCmd = &cobra.Command{
	Use:   "refine",
	Short: "Generate ask_yourself, role_description, and impact_sentence for career paths",
	Long: `refine reads career_path records from Postgres and fills in the three
generated UI fields using the configured language model. Records that already
have all three fields are skipped unless --force is set, so a run can always
be safely repeated.

Select one record with --name or --slug, or walk the whole table with --all.`,
	RunE: runRefine,
}

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Rebuild the similarity embeddings for all career paths",
	RunE:  runEmbed,
}

func init() {
	rootCmd.Flags().StringVar(&flagName, "name", "", "single career name to process (e.g. 'Civil Engineer')")
	rootCmd.Flags().StringVar(&flagSlug, "slug", "", "single career slug to process (e.g. 'civil-engineer')")
	rootCmd.Flags().BoolVar(&flagAll, "all", false, "process all careers from DB")
	rootCmd.Flags().BoolVar(&flagForce, "force", false, "regenerate existing content")
	rootCmd.MarkFlagsMutuallyExclusive("name", "slug", "all")

	rootCmd.AddCommand(embedCmd)
}

func runRefine(cmd *cobra.Command, args []string) error {
	if flagName == "" && flagSlug == "" && !flagAll {
		return cmd.Help()
	}

	uc, err := buildUsecase(cmd.Context())
	if err != nil {
		return err
	}

	switch {
	case flagName != "":
		log.Printf("Fetching career by name: %s", flagName)
		return reportSingle(uc.RunSingle(cmd.Context(), usecase.ByName, flagName, flagForce))
	case flagSlug != "":
		log.Printf("Fetching career by slug: %s", flagSlug)
		return reportSingle(uc.RunSingle(cmd.Context(), usecase.BySlug, flagSlug, flagForce))
	default:
		log.Println("Fetching all careers from career_path table...")
		summary, err := uc.RunAll(cmd.Context(), flagForce)
		if err != nil {
			return err
		}
		fmt.Println(summary)
		return nil
	}
}

func runEmbed(cmd *cobra.Command, args []string) error {
	uc, err := buildUsecase(cmd.Context())
	if err != nil {
		return err
	}

	summary, err := uc.RebuildEmbeddings(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("embedded=%d failed=%d\n", summary.Enriched, summary.Failed)
	if summary.HasFailures() {
		return fmt.Errorf("%d record(s) failed to embed", summary.Failed)
	}
	return nil
}

func reportSingle(result usecase.Result, err error) error {
	if err != nil {
		return err
	}
	if result.Err != nil {
		return fmt.Errorf("refinement %s: %w", result.Outcome, result.Err)
	}
	fmt.Println(result.Outcome)
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
