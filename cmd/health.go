package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"poewikibot/core/config"
	"poewikibot/core/logger"
	"poewikibot/core/wiki"
	"poewikibot/feature/catalog"
	"poewikibot/feature/health"

	"github.com/spf13/cobra"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the bot's external dependencies",
	Long: `Probes the remote wiki API and inspects the field catalog, reporting the
state of each dependency. Exits non-zero when the wiki probe fails.`,
	Run: func(cmd *cobra.Command, args []string) {
		runHealthChecks(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(healthCmd)
}

func runHealthChecks(ctx context.Context) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logg.Sync()

	client := wiki.NewClient(cfg.Wiki, logg)
	provider := catalog.NewProvider(cfg.Catalog.Path, logg)
	svc := health.NewService(client, provider, logg)

	wikiReport := svc.CheckWiki(ctx)
	catalogReport := svc.CheckCatalog()

	fmt.Println("=== Dependency Health ===")
	if wikiReport.Status == health.StatusOK {
		fmt.Printf("Wiki API: %s (%dms)\n", wikiReport.Status, wikiReport.LatencyMS)
	} else {
		fmt.Printf("Wiki API: %s (%s)\n", wikiReport.Status, wikiReport.Error)
	}

	fmt.Printf("Catalog: %s (%d tables", catalogReport.Status, catalogReport.Tables)
	if catalogReport.FailOpen {
		fmt.Print(", fail-open")
	}
	fmt.Println(")")
	if len(catalogReport.MissingTables) > 0 {
		fmt.Printf("Missing Tables: %s\n", strings.Join(catalogReport.MissingTables, ", "))
	}

	if wikiReport.Status != health.StatusOK {
		os.Exit(1)
	}
}
