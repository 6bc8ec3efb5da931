package cmd

import (
	"fmt"
	"sort"

	"poewikibot/core/config"
	"poewikibot/core/logger"
	"poewikibot/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the field catalog",
	Long:  `Maintains the mapping of Cargo tables to their known columns that the resolver validates queries against.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// catalogUpdateCmd represents the catalog update command
var catalogUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Scrape the wiki's table definitions and rewrite the mapping file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		scraper := catalog.NewScraper(cfg.Wiki, logg)

		logg.Info("Scraping table definitions (this might take a while)...",
			zap.Int("tables", len(catalog.AllTables())))
		mapping, err := scraper.ScrapeAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("catalog scrape failed: %w", err)
		}

		if err := catalog.WriteMapping(cfg.Catalog.Path, mapping); err != nil {
			return fmt.Errorf("failed to write mapping: %w", err)
		}

		tables := make([]string, 0, len(mapping))
		for table := range mapping {
			tables = append(tables, table)
		}
		sort.Strings(tables)

		fmt.Println("=== Field Catalog Updated ===")
		for _, table := range tables {
			fmt.Printf("%s: %d fields\n", table, len(mapping[table]))
		}
		fmt.Printf("Written to: %s\n", cfg.Catalog.Path)

		return nil
	},
}

func init() {
	RootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogUpdateCmd)
}
