package cmd

import (
	"context"
	"fmt"
	"os"

	"poewikibot/core/config"
	"poewikibot/core/logger"
	"poewikibot/core/wiki"
	"poewikibot/feature/catalog"
	"poewikibot/feature/items"

	"github.com/spf13/cobra"
)

// searchCmd represents the item search command
var searchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Search for items on the wiki",
	Long:  `Searches the wiki's item database by name and prints the matches.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		detailed, _ := cmd.Flags().GetBool("detailed")
		runSearch(cmd.Context(), args[0], limit, detailed)
	},
}

func init() {
	searchCmd.Flags().IntP("limit", "l", 10, "Number of results to return")
	searchCmd.Flags().BoolP("detailed", "d", false, "Show detailed information")
	RootCmd.AddCommand(searchCmd)
}

func runSearch(ctx context.Context, name string, limit int, detailed bool) {
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
	svc := items.NewService(client, provider, logg)

	fmt.Printf("Searching for '%s'...\n", name)
	results, err := svc.Search(ctx, name, items.SearchOptions{
		Limit:       limit,
		Detailed:    detailed,
		IncludeMods: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(results) == 0 {
		fmt.Println("No items found.")
		return
	}

	for i, item := range results {
		line := fmt.Sprintf("%d. %s (%s) - %s", i+1, item.Name, item.Rarity, item.Class)
		if item.RequiredLevel != "" {
			line += fmt.Sprintf(" (Level %s)", item.RequiredLevel)
		}
		fmt.Println(line)
		if item.FlavourText != "" {
			fmt.Printf("   \"%s\"\n", item.FlavourText)
		}
	}
}
