package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"poewikibot/core/config"
	"poewikibot/core/logger"
	"poewikibot/core/wiki"
	"poewikibot/feature/catalog"
	"poewikibot/feature/items"
	"poewikibot/feature/render"
	"poewikibot/feature/telegram"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// botCmd represents the Telegram bot command
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Start the Telegram bot",
	Long:  `Runs the inline-mode Telegram bot against the configured wiki.`,
	Run: func(cmd *cobra.Command, args []string) {
		runBot()
	},
}

func init() {
	RootCmd.AddCommand(botCmd)
}

func runBot() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Telegram.Token == "" {
		fmt.Println("Error: TELEGRAM_BOT_TOKEN is not set in environment or .env file.")
		os.Exit(1)
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	// 3. Build the resolution pipeline
	client := wiki.NewClient(cfg.Wiki, logg)
	provider := catalog.NewProvider(cfg.Catalog.Path, logg)
	svc := items.NewService(client, provider, logg)
	renderer := render.NewRenderer(cfg.Wiki.BaseURL)

	api, err := telegram.NewMessenger(cfg.Telegram.Token)
	if err != nil {
		logg.Fatal("Failed to connect to Telegram", zap.Error(err))
	}
	bot := telegram.NewBot(api, svc, renderer, &cfg.Telegram, logg)

	// 4. Run until interrupted
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		logg.Info("Shutting down bot...")
		cancel()
	}()

	if err := bot.Run(ctx); err != nil {
		logg.Fatal("Bot stopped", zap.Error(err))
	}
}
