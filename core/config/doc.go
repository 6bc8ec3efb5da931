// Package config provides configuration management for the wiki bot.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Wiki: remote wiki API endpoint, article base URL and request timeout
//   - Telegram: bot token and long-polling timeout
//   - Catalog: path of the scraped field-catalog mapping file
//   - Log: logging level and format
//
// Environment variables map to nested keys with an underscore replacer,
// e.g. WIKI_API_URL -> wiki.api_url and TELEGRAM_TOKEN -> telegram.token.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Wiki.APIURL)
package config
