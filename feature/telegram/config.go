package telegram

// Config holds configuration for the Telegram front end.
type Config struct {
	// Token is the bot credential issued by BotFather.
	Token string `mapstructure:"token" default:""`
	// PollTimeoutSeconds is the long-polling timeout for getUpdates.
	PollTimeoutSeconds int `mapstructure:"poll_timeout_seconds" default:"30"`
}
