package wiki

// Config holds configuration for the remote wiki API.
type Config struct {
	// APIURL is the MediaWiki api.php endpoint queried for item data.
	APIURL string `mapstructure:"api_url" default:"https://www.poewiki.net/w/api.php"`
	// BaseURL is the article base used to build item page links.
	BaseURL string `mapstructure:"base_url" default:"https://www.poewiki.net/wiki/"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
