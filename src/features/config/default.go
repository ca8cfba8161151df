package config

// DefaultUserAgent identifies this application to Discogs and to image hosts.
const DefaultUserAgent = "Discogsmeta/1.0 +https://github.com/contre95/discogsmeta"

var defaultConfig = Config{
	LibraryPath: "./music",
	WatchConfig: false,
	Discogs: Discogs{
		Token:             "", // Can be obtained at https://www.discogs.com/settings/developers
		ReplaceArtistName: false,
		APIURL:            "https://api.discogs.com",
		SiteURL:           "https://www.discogs.com",
		UserAgent:         DefaultUserAgent,
		RequestsPerMinute: 60,
		TimeoutSeconds:    30,
		ImageHosts:        []string{"i.discogs.com", "img.discogs.com"},
	},
	Logger: Logger{
		Enabled: true,
		Level:   "info",
		Format:  "text",
	},
	Server: Server{
		PrintRoutes:           false,
		Port:                  3535,
		RequestTimeoutSeconds: 60,
	},
	Metrics: Metrics{
		Enabled: true,
		Path:    "/metrics",
	},
}

// createDefaultConfig returns a copy of the default configuration
func createDefaultConfig() *Config {
	cfg := defaultConfig
	return &cfg
}
