package config

// Config holds the application configuration.
type Config struct {
	LibraryPath string  `yaml:"libraryPath" validate:"required"`
	WatchConfig bool    `yaml:"watch_config"`
	Discogs     Discogs `yaml:"discogs"`
	Logger      Logger  `yaml:"logger"`
	Server      Server  `yaml:"server"`
	Metrics     Metrics `yaml:"metrics"`
}

// Discogs holds the configuration for the Discogs catalog client and resolvers.
// The token is checked when the resolvers are built, not here.
type Discogs struct {
	Token             string `yaml:"token"`
	ReplaceArtistName bool   `yaml:"replace_artist_name"`
	APIURL            string `yaml:"api_url" validate:"required,url"`
	SiteURL           string `yaml:"site_url" validate:"required,url"`
	UserAgent         string `yaml:"user_agent" validate:"required"`
	RequestsPerMinute int    `yaml:"requests_per_minute" validate:"gte=1,lte=240"`
	TimeoutSeconds    int    `yaml:"timeout_seconds" validate:"gte=0"`
	// ImageHosts restricts the image proxy to these hosts. Empty allows any host.
	ImageHosts []string `yaml:"image_hosts" validate:"dive,hostname"`
}

// Server hold the configuration for the Fiber server Config
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port" validate:"required"`
	// RequestTimeoutSeconds bounds a resolution request. Zero disables the deadline.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" validate:"gte=0"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" validate:"omitempty,oneof=json text logfmt"`
}

// Metrics holds the configuration for the Prometheus endpoint
type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"omitempty,startswith=/"`
}
