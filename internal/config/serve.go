package config

// ServeConfig configures the local static file server.
type ServeConfig struct {
	Addr string `yaml:"addr"`

	// Dir overrides the served directory; empty means build.web_out_dir.
	Dir string `yaml:"dir"`

	Metrics  bool `yaml:"metrics"`
	Compress bool `yaml:"compress"`

	CORS CORSConfig `yaml:"cors"`

	ShutdownTimeout string `yaml:"shutdown_timeout"`
	WatchDebounce   string `yaml:"watch_debounce"`
}

// CORSConfig enables cross-origin requests to the served files.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Root returns the directory the server exposes.
func (c *Config) Root() string {
	if c.Serve.Dir != "" {
		return c.Serve.Dir
	}
	return c.Build.WebOutDir
}
