package config

// BuildConfig configures the native and web build targets.
type BuildConfig struct {
	// GoBinary is the go command used for builds.
	GoBinary string `yaml:"go_binary"`

	// NativePackage and WebPackage are the import paths compiled per target.
	NativePackage string `yaml:"native_package"`
	WebPackage    string `yaml:"web_package"`

	// NativeOutDir receives the host executable; WebOutDir receives
	// main.wasm, wasm_exec.js and index.html. They must not overlap.
	NativeOutDir string `yaml:"native_out_dir"`
	WebOutDir    string `yaml:"web_out_dir"`

	// EnvVars are additional environment variables for builds.
	// Key examples: CGO_ENABLED, GOFLAGS, GOPROXY
	EnvVars map[string]string `yaml:"env_vars"`

	// GoFlags are additional flags for go build.
	GoFlags []string `yaml:"go_flags"`

	// AllowedEnvVars are copied from the calling environment when set.
	AllowedEnvVars []string `yaml:"allowed_env_vars"`

	// Title is the <title> of the generated index.html.
	Title string `yaml:"title"`

	Timeout string `yaml:"timeout"`
}

// DefaultBuildConfig returns sensible defaults.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		GoBinary:       "go",
		NativePackage:  "./cmd/life",
		WebPackage:     "./cmd/lifeweb",
		NativeOutDir:   "bin",
		WebOutDir:      "web",
		EnvVars:        make(map[string]string),
		GoFlags:        []string{},
		AllowedEnvVars: []string{"GOPROXY", "GOFLAGS", "GOPRIVATE"},
		Title:          "Conway's Game of Life",
		Timeout:        "5m",
	}
}
