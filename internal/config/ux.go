package config

// UXConfig configures the terminal front end.
type UXConfig struct {
	Theme     string `yaml:"theme"` // auto, light, dark
	FrameRate string `yaml:"frame_rate"`
}
