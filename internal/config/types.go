package config

// Config is the backendgen tool configuration.
type Config struct {
	// WritePolicy selects how the file emitter treats existing files:
	// "preserve" skips them, "overwrite" replaces them.
	WritePolicy string `mapstructure:"write_policy" yaml:"write_policy"`

	// PackageManager is the installer used for init/install: npm, pnpm or yarn.
	PackageManager string `mapstructure:"package_manager" yaml:"package_manager"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	NoColor  bool   `mapstructure:"no_color" yaml:"no_color"`

	// Accessible forces line-based prompts even on a terminal.
	Accessible bool `mapstructure:"accessible" yaml:"accessible"`
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
func (c Config) WithDefaults() *Config {
	if c.WritePolicy == "" {
		c.WritePolicy = DefaultWritePolicy
	}
	if c.PackageManager == "" {
		c.PackageManager = DefaultPackageManager
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return &c
}
