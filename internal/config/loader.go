package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/backendgen/backendgen/internal/defs"
)

// Environment variable prefix for backendgen configuration.
const envPrefix = "BACKENDGEN"

// ConfigPathEnv names the variable that points at an explicit config file.
const ConfigPathEnv = envPrefix + "_CONFIG"

// configKeys lists every key that may come from the file or environment.
var configKeys = []string{"write_policy", "package_manager", "log_level", "no_color", "accessible"}

// Loader handles loading and merging configuration from file and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about, so bind each one.
	for _, key := range configKeys {
		_ = v.BindEnv(key, envPrefix+"_"+strings.ToUpper(key))
	}

	v.SetDefault("write_policy", DefaultWritePolicy)
	v.SetDefault("package_manager", DefaultPackageManager)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("no_color", false)
	v.SetDefault("accessible", false)

	return &Loader{v: v}
}

// Load reads configuration from configFile. An empty configFile resolves to
// $BACKENDGEN_CONFIG, then to the per-user default path. A missing file is
// not an error. Environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		configFile = DefaultConfigFile()
	}

	if configFile != "" {
		l.v.SetConfigFile(configFile)
		l.v.SetConfigType("yaml")

		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			switch {
			case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
				// No file: defaults + env.
			case errors.As(err, new(viper.ConfigParseError)):
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidYAML, configFile, err)
			default:
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.WritePolicy = strings.ToLower(strings.TrimSpace(cfg.WritePolicy))
	cfg.PackageManager = strings.ToLower(strings.TrimSpace(cfg.PackageManager))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	out := cfg.WithDefaults()
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConfigFileUsed returns the file viper read, or "" if none was read.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// DefaultConfigFile returns $BACKENDGEN_CONFIG if set, otherwise
// <user config dir>/backendgen/config.yaml. It returns "" when neither can
// be determined.
func DefaultConfigFile() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, defs.AppDirName, defs.ConfigYAML)
}
