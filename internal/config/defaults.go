package config

// Default value constants.
const (
	DefaultWritePolicy    = "preserve"
	DefaultPackageManager = "npm"
	DefaultLogLevel       = "warn"
)

// Accepted values for enumerated keys.
var (
	validWritePolicies   = []string{"preserve", "overwrite"}
	validPackageManagers = []string{"npm", "pnpm", "yarn"}
	validLogLevels       = []string{"debug", "info", "warn", "error"}
)

// NewDefaultConfig returns a Config with every field at its default value.
func NewDefaultConfig() *Config {
	return Config{}.WithDefaults()
}
