package am

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Default values
const (
	DefaultDatabasePath = "gwkit.db"
	DefaultEncoding     = "utf-8"
	DefaultDebounceMS   = 300
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("parse.no_fail", false)
	v.SetDefault("parse.gwplus", false)
	v.SetDefault("parse.encoding", DefaultEncoding)

	v.SetDefault("database.path", DefaultDatabasePath)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
}

// BindSensitiveEnvVars explicitly binds configuration that is commonly set per shell
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("database.path", "GWKIT_DATABASE_PATH")
	v.BindEnv("parse.encoding", "GWKIT_PARSE_ENCODING")
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return DefaultDatabasePath
	}
	return c.Database.Path
}

// GetDebounce returns the watch debounce period
func (c *Config) GetDebounce() time.Duration {
	if c.Watch.DebounceMS <= 0 {
		return DefaultDebounceMS * time.Millisecond
	}
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Database: %s, Parse: {NoFail: %t, Encoding: %s}, Watch: {DebounceMS: %d}}",
		c.Database.Path, c.Parse.NoFail, c.Parse.Encoding, c.Watch.DebounceMS)
}
