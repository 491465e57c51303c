// Package am loads and persists gwkit configuration ("am" is the config
// file name: am.toml).
package am

// Config represents the gwkit configuration
type Config struct {
	Parse    ParseConfig    `mapstructure:"parse" toml:"parse" json:"parse" yaml:"parse"`
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database" yaml:"database"`
	Log      LogConfig      `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch" json:"watch" yaml:"watch"`
}

// ParseConfig configures how GW files are read
type ParseConfig struct {
	NoFail   bool   `mapstructure:"no_fail" toml:"no_fail" json:"no_fail" yaml:"no_fail"`    // Skip malformed blocks instead of aborting
	GwPlus   bool   `mapstructure:"gwplus" toml:"gwplus" json:"gwplus" yaml:"gwplus"`        // Accept extended syntax without a gwplus line
	Encoding string `mapstructure:"encoding" toml:"encoding" json:"encoding" yaml:"encoding"` // Encoding assumed before any encoding: line (utf-8, iso-8859-1)
}

// DatabaseConfig configures the SQLite import database
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path" yaml:"path"`
}

// LogConfig configures logger output
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" json:"verbosity" yaml:"verbosity"` // 0 warnings, 1 info, 2+ debug
}

// WatchConfig configures the file watcher
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
