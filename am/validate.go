package am

import (
	"strings"

	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/gw/lexer"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Empty encoding means utf-8
	if c.Parse.Encoding != "" {
		if _, err := lexer.DecoderFor(c.Parse.Encoding); err != nil {
			return errors.Wrap(err, "parse.encoding")
		}
	}

	// Database path is optional - empty defaults to DefaultDatabasePath
	if strings.ContainsRune(c.Database.Path, 0) {
		return errors.New("database.path contains a NUL byte")
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	// 0 = use default debounce, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}
