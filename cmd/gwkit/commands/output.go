package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/gwkit/errors"
)

// writeFormatted encodes v onto w in one of the structured formats.
func writeFormatted(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal JSON")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "failed to marshal YAML")
		}
		_, err = w.Write(data)
		return err

	case "toml":
		data, err := toml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "failed to marshal TOML")
		}
		_, err = w.Write(data)
		return err
	}
	return errors.NewInvalidRequestError("unsupported format: %s", format)
}
