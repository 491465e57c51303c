package am

import (
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/teranos/gwkit/errors"
)

// CheckResult is the outcome of a strict config file check
type CheckResult struct {
	Config  Config
	Unknown []string // keys present in the file that gwkit does not read
}

// CheckFile strictly decodes a config file, reporting keys that Viper would
// silently ignore, then validates the decoded values.
func CheckFile(path string) (*CheckResult, error) {
	var res CheckResult
	md, err := toml.DecodeFile(path, &res.Config)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	for _, k := range md.Undecoded() {
		res.Unknown = append(res.Unknown, k.String())
	}
	sort.Strings(res.Unknown)

	if err := res.Config.Validate(); err != nil {
		return &res, errors.Wrapf(err, "validate %s", path)
	}
	return &res, nil
}
