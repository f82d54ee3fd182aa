package pipeline

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/encoderdisk/pkg/errors"
)

// LoadOptions reads a TOML options file on top of base. Keys missing from
// the file keep base's values; unknown keys are an INVALID_CONFIG error so
// typos do not pass silently.
func LoadOptions(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return decodeOptions(string(data), base, path)
}

// ParseOptions decodes TOML text on top of base.
func ParseOptions(text string, base Options) (Options, error) {
	return decodeOptions(text, base, "config")
}

func decodeOptions(text string, base Options, source string) (Options, error) {
	opts := base
	opts.Formats = append([]string(nil), base.Formats...)

	md, err := toml.Decode(text, &opts)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", source)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", source, strings.Join(keys, ", "))
	}
	return opts, nil
}
