package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/maidsweep/pkg/errors"
	"github.com/arthur-debert/maidsweep/pkg/paths"
	"github.com/arthur-debert/maidsweep/pkg/utils"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read as a setting
const EnvPrefix = "MAIDSWEEP_"

// Settings is the merged configuration
type Settings struct {
	Patterns PatternsSettings `koanf:"patterns"`
	Store    StoreSettings    `koanf:"store"`
	Log      LogSettings      `koanf:"log"`

	// Source is the settings file that was loaded, "" when none was
	Source string `koanf:"-"`
}

type PatternsSettings struct {
	Path string `koanf:"path"`
}

type StoreSettings struct {
	URI string `koanf:"uri"`
}

type LogSettings struct {
	Verbosity int `koanf:"verbosity"`
}

// Options controls where settings are read from
type Options struct {
	// File is an explicit settings file. It must exist when set.
	File string

	// Overrides are flat koanf keys ("store.uri") applied last
	Overrides map[string]interface{}

	// Paths resolves the default locations; paths.New() when nil
	Paths paths.Paths
}

// Load merges every layer into Settings
func Load(opts Options) (*Settings, error) {
	p := opts.Paths
	if p == nil {
		p = paths.New()
	}

	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default settings")
	}

	source, err := settingsFile(opts.File, p)
	if err != nil {
		return nil, err
	}
	if source != "" {
		if err := k.Load(file.Provider(source), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", source)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment settings")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode settings")
	}

	s.Source = source
	resolve(&s, p)
	return &s, nil
}

// settingsFile picks the file to load. The default location is optional,
// an explicit one is not.
func settingsFile(explicit string, p paths.Paths) (string, error) {
	if explicit != "" {
		path := utils.ExpandPath(explicit)
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "settings file not found: %s", path)
		}
		return path, nil
	}

	path := p.SettingsFile()
	if _, err := os.Stat(path); err != nil {
		if os.Getenv(paths.EnvSettings) != "" {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "settings file not found: %s", path)
		}
		return "", nil
	}
	return path, nil
}

// envKey maps MAIDSWEEP_STORE_URI to store.uri. Only the first underscore
// separates the section so keys may contain underscores themselves.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func resolve(s *Settings, p paths.Paths) {
	if s.Patterns.Path == "" {
		s.Patterns.Path = p.PatternsFile()
	} else {
		s.Patterns.Path = utils.ExpandPath(s.Patterns.Path)
	}

	if s.Store.URI == "" {
		s.Store.URI = p.DefaultStoreURI()
	}

	if s.Log.Verbosity < 0 {
		s.Log.Verbosity = 0
	}
}
