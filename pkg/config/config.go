package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"
	"time"

	dserrors "github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes every environment override, e.g. DOTSETUP_MANAGERS_ELEVATE.
const EnvPrefix = "DOTSETUP_"

// Config is the fully merged dotsetup configuration
type Config struct {
	Lists      Lists      `koanf:"lists" toml:"lists"`
	Managers   Managers   `koanf:"managers" toml:"managers"`
	Installers Installers `koanf:"installers" toml:"installers"`
	Konsole    Konsole    `koanf:"konsole" toml:"konsole"`
}

// Lists names the package-list variants
type Lists struct {
	Dir           string `koanf:"dir" toml:"dir"`
	Universal     string `koanf:"universal" toml:"universal"`
	Arch          string `koanf:"arch" toml:"arch"`
	Fedora        string `koanf:"fedora" toml:"fedora"`
	Brewfile      string `koanf:"brewfile" toml:"brewfile"`
	CommentMarker string `koanf:"comment_marker" toml:"comment_marker"`
}

// Managers configures package-manager selection
type Managers struct {
	AURHelpers []string `koanf:"aur_helpers" toml:"aur_helpers"`
	Elevate    string   `koanf:"elevate" toml:"elevate"`
}

// Installers configures secondary installer discovery
type Installers struct {
	ScriptName  string   `koanf:"script_name" toml:"script_name"`
	Shell       string   `koanf:"shell" toml:"shell"`
	SkipDirs    []string `koanf:"skip_dirs" toml:"skip_dirs"`
	IncludeRoot bool     `koanf:"include_root" toml:"include_root"`
	Builtin     []string `koanf:"builtin" toml:"builtin"`
}

// Konsole configures the Konsole theme integration
type Konsole struct {
	SourceDir string        `koanf:"source_dir" toml:"source_dir"`
	UnitName  string        `koanf:"unit_name" toml:"unit_name"`
	Debounce  time.Duration `koanf:"debounce" toml:"debounce"`
}

// Sources lists the optional configuration layers. Empty paths are skipped,
// as are files that do not exist.
type Sources struct {
	UserFile  string
	RootFile  string
	Overrides map[string]interface{}
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Default returns the embedded defaults
func Default() *Config {
	cfg, err := Load(Sources{})
	if err != nil {
		// The embedded file is part of the binary; failing here is a build defect.
		panic(err)
	}
	return cfg
}

// DefaultContent returns the embedded defaults file verbatim
func DefaultContent() string {
	return string(defaultConfig)
}

// Load merges all configuration layers and decodes them into a Config
func Load(src Sources) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, dserrors.Wrap(err, dserrors.ErrConfigParse, "failed to load defaults")
	}

	for _, path := range []string{src.UserFile, src.RootFile} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, dserrors.Wrapf(err, dserrors.ErrConfigLoad, "failed to stat config %s", path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, dserrors.Wrapf(err, dserrors.ErrConfigParse, "failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, dserrors.Wrap(err, dserrors.ErrConfigLoad, "failed to load env vars")
	}

	if len(src.Overrides) > 0 {
		if err := k.Load(confmap.Provider(src.Overrides, "."), nil); err != nil {
			return nil, dserrors.Wrap(err, dserrors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, dserrors.Wrap(err, dserrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envKey maps DOTSETUP_MANAGERS_AUR_HELPERS to managers.aur_helpers.
// Sections are single words, so only the first underscore separates levels.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// ParseOverrides turns key=value pairs (as given to --set) into a flat override map
func ParseOverrides(pairs []string) (map[string]interface{}, error) {
	overrides := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, dserrors.Newf(dserrors.ErrInvalidInput, "invalid override %q, expected key=value", pair)
		}
		overrides[key] = value
	}
	return overrides, nil
}

func (c *Config) validate() error {
	switch {
	case c.Lists.CommentMarker == "":
		return dserrors.New(dserrors.ErrConfigParse, "lists.comment_marker cannot be empty")
	case c.Lists.Universal == "" && c.Lists.Arch == "" && c.Lists.Fedora == "" && c.Lists.Brewfile == "":
		return dserrors.New(dserrors.ErrConfigParse, "no package list configured")
	case c.Installers.ScriptName == "":
		return dserrors.New(dserrors.ErrConfigParse, "installers.script_name cannot be empty")
	case c.Installers.Shell == "":
		return dserrors.New(dserrors.ErrConfigParse, "installers.shell cannot be empty")
	case c.Konsole.Debounce < 0:
		return dserrors.New(dserrors.ErrConfigParse, "konsole.debounce cannot be negative")
	}
	return nil
}
