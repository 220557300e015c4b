package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/arthur-debert/liscaf/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration
const EnvPrefix = "LISCAF_"

// LoadOptions selects the sources Load reads
type LoadOptions struct {
	// UserFile is the user configuration file. A missing file is not an
	// error.
	UserFile string

	// Overrides are applied last, keyed by dotted path ("git.init")
	Overrides map[string]interface{}

	// SkipEnv leaves LISCAF_* variables out
	SkipEnv bool
}

// Load builds the configuration from defaults, the user file, the
// environment and overrides, in that order.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file if it exists
	if opts.UserFile != "" {
		if _, err := os.Stat(opts.UserFile); err == nil {
			if err := k.Load(file.Provider(opts.UserFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", opts.UserFile).
					WithDetail("path", opts.UserFile)
			}
			logger.Debug().Str("path", opts.UserFile).Msg("User config loaded")
		}
	}

	// 3. Environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("base_name", cfg.Template.BaseName).
		Strs("ignore", cfg.Walk.Ignore).
		Int("binary_window", cfg.Walk.BinaryWindow).
		Bool("git_init", cfg.Git.Init).
		Msg("Configuration loaded")

	return &cfg, nil
}

// Default returns the embedded defaults only. The user file and the
// environment are never read, so the result does not depend on the host.
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipEnv: true})
	if err != nil {
		// The embedded file is part of the binary; failing here is a bug.
		panic(err)
	}
	return cfg
}

// envKey maps LISCAF_TEMPLATE_BASE_NAME to template.base_name. Sections
// are single words, so only the first underscore separates levels.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}
