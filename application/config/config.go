// Package config loads the shim's configuration from defaults, an optional
// YAML file and XRIZER_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/xrizer/xrizer-go/application/schema"
	xrerrors "github.com/xrizer/xrizer-go/domain/errors"
	"github.com/xrizer/xrizer-go/domain/ports"
	"github.com/xrizer/xrizer-go/infrastructure/parser"
	"github.com/xrizer/xrizer-go/log"
)

const (
	// EnvPrefix prefixes every environment override, e.g. XRIZER_LOG_LEVEL.
	EnvPrefix = "XRIZER"
	// EnvConfigFile names a YAML file to load when WithFile is not given.
	EnvConfigFile = "XRIZER_CONFIG"
)

// Config is the shim configuration.
type Config struct {
	LogLevel           string   `json:"log_level" yaml:"log_level" mapstructure:"log_level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	LogFile            string   `json:"log_file" yaml:"log_file" mapstructure:"log_file" validate:"required"`
	LogStdout          bool     `json:"log_stdout" yaml:"log_stdout" mapstructure:"log_stdout"`
	LogMaxSizeMB       int      `json:"log_max_size_mb" yaml:"log_max_size_mb" mapstructure:"log_max_size_mb" validate:"gte=0"`
	LogMaxBackups      int      `json:"log_max_backups" yaml:"log_max_backups" mapstructure:"log_max_backups" validate:"gte=0"`
	RuntimeLibrary     string   `json:"runtime_library,omitempty" yaml:"runtime_library,omitempty" mapstructure:"runtime_library"`
	ApplicationName    string   `json:"application_name" yaml:"application_name" mapstructure:"application_name" validate:"required,max=127"`
	DisabledExtensions []string `json:"disabled_extensions,omitempty" yaml:"disabled_extensions,omitempty" mapstructure:"disabled_extensions" validate:"dive,required"`
}

// DefaultConfig holds the values used when nothing overrides them.
var DefaultConfig = Config{
	LogLevel:        "info",
	LogFile:         log.DefaultFile,
	LogStdout:       true,
	LogMaxSizeMB:    10,
	LogMaxBackups:   1,
	ApplicationName: "XRizer",
}

// validate is a package-level singleton; validators cache struct metadata.
var validate = validator.New()

type loadOptions struct {
	file   string
	parser ports.ConfigParser
}

// Option configures Load.
type Option func(*loadOptions)

// WithFile loads path instead of the file named by XRIZER_CONFIG.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.file = path
	}
}

// WithParser sets the parser for the configuration file.
func WithParser(p ports.ConfigParser) Option {
	return func(o *loadOptions) {
		o.parser = p
	}
}

// Load builds the configuration and validates it.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{
		file:   os.Getenv(EnvConfigFile),
		parser: parser.NewYamlConfigParser(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.NewWithOptions(
		viper.KeyDelimiter("."),
		viper.EnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_")),
	)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for key, value := range defaults() {
		_ = v.BindEnv(key)
		v.SetDefault(key, value)
	}

	if o.file != "" {
		data, err := os.ReadFile(o.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
		tree, err := o.parser.Parse(data)
		if err != nil {
			return nil, &xrerrors.ConfigError{Err: err}
		}
		if err := v.MergeConfigMap(tree); err != nil {
			return nil, fmt.Errorf("failed to merge configuration: %w", err)
		}
	}

	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, &xrerrors.ConfigError{Err: err}
	}
	cfg.DisabledExtensions = trimEmpty(cfg.DisabledExtensions)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() map[string]any {
	return map[string]any{
		"log_level":           DefaultConfig.LogLevel,
		"log_file":            DefaultConfig.LogFile,
		"log_stdout":          DefaultConfig.LogStdout,
		"log_max_size_mb":     DefaultConfig.LogMaxSizeMB,
		"log_max_backups":     DefaultConfig.LogMaxBackups,
		"runtime_library":     DefaultConfig.RuntimeLibrary,
		"application_name":    DefaultConfig.ApplicationName,
		"disabled_extensions": []string{},
	}
}

func trimEmpty(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Validate checks the configuration against its validate tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &xrerrors.ConfigError{Err: err, Field: fieldErrs[0].Field()}
		}
		return &xrerrors.ConfigError{Err: err}
	}
	return nil
}

// SlogLevel returns LogLevel as a slog level.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// LogSink returns where log output should go.
func (c *Config) LogSink() log.Sink {
	return log.Sink{
		File:       c.LogFile,
		Stdout:     c.LogStdout,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
	}
}

// Schema returns the JSON schema of the configuration file.
func Schema() ([]byte, error) {
	return schema.GenerateSchema(&Config{}, schema.WithFieldNameTag("yaml"), schema.WithTitle("XRizer configuration"))
}
