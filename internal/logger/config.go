package logger

import (
	"log/slog"
	"strings"
)

// Config controls the process logger
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig creates a config from explicit values
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// DefaultConfig is used before the app config has been read
func DefaultConfig() Config {
	return Config{
		Level:       LogLevelInfo,
		Format:      LogFormatText,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: EnvironmentDev,
	}
}

// ForEnvironment returns defaults for env: production logs info as JSON,
// dev logs debug as text with source locations, and anything else gets
// DefaultConfig tagged with env.
func ForEnvironment(env string) Config {
	cfg := DefaultConfig()
	cfg.Environment = env

	switch {
	case env == EnvironmentProduction:
		cfg.Format = LogFormatJSON
	case IsDevelopment(env):
		cfg.Level = LogLevelDebug
		cfg.AddSource = true
	}
	return cfg
}

// IsDevelopment reports whether env names a local development setup
func IsDevelopment(env string) bool {
	env = strings.ToLower(env)
	return env == EnvironmentDev || env == EnvironmentDevelopment
}

func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every record
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
