// Package config loads cloudnav settings from defaults, a YAML file,
// CLOUDNAV_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes environment overrides. Nested keys use a double
// underscore: CLOUDNAV_LOG__LEVEL sets log.level.
const EnvPrefix = "CLOUDNAV_"

// Backend names.
const (
	BackendLocal  = "local"
	BackendSQLite = "sqlite"
	BackendDrive  = "gdrive"
)

// ErrUnknownBackend is returned by Validate for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown backend")

// Config holds all cloudnav settings.
type Config struct {
	Backend       string        `koanf:"backend"`
	Root          string        `koanf:"root"`  // local backend directory
	DB            string        `koanf:"db"`    // sqlite catalog path
	Start         string        `koanf:"start"` // folder shown at startup
	Timeout       time.Duration `koanf:"timeout"`
	ToastDuration time.Duration `koanf:"toast_duration"`
	Drive         DriveConfig   `koanf:"drive"`
	Log           LogConfig     `koanf:"log"`
	Otel          OtelConfig    `koanf:"otel"`
}

// DriveConfig configures the Google Drive backend.
type DriveConfig struct {
	Credentials string `koanf:"credentials"` // OAuth client secret or service-account key
	Token       string `koanf:"token"`       // cached OAuth token
}

// LogConfig configures the log file.
type LogConfig struct {
	File  string `koanf:"file"`
	Level string `koanf:"level"`
}

// OtelConfig configures span export.
type OtelConfig struct {
	Endpoint string `koanf:"endpoint"`
	Insecure bool   `koanf:"insecure"`
}

// flagKeys maps flag names to config keys where they differ.
var flagKeys = map[string]string{
	"log-file":          "log.file",
	"log-level":         "log.level",
	"drive-credentials": "drive.credentials",
	"drive-token":       "drive.token",
	"otel-endpoint":     "otel.endpoint",
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("backend", BackendLocal, "storage backend: local, sqlite or gdrive")
	fs.String("root", "", "directory served by the local backend")
	fs.String("db", "", "catalog file used by the sqlite backend")
	fs.String("start", "/", "folder to open at startup")
	fs.Duration("timeout", 0, "timeout for a single storage call")
	fs.String("log-file", "", "log file path")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("drive-credentials", "", "Google Drive credentials file")
	fs.String("drive-token", "", "Google Drive OAuth token cache")
	fs.String("otel-endpoint", "", "OTLP/HTTP endpoint for traces (host:port)")
}

// Defaults returns the built-in settings. Paths are resolved against the
// user's state directory.
func Defaults() map[string]any {
	state := StateDir()
	return map[string]any{
		"backend":           BackendLocal,
		"root":              ".",
		"db":                filepath.Join(state, "catalog.db"),
		"start":             "/",
		"timeout":           "30s",
		"toast_duration":    "3s",
		"drive.credentials": filepath.Join(state, "credentials.json"),
		"drive.token":       filepath.Join(state, "token.json"),
		"log.file":          filepath.Join(state, "cloudnav.log"),
		"log.level":         "info",
		"otel.endpoint":     "",
		"otel.insecure":     true,
	}
}

// StateDir returns $XDG_STATE_HOME/cloudnav, falling back to
// ~/.local/state/cloudnav.
func StateDir() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return filepath.Join(d, "cloudnav")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "cloudnav")
	}
	return filepath.Join(home, ".local", "state", "cloudnav")
}

// DefaultFile returns the config file read when none is given explicitly.
func DefaultFile() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "cloudnav", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cloudnav", "config.yaml")
}

// Load builds the configuration. Precedence (highest first): flags that were
// set explicitly, environment, config file, defaults. An explicit cfgFile
// must exist; the default file is optional.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path := cfgFile
	if path == "" {
		path = DefaultFile()
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLocal:
		if c.Root == "" {
			return errors.New("local backend needs a root directory")
		}
	case BackendSQLite:
		if c.DB == "" {
			return errors.New("sqlite backend needs a catalog path")
		}
	case BackendDrive:
		if c.Drive.Credentials == "" {
			return errors.New("gdrive backend needs a credentials file")
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownBackend, c.Backend)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
