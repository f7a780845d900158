package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"quickopen/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfigPath = "QUICKOPEN_CONFIG"
	envSurface    = "QUICKOPEN_SURFACE"
	envEndpoint   = "QUICKOPEN_ENDPOINT"
	envSettleMS   = "QUICKOPEN_SETTLE_MS"
	envLimit      = "QUICKOPEN_REMOTE_LIMIT"
	envFuzzy      = "QUICKOPEN_FUZZY"
	envWidth      = "QUICKOPEN_WIDTH"
	envHeight     = "QUICKOPEN_HEIGHT"
	envShowFooter = "QUICKOPEN_FOOTER"
	envTrace      = "QUICKOPEN_TRACE"
	envLogFile    = "QUICKOPEN_LOG_FILE"
)

// fileConfig mirrors the optional TOML configuration file. Every field is
// a pointer so absent keys fall through to the built-in defaults.
type fileConfig struct {
	Surface     *string `toml:"surface"`
	Endpoint    *string `toml:"endpoint"`
	SettleMS    *int    `toml:"settle_ms"`
	RemoteLimit *int    `toml:"remote_limit"`
	Fuzzy       *bool   `toml:"fuzzy"`
	Width       *int    `toml:"width"`
	Height      *int    `toml:"height"`
	Footer      *bool   `toml:"footer"`
	Trace       *bool   `toml:"trace"`
	LogFile     *string `toml:"log_file"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// flags over environment over config file over defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	file, err := loadFile(configPath(args, env))
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("quickopen", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", "", "path to a TOML configuration file")
	surfacePath := fs.String("surface", envOrDefault(env, envSurface, fileString(file.Surface, "surface.toml")), "path to the surface definition file")
	endpoint := fs.String("endpoint", envOrDefault(env, envEndpoint, fileString(file.Endpoint, "")), "base URL of the remote search service (empty disables remote search)")
	settleMS := fs.Int("settle-ms", envOrInt(env, envSettleMS, fileInt(file.SettleMS, 250)), "settle delay before an index rebuild, in milliseconds")
	limit := fs.Int("remote-limit", envOrInt(env, envLimit, fileInt(file.RemoteLimit, 15)), "maximum results requested per remote search")
	fuzzy := fs.Bool("fuzzy", envOrBool(env, envFuzzy, fileBool(file.Fuzzy, false)), "widen local matching with fuzzy search")
	width := fs.Int("width", envOrInt(env, envWidth, fileInt(file.Width, 0)), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, fileInt(file.Height, 0)), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, fileBool(file.Footer, true)), "show the footer hint row")
	trace := fs.Bool("trace", envOrBool(env, envTrace, fileBool(file.Trace, false)), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, fileString(file.LogFile, "")), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			SurfacePath: *surfacePath,
			Endpoint:    *endpoint,
			Settle:      time.Duration(*settleMS) * time.Millisecond,
			RemoteLimit: *limit,
			Fuzzy:       *fuzzy,
			Width:       *width,
			Height:      *height,
			ShowFooter:  *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"surface":     *surfacePath,
			"endpoint":    *endpoint,
			"settleMS":    strconv.Itoa(*settleMS),
			"remoteLimit": strconv.Itoa(*limit),
			"fuzzy":       strconv.FormatBool(*fuzzy),
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// configPath pre-scans the arguments for -config so the file can be read
// before the flag set (whose defaults depend on it) is built.
func configPath(args []string, env map[string]string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if name == "config" {
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		}
		if strings.HasPrefix(name, "config=") {
			return strings.TrimPrefix(name, "config=")
		}
	}
	return env[envConfigPath]
}

func loadFile(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func fileString(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}

func fileInt(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

func fileBool(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.SurfacePath == "" {
		return fmt.Errorf("surface path must not be empty")
	}
	if cfg.App.Settle < 0 {
		return fmt.Errorf("settle delay must be >= 0 (got %s)", cfg.App.Settle)
	}
	if cfg.App.RemoteLimit < 0 {
		return fmt.Errorf("remote limit must be >= 0 (got %d)", cfg.App.RemoteLimit)
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	return nil
}
