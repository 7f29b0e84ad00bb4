package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/dhcgn/msg-ledger/identity"
)

const envPrefix = "LEDGER"

// Backend names accepted by --backend.
const (
	BackendJSON   = "json"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Config captures all command-line options shared by the ledger commands.
type Config struct {
	DataDir  string
	Backend  string
	As       string
	LogLevel string
	LogDir   string
}

// env mirrors the flags that may also come from LEDGER_* variables or a .env file.
type env struct {
	DataDir  string `envconfig:"DATA_DIR"`
	Backend  string `envconfig:"BACKEND"`
	As       string `envconfig:"AS"`
	LogLevel string `envconfig:"LOG_LEVEL"`
	LogDir   string `envconfig:"LOG_DIR"`
}

// RegisterFlags attaches the shared flags to the root command.
func RegisterFlags(cmd *cobra.Command) error {
	defaultDataDir, err := defaultDataDir()
	if err != nil {
		return err
	}

	flags := cmd.PersistentFlags()
	flags.String("data-dir", defaultDataDir, "Directory holding the message collections (env LEDGER_DATA_DIR)")
	flags.String("backend", BackendJSON, "Storage backend: json, badger, sqlite (env LEDGER_BACKEND)")
	flags.String("as", "", "Phone number of the acting user, +27 followed by 9 digits (env LEDGER_AS)")
	flags.String("log-level", "warn", "Logging level: debug, info, warn, error (env LEDGER_LOG_LEVEL)")
	flags.String("log-dir", "", "Also write logs to a timestamped file in this directory (env LEDGER_LOG_DIR)")

	return nil
}

// LoadConfig converts the parsed Cobra flags into a Config struct with validation.
// Flags set on the command line win over the environment.
func LoadConfig(cmd *cobra.Command) (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	var fromEnv env
	if err := envconfig.Process(envPrefix, &fromEnv); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	flags := cmd.Flags()
	pick := func(name, envValue string) (string, error) {
		value, err := flags.GetString(name)
		if err != nil {
			return "", err
		}
		if !flags.Changed(name) && envValue != "" {
			return envValue, nil
		}
		return value, nil
	}

	dataDir, err := pick("data-dir", fromEnv.DataDir)
	if err != nil {
		return Config{}, err
	}
	backend, err := pick("backend", fromEnv.Backend)
	if err != nil {
		return Config{}, err
	}
	as, err := pick("as", fromEnv.As)
	if err != nil {
		return Config{}, err
	}
	logLevel, err := pick("log-level", fromEnv.LogLevel)
	if err != nil {
		return Config{}, err
	}
	logDir, err := pick("log-dir", fromEnv.LogDir)
	if err != nil {
		return Config{}, err
	}

	if dataDir == "" {
		dataDir, err = defaultDataDir()
		if err != nil {
			return Config{}, err
		}
	}

	logLevel = strings.ToLower(logLevel)
	if logLevel == "warning" {
		logLevel = "warn"
	}

	cfg := Config{
		DataDir:  filepath.Clean(dataDir),
		Backend:  strings.ToLower(strings.TrimSpace(backend)),
		As:       strings.TrimSpace(as),
		LogLevel: logLevel,
		LogDir:   logDir,
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// RequireIdentity fails unless --as holds a valid phone number.
func (c Config) RequireIdentity() error {
	if c.As == "" {
		return fmt.Errorf("--as is required for this command")
	}
	if err := identity.ValidatePhone(c.As); err != nil {
		return fmt.Errorf("--as: %w", err)
	}
	return nil
}

func validateConfig(cfg Config) error {
	switch cfg.Backend {
	case BackendJSON, BackendBadger, BackendSQLite:
	default:
		return fmt.Errorf("invalid --backend: %s", cfg.Backend)
	}

	if cfg.As != "" {
		if err := identity.ValidatePhone(cfg.As); err != nil {
			return fmt.Errorf("--as: %w", err)
		}
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid --log-level: %s", cfg.LogLevel)
	}

	return nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".msg-ledger"), nil
}
