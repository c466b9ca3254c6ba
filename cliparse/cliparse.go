package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          int    `env:"PORT" envDefault:"3318"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DatabaseType  string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	AdminKeySalt  string `env:"ADMIN_KEY_SALT"`
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	ElectionName  string `env:"ELECTION_NAME" envDefault:"New Election"`
}

// ParseFlags loads .env, reads the environment, then applies CLI overrides
func ParseFlags(args []string) (Config, error) {
	// The -env flag has to be known before the environment is read
	envFile := ".env"
	for i, a := range args {
		switch {
		case (a == "-env" || a == "--env") && i+1 < len(args):
			envFile = args[i+1]
		case strings.HasPrefix(a, "-env="), strings.HasPrefix(a, "--env="):
			envFile = a[strings.Index(a, "=")+1:]
		}
	}

	// A missing .env is fine; real environment variables win over it
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	flags := flag.NewFlagSet("university-club-election", flag.ContinueOnError)

	// Env values are the flag defaults, so CLI flags take precedence
	flags.String("env", envFile, "Path to .env file")
	flags.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	flags.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	flags.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")
	flags.StringVar(&cfg.ElectionName, "name", cfg.ElectionName, "Election name for a fresh database")

	// Secrets (prefer env variables, but allow CLI for dev)
	flags.StringVar(&cfg.AdminKeySalt, "admin-salt", cfg.AdminKeySalt, "Admin key salt (prefer env)")
	flags.StringVar(&cfg.AdminUsername, "admin-user", cfg.AdminUsername, "Initial admin username")
	flags.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "Initial admin password (prefer env)")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, errors.New("invalid port")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return Config{}, errors.New("admin username and password cannot be empty")
	}

	return cfg, nil
}
