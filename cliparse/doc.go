// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Sources

Values are resolved in this order, later sources winning:

 1. .env file (path from -env, default ./.env; a missing file is ignored)
 2. Environment variables, parsed with caarlos0/env struct tags
 3. CLI flags

Variables already present in the environment are never overwritten by
the .env file.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite path/DSN or PostgreSQL connection string (required)
  - DatabaseType: sqlite (default) or postgres
  - AdminKeySalt: Secret for admin key HMAC (required)
  - AdminUsername, AdminPassword: seed credentials for a fresh database
    (default: admin / admin123)
  - ElectionName: name for a fresh database (default: New Election)

# CLI Flags

	-env             Path to .env file
	-p               Server port
	-d               Database URL
	-t               Database type
	-name            Election name
	-admin-salt      Admin key salt
	-admin-user      Admin username
	-admin-password  Admin password

# Environment Variables

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	ELECTION_NAME   → -name
	ADMIN_KEY_SALT  → -admin-salt
	ADMIN_USERNAME  → -admin-user
	ADMIN_PASSWORD  → -admin-password

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - ADMIN_KEY_SALT is missing
  - the database type is not sqlite or postgres
  - the port is outside 1-65535
*/
package cliparse
