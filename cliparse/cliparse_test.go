// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")

	cfg, err := ParseFlags([]string{"-env", filepath.Join(t.TempDir(), "missing.env")})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ELECTION_NAME", "")

	cfg, err := ParseFlags([]string{"-env", filepath.Join(t.TempDir(), "missing.env")})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.AdminUsername != "admin" || cfg.AdminPassword != "admin123" {
		t.Errorf("unexpected default admin credentials %q/%q", cfg.AdminUsername, cfg.AdminPassword)
	}
	if cfg.ElectionName != "New Election" {
		t.Errorf("expected default election name, got %q", cfg.ElectionName)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{
		"-env", filepath.Join(t.TempDir(), "missing.env"),
		"-p", "8080", "-d", "file:other.db", "-admin-salt", "s1", "-name", "Club Board 2025",
	})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:other.db" {
		t.Errorf("CLI should override env: got %s", cfg.DatabaseURL)
	}
	if cfg.AdminKeySalt != "s1" {
		t.Errorf("CLI should override env: got %s", cfg.AdminKeySalt)
	}
	if cfg.ElectionName != "Club Board 2025" {
		t.Errorf("expected election name from flag, got %q", cfg.ElectionName)
	}
}

func TestParseFlags_DotEnvFile(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("ELECTION_NAME")
	t.Cleanup(func() { os.Unsetenv("ELECTION_NAME") })

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("ELECTION_NAME=Spring Council Vote\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-env=" + path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ElectionName != "Spring Council Vote" {
		t.Errorf("expected election name from .env, got %q", cfg.ElectionName)
	}
}

func TestParseFlags_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{
			name: "missing database url",
			env:  map[string]string{"DATABASE_URL": "", "ADMIN_KEY_SALT": "s"},
		},
		{
			name: "missing salt",
			env:  map[string]string{"DATABASE_URL": "file:x.db", "ADMIN_KEY_SALT": ""},
		},
		{
			name: "bad database type",
			env:  map[string]string{"DATABASE_URL": "file:x.db", "ADMIN_KEY_SALT": "s"},
			args: []string{"-t", "mysql"},
		},
		{
			name: "bad port",
			env:  map[string]string{"DATABASE_URL": "file:x.db", "ADMIN_KEY_SALT": "s"},
			args: []string{"-p", "70000"},
		},
		{
			name: "non-numeric port env",
			env:  map[string]string{"DATABASE_URL": "file:x.db", "ADMIN_KEY_SALT": "s", "PORT": "abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", "")
			t.Setenv("DATABASE_TYPE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			args := append([]string{"-env", filepath.Join(t.TempDir(), "missing.env")}, tt.args...)
			if _, err := ParseFlags(args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
