package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tasks")
	t.Setenv("SESSION_SECRET", "s3cret")

	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q; want 8080", c.HTTPPort)
	}
	if c.DatabaseDriver != DriverPostgres {
		t.Errorf("DatabaseDriver = %q; want %q", c.DatabaseDriver, DriverPostgres)
	}
	if c.SessionBackend != SessionBackendRedis {
		t.Errorf("SessionBackend = %q; want %q", c.SessionBackend, SessionBackendRedis)
	}
	if c.SessionMaxAge() != 24*time.Hour {
		t.Errorf("SessionMaxAge() = %v; want 24h", c.SessionMaxAge())
	}
}

func TestLoad_EnvFileAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "DATABASE_DRIVER=sqlite3\nDATABASE_URL=file.db\nSESSION_SECRET=fromfile\nHTTP_PORT=9000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("HTTP_PORT", "9100")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.DatabaseDriver != DriverSQLite {
		t.Errorf("DatabaseDriver = %q; want %q", c.DatabaseDriver, DriverSQLite)
	}
	if c.SessionSecret != "fromfile" {
		t.Errorf("SessionSecret = %q; want fromfile", c.SessionSecret)
	}
	if c.HTTPPort != "9100" {
		t.Errorf("HTTPPort = %q; want 9100 (env wins)", c.HTTPPort)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DatabaseDriver: DriverSQLite,
			DatabaseURL:    "x.db",
			SessionBackend: SessionBackendDatabase,
			SessionSecret:  "k",
			SessionTTL:     60,
			DBPoolSize:     1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "mysql" }, true},
		{"missing url", func(c *Config) { c.DatabaseURL = "" }, true},
		{"unknown backend", func(c *Config) { c.SessionBackend = "memcached" }, true},
		{"missing secret", func(c *Config) { c.SessionSecret = "" }, true},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, true},
		{"zero pool", func(c *Config) { c.DBPoolSize = 0 }, true},
		{"negative pool", func(c *Config) { c.DBPoolSize = -3 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			before := *c
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
			if *c != before {
				t.Errorf("Validate() modified config: %+v -> %+v", before, *c)
			}
		})
	}
}
