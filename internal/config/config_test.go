package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Timezone != "Africa/Accra" {
		t.Fatalf("timezone = %q", cfg.App.Timezone)
	}
	if cfg.Auth.DefaultResetPassword != "password" {
		t.Fatalf("default reset password = %q", cfg.Auth.DefaultResetPassword)
	}
	if cfg.Auth.AdminUsername != "admin" || cfg.Auth.AdminPassword != "admin123" {
		t.Fatalf("unexpected bootstrap admin %q/%q", cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("addr = %q", cfg.Addr())
	}
}

func TestLoadLegacyAndPrefixedEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_URL", "postgres://legacy")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BARBER_DB_DRIVER", "sqlite")
	t.Setenv("BARBER_HTTP_CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB.DSN != "postgres://legacy" {
		t.Fatalf("dsn = %q", cfg.DB.DSN)
	}
	if cfg.HTTP.Port != "9090" {
		t.Fatalf("port = %q", cfg.HTTP.Port)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Fatalf("driver = %q", cfg.DB.Driver)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("cors origins = %#v", cfg.HTTP.CORSOrigins)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "app:\n  currency: USD\ndb:\n  driver: mysql\n  dsn: user:pw@tcp(localhost:3306)/shop\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Currency != "USD" || cfg.DB.Driver != "mysql" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("BARBER_DB_DRIVER", "oracle")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
