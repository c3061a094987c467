package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("默认值", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.App.Port != 7021 {
			t.Errorf("App.Port = %d, want 7021", cfg.App.Port)
		}
		if cfg.Generator.MaxConsecutiveDays != 5 {
			t.Errorf("Generator.MaxConsecutiveDays = %d, want 5", cfg.Generator.MaxConsecutiveDays)
		}
		if cfg.Generator.MinRestHours != 10 {
			t.Errorf("Generator.MinRestHours = %d, want 10", cfg.Generator.MinRestHours)
		}
		if cfg.API.Timeout != 30*time.Second {
			t.Errorf("API.Timeout = %v, want 30s", cfg.API.Timeout)
		}
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		t.Setenv("GENERATOR_MAX_CONSECUTIVE_DAYS", "3")
		t.Setenv("GENERATOR_MIN_REST_HOURS", "12")
		t.Setenv("API_TIMEOUT", "45s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Generator.MaxConsecutiveDays != 3 {
			t.Errorf("Generator.MaxConsecutiveDays = %d, want 3", cfg.Generator.MaxConsecutiveDays)
		}
		if cfg.Generator.MinRestHours != 12 {
			t.Errorf("Generator.MinRestHours = %d, want 12", cfg.Generator.MinRestHours)
		}
		if cfg.API.Timeout != 45*time.Second {
			t.Errorf("API.Timeout = %v, want 45s", cfg.API.Timeout)
		}
	})

	t.Run("数据库DSN", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("DB_NAME", "shiftgen")
		t.Setenv("DB_USER", "shiftgen")
		t.Setenv("DB_PASSWORD", "shiftgen123")
		t.Setenv("DB_SSL_MODE", "disable")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		dsn := cfg.Database.DSN()
		want := "host=localhost port=5432 user=shiftgen password=shiftgen123 dbname=shiftgen sslmode=disable"
		if dsn != want {
			t.Errorf("DSN() = %q, want %q", dsn, want)
		}
	})
}
