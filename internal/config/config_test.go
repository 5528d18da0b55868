package config

import "testing"

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without BOT_TOKEN")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("TZ", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BotToken != "123:abc" {
		t.Errorf("token = %q", cfg.BotToken)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("data dir = %q, want ./data", cfg.DataDir)
	}
	if cfg.Timezone != "Europe/London" {
		t.Errorf("tz = %q, want Europe/London", cfg.Timezone)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("database url = %q, want empty", cfg.DatabaseURL)
	}
}

func TestLoadPostgresSelection(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/habits")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseURL != "postgres://u:p@localhost/habits" {
		t.Errorf("database url = %q", cfg.DatabaseURL)
	}
}
