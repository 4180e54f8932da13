package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Billing.Currency != "EUR" || cfg.Billing.Locale != "en-US" {
		t.Errorf("defaults = %+v", cfg.Billing)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	want := Config{
		General: GeneralConfig{DBPath: "/tmp/custom.db"},
		Billing: BillingConfig{Currency: "USD", Locale: "de-DE"},
	}
	if err := Save(want); err != nil {
		t.Fatal(err)
	}

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}

func TestLoadFillsEmptyBillingFields(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "timesheet")
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, "config.toml"), []byte("[general]\ndb_path = \"x.db\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Billing.Currency != "EUR" || cfg.Billing.Locale != "en-US" {
		t.Errorf("billing = %+v", cfg.Billing)
	}
	if cfg.General.DBPath != "x.db" {
		t.Errorf("db_path = %q", cfg.General.DBPath)
	}
}
