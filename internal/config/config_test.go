package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Identity.OwnerID == "" {
		t.Error("default owner id should be generated")
	}
	if cfg.Identity.DisplayName == "" {
		t.Error("default display name should be set")
	}
	if cfg.Storage.DBPath == "" {
		t.Error("default db path should be set")
	}
	if cfg.UI.Theme != "frappe" {
		t.Errorf("default theme = %q, want frappe", cfg.UI.Theme)
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Identity.OwnerID == "" {
		t.Error("missing file should fall back to defaults")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[identity]
owner_id = "owner-123"
display_name = "Dana"

[storage]
db_path = "` + filepath.Join(dir, "test.db") + `"

[group]
default_invite = "ABC123"

[ui]
theme = "latte"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Identity.OwnerID != "owner-123" {
		t.Errorf("owner id = %q, want owner-123", cfg.Identity.OwnerID)
	}
	if cfg.Identity.DisplayName != "Dana" {
		t.Errorf("display name = %q, want Dana", cfg.Identity.DisplayName)
	}
	if cfg.Group.DefaultInvite != "ABC123" {
		t.Errorf("default invite = %q, want ABC123", cfg.Group.DefaultInvite)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("theme = %q, want latte", cfg.UI.Theme)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WHENWORKS_DISPLAY_NAME", "FromEnv")
	t.Setenv("WHENWORKS_GROUP", "ENV999")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Identity.DisplayName != "FromEnv" {
		t.Errorf("display name = %q, want FromEnv", cfg.Identity.DisplayName)
	}
	if cfg.Group.DefaultInvite != "ENV999" {
		t.Errorf("default invite = %q, want ENV999", cfg.Group.DefaultInvite)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "missing owner id",
			mutate:  func(c *Config) { c.Identity.OwnerID = "" },
			wantErr: "owner_id",
		},
		{
			name:    "missing display name",
			mutate:  func(c *Config) { c.Identity.DisplayName = "" },
			wantErr: "display_name",
		},
		{
			name:    "missing db path",
			mutate:  func(c *Config) { c.Storage.DBPath = "" },
			wantErr: "db_path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Identity.OwnerID = "stable-id"
	cfg.Group.DefaultInvite = "XYZ"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if loaded.Identity.OwnerID != "stable-id" {
		t.Errorf("owner id = %q, want stable-id", loaded.Identity.OwnerID)
	}
	if loaded.Group.DefaultInvite != "XYZ" {
		t.Errorf("default invite = %q, want XYZ", loaded.Group.DefaultInvite)
	}
}
