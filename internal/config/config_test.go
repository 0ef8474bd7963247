package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskdock/internal/config"
)

func TestNew_ExplicitDir(t *testing.T) {
	cfg, err := config.New("/tmp/custom")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dir != "/tmp/custom" {
		t.Errorf("Dir = %q, want /tmp/custom", cfg.Dir)
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	want := filepath.Join("/tmp/xdg", config.AppName)
	if got := config.DefaultConfigDir(); got != want {
		t.Errorf("DefaultConfigDir() = %q, want %q", got, want)
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := &config.Config{Dir: "/tmp/td"}
	if got := cfg.OAuthClientPath(); got != "/tmp/td/oauth_client.json" {
		t.Errorf("OAuthClientPath() = %q", got)
	}
	if got := cfg.TokenPath(); got != "/tmp/td/token.json" {
		t.Errorf("TokenPath() = %q", got)
	}
	if got := cfg.SettingsPath(); got != "/tmp/td/settings.yaml" {
		t.Errorf("SettingsPath() = %q", got)
	}
}

func TestConfig_EnsureDirIsPrivate(t *testing.T) {
	cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "cfg")}
	if err := cfg.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0700 {
		t.Errorf("directory mode = %o, want 0700", perm)
	}
}

func TestConfig_HasFiles(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	if cfg.HasOAuthClient() || cfg.HasToken() {
		t.Fatal("empty directory reports files present")
	}
	if err := os.WriteFile(cfg.OAuthClientPath(), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if !cfg.HasOAuthClient() {
		t.Error("HasOAuthClient() = false")
	}
	if !cfg.HasToken() {
		t.Error("HasToken() = false")
	}
}

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string // empty string means no file
		want    config.Settings
		wantErr bool
	}{
		{
			name: "missing file yields defaults",
			want: config.Settings{TokenStorage: config.StorageFile},
		},
		{
			name:    "keyring storage",
			content: "token_storage: keyring\n",
			want:    config.Settings{TokenStorage: config.StorageKeyring},
		},
		{
			name:    "quiet flag",
			content: "quiet: true\n",
			want:    config.Settings{TokenStorage: config.StorageFile, Quiet: true},
		},
		{
			name:    "unknown storage backend",
			content: "token_storage: vault\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			content: "token_storage: [unclosed\n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Dir: t.TempDir()}
			if tt.content != "" {
				if err := os.WriteFile(cfg.SettingsPath(), []byte(tt.content), 0600); err != nil {
					t.Fatal(err)
				}
			}
			got, err := cfg.LoadSettings()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadSettings failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("settings = %+v, want %+v", got, tt.want)
			}
		})
	}
}
