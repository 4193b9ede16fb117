package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestInitDefaults(t *testing.T) {
	v := viper.New()
	if err := Init(v, ""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timeout != 0 || cfg.AlwaysConfirm {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestInitReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "devstash.yaml")
	body := "vault: /srv/vault.json\neditor: nano\ntimeout: 30s\ngovernance:\n  deny: [rm]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	if err := Init(v, path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Vault != "/srv/vault.json" || cfg.Editor != "nano" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
	if len(cfg.Governance.Deny) != 1 || cfg.Governance.Deny[0] != "rm" {
		t.Fatalf("governance = %+v", cfg.Governance)
	}
}

func TestInitMissingExplicitFileFails(t *testing.T) {
	v := viper.New()
	if err := Init(v, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestResolveEditor(t *testing.T) {
	t.Setenv("EDITOR", "emacs")
	cfg := &Config{}
	if got := cfg.ResolveEditor(); got != "emacs" {
		t.Fatalf("editor = %q", got)
	}
	cfg.Editor = "nano"
	if got := cfg.ResolveEditor(); got != "nano" {
		t.Fatalf("editor = %q", got)
	}
}

func TestResolveVaultPrecedence(t *testing.T) {
	cfg := &Config{Vault: "/cfg/vault.json"}
	if got := ResolveVault("/flag/vault.json", cfg); got != "/flag/vault.json" {
		t.Fatalf("got %q", got)
	}
	if got := ResolveVault("", cfg); got != "/cfg/vault.json" {
		t.Fatalf("got %q", got)
	}
	if got := ResolveVault("", nil); got == "" {
		t.Fatal("default path empty")
	}
}
