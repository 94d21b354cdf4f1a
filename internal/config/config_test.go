package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingConfigUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.PreviewTheme != "dark" {
		t.Errorf("expected default theme, got %q", cfg.PreviewTheme)
	}
	if cfg.TabWidth != 4 {
		t.Errorf("expected default tab width, got %d", cfg.TabWidth)
	}
}

func TestLoadParsesValues(t *testing.T) {
	home := t.TempDir()
	path := GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	body := "preview_theme: light\ntab_width: 2\nmax_files_per_view: 10\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PreviewTheme != "light" || cfg.TabWidth != 2 || cfg.MaxFilesPerView != 10 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsUnknownTheme(t *testing.T) {
	home := t.TempDir()
	path := GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("preview_theme: neon\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(home); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	cfg.TabWidth = 8
	cfg.RememberWorkspace("/projects/app")

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	again, err := Load(home)
	if err != nil {
		t.Fatalf("reload returned error: %v", err)
	}
	if again.TabWidth != 8 {
		t.Errorf("tab width did not persist, got %d", again.TabWidth)
	}
	if !reflect.DeepEqual(again.RecentWorkspaces, []string{"/projects/app"}) {
		t.Errorf("recent workspaces did not persist: %v", again.RecentWorkspaces)
	}
}

func TestRememberWorkspaceDeduplicates(t *testing.T) {
	cfg := &Config{}
	cfg.RememberWorkspace("/a")
	cfg.RememberWorkspace("/b")
	cfg.RememberWorkspace("/a")

	want := []string{"/a", "/b"}
	if !reflect.DeepEqual(cfg.RecentWorkspaces, want) {
		t.Fatalf("expected %v, got %v", want, cfg.RecentWorkspaces)
	}
}
