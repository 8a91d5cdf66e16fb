package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/refgraph/refgraph/pkg/store"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"inspect", "stats", "dot", "store", "serve", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestLoadConfigExplicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[store]
backend = "null"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c := New(io.Discard, LogInfo)
	c.configPath = path

	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Store.Backend != store.BackendNull {
		t.Errorf("backend = %q, want null", cfg.Store.Backend)
	}
}

func TestLoadConfigDefaultWhenMissing(t *testing.T) {
	// Point XDG_CONFIG_HOME at an empty directory so no user config is found.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Store.Backend != store.BackendFile {
		t.Errorf("backend = %q, want file default", cfg.Store.Backend)
	}
}

func TestLoadConfigPicksUpUserConfig(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := `
[store]
backend = "null"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c := New(io.Discard, LogInfo)
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Store.Backend != store.BackendNull {
		t.Errorf("backend = %q, want null from user config", cfg.Store.Backend)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := defaultConfigPath()
	if err != nil {
		t.Fatalf("defaultConfigPath: %v", err)
	}
	if path != filepath.Join("/tmp/xdg", appName, "config.toml") {
		t.Errorf("path = %q", path)
	}
}
