package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bastiangx/pgalyzer/pkg/document"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	config, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if !reflect.DeepEqual(config, DefaultConfig()) {
		t.Errorf("InitConfig = %+v, want defaults", config)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(reloaded, DefaultConfig()) {
		t.Errorf("reloaded = %+v, want defaults", reloaded)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := writeConfig(t, "[analysis]\nclean = true\nneighborhood_size = 3\n\n[server]\nmax_limit = 10\n")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !config.Analysis.Clean || config.Analysis.NeighborhoodSize != 3 {
		t.Errorf("analysis = %+v", config.Analysis)
	}
	if config.Analysis.LikelyLimit != 5 {
		t.Errorf("likely_limit = %d, want default 5", config.Analysis.LikelyLimit)
	}
	if config.Server.MaxLimit != 10 || config.Server.MaxNeighborhood != 50 {
		t.Errorf("server = %+v", config.Server)
	}
}

func TestLoadConfigRecoversFromTypeErrors(t *testing.T) {
	path := writeConfig(t, "[analysis]\nngram_size = \"two\"\nlikely_limit = 8\n\n[cli]\ndefault_limit = 3\n")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Analysis.NGramSize != 1 {
		t.Errorf("ngram_size = %d, want default 1", config.Analysis.NGramSize)
	}
	if config.Analysis.LikelyLimit != 8 {
		t.Errorf("likely_limit = %d, want 8", config.Analysis.LikelyLimit)
	}
	if config.CLI.DefaultLimit != 3 {
		t.Errorf("default_limit = %d, want 3", config.CLI.DefaultLimit)
	}
}

func TestLoadConfigBrokenFile(t *testing.T) {
	path := writeConfig(t, "this is [[ not toml")
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(config, DefaultConfig()) {
		t.Errorf("config = %+v, want defaults", config)
	}
}

func TestLoadConfigSanitizes(t *testing.T) {
	path := writeConfig(t, "[analysis]\nngram_size = 0\nneighborhood_size = -4\n\n[server]\nmax_limit = -1\n")
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Analysis.NGramSize != 1 || config.Analysis.NeighborhoodSize != 10 || config.Server.MaxLimit != 64 {
		t.Errorf("config not sanitized: %+v", config)
	}
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[cli]\ndefault_neighborhood = 2\n")
	config, used := LoadConfigWithPriority(path)
	if used != path {
		t.Errorf("used path = %s, want %s", used, path)
	}
	if config.CLI.DefaultNeighborhood != 2 {
		t.Errorf("default_neighborhood = %d, want 2", config.CLI.DefaultNeighborhood)
	}
}

func TestDocumentOptions(t *testing.T) {
	config := DefaultConfig()
	config.Analysis.StartMarker = "*** START OF THE PROJECT GUTENBERG EBOOK"
	opts := config.DocumentOptions()
	if opts.StartMarker != "*** start of the project gutenberg ebook" {
		t.Errorf("StartMarker = %q", opts.StartMarker)
	}
	if opts.EndMarker != document.EndMarker || opts.Punctuation != document.Punctuation {
		t.Errorf("opts = %+v", opts)
	}
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	config := DefaultConfig()
	maxLimit, clean := 30, true

	if err := config.Update(path, &maxLimit, nil, &clean); err != nil {
		t.Fatalf("Update: %v", err)
	}
	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if reloaded.Server.MaxLimit != 30 || !reloaded.Analysis.Clean || reloaded.Server.MaxNeighborhood != 50 {
		t.Errorf("reloaded = %+v", reloaded)
	}

	bad := 0
	if err := config.Update(path, &bad, nil, nil); err == nil {
		t.Error("Update accepted max_limit 0")
	}
}

func TestYAMLConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("analysis:\n  clean: true\n  likely_limit: 7\nserver:\n  max_limit: 12\n"), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !config.Analysis.Clean || config.Analysis.LikelyLimit != 7 || config.Server.MaxLimit != 12 {
		t.Errorf("config = %+v", config)
	}
	if config.Analysis.NeighborhoodSize != 10 {
		t.Errorf("neighborhood_size = %d, want default 10", config.Analysis.NeighborhoodSize)
	}

	saved := filepath.Join(dir, "saved.yml")
	if err := SaveConfig(config, saved); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	reloaded, err := LoadConfig(saved)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(reloaded, config) {
		t.Errorf("reloaded = %+v, want %+v", reloaded, config)
	}
}

func TestYAMLConfigRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("analysis:\n  ngram_size: two\n  likely_limit: 8\n"), 0644); err != nil {
		t.Fatal(err)
	}
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Analysis.NGramSize != 1 || config.Analysis.LikelyLimit != 8 {
		t.Errorf("analysis = %+v", config.Analysis)
	}
}
