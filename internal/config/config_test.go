package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"autocut/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantInput := filepath.Join(tempHome, "autocut", "input")
	if cfg.Paths.InputDir != wantInput {
		t.Fatalf("unexpected input dir: got %q want %q", cfg.Paths.InputDir, wantInput)
	}
	wantWork := filepath.Join(tempHome, ".local", "share", "autocut", "work")
	if cfg.Paths.WorkDir != wantWork {
		t.Fatalf("unexpected work dir: %q", cfg.Paths.WorkDir)
	}
	if cfg.STT.Model != "medium" {
		t.Fatalf("unexpected stt model: %q", cfg.STT.Model)
	}
	if cfg.Segmentation.UtteranceGapMS != 500 {
		t.Fatalf("unexpected utterance gap: %d", cfg.Segmentation.UtteranceGapMS)
	}
	if cfg.Workflow.StyleName != "telugu_news" {
		t.Fatalf("unexpected style name: %q", cfg.Workflow.StyleName)
	}
	if cfg.Workflow.MaxParallel != 2 {
		t.Fatalf("unexpected max parallel: %d", cfg.Workflow.MaxParallel)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.StylesDir, cfg.Paths.WorkDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "autocut.toml")

	body := `
[paths]
input_dir = "` + filepath.Join(tempDir, "in") + `"
styles_dir = "` + filepath.Join(tempDir, "styles") + `"

[stt]
model = "small"
language = "TE"

[workflow]
style_name = "daily-bulletin"
max_parallel = 4

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Paths.InputDir != filepath.Join(tempDir, "in") {
		t.Fatalf("unexpected input dir: %q", cfg.Paths.InputDir)
	}
	if cfg.STT.Model != "small" {
		t.Fatalf("unexpected stt model: %q", cfg.STT.Model)
	}
	if cfg.STT.Language != "te" {
		t.Fatalf("expected normalized language, got %q", cfg.STT.Language)
	}
	if cfg.Workflow.StyleName != "daily-bulletin" {
		t.Fatalf("unexpected style name: %q", cfg.Workflow.StyleName)
	}
	if cfg.Workflow.MaxParallel != 4 {
		t.Fatalf("unexpected max parallel: %d", cfg.Workflow.MaxParallel)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
	// Unset sections keep their defaults.
	if cfg.Workflow.RetryAttempts != 3 {
		t.Fatalf("unexpected retry attempts: %d", cfg.Workflow.RetryAttempts)
	}
}

func TestLoadNormalizesLanguageWord(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "autocut.toml")

	body := `
[stt]
language = "Telugu"
`
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.STT.Language != "te" {
		t.Fatalf("expected language word mapped to ISO code, got %q", cfg.STT.Language)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "bad model",
			body: "[stt]\nmodel = \"enormous\"\n",
			want: "stt.model",
		},
		{
			name: "bad style name",
			body: "[workflow]\nstyle_name = \"Bad Name!\"\n",
			want: "workflow.style_name",
		},
		{
			name: "bad log format",
			body: "[logging]\nformat = \"xml\"\n",
			want: "logging.format",
		},
		{
			name: "bad log level",
			body: "[logging]\nlevel = \"verbose\"\n",
			want: "logging.level",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "autocut.toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	for _, want := range []string{"[paths]", "[stt]", "[workflow]", "[logging]", "style_name"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("sample missing %q", want)
		}
	}
	// The sample must itself load cleanly.
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}

func TestExpandPathTilde(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	got, err := config.ExpandPath("~/styles")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(tempHome, "styles") {
		t.Fatalf("unexpected expansion %q", got)
	}
}
