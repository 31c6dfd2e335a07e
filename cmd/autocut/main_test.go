package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"autocut/internal/profile"
)

func writeCLIConfig(t *testing.T) (configPath, baseDir string) {
	t.Helper()

	base := t.TempDir()
	content := fmt.Sprintf(`[paths]
raw_dir = %q
edited_dir = %q
input_dir = %q
output_dir = %q
styles_dir = %q
work_dir = %q
log_dir = %q
database_path = %q

[workflow]
style_name = "telugu_news"
max_parallel = 1

[logging]
format = "console"
level = "error"
`,
		filepath.Join(base, "raw"),
		filepath.Join(base, "edited"),
		filepath.Join(base, "input"),
		filepath.Join(base, "output"),
		filepath.Join(base, "styles"),
		filepath.Join(base, "work"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "runs.db"),
	)

	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path, base
}

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite refuses to clobber the file.
	if _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists")
	}
	if _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCLI(t, "", "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config file did not exist")
	requireContains(t, out, "Configuration valid")
}

func TestConfigShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCLI(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "Config path:")
	requireContains(t, out, "workflow.style_name")
	requireContains(t, out, "stt.model")
}

func TestProfilesListEmpty(t *testing.T) {
	configPath, _ := writeCLIConfig(t)

	out, err := runCLI(t, configPath, "profiles", "list")
	if err != nil {
		t.Fatalf("profiles list: %v", err)
	}
	requireContains(t, out, "No profiles stored")
}

func TestProfilesListAndShow(t *testing.T) {
	configPath, base := writeCLIConfig(t)

	store, err := profile.NewStore(filepath.Join(base, "styles"))
	if err != nil {
		t.Fatalf("profile.NewStore: %v", err)
	}
	prof := profile.Default()
	prof.Name = "telugu_news"
	prof.Fillers.Words = []string{"um", "అంటే"}
	if _, err := store.Save(prof); err != nil {
		t.Fatalf("store.Save: %v", err)
	}

	out, err := runCLI(t, configPath, "profiles", "list")
	if err != nil {
		t.Fatalf("profiles list: %v", err)
	}
	requireContains(t, out, "telugu_news")

	out, err = runCLI(t, configPath, "profiles", "show")
	if err != nil {
		t.Fatalf("profiles show: %v", err)
	}
	requireContains(t, out, `Style "telugu_news" version 1`)
	requireContains(t, out, "retakes.strategy")

	out, err = runCLI(t, configPath, "profiles", "show", "telugu_news", "--version", "1")
	if err != nil {
		t.Fatalf("profiles show --version: %v", err)
	}
	requireContains(t, out, "version 1")

	if _, err := runCLI(t, configPath, "profiles", "show", "missing_style"); err == nil {
		t.Fatal("expected error for unknown style")
	}
}

func TestRunsListEmpty(t *testing.T) {
	configPath, _ := writeCLIConfig(t)

	out, err := runCLI(t, configPath, "runs", "list")
	if err != nil {
		t.Fatalf("runs list: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestLearnFailsWithoutRecordings(t *testing.T) {
	configPath, _ := writeCLIConfig(t)

	if _, err := runCLI(t, configPath, "learn"); err == nil {
		t.Fatal("expected error with empty training directories")
	}
}

func TestApplyFailsWithoutProfile(t *testing.T) {
	configPath, base := writeCLIConfig(t)

	input := filepath.Join(base, "input", "show.mp4")
	if err := os.MkdirAll(filepath.Dir(input), 0o755); err != nil {
		t.Fatalf("mkdir input: %v", err)
	}
	if err := os.WriteFile(input, []byte("x"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	_, err := runCLI(t, configPath, "apply", input)
	if err == nil {
		t.Fatal("expected error without a stored style")
	}
	if !strings.Contains(err.Error(), "run learning first") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRootShowsHelp(t *testing.T) {
	out, err := runCLI(t, "", "--help")
	if err != nil {
		t.Fatalf("--help: %v", err)
	}
	requireContains(t, out, "learn")
	requireContains(t, out, "apply")
	requireContains(t, out, "watch")
}
