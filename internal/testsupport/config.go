package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"autocut/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.RawDir = filepath.Join(base, "raw")
	cfgVal.Paths.EditedDir = filepath.Join(base, "edited")
	cfgVal.Paths.InputDir = filepath.Join(base, "input")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.StylesDir = filepath.Join(base, "styles")
	cfgVal.Paths.WorkDir = filepath.Join(base, "work")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.DatabasePath = filepath.Join(base, "runs.db")
	cfgVal.STT.CacheDir = filepath.Join(base, "stt-cache")
	cfgVal.Workflow.MaxParallel = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	for _, dir := range []string{
		cfgVal.Paths.RawDir,
		cfgVal.Paths.EditedDir,
		cfgVal.Paths.InputDir,
		cfgVal.Paths.OutputDir,
		cfgVal.Paths.StylesDir,
		cfgVal.Paths.WorkDir,
		cfgVal.Paths.LogDir,
		cfgVal.STT.CacheDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	return builder.cfg
}

// WithStyleName overrides the style name on the test config.
func WithStyleName(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Workflow.StyleName = name
	}
}

// WithMaxParallel overrides the apply concurrency on the test config.
func WithMaxParallel(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Workflow.MaxParallel = n
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WorkDir)
}
