package testsupport

import (
	"testing"

	"autocut/internal/config"
	"autocut/internal/runstore"
)

// MustOpenRuns opens a run-history store for tests and registers cleanup.
func MustOpenRuns(t testing.TB, cfg *config.Config) *runstore.Store {
	t.Helper()

	store, err := runstore.Open(cfg.Paths.DatabasePath)
	if err != nil {
		t.Fatalf("runstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
