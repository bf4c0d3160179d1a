package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/income-tax-calculator/internal/domain"
)

func TestRulesWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: \"v1\"\n"), 0644))

	reloaded := make(chan *domain.TaxRules, 4)
	failed := make(chan error, 4)
	w := NewRulesWatcher(path, func(r *domain.TaxRules) { reloaded <- r }, func(err error) { failed <- err })
	w.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("name: \"v2\"\ncess_rate: 0.05\n"), 0644))
	select {
	case r := <-reloaded:
		assert.Equal(t, "v2", r.Name)
		assert.Equal(t, "0.05", r.CessRate.String())
	case err := <-failed:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("rules were not reloaded")
	}

	require.NoError(t, os.WriteFile(path, []byte("cess_rate: 2\n"), 0644))
	select {
	case err := <-failed:
		assert.True(t, errors.Is(err, domain.ErrInvalidRules), "got %v", err)
	case r := <-reloaded:
		t.Fatalf("invalid rules were reloaded: %+v", r)
	case <-time.After(5 * time.Second):
		t.Fatal("invalid rules were not reported")
	}
}

func TestRulesWatcher_MissingDirectory(t *testing.T) {
	w := NewRulesWatcher(filepath.Join(t.TempDir(), "nope", "rules.yaml"), func(*domain.TaxRules) {}, nil)
	err := w.Run(context.Background())
	assert.Error(t, err)
}
