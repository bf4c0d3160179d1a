package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rpgo/income-tax-calculator/internal/domain"
)

// RulesWatcher reloads a rules file whenever it changes on disk. Rules that
// fail to parse or validate are reported through OnError and never handed
// to OnReload.
type RulesWatcher struct {
	Path     string
	Debounce time.Duration
	OnReload func(*domain.TaxRules)
	OnError  func(error)

	parser *RulesParser
}

// NewRulesWatcher creates a watcher for path with a 250ms debounce.
func NewRulesWatcher(path string, onReload func(*domain.TaxRules), onError func(error)) *RulesWatcher {
	if onError == nil {
		onError = func(error) {}
	}
	return &RulesWatcher{
		Path:     path,
		Debounce: 250 * time.Millisecond,
		OnReload: onReload,
		OnError:  onError,
		parser:   NewRulesParser(),
	}
}

// Run blocks until ctx is cancelled. The parent directory is watched rather
// than the file so editors that save by rename are still seen.
func (rw *RulesWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(rw.Path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", rw.Path, err)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Editors often emit several writes per save.
			if timer == nil {
				timer = time.NewTimer(rw.Debounce)
			} else {
				timer.Reset(rw.Debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			rw.OnError(err)

		case <-fire:
			fire = nil
			rules, err := rw.parser.LoadFromFile(rw.Path)
			if err != nil {
				rw.OnError(err)
				continue
			}
			rw.OnReload(rules)
		}
	}
}
