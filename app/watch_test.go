// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: one\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	reloads := make(chan Config, 16)
	done := make(chan error)
	go func() {
		done <- WatchConfig(ctx, path, func(c Config) {
			select {
			case reloads <- c:
			default:
			}
		})
	}()

	// Files other than path are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("title: other\n"), 0o644))
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("title: two\n"), 0o644)
		for {
			select {
			case c := <-reloads:
				// A reload may observe the file truncated.
				if c.Title == "two" {
					return true
				}
				assert.NotEqual(t, "other", c.Title)
			default:
				return false
			}
		}
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher didn't stop")
	}
}

func TestWatchConfigMissingDir(t *testing.T) {
	err := WatchConfig(context.Background(), filepath.Join(t.TempDir(), "missing", "app.toml"), func(Config) {})
	assert.Error(t, err)
}
