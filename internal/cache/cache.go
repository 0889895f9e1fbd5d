// Package cache prunes stale localized cache artifacts in the background.
package cache

import (
	"os"
	"time"

	"github.com/anilens-cli/anilens/filesystem"
	"github.com/anilens-cli/anilens/where"
	"github.com/spf13/afero"
)

// TTL bounds how long cached artifacts may outlive their last update.
const TTL = 30 * 24 * time.Hour

// CollectGarbage removes cache entries past their TTL and leftover temp files.
func CollectGarbage() {
	fs := filesystem.API()

	prune := func(dir string, ttl time.Duration) {
		_ = afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			if time.Since(info.ModTime()) > ttl {
				_ = fs.Remove(path)
			}
			return nil
		})
	}

	prune(where.Cache(), TTL)
	prune(where.Temp(), 24*time.Hour)
}
