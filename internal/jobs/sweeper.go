// Package jobs holds the background workers running next to the HTTP
// server.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImageRefs reports which image filenames are still referenced by some
// record. Implemented by db.Repository.
type ImageRefs interface {
	ReferencedImages(ctx context.Context) (map[string]struct{}, error)
}

// Sweeper deletes stored image files no news row or user profile
// references anymore.
type Sweeper struct {
	repo   ImageRefs
	dir    string
	minAge time.Duration
	log    *slog.Logger
}

func NewSweeper(repo ImageRefs, dir string, minAge time.Duration, log *slog.Logger) *Sweeper {
	return &Sweeper{
		repo:   repo,
		dir:    dir,
		minAge: minAge,
		log:    log,
	}
}

// Run sweeps on the given interval until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.log.Error("image sweep failed", "error", err)
			}
		}
	}
}

// Sweep removes unreferenced files older than the grace period. Fresh
// files are left alone so an upload racing a sweep is never deleted
// before its row is persisted.
func (s *Sweeper) Sweep(ctx context.Context) error {
	refs, err := s.repo.ReferencedImages(ctx)
	if err != nil {
		return fmt.Errorf("collect referenced images: %w", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read images directory: %w", err)
	}

	cutoff := time.Now().Add(-s.minAge)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, ok := refs[entry.Name()]; ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			s.log.Error("failed to remove orphaned image", "image", entry.Name(), "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.log.Info("removed orphaned images", "count", removed)
	}

	return nil
}
