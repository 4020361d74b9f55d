package jobs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

type mockImageRefs struct {
	refsFunc func(ctx context.Context) (map[string]struct{}, error)
}

func (m *mockImageRefs) ReferencedImages(ctx context.Context) (map[string]struct{}, error) {
	if m.refsFunc != nil {
		return m.refsFunc(ctx)
	}
	return map[string]struct{}{}, nil
}

func writeAgedFile(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	return path
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestSweeper_Sweep(t *testing.T) {
	dir := t.TempDir()

	writeAgedFile(t, dir, "referenced.png", 2*time.Hour)
	writeAgedFile(t, dir, "orphan-old.png", 2*time.Hour)
	writeAgedFile(t, dir, "orphan-fresh.png", 0)
	writeAgedFile(t, dir, ".keep", 2*time.Hour)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	repo := &mockImageRefs{
		refsFunc: func(ctx context.Context) (map[string]struct{}, error) {
			return map[string]struct{}{"referenced.png": {}}, nil
		},
	}

	s := NewSweeper(repo, dir, time.Hour, noOpLogger())
	require.NoError(t, s.Sweep(context.Background()))

	names := dirNames(t, dir)
	assert.Contains(t, names, "referenced.png")
	assert.Contains(t, names, "orphan-fresh.png")
	assert.Contains(t, names, ".keep")
	assert.Contains(t, names, "nested")
	assert.NotContains(t, names, "orphan-old.png")
}

func TestSweeper_SweepRefsFailure(t *testing.T) {
	dir := t.TempDir()
	writeAgedFile(t, dir, "orphan-old.png", 2*time.Hour)

	repo := &mockImageRefs{
		refsFunc: func(ctx context.Context) (map[string]struct{}, error) {
			return nil, assert.AnError
		},
	}

	s := NewSweeper(repo, dir, time.Hour, noOpLogger())
	require.Error(t, s.Sweep(context.Background()))

	// nothing is removed when the reference set cannot be loaded
	assert.Contains(t, dirNames(t, dir), "orphan-old.png")
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	s := NewSweeper(&mockImageRefs{}, dir, time.Hour, noOpLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
