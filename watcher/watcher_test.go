package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dahyuniiiiii/Aigent/ai/mock"
	"github.com/dahyuniiiiii/Aigent/ingestion"
	"github.com/dahyuniiiiii/Aigent/storage"
	badgerstore "github.com/dahyuniiiiii/Aigent/storage/badger"
)

func setupWatcher(t *testing.T) (*Watcher, string, storage.DocumentRepository) {
	t.Helper()

	dir := t.TempDir()

	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, backend.Close())
	})

	pipeline, err := ingestion.NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	w, err := NewWatcher(dir, pipeline, WithSettleDelay(10*time.Millisecond))
	require.NoError(t, err)

	return w, dir, repo
}

func TestNewWatcherValidation(t *testing.T) {
	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	pipeline, err := ingestion.NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)
	defer pipeline.Release()

	_, err = NewWatcher("", pipeline)
	assert.ErrorIs(t, err, ErrDirectoryRequired)

	_, err = NewWatcher(t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrPipelineRequired)
}

func TestWatcherIngestsCreatedFile(t *testing.T) {
	w, dir, repo := setupWatcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "2024-03-01.txt")
	require.NoError(t, os.WriteFile(path, []byte("Kim - Handled deployment\nLee - Wrote the report"), 0o644))

	require.Eventually(t, func() bool {
		count, err := repo.CountDocuments(context.Background())
		return err == nil && count == 2
	}, 5*time.Second, 50*time.Millisecond, "created file should be ingested")

	doc, err := repo.GetDocument(context.Background(), "20240301_m1")
	require.NoError(t, err)
	assert.Equal(t, "Handled deployment", doc.Text)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcherHandlesBurstOfFiles(t *testing.T) {
	dir := t.TempDir()

	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, backend.Close())
	})

	pipeline, err := ingestion.NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	// Long settle: if created files were handled one at a time, five of
	// them could not finish inside the Eventually window below.
	w, err := NewWatcher(dir, pipeline, WithSettleDelay(500*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	for i := 1; i <= 5; i++ {
		path := filepath.Join(dir, fmt.Sprintf("2024-03-%02d.txt", i))
		require.NoError(t, os.WriteFile(path, []byte("Kim - Handled deployment"), 0o644))
	}

	require.Eventually(t, func() bool {
		count, err := repo.CountDocuments(context.Background())
		return err == nil && count == 5
	}, 2*time.Second, 50*time.Millisecond, "burst of created files should be ingested concurrently")
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	w, dir, repo := setupWatcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("Kim - Handled deployment"), 0o644))

	// Give the watcher time to (wrongly) react before checking.
	time.Sleep(300 * time.Millisecond)

	count, err := repo.CountDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
