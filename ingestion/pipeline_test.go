package ingestion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dahyuniiiiii/Aigent/ai/mock"
	"github.com/dahyuniiiiii/Aigent/storage"
	badgerstore "github.com/dahyuniiiiii/Aigent/storage/badger"
	"github.com/dahyuniiiiii/Aigent/summary"
)

func setupPipeline(t *testing.T) (*Pipeline, storage.DocumentRepository, *mock.MockProvider) {
	t.Helper()

	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, backend.Close())
	})

	provider := mock.NewMockProvider().(*mock.MockProvider)
	pipeline, err := NewPipeline(repo, provider)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, repo, provider
}

func TestNewPipelineValidation(t *testing.T) {
	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewPipeline(nil, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewPipeline(repo, nil)
	assert.ErrorIs(t, err, ErrProviderRequired)
}

func TestIngestSingleSource(t *testing.T) {
	pipeline, repo, _ := setupPipeline(t)
	ctx := context.Background()

	src := summary.Source{
		Name: "2024-03-01.txt",
		Text: "Kim - Handled deployment\nLee - Wrote the report",
	}

	count, err := pipeline.Ingest(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	first, err := repo.GetDocument(ctx, "20240301_m1")
	require.NoError(t, err)
	assert.Equal(t, "Handled deployment", first.Text)
	assert.Equal(t, "2024-03-01", first.Date)
	assert.NotEmpty(t, first.Vector)

	second, err := repo.GetDocument(ctx, "20240301_m2")
	require.NoError(t, err)
	assert.Equal(t, "Wrote the report", second.Text)
}

func TestIngestDateTimeSourceKeepsTimestampVerbatim(t *testing.T) {
	pipeline, repo, _ := setupPipeline(t)
	ctx := context.Background()

	src := summary.Source{
		Name: "2024-03-01_10-30.txt",
		Text: "Park - Reviewed the metrics",
	}

	count, err := pipeline.Ingest(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	doc, err := repo.GetDocument(ctx, "2024-03-01_10-30_m1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", doc.Date)
}

func TestIngestEmptySourceLeavesStoreUntouched(t *testing.T) {
	pipeline, repo, _ := setupPipeline(t)
	ctx := context.Background()

	src := summary.Source{Name: "2024-03-01.txt", Text: "\n\nno delimiter here\n"}

	count, err := pipeline.Ingest(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	total, err := repo.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestIngestIsIdempotent(t *testing.T) {
	pipeline, repo, _ := setupPipeline(t)
	ctx := context.Background()

	src := summary.Source{
		Name: "2024-03-01.txt",
		Text: "Kim - Handled deployment\nLee - Wrote the report",
	}

	_, err := pipeline.Ingest(ctx, src)
	require.NoError(t, err)

	original, err := repo.GetDocument(ctx, "20240301_m1")
	require.NoError(t, err)

	_, err = pipeline.Ingest(ctx, src)
	require.NoError(t, err)

	total, err := repo.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total, "re-ingesting the same source must not duplicate documents")

	replaced, err := repo.GetDocument(ctx, "20240301_m1")
	require.NoError(t, err)
	assert.True(t, original.InsertedAt.Equal(replaced.InsertedAt))
}

func TestIngestEmbedderFailure(t *testing.T) {
	pipeline, repo, provider := setupPipeline(t)
	ctx := context.Background()

	provider.GetMockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service unavailable")
	}

	src := summary.Source{Name: "2024-03-01.txt", Text: "Kim - Handled deployment"}

	_, err := pipeline.Ingest(ctx, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding service unavailable")

	total, err := repo.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, total, "a failed embedding batch must not write partial documents")
}

func TestIngestEmbeddingCountMismatch(t *testing.T) {
	pipeline, _, provider := setupPipeline(t)
	ctx := context.Background()

	provider.GetMockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{0.1, 0.2}}, nil
	}

	src := summary.Source{
		Name: "2024-03-01.txt",
		Text: "Kim - Handled deployment\nLee - Wrote the report",
	}

	_, err := pipeline.Ingest(ctx, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestIngestAll(t *testing.T) {
	pipeline, repo, _ := setupPipeline(t)
	ctx := context.Background()

	sources := make([]summary.Source, 5)
	for i := range sources {
		sources[i] = summary.Source{
			Name: fmt.Sprintf("2024-03-%02d.txt", i+1),
			Text: "Kim - Handled deployment\nLee - Wrote the report",
		}
	}

	report := pipeline.IngestAll(ctx, sources)
	assert.Equal(t, 10, report.Documents)
	assert.Len(t, report.Results, 5)
	assert.Empty(t, report.Failed())

	total, err := repo.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, total)
}

func TestIngestAllReportsFailures(t *testing.T) {
	pipeline, _, provider := setupPipeline(t)
	ctx := context.Background()

	provider.GetMockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		if texts[0] == "boom" {
			return nil, errors.New("embedding service unavailable")
		}
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = []float32{1, 0, 0}
		}
		return vectors, nil
	}

	sources := []summary.Source{
		{Name: "2024-03-01.txt", Text: "Kim - Handled deployment"},
		{Name: "2024-03-02.txt", Text: "Kim - boom"},
	}

	report := pipeline.IngestAll(ctx, sources)
	assert.Equal(t, 1, report.Documents)

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "2024-03-02.txt", failed[0].Source)
	assert.Error(t, failed[0].Err)
}

func TestIngestAllWithPoolSize(t *testing.T) {
	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	pipeline, err := NewPipeline(repo, mock.NewMockProvider(), WithPoolSize(2))
	require.NoError(t, err)
	defer pipeline.Release()

	sources := make([]summary.Source, 8)
	for i := range sources {
		sources[i] = summary.Source{
			Name: fmt.Sprintf("2024-04-%02d.txt", i+1),
			Text: "Kim - Handled deployment",
		}
	}

	report := pipeline.IngestAll(context.Background(), sources)
	assert.Equal(t, 8, report.Documents)
	assert.Empty(t, report.Failed())
}
