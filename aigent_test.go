package aigent

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dahyuniiiiii/Aigent/ai/mock"
	"github.com/dahyuniiiiii/Aigent/summary"
)

func TestNewEngine(t *testing.T) {
	t.Run("creates engine with defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		engine, err := NewEngine(tmpDir, WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NotNil(t, engine)
		defer engine.Close()

		assert.NotNil(t, engine.DocumentRepository())
		assert.NotNil(t, engine.Provider())
		assert.NotNil(t, engine.backend)
		assert.NotNil(t, engine.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		engine, err := NewEngine(tmpFile, WithProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, engine)
	})
}

func TestEngine_Close(t *testing.T) {
	engine, err := NewEngine(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)

	assert.NoError(t, engine.Close())
}

func TestEngine_FactoryMethods(t *testing.T) {
	engine, err := NewEngine(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer engine.Close()

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := engine.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create retriever", func(t *testing.T) {
		retriever, err := engine.NewRetriever()
		require.NoError(t, err)
		require.NotNil(t, retriever)
	})

	t.Run("can create answerer", func(t *testing.T) {
		answerer, err := engine.NewAnswerer()
		require.NoError(t, err)
		require.NotNil(t, answerer)
	})
}

func TestEngine_EndToEnd(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)

	engine, err := NewEngine(t.TempDir(), WithProvider(provider))
	require.NoError(t, err)
	defer engine.Close()

	pipeline, err := engine.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	src := summary.Source{
		Name: "2024-03-01.txt",
		Text: "Kim - Handled deployment\nLee - Wrote the report",
	}

	count, err := pipeline.Ingest(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	answerer, err := engine.NewAnswerer()
	require.NoError(t, err)

	provider.GetMockGenerator().GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "Kim handled the deployment.", nil
	}

	result, err := answerer.Answer(ctx, "who handled the deployment?")
	require.NoError(t, err)
	require.Nil(t, result.GenerationErr)
	assert.Equal(t, "Kim handled the deployment.", result.Answer)
	assert.NotEmpty(t, result.Context)
}
