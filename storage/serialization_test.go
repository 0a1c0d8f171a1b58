package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dahyuniiiiii/Aigent/core"
)

func TestMarshalUnmarshalDocument(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		doc  *core.Document
	}{
		{
			name: "minimal document",
			doc: &core.Document{
				ID:         "20240301_m1",
				Date:       "2024-03-01",
				Text:       "Handled deployment",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "document with vector",
			doc: &core.Document{
				ID:         "2024-03-01_10-30_m2",
				Date:       "2024-03-01",
				Text:       "Reviewed design",
				Vector:     []float32{0.1, -0.2, 0.3, 0.4},
				InsertedAt: now,
				UpdatedAt:  now.Add(time.Hour),
			},
		},
		{
			name: "unknown date document",
			doc: &core.Document{
				ID:         "unknown_m1",
				Date:       core.UnknownDate,
				Text:       "Took notes",
				Vector:     []float32{},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "multibyte text survives",
			doc: &core.Document{
				ID:         "20240301_m3",
				Date:       "2024-03-01",
				Text:       "배포 진행 완료",
				Vector:     []float32{1},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalDocument(tt.doc)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalDocument(data)
			require.NoError(t, err)

			assert.Equal(t, tt.doc.ID, decoded.ID)
			assert.Equal(t, tt.doc.Date, decoded.Date)
			assert.Equal(t, tt.doc.Text, decoded.Text)
			assert.Equal(t, len(tt.doc.Vector), len(decoded.Vector))
			for i := range tt.doc.Vector {
				assert.InDelta(t, tt.doc.Vector[i], decoded.Vector[i], 1e-6)
			}
			assert.True(t, tt.doc.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.doc.UpdatedAt.Equal(decoded.UpdatedAt))
		})
	}
}

func TestUnmarshalDocument_Invalid(t *testing.T) {
	_, err := UnmarshalDocument([]byte{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalDocumentID(t *testing.T) {
	for _, id := range []string{"20240301_m1", "unknown_m42", ""} {
		data := MarshalDocumentID(id)
		decoded, err := UnmarshalDocumentID(data)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}
