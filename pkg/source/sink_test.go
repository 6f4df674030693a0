package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shouni/gemini-tryon-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDataURL(t *testing.T) {
	dir := t.TempDir()
	payload := domain.ImagePayload{MIMEType: "image/png", Data: pngBytes(t)}

	t.Run("拡張子が無ければ MIME から補うのだ", func(t *testing.T) {
		path, err := WriteDataURL(filepath.Join(dir, "out", "result"), payload.DataURL())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "out", "result.png"), path)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, payload.Data, got)
	})

	t.Run("拡張子があればそのまま使うのだ", func(t *testing.T) {
		path, err := WriteDataURL(filepath.Join(dir, "tryon.img"), payload.DataURL())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "tryon.img"), path)
	})

	t.Run("不正な data URL はエラーなのだ", func(t *testing.T) {
		_, err := WriteDataURL(filepath.Join(dir, "bad"), "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestIsGCS(t *testing.T) {
	assert.True(t, IsGCS("gs://bucket/path/to/garment.png"))
	assert.True(t, IsGCS("  gs://bucket/garment.png"))
	assert.False(t, IsGCS("https://bucket/x"))
	assert.False(t, IsGCS("garment.png"))
}
