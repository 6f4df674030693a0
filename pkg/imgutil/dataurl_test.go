package imgutil

import (
	"encoding/base64"
	"testing"

	"github.com/shouni/gemini-tryon-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURL(t *testing.T) {
	pngData := createDummyImageData(t, "png")

	t.Run("data URL のラウンドトリップで MIME とバイト列が保たれること", func(t *testing.T) {
		cases := []domain.ImagePayload{
			{MIMEType: "image/png", Data: pngData},
			{MIMEType: "image/jpeg", Data: []byte{0xFF, 0xD8, 0xFF, 0xE0}},
			{MIMEType: "application/octet-stream", Data: []byte("x")},
		}
		for _, want := range cases {
			got, err := ParseDataURL(want.DataURL())
			require.NoError(t, err)
			assert.Equal(t, want.MIMEType, got.MIMEType)
			assert.Equal(t, want.Data, got.Data)
		}
	})

	t.Run("文字列としても元の data URL に戻ること", func(t *testing.T) {
		in := "data:image/webp;base64," + base64.StdEncoding.EncodeToString([]byte("webp-bytes"))
		p, err := ParseDataURL(in)
		require.NoError(t, err)
		assert.Equal(t, in, p.DataURL())
	})

	t.Run("不正な形式は InvalidInput を返すこと", func(t *testing.T) {
		invalid := []string{
			"",
			"image/png;base64,AAAA",
			"data:image/png,AAAA",
			"data:;base64,AAAA",
			"data:image/png;base64,",
			"https://example.com/person.png",
		}
		for _, s := range invalid {
			_, err := ParseDataURL(s)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "input=%q", s)
		}
	})

	t.Run("パディング無しの base64 も受け付けること", func(t *testing.T) {
		p, err := ParseDataURL("data:image/png;base64,YWI")
		require.NoError(t, err)
		assert.Equal(t, "image/png", p.MIMEType)
		assert.Equal(t, []byte("ab"), p.Data)
	})

	t.Run("base64 として壊れている場合も InvalidInput", func(t *testing.T) {
		_, err := ParseDataURL("data:image/png;base64,!!!not-base64!!!")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
