package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/shouni/gemini-tryon-kit/pkg/domain"
)

const (
	MinJPEGQuality = 1
	MaxJPEGQuality = 100
)

// CompressToJPEG は画像データ（PNG, GIF, JPEG等）をJPEG形式に圧縮します。
// 撮影したままの大きな写真を送る前に、入力側で任意に使います。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	if quality < MinJPEGQuality || quality > MaxJPEGQuality {
		return nil, fmt.Errorf("JPEG品質は %d〜%d で指定してください: %d", MinJPEGQuality, MaxJPEGQuality, quality)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("画像のデコードに失敗しました: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompressPayload は ImagePayload を JPEG に変換した新しい ImagePayload を返します。
// 元の payload は変更しません。
func CompressPayload(p domain.ImagePayload, quality int) (domain.ImagePayload, error) {
	out, err := CompressToJPEG(p.Data, quality)
	if err != nil {
		return domain.ImagePayload{}, err
	}
	return domain.ImagePayload{MIMEType: "image/jpeg", Data: out}, nil
}
