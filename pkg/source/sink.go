package source

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/shouni/gemini-tryon-kit/pkg/imgutil"
)

// WriteDataURL は data URL をデコードしてファイルに保存し、書き込んだパスを返します。
// path に拡張子が無い場合は MIME タイプから補います。
func WriteDataURL(path, dataURL string) (string, error) {
	p, err := imgutil.ParseDataURL(dataURL)
	if err != nil {
		return "", err
	}

	if filepath.Ext(path) == "" {
		if m := mimetype.Lookup(p.MIMEType); m != nil {
			path += m.Extension()
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
		}
	}
	if err := os.WriteFile(path, p.Data, 0o644); err != nil {
		return "", fmt.Errorf("画像の保存に失敗しました: %w", err)
	}
	return path, nil
}
