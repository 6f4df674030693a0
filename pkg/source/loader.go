package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/shouni/gemini-tryon-kit/pkg/domain"
	"github.com/shouni/gemini-tryon-kit/pkg/imgutil"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

const dataURLPrefix = "data:"

// DefaultMaxBytes は1枚の入力画像として読み込む上限です。
const DefaultMaxBytes int64 = 20 * 1024 * 1024

// LoaderOptions は Loader の挙動を調整します。
type LoaderOptions struct {
	// MaxBytes は1枚あたりの上限です。0 以下なら DefaultMaxBytes です。
	MaxBytes int64
	// JPEGQuality が 1〜100 の場合、読み込んだ画像を JPEG に再圧縮します。0 なら圧縮しません。
	JPEGQuality int
}

// Loader はカメラやファイル選択の代わりに、様々な参照から data URL を作るのだ。
// 対応する参照は data: URL、ローカルパス、http(s)://、gs:// なのだ。
type Loader struct {
	httpClient httpkit.ClientInterface
	reader     remoteio.InputReader
	opts       LoaderOptions
}

// NewLoader は依存関係を注入して Loader を初期化します。
// ローカルパスと gs:// は reader が、http(s):// は httpClient が担当します。
func NewLoader(httpClient httpkit.ClientInterface, reader remoteio.InputReader, opts LoaderOptions) (*Loader, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.JPEGQuality < 0 || opts.JPEGQuality > imgutil.MaxJPEGQuality {
		return nil, fmt.Errorf("JPEG品質は 0〜%d で指定してください: %d", imgutil.MaxJPEGQuality, opts.JPEGQuality)
	}
	return &Loader{
		httpClient: httpClient,
		reader:     reader,
		opts:       opts,
	}, nil
}

// Load は ref を読み込み、data:<mime>;base64,<payload> 形式で返します。
func (l *Loader) Load(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("画像の参照が空です")
	}

	var payload domain.ImagePayload
	if strings.HasPrefix(ref, dataURLPrefix) {
		p, err := imgutil.ParseDataURL(ref)
		if err != nil {
			return "", err
		}
		if l.opts.JPEGQuality == 0 {
			return ref, nil
		}
		payload = p
	} else {
		data, err := l.fetch(ctx, ref)
		if err != nil {
			return "", err
		}
		mime := mimetype.Detect(data)
		if !strings.HasPrefix(mime.String(), "image/") {
			return "", fmt.Errorf("画像ではないデータです (%s): %s", mime.String(), ref)
		}
		payload = domain.ImagePayload{MIMEType: mime.String(), Data: data}
	}

	if l.opts.JPEGQuality > 0 {
		compressed, err := imgutil.CompressPayload(payload, l.opts.JPEGQuality)
		if err != nil {
			slog.WarnContext(ctx, "JPEG圧縮に失敗したため元の画像を使用します", "ref", describe(ref), "error", err)
		} else {
			payload = compressed
		}
	}

	slog.DebugContext(ctx, "画像を読み込みました", "ref", describe(ref), "mime", payload.MIMEType, "bytes", len(payload.Data))
	return payload.DataURL(), nil
}

func (l *Loader) fetch(ctx context.Context, ref string) ([]byte, error) {
	if !isHTTP(ref) {
		rc, err := l.reader.Open(ctx, ref)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return readLimited(rc, l.opts.MaxBytes)
	}

	// リダイレクト先や DNS 再解決の検証は httpkit の安全なクライアントが接続ごとに行うのだ。
	if safe, err := l.httpClient.IsSafeURL(ref); err != nil || !safe {
		if err == nil {
			err = fmt.Errorf("制限されたネットワークへのアクセスです: %s", ref)
		}
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	data, err := l.httpClient.FetchBytes(ctx, ref)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.opts.MaxBytes {
		return nil, fmt.Errorf("画像サイズが上限 (%d bytes) を超えています", l.opts.MaxBytes)
	}
	return data, nil
}

func isHTTP(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// IsGCS は ref が gs:// 参照かどうかを返します。
func IsGCS(ref string) bool {
	return remoteio.IsGCSURI(strings.TrimSpace(ref))
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("画像サイズが上限 (%d bytes) を超えています", maxBytes)
	}
	return data, nil
}

// describe はログ用に data URL を短くするのだ。
func describe(ref string) string {
	if strings.HasPrefix(ref, dataURLPrefix) && len(ref) > 32 {
		return ref[:32] + "..."
	}
	return ref
}
