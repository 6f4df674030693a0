package source

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// mockHTTPClient は FetchBytes と IsSafeURL だけを差し替えるのだ。
// それ以外のメソッドは埋め込みの nil インターフェースなので呼ぶと panic するのだ。
type mockHTTPClient struct {
	httpkit.ClientInterface
	data    []byte
	err     error
	unsafe  bool
	lastURL string
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.lastURL = url
	return m.data, m.err
}

func (m *mockHTTPClient) IsSafeURL(urlStr string) (bool, error) {
	return !m.unsafe, nil
}

type mockReader struct {
	objects map[string][]byte
	err     error
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.objects[uri]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockReader) List(ctx context.Context, uri string, fn func(string) error) error {
	for k := range m.objects {
		if err := fn(k); err != nil {
			return err
		}
	}
	return nil
}
