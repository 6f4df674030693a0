package imgutil

import (
	"encoding/base64"
	"regexp"

	"github.com/shouni/gemini-tryon-kit/pkg/domain"
)

var dataURLPattern = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

// ParseDataURL は data:<mime>;base64,<payload> 形式の文字列を ImagePayload に変換します。
// 形式が一致しない場合は既定値で補わず InvalidInput を返します。
// MIME タイプやサイズの制限は行いません。
func ParseDataURL(s string) (domain.ImagePayload, error) {
	m := dataURLPattern.FindStringSubmatch(s)
	if m == nil {
		return domain.ImagePayload{}, &domain.Error{
			Kind:   domain.KindInvalidInput,
			Detail: "malformed data URL",
		}
	}

	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		// パディング無しのペイロードも受け付ける
		data, err = base64.RawStdEncoding.DecodeString(m[2])
	}
	if err != nil {
		return domain.ImagePayload{}, &domain.Error{
			Kind:   domain.KindInvalidInput,
			Detail: "data URL payload is not valid base64",
			Err:    err,
		}
	}

	return domain.ImagePayload{MIMEType: m[1], Data: data}, nil
}
