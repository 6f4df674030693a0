package domain

import "encoding/base64"

// ImagePayload は送受信される1枚分の画像データです。
// 生成後に変更されることはありません。
type ImagePayload struct {
	MIMEType string
	Data     []byte
}

// DataURL は画像を表示可能な data URL (data:<mime>;base64,<payload>) に変換します。
func (p ImagePayload) DataURL() string {
	return "data:" + p.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// EncodedLen は base64 エンコード後の文字数を返します。
func (p ImagePayload) EncodedLen() int {
	return base64.StdEncoding.EncodedLen(len(p.Data))
}

// GenerationRequest は1回の試着生成リクエストです。
// Person が必ず先、Garment が後に送信されます。順序の入れ替えは呼び出し側の不具合として扱います。
type GenerationRequest struct {
	Person      ImagePayload
	Garment     ImagePayload
	Instruction string
}
