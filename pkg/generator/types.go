package generator

import "time"

const (
	// DefaultModel は画像編集に使う Gemini モデルです。
	DefaultModel = "gemini-2.5-flash-image-preview"
	// DefaultSeed は再現性のために固定するシード値です。
	DefaultSeed int64 = 42
	// MinImagePayloadChars はダミー画像を成功扱いしないための base64 文字数の下限です。
	// この値を超えた InlineData だけを採用します。
	MinImagePayloadChars = 500

	personLabel       = "IMAGE_1 (PERSON):"
	garmentLabel      = "IMAGE_2 (GARMENT):"
	instructionHeader = "\n\n**INSTRUCTIONS:**\n"
)

// GeneratorConfig は GeminiTryOnGenerator の設定です。
type GeneratorConfig struct {
	Model string
	// Seed が nil の場合は DefaultSeed を使います。
	Seed *int64
	// Timeout は1回の呼び出しごとの上限です。0 なら無制限です。
	Timeout time.Duration
}
