package prompt

import (
	"fmt"
	"math"
	"strings"

	"github.com/shouni/gemini-tryon-kit/pkg/domain"
)

// Watermark は生成画像の右下に入れる透かし文字列です。
const Watermark = "Drivi.AI"

// BaseTemplate は調整なしの場合に送信する固定の指示文です。
// 呼び出しごとにバイト単位で同一でなければなりません。
const BaseTemplate = `
### TASK: VIRTUAL TRY-ON
You will receive two images. Take the garment from the second image and place it on the person from the first image, keeping the original background and adding a watermark.

### IMAGE ROLES:
- **IMAGE_1 (PERSON):** The primary image. The final output **MUST** use this person's head, hands, pants, shoes, and original background.
- **IMAGE_2 (GARMENT):** **ONLY** a source for the upper-body clothing item (the kurta/shirt).

### NON-NEGOTIABLE RULES:
1.  **START with IMAGE_1.**
2.  **IDENTIFY and COMPLETELY REMOVE** the person's original shirt. It must be 100% gone. No ghosting or transparency.
3.  **TAKE ONLY the garment** from IMAGE_2.
4.  **DISCARD EVERYTHING ELSE** from IMAGE_2, especially the mannequin. The mannequin must not appear in the final image in any form (no mannequin hands, body, or head).
5.  **PLACE the new garment onto the person** from IMAGE_1.
6.  **PRESERVE THE BACKGROUND.** The original background from IMAGE_1 must be kept intact. Do not alter or replace it.
7.  **ADD WATERMARK.** Place a small, semi-transparent watermark with the text "` + Watermark + `" in the bottom-right corner of the final image. It must be subtle and must not obscure the person or clothing.
8.  **FINAL CHECK (MANDATORY):**
    - The person's original hands from IMAGE_1 **MUST** be visible and correctly placed over the new garment.
    - The final image must be a single, complete, photorealistic person.
    - The original background from IMAGE_1 is preserved.
    - The "` + Watermark + `" watermark is present in the bottom-right corner.

Produce a single image file as the output. Do not output text.
`

const adjustmentHeader = "\n### ADDITIONAL ADJUSTMENT RULES:\n"

// Build は指示文を組み立てます。
// 有効な調整が無い場合は BaseTemplate をそのまま返します。
// opacity は 1.0 未満のときだけ、lighting は original 以外のときだけ行が追加されます。
func Build(adj *domain.Adjustments) string {
	lines := adjustmentLines(adj)
	if len(lines) == 0 {
		return BaseTemplate
	}
	return BaseTemplate + adjustmentHeader + strings.Join(lines, "\n")
}

func adjustmentLines(adj *domain.Adjustments) []string {
	var lines []string
	if op := adj.OpacityValue(); op < domain.MaxOpacity {
		lines = append(lines, fmt.Sprintf(
			"- **Opacity:** The placed garment should have an opacity of about %d%%, making it appear semi-transparent.",
			int(math.Round(op*100)),
		))
	}
	if l := adj.LightingValue(); l != domain.LightingOriginal {
		lines = append(lines, fmt.Sprintf(
			"- **Lighting:** The overall lighting of the final composed image should be made noticeably %s.",
			l,
		))
	}
	return lines
}
