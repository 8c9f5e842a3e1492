package protocol

import (
	"SkinProtocol_Backend/internal/models"
	"strings"
)

// NoProductsPlaceholder replaces an empty current-products field.
const NoProductsPlaceholder = "None/Starting Fresh"

const promptHeader = `You are a celebrity dermatologist.
Return **only valid JSON**, with no markdown, no code fences, no examples outside the JSON, and no commentary.

STRUCTURE:
{
  "analysis": "string",
  "am_routine": [
    { "name": "string", "type": "string", "note": "string", "example": "string", "price_range": "string" }
  ],
  "pm_routine": [
    { "name": "string", "type": "string", "note": "string", "example": "string", "price_range": "string" }
  ],
  "tips": ["string"]
}

CONFLICT RULES:
- Read the products the user already uses and identify their active ingredients.
- Do NOT recommend any active that clinically conflicts with an active the user already uses
  (e.g. retinoids with AHA/BHA or benzoyl peroxide in the same routine, vitamin C with retinoids).
- If a current product already covers a step, keep it or recommend a replacement; never duplicate an active.

PRODUCT RULES:
- "example" must be a **real product widely available in India**.
- Price ranges must be realistic for India (e.g., "₹250–₹450", "₹799–₹1299").
- Avoid rare or prescription-only products.
- Do NOT include links, availability notes, or store names — ONLY the brand product name and price range.

STYLE RULES:
- Keep product names concise.
- Output strictly valid JSON.
- No additional text before or after the JSON.
`

// BuildPrompt renders the model prompt for in. It is pure: equal inputs
// give byte-identical prompts.
func BuildPrompt(in models.ConsultationInput) string {
	products := singleLine(in.Products)
	if products == "" {
		products = NoProductsPlaceholder
	}

	concerns := make([]string, 0, len(in.Concerns))
	for _, c := range in.Concerns {
		concerns = append(concerns, singleLine(c))
	}

	var b strings.Builder
	b.WriteString(promptHeader)
	b.WriteString("\nSkin: ")
	b.WriteString(singleLine(string(in.SkinType)))
	b.WriteString("\nConcerns: ")
	b.WriteString(strings.Join(concerns, ", "))
	b.WriteString("\nProducts user already uses: ")
	b.WriteString(products)
	b.WriteString("\n")
	return b.String()
}

// 사용자 입력의 줄바꿈이 프롬프트 섹션을 만들지 못하도록 한 줄로 접음
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
