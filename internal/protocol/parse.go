package protocol

import (
	"SkinProtocol_Backend/internal/models"
	"encoding/json"

	"github.com/bytedance/sonic"
)

// ParseProtocol turns cleaned-up model text into a ProtocolResult. Every
// failure is a GenerationError of KindGenerationParse.
func ParseProtocol(text string) (*models.ProtocolResult, error) {
	cleaned := StripCodeFences(text)
	if cleaned == "" {
		return nil, newError(KindGenerationParse, "no content left after removing code fences")
	}

	if !json.Valid([]byte(cleaned)) {
		obj, ok := ExtractJSONObject(cleaned)
		if !ok {
			return nil, newError(KindGenerationParse, "model output is not valid JSON (%d bytes)", len(cleaned))
		}
		cleaned = obj
	}

	if err := ValidateShape([]byte(cleaned)); err != nil {
		return nil, &GenerationError{Kind: KindGenerationParse, Err: err}
	}

	var result models.ProtocolResult
	if err := sonic.UnmarshalString(cleaned, &result); err != nil {
		return nil, newError(KindGenerationParse, "decode protocol: %w", err)
	}
	return &result, nil
}
