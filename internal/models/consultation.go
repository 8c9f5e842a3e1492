package models

// 피부 타입 (고정 목록, 서버는 목록 밖의 값도 그대로 전달)
type SkinType string

const (
	SkinTypeOily      SkinType = "oily"
	SkinTypeDry       SkinType = "dry"
	SkinTypeCombo     SkinType = "combo"
	SkinTypeSensitive SkinType = "sensitive"
	SkinTypeNormal    SkinType = "normal"
)

// ConsultationInput is the skin profile sent to the generation endpoint.
type ConsultationInput struct {
	SkinType SkinType `json:"skinType" example:"oily"`
	Concerns []string `json:"concerns" example:"Acne,Texture"`
	Products string   `json:"products" example:"CeraVe Foaming Cleanser, Minimalist 2% Salicylic Acid"`
}

// HasConcern reports whether c is currently selected.
func (in ConsultationInput) HasConcern(c string) bool {
	for _, existing := range in.Concerns {
		if existing == c {
			return true
		}
	}
	return false
}

// ToggleConcern flips membership of c and returns the new concern set.
// The receiver's slice is never modified.
func (in ConsultationInput) ToggleConcern(c string) []string {
	next := make([]string, 0, len(in.Concerns)+1)
	removed := false
	for _, existing := range in.Concerns {
		if existing == c {
			removed = true
			continue
		}
		next = append(next, existing)
	}
	if !removed {
		next = append(next, c)
	}
	return next
}

// Clone returns a copy that shares no memory with in.
func (in ConsultationInput) Clone() ConsultationInput {
	out := in
	if in.Concerns != nil {
		out.Concerns = make([]string, len(in.Concerns))
		copy(out.Concerns, in.Concerns)
	}
	return out
}
