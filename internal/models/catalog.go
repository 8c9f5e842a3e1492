package models

type SkinTypeInfo struct {
	Key         SkinType `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

var skinTypes = map[SkinType]SkinTypeInfo{
	SkinTypeOily: {
		Key:         SkinTypeOily,
		Name:        "Oily",
		Description: "Shine across the face by midday, enlarged pores, prone to congestion.",
	},
	SkinTypeDry: {
		Key:         SkinTypeDry,
		Name:        "Dry",
		Description: "Tightness after cleansing, flaking patches, dull surface.",
	},
	SkinTypeCombo: {
		Key:         SkinTypeCombo,
		Name:        "Combination",
		Description: "Oily T-zone with normal to dry cheeks.",
	},
	SkinTypeSensitive: {
		Key:         SkinTypeSensitive,
		Name:        "Sensitive",
		Description: "Reacts easily with stinging, redness or itching.",
	},
	SkinTypeNormal: {
		Key:         SkinTypeNormal,
		Name:        "Normal",
		Description: "Balanced, rarely reactive, few visible concerns.",
	},
}

// 화면 표시 순서
var skinTypeOrder = []SkinType{
	SkinTypeOily,
	SkinTypeDry,
	SkinTypeCombo,
	SkinTypeSensitive,
	SkinTypeNormal,
}

// Concerns lists the selectable concerns in display order.
var Concerns = []string{
	"Acne",
	"Fine Lines",
	"Dark Spots",
	"Redness",
	"Texture",
	"Dullness",
}

func GetSkinType(key SkinType) (SkinTypeInfo, bool) {
	info, exists := skinTypes[key]
	return info, exists
}

// SkinTypes returns the catalog in display order.
func SkinTypes() []SkinTypeInfo {
	out := make([]SkinTypeInfo, 0, len(skinTypeOrder))
	for _, key := range skinTypeOrder {
		out = append(out, skinTypes[key])
	}
	return out
}

func IsKnownConcern(name string) bool {
	for _, c := range Concerns {
		if c == name {
			return true
		}
	}
	return false
}
