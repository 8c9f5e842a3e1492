package models

// RoutineStep is one product or action within a morning or evening routine.
type RoutineStep struct {
	Name       string `json:"name" example:"Hypochlorous Spray"`
	Type       string `json:"type" example:"Balance"`
	Note       string `json:"note" example:"Reduces redness."`
	Example    string `json:"example,omitempty" example:"Minimalist Hypochlorous Mist"`
	PriceRange string `json:"price_range,omitempty" example:"₹399–₹599"`
}

// ProtocolResult is the structured recommendation returned to the client.
type ProtocolResult struct {
	Analysis  string        `json:"analysis"`
	AMRoutine []RoutineStep `json:"am_routine"`
	PMRoutine []RoutineStep `json:"pm_routine"`
	Tips      []string      `json:"tips"`
}
