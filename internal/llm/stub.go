package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// StubGenerator answers locally with a canned protocol keyed on the
// "Skin:" and "Concerns:" lines of the prompt. It never calls the network.
type StubGenerator struct {
	delay time.Duration
}

func NewStubGenerator(delay time.Duration) *StubGenerator {
	return &StubGenerator{delay: delay}
}

func (s *StubGenerator) Name() string {
	return "stub"
}

var (
	skinLine     = regexp.MustCompile(`(?m)^Skin:\s*(.*)$`)
	concernsLine = regexp.MustCompile(`(?m)^Concerns:\s*(.*)$`)
)

type stubStep struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Note       string `json:"note"`
	Example    string `json:"example"`
	PriceRange string `json:"price_range"`
}

type stubProtocol struct {
	Analysis  string     `json:"analysis"`
	AMRoutine []stubStep `json:"am_routine"`
	PMRoutine []stubStep `json:"pm_routine"`
	Tips      []string   `json:"tips"`
}

func (s *StubGenerator) Generate(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", transportError("stub", ctx.Err())
		}
	}
	if err := ctx.Err(); err != nil {
		return "", transportError("stub", err)
	}

	skin := firstMatch(skinLine, prompt)
	if skin == "" {
		skin = "normal"
	}
	concerns := firstMatch(concernsLine, prompt)

	out := stubFor(strings.ToLower(skin))
	out.Analysis = fmt.Sprintf("Your skin presents characteristics of %s skin", skin)
	if concerns != "" {
		out.Analysis += fmt.Sprintf(" with notable concerns around %s", concerns)
	}
	out.Analysis += ". The regimen below corrects underlying issues gently while protecting the barrier."

	if !wantJSON {
		return out.Analysis, nil
	}
	text, err := sonic.MarshalString(out)
	if err != nil {
		return "", fmt.Errorf("StubGenerator.Generate(): %w", err)
	}
	return text, nil
}

func firstMatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func stubFor(skin string) stubProtocol {
	switch skin {
	case "dry", "sensitive":
		return stubProtocol{
			AMRoutine: []stubStep{
				{Name: "Milky Cream Cleanser", Type: "Cleanse", Note: "Avoid hot water.", Example: "Cetaphil Gentle Skin Cleanser", PriceRange: "₹350–₹650"},
				{Name: "Polyglutamic Acid Serum", Type: "Hydrate", Note: "Binds water in the upper layers.", Example: "The Derma Co 2% Polyglutamic Acid Serum", PriceRange: "₹499–₹699"},
				{Name: "Mineral SPF 30+", Type: "Protect", Note: "Zinc oxide is calming for redness.", Example: "Re'equil Mineral Based Sunscreen SPF 50", PriceRange: "₹545–₹795"},
			},
			PMRoutine: []stubStep{
				{Name: "Oat Cleansing Balm", Type: "First Cleanse", Note: "Gentle on the barrier.", Example: "Dot & Key Cica Calming Cleansing Balm", PriceRange: "₹395–₹595"},
				{Name: "Azelaic Acid 10%", Type: "Treat", Note: "Targets redness and texture.", Example: "Minimalist 10% Azelaic Acid Serum", PriceRange: "₹549–₹699"},
				{Name: "Ceramide Cream", Type: "Repair", Note: "Restores barrier lipids.", Example: "CeraVe Moisturising Cream", PriceRange: "₹1050–₹1450"},
			},
			Tips: []string{
				"Avoid fragrance and essential oils.",
				"Patch-test any new product for three nights.",
			},
		}
	default:
		return stubProtocol{
			AMRoutine: []stubStep{
				{Name: "pH-Balanced Gel Cleanser", Type: "Cleanser", Note: "Removes overnight oil without stripping.", Example: "CeraVe Foaming Cleanser", PriceRange: "₹399–₹799"},
				{Name: "Niacinamide 10% Serum", Type: "Treatment", Note: "Regulates sebum and refines texture.", Example: "Minimalist 10% Niacinamide Serum", PriceRange: "₹549–₹649"},
				{Name: "Broad-Spectrum SPF 50", Type: "SPF", Note: "Prevents pigmentation and post-acne marks.", Example: "Lakme Sun Expert SPF 50 Gel", PriceRange: "₹250–₹450"},
			},
			PMRoutine: []stubStep{
				{Name: "Micellar Cleanser", Type: "Cleanser", Note: "Dissolves sunscreen and debris.", Example: "Garnier Micellar Cleansing Water", PriceRange: "₹199–₹399"},
				{Name: "Salicylic Acid 2%", Type: "Treatment", Note: "Clears pores. Start three nights a week.", Example: "Minimalist 2% Salicylic Acid Serum", PriceRange: "₹545–₹599"},
				{Name: "Lightweight Gel Moisturizer", Type: "Moisturizer", Note: "Hydrates without heaviness.", Example: "Neutrogena Hydro Boost Water Gel", PriceRange: "₹799–₹1099"},
			},
			Tips: []string{
				"Do not layer salicylic acid with retinoids on the same night.",
				"Reapply sunscreen every 2–3 hours outdoors.",
			},
		}
	}
}
