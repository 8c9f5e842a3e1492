package main

import (
	"SkinProtocol_Backend/internal/models"
	"fmt"
	"io"
	"strings"
)

func renderProtocol(w io.Writer, p *models.ProtocolResult) {
	fmt.Fprintln(w, "\n== Your Protocol ==")
	fmt.Fprintln(w, p.Analysis)

	renderRoutine(w, "AM Routine", p.AMRoutine)
	renderRoutine(w, "PM Routine", p.PMRoutine)

	if len(p.Tips) > 0 {
		fmt.Fprintln(w, "\nTips")
		for _, tip := range p.Tips {
			fmt.Fprintf(w, "  - %s\n", tip)
		}
	}
}

func renderRoutine(w io.Writer, title string, steps []models.RoutineStep) {
	fmt.Fprintf(w, "\n%s\n", title)
	for i, step := range steps {
		fmt.Fprintf(w, "  %d. %s (%s)\n", i+1, step.Name, step.Type)
		if step.Note != "" {
			fmt.Fprintf(w, "     %s\n", step.Note)
		}
		var pick []string
		if step.Example != "" {
			pick = append(pick, step.Example)
		}
		if step.PriceRange != "" {
			pick = append(pick, step.PriceRange)
		}
		if len(pick) > 0 {
			fmt.Fprintf(w, "     Pick: %s\n", strings.Join(pick, ", "))
		}
	}
}
