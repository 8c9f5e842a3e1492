package main

import (
	"SkinProtocol_Backend/internal/models"
	"SkinProtocol_Backend/internal/onboarding"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type protocolClient interface {
	Generate(ctx context.Context, in models.ConsultationInput) (*models.ProtocolResult, error)
}

var errInputClosed = errors.New("input closed before the consultation finished")

// runInteractive drives the onboarding reducer from line input until a
// protocol is printed.
func runInteractive(ctx context.Context, c protocolClient, r io.Reader, w io.Writer) error {
	lines := bufio.NewScanner(r)
	readLine := func(prompt string) (string, error) {
		fmt.Fprint(w, prompt)
		if !lines.Scan() {
			if err := lines.Err(); err != nil {
				return "", err
			}
			return "", errInputClosed
		}
		return strings.TrimSpace(lines.Text()), nil
	}

	fmt.Fprintln(w, "Skin consultation: three quick questions, then your AM/PM protocol.")
	s := onboarding.Reduce(onboarding.Initial(), onboarding.Start{})

	for {
		switch s.Step {
		case onboarding.StepSkinType:
			fmt.Fprintln(w, "\n[1/3] Skin profile")
			types := models.SkinTypes()
			for i, t := range types {
				fmt.Fprintf(w, "  %d) %-12s %s\n", i+1, t.Name, t.Description)
			}
			line, err := readLine("Choose 1-5: ")
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 || n > len(types) {
				fmt.Fprintln(w, "Please enter a number from the list.")
				continue
			}
			s = onboarding.Reduce(s, onboarding.SelectSkinType{SkinType: types[n-1].Key})
			s = onboarding.Reduce(s, onboarding.Next{})

		case onboarding.StepConcerns:
			fmt.Fprintln(w, "\n[2/3] Primary concerns")
			for i, c := range models.Concerns {
				mark := " "
				if s.Input.HasConcern(c) {
					mark = "x"
				}
				fmt.Fprintf(w, "  [%s] %d) %s\n", mark, i+1, c)
			}
			line, err := readLine("Toggle numbers (e.g. 1 5), Enter to continue, b to go back: ")
			if err != nil {
				return err
			}
			switch {
			case line == "b":
				s = onboarding.Reduce(s, onboarding.Back{})
			case line == "":
				if !onboarding.CanContinue(s) {
					fmt.Fprintln(w, "Select at least one concern.")
					continue
				}
				s = onboarding.Reduce(s, onboarding.Next{})
			default:
				for _, field := range strings.Fields(line) {
					n, err := strconv.Atoi(field)
					if err != nil || n < 1 || n > len(models.Concerns) {
						fmt.Fprintf(w, "Ignoring %q.\n", field)
						continue
					}
					s = onboarding.Reduce(s, onboarding.ToggleConcern{Concern: models.Concerns[n-1]})
				}
			}

		case onboarding.StepProducts:
			prompt := "Products you already use (Enter for none, b to go back): "
			if s.Err != nil {
				fmt.Fprintf(w, "\nCould not generate your protocol: %v\n", s.Err)
				prompt = "Press Enter to retry, or type a new product list: "
			} else {
				fmt.Fprintln(w, "\n[3/3] Current routine")
			}
			line, err := readLine(prompt)
			if err != nil {
				return err
			}
			if line == "b" {
				s = onboarding.Reduce(s, onboarding.Back{})
				continue
			}
			if s.Err == nil || line != "" {
				s = onboarding.Reduce(s, onboarding.SetProducts{Products: line})
			}
			s = onboarding.Reduce(s, onboarding.Submit{})

		case onboarding.StepLoading:
			fmt.Fprintln(w, "\nAnalysing your skin profile and checking for ingredient conflicts...")
			result, err := c.Generate(ctx, s.Input)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s = onboarding.Reduce(s, onboarding.GenerationFailed{Err: err})
				continue
			}
			s = onboarding.Reduce(s, onboarding.GenerationSucceeded{Result: result})

		case onboarding.StepResult:
			renderProtocol(w, s.Result)
			return nil

		default:
			return fmt.Errorf("unexpected onboarding step %s", s.Step)
		}
	}
}
