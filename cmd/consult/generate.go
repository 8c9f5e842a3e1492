package main

import (
	"SkinProtocol_Backend/internal/models"
	"errors"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

// =============================================================================
// GENERATE COMMAND - one-shot, non-interactive
// =============================================================================

type generateOptions struct {
	skinType string
	concerns []string
	products string
	asJSON   bool
}

func newGenerateCmd(global *globalOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a protocol from flags without prompts",
		Example: `  consult generate --skin-type oily --concern Acne --concern Texture
  consult generate --skin-type dry --concern Redness --products "CeraVe Moisturising Cream" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.concerns) == 0 {
				return errors.New("at least one --concern is required")
			}
			c, err := global.newClient(cmd)
			if err != nil {
				return err
			}

			in := models.ConsultationInput{
				SkinType: models.SkinType(opts.skinType),
				Concerns: dedupe(opts.concerns),
				Products: opts.products,
			}
			result, err := c.Generate(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), result, opts.asJSON)
		},
	}

	cmd.Flags().StringVar(&opts.skinType, "skin-type", "", "oily, dry, combo, sensitive or normal")
	cmd.Flags().StringArrayVar(&opts.concerns, "concern", nil, "a concern such as Acne or \"Dark Spots\" (repeatable)")
	cmd.Flags().StringVar(&opts.products, "products", "", "products you already use, free text")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the protocol as JSON")
	_ = cmd.MarkFlagRequired("skin-type")

	return cmd
}

// 토글 의미와 동일하게 중복 제거
func dedupe(concerns []string) []string {
	var in models.ConsultationInput
	for _, c := range concerns {
		if !in.HasConcern(c) {
			in.Concerns = in.ToggleConcern(c)
		}
	}
	return in.Concerns
}

func writeResult(w io.Writer, result *models.ProtocolResult, asJSON bool) error {
	if !asJSON {
		renderProtocol(w, result)
		return nil
	}
	out, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
