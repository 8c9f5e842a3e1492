package main

import (
	"SkinProtocol_Backend/internal/client"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// =============================================================================
// ROOT COMMAND - interactive onboarding
// =============================================================================

type globalOptions struct {
	server  string
	timeout time.Duration
	session bool
}

func defaultServer() string {
	if s := os.Getenv("CONSULT_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

func (o *globalOptions) newClient(cmd *cobra.Command) (*client.Client, error) {
	c := client.New(o.server, client.WithTimeout(o.timeout))
	if o.session {
		if _, err := c.RequestSession(cmd.Context()); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "consult",
		Short: "Get a personalised AM/PM skincare protocol",
		Long: `Walks through the consultation (skin type, concerns, current products),
sends it to the protocol server and prints the routine.

Ctrl-C cancels a request in flight.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient(cmd)
			if err != nil {
				return err
			}
			return runInteractive(cmd.Context(), c, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	root.PersistentFlags().StringVar(&opts.server, "server", defaultServer(), "protocol server base URL (env CONSULT_SERVER)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "upper bound for one generation request")
	root.PersistentFlags().BoolVar(&opts.session, "session", false, "request an anonymous session token first (servers with AUTH_REQUIRED=true)")

	root.AddCommand(newGenerateCmd(opts))
	return root
}
