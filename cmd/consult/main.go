// Command consult walks the skin consultation on the terminal and prints the
// generated protocol.
//
// Usage:
//
//	consult                                   interactive onboarding
//	consult generate --skin-type oily --concern Acne --concern Texture
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
