package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/vzhukovs/podman-desktop-sub003/app"
)

func newApp() app.App {
	a, err := app.New()
	cobra.CheckErr(err)
	return a
}

// signalContext returns a context that is cancelled on interrupt.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}
