package cli

import (
	"github.com/spf13/cobra"

	"github.com/abhishekk-y16/KisanMitra/internal/client/connectivity"
	"github.com/abhishekk-y16/KisanMitra/internal/client/iocli"
	"github.com/abhishekk-y16/KisanMitra/internal/client/sync"
)

func newSyncCmd(io iocli.IO, opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run one sync pass now",
		Long:  "Attempts delivery of every pending record once, waiting out per-record\nbackoff schedules, then reports what is left.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), io, *opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Client.Health(cmd.Context()); err != nil {
				io.Println("Backend unreachable, records stay queued.")
				return nil
			}

			engine := app.NewEngine(connectivity.NewManual(true), sync.Config{})
			engine.Pass(cmd.Context())

			counts, err := app.Repo.Counts(cmd.Context())
			if err != nil {
				return err
			}
			io.Printf("Sync pass complete: %d pending, %d abandoned\n",
				counts.Pending, counts.Abandoned)
			return nil
		},
	}
}
