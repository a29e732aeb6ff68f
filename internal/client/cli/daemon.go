package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/abhishekk-y16/KisanMitra/internal/client/connectivity"
	"github.com/abhishekk-y16/KisanMitra/internal/client/iocli"
	"github.com/abhishekk-y16/KisanMitra/internal/client/sync"
)

func newDaemonCmd(io iocli.IO, opts *Options) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the background sync loop",
		Long:  "Keeps the sync engine running: probes backend connectivity, delivers\npending records on every interval and immediately after reconnecting.\nStops on SIGINT/SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), io, *opts)
			if err != nil {
				return err
			}
			defer app.Close()

			monitor := connectivity.NewProbeMonitor(app.Client, interval, 5*time.Second, app.Logger)
			monitor.Start(cmd.Context())
			defer monitor.Stop()

			engine := app.NewEngine(monitor, sync.Config{Interval: interval})
			if err := engine.Start(cmd.Context()); err != nil {
				return err
			}
			defer engine.Stop()

			io.Printf("Sync daemon running, interval %s. Ctrl-C to stop.\n", interval)
			<-cmd.Context().Done()
			io.Println("Stopping...")
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", sync.DefaultInterval, "Sync pass interval")
	return cmd
}
