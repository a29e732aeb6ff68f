package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhishekk-y16/KisanMitra/internal/client/iocli"
	"github.com/abhishekk-y16/KisanMitra/internal/client/storage"
)

func newStatusCmd(io iocli.IO, opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show enrollment and sync backlog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), io, *opts)
			if err != nil {
				return err
			}
			defer app.Close()

			auth, err := app.Storage.GetAuth(cmd.Context())
			switch {
			case errors.Is(err, storage.ErrAuthNotFound):
				io.Println("Device: not enrolled")
			case err != nil:
				return err
			case auth.ExpiresAt.Before(time.Now()):
				io.Printf("Device: %s (token expired %s, re-enroll)\n",
					auth.DeviceID, auth.ExpiresAt.Format(time.RFC3339))
			default:
				io.Printf("Device: %s (token valid until %s)\n",
					auth.DeviceID, auth.ExpiresAt.Format(time.RFC3339))
			}

			counts, err := app.Repo.Counts(cmd.Context())
			if err != nil {
				return err
			}
			io.Printf("Pending records:   %d\n", counts.Pending)
			io.Printf("Abandoned records: %d\n", counts.Abandoned)

			for _, collection := range app.Repo.Collections() {
				pending, err := app.Repo.Pending(cmd.Context(), collection)
				if err != nil {
					return err
				}
				if len(pending) > 0 {
					io.Printf("  %-12s %d pending\n", collection, len(pending))
				}
			}
			return nil
		},
	}
}
