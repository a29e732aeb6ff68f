package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhishekk-y16/KisanMitra/internal/client/iocli"
	"github.com/abhishekk-y16/KisanMitra/internal/client/storage"
	"github.com/abhishekk-y16/KisanMitra/internal/validation"
	"github.com/abhishekk-y16/KisanMitra/pkg/api"
)

func newEnrollCmd(io iocli.IO, opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "enroll <device-id>",
		Short: "Enroll this device against the backend",
		Long:  "Trades the shared enrollment key for a device token. The token is stored\nlocally and attached to every record submission.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deviceID := args[0]
			if err := validation.ValidateDeviceID(deviceID); err != nil {
				return err
			}

			enrollmentKey, err := io.ReadPassword("Enrollment key: ")
			if err != nil {
				return fmt.Errorf("failed to read enrollment key: %w", err)
			}

			app, err := openApp(cmd.Context(), io, *opts)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Client.Enroll(cmd.Context(), api.EnrollRequest{
				DeviceID:      deviceID,
				EnrollmentKey: enrollmentKey,
			})
			if err != nil {
				return err
			}

			err = app.Storage.SaveAuth(cmd.Context(), &storage.AuthData{
				DeviceID:    deviceID,
				AccessToken: resp.AccessToken,
				ExpiresAt:   time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
			})
			if err != nil {
				return fmt.Errorf("failed to store device token: %w", err)
			}

			io.Printf("Device %s enrolled, token valid for %s\n",
				deviceID, time.Duration(resp.ExpiresIn)*time.Second)
			return nil
		},
	}
}
