package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhishekk-y16/KisanMitra/internal/client/iocli"
)

// NewRootCmd builds the client command tree
func NewRootCmd(io iocli.IO, version string) *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:          "kisanmitra",
		Short:        "Offline-first field data client",
		Long:         "KisanMitra captures crop diagnoses, market prices and parcel lookups offline,\nencrypts them at rest and syncs them to the backend when connectivity allows.",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.ServerURL, "server", "http://localhost:8080", "Backend server URL")
	rootCmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", defaultDataDir(), "Directory for the local database and key")
	rootCmd.PersistentFlags().BoolVar(&opts.Passphrase, "passphrase", false, "Protect the encryption key with a passphrase")
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newEnrollCmd(io, opts),
		newSaveCmd(io, opts),
		newGetCmd(io, opts),
		newStatusCmd(io, opts),
		newSyncCmd(io, opts),
		newDaemonCmd(io, opts),
	)

	return rootCmd
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".kisanmitra"
	}
	return filepath.Join(base, "kisanmitra")
}
