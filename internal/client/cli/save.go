package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/abhishekk-y16/KisanMitra/internal/client/iocli"
	"github.com/abhishekk-y16/KisanMitra/internal/models"
)

func newSaveCmd(cio iocli.IO, opts *Options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "save <collection>",
		Short: "Capture a record into the local encrypted store",
		Long:  "Reads a JSON document from --file or stdin and stores it encrypted in the\ngiven collection. The record syncs in the background; the command never\ntouches the network.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collection := args[0]
			if !slices.Contains(models.Collections(), collection) {
				return fmt.Errorf("unknown collection %q, expected one of %v", collection, models.Collections())
			}

			payload, err := readDocument(file)
			if err != nil {
				return err
			}
			if !json.Valid(payload) {
				return fmt.Errorf("document is not valid JSON")
			}

			app, err := openApp(cmd.Context(), cio, *opts)
			if err != nil {
				return err
			}
			defer app.Close()

			id, err := app.Repo.Save(cmd.Context(), collection, json.RawMessage(payload))
			if err != nil {
				return err
			}

			cio.Printf("Saved %s record %s\n", collection, id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the JSON document from a file instead of stdin")
	return cmd
}

func readDocument(file string) ([]byte, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}
