package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/abhishekk-y16/KisanMitra/internal/client/iocli"
)

func newGetCmd(io iocli.IO, opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <id>",
		Short: "Read a stored record",
		Long:  "Decrypts a record from the local store and prints its JSON document.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, id := args[0], args[1]

			app, err := openApp(cmd.Context(), io, *opts)
			if err != nil {
				return err
			}
			defer app.Close()

			var doc json.RawMessage
			if err := app.Repo.Get(cmd.Context(), collection, id, &doc); err != nil {
				return err
			}

			pretty, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			io.Println(string(pretty))
			return nil
		},
	}
}
