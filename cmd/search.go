package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/reputation-cli/internal/collect"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Build a dossier for one company and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("search"); err != nil {
			return err
		}

		svc := newDossierService(cfg)

		d, err := svc.Dossier(cmd.Context(), args[0])
		if err != nil {
			if errors.Is(err, collect.ErrNotFound) {
				return eris.Errorf("no company matched %q", args[0])
			}
			return eris.Wrap(err, "build dossier")
		}

		out, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal dossier")
		}
		fmt.Println(string(out))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
