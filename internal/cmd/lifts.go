package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func NewLiftsCmd(app *ResortCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lifts",
		Short: "List the configured lift collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			liftStore, closeStore, err := app.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			lifts, err := liftStore.Lifts(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tDIFFICULTY\tWAIT")
			for _, l := range lifts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%dm\n",
					l.ID, l.Name, l.Type, l.Status, l.Difficulty, l.WaitTime)
			}
			return w.Flush()
		},
	}

	return cmd
}
