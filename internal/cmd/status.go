package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"alpenworks.io/resort-services/internal/resort"
)

func NewStatusCmd(app *ResortCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Summarize lift availability",
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

			counts := map[resort.Status]int{}
			var totalWait int
			for _, l := range lifts {
				counts[l.Status]++
				if l.Status == resort.StatusOpen {
					totalWait += l.WaitTime
				}
			}

			out := cmd.OutOrStdout()
			for _, status := range resort.AllStatuses {
				fmt.Fprintf(out, "%-8s %d\n", status, counts[status])
			}
			if open := counts[resort.StatusOpen]; open > 0 {
				fmt.Fprintf(out, "average wait on open lifts: %dm\n", totalWait/open)
			}
			return nil
		},
	}

	return cmd
}
