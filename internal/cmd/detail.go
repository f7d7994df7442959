package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"alpenworks.io/resort-services/internal/resort"
)

func NewDetailCmd(app *ResortCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detail <lift-id>",
		Short: "Inspect a single lift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			liftStore, closeStore, err := app.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			l, err := liftStore.Lift(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", l.Name, l.ID)
			fmt.Fprintf(out, "  type:        %s\n", l.Type)
			fmt.Fprintf(out, "  status:      %s\n", l.Status)
			fmt.Fprintf(out, "  difficulty:  %s\n", l.Difficulty)
			fmt.Fprintf(out, "  wait:        %d minutes\n", l.WaitTime)
			fmt.Fprintf(out, "  capacity:    %d/hour (load %d)\n", l.Capacity, l.CurrentLoad)
			fmt.Fprintf(out, "  route:       %d points, anchor (%.0f, %.0f)\n",
				len(l.Path), l.Anchor().X, l.Anchor().Y)
			fmt.Fprintf(out, "  svg path:    %s\n", resort.PathData(l.Path))
			if l.Description != "" {
				fmt.Fprintf(out, "  description: %s\n", l.Description)
			}
			if l.WebcamURL != "" {
				fmt.Fprintf(out, "  webcam:      %s\n", l.WebcamURL)
			}
			return nil
		},
	}

	return cmd
}
