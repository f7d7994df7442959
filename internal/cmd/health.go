package cmd

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func NewHealthCmd(app *ResortCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the resort-web health endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Listen == "" {
				return fmt.Errorf("config %s has no listen_address", app.ConfigPath)
			}

			client := &http.Client{Timeout: 5 * time.Second}
			resp, err := client.Get("http://" + hostFor(cfg.Listen) + "/healthz")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("healthz: status %d", resp.StatusCode)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s", body)
			return nil
		},
	}

	return cmd
}

// hostFor fills in localhost when the service binds every interface,
// e.g. ":8080".
func hostFor(listen string) string {
	if listen[0] == ':' {
		return "localhost" + listen
	}
	return listen
}
