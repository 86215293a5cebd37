package cmd

import (
	"encoding/json"
	"fmt"

	statusadapter "github.com/precieux0/instagram-repo2/internal/adapters/render/status"
	"github.com/precieux0/instagram-repo2/internal/application"
	"github.com/spf13/cobra"
)

func newStatusCmd(load appLoader) *cobra.Command {
	var (
		asJSON  bool
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running bot's lifecycle state and daily counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load(cmd)
			if err != nil {
				return err
			}
			if baseURL == "" {
				baseURL = app.monitorURL()
			}

			status, err := fetchStatus(cmd.Context(), app.httpClient, baseURL)
			if err != nil {
				return fmt.Errorf("fetch status: %w", err)
			}

			return writeStatusOutput(cmd, app, status, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw status record as JSON")
	cmd.Flags().StringVar(&baseURL, "url", "", "Monitoring server URL (default derived from listen)")

	return cmd
}

func writeStatusOutput(cmd *cobra.Command, app *app, status application.Status, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	botCfg, err := app.cfg.BotConfig()
	if err != nil {
		return err
	}

	rendered, err := app.statusRenderer(status, statusadapter.RenderOptions{
		Now:     app.now(),
		Budgets: botCfg.Budgets,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
