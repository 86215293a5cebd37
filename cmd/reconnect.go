package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/precieux0/instagram-repo2/internal/application"
	"github.com/spf13/cobra"
)

var errReconnectFailed = errors.New("reconnect failed")

func newReconnectCmd(load appLoader) *cobra.Command {
	var (
		asJSON  bool
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "reconnect",
		Short: "Ask the running bot to log in again, e.g. after a security challenge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load(cmd)
			if err != nil {
				return err
			}
			if baseURL == "" {
				baseURL = app.monitorURL()
			}

			var result application.ReconnectResult
			err = runWaitSpinner(cmd.Context(), cmd.ErrOrStderr(), "Reconnecting...", func(ctx context.Context) error {
				var callErr error
				result, callErr = requestReconnect(ctx, app.httpClient, baseURL)
				return callErr
			})
			if err != nil {
				return fmt.Errorf("request reconnect: %w", err)
			}

			return writeReconnectOutput(cmd, result, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the reconnect result as JSON")
	cmd.Flags().StringVar(&baseURL, "url", "", "Monitoring server URL (default derived from listen)")

	return cmd
}

func writeReconnectOutput(cmd *cobra.Command, result application.ReconnectResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		line := fmt.Sprintf("reconnect succeeded, state: %s", result.NewStatus.Label())
		if !result.Succeeded {
			line = fmt.Sprintf("reconnect failed (%s), state: %s", result.Error, result.NewStatus.Label())
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return err
		}
	}

	if !result.Succeeded {
		return errReconnectFailed
	}
	return nil
}
