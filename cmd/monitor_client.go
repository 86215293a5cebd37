package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/precieux0/instagram-repo2/internal/application"
)

const maxMonitorResponseBytes = 1 << 20

func fetchStatus(ctx context.Context, client *http.Client, baseURL string) (application.Status, error) {
	var status application.Status
	if err := callMonitor(ctx, client, http.MethodGet, baseURL, "/status", &status); err != nil {
		return application.Status{}, err
	}
	return status, nil
}

func requestReconnect(ctx context.Context, client *http.Client, baseURL string) (application.ReconnectResult, error) {
	var result application.ReconnectResult
	if err := callMonitor(ctx, client, http.MethodPost, baseURL, "/reconnect", &result); err != nil {
		return application.ReconnectResult{}, err
	}
	return result, nil
}

func callMonitor(ctx context.Context, client *http.Client, method, baseURL, path string, out any) error {
	endpoint := strings.TrimRight(baseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMonitorResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s returned %s", path, resp.Status)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
