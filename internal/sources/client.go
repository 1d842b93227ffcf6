// Package sources holds the fetch adapters behind each resilient container:
// Spinitron-style now-playing metadata, the message board, a weather
// snapshot, streaming-server status, and a local clock. Each adapter is a
// plain fetch function; resilience (retry, coalescing, stale snapshots)
// lives in the container that wraps it.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wavelength-fm/kiosk/internal/errors"
)

const userAgent = "kiosk-dashboard"

// getJSON performs one GET against url and decodes the JSON body into v.
// The context carries the fetch deadline; apiKey, when set, is sent as a
// bearer token.
func getJSON(ctx context.Context, client *http.Client, url, apiKey string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "Failed to build request for "+url)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "Request to "+url+" failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.ErrFetch,
			fmt.Sprintf("%s returned HTTP %d", url, resp.StatusCode),
			"Check the endpoint URL and API key")
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "Failed to decode response from "+url)
	}
	return nil
}
