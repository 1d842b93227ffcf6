package sources

import (
	"context"
	"net/http"

	"github.com/wavelength-fm/kiosk/internal/config"
	"github.com/wavelength-fm/kiosk/internal/container"
)

// StreamStatus reports whether the broadcast stream is up and who is
// listening.
type StreamStatus struct {
	Online    bool
	Listeners int
	Title     string
}

// icecastStatus mirrors the relevant slice of an Icecast status-json.xsl
// document.
type icecastStatus struct {
	Icestats struct {
		Source *struct {
			Listeners   int    `json:"listeners"`
			Title       string `json:"title"`
			ServerName  string `json:"server_name"`
			StreamStart string `json:"stream_start"`
		} `json:"source"`
	} `json:"icestats"`
}

// StreamFetcher builds the fetch function for the stream-status container.
// A missing source block means the mount is down; that is a valid snapshot,
// not a fetch failure.
func StreamFetcher(client *http.Client, cfg config.SourceConfig) container.Fetcher[StreamStatus] {
	return func(ctx context.Context) (StreamStatus, error) {
		var doc icecastStatus
		if err := getJSON(ctx, client, cfg.URL, cfg.APIKey, &doc); err != nil {
			return StreamStatus{}, err
		}

		src := doc.Icestats.Source
		if src == nil {
			return StreamStatus{Online: false}, nil
		}
		return StreamStatus{
			Online:    true,
			Listeners: src.Listeners,
			Title:     src.Title,
		}, nil
	}
}
