package sources

import (
	"context"
	"net/http"
	"strings"

	"github.com/wavelength-fm/kiosk/internal/config"
	"github.com/wavelength-fm/kiosk/internal/container"
)

// Spin is one played track from the now-playing feed.
type Spin struct {
	ID     int    `json:"id"`
	Artist string `json:"artist"`
	Song   string `json:"song"`
	Image  string `json:"image"`
}

// Show is the program the current spin belongs to.
type Show struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// NowPlaying is the snapshot a spins container holds: the most recent spin
// and the show it played under.
type NowPlaying struct {
	Spin Spin
	Show Show
}

// Summary formats the spin as a single display line.
func (np NowPlaying) Summary() string {
	if np.Spin.Song == "" {
		return "Nothing playing"
	}
	return np.Spin.Artist + " - " + np.Spin.Song
}

type spinsResponse struct {
	Items []Spin `json:"items"`
}

type showsResponse struct {
	Items []Show `json:"items"`
}

// SpinsFetcher builds the fetch function for the now-playing container. The
// endpoint serves the Spinitron-style items lists at /spins and /shows.
func SpinsFetcher(client *http.Client, cfg config.SourceConfig) container.Fetcher[NowPlaying] {
	base := strings.TrimRight(cfg.URL, "/")

	return func(ctx context.Context) (NowPlaying, error) {
		var np NowPlaying

		var spins spinsResponse
		if err := getJSON(ctx, client, base+"/spins?count=1", cfg.APIKey, &spins); err != nil {
			return np, err
		}
		if len(spins.Items) > 0 {
			np.Spin = spins.Items[0]
		}

		var shows showsResponse
		if err := getJSON(ctx, client, base+"/shows?count=1", cfg.APIKey, &shows); err != nil {
			return np, err
		}
		if len(shows.Items) > 0 {
			np.Show = shows.Items[0]
		}

		return np, nil
	}
}
