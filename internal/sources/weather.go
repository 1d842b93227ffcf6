package sources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wavelength-fm/kiosk/internal/config"
	"github.com/wavelength-fm/kiosk/internal/container"
)

// Weather is one observation snapshot.
type Weather struct {
	TempC     float64 `json:"temp_c"`
	Condition string  `json:"condition"`
	WindKPH   float64 `json:"wind_kph"`
}

// Summary formats the observation as a single display line.
func (w Weather) Summary() string {
	return fmt.Sprintf("%.0f°C %s", w.TempC, w.Condition)
}

// WeatherFetcher builds the fetch function for the weather container.
func WeatherFetcher(client *http.Client, cfg config.SourceConfig) container.Fetcher[Weather] {
	return func(ctx context.Context) (Weather, error) {
		var w Weather
		if err := getJSON(ctx, client, cfg.URL, cfg.APIKey, &w); err != nil {
			return Weather{}, err
		}
		return w, nil
	}
}
