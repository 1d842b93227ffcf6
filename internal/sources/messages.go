package sources

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/wavelength-fm/kiosk/internal/config"
	"github.com/wavelength-fm/kiosk/internal/container"
)

// Message is one inbound message on the studio message board.
type Message struct {
	ID         string    `json:"id"`
	From       string    `json:"from"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}

type messagesResponse struct {
	Messages []Message `json:"messages"`
}

// SortMessages orders messages oldest first. Messages with the same
// timestamp order by ID, so two messages received in the same second always
// display in the same order across refreshes.
func SortMessages(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].ReceivedAt.Equal(msgs[j].ReceivedAt) {
			return msgs[i].ID < msgs[j].ID
		}
		return msgs[i].ReceivedAt.Before(msgs[j].ReceivedAt)
	})
}

// PruneMessages drops messages older than the history window, keeping the
// board to recent traffic. A zero history keeps everything.
func PruneMessages(msgs []Message, now time.Time, history time.Duration) []Message {
	if history <= 0 {
		return msgs
	}
	cutoff := now.Add(-history)
	kept := msgs[:0]
	for _, m := range msgs {
		if !m.ReceivedAt.Before(cutoff) {
			kept = append(kept, m)
		}
	}
	return kept
}

// MessagesFetcher builds the fetch function for the message-board container.
// The returned list is pruned to the configured history window and sorted
// oldest first with ID as the tie-break.
func MessagesFetcher(client *http.Client, cfg config.SourceConfig, msgCfg config.MessageConfig) container.Fetcher[[]Message] {
	return func(ctx context.Context) ([]Message, error) {
		var resp messagesResponse
		if err := getJSON(ctx, client, cfg.URL, cfg.APIKey, &resp); err != nil {
			return nil, err
		}

		msgs := PruneMessages(resp.Messages, time.Now(), msgCfg.History)
		SortMessages(msgs)
		return msgs, nil
	}
}
