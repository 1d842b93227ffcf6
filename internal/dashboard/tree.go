package dashboard

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/wavelength-fm/kiosk/internal/config"
	"github.com/wavelength-fm/kiosk/internal/sources"
	"github.com/wavelength-fm/kiosk/internal/surprise"
	"github.com/wavelength-fm/kiosk/internal/util"
	"github.com/wavelength-fm/kiosk/internal/window"
)

// Node IDs the renderer looks up. Stable so external tooling and tests can
// address windows by name.
const (
	NodeRoot     = "root"
	NodeClock    = "clock"
	NodeSpins    = "spins"
	NodeMessages = "messages"
	NodeWeather  = "weather"
	NodeStream   = "stream"
)

// transitionDuration is how long a content swap animates for.
const transitionDuration = time.Second

// maxMessageRunes caps one message line on the board.
const maxMessageRunes = 160

// surpriseNodeID names the overlay node for one surprise variant.
func surpriseNodeID(name string) string {
	return "surprise-" + name
}

// BuildTree assembles the themed window tree over the booted containers and
// binds surprise overlay nodes into the manager. rng seeds transition style
// selection; pass nil outside tests.
func BuildTree(cfg *config.Config, cs *Containers, surprises *surprise.Manager, rng *rand.Rand) (*window.Tree, error) {
	var children []*window.Node

	if cs.Clock != nil {
		n, err := window.NewSourcedNode(NodeClock, window.Fraction(0, 0, 0.5, 0.15),
			clockContent(cs))
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	if cs.Stream != nil {
		n, err := window.NewSourcedNode(NodeStream, window.Fraction(0.5, 0, 0.5, 0.15),
			streamContent(cs))
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	if cs.Spins != nil {
		n, err := window.NewSourcedNode(NodeSpins, window.Fraction(0, 0.15, 0.6, 0.45),
			spinsContent(cs))
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	if cs.Weather != nil {
		n, err := window.NewSourcedNode(NodeWeather, window.Fraction(0.6, 0.15, 0.4, 0.45),
			weatherContent(cs))
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	if cs.Messages != nil {
		n, err := window.NewSourcedNode(NodeMessages, window.Fraction(0, 0.6, 1, 0.4),
			messagesContent(cs, cfg.Messages))
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}

	for _, sc := range cfg.Surprises {
		n, err := window.NewNode(surpriseNodeID(sc.Name),
			window.AspectFit(1), window.ImageContent(sc.Art, 1))
		if err != nil {
			return nil, err
		}
		surprises.Bind(sc.Name, n)
		children = append(children, n)
	}

	root, err := window.NewNode(NodeRoot, window.Fill(), window.Composite(), children...)
	if err != nil {
		return nil, err
	}
	return window.NewTree(root, cfg.FPS, transitionDuration, rng), nil
}

func clockContent(cs *Containers) window.ContentFunc {
	return func() window.Content {
		reading := cs.Clock.Snapshot()
		return window.TextContent(reading.DateDisplay(), reading.Display())
	}
}

func spinsContent(cs *Containers) window.ContentFunc {
	return func() window.Content {
		np := cs.Spins.Snapshot()
		title := np.Show.Name
		if title == "" {
			title = "Now Playing"
		}
		return window.TextContent(title, np.Summary())
	}
}

func weatherContent(cs *Containers) window.ContentFunc {
	return func() window.Content {
		return window.TextContent("Weather", cs.Weather.Snapshot().Summary())
	}
}

func streamContent(cs *Containers) window.ContentFunc {
	return func() window.Content {
		status := cs.Stream.Snapshot()
		if !status.Online {
			return window.TextContent("Stream", "off air")
		}
		return window.TextContent("Stream",
			fmt.Sprintf("on air, %d %s", status.Listeners,
				util.Pluralize(status.Listeners, "listener", "listeners")))
	}
}

func messagesContent(cs *Containers, cfg config.MessageConfig) window.ContentFunc {
	return func() window.Content {
		return window.TextContent("Messages",
			FormatMessages(cs.Messages.Snapshot(), cfg))
	}
}

// FormatMessages renders the message board body: newest at the bottom,
// capped to the configured count, senders included only when configured.
func FormatMessages(msgs []sources.Message, cfg config.MessageConfig) string {
	if len(msgs) == 0 {
		return "No messages"
	}
	if cfg.MaxShown > 0 && len(msgs) > cfg.MaxShown {
		msgs = msgs[len(msgs)-cfg.MaxShown:]
	}

	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteByte('\n')
		}
		if cfg.RevealSenders && m.From != "" {
			b.WriteString(m.From)
			b.WriteString(": ")
		}
		b.WriteString(util.Truncate(m.Body, maxMessageRunes))
	}
	return b.String()
}
