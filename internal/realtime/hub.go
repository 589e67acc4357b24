package realtime

import (
	"context"

	"github.com/rs/zerolog"
)

// Hub fans change events out to connected websocket clients. It keeps one
// bus subscription per collection regardless of how many browsers are
// watching, and drops clients whose send buffer stays full.
type Hub struct {
	bus        *Bus
	logger     zerolog.Logger
	register   chan *Client
	unregister chan *Client
	broadcast  chan Change
	done       chan struct{}
	clients    map[*Client]struct{}
}

// NewHub creates a hub for the given bus.
func NewHub(bus *Bus, logger zerolog.Logger) *Hub {
	return &Hub{
		bus:        bus,
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Change, 64),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
	}
}

// Run subscribes to every collection and dispatches events until ctx is
// cancelled. Intended to run in its own goroutine from main.
func (h *Hub) Run(ctx context.Context) {
	collections := []string{CollectionDonations, CollectionMembers, CollectionPrograms, CollectionSessions}
	for _, collection := range collections {
		sub, err := h.bus.Subscribe(ctx, collection, "")
		if err != nil {
			h.logger.Error().Err(err).Str("collection", collection).Msg("hub subscribe failed")
			continue
		}
		go h.pump(ctx, sub)
	}

	for {
		select {
		case <-ctx.Done():
			// done unblocks any client stuck on register/unregister
			// before their send channels get closed here.
			close(h.done)
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case change := <-h.broadcast:
			for c := range h.clients {
				if !c.wants(change) {
					continue
				}
				select {
				case c.send <- change:
				default:
					// Klien terlalu lambat, putuskan saja.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// attach hands a client to Run; a no-op once the hub has stopped, in which
// case the client's send channel is closed so its write pump exits.
func (h *Hub) attach(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.send)
	}
}

// detach is the counterpart used on read teardown. Safe after shutdown.
func (h *Hub) detach(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) pump(ctx context.Context, sub *Subscription) {
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-sub.Events():
			if !ok {
				return
			}
			select {
			case h.broadcast <- change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-sub.Errors():
			if !ok {
				return
			}
			h.logger.Warn().Err(err).Msg("hub event decode error")
		}
	}
}
