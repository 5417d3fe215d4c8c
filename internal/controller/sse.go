package controller

import (
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// Hub fans published snapshots out to every connected stream. Slow clients
// miss messages instead of blocking the publisher.
type Hub struct {
	mu     sync.Mutex
	subs   map[chan []byte]struct{}
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		subs:   make(map[chan []byte]struct{}),
		buffer: buffer,
	}
}

// Broadcast matches the pubsub handler signature so the hub can sit behind a
// subscriber.
func (h *Hub) Broadcast(msg []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

func (h *Hub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, h.buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
		})
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// SSEMarkets godoc
// @Summary Stream market snapshots
// @Description Server-Sent Events endpoint; one "markets" event per committed snapshot
// @Tags markets
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Router /api/markets/stream [get]
func (c *Controller) SSEMarkets(hub *Hub) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ch, unsubscribe := hub.Subscribe()
		defer unsubscribe()

		ctx.Header("Content-Type", "text/event-stream")
		ctx.Header("Cache-Control", "no-cache")
		ctx.Header("Connection", "keep-alive")
		ctx.Status(http.StatusOK)

		c.sendMarkets(ctx)

		// Each message only signals a commit; the latest snapshot is sent.
		ctx.Stream(func(w io.Writer) bool {
			select {
			case _, ok := <-ch:
				if !ok {
					return false
				}
				c.sendMarkets(ctx)
				return true
			case <-ctx.Request.Context().Done():
				return false
			}
		})
	}
}

func (c *Controller) sendMarkets(ctx *gin.Context) {
	ctx.SSEvent("markets", newMarketsResponse(c.marketData.Snapshot(), c.currency))
	ctx.Writer.Flush()
}
