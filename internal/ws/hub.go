package ws

import (
	"context"
	"sync"

	"numguru/internal/observability"
	"numguru/internal/pkg/logger"

	"go.uber.org/zap"
)

type message struct {
	topic string
	data  []byte
}

// Hub fans messages out to the clients subscribed to a topic. The topic of a
// payment subscriber is its order id. One goroutine (Run) owns all writes to
// the subscriber map.
type Hub struct {
	topics     map[string]map[*Client]struct{}
	publish    chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *zap.Logger
	metrics    *observability.Metrics
}

func NewHub(l *zap.Logger, metrics *observability.Metrics) *Hub {
	return &Hub{
		topics:     make(map[string]map[*Client]struct{}),
		publish:    make(chan message, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger.OrNop(l),
		metrics:    metrics,
	}
}

// Run serves the hub until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			subs, ok := h.topics[client.topic]
			if !ok {
				subs = make(map[*Client]struct{})
				h.topics[client.topic] = subs
			}
			subs[client] = struct{}{}
			total := h.countLocked()
			h.mutex.Unlock()
			h.metrics.SetWSClients(total)
			h.logger.Debug("ws connected", zap.String("topic", client.topic), zap.Int("total_clients", total))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case msg := <-h.publish:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.topics[msg.topic]))
			for c := range h.topics[msg.topic] {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- msg.data:
				default:
					h.logger.Warn("ws client dropped", zap.String("topic", msg.topic), zap.String("reason", "buffer_full"))
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	if subs, ok := h.topics[client.topic]; ok {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			close(client.send)
		}
		if len(subs) == 0 {
			delete(h.topics, client.topic)
		}
	}
	total := h.countLocked()
	h.mutex.Unlock()
	h.metrics.SetWSClients(total)
	h.logger.Debug("ws disconnected", zap.String("topic", client.topic), zap.Int("total_clients", total))
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	for topic, subs := range h.topics {
		for c := range subs {
			close(c.send)
		}
		delete(h.topics, topic)
	}
	h.mutex.Unlock()
	h.metrics.SetWSClients(0)
}

func (h *Hub) countLocked() int {
	n := 0
	for _, subs := range h.topics {
		n += len(subs)
	}
	return n
}

func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case <-h.done:
		close(client.send)
		return
	default:
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues data for the subscribers of topic. It never blocks; when
// the queue is full the message is dropped.
func (h *Hub) Publish(topic string, data []byte) {
	if h == nil || topic == "" {
		return
	}
	select {
	case h.publish <- message{topic: topic, data: data}:
	default:
		h.logger.Warn("ws publish dropped", zap.String("topic", topic), zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.countLocked()
}
