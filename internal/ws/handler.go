package ws

import (
	"context"
	"net/http"
	"strings"
	"time"

	"numguru/internal/delivery/http/middleware"
	"numguru/internal/domain/payment"
	"numguru/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const snapshotTimeout = 2 * time.Second

// OrderLookup reads the current state of an order for the first message a
// subscriber receives.
type OrderLookup interface {
	Get(ctx context.Context, orderID string) (payment.Order, error)
}

type Handler struct {
	hub      *Hub
	orders   OrderLookup
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler accepts browser connections from allowedOrigins only; "*"
// allows any origin. Requests without an Origin header are not browsers and
// are always accepted.
func NewHandler(hub *Hub, orders OrderLookup, allowedOrigins []string, l *zap.Logger) *Handler {
	h := &Handler{hub: hub, orders: orders, logger: logger.OrNop(l)}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/ws/payments", h.HandlePaymentsWS)
}

// HandlePaymentsWS subscribes the caller to status changes of one order.
func (h *Handler) HandlePaymentsWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	orderID := strings.TrimSpace(c.Query("order_id"))
	if orderID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "order_id is required", nil, nil)
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("ws upgrade error", zap.String("order_id", orderID), zap.Error(err))
			return
		}

		client := NewClient(h.hub, conn, orderID)
		if msg, ok := h.snapshot(orderID); ok {
			client.send <- msg
		}
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}

func (h *Handler) snapshot(orderID string) ([]byte, bool) {
	if h.orders == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	o, err := h.orders.Get(ctx, orderID)
	if err != nil {
		return nil, false
	}
	msg, err := snapshotMessage(o)
	if err != nil {
		h.logger.Warn("encode order snapshot", zap.String("order_id", orderID), zap.Error(err))
		return nil, false
	}
	return msg, true
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	allowAll := false
	for _, o := range allowed {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			allowAll = true
		}
		set[strings.ToLower(o)] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowAll {
			return true
		}
		_, ok := set[strings.ToLower(strings.TrimRight(origin, "/"))]
		return ok
	}
}
