package notificationshandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrconsole/internal/domain/notifications"
	"hrconsole/internal/domain/refresh"
	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
)

const defaultHeartbeat = 25 * time.Second

// Subscriber hands out refresh signals to a stream.
type Subscriber interface {
	Subscribe() (<-chan refresh.Signal, func())
}

type Handler struct {
	Service   *notifications.Service
	Bus       Subscriber
	Heartbeat time.Duration
}

func NewHandler(service *notifications.Service, bus Subscriber) *Handler {
	return &Handler{Service: service, Bus: bus, Heartbeat: defaultHeartbeat}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/summary", h.handleSummary)
		r.Get("/stream", h.handleStream)
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Refresh(r.Context()), middleware.GetRequestID(r.Context()))
}

// handleStream pushes a summary on connect and again after every refresh
// signal, as server-sent events, until the client goes away.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		slog.Debug("stream write deadline not cleared", "err", err)
	}

	signals, cancel := h.Bus.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	if err := writeSummary(w, rc, h.Service.Refresh(ctx)); err != nil {
		return
	}

	heartbeat := h.Heartbeat
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-signals:
			if !ok {
				return
			}
			if err := writeSummary(w, rc, h.Service.Refresh(ctx)); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

func writeSummary(w http.ResponseWriter, rc *http.ResponseController, summary notifications.Summary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		slog.Warn("notification summary encode failed", "err", err)
		return err
	}
	if _, err := fmt.Fprintf(w, "event: summary\ndata: %s\n\n", payload); err != nil {
		return err
	}
	return rc.Flush()
}
