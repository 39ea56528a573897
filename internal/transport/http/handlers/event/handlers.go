package eventhandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrconsole/internal/domain/auth"
	"hrconsole/internal/domain/event"
	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
	"hrconsole/internal/transport/http/shared"
)

type Handler struct {
	Service *event.Service
	Names   auth.NameLookup
	Now     func() time.Time
}

func NewHandler(service *event.Service, names auth.NameLookup) *Handler {
	return &Handler{Service: service, Names: names, Now: time.Now}
}

var errorCases = []shared.ErrorCase{
	{Target: event.ErrNotFound, Status: http.StatusNotFound, Code: "not_found", Message: "event not found"},
	{Target: event.ErrInvalidWindow, Status: http.StatusBadRequest, Code: "invalid_window", Message: "the event must end after it starts"},
	{Target: event.ErrTitleRequired, Status: http.StatusBadRequest, Code: "validation_error", Message: "enter a title for the event"},
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{eventID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
		})
	})
}

type eventView struct {
	event.Event
	event.Resolution
	DurationLabel string `json:"durationLabel"`
	CanEdit       bool   `json:"canEdit"`
}

func view(ev event.Event, actor *auth.Actor, now time.Time) eventView {
	res := event.ResolveStatus(ev, now)
	return eventView{
		Event:         ev,
		Resolution:    res,
		DurationLabel: res.Duration.String(),
		CanEdit:       auth.CanMutate(actor, ev),
	}
}

type eventPayload struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartDateTime string `json:"startDateTime"`
	EndDateTime   string `json:"endDateTime"`
}

func (p eventPayload) input(w http.ResponseWriter, r *http.Request) (event.Input, bool) {
	v := shared.NewValidator()
	v.Required("title", p.Title, "is required")
	start, _ := v.DateTime("startDateTime", p.StartDateTime)
	end, _ := v.DateTime("endDateTime", p.EndDateTime)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return event.Input{}, false
	}
	return event.Input{Title: p.Title, Description: p.Description, StartDateTime: start, EndDateTime: end}, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	now := h.Now()
	var filter event.ListFilter
	v := shared.NewValidator()
	if active, _ := v.Bool("active", r.URL.Query().Get("active")); active {
		filter.ActiveAt = &now
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	items, err := h.Service.List(r.Context(), filter, shared.ParsePagination(r, shared.DefaultLimit, shared.MaxLimit))
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	actor := middleware.GetActor(r.Context())
	out := make([]eventView, 0, len(items))
	for _, ev := range items {
		out = append(out, view(ev, actor, now))
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "eventID")
	if !ok {
		return
	}
	ev, err := h.Service.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.Success(w, view(ev, middleware.GetActor(r.Context()), h.Now()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload eventPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	in, ok := payload.input(w, r)
	if !ok {
		return
	}
	actor := middleware.GetActor(r.Context())
	ev, err := h.Service.Create(r.Context(), actor, in)
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.Created(w, view(ev, actor, h.Now()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "eventID")
	if !ok {
		return
	}
	var payload eventPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	in, ok := payload.input(w, r)
	if !ok {
		return
	}
	actor := middleware.GetActor(r.Context())
	ev, err := h.Service.Update(r.Context(), actor, id, in)
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.Success(w, view(ev, actor, h.Now()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "eventID")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.NoContent(w)
}
