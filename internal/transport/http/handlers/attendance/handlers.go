package attendancehandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrconsole/internal/domain/attendance"
	"hrconsole/internal/domain/auth"
	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
	"hrconsole/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
	Names   auth.NameLookup
}

func NewHandler(service *attendance.Service, names auth.NameLookup) *Handler {
	return &Handler{Service: service, Names: names}
}

var errorCases = []shared.ErrorCase{
	{Target: attendance.ErrNotFound, Status: http.StatusNotFound, Code: "not_found", Message: "attendance entry not found"},
	{Target: attendance.ErrAlreadyClosed, Status: http.StatusConflict, Code: "already_closed", Message: "this entry already has an exit time"},
	{Target: attendance.ErrExitBeforeEntry, Status: http.StatusBadRequest, Code: "invalid_exit", Message: "exit time must be later than the entry time"},
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Delete("/{entryID}", h.handleDelete)
		r.Post("/{entryID}/exit", h.handleExit)
	})
}

type entryView struct {
	attendance.Entry
	attendance.Resolution
	WorkedMinutes int  `json:"workedMinutes"`
	CanEdit       bool `json:"canEdit"`
}

func view(e attendance.Entry, actor *auth.Actor) entryView {
	return entryView{
		Entry:         e,
		Resolution:    attendance.ResolveStatus(e),
		WorkedMinutes: int(attendance.WorkedDuration(e) / time.Minute),
		CanEdit:       auth.CanMutate(actor, e),
	}
}

type entryPayload struct {
	EmployeeID string `json:"employeeId"`
	EntryTime  string `json:"entryTime"`
}

type exitPayload struct {
	ExitTime string `json:"exitTime"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ListFilter{EmployeeID: r.URL.Query().Get("employeeId")}
	v := shared.NewValidator()
	filter.OpenOnly, _ = v.Bool("open", r.URL.Query().Get("open"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	items, err := h.Service.List(r.Context(), filter, shared.ParsePagination(r, shared.DefaultLimit, shared.MaxLimit))
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	actor := middleware.GetActor(r.Context())
	out := make([]entryView, 0, len(items))
	for _, e := range items {
		out = append(out, view(e, actor))
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload entryPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "is required")
	var entryTime time.Time
	if payload.EntryTime != "" {
		entryTime, _ = v.DateTime("entryTime", payload.EntryTime)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	actor := middleware.GetActor(r.Context())
	e, err := h.Service.Create(r.Context(), actor, attendance.Input{EmployeeID: payload.EmployeeID, EntryTime: entryTime})
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.Created(w, view(e, actor), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExit(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "entryID")
	if !ok {
		return
	}
	var payload exitPayload
	if r.ContentLength != 0 && !shared.DecodeJSON(w, r, &payload) {
		return
	}
	var at time.Time
	if payload.ExitTime != "" {
		v := shared.NewValidator()
		at, _ = v.DateTime("exitTime", payload.ExitTime)
		if v.Reject(w, middleware.GetRequestID(r.Context())) {
			return
		}
	}

	actor := middleware.GetActor(r.Context())
	e, err := h.Service.RecordExit(r.Context(), actor, id, at)
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.Success(w, view(e, actor), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "entryID")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.NoContent(w)
}
