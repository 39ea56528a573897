package absencehandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrconsole/internal/domain/absence"
	"hrconsole/internal/domain/auth"
	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
	"hrconsole/internal/transport/http/shared"
)

type Handler struct {
	Service *absence.Service
	Names   auth.NameLookup
}

func NewHandler(service *absence.Service, names auth.NameLookup) *Handler {
	return &Handler{Service: service, Names: names}
}

var errorCases = []shared.ErrorCase{
	{Target: absence.ErrNotFound, Status: http.StatusNotFound, Code: "not_found", Message: "absence not found"},
	{Target: absence.ErrInvalidRange, Status: http.StatusBadRequest, Code: "invalid_range", Message: "the end date must be on or after the start date"},
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/absences", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Put("/{absenceID}", h.handleUpdate)
		r.Delete("/{absenceID}", h.handleDelete)
	})
}

type absenceView struct {
	absence.Absence
	*absence.Duration
	CanEdit bool `json:"canEdit"`
}

func view(a absence.Absence, actor *auth.Actor) absenceView {
	out := absenceView{Absence: a, CanEdit: auth.CanMutate(actor, a)}
	d, err := absence.ResolveDuration(a)
	if err != nil {
		slog.Warn("absence has inverted range", "id", a.ID, "err", err)
		return out
	}
	out.Duration = &d
	return out
}

type absencePayload struct {
	EmployeeID string `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Justified  bool   `json:"justified"`
	Reason     string `json:"reason"`
}

func (p absencePayload) input(w http.ResponseWriter, r *http.Request) (absence.Input, bool) {
	v := shared.NewValidator()
	v.Required("employeeId", p.EmployeeID, "is required")
	start, _ := v.Date("startDate", p.StartDate)
	end, _ := v.Date("endDate", p.EndDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return absence.Input{}, false
	}
	return absence.Input{EmployeeID: p.EmployeeID, StartDate: start, EndDate: end, Justified: p.Justified, Reason: p.Reason}, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	filter := absence.ListFilter{EmployeeID: r.URL.Query().Get("employeeId")}
	v := shared.NewValidator()
	if justified, ok := v.Bool("justified", r.URL.Query().Get("justified")); ok {
		filter.Justified = &justified
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	items, err := h.Service.List(r.Context(), filter, shared.ParsePagination(r, shared.DefaultLimit, shared.MaxLimit))
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	out := make([]absenceView, 0, len(items))
	for _, a := range items {
		out = append(out, view(a, actor))
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload absencePayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	in, ok := payload.input(w, r)
	if !ok {
		return
	}
	actor := middleware.GetActor(r.Context())
	a, err := h.Service.Create(r.Context(), actor, in)
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.Created(w, view(a, actor), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "absenceID")
	if !ok {
		return
	}
	var payload absencePayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	in, ok := payload.input(w, r)
	if !ok {
		return
	}
	actor := middleware.GetActor(r.Context())
	a, err := h.Service.Update(r.Context(), actor, id, in)
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.Success(w, view(a, actor), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "absenceID")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.NoContent(w)
}
