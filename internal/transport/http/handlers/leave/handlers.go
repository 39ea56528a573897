package leavehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrconsole/internal/domain/auth"
	"hrconsole/internal/domain/leave"
	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
	"hrconsole/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Names   auth.NameLookup
}

func NewHandler(service *leave.Service, names auth.NameLookup) *Handler {
	return &Handler{Service: service, Names: names}
}

var errorCases = []shared.ErrorCase{
	{Target: leave.ErrNotFound, Status: http.StatusNotFound, Code: "not_found", Message: "leave request not found"},
	{Target: leave.ErrDecisionForbidden, Status: http.StatusForbidden, Code: "forbidden", Message: "only supervisors can approve or refuse leave requests"},
	{Target: leave.ErrInvalidTransition, Status: http.StatusConflict, Code: "invalid_transition", Message: "this request has already been decided"},
	{Target: leave.ErrInvalidState, Status: http.StatusConflict, Code: "invalid_state", Message: "only pending requests can be edited"},
	{Target: leave.ErrRefusalReasonRequired, Status: http.StatusBadRequest, Code: "validation_error", Message: "enter a reason before refusing this request"},
	{Target: leave.ErrInvalidRange, Status: http.StatusBadRequest, Code: "validation_error", Message: "the end date must be on or after the start date"},
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave/requests", func(r chi.Router) {
		r.Get("/", h.handleListRequests)
		r.Post("/", h.handleCreateRequest)
		r.Route("/{requestID}", func(r chi.Router) {
			r.Get("/", h.handleGetRequest)
			r.Put("/", h.handleUpdateRequest)
			r.Delete("/", h.handleDeleteRequest)
			r.Post("/approve", h.handleApproveRequest)
			r.Post("/refuse", h.handleRefuseRequest)
		})
	})
}

type requestView struct {
	leave.LeaveRequest
	Days      int  `json:"days"`
	CanEdit   bool `json:"canEdit"`
	CanDecide bool `json:"canDecide"`
}

func view(req leave.LeaveRequest, actor *auth.Actor) requestView {
	res := leave.ResolveStatus(req)
	req.Status = res.Status
	req.RefusalReason = res.RefusalReason
	days, _ := leave.CalculateDays(req.StartDate, req.EndDate)
	return requestView{
		LeaveRequest: req,
		Days:         days,
		CanEdit:      auth.CanMutate(actor, req),
		CanDecide:    auth.CanDecide(actor) && req.Status == leave.StatusPending,
	}
}

type requestPayload struct {
	EmployeeID string `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
}

func (p requestPayload) input(w http.ResponseWriter, r *http.Request) (leave.Input, bool) {
	v := shared.NewValidator()
	v.Required("employeeId", p.EmployeeID, "is required")
	start, startOK := v.Date("startDate", p.StartDate)
	end, endOK := v.Date("endDate", p.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return leave.Input{}, false
	}
	return leave.Input{EmployeeID: p.EmployeeID, StartDate: start, EndDate: end, Reason: p.Reason}, true
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	filter := leave.ListFilter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		Status:     leave.Status(r.URL.Query().Get("status")),
	}
	v := shared.NewValidator()
	v.Enum("status", string(filter.Status), []string{string(leave.StatusPending), string(leave.StatusApproved), string(leave.StatusRefused)}, "must be pending, approved or refused")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	requests, err := h.Service.List(r.Context(), filter, shared.ParsePagination(r, shared.DefaultLimit, shared.MaxLimit))
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	out := make([]requestView, 0, len(requests))
	for _, req := range requests {
		out = append(out, view(req, actor))
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "requestID")
	if !ok {
		return
	}
	req, err := h.Service.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.Success(w, view(req, middleware.GetActor(r.Context())), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var payload requestPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	in, ok := payload.input(w, r)
	if !ok {
		return
	}
	actor := middleware.GetActor(r.Context())
	req, err := h.Service.Create(r.Context(), actor, in)
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.Created(w, view(req, actor), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "requestID")
	if !ok {
		return
	}
	var payload requestPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	in, ok := payload.input(w, r)
	if !ok {
		return
	}
	actor := middleware.GetActor(r.Context())
	req, err := h.Service.Update(r.Context(), actor, id, in)
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.Success(w, view(req, actor), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "requestID")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.NoContent(w)
}

func (h *Handler) handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "requestID")
	if !ok {
		return
	}
	actor := middleware.GetActor(r.Context())
	req, err := h.Service.Approve(r.Context(), actor, id)
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.Success(w, view(req, actor), middleware.GetRequestID(r.Context()))
}

type refusePayload struct {
	Reason string `json:"reason"`
}

func (h *Handler) handleRefuseRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "requestID")
	if !ok {
		return
	}
	var payload refusePayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	actor := middleware.GetActor(r.Context())
	req, err := h.Service.Refuse(r.Context(), actor, id, payload.Reason)
	if err != nil {
		shared.WriteError(w, r, h.Names, err, errorCases...)
		return
	}
	api.Success(w, view(req, actor), middleware.GetRequestID(r.Context()))
}
