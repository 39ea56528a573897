package corehandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrconsole/internal/domain/auth"
	"hrconsole/internal/domain/core"
	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
	"hrconsole/internal/transport/http/shared"
)

type Handler struct {
	Service *core.Service
}

func NewHandler(service *core.Service) *Handler {
	return &Handler{Service: service}
}

var errorCases = []shared.ErrorCase{
	{Target: core.ErrEmployeeNotFound, Status: http.StatusNotFound, Code: "not_found", Message: "employee not found"},
	{Target: core.ErrDepartmentNotFound, Status: http.StatusNotFound, Code: "not_found", Message: "department not found"},
	{Target: core.ErrDepartmentInUse, Status: http.StatusConflict, Code: "department_in_use", Message: "move the employees out of this department before deleting it"},
	{Target: core.ErrNameRequired, Status: http.StatusBadRequest, Code: "validation_error", Message: "enter a name"},
	{Target: core.ErrInvalidStatus, Status: http.StatusBadRequest, Code: "validation_error", Message: "status must be active or inactive"},
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGetEmployee)
			r.Put("/", h.handleUpdateEmployee)
			r.Delete("/", h.handleDeleteEmployee)
		})
	})
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleListDepartments)
		r.Post("/", h.handleCreateDepartment)
		r.Put("/{departmentID}", h.handleUpdateDepartment)
		r.Delete("/{departmentID}", h.handleDeleteDepartment)
	})
}

type employeeView struct {
	core.Employee
	CanEdit bool `json:"canEdit"`
}

func viewEmployee(emp core.Employee, actor *auth.Actor) employeeView {
	view := employeeView{Employee: emp, CanEdit: auth.CanMutate(actor, emp)}
	core.FilterEmployeeFields(&view.Employee, actor)
	return view
}

type departmentView struct {
	core.Department
	CanEdit bool `json:"canEdit"`
}

type employeePayload struct {
	UserID       string `json:"userId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	DepartmentID string `json:"departmentId"`
	Status       string `json:"status"`
}

func (p employeePayload) validate(w http.ResponseWriter, r *http.Request) bool {
	v := shared.NewValidator()
	v.Required("firstName", p.FirstName, "is required")
	v.Required("lastName", p.LastName, "is required")
	v.Required("email", p.Email, "is required")
	v.Enum("status", p.Status, []string{string(core.EmployeeActive), string(core.EmployeeInactive)}, "must be active or inactive")
	return !v.Reject(w, middleware.GetRequestID(r.Context()))
}

func (p employeePayload) input() core.EmployeeInput {
	return core.EmployeeInput{
		UserID:       p.UserID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		Phone:        p.Phone,
		DepartmentID: p.DepartmentID,
		Status:       core.EmployeeStatus(p.Status),
	}
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	page := shared.ParsePagination(r, shared.DefaultLimit, shared.MaxLimit)
	filter := core.EmployeeFilter{
		DepartmentID: r.URL.Query().Get("departmentId"),
		Status:       core.EmployeeStatus(r.URL.Query().Get("status")),
	}
	employees, err := h.Service.ListEmployees(r.Context(), filter, page)
	if err != nil {
		shared.WriteError(w, r, h.Service, err, errorCases...)
		return
	}
	out := make([]employeeView, 0, len(employees))
	for _, emp := range employees {
		out = append(out, viewEmployee(emp, actor))
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	emp, err := h.Service.GetEmployee(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, h.Service, err, errorCases...)
		return
	}
	api.Success(w, viewEmployee(emp, middleware.GetActor(r.Context())), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if !shared.DecodeJSON(w, r, &payload) || !payload.validate(w, r) {
		return
	}
	actor := middleware.GetActor(r.Context())
	emp, err := h.Service.CreateEmployee(r.Context(), actor, payload.input())
	if err != nil {
		shared.WriteError(w, r, h.Service, err, errorCases...)
		return
	}
	api.Created(w, viewEmployee(emp, actor), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	var payload employeePayload
	if !shared.DecodeJSON(w, r, &payload) || !payload.validate(w, r) {
		return
	}
	actor := middleware.GetActor(r.Context())
	emp, err := h.Service.UpdateEmployee(r.Context(), actor, id, payload.input())
	if err != nil {
		shared.WriteError(w, r, h.Service, err, errorCases...)
		return
	}
	api.Success(w, viewEmployee(emp, actor), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	if err := h.Service.DeleteEmployee(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		shared.WriteError(w, r, h.Service, err, errorCases...)
		return
	}
	api.NoContent(w)
}

type departmentPayload struct {
	Name      string `json:"name"`
	ManagerID string `json:"managerId"`
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	page := shared.ParsePagination(r, shared.DefaultLimit, shared.MaxLimit)
	deps, err := h.Service.ListDepartments(r.Context(), page)
	if err != nil {
		shared.WriteError(w, r, h.Service, err, errorCases...)
		return
	}
	out := make([]departmentView, 0, len(deps))
	for _, dep := range deps {
		out = append(out, departmentView{Department: dep, CanEdit: auth.CanMutate(actor, dep)})
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var payload departmentPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	actor := middleware.GetActor(r.Context())
	dep, err := h.Service.CreateDepartment(r.Context(), actor, core.DepartmentInput{Name: payload.Name, ManagerID: payload.ManagerID})
	if err != nil {
		shared.WriteError(w, r, h.Service, err, errorCases...)
		return
	}
	api.Created(w, departmentView{Department: dep, CanEdit: true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "departmentID")
	if !ok {
		return
	}
	var payload departmentPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	actor := middleware.GetActor(r.Context())
	dep, err := h.Service.UpdateDepartment(r.Context(), actor, id, core.DepartmentInput{Name: payload.Name, ManagerID: payload.ManagerID})
	if err != nil {
		shared.WriteError(w, r, h.Service, err, errorCases...)
		return
	}
	api.Success(w, departmentView{Department: dep, CanEdit: true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "departmentID")
	if !ok {
		return
	}
	err := h.Service.DeleteDepartment(r.Context(), middleware.GetActor(r.Context()), id)
	if errors.Is(err, core.ErrDepartmentInUse) {
		api.Fail(w, http.StatusConflict, "department_in_use", "department still has employees", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		shared.WriteError(w, r, h.Service, err, errorCases...)
		return
	}
	api.NoContent(w)
}
