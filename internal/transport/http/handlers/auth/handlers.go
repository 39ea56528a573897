package authhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrconsole/internal/domain/auth"
	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
)

// Handler describes the signed-in actor. Tokens are issued elsewhere.
type Handler struct {
	Names auth.NameLookup
}

func NewHandler(names auth.NameLookup) *Handler {
	return &Handler{Names: names}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/auth/me", h.handleMe)
}

type meView struct {
	ID          string    `json:"id"`
	Role        auth.Role `json:"role"`
	DisplayName string    `json:"displayName"`
	CanDecide   bool      `json:"canDecide"`
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if actor == nil {
		api.Unauthorized(w, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, meView{
		ID:          actor.ID,
		Role:        actor.Role,
		DisplayName: auth.OwnerLabel(r.Context(), h.Names, actor.ID),
		CanDecide:   auth.CanDecide(actor),
	}, middleware.GetRequestID(r.Context()))
}
