package leave

import (
	"context"

	"hrconsole/internal/platform/db"
)

type StoreAPI interface {
	List(ctx context.Context, filter ListFilter, page db.Page) ([]LeaveRequest, error)
	Get(ctx context.Context, id string) (LeaveRequest, error)
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	Update(ctx context.Context, req LeaveRequest) error
	SaveDecision(ctx context.Context, req LeaveRequest) error
	Delete(ctx context.Context, id string) error
}
