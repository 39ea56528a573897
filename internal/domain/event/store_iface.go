package event

import (
	"context"

	"hrconsole/internal/platform/db"
)

type StoreAPI interface {
	List(ctx context.Context, filter ListFilter, page db.Page) ([]Event, error)
	Get(ctx context.Context, id string) (Event, error)
	Create(ctx context.Context, ev Event) (Event, error)
	Update(ctx context.Context, ev Event) error
	Delete(ctx context.Context, id string) error
}
