package attendance

import (
	"context"

	"hrconsole/internal/platform/db"
)

type StoreAPI interface {
	List(ctx context.Context, filter ListFilter, page db.Page) ([]Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	Create(ctx context.Context, e Entry) (Entry, error)
	SaveExit(ctx context.Context, e Entry) error
	Delete(ctx context.Context, id string) error
}
