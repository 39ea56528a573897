package absence

import (
	"context"

	"hrconsole/internal/platform/db"
)

type StoreAPI interface {
	List(ctx context.Context, filter ListFilter, page db.Page) ([]Absence, error)
	Get(ctx context.Context, id string) (Absence, error)
	Create(ctx context.Context, a Absence) (Absence, error)
	Update(ctx context.Context, a Absence) error
	Delete(ctx context.Context, id string) error
}
