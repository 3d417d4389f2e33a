package mirror

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"content_hub/internal/domain"
)

// Gateway is the per-table surface of the remote data store.
type Gateway[T domain.Record] interface {
	Table() string
	List(ctx context.Context) ([]T, error)
	ListPage(ctx context.Context, limit, offset int) ([]T, int, error)
	Insert(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id string, patch map[string]any) (T, error)
	Delete(ctx context.Context, id string) error
}

// Feed delivers push change notifications for watched tables. The release
// function returned by Subscribe must be called when the subscriber's scope
// ends.
type Feed interface {
	Subscribe(table string) (<-chan domain.Change, func(), error)
}
