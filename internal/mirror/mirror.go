package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"content_hub/internal/auth"
	"content_hub/internal/domain"
)

// Mirror owns the client-side copy of one remote table and keeps it
// consistent with both local mutations and changes made by other sessions.
// The remote store is always authoritative: the snapshot is only ever
// replaced wholesale after a confirmed round trip, never patched with
// speculative local state. Every successful mutation triggers a refresh so
// callers observe server-canonical rows, and Watch re-runs the same refresh
// whenever the change feed announces activity on the table.
type Mirror[T domain.Record] struct {
	gateway Gateway[T]
	feed    Feed
	logger  *slog.Logger

	mu      sync.Mutex
	items   []T
	loading bool
	lastErr string
}

func New[T domain.Record](gateway Gateway[T], feed Feed, logger *slog.Logger) *Mirror[T] {
	return &Mirror[T]{
		gateway: gateway,
		feed:    feed,
		logger:  logger.With("table", gateway.Table()),
	}
}

func (m *Mirror[T]) Table() string { return m.gateway.Table() }

// Items returns the latest snapshot. After a failed refresh this is the
// previous snapshot, not an empty list.
func (m *Mirror[T]) Items() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Mirror[T]) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Err returns the message of the last failed operation, or "" after a
// successful refresh.
func (m *Mirror[T]) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Refresh fetches all rows and replaces the snapshot. On failure the prior
// snapshot stays visible and the error is retained in Err. Concurrent
// refreshes are not coordinated: each replaces the snapshot wholesale, so
// whichever resolves last wins.
func (m *Mirror[T]) Refresh(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	rows, err := m.gateway.List(ctx)
	if err != nil {
		m.noteErr(err)
		return err
	}

	m.mu.Lock()
	m.items = rows
	m.lastErr = ""
	m.mu.Unlock()
	return nil
}

// Page is one window of a paginated listing with the exact total row count.
type Page[T domain.Record] struct {
	Items []T
	Total int
}

// FetchPage fetches one page of rows ordered newest first. Pages are
// one-based; a page below 1 reads as the first. The snapshot is left
// untouched: pagination is a read-through view for admin listings, not a
// partial replacement of the mirrored table.
func (m *Mirror[T]) FetchPage(ctx context.Context, page, pageSize int) (Page[T], error) {
	if page < 1 {
		page = 1
	}

	m.setLoading(true)
	defer m.setLoading(false)

	rows, total, err := m.gateway.ListPage(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		m.noteErr(err)
		return Page[T]{}, err
	}

	m.mu.Lock()
	m.lastErr = ""
	m.mu.Unlock()
	return Page[T]{Items: rows, Total: total}, nil
}

// Create inserts a record owned by the session's user. Without a valid
// session no write is attempted.
func (m *Mirror[T]) Create(ctx context.Context, rec T, sess *auth.Session) Result[T] {
	if !sess.Valid() {
		m.noteErr(domain.ErrNotAuthenticated)
		return failure[T](domain.ErrNotAuthenticated)
	}
	rec.SetOwner(sess.UserID)

	created, err := m.gateway.Insert(ctx, rec)
	if err != nil {
		m.noteErr(err)
		return failure[T](err)
	}

	m.refreshAfter(ctx, "create")
	return success(created)
}

// Update applies a partial-field patch to the record with the given id.
func (m *Mirror[T]) Update(ctx context.Context, id string, patch map[string]any) Result[T] {
	updated, err := m.gateway.Update(ctx, id, patch)
	if err != nil {
		m.noteErr(err)
		return failure[T](err)
	}

	m.refreshAfter(ctx, "update")
	return success(updated)
}

// Delete removes the record with the given id. Deletion is irreversible.
func (m *Mirror[T]) Delete(ctx context.Context, id string) Result[T] {
	if err := m.gateway.Delete(ctx, id); err != nil {
		m.noteErr(err)
		return failure[T](err)
	}

	m.refreshAfter(ctx, "delete")
	return Result[T]{Success: true}
}

// Watch subscribes the mirror to the table's change feed and refreshes on
// every event. The returned stop function releases the subscription and must
// be called when the owning scope ends; calling it more than once is safe.
func (m *Mirror[T]) Watch(ctx context.Context) (func(), error) {
	changes, release, err := m.feed.Subscribe(m.gateway.Table())
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", m.gateway.Table(), err)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case change, ok := <-changes:
				if !ok {
					return
				}
				m.logger.Debug("change received",
					"action", change.Action,
					"id", change.ID,
				)
				if err := m.Refresh(ctx); err != nil {
					m.logger.Warn("refresh after change failed", "error", err)
				}
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			release()
		})
	}
	return stop, nil
}

// refreshAfter re-fetches the table after an acknowledged write. The write
// already succeeded, so a failed refresh only leaves the snapshot stale; the
// feed or the next refresh catches it up.
func (m *Mirror[T]) refreshAfter(ctx context.Context, op string) {
	if err := m.Refresh(ctx); err != nil {
		m.logger.Warn("refresh after mutation failed", "op", op, "error", err)
	}
}

func (m *Mirror[T]) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

func (m *Mirror[T]) noteErr(err error) {
	m.mu.Lock()
	m.lastErr = err.Error()
	m.mu.Unlock()
}
