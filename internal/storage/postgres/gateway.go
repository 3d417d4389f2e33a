package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"content_hub/internal/domain"
)

// TableSpec describes one content table: its name, the ordering applied to
// every list, the columns a client supplies on insert, and the columns a
// partial update may touch. id, user_id, created_at and updated_at are
// server-owned and therefore never appear in MutableCols.
type TableSpec struct {
	Name        string
	OrderBy     string
	InsertCols  []string
	MutableCols []string
}

// RecordStore is the table gateway for one content entity type. It exposes
// the four operations the data store offers per table: select-all-ordered,
// insert-one, update-by-id and delete-by-id. Server-assigned values (id,
// timestamps) are always read back via RETURNING so callers see canonical
// rows, never the optimistic payload.
type RecordStore[T domain.Record] struct {
	db    *sqlx.DB
	spec  TableSpec
	alloc func() T

	listQuery   string
	pageQuery   string
	countQuery  string
	insertQuery string
	deleteQuery string
	mutable     map[string]struct{}
}

func NewRecordStore[T domain.Record](db *sqlx.DB, spec TableSpec, alloc func() T) *RecordStore[T] {
	binds := make([]string, len(spec.InsertCols))
	for i, c := range spec.InsertCols {
		binds[i] = ":" + c
	}
	mutable := make(map[string]struct{}, len(spec.MutableCols))
	for _, c := range spec.MutableCols {
		mutable[c] = struct{}{}
	}

	return &RecordStore[T]{
		db:    db,
		spec:  spec,
		alloc: alloc,
		listQuery: fmt.Sprintf(
			"SELECT * FROM %s ORDER BY %s", spec.Name, spec.OrderBy,
		),
		pageQuery: fmt.Sprintf(
			"SELECT * FROM %s ORDER BY created_at DESC LIMIT $1 OFFSET $2", spec.Name,
		),
		countQuery: fmt.Sprintf("SELECT COUNT(*) FROM %s", spec.Name),
		insertQuery: fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
			spec.Name,
			strings.Join(spec.InsertCols, ", "),
			strings.Join(binds, ", "),
		),
		deleteQuery: fmt.Sprintf("DELETE FROM %s WHERE id = $1", spec.Name),
		mutable:     mutable,
	}
}

func (s *RecordStore[T]) Table() string { return s.spec.Name }

func (s *RecordStore[T]) List(ctx context.Context) ([]T, error) {
	return s.queryRecords(ctx, s.listQuery)
}

// ListPage returns one page of rows ordered newest first, together with the
// exact total row count for building pagination controls. The admin listing
// always pages by creation time, independent of the table's public ordering.
func (s *RecordStore[T]) ListPage(ctx context.Context, limit, offset int) ([]T, int, error) {
	if limit <= 0 {
		return nil, 0, fmt.Errorf("list %s page: limit must be positive", s.spec.Name)
	}
	if offset < 0 {
		return nil, 0, fmt.Errorf("list %s page: negative offset", s.spec.Name)
	}

	var total int
	if err := s.db.GetContext(ctx, &total, s.countQuery); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", s.spec.Name, err)
	}

	out, err := s.queryRecords(ctx, s.pageQuery, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *RecordStore[T]) queryRecords(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.spec.Name, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		rec := s.alloc()
		if err := rows.StructScan(rec); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", s.spec.Name, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *RecordStore[T]) Insert(ctx context.Context, rec T) (T, error) {
	var zero T

	rows, err := sqlx.NamedQueryContext(ctx, s.db, s.insertQuery, rec)
	if err != nil {
		return zero, fmt.Errorf("insert into %s: %w", s.spec.Name, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, fmt.Errorf("insert into %s: %w", s.spec.Name, err)
		}
		return zero, fmt.Errorf("insert into %s: no row returned", s.spec.Name)
	}

	created := s.alloc()
	if err := rows.StructScan(created); err != nil {
		return zero, fmt.Errorf("scan inserted %s row: %w", s.spec.Name, err)
	}
	return created, nil
}

func (s *RecordStore[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	var zero T

	if _, err := uuid.Parse(id); err != nil {
		return zero, fmt.Errorf("update %s: invalid record id %q", s.spec.Name, id)
	}
	if len(patch) == 0 {
		return zero, fmt.Errorf("update %s: empty patch", s.spec.Name)
	}

	cols := make([]string, 0, len(patch))
	for col := range patch {
		if _, ok := s.mutable[col]; !ok {
			return zero, fmt.Errorf("update %s: column %q is not updatable", s.spec.Name, col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(s.spec.Name)
	sb.WriteString(" SET ")
	args := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		arg, err := patchArg(patch[col])
		if err != nil {
			return zero, fmt.Errorf("update %s: encode column %q: %w", s.spec.Name, col, err)
		}
		args = append(args, arg)
		sb.WriteString(col)
		sb.WriteString(" = $")
		sb.WriteString(strconv.Itoa(i + 1))
	}
	args = append(args, id)
	sb.WriteString(" WHERE id = $")
	sb.WriteString(strconv.Itoa(len(cols) + 1))
	sb.WriteString(" RETURNING *")

	updated := s.alloc()
	err := s.db.QueryRowxContext(ctx, sb.String(), args...).StructScan(updated)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, domain.ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", s.spec.Name, err)
	}
	return updated, nil
}

func (s *RecordStore[T]) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("delete from %s: invalid record id %q", s.spec.Name, id)
	}

	res, err := s.db.ExecContext(ctx, s.deleteQuery, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", s.spec.Name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", s.spec.Name, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// patchArg converts a patch value to something the driver can bind. Structured
// values target jsonb columns and are encoded as JSON.
func patchArg(v any) (any, error) {
	switch v.(type) {
	case nil, string, *string, bool, int, int32, int64, float64, []byte, time.Time:
		return v, nil
	}
	if _, ok := v.(driver.Valuer); ok {
		return v, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}
