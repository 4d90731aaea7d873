// Package memory implements the repositories over in-process maps. A Store
// serializes transactions with one mutex; a transaction works on a copy of
// the data that replaces the committed state only when fn succeeds.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/database"
)

type dataset struct {
	employees   map[string]employee.Employee
	leaves      map[string]leave.LeaveRequest
	attendances map[string]attendance.Attendance
}

func newDataset() *dataset {
	return &dataset{
		employees:   make(map[string]employee.Employee),
		leaves:      make(map[string]leave.LeaveRequest),
		attendances: make(map[string]attendance.Attendance),
	}
}

// clone copies the maps. Values are structs whose pointer fields are replaced,
// never mutated in place, so a shallow copy is enough.
func (d *dataset) clone() *dataset {
	return &dataset{
		employees:   maps.Clone(d.employees),
		leaves:      maps.Clone(d.leaves),
		attendances: maps.Clone(d.attendances),
	}
}

type Store struct {
	mu   sync.Mutex
	data *dataset
	now  func() time.Time
}

var _ database.Transactor = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		data: newDataset(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

type txState struct {
	store *Store
	data  *dataset
}

type txKey struct{}

// WithinTransaction implements database.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if st, ok := ctx.Value(txKey{}).(*txState); ok && st.store == s {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(context.WithValue(ctx, txKey{}, &txState{store: s, data: work})); err != nil {
		return err
	}
	s.data = work
	return nil
}

// with runs fn against the transaction's working copy when ctx carries one,
// otherwise against the committed data under the store lock.
func (s *Store) with(ctx context.Context, fn func(d *dataset) error) error {
	if st, ok := ctx.Value(txKey{}).(*txState); ok && st.store == s {
		return fn(st.data)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
