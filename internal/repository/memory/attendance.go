package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/attendance"
	"github.com/google/uuid"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

func hasRecordOn(d *dataset, employeeID string, date time.Time, exceptID string) bool {
	for _, a := range d.attendances {
		if a.ID != exceptID && a.EmployeeID == employeeID && a.Date.Equal(date) {
			return true
		}
	}
	return false
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}
	newAttendance.ID = id.String()

	err = r.store.with(ctx, func(d *dataset) error {
		if _, ok := d.employees[newAttendance.EmployeeID]; !ok {
			return fmt.Errorf("failed to create attendance: employee %s does not exist", newAttendance.EmployeeID)
		}
		if hasRecordOn(d, newAttendance.EmployeeID, newAttendance.Date, "") {
			return attendance.ErrDuplicateAttendance
		}
		now := r.store.now()
		newAttendance.CreatedAt = now
		newAttendance.UpdatedAt = now
		d.attendances[newAttendance.ID] = newAttendance
		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	var found attendance.Attendance
	err := r.store.with(ctx, func(d *dataset) error {
		a, ok := d.attendances[id]
		if !ok {
			return attendance.ErrAttendanceNotFound
		}
		found = a
		return nil
	})
	return found, err
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	var found attendance.Attendance
	err := r.store.with(ctx, func(d *dataset) error {
		for _, a := range d.attendances {
			if a.EmployeeID == employeeID && a.Date.Equal(date) {
				found = a
				return nil
			}
		}
		return attendance.ErrAttendanceNotFound
	})
	return found, err
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	err := r.store.with(ctx, func(d *dataset) error {
		existing, ok := d.attendances[att.ID]
		if !ok {
			return attendance.ErrAttendanceNotFound
		}
		if hasRecordOn(d, existing.EmployeeID, att.Date, att.ID) {
			return attendance.ErrDuplicateAttendance
		}
		att.EmployeeID = existing.EmployeeID
		att.CreatedAt = existing.CreatedAt
		att.UpdatedAt = r.store.now()
		d.attendances[att.ID] = att
		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}
	return att, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	return r.store.with(ctx, func(d *dataset) error {
		if _, ok := d.attendances[id]; !ok {
			return attendance.ErrAttendanceNotFound
		}
		delete(d.attendances, id)
		return nil
	})
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time, ascending bool) ([]attendance.Attendance, error) {
	records := []attendance.Attendance{}
	err := r.store.with(ctx, func(d *dataset) error {
		for _, a := range d.attendances {
			if a.EmployeeID != employeeID || a.Date.Before(from) || a.Date.After(to) {
				continue
			}
			records = append(records, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		if ascending {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	records := []attendance.Attendance{}
	err := r.store.with(ctx, func(d *dataset) error {
		for _, a := range d.attendances {
			if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
				continue
			}
			if filter.Status != nil && a.Status != *filter.Status {
				continue
			}
			if filter.From != nil && a.Date.Before(*filter.From) {
				continue
			}
			if filter.To != nil && a.Date.After(*filter.To) {
				continue
			}
			records = append(records, a)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].ID > records[j].ID
	})

	limit := filter.Limit
	if limit == 0 {
		limit = attendance.DefaultPageLimit
	}
	total := int64(len(records))
	return paginate(records, filter.Page, limit), total, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	records := []attendance.Attendance{}
	err := r.store.with(ctx, func(d *dataset) error {
		for _, a := range d.attendances {
			if a.Date.Equal(date) {
				records = append(records, a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
	return records, nil
}
