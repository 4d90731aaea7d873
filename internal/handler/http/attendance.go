package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler interface {
	// Employee
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	MonthlyHours(w http.ResponseWriter, r *http.Request)
	ExportMonthly(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)

	// Admin
	List(w http.ResponseWriter, r *http.Request)
	Overview(w http.ResponseWriter, r *http.Request)
	EmployeeMonthly(w http.ResponseWriter, r *http.Request)
	EmployeeStats(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	location          *time.Location
}

// NewAttendanceHandler creates the handler. loc decides the default month of
// monthly queries.
func NewAttendanceHandler(attendanceService attendance.AttendanceService, loc *time.Location) AttendanceHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		location:          loc,
	}
}

func (h *attendanceHandlerImpl) yearMonth(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	return attendance.MonthQuery{Year: q.Get("year"), Month: q.Get("month")}.ToYearMonth(time.Now().In(h.location))
}

func periodQuery(r *http.Request) (attendance.Period, error) {
	q := r.URL.Query()
	return attendance.PeriodQuery{StartDate: q.Get("start_date"), EndDate: q.Get("end_date")}.ToPeriod()
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	record, err := h.attendanceService.CheckIn(r.Context(), actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", attendance.NewAttendanceResponse(record))
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	record, err := h.attendanceService.CheckOut(r.Context(), actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", attendance.NewAttendanceResponse(record))
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	status, err := h.attendanceService.Status(r.Context(), actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	record, err := h.attendanceService.Today(r.Context(), actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewAttendanceResponse(record))
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	period, err := periodQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ByEmployee(r.Context(), actor.EmployeeID, period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewAttendanceResponses(records))
}

// Monthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	year, month, err := h.yearMonth(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.Monthly(r.Context(), actor.EmployeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewAttendanceResponses(records))
}

// MonthlyHours implements AttendanceHandler.
func (h *attendanceHandlerImpl) MonthlyHours(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	year, month, err := h.yearMonth(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	hours, err := h.attendanceService.MonthlyHours(r.Context(), actor.EmployeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, hours)
}

// ExportMonthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	year, month, err := h.yearMonth(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := h.attendanceService.ExportMonthly(r.Context(), actor.EmployeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, xlsxContentType, fmt.Sprintf("attendance-%04d-%02d.xlsx", year, month), data)
}

// Stats implements AttendanceHandler.
func (h *attendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	period, err := periodQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.attendanceService.Stats(r.Context(), actor.EmployeeID, period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := attendance.ListAttendanceQuery{
		EmployeeID: q.Get("employee_id"),
		Status:     q.Get("status"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		Page:       q.Get("page"),
		Limit:      q.Get("limit"),
	}.ToFilter()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, total, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, attendance.NewAttendanceResponses(records), response.NewMeta(filter.Page, filter.Limit, total))
}

// Overview implements AttendanceHandler.
func (h *attendanceHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	var date time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, ok := validator.IsValidDate(raw)
		if !ok {
			response.HandleError(w, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}})
			return
		}
		date = d
	}

	overview, err := h.attendanceService.DailyOverview(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}

// EmployeeMonthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) EmployeeMonthly(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, employee.ErrEmployeeNotFound)
	if !ok {
		return
	}

	year, month, err := h.yearMonth(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.Monthly(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewAttendanceResponses(records))
}

// EmployeeStats implements AttendanceHandler.
func (h *attendanceHandlerImpl) EmployeeStats(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, employee.ErrEmployeeNotFound)
	if !ok {
		return
	}

	period, err := periodQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.attendanceService.Stats(r.Context(), employeeID, period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, attendance.ErrAttendanceNotFound)
	if !ok {
		return
	}

	var req attendance.UpdateAttendanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	record, err := h.attendanceService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", attendance.NewAttendanceResponse(record))
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, attendance.ErrAttendanceNotFound)
	if !ok {
		return
	}

	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}
