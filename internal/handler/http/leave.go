package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/handler/http/response"
)

type LeaveHandler interface {
	// Employee
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetMyBalance(w http.ResponseWriter, r *http.Request)
	GetMySummary(w http.ResponseWriter, r *http.Request)

	// Employee (own requests) and admin
	GetRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)

	// Admin
	ListRequests(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	ExportSummary(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	SetBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

func listLeaveQuery(r *http.Request) leave.ListLeaveQuery {
	q := r.URL.Query()
	return leave.ListLeaveQuery{
		Status:     q.Get("status"),
		LeaveType:  q.Get("leave_type"),
		EmployeeID: q.Get("employee_id"),
		Department: q.Get("department"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		Year:       q.Get("year"),
		Page:       q.Get("page"),
		Limit:      q.Get("limit"),
	}
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	// Always the caller's own record
	req.EmployeeID = actor.EmployeeID

	created, err := l.leaveService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", leave.NewLeaveRequestResponse(created))
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	query := listLeaveQuery(r)
	query.EmployeeID = ""
	filter, err := query.ToFilter()
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter.EmployeeID = &actor.EmployeeID

	requests, total, err := l.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, leave.NewLeaveRequestResponses(requests), response.NewMeta(filter.Page, filter.Limit, total))
}

// GetMyBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	balance, err := l.leaveService.GetBalance(r.Context(), actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	request, err := l.leaveService.GetByID(r.Context(), id, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponse(request))
}

// UpdateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	var req leave.UpdateLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	updated, err := l.leaveService.Update(r.Context(), req, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated successfully", leave.NewLeaveRequestResponse(updated))
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	cancelled, err := l.leaveService.Cancel(r.Context(), id, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", leave.NewLeaveRequestResponse(cancelled))
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter, err := listLeaveQuery(r).ToFilter()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, total, err := l.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, leave.NewLeaveRequestResponses(requests), response.NewMeta(filter.Page, filter.Limit, total))
}

// ListPending implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, leave.NewLeaveRequestResponses(requests), response.NewMeta(0, 0, int64(len(requests))))
}

func summaryFilter(r *http.Request) (leave.LeaveFilter, error) {
	query := listLeaveQuery(r)
	query.Page, query.Limit = "", ""
	filter, err := query.ToFilter()
	if err != nil {
		return leave.LeaveFilter{}, err
	}
	filter.Page, filter.Limit = 0, 0
	return filter, nil
}

// Summary implements LeaveHandler.
func (l *LeaveHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	filter, err := summaryFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := l.leaveService.Summary(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// GetMySummary implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMySummary(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	query := listLeaveQuery(r)
	query.EmployeeID = ""
	query.Page, query.Limit = "", ""
	filter, err := query.ToFilter()
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter.Page, filter.Limit = 0, 0
	filter.EmployeeID = &actor.EmployeeID

	summary, err := l.leaveService.Summary(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// ExportSummary implements LeaveHandler.
func (l *LeaveHandlerImpl) ExportSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := summaryFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	pdf, err := l.leaveService.ExportSummaryPDF(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := "leave-summary.pdf"
	if filter.Year != nil {
		filename = "leave-summary-" + strconv.Itoa(*filter.Year) + ".pdf"
	}
	response.File(w, "application/pdf", filename, pdf)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	approved, err := l.leaveService.Approve(r.Context(), id, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", leave.NewLeaveRequestResponse(approved))
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	rejected, err := l.leaveService.Reject(r.Context(), id, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", leave.NewLeaveRequestResponse(rejected))
}

// SetBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) SetBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, employee.ErrEmployeeNotFound)
	if !ok {
		return
	}

	var req leave.SetBalanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.EmployeeID = id

	balance, err := l.leaveService.SetBalance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balance updated successfully", balance)
}
