package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	GenerateBulk(w http.ResponseWriter, r *http.Request)
	PreviewSummary(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	PeriodSummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.GeneratePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payslip generated", result)
}

func (h *payrollHandlerImpl) GenerateBulk(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateBulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	results, err := h.payrollService.GenerateForAllActive(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payslips generated", results)
}

func (h *payrollHandlerImpl) PreviewSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	month := queryInt(r, "month", 0)
	year := queryInt(r, "year", 0)

	summary, err := h.payrollService.PreviewAttendanceSummary(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

func (h *payrollHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Employees can read their own payslips; everything else is HR-only.
	role := employee.Role(middleware.Role(r))
	if role != employee.RoleHR && role != employee.RoleAdmin && result.EmployeeID != middleware.EmployeeID(r) {
		response.Forbidden(w, "You can only view your own payslips")
		return
	}
	response.Success(w, result)
}

func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PayrollFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := queryInt(r, "month", 0); v != 0 {
		filter.Month = &v
	}
	if v := queryInt(r, "year", 0); v != 0 {
		filter.Year = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}

	role := employee.Role(middleware.Role(r))
	if role != employee.RoleHR && role != employee.RoleAdmin {
		self := middleware.EmployeeID(r)
		filter.EmployeeID = &self
	} else if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}

	result, err := h.payrollService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Data, listMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePayrollRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.payrollService.UpdateRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll record updated", result)
}

func (h *payrollHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.payrollService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payment status updated", result)
}

func (h *payrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeleteRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll record deleted", nil)
}

func (h *payrollHandlerImpl) PeriodSummary(w http.ResponseWriter, r *http.Request) {
	month := queryInt(r, "month", 0)
	year := queryInt(r, "year", 0)

	summary, err := h.payrollService.GetPeriodSummary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}
