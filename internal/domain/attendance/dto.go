package attendance

import (
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeID string  `json:"-"`
	Remarks    *string `json:"remarks,omitempty"`
}

type CheckOutRequest struct {
	EmployeeID string `json:"-"`
}

// MarkAttendanceRequest lets HR/Admin create or correct a record for a
// specific day, e.g. marking an absence or a half-day.
type MarkAttendanceRequest struct {
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	CheckIn       *string `json:"check_in,omitempty"`
	CheckOut      *string `json:"check_out,omitempty"`
	LeaveCategory *string `json:"leave_category,omitempty"`
	Remarks       *string `json:"remarks,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if !validator.IsInSlice(r.Status, []string{
		string(StatusPresent), string(StatusAbsent), string(StatusLeave), string(StatusHalfDay),
	}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be Present, Absent, Leave or Half-day"})
	}
	if r.Status == string(StatusLeave) {
		if r.LeaveCategory == nil || !validator.IsInSlice(*r.LeaveCategory, []string{
			string(LeaveCategoryPaid), string(LeaveCategorySick), string(LeaveCategoryUnpaid),
		}) {
			errs = append(errs, validator.ValidationError{Field: "leave_category", Message: "must be Paid, Sick or Unpaid for Leave status"})
		}
	}
	if r.CheckIn != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_in", Message: "must be an ISO8601 timestamp"})
		}
	}
	if r.CheckOut != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_out", Message: "must be an ISO8601 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	EmployeeCode  *string `json:"employee_code,omitempty"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	CheckIn       *string `json:"check_in,omitempty"`
	CheckOut      *string `json:"check_out,omitempty"`
	WorkHours     float64 `json:"work_hours"`
	LeaveCategory *string `json:"leave_category,omitempty"`
	Remarks       *string `json:"remarks,omitempty"`
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

type ListAttendanceResponse struct {
	Data       []AttendanceResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}
