package payroll

import (
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// The calculator is a set of pure functions: plain data in, plain data
// out, no clock reads and no I/O. The service layer owns persistence and
// every policy that depends on "now".

var hundred = decimal.NewFromInt(100)

// pctOf keeps full precision; rounding happens once, in BuildPayroll.
func pctOf(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

// DeriveSalaryComponents itemizes a monthly wage into its components.
// The derivation order matters: HRA and both PF contributions are
// percentages of the derived basic salary, not of the wage.
func DeriveSalaryComponents(config employee.SalaryConfig) payroll.ComponentBreakdown {
	wage := config.MonthlyWage
	rates := config.Components

	basic := pctOf(wage, rates.BasicPct)

	return payroll.ComponentBreakdown{
		MonthlyWage:          wage,
		BasicSalary:          basic,
		HouseRentAllowance:   pctOf(basic, rates.HRAPct),
		StandardAllowance:    pctOf(wage, rates.StandardPct),
		PerformanceBonus:     pctOf(wage, rates.PerformancePct),
		LeaveTravelAllowance: pctOf(wage, rates.LTAPct),
		FixedAllowance:       pctOf(wage, rates.FixedPct),
		EmployeePF:           pctOf(basic, config.PFEmployeePct),
		EmployerPF:           pctOf(basic, config.PFEmployerPct),
		ProfessionalTax:      config.ProfessionalTax,
		IncomeTax:            pctOf(wage, config.IncomeTaxPct),
	}
}

// SummarizeOptions carries the attendance policy knobs.
type SummarizeOptions struct {
	// LateGrace is the wall-clock check-in threshold, as an offset from
	// midnight of the record's date.
	LateGrace time.Duration
	// StandardDayHours is the expected working time of a Present day;
	// hours beyond it count as overtime.
	StandardDayHours float64
	// WorkingDaysPerWeek drives the calendar working-day count: 5 means
	// Mon-Fri, 6 adds Saturday, 7 counts every day.
	WorkingDaysPerWeek int
}

func DefaultSummarizeOptions() SummarizeOptions {
	return SummarizeOptions{
		LateGrace:          9*time.Hour + 15*time.Minute,
		StandardDayHours:   8,
		WorkingDaysPerWeek: 5,
	}
}

// paidLeaveRemarks are the historical free-text values that mean an
// approved paid leave. They only matter for records predating the
// leave_category column; anything unrecognized counts as unpaid, which
// is why new records carry an explicit category instead.
var paidLeaveRemarks = []string{
	"casual leave",
	"personal leave",
	"paid leave",
	"annual leave",
	"earned leave",
	"vacation",
}

// ClassifyLeaveRemarks is the legacy fallback for leave records without
// an explicit category.
func ClassifyLeaveRemarks(remarks string) attendance.LeaveCategory {
	lower := strings.ToLower(remarks)
	if strings.Contains(lower, "sick") {
		return attendance.LeaveCategorySick
	}
	for _, known := range paidLeaveRemarks {
		if strings.Contains(lower, known) {
			return attendance.LeaveCategoryPaid
		}
	}
	return attendance.LeaveCategoryUnpaid
}

func leaveCategoryOf(record attendance.Attendance) attendance.LeaveCategory {
	if record.LeaveCategory != nil {
		return *record.LeaveCategory
	}
	if record.Remarks != nil {
		return ClassifyLeaveRemarks(*record.Remarks)
	}
	return attendance.LeaveCategoryUnpaid
}

// CountWorkingDays counts the calendar working days in [start, end),
// independent of any attendance data.
func CountWorkingDays(start, end time.Time, workingDaysPerWeek int) int {
	count := 0
	for d := attendance.Day(start); d.Before(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Sunday:
			if workingDaysPerWeek >= 7 {
				count++
			}
		case time.Saturday:
			if workingDaysPerWeek >= 6 {
				count++
			}
		default:
			count++
		}
	}
	return count
}

// SummarizeAttendance aggregates one employee's records over [periodStart,
// periodEnd). Records outside the window are ignored. The summary is
// never rejected for incomplete data; RecordedDays lets callers compare
// against TotalWorkingDays themselves.
func SummarizeAttendance(records []attendance.Attendance, periodStart, periodEnd time.Time, opts SummarizeOptions) payroll.AttendanceSummary {
	summary := payroll.AttendanceSummary{
		TotalWorkingDays: CountWorkingDays(periodStart, periodEnd, opts.WorkingDaysPerWeek),
		OvertimeHours:    decimal.Zero,
	}

	standardDay := decimal.NewFromFloat(opts.StandardDayHours)

	for _, record := range records {
		day := attendance.Day(record.Date)
		if day.Before(attendance.Day(periodStart)) || !day.Before(attendance.Day(periodEnd)) {
			continue
		}
		summary.RecordedDays++

		switch record.Status {
		case attendance.StatusPresent:
			summary.PresentDays++
			worked := decimal.NewFromFloat(record.WorkHours)
			if overtime := worked.Sub(standardDay); overtime.IsPositive() {
				summary.OvertimeHours = summary.OvertimeHours.Add(overtime)
			}
		case attendance.StatusHalfDay:
			summary.HalfDays++
		case attendance.StatusAbsent:
			summary.AbsentDays++
		case attendance.StatusLeave:
			switch leaveCategoryOf(record) {
			case attendance.LeaveCategorySick:
				summary.SickLeaves++
			case attendance.LeaveCategoryPaid:
				summary.PaidLeaves++
			default:
				summary.UnpaidLeaves++
			}
		}

		if record.CheckIn != nil &&
			(record.Status == attendance.StatusPresent || record.Status == attendance.StatusHalfDay) {
			threshold := day.Add(opts.LateGrace)
			if record.CheckIn.After(threshold) {
				summary.LateArrivals++
			}
		}
	}

	return summary
}

// ComputeLossOfPay derives the unpaid-absence deduction. Absences and
// unpaid leaves each cost one day of basic pay; half-days deliberately
// cost nothing. A period with no working days yields a zero deduction
// rather than a division error.
func ComputeLossOfPay(summary payroll.AttendanceSummary, basicSalary decimal.Decimal) payroll.LossOfPay {
	lop := payroll.LossOfPay{
		Days:       summary.AbsentDays + summary.UnpaidLeaves,
		PerDayRate: decimal.Zero,
		Deduction:  decimal.Zero,
	}
	if summary.TotalWorkingDays <= 0 {
		return lop
	}

	lop.PerDayRate = basicSalary.Div(decimal.NewFromInt(int64(summary.TotalWorkingDays)))
	lop.Deduction = lop.PerDayRate.Mul(decimal.NewFromInt(int64(lop.Days)))
	return lop
}

// BuildOptions are the caller-supplied extras for assembling a record.
type BuildOptions struct {
	Bonuses decimal.Decimal
	// OvertimeRatePerHour prices the summary's overtime hours; zero
	// disables overtime pay.
	OvertimeRatePerHour decimal.Decimal
	// LatePenaltyPerArrival lands in deductions.other per late arrival.
	LatePenaltyPerArrival decimal.Decimal
}

// BuildPayroll assembles an unsaved payroll record. Every monetary field
// is rounded to 2 decimal places here, once, and gross/net are computed
// from the rounded fields so the invariants
//
//	gross = basic + allowances + bonuses + overtimePay
//	net   = gross - deductions - lopDeduction
//
// hold exactly on the stored values. The payment status is left for the
// caller to assign; the calculator never invents one.
func BuildPayroll(config employee.SalaryConfig, summary payroll.AttendanceSummary, lop payroll.LossOfPay, opts BuildOptions) payroll.PayrollRecord {
	breakdown := DeriveSalaryComponents(config)

	basic := breakdown.BasicSalary.Round(2)

	allowances := payroll.Allowances{
		HRA:       breakdown.HouseRentAllowance.Round(2),
		Transport: decimal.Zero,
		Medical:   decimal.Zero,
		Other:     breakdown.OtherAllowancesTotal().Round(2),
	}

	latePenalty := opts.LatePenaltyPerArrival.
		Mul(decimal.NewFromInt(int64(summary.LateArrivals))).
		Round(2)

	deductions := payroll.Deductions{
		Tax:           breakdown.ProfessionalTax.Add(breakdown.IncomeTax).Round(2),
		ProvidentFund: breakdown.EmployeePF.Round(2),
		Insurance:     decimal.Zero,
		Other:         latePenalty,
	}

	bonuses := opts.Bonuses.Round(2)
	overtimePay := opts.OvertimeRatePerHour.Mul(summary.OvertimeHours).Round(2)
	lopDeduction := lop.Deduction.Round(2)

	gross := basic.
		Add(allowances.Total()).
		Add(bonuses).
		Add(overtimePay)
	net := gross.
		Sub(deductions.Total()).
		Sub(lopDeduction)

	return payroll.PayrollRecord{
		BasicSalary:       basic,
		Allowances:        allowances,
		Deductions:        deductions,
		Bonuses:           bonuses,
		OvertimePay:       overtimePay,
		LopDays:           lop.Days,
		LopDeduction:      lopDeduction,
		AttendanceSummary: summary,
		GrossSalary:       gross,
		NetSalary:         net,
	}
}

// DefaultPaymentStatus is the recency policy from record generation:
// the reference month stays Pending, the month before is Processed, and
// anything older is Paid. Future periods are Pending. The reference date
// is an explicit parameter so generation stays reproducible.
func DefaultPaymentStatus(month, year int, referenceDate time.Time) payroll.PaymentStatus {
	monthsAgo := (referenceDate.Year()-year)*12 + int(referenceDate.Month()) - month
	switch {
	case monthsAgo <= 0:
		return payroll.PaymentStatusPending
	case monthsAgo == 1:
		return payroll.PaymentStatusProcessed
	default:
		return payroll.PaymentStatusPaid
	}
}

// PeriodBounds returns the [start, end) window of a calendar month in UTC.
func PeriodBounds(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
