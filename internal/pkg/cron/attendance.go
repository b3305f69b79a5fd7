package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	logger            *slog.Logger
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, logger *slog.Logger) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees backfills Absent records for yesterday. Employees
// who neither checked in nor had a leave approved would otherwise stay
// invisible to the payroll summary.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	// Only run during the midnight hour (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)

	count, err := j.attendanceService.MarkAbsentees(ctx, yesterday)
	if err != nil {
		return err
	}
	if count > 0 {
		j.logger.Info("marked absent employees", "date", yesterday.Format("2006-01-02"), "count", count)
	}
	return nil
}
