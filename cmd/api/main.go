package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"

	"github.com/dayflow-hr/dayflow-backend-go/internal/config"
	appHTTP "github.com/dayflow-hr/dayflow-backend-go/internal/handler/http"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/cron"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/dayflow-backend-go/internal/repository/postgresql"
	attendanceService "github.com/dayflow-hr/dayflow-backend-go/internal/service/attendance"
	authService "github.com/dayflow-hr/dayflow-backend-go/internal/service/auth"
	employeeService "github.com/dayflow-hr/dayflow-backend-go/internal/service/employee"
	leaveService "github.com/dayflow-hr/dayflow-backend-go/internal/service/leave"
	payrollService "github.com/dayflow-hr/dayflow-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "dayflow-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewService(employeeRepo, jwtService, logger)
	employeeSvc := employeeService.NewService(employeeRepo, logger)
	attendanceSvc := attendanceService.NewService(attendanceRepo, employeeRepo, payrollRepo, logger, nil)
	leaveSvc := leaveService.NewService(leaveRepo, attendanceRepo, employeeRepo, postgresql.NewTransactor(db), logger, nil)
	payrollSvc := payrollService.NewService(payrollRepo, attendanceRepo, employeeRepo, cfg.Payroll, logger, nil)

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		Config:            cfg,
		Logger:            logger,
		JWTService:        jwtService,
		AuthHandler:       appHTTP.NewAuthHandler(authSvc, jwtService),
		EmployeeHandler:   appHTTP.NewEmployeeHandler(employeeSvc),
		AttendanceHandler: appHTTP.NewAttendanceHandler(attendanceSvc),
		LeaveHandler:      appHTTP.NewLeaveHandler(leaveSvc),
		PayrollHandler:    appHTTP.NewPayrollHandler(payrollSvc),
	})

	scheduler := cron.NewScheduler(logger)
	cron.NewAttendanceJobs(attendanceSvc, logger).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
