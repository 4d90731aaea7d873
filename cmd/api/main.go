package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/config"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/leave"
	appHTTP "github.com/cmlabs-hris/hris-leave-attendance/internal/handler/http"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/database"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/repository/memory"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-leave-attendance/internal/service/attendance"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/service/balance"
	leaveService "github.com/cmlabs-hris/hris-leave-attendance/internal/service/leave"
	"github.com/go-chi/httplog/v3"
)

type repositories struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	leaveRepo    leave.LeaveRequestRepository
	attendRepo   attendance.AttendanceRepository
	close        func()
}

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level, _ := cfg.SlogLevel()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-leave-attendance"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	loc, _ := cfg.Location()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	ledger := balance.NewLedger(repos.tx, repos.employeeRepo, balance.WithRestoreCap(cfg.Leave.BalanceCap))
	leaveSvc := leaveService.NewLeaveService(
		repos.tx,
		repos.leaveRepo,
		repos.employeeRepo,
		ledger,
		leaveService.WithLocation(loc),
		leaveService.WithCancelRevertsToPending(cfg.Leave.CancelRevertsToPending),
		leaveService.WithReasonMaxLength(cfg.Leave.ReasonMaxLength),
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.tx,
		repos.attendRepo,
		repos.employeeRepo,
		attendanceService.WithLocation(loc),
	)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			LogLevel:       level,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc, loc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr, "storage", cfg.Storage.Driver, "timezone", loc.String())
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		repos := &repositories{
			tx:           store,
			employeeRepo: memory.NewEmployeeRepository(store),
			leaveRepo:    memory.NewLeaveRequestRepository(store),
			attendRepo:   memory.NewAttendanceRepository(store),
			close:        func() {},
		}
		if err := seedEmployees(ctx, repos.employeeRepo, cfg.Storage.SeedEmployees, cfg.Leave.DefaultBalance); err != nil {
			return nil, err
		}
		return repos, nil

	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return &repositories{
			tx:           postgresql.NewTransactor(db),
			employeeRepo: postgresql.NewEmployeeRepository(db),
			leaveRepo:    postgresql.NewLeaveRequestRepository(db),
			attendRepo:   postgresql.NewAttendanceRepository(db),
			close:        db.Close,
		}, nil
	}
}

func seedEmployees(ctx context.Context, repo employee.EmployeeRepository, emails []string, leaveBalance int) error {
	for _, email := range emails {
		name, _, _ := strings.Cut(email, "@")
		emp, err := repo.Create(ctx, employee.Employee{
			FullName:     name,
			Email:        email,
			LeaveBalance: leaveBalance,
			Active:       true,
		})
		if err != nil {
			return fmt.Errorf("failed to seed employee %s: %w", email, err)
		}
		slog.Info("seeded employee", "employee_id", emp.ID, "email", emp.Email, "leave_balance", emp.LeaveBalance)
	}
	return nil
}
