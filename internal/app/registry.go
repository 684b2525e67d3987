package app

import (
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/audit"
	"go-payroll/internal/compensation"
	"go-payroll/internal/employee"
	"go-payroll/internal/holiday"
	"go-payroll/internal/leave"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/tenant"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// buildAPI mounts every module on router. The returned emitter is shared
// with the server for lifecycle audit events.
func buildAPI(router *gin.Engine, in *infra) (audit.Emitter, error) {
	cfg, logger := in.cfg, in.logger

	zone, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	policy, err := attendance.NewPolicy(cfg.Policy.LateAfter, cfg.Policy.StandardHours, cfg.Policy.HalfDayHours)
	if err != nil {
		return nil, err
	}
	calculator, err := newCalculator(cfg.Payroll)
	if err != nil {
		return nil, err
	}
	locker := in.locker()

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(in.gormDB)
	compensationRepo := compensation.NewRepository(in.gormDB)
	counterRepo := counter.NewRepository(in.gormDB)
	employeeRepo := employee.NewRepository(in.gormDB)
	holidayRepo := holiday.NewRepository(in.gormDB)
	leaveRepo := leave.NewRepository(in.gormDB)
	outboxRepo := kafka.NewOutboxRepository(in.sqlDB)
	payrollRepo := payroll.NewRepository(in.gormDB)
	tenantRepo := tenant.NewRepository(in.gormDB)

	emitter := audit.NewEmitter(logger, audit.NewZapSink(logger), audit.NewOutboxSink(outboxRepo))

	// --- Services ---
	tenantService := tenant.NewService(tenantRepo, zone, emitter, logger)
	calendar := holiday.NewCalendar(holidayRepo, tenantService, in.rdb, logger)
	holidayService := holiday.NewService(holidayRepo, calendar, emitter, logger)
	compensationService := compensation.NewService(in.sqlDB, compensationRepo, employeeRepo, emitter, logger)
	attendanceService := attendance.NewService(in.sqlDB, attendanceRepo, tenantService, employeeRepo, locker, policy, emitter, logger)
	documents := payroll.NewDocuments(payrollRepo, payroll.NewFileStore(cfg.Payroll.PayslipDir), logger)
	payrollService := payroll.NewService(payroll.Dependencies{
		DB:         in.sqlDB,
		Repo:       payrollRepo,
		Outbox:     outboxRepo,
		Counter:    counterRepo,
		Tenants:    tenantService,
		Employees:  employeeRepo,
		Profiles:   compensationService,
		Attendance: attendanceRepo,
		Leaves:     leaveRepo,
		Holidays:   calendar,
		Calculator: calculator,
		Locker:     locker,
		Documents:  documents,
		Audit:      emitter,
		Workers:    cfg.Payroll.Workers,
		Logger:     logger,
	})

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	compensationHandler := compensation.NewHandler(compensationService, logger)
	holidayHandler := holiday.NewHandler(holidayService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	tenantHandler := tenant.NewHandler(tenantService, logger)

	// --- Routes Registration ---
	router.Use(middleware.ContextLogger(logger))
	router.Use(middleware.RateLimitByIP(rate.Limit(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateBurst))
	auth := middleware.AuthMiddleware(cfg.JWT.Secret)
	roles := middleware.RoleGrants{Admin: cfg.AdminRoles, ReadOnly: cfg.ReadOnlyRoles}

	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, auth)
		compensation.RegisterRoutes(api, compensationHandler, roles, auth)
		holiday.RegisterRoutes(api, holidayHandler, roles, auth)
		payroll.RegisterRoutes(api, payrollHandler, roles, in.rdb, auth)
		tenant.RegisterRoutes(api, tenantHandler, roles, auth)
	}

	return emitter, nil
}
