package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-sales/internal/audit"
	"github.com/BruksfildServices01/barber-sales/internal/auth"
	"github.com/BruksfildServices01/barber-sales/internal/config"
	"github.com/BruksfildServices01/barber-sales/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-sales/internal/infra/repository"
	"github.com/BruksfildServices01/barber-sales/internal/metrics"
	"github.com/BruksfildServices01/barber-sales/internal/middleware"
	ucAccount "github.com/BruksfildServices01/barber-sales/internal/usecase/account"
	ucCatalog "github.com/BruksfildServices01/barber-sales/internal/usecase/catalog"
	ucCustomer "github.com/BruksfildServices01/barber-sales/internal/usecase/customer"
	ucReset "github.com/BruksfildServices01/barber-sales/internal/usecase/passwordreset"
	ucReport "github.com/BruksfildServices01/barber-sales/internal/usecase/report"
	ucVisit "github.com/BruksfildServices01/barber-sales/internal/usecase/visit"
)

// Deps are the process-wide singletons the routes are built from.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Log         *zap.Logger
	Audit       *audit.Dispatcher
	Revocations auth.RevocationStore
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	log := d.Log

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORS(cfg.HTTP.CORSOrigins))
	r.Use(metrics.Middleware())
	r.Use(middleware.Timeout(cfg.RequestTimeout()))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	visitRepo := infraRepo.NewVisitGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)
	accountRepo := infraRepo.NewAccountGormRepository(d.DB)
	customerRepo := infraRepo.NewCustomerGormRepository(d.DB)
	resetRepo := infraRepo.NewPasswordResetGormRepository(d.DB)
	reportRepo := infraRepo.NewReportGormRepository(d.DB)

	jwter := auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.AccessTokenTTL())
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	policy := ucAccount.Policy{
		MinPasswordLength:    cfg.Auth.MinPasswordLength,
		DefaultResetPassword: cfg.Auth.DefaultResetPassword,
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB)

	authHandler := handlers.NewAuthHandler(
		ucAccount.NewLogin(accountRepo, hasher, jwter),
		ucAccount.NewLogout(d.Revocations),
		ucAccount.NewMe(accountRepo),
		ucAccount.NewChangePassword(accountRepo, hasher, policy, d.Audit),
		ucReset.NewRequestReset(resetRepo, d.Audit),
		log,
	)

	passwordRequestHandler := handlers.NewPasswordRequestHandler(
		ucReset.NewListPending(resetRepo),
		ucReset.NewApprove(resetRepo, hasher, cfg.Auth.DefaultResetPassword, d.Audit),
		ucReset.NewReject(resetRepo, d.Audit),
		log,
	)

	barberHandler := handlers.NewBarberHandler(
		ucCatalog.NewListBarbers(catalogRepo),
		ucCatalog.NewCreateBarber(catalogRepo, d.Audit),
		ucCatalog.NewRenameBarber(catalogRepo, d.Audit),
		ucCatalog.NewDeleteBarber(catalogRepo, d.Audit),
		log,
	)

	serviceHandler := handlers.NewServiceHandler(
		ucCatalog.NewListServices(catalogRepo),
		ucCatalog.NewCreateService(catalogRepo, d.Audit),
		ucCatalog.NewUpdateService(catalogRepo, d.Audit),
		ucCatalog.NewDeleteService(catalogRepo, d.Audit),
		log,
	)

	customerHandler := handlers.NewCustomerHandler(
		ucCustomer.NewSearchCustomers(customerRepo),
		ucCustomer.NewCreateCustomer(customerRepo, d.Audit),
		log,
	)

	visitHandler := handlers.NewVisitHandler(
		ucVisit.NewRecordVisit(visitRepo, d.Audit),
		ucVisit.NewListVisits(visitRepo),
		ucVisit.NewExportVisits(visitRepo, cfg.App.Currency),
		log,
	)

	reportHandler := handlers.NewReportHandler(ucReport.NewSummary(reportRepo), log)

	userHandler := handlers.NewUserHandler(
		ucAccount.NewListUsers(accountRepo),
		ucAccount.NewCreateBarberUser(accountRepo, hasher, d.Audit),
		ucAccount.NewResetUserPassword(accountRepo, hasher, policy, d.Audit),
		ucAccount.NewDeleteUser(accountRepo, d.Audit),
		log,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, cfg.App.Timezone, log)

	loginLimiter := middleware.NewIPRateLimiter(cfg.Auth.LoginRatePerSec, cfg.Auth.LoginBurst)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)

	// ======================================================
	// AUTHENTICATED
	// ======================================================
	authed := api.Group("/")
	authed.Use(middleware.Auth(jwter, d.Revocations, accountRepo, log))
	{
		// reachable while a password change is pending
		authed.POST("/auth/logout", authHandler.Logout)
		authed.GET("/auth/me", authHandler.Me)
		authed.POST("/auth/change-password", authHandler.ChangePassword)
	}

	secured := authed.Group("/")
	secured.Use(middleware.RequirePasswordChanged())
	{
		secured.POST("/auth/request-password-reset", authHandler.RequestPasswordReset)

		secured.GET("/password-requests", passwordRequestHandler.ListPending)
		secured.POST("/password-requests/:id/approve", passwordRequestHandler.Approve)
		secured.POST("/password-requests/:id/reject", passwordRequestHandler.Reject)

		secured.GET("/barbers", barberHandler.List)
		secured.POST("/barbers", barberHandler.Create)
		secured.PATCH("/barbers/:id", barberHandler.Rename)
		secured.DELETE("/barbers/:id", barberHandler.Delete)

		secured.GET("/services", serviceHandler.List)
		secured.POST("/services", serviceHandler.Create)
		secured.PATCH("/services/:id", serviceHandler.Update)
		secured.DELETE("/services/:id", serviceHandler.Delete)

		secured.GET("/customers", customerHandler.Search)
		secured.POST("/customers", customerHandler.Create)

		secured.GET("/visits", visitHandler.List)
		secured.POST("/visits", visitHandler.Record)
		secured.GET("/visits/export", visitHandler.Export)

		secured.GET("/reports/summary", reportHandler.Summary)

		secured.GET("/users", userHandler.List)
		secured.POST("/users/barber", userHandler.CreateBarber)
		secured.POST("/users/:id/reset-password", userHandler.ResetPassword)
		secured.DELETE("/users/:id", userHandler.Delete)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}
}
