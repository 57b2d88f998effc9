package router

import (
	"time"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/config"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/country"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/handler"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/infra"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/middleware"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/repository"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/service"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	loc := country.SettingsFor(cfg.ClinicCountry)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	billingConfigRepo := repository.NewBillingConfigRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	patientSvc := service.NewPatientService(patientRepo)
	doctorSvc := service.NewDoctorService(doctorRepo)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, patientRepo, doctorRepo)
	catalogSvc := service.NewCatalogService(serviceRepo, doctorRepo)
	billingConfigSvc := service.NewBillingConfigService(billingConfigRepo, loc)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, patientRepo, doctorRepo, serviceRepo, billingConfigRepo, dispatcher, loc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	patientsH := handler.NewPatientsHandler(patientSvc)
	doctorsH := handler.NewDoctorsHandler(doctorSvc)
	appointmentsH := handler.NewAppointmentsHandler(appointmentSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	billingConfigH := handler.NewBillingConfigHandler(billingConfigSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: reception, doctor, admin — declared per-endpoint

		patients := v1.Group("/patients", middleware.RequireRole("reception", "doctor", "admin"))
		{
			patients.POST("", patientsH.Create)
			patients.GET("", patientsH.List)
			patients.GET("/:id", patientsH.Get)
			patients.PUT("/:id", patientsH.Update)
			patients.DELETE("/:id", middleware.RequireRole("reception", "admin"), patientsH.Deactivate)
			patients.PATCH("/:id/reactivate", middleware.RequireRole("reception", "admin"), patientsH.Reactivate)
		}

		// Doctor roster — everyone can read, only admin can write
		v1.GET("/doctors", middleware.RequireRole("reception", "doctor", "admin"), doctorsH.List)
		v1.GET("/doctors/:id", middleware.RequireRole("reception", "doctor", "admin"), doctorsH.Get)
		doctors := v1.Group("/doctors", middleware.RequireRole("admin"))
		{
			doctors.POST("", doctorsH.Create)
			doctors.PUT("/:id", doctorsH.Update)
			doctors.DELETE("/:id", doctorsH.Deactivate)
			doctors.PATCH("/:id/reactivate", doctorsH.Reactivate)
		}

		appts := v1.Group("/appointments", middleware.RequireRole("reception", "doctor", "admin"))
		{
			appts.POST("", appointmentsH.Create)
			appts.GET("", appointmentsH.List)
			appts.GET("/:id", appointmentsH.Get)
			appts.PATCH("/:id/reschedule", appointmentsH.Reschedule)
			appts.PATCH("/:id/complete", appointmentsH.Complete)
			appts.DELETE("/:id", appointmentsH.Cancel)
			appts.PATCH("/:id/no-show", appointmentsH.MarkNoShow)
		}

		// Service catalog — readable by all staff, writable by admin
		v1.GET("/services", middleware.RequireRole("reception", "doctor", "admin"), catalogH.List)
		v1.GET("/services/:id", middleware.RequireRole("reception", "doctor", "admin"), catalogH.Get)
		services := v1.Group("/services", middleware.RequireRole("admin"))
		{
			services.POST("", catalogH.Create)
			services.PUT("/:id", catalogH.Update)
			services.DELETE("/:id", catalogH.Deactivate)
			services.PATCH("/:id/reactivate", catalogH.Reactivate)
			services.PUT("/:id/price-overrides", catalogH.SetPriceOverride)
			services.DELETE("/:id/price-overrides/:doctor_id", catalogH.RemovePriceOverride)
		}

		invoices := v1.Group("/invoices", middleware.RequireRole("reception", "admin"))
		{
			invoices.POST("", invoicesH.Create)
			invoices.GET("", invoicesH.List)
			invoices.GET("/:id", invoicesH.Get)
			invoices.PUT("/:id", invoicesH.Update)
			invoices.POST("/:id/send", invoicesH.Send)
			invoices.POST("/:id/cancel", invoicesH.Cancel)
			invoices.POST("/:id/refund", middleware.RequireRole("admin"), invoicesH.Refund)
			invoices.POST("/:id/payments", invoicesH.RecordPayment)
			invoices.GET("/:id/pdf", invoicesH.DownloadPDF)
		}

		// Billing configuration — tax and discount rules are admin-only writes
		billing := v1.Group("/billing")
		{
			billing.GET("/settings", middleware.RequireRole("reception", "doctor", "admin"), billingConfigH.CountrySettings)
			billing.GET("/taxes", middleware.RequireRole("reception", "admin"), billingConfigH.ListTaxRates)
			billing.POST("/taxes", middleware.RequireRole("admin"), billingConfigH.CreateTaxRate)
			billing.PUT("/taxes/:id", middleware.RequireRole("admin"), billingConfigH.UpdateTaxRate)
			billing.GET("/discounts", middleware.RequireRole("reception", "admin"), billingConfigH.ListDiscounts)
			billing.POST("/discounts", middleware.RequireRole("admin"), billingConfigH.CreateDiscount)
			billing.PUT("/discounts/:id", middleware.RequireRole("admin"), billingConfigH.UpdateDiscount)
		}

		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PUT("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
			users.PATCH("/:id/reactivate", authH.ReactivateUser)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
