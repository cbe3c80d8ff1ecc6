package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cukurin/booking-api/internal/audit"
	"github.com/cukurin/booking-api/internal/config"
	"github.com/cukurin/booking-api/internal/gateway"
	"github.com/cukurin/booking-api/internal/handlers"
	infraRepo "github.com/cukurin/booking-api/internal/infra/repository"
	"github.com/cukurin/booking-api/internal/middleware"
	"github.com/cukurin/booking-api/internal/upload"
	ucPayment "github.com/cukurin/booking-api/internal/usecase/payment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, gw gateway.Gateway) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	paymentRepo := infraRepo.NewPaymentGormRepository(db)
	saver := upload.NewSaver(cfg.UploadDir)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — PAYMENTS
	// ======================================================
	snapUC := ucPayment.NewCreateSnapPayment(paymentRepo, gw, auditDispatcher)
	chargeUC := ucPayment.NewChargePayment(paymentRepo, gw, auditDispatcher)
	statusUC := ucPayment.NewCheckStatus(gw)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	barberHandler := handlers.NewBarberHandler(db, saver)
	bookingHandler := handlers.NewBookingHandler(db, auditDispatcher)
	reviewHandler := handlers.NewReviewHandler(db)
	paymentHandler := handlers.NewPaymentHandler(
		db,
		saver,
		auditDispatcher,
		snapUC,
		chargeUC,
		statusUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH / USERS
		// ------------------------------
		auth := api.Group("/auth")
		{
			auth.POST("/register-user", authHandler.RegisterUser)
			auth.POST("/register-barber", authHandler.RegisterBarber)
			auth.POST("/register-admin",
				middleware.RequireRoles(cfg, "admin", "barber"),
				authHandler.RegisterAdmin,
			)
			auth.POST("/login", authHandler.Login)

			auth.GET("/", authHandler.List)
			auth.GET("/:id", authHandler.GetByID)
			auth.PUT("/:id", authHandler.Update)
			auth.DELETE("/:id", authHandler.Delete)
		}

		// ------------------------------
		// BARBERS
		// ------------------------------
		barbers := api.Group("/barbers")
		{
			barbers.POST("/add", barberHandler.Add)
			barbers.PUT("/update/:id", barberHandler.Update)
			barbers.DELETE("/:id", barberHandler.Delete)
			barbers.GET("/", barberHandler.List)
			barbers.GET("/:id", barberHandler.GetByID)
		}

		// ------------------------------
		// BOOKINGS
		// ------------------------------
		bookings := api.Group("/bookings")
		{
			bookings.POST("/add", bookingHandler.Create)
			bookings.GET("/", bookingHandler.List)
			bookings.GET("/:id", bookingHandler.GetByID)
			bookings.PUT("/:id", bookingHandler.Update)
			bookings.DELETE("/:id", bookingHandler.Delete)
			bookings.PUT("/:id/status", bookingHandler.UpdateStatus)
		}

		// ------------------------------
		// REVIEWS
		// ------------------------------
		reviews := api.Group("/reviews")
		{
			reviews.POST("/add", reviewHandler.Add)
			reviews.PUT("/:barberId", reviewHandler.BulkUpdateByBarber)
			reviews.GET("/", reviewHandler.ListAll)
			reviews.GET("/:barberId", reviewHandler.ListByBarber)
			reviews.GET("/review/:reviewId", reviewHandler.GetByID)
			reviews.DELETE("/:reviewId", reviewHandler.Delete)
		}

		// ------------------------------
		// PAYMENTS
		// ------------------------------
		payments := api.Group("/payments")
		{
			payments.POST("/snap", paymentHandler.CreateSnapToken)
			payments.POST("/pay", paymentHandler.ProcessPayment)
			payments.POST("/payment-status-snap", paymentHandler.StatusSnap)
			payments.POST("/upload-proof", paymentHandler.UploadProof)

			payments.GET("/", paymentHandler.List)
			payments.GET("/:id", paymentHandler.GetByOrderID)
			payments.GET("/:id/status-order", paymentHandler.StatusOrder)
			payments.GET("/:id/status", paymentHandler.GetStatus)
			payments.GET("/barber/:barberId", paymentHandler.ListByBarber)

			payments.PUT("/:id", paymentHandler.UpdateStatus)
			payments.DELETE("/:id", paymentHandler.Delete)
		}
	}
}
