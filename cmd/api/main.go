package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cukurin/booking-api/internal/config"
	dbpkg "github.com/cukurin/booking-api/internal/db"
	"github.com/cukurin/booking-api/internal/gateway"
	"github.com/cukurin/booking-api/internal/middleware"
	"github.com/cukurin/booking-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	gw := gateway.NewMidtrans(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Uploaded images and proofs are served straight from disk.
	r.Static("/uploads", cfg.UploadDir)

	routes.RegisterRoutes(r, db, cfg, gw)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
