package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"eventregistration/config"
	"eventregistration/internal/adapters/auth"
	"eventregistration/internal/adapters/email"
	deliveryhttp "eventregistration/internal/delivery/http"
	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/repository/postgres"
	"eventregistration/internal/services"
)

const bcryptCost = 10

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := postgres.NewConnection(cfg.DBUrl)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.AWSRegion,
			AccessKeyID:     cfg.Mailer.AWSAccessKeyID,
			SecretAccessKey: cfg.Mailer.AWSSecretAccessKey,
		},
	})
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}

	couponRepo := postgres.NewCouponRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db, cfg.RegNumSeed)
	adminRepo := postgres.NewAdminUserRepository(db)

	jwt := auth.NewJWT(cfg.JWTSecret)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	couponService := services.NewCouponService(couponRepo)
	registrationService := services.NewRegistrationService(
		registrationRepo, couponRepo, emailService, logger, cfg.RequireEmail,
	)
	authService := services.NewAuthService(adminRepo, auth.NewBcryptHasher(bcryptCost), jwt)

	mux := deliveryhttp.NewRouter(
		controllers.NewCouponController(logger, couponService),
		controllers.NewRegistrationController(logger, registrationService),
		controllers.NewAuthController(logger, authService),
		jwt,
	)
	handler := middleware.LoggingMiddleware(logger,
		middleware.CORS(cfg.CORSAllowedOrigins, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %s", err)
	}

	<-idleConnsClosed
	logger.Info("server stopped")
}
