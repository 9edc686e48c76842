package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Coupon mutations, day marking, and CSV export require a Bearer token.
func NewRouter(
	couponController *controllers.CouponController,
	registrationController *controllers.RegistrationController,
	authController *controllers.AuthController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier)

	// Health check
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Backend is running"))
	})

	// Coupons
	mux.HandleFunc("POST /coupons", requireAuth(couponController.Create))
	mux.HandleFunc("GET /coupons", couponController.List)
	mux.HandleFunc("GET /coupons/{couponID}", couponController.GetByID)
	mux.HandleFunc("PUT /coupons/{couponID}", requireAuth(couponController.Update))
	mux.HandleFunc("DELETE /coupons/{couponID}", requireAuth(couponController.Delete))

	// Registrations
	mux.HandleFunc("POST /registers", registrationController.Register)
	mux.HandleFunc("GET /registers", registrationController.List)
	mux.HandleFunc("GET /registers/export/csv", requireAuth(registrationController.ExportCSV))
	mux.HandleFunc("GET /registers/{registrationID}", registrationController.GetByID)

	// Per-day delivery
	for day, path := range map[int]string{1: "day1", 2: "day2", 3: "day3"} {
		mux.HandleFunc("POST /registers/"+path, requireAuth(registrationController.MarkDayDelivered(day)))
		mux.HandleFunc("GET /registers/"+path, registrationController.ListDelivered(day))
	}

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
