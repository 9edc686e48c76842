package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterRequest is the request body for POST /registers.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	CouponCode string `json:"coupon_code"`
}

// Validate implements helpers.Validator. Field-format rules (mobile digits,
// email syntax, email-required) live in the service so they hold for every
// caller, not just this endpoint.
func (r *RegisterRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Mobile) == "" {
		errs = append(errs, "mobile is required")
	}
	if strings.TrimSpace(r.CouponCode) == "" {
		errs = append(errs, "coupon_code is required")
	}
	return errs
}

// Register godoc
// @Summary Register an attendee
// @Description Creates a registration against the coupon's quota, allocates the next registration number, and sends a confirmation email when an address is given.
// @Tags registers
// @Accept json
// @Produce json
// @Param body body controllers.RegisterRequest true "Registration fields"
// @Success 201 {object} helpers.APIResponse "data is the created registration"
// @Failure 400 {object} helpers.APIResponse "validation failure, invalid coupon, or coupon limit reached"
// @Failure 409 {object} helpers.APIResponse "mobile or email already registered"
// @Router /registers [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	reg, err := c.Service.Register(r.Context(), domain.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Mobile:     req.Mobile,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		c.writeError(w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, "Registration created successfully", reg)
}

// List godoc
// @Summary List registrations, most recent first
// @Description Each item carries the registration and the display name of its coupon. Paginated via page and page_size query parameters.
// @Tags registers
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data is an array of registration + coupon_name objects; count is the total"
// @Router /registers [get]
func (c *RegistrationController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	items, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		c.writeError(w, r, err, "")
		return
	}
	helpers.WriteJSONList(w, http.StatusOK, total, items)
}

// GetByID godoc
// @Summary Get a registration by ID
// @Tags registers
// @Produce json
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "invalid registration id"
// @Failure 404 {object} helpers.APIResponse
// @Router /registers/{registrationID} [get]
func (c *RegistrationController) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("registrationID")
	if uuid.Validate(id) != nil {
		c.writeError(w, r, fmt.Errorf("%w: invalid registration id", domain.ErrInvalidID), "")
		return
	}

	reg, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err, "registration not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "", reg)
}

// ExportCSV godoc
// @Summary Export all registrations as CSV
// @Tags registers
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV payload, attachment registrations.csv"
// @Failure 404 {object} helpers.APIResponse "no registrations to export"
// @Router /registers/export/csv [get]
func (c *RegistrationController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := c.Service.ExportCSV(r.Context())
	if err != nil {
		c.writeError(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="registrations.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// MarkDayRequest is the request body for POST /registers/day{1,2,3}.
type MarkDayRequest struct {
	RegNum string `json:"reg_num"`
}

// Validate implements helpers.Validator.
func (r *MarkDayRequest) Validate() []string {
	if strings.TrimSpace(r.RegNum) == "" {
		return []string{"reg_num is required"}
	}
	return nil
}

// MarkDayDelivered godoc
// @Summary Mark a day's delivery for a registration
// @Description Sets the day's status to Delivered. A registration already marked for that day is rejected with 400 so duplicate scans are visible to the operator.
// @Tags registers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.MarkDayRequest true "Registration number"
// @Success 200 {object} helpers.APIResponse "data is the updated registration"
// @Failure 400 {object} helpers.APIResponse "already marked as delivered"
// @Failure 404 {object} helpers.APIResponse
// @Router /registers/day{day} [post]
func (c *RegistrationController) MarkDayDelivered(day int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MarkDayRequest
		if !helpers.DecodeAndValidate(w, r, &req) {
			return
		}

		reg, err := c.Service.MarkDayDelivered(r.Context(), req.RegNum, day)
		if err != nil {
			c.writeError(w, r, err, "registration not found")
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, fmt.Sprintf("Day %d marked successfully", day), reg)
	}
}

// ListDelivered godoc
// @Summary List registrations delivered on a day
// @Tags registers
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of registrations"
// @Router /registers/day{day} [get]
func (c *RegistrationController) ListDelivered(day int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regs, err := c.Service.ListDelivered(r.Context(), day)
		if err != nil {
			c.writeError(w, r, err, "")
			return
		}
		helpers.WriteJSONList(w, http.StatusOK, len(regs), regs)
	}
}

func (c *RegistrationController) writeError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrQuotaExceeded):
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidID):
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		if notFoundMsg == "" {
			notFoundMsg = err.Error()
		}
		helpers.WriteJSONError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrConflict):
		helpers.WriteJSONError(w, http.StatusConflict, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "server error")
	}
}
