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

type CouponController struct {
	Logger  *slog.Logger
	Service domain.CouponService
}

func NewCouponController(logger *slog.Logger, svc domain.CouponService) *CouponController {
	return &CouponController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateCouponRequest is the request body for POST /coupons.
type CreateCouponRequest struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Limit int    `json:"limit"`
}

// Validate implements helpers.Validator.
func (r *CreateCouponRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Code) == "" {
		errs = append(errs, "code is required")
	}
	if r.Limit <= 0 {
		errs = append(errs, "limit must be greater than 0")
	}
	return errs
}

// Create godoc
// @Summary Create a coupon
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateCouponRequest true "Coupon fields"
// @Success 201 {object} helpers.APIResponse "data is the created coupon"
// @Failure 400 {object} helpers.APIResponse
// @Failure 409 {object} helpers.APIResponse "coupon code already exists"
// @Router /coupons [post]
func (c *CouponController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCouponRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	coupon, err := c.Service.Create(r.Context(), req.Name, req.Code, req.Limit)
	if err != nil {
		c.writeError(w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, "Coupon created successfully", coupon)
}

// List godoc
// @Summary List all coupons, most recent first
// @Tags coupons
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of coupons"
// @Router /coupons [get]
func (c *CouponController) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := c.Service.List(r.Context())
	if err != nil {
		c.writeError(w, r, err, "")
		return
	}
	helpers.WriteJSONList(w, http.StatusOK, len(coupons), coupons)
}

// GetByID godoc
// @Summary Get a coupon by ID
// @Tags coupons
// @Produce json
// @Param couponID path string true "Coupon ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "invalid coupon id"
// @Failure 404 {object} helpers.APIResponse
// @Router /coupons/{couponID} [get]
func (c *CouponController) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("couponID")
	if uuid.Validate(id) != nil {
		c.writeError(w, r, fmt.Errorf("%w: invalid coupon id", domain.ErrInvalidID), "")
		return
	}

	coupon, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err, "coupon not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "", coupon)
}

// UpdateCouponRequest is the request body for PUT /coupons/{couponID}.
// Omitted fields retain their prior values.
type UpdateCouponRequest struct {
	Name  *string `json:"name"`
	Code  *string `json:"code"`
	Limit *int    `json:"limit"`
}

// Validate implements helpers.Validator.
func (r *UpdateCouponRequest) Validate() []string {
	if r.Name == nil && r.Code == nil && r.Limit == nil {
		return []string{"nothing to update"}
	}
	var errs []string
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if r.Code != nil && strings.TrimSpace(*r.Code) == "" {
		errs = append(errs, "code cannot be empty")
	}
	if r.Limit != nil && *r.Limit <= 0 {
		errs = append(errs, "limit must be greater than 0")
	}
	return errs
}

// Update godoc
// @Summary Update a coupon (partial)
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param couponID path string true "Coupon ID (UUID)"
// @Param body body controllers.UpdateCouponRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data is the updated coupon"
// @Failure 400 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Failure 409 {object} helpers.APIResponse "coupon code already exists"
// @Router /coupons/{couponID} [put]
func (c *CouponController) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("couponID")
	if uuid.Validate(id) != nil {
		c.writeError(w, r, fmt.Errorf("%w: invalid coupon id", domain.ErrInvalidID), "")
		return
	}

	var req UpdateCouponRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	coupon, err := c.Service.Update(r.Context(), id, req.Name, req.Code, req.Limit)
	if err != nil {
		c.writeError(w, r, err, "coupon not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "Coupon updated successfully", coupon)
}

// Delete godoc
// @Summary Delete a coupon
// @Tags coupons
// @Produce json
// @Security BearerAuth
// @Param couponID path string true "Coupon ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "invalid coupon id"
// @Failure 404 {object} helpers.APIResponse
// @Router /coupons/{couponID} [delete]
func (c *CouponController) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("couponID")
	if uuid.Validate(id) != nil {
		c.writeError(w, r, fmt.Errorf("%w: invalid coupon id", domain.ErrInvalidID), "")
		return
	}

	if err := c.Service.Delete(r.Context(), id); err != nil {
		c.writeError(w, r, err, "coupon not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "Coupon deleted successfully", nil)
}

func (c *CouponController) writeError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
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
