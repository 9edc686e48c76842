package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventregistration/internal/domain"
)

type couponService struct {
	couponRepo domain.CouponRepository
}

// NewCouponService creates a CouponService backed by the given repository.
func NewCouponService(couponRepo domain.CouponRepository) domain.CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) Create(ctx context.Context, name, code string, limit int) (*domain.Coupon, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" {
		return nil, fmt.Errorf("%w: coupon name is required", domain.ErrInvalidInput)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: coupon code is required", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be greater than 0", domain.ErrInvalidInput)
	}

	now := time.Now()
	coupon := domain.NewCoupon(name, code, limit, now, now)
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: coupon code already exists", domain.ErrConflict)
		}
		return nil, fmt.Errorf("create coupon: %w", err)
	}
	return coupon, nil
}

func (s *couponService) List(ctx context.Context) ([]*domain.Coupon, error) {
	coupons, err := s.couponRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	if coupons == nil {
		coupons = []*domain.Coupon{}
	}
	return coupons, nil
}

func (s *couponService) GetByID(ctx context.Context, id string) (*domain.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	return coupon, nil
}

func (s *couponService) Update(ctx context.Context, id string, name, code *string, limit *int) (*domain.Coupon, error) {
	if name == nil && code == nil && limit == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: coupon name cannot be empty", domain.ErrInvalidInput)
		}
		name = &trimmed
	}
	if code != nil {
		trimmed := strings.TrimSpace(*code)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: coupon code cannot be empty", domain.ErrInvalidInput)
		}
		code = &trimmed
	}
	if limit != nil && *limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be greater than 0", domain.ErrInvalidInput)
	}

	coupon, err := s.couponRepo.Update(ctx, id, name, code, limit)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrNotFound
		case errors.Is(err, domain.ErrConflict):
			return nil, fmt.Errorf("%w: coupon code already exists", domain.ErrConflict)
		}
		return nil, fmt.Errorf("update coupon: %w", err)
	}
	return coupon, nil
}

func (s *couponService) Delete(ctx context.Context, id string) error {
	if err := s.couponRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete coupon: %w", err)
	}
	return nil
}
