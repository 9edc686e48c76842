package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"eventregistration/internal/domain"
)

var mobileRegex = regexp.MustCompile(`^\d{10}$`)

// notifyTimeout bounds the confirmation-email send so a slow provider cannot
// stall the request.
const notifyTimeout = 10 * time.Second

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	couponRepo       domain.CouponRepository
	emailService     domain.EmailService
	logger           *slog.Logger
	requireEmail     bool
}

// NewRegistrationService creates a RegistrationService. When requireEmail is
// true, registrations without an email address are rejected.
func NewRegistrationService(
	registrationRepo domain.RegistrationRepository,
	couponRepo domain.CouponRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	requireEmail bool,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		couponRepo:       couponRepo,
		emailService:     emailService,
		logger:           logger,
		requireEmail:     requireEmail,
	}
}

func (s *registrationService) Register(ctx context.Context, in domain.RegisterInput) (*domain.Registration, error) {
	name := strings.TrimSpace(in.Name)
	mobile := strings.TrimSpace(in.Mobile)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	couponCode := strings.TrimSpace(in.CouponCode)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if mobile == "" {
		return nil, fmt.Errorf("%w: mobile is required", domain.ErrInvalidInput)
	}
	if !mobileRegex.MatchString(mobile) {
		return nil, fmt.Errorf("%w: mobile must be exactly 10 digits", domain.ErrInvalidInput)
	}
	if couponCode == "" {
		return nil, fmt.Errorf("%w: coupon code is required", domain.ErrInvalidInput)
	}
	if email == "" && s.requireEmail {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
		}
	}

	if _, err := s.registrationRepo.GetByMobile(ctx, mobile); err == nil {
		return nil, fmt.Errorf("%w: mobile already registered", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check mobile: %w", err)
	}
	if email != "" {
		if _, err := s.registrationRepo.GetByEmail(ctx, email); err == nil {
			return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
	}

	coupon, err := s.couponRepo.GetByCode(ctx, couponCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid coupon", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("get coupon: %w", err)
	}

	now := time.Now()
	reg := &domain.Registration{
		Name:       name,
		Email:      email,
		Mobile:     mobile,
		CouponCode: coupon.Code,
		GenerateQR: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.registrationRepo.CreateWithQuota(ctx, reg, coupon); err != nil {
		switch {
		case errors.Is(err, domain.ErrQuotaExceeded):
			return nil, domain.ErrQuotaExceeded
		case errors.Is(err, domain.ErrConflict):
			return nil, fmt.Errorf("%w: mobile or email already registered", domain.ErrConflict)
		case errors.Is(err, domain.ErrNotFound):
			// Coupon deleted between the lookup and the insert.
			return nil, fmt.Errorf("%w: invalid coupon", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	// The registration is committed at this point. A notifier failure is an
	// operational concern, not the attendee's problem.
	if email != "" {
		s.sendConfirmation(reg)
	}

	return reg, nil
}

func (s *registrationService) sendConfirmation(reg *domain.Registration) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err := s.emailService.SendRegistrationConfirmation(ctx, &domain.RegistrationConfirmationData{
		Name:   reg.Name,
		Email:  reg.Email,
		Mobile: reg.Mobile,
		RegNum: reg.RegNum,
	})
	if err != nil {
		s.logger.Warn("confirmation email failed",
			"reg_num", reg.RegNum,
			"email", reg.Email,
			"err", err,
		)
	}
}

func (s *registrationService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.RegistrationWithCoupon, int, error) {
	regs, total, err := s.registrationRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}

	// Resolve coupon display names one code at a time with a memo map; the
	// number of distinct coupons per page is small.
	namesByCode := make(map[string]string)
	result := make([]*domain.RegistrationWithCoupon, 0, len(regs))
	for _, reg := range regs {
		name, ok := namesByCode[reg.CouponCode]
		if !ok {
			coupon, err := s.couponRepo.GetByCode(ctx, reg.CouponCode)
			switch {
			case err == nil:
				name = coupon.Name
			case errors.Is(err, domain.ErrNotFound):
				// Coupon deleted after the fact; fall back to the raw code.
				name = reg.CouponCode
			default:
				return nil, 0, fmt.Errorf("get coupon for registration: %w", err)
			}
			namesByCode[reg.CouponCode] = name
		}
		result = append(result, &domain.RegistrationWithCoupon{
			Registration: reg,
			CouponName:   name,
		})
	}
	return result, total, nil
}

func (s *registrationService) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

// MarkDayDelivered rejects a second marking of the same day with
// ErrInvalidInput instead of succeeding idempotently: a duplicate scan at the
// delivery desk is something the operator needs to see.
func (s *registrationService) MarkDayDelivered(ctx context.Context, regNum string, day int) (*domain.Registration, error) {
	regNum = strings.TrimSpace(regNum)
	if regNum == "" {
		return nil, fmt.Errorf("%w: registration number is required", domain.ErrInvalidInput)
	}
	if day < 1 || day > 3 {
		return nil, fmt.Errorf("%w: day must be 1, 2, or 3", domain.ErrInvalidInput)
	}

	reg, err := s.registrationRepo.GetByRegNum(ctx, regNum)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}

	if dayStatus(reg, day) == domain.StatusDelivered {
		return nil, fmt.Errorf("%w: day %d already marked as delivered", domain.ErrInvalidInput, day)
	}

	now := time.Now()
	if err := s.registrationRepo.SetDayDelivered(ctx, reg.ID, day, now); err != nil {
		return nil, fmt.Errorf("mark day delivered: %w", err)
	}
	setDayStatus(reg, day, domain.StatusDelivered)
	reg.UpdatedAt = now
	return reg, nil
}

func (s *registrationService) ListDelivered(ctx context.Context, day int) ([]*domain.Registration, error) {
	if day < 1 || day > 3 {
		return nil, fmt.Errorf("%w: day must be 1, 2, or 3", domain.ErrInvalidInput)
	}
	regs, err := s.registrationRepo.ListByDayDelivered(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("list delivered: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}

func dayStatus(reg *domain.Registration, day int) string {
	switch day {
	case 1:
		return reg.DayOne
	case 2:
		return reg.DayTwo
	case 3:
		return reg.DayThree
	}
	return ""
}

func setDayStatus(reg *domain.Registration, day int, status string) {
	switch day {
	case 1:
		reg.DayOne = status
	case 2:
		reg.DayTwo = status
	case 3:
		reg.DayThree = status
	}
}
