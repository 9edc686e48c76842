package domain

import (
	"context"
	"time"
)

// StatusDelivered is the one-way per-day status value. A day field is either
// empty or StatusDelivered; it is never reset.
const StatusDelivered = "Delivered"

// RegNumPrefix prefixes every registration number, e.g. "REG-1001".
const RegNumPrefix = "REG-"

// Registration is an attendee's enrollment record, linked to at most one coupon.
// swagger:model Registration
type Registration struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Mobile     string    `json:"mobile"`
	CouponCode string    `json:"coupon_code"`
	RegNum     string    `json:"reg_num"`
	GenerateQR bool      `json:"generate_qr"`
	DayOne     string    `json:"day_one,omitempty"`
	DayTwo     string    `json:"day_two,omitempty"`
	DayThree   string    `json:"day_three,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RegistrationWithCoupon bundles a registration with the display name of the
// coupon it was created under, for listing.
type RegistrationWithCoupon struct {
	Registration *Registration `json:"registration"`
	CouponName   string        `json:"coupon_name"`
}

// RegistrationRepository defines storage operations for registrations.
//
// CreateWithQuota must run the quota check, registration-number allocation,
// and insert in a single transaction so that concurrent registrations cannot
// oversubscribe a coupon or be issued the same number. It sets reg.ID and
// reg.RegNum on success and returns ErrQuotaExceeded when the coupon's
// registration count has reached its limit.
type RegistrationRepository interface {
	CreateWithQuota(ctx context.Context, reg *Registration, coupon *Coupon) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	GetByRegNum(ctx context.Context, regNum string) (*Registration, error)
	GetByMobile(ctx context.Context, mobile string) (*Registration, error)
	GetByEmail(ctx context.Context, email string) (*Registration, error)
	List(ctx context.Context, params PaginationParams) ([]*Registration, int, error)
	ListAll(ctx context.Context) ([]*Registration, error)
	ListByDayDelivered(ctx context.Context, day int) ([]*Registration, error)
	SetDayDelivered(ctx context.Context, id string, day int, updatedAt time.Time) error
}

// PaginationParams holds offset-based pagination for the registration listing.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name       string
	Email      string
	Mobile     string
	CouponCode string
}

// RegistrationService defines the registration workflow and read operations.
type RegistrationService interface {
	// Register validates the input, consumes one unit of the coupon's quota,
	// allocates the next registration number, persists the record, and sends a
	// confirmation email when an address is present. A notifier failure is
	// logged but does not fail the registration.
	Register(ctx context.Context, in RegisterInput) (*Registration, error)
	List(ctx context.Context, params PaginationParams) ([]*RegistrationWithCoupon, int, error)
	GetByID(ctx context.Context, id string) (*Registration, error)
	// MarkDayDelivered sets the given day's status to StatusDelivered. A second
	// call for the same day returns ErrInvalidInput rather than succeeding:
	// a duplicate scan is reported to the operator, not swallowed.
	MarkDayDelivered(ctx context.Context, regNum string, day int) (*Registration, error)
	ListDelivered(ctx context.Context, day int) ([]*Registration, error)
	// ExportCSV renders all registrations, newest first, as a CSV document.
	// Returns ErrNotFound when there is nothing to export.
	ExportCSV(ctx context.Context) ([]byte, error)
}
