package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventregistration/internal/domain"
)

const registrationColumns = `id, name, email, mobile, coupon_code, reg_num, generate_qr,
		day_one, day_two, day_three, created_at, updated_at`

type registrationRepository struct {
	DB *sql.DB
	// regNumSeed is the value issued to the very first registration.
	regNumSeed int64
}

func NewRegistrationRepository(db *sql.DB, regNumSeed int64) domain.RegistrationRepository {
	return &registrationRepository{
		DB:         db,
		regNumSeed: regNumSeed,
	}
}

// CreateWithQuota inserts the registration inside one transaction:
// the coupon row is locked FOR UPDATE so the count-vs-limit check is
// serialized per coupon, and the registration number comes from a single-row
// counter bumped atomically. Two concurrent registrations against the same
// near-exhausted coupon cannot both pass the quota check, and no two
// registrations can ever be issued the same number.
func (r *registrationRepository) CreateWithQuota(ctx context.Context, reg *domain.Registration, coupon *domain.Coupon) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var limit int
	err = tx.QueryRowContext(ctx,
		`SELECT usage_limit FROM coupons WHERE id = $1 FOR UPDATE`,
		coupon.ID,
	).Scan(&limit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock coupon: %w", err)
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE coupon_code = $1`,
		coupon.Code,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("count registrations: %w", err)
	}
	if count >= limit {
		return domain.ErrQuotaExceeded
	}

	// First call seeds the counter; every later call increments it.
	var seq int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO registration_counter (id, value)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET value = registration_counter.value + 1
		RETURNING value
	`, r.regNumSeed).Scan(&seq)
	if err != nil {
		return fmt.Errorf("next reg num: %w", err)
	}
	reg.RegNum = fmt.Sprintf("%s%d", domain.RegNumPrefix, seq)

	err = tx.QueryRowContext(ctx, `
		INSERT INTO registrations (name, email, mobile, coupon_code, reg_num, generate_qr, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		reg.Name, nullString(reg.Email), reg.Mobile, reg.CouponCode,
		reg.RegNum, reg.GenerateQR, reg.CreatedAt, reg.UpdatedAt,
	).Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *registrationRepository) GetByRegNum(ctx context.Context, regNum string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE reg_num = $1`
	return r.getOne(ctx, query, regNum)
}

func (r *registrationRepository) GetByMobile(ctx context.Context, mobile string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE mobile = $1`
	return r.getOne(ctx, query, mobile)
}

func (r *registrationRepository) GetByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *registrationRepository) getOne(ctx context.Context, query string, arg any) (*domain.Registration, error) {
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + registrationColumns + `
		FROM registrations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	regs, err := collectRegistrations(rows)
	if err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

func (r *registrationRepository) ListAll(ctx context.Context) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + `
		FROM registrations
		ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRegistrations(rows)
}

func (r *registrationRepository) ListByDayDelivered(ctx context.Context, day int) ([]*domain.Registration, error) {
	col, err := dayColumn(day)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + registrationColumns + `
		FROM registrations
		WHERE ` + col + ` = $1
		ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, domain.StatusDelivered)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRegistrations(rows)
}

func (r *registrationRepository) SetDayDelivered(ctx context.Context, id string, day int, updatedAt time.Time) error {
	col, err := dayColumn(day)
	if err != nil {
		return err
	}
	query := `UPDATE registrations SET ` + col + ` = $1, updated_at = $2 WHERE id = $3`
	result, err := r.DB.ExecContext(ctx, query, domain.StatusDelivered, updatedAt, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// dayColumn maps a day number to its column name. Only validated day values
// ever reach SQL text.
func dayColumn(day int) (string, error) {
	switch day {
	case 1:
		return "day_one", nil
	case 2:
		return "day_two", nil
	case 3:
		return "day_three", nil
	}
	return "", fmt.Errorf("%w: day must be 1, 2, or 3", domain.ErrInvalidInput)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var emailNull, dayOneNull, dayTwoNull, dayThreeNull sql.NullString
	err := row.Scan(
		&reg.ID, &reg.Name, &emailNull, &reg.Mobile, &reg.CouponCode,
		&reg.RegNum, &reg.GenerateQR,
		&dayOneNull, &dayTwoNull, &dayThreeNull,
		&reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	reg.Email = emailNull.String
	reg.DayOne = dayOneNull.String
	reg.DayTwo = dayTwoNull.String
	reg.DayThree = dayThreeNull.String
	return reg, nil
}

func collectRegistrations(rows *sql.Rows) ([]*domain.Registration, error) {
	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// nullString stores empty strings as NULL so the partial unique index on
// email only applies to rows that have one.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
