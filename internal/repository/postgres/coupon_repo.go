package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventregistration/internal/domain"
)

type couponRepository struct {
	DB *sql.DB
}

func NewCouponRepository(db *sql.DB) domain.CouponRepository {
	return &couponRepository{
		DB: db,
	}
}

func (r *couponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	query := `
		INSERT INTO coupons (name, code, usage_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, c.Name, c.Code, c.Limit, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *couponRepository) GetByID(ctx context.Context, id string) (*domain.Coupon, error) {
	query := `
		SELECT id, name, code, usage_limit, created_at, updated_at
		FROM coupons
		WHERE id = $1
	`
	c := &domain.Coupon{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Code, &c.Limit, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	query := `
		SELECT id, name, code, usage_limit, created_at, updated_at
		FROM coupons
		WHERE code = $1
	`
	c := &domain.Coupon{}
	err := r.DB.QueryRowContext(ctx, query, code).
		Scan(&c.ID, &c.Name, &c.Code, &c.Limit, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *couponRepository) List(ctx context.Context) ([]*domain.Coupon, error) {
	query := `
		SELECT id, name, code, usage_limit, created_at, updated_at
		FROM coupons
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coupons := make([]*domain.Coupon, 0)
	for rows.Next() {
		c := &domain.Coupon{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Limit, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

func (r *couponRepository) Update(ctx context.Context, id string, name, code *string, limit *int) (*domain.Coupon, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *name)
		n++
	}
	if code != nil {
		setClauses = append(setClauses, fmt.Sprintf("code = $%d", n))
		args = append(args, *code)
		n++
	}
	if limit != nil {
		setClauses = append(setClauses, fmt.Sprintf("usage_limit = $%d", n))
		args = append(args, *limit)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE coupons SET %s
		WHERE id = $%d
		RETURNING id, name, code, usage_limit, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)
	c := &domain.Coupon{}
	err := r.DB.QueryRowContext(ctx, query, args...).
		Scan(&c.ID, &c.Name, &c.Code, &c.Limit, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return c, nil
}

func (r *couponRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM coupons WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
