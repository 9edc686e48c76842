package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventregistration/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var couponCols = []string{"id", "name", "code", "usage_limit", "created_at", "updated_at"}

func TestCouponRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		coupon  *domain.Coupon
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			coupon: &domain.Coupon{
				Name:      "Early Bird",
				Code:      "EARLYBIRD",
				Limit:     100,
				CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO coupons \(name, code, usage_limit, created_at, updated_at\)`).
					WithArgs("Early Bird", "EARLYBIRD", 100, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("coupon-uuid-1"))
			},
			wantID: "coupon-uuid-1",
		},
		{
			name: "unique violation maps to conflict",
			coupon: &domain.Coupon{
				Name:  "Early Bird",
				Code:  "EARLYBIRD",
				Limit: 100,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO coupons`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrConflict,
		},
		{
			name: "db error",
			coupon: &domain.Coupon{
				Name:  "Early Bird",
				Code:  "EARLYBIRD",
				Limit: 100,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO coupons`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewCouponRepository(db)
			err = repo.Create(ctx, tt.coupon)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.coupon.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCouponRepository_GetByCode(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		code    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Coupon
		wantErr error
	}{
		{
			name: "success",
			code: "EARLYBIRD",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, code, usage_limit, created_at, updated_at`).
					WithArgs("EARLYBIRD").
					WillReturnRows(sqlmock.NewRows(couponCols).
						AddRow("c-1", "Early Bird", "EARLYBIRD", 100, created, created))
			},
			want: &domain.Coupon{
				ID: "c-1", Name: "Early Bird", Code: "EARLYBIRD", Limit: 100,
				CreatedAt: created, UpdatedAt: created,
			},
		},
		{
			name: "not found",
			code: "MISSING",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, code, usage_limit, created_at, updated_at`).
					WithArgs("MISSING").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewCouponRepository(db)
			got, err := repo.GetByCode(ctx, tt.code)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCouponRepository_List(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, code, usage_limit, created_at, updated_at\s+FROM coupons\s+ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(couponCols).
			AddRow("c-2", "VIP pass", "VIP", 5, created.Add(time.Hour), created.Add(time.Hour)).
			AddRow("c-1", "Early Bird", "EARLYBIRD", 100, created, created))

	repo := NewCouponRepository(db)
	coupons, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, coupons, 2)
	require.Equal(t, "VIP", coupons[0].Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCouponRepository_Update(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limit := 50

	t.Run("partial update", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE coupons SET updated_at = NOW\(\), usage_limit = \$1\s+WHERE id = \$2`).
			WithArgs(50, "c-1").
			WillReturnRows(sqlmock.NewRows(couponCols).
				AddRow("c-1", "Early Bird", "EARLYBIRD", 50, created, created.Add(time.Hour)))

		repo := NewCouponRepository(db)
		coupon, err := repo.Update(ctx, "c-1", nil, nil, &limit)
		require.NoError(t, err)
		require.Equal(t, 50, coupon.Limit)
		require.Equal(t, "EARLYBIRD", coupon.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE coupons SET`).
			WillReturnError(sql.ErrNoRows)

		repo := NewCouponRepository(db)
		_, err = repo.Update(ctx, "c-missing", nil, nil, &limit)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("code collision maps to conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		code := "VIP"
		mock.ExpectQuery(`UPDATE coupons SET`).
			WillReturnError(&pq.Error{Code: "23505"})

		repo := NewCouponRepository(db)
		_, err = repo.Update(ctx, "c-1", nil, &code, nil)
		require.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestCouponRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM coupons WHERE id = \$1`).
			WithArgs("c-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewCouponRepository(db)
		require.NoError(t, repo.Delete(ctx, "c-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM coupons WHERE id = \$1`).
			WithArgs("c-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewCouponRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, "c-missing"), domain.ErrNotFound)
	})
}
