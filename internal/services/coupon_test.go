package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"eventregistration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCouponRepo implements domain.CouponRepository for tests.
type fakeCouponRepo struct {
	byID      map[string]*domain.Coupon
	byCode    map[string]*domain.Coupon
	nextID    int
	createErr error
	getErr    error
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{
		byID:   make(map[string]*domain.Coupon),
		byCode: make(map[string]*domain.Coupon),
	}
}

func (f *fakeCouponRepo) add(c *domain.Coupon) *domain.Coupon {
	f.nextID++
	if c.ID == "" {
		c.ID = fmt.Sprintf("coupon-%d", f.nextID)
	}
	f.byID[c.ID] = c
	f.byCode[c.Code] = c
	return c
}

// The fake wraps its sentinels the way the real repository may, so callers
// must match with errors.Is.
func (f *fakeCouponRepo) Create(ctx context.Context, c *domain.Coupon) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byCode[c.Code]; ok {
		return fmt.Errorf("insert coupon: %w", domain.ErrConflict)
	}
	f.add(c)
	return nil
}

func (f *fakeCouponRepo) GetByID(ctx context.Context, id string) (*domain.Coupon, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if c, ok := f.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, fmt.Errorf("get coupon: %w", domain.ErrNotFound)
}

func (f *fakeCouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if c, ok := f.byCode[code]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCouponRepo) List(ctx context.Context) ([]*domain.Coupon, error) {
	coupons := make([]*domain.Coupon, 0, len(f.byID))
	for _, c := range f.byID {
		coupons = append(coupons, c)
	}
	return coupons, nil
}

func (f *fakeCouponRepo) Update(ctx context.Context, id string, name, code *string, limit *int) (*domain.Coupon, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("update coupon: %w", domain.ErrNotFound)
	}
	if code != nil {
		if other, exists := f.byCode[*code]; exists && other.ID != id {
			return nil, fmt.Errorf("update coupon: %w", domain.ErrConflict)
		}
		delete(f.byCode, c.Code)
		c.Code = *code
		f.byCode[c.Code] = c
	}
	if name != nil {
		c.Name = *name
	}
	if limit != nil {
		c.Limit = *limit
	}
	c.UpdatedAt = time.Now()
	cp := *c
	return &cp, nil
}

func (f *fakeCouponRepo) Delete(ctx context.Context, id string) error {
	c, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("delete coupon: %w", domain.ErrNotFound)
	}
	delete(f.byID, id)
	delete(f.byCode, c.Code)
	return nil
}

func TestCouponService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		couponName string
		code       string
		limit      int
		seed       func(repo *fakeCouponRepo)
		wantErr    error
	}{
		{
			name:       "success",
			couponName: "Early Bird",
			code:       "EARLYBIRD",
			limit:      100,
		},
		{
			name:       "empty name",
			couponName: "  ",
			code:       "EARLYBIRD",
			limit:      100,
			wantErr:    domain.ErrInvalidInput,
		},
		{
			name:       "empty code",
			couponName: "Early Bird",
			code:       "",
			limit:      100,
			wantErr:    domain.ErrInvalidInput,
		},
		{
			name:       "zero limit",
			couponName: "Early Bird",
			code:       "EARLYBIRD",
			limit:      0,
			wantErr:    domain.ErrInvalidInput,
		},
		{
			name:       "negative limit",
			couponName: "Early Bird",
			code:       "EARLYBIRD",
			limit:      -5,
			wantErr:    domain.ErrInvalidInput,
		},
		{
			name:       "duplicate code",
			couponName: "Early Bird",
			code:       "EARLYBIRD",
			limit:      100,
			seed: func(repo *fakeCouponRepo) {
				repo.add(&domain.Coupon{Name: "Existing", Code: "EARLYBIRD", Limit: 10})
			},
			wantErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeCouponRepo()
			if tt.seed != nil {
				tt.seed(repo)
			}
			svc := NewCouponService(repo)

			coupon, err := svc.Create(ctx, tt.couponName, tt.code, tt.limit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, coupon)
			assert.NotEmpty(t, coupon.ID)
			assert.Equal(t, tt.couponName, coupon.Name)
			assert.Equal(t, tt.code, coupon.Code)
			assert.Equal(t, tt.limit, coupon.Limit)
		})
	}
}

func TestCouponService_Update(t *testing.T) {
	ctx := context.Background()
	strPtr := func(s string) *string { return &s }
	intPtr := func(n int) *int { return &n }

	tests := []struct {
		name    string
		id      string
		newName *string
		newCode *string
		limit   *int
		seed    func(repo *fakeCouponRepo)
		wantErr error
	}{
		{
			name:  "partial update keeps other fields",
			id:    "c-1",
			limit: intPtr(50),
			seed: func(repo *fakeCouponRepo) {
				repo.add(&domain.Coupon{ID: "c-1", Name: "Early Bird", Code: "EARLYBIRD", Limit: 10})
			},
		},
		{
			name:    "nothing to update",
			id:      "c-1",
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "invalid limit",
			id:      "c-1",
			limit:   intPtr(0),
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "not found",
			id:      "c-missing",
			limit:   intPtr(5),
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "code collision",
			id:      "c-1",
			newCode: strPtr("VIP"),
			seed: func(repo *fakeCouponRepo) {
				repo.add(&domain.Coupon{ID: "c-1", Name: "Early Bird", Code: "EARLYBIRD", Limit: 10})
				repo.add(&domain.Coupon{ID: "c-2", Name: "VIP pass", Code: "VIP", Limit: 5})
			},
			wantErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeCouponRepo()
			if tt.seed != nil {
				tt.seed(repo)
			}
			svc := NewCouponService(repo)

			coupon, err := svc.Update(ctx, tt.id, tt.newName, tt.newCode, tt.limit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 50, coupon.Limit)
			assert.Equal(t, "Early Bird", coupon.Name, "unset fields retain prior values")
			assert.Equal(t, "EARLYBIRD", coupon.Code)
		})
	}
}

func TestCouponService_Update_trimsValues(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCouponRepo()
	repo.add(&domain.Coupon{ID: "c-1", Name: "Early Bird", Code: "EARLYBIRD", Limit: 10})
	svc := NewCouponService(repo)

	name := "  Door Pass  "
	code := "  DOOR  "
	coupon, err := svc.Update(ctx, "c-1", &name, &code, nil)
	require.NoError(t, err)
	assert.Equal(t, "Door Pass", coupon.Name)
	assert.Equal(t, "DOOR", coupon.Code)

	stored, err := repo.GetByCode(ctx, "DOOR")
	require.NoError(t, err, "coupon is stored under the trimmed code")
	assert.Equal(t, "Door Pass", stored.Name)
}

func TestCouponService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCouponRepo()
	repo.add(&domain.Coupon{ID: "c-1", Name: "Early Bird", Code: "EARLYBIRD", Limit: 10})
	svc := NewCouponService(repo)

	require.NoError(t, svc.Delete(ctx, "c-1"))
	require.ErrorIs(t, svc.Delete(ctx, "c-1"), domain.ErrNotFound)
}

func TestCouponService_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCouponRepo()
	repo.add(&domain.Coupon{ID: "c-1", Name: "Early Bird", Code: "EARLYBIRD", Limit: 10})
	svc := NewCouponService(repo)

	coupon, err := svc.GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "EARLYBIRD", coupon.Code)

	_, err = svc.GetByID(ctx, "c-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
