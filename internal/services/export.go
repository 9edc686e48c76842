package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"eventregistration/internal/domain"
)

var csvHeader = []string{
	"Name", "Email", "Mobile", "Coupon Code", "Coupon Name",
	"Reg Num", "Day 1", "Day 2", "Day 3", "Registered At",
}

func (s *registrationService) ExportCSV(ctx context.Context) ([]byte, error) {
	regs, err := s.registrationRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if len(regs) == 0 {
		return nil, fmt.Errorf("%w: no registrations to export", domain.ErrNotFound)
	}

	namesByCode := make(map[string]string)
	couponName := func(code string) (string, error) {
		if name, ok := namesByCode[code]; ok {
			return name, nil
		}
		coupon, err := s.couponRepo.GetByCode(ctx, code)
		name := code
		switch {
		case err == nil:
			name = coupon.Name
		case errors.Is(err, domain.ErrNotFound):
			// keep the raw code
		default:
			return "", fmt.Errorf("get coupon for export: %w", err)
		}
		namesByCode[code] = name
		return name, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, reg := range regs {
		name, err := couponName(reg.CouponCode)
		if err != nil {
			return nil, err
		}
		row := []string{
			reg.Name,
			reg.Email,
			reg.Mobile,
			reg.CouponCode,
			name,
			reg.RegNum,
			reg.DayOne,
			reg.DayTwo,
			reg.DayThree,
			reg.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
