package voucher

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

type fakeVoucherAdmin struct{ saved []backend.Voucher }

func (f *fakeVoucherAdmin) AdminListVouchers(context.Context, string) ([]backend.Voucher, error) {
	return f.saved, nil
}

func (f *fakeVoucherAdmin) AdminSaveVoucher(_ context.Context, _ string, v backend.Voucher) (backend.Voucher, error) {
	f.saved = append(f.saved, v)
	return v, nil
}

func (f *fakeVoucherAdmin) AdminDeleteVoucher(context.Context, string, int64) error { return nil }

func TestValidateVoucher(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	err := Validate(backend.Voucher{
		Code:          "x",
		DiscountType:  TypePercent,
		DiscountValue: decimal.NewFromInt(150),
		MinOrderValue: decimal.NewFromInt(-1),
		StartDate:     &start,
		EndDate:       &end,
	})
	require.Error(t, err)
	ae, _ := apperr.As(err)
	assert.Equal(t, MsgCodeFormat, ae.PublicMsg)
	assert.Equal(t, MsgPercentRange, ae.Fields["discount_value"])
	assert.Equal(t, MsgMinNegative, ae.Fields["min_order_value"])
	assert.Equal(t, MsgDateOrder, ae.Fields["end_date"])

	assert.NoError(t, Validate(backend.Voucher{
		Code:          "GIAM50K",
		DiscountType:  TypeFixed,
		DiscountValue: decimal.NewFromInt(50000),
		MinOrderValue: decimal.NewFromInt(500000),
		Quantity:      100,
	}))
}

func TestAdminSaveNormalizes(t *testing.T) {
	api := &fakeVoucherAdmin{}
	svc := NewAdminService(api, nil)

	out, err := svc.Save(context.Background(), "tok", "mkt", backend.Voucher{
		Code:          " sale10 ",
		DiscountType:  "percent",
		DiscountValue: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "SALE10", out.Code)
	assert.Equal(t, TypePercent, api.saved[0].DiscountType)

	_, err = svc.Save(context.Background(), "tok", "mkt", backend.Voucher{Code: "SALE", DiscountType: "GIFT", DiscountValue: decimal.NewFromInt(1)})
	assert.True(t, apperr.IsKind(err, apperr.Invalid))
	assert.Len(t, api.saved, 1)
}
