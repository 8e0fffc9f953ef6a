package voucher

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

const (
	TypePercent = "PERCENT"
	TypeFixed   = "FIXED"

	MsgCodeFormat    = "Mã chỉ gồm chữ in hoa, số, '-' hoặc '_' (3-30 ký tự)."
	MsgTypeInvalid   = "Loại giảm giá phải là PERCENT hoặc FIXED."
	MsgValueInvalid  = "Giá trị giảm phải lớn hơn 0."
	MsgPercentRange  = "Phần trăm giảm tối đa là 100."
	MsgMinNegative   = "Giá trị đơn tối thiểu không được âm."
	MsgQtyNegative   = "Số lượng không được âm."
	MsgDateOrder     = "Ngày kết thúc phải sau ngày bắt đầu."
	MsgMaxDiscountLE = "Mức giảm tối đa phải lớn hơn 0."
)

var codeRe = regexp.MustCompile(`^[A-Z0-9_-]{3,30}$`)

type adminAPI interface {
	AdminListVouchers(ctx context.Context, token string) ([]backend.Voucher, error)
	AdminSaveVoucher(ctx context.Context, token string, v backend.Voucher) (backend.Voucher, error)
	AdminDeleteVoucher(ctx context.Context, token string, id int64) error
}

// Normalize upper-cases the code and type the way customers type them in.
func Normalize(v backend.Voucher) backend.Voucher {
	v.Code = strings.ToUpper(strings.TrimSpace(v.Code))
	v.DiscountType = strings.ToUpper(strings.TrimSpace(v.DiscountType))
	return v
}

func Validate(v backend.Voucher) error {
	f := map[string]string{}
	first := ""
	add := func(k, m string) {
		if _, ok := f[k]; ok {
			return
		}
		f[k] = m
		if first == "" {
			first = m
		}
	}

	if !codeRe.MatchString(v.Code) {
		add("code", MsgCodeFormat)
	}
	switch v.DiscountType {
	case TypePercent:
		if v.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			add("discount_value", MsgPercentRange)
		}
	case TypeFixed:
	default:
		add("discount_type", MsgTypeInvalid)
	}
	if !v.DiscountValue.IsPositive() {
		add("discount_value", MsgValueInvalid)
	}
	if v.MinOrderValue.IsNegative() {
		add("min_order_value", MsgMinNegative)
	}
	if v.MaxDiscount != nil && !v.MaxDiscount.IsPositive() {
		add("max_discount", MsgMaxDiscountLE)
	}
	if v.Quantity < 0 {
		add("quantity", MsgQtyNegative)
	}
	if v.StartDate != nil && v.EndDate != nil && !v.EndDate.After(*v.StartDate) {
		add("end_date", MsgDateOrder)
	}
	if first == "" {
		return nil
	}
	return apperr.InvalidErr(first, f)
}

type AdminService struct {
	api adminAPI
	log *slog.Logger
}

func NewAdminService(api adminAPI, l *slog.Logger) *AdminService {
	if l == nil {
		l = slog.Default()
	}
	return &AdminService{api: api, log: l}
}

func (s *AdminService) List(ctx context.Context, token string) ([]backend.Voucher, error) {
	return s.api.AdminListVouchers(ctx, token)
}

func (s *AdminService) Save(ctx context.Context, token, actor string, v backend.Voucher) (backend.Voucher, error) {
	v = Normalize(v)
	if err := Validate(v); err != nil {
		return backend.Voucher{}, err
	}
	out, err := s.api.AdminSaveVoucher(ctx, token, v)
	if err != nil {
		return backend.Voucher{}, err
	}
	s.log.InfoContext(ctx, "voucher_saved", slog.String("actor", actor), slog.String("code", out.Code))
	return out, nil
}

func (s *AdminService) Delete(ctx context.Context, token, actor string, id int64) error {
	if err := s.api.AdminDeleteVoucher(ctx, token, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "voucher_deleted", slog.String("actor", actor), slog.Int64("id", id))
	return nil
}
