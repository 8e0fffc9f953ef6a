package payments

import "github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"

const (
	MsgInsufficientBalance = "Số dư ví không đủ để thanh toán đơn hàng này."
	MsgUnknownMethod       = "Phương thức thanh toán không hợp lệ."
	MsgInvalidAmount       = "Số tiền nạp phải lớn hơn 0."
	MsgNoPayURL            = "Không nhận được liên kết thanh toán MoMo."
)

var (
	ErrInsufficientBalance = apperr.InvalidErr(MsgInsufficientBalance, map[string]string{"payment_method": MsgInsufficientBalance})
	ErrUnknownMethod       = apperr.InvalidErr(MsgUnknownMethod, map[string]string{"payment_method": MsgUnknownMethod})
	ErrInvalidAmount       = apperr.InvalidErr(MsgInvalidAmount, map[string]string{"amount": MsgInvalidAmount})
)
