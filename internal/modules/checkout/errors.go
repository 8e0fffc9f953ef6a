package checkout

import (
	"fmt"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

const (
	MsgCartEmpty       = "Giỏ hàng của bạn đang trống."
	MsgVoucherApplied  = "Áp dụng mã giảm giá thành công."
	MsgVoucherRemoved  = "Đã bỏ mã giảm giá."
	MsgVoucherUpdated  = "Giỏ hàng đã thay đổi, mã giảm giá đã được tính lại."
	MsgVoucherDropped  = "Mã giảm giá không còn áp dụng cho giỏ hàng hiện tại: "
	MsgOrderPlaced     = "Đặt hàng thành công."
	MsgMomoUnavailable = "Đơn hàng đã được tạo nhưng chưa thể chuyển sang MoMo. Vui lòng thanh toán lại từ trang đơn hàng."
)

var ErrCartEmpty = apperr.InvalidErr(MsgCartEmpty, nil)

type OutOfStockItem struct {
	ProductID int64
	Name      string
	Requested int
	Available int
}

// OutOfStockError lists cart lines asking for more than the stock the
// backend last reported.
type OutOfStockError struct {
	Items []OutOfStockItem
}

func (e *OutOfStockError) Error() string {
	if len(e.Items) == 0 {
		return "out of stock"
	}
	it := e.Items[0]
	return fmt.Sprintf("out of stock: product=%d requested=%d available=%d", it.ProductID, it.Requested, it.Available)
}

// AppError renders the first line as a user-facing conflict.
func (e *OutOfStockError) AppError() *apperr.AppError {
	msg := "Một số sản phẩm không đủ hàng."
	fields := map[string]string{}
	for i, it := range e.Items {
		m := fmt.Sprintf("Sản phẩm %s chỉ còn %d trong kho.", it.Name, it.Available)
		if i == 0 {
			msg = m
		}
		fields[fmt.Sprintf("items.%d", it.ProductID)] = m
	}
	return &apperr.AppError{Kind: apperr.Conflict, PublicMsg: msg, Fields: fields, Err: e}
}
