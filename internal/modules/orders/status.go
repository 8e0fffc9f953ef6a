package orders

// Status is the fulfilment stage reported by the backend.
type Status string

const (
	Pending         Status = "PENDING"
	Confirmed       Status = "CONFIRMED"
	Packing         Status = "PACKING"
	Shipping        Status = "SHIPPING"
	Delivered       Status = "DELIVERED"
	Cancelled       Status = "CANCELLED"
	CancelRequested Status = "CANCEL_REQUESTED"
)

// Statuses is the display order used by the admin filter.
var Statuses = []Status{Pending, Confirmed, Packing, Shipping, Delivered, CancelRequested, Cancelled}

type display struct {
	label string
	badge string
}

var statusDisplay = map[Status]display{
	Pending:         {"Chờ xác nhận", "bg-warning text-dark"},
	Confirmed:       {"Đã xác nhận", "bg-info text-dark"},
	Packing:         {"Đang đóng gói", "bg-primary"},
	Shipping:        {"Đang giao hàng", "bg-secondary"},
	Delivered:       {"Đã giao hàng", "bg-success"},
	Cancelled:       {"Đã hủy", "bg-danger"},
	CancelRequested: {"Yêu cầu hủy", "bg-dark"},
}

const unknownBadge = "bg-light text-dark"

// Label falls back to the raw status for values it does not know.
func Label(s string) string {
	if d, ok := statusDisplay[Status(s)]; ok {
		return d.label
	}
	return s
}

func Badge(s string) string {
	if d, ok := statusDisplay[Status(s)]; ok {
		return d.badge
	}
	return unknownBadge
}

func (s Status) Known() bool {
	_, ok := statusDisplay[s]
	return ok
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentSuccess  PaymentStatus = "SUCCESS"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

var paymentDisplay = map[PaymentStatus]display{
	PaymentPending:  {"Chưa thanh toán", "bg-warning text-dark"},
	PaymentSuccess:  {"Đã thanh toán", "bg-success"},
	PaymentFailed:   {"Thanh toán thất bại", "bg-danger"},
	PaymentRefunded: {"Đã hoàn tiền", "bg-info text-dark"},
}

func PaymentLabel(s string) string {
	if d, ok := paymentDisplay[PaymentStatus(s)]; ok {
		return d.label
	}
	return s
}

func PaymentBadge(s string) string {
	if d, ok := paymentDisplay[PaymentStatus(s)]; ok {
		return d.badge
	}
	return unknownBadge
}
