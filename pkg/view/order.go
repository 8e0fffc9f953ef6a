package view

import "time"

type OrderAction struct {
	Action string `json:"action"`
	Label  string `json:"label"`
	Kind   string `json:"kind"`
	Style  string `json:"style"`
	Target string `json:"target"`
}

type StatusBadge struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Badge string `json:"badge"`
}

type OrderItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	ImageURL    string `json:"image_url,omitempty"`
	Qty         int    `json:"qty"`
	PriceEach   Money  `json:"price_each"`
	LineTotal   Money  `json:"line_total"`
}

type OrderListItem struct {
	ID            int64         `json:"id"`
	Code          string        `json:"code"`
	CreatedAt     time.Time     `json:"created_at"`
	Status        StatusBadge   `json:"status"`
	PaymentStatus StatusBadge   `json:"payment_status"`
	PaymentMethod string        `json:"payment_method"`
	CustomerName  string        `json:"customer_name,omitempty"`
	Total         Money         `json:"total"`
	ItemCount     int           `json:"item_count"`
	Actions       []OrderAction `json:"actions"`
}

type OrderDetail struct {
	OrderListItem

	CustomerPhone   string `json:"customer_phone"`
	CustomerEmail   string `json:"customer_email,omitempty"`
	ShippingAddress string `json:"shipping_address"`
	Notes           string `json:"notes,omitempty"`
	VoucherCode     string `json:"voucher_code,omitempty"`

	Subtotal Money `json:"subtotal"`
	Shipping Money `json:"shipping"`
	Discount Money `json:"discount"`

	Items []OrderItem `json:"items"`
}

type OrdersPage struct {
	Items        []OrderListItem `json:"items"`
	Total        int64           `json:"total"`
	Page         int             `json:"page"`
	PageSize     int             `json:"page_size"`
	TotalPages   int             `json:"total_pages"`
	FilterStatus string          `json:"filter_status,omitempty"`
	Statuses     []StatusBadge   `json:"statuses,omitempty"`
}
