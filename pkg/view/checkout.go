package view

type AppliedVoucher struct {
	Code     string `json:"code"`
	Discount Money  `json:"discount"`
}

type PaymentOption struct {
	Method            string `json:"method"`
	Label             string `json:"label"`
	Disabled          bool   `json:"disabled"`
	InsufficientFunds bool   `json:"insufficient_funds,omitempty"`
	Redirect          bool   `json:"redirect,omitempty"`
}

type CheckoutSummary struct {
	Cart     CartPage `json:"cart"`
	Subtotal Money    `json:"subtotal"`
	Shipping Money    `json:"shipping"`
	Discount Money    `json:"discount"`
	Total    Money    `json:"total"`

	Voucher *AppliedVoucher `json:"voucher,omitempty"`
	// Notice is set when the voucher was re-checked or dropped because the
	// cart changed.
	Notice string `json:"notice,omitempty"`

	WalletBalance   Money           `json:"wallet_balance"`
	WalletAvailable bool            `json:"wallet_available"`
	PaymentOptions  []PaymentOption `json:"payment_options"`
}

type PlaceOrderResult struct {
	Order       OrderDetail `json:"order"`
	RedirectURL string      `json:"redirect_url,omitempty"`
	// PaymentError is set when the order exists but the MoMo page could not
	// be issued; the customer can retry from the order page.
	PaymentError string `json:"payment_error,omitempty"`
}
