package view

type CartItem struct {
	ItemID         int64  `json:"item_id"`
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	ImageURL       string `json:"image_url,omitempty"`
	Qty            int    `json:"qty"`
	Stock          int    `json:"stock"`
	UnitPrice      Money  `json:"unit_price"`
	SalePrice      *Money `json:"sale_price,omitempty"`
	EffectivePrice Money  `json:"effective_price"`
	LineTotal      Money  `json:"line_total"`
}

type CartPage struct {
	Items    []CartItem `json:"items"`
	Count    int        `json:"count"`
	Subtotal Money      `json:"subtotal"`
}

func (p CartPage) Empty() bool { return len(p.Items) == 0 }
