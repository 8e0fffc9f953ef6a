package view

import "time"

type ProductCard struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	URL            string `json:"url"`
	ImageURL       string `json:"image_url,omitempty"`
	CategoryName   string `json:"category_name,omitempty"`
	Price          Money  `json:"price"`
	SalePrice      *Money `json:"sale_price,omitempty"`
	EffectivePrice Money  `json:"effective_price"`
	DiscountPct    int    `json:"discount_pct,omitempty"`
	InStock        bool   `json:"in_stock"`
}

type ProductDetail struct {
	ProductCard
	Description string   `json:"description,omitempty"`
	Stock       int      `json:"stock"`
	InWishlist  bool     `json:"in_wishlist"`
	Reviews     []Review `json:"reviews"`
	AvgRating   float64  `json:"avg_rating"`
}

type ProductsPage struct {
	Items      []ProductCard `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
	Keyword    string        `json:"keyword,omitempty"`
	CategoryID int64         `json:"category_id,omitempty"`
	Sort       string        `json:"sort,omitempty"`
}

type Category struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Children []Category `json:"children,omitempty"`
}

type Banner struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url,omitempty"`
}

type Review struct {
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
