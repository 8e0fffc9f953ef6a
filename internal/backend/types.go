package backend

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the profile record returned by the auth and profile endpoints.
// ID is nil when the record was reconstructed from token claims.
type User struct {
	ID        *int64 `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	FullName  string `json:"fullName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type ProfileInput struct {
	FullName  string `json:"fullName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Page mirrors the backend's paginated envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

type Product struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	SalePrice    *decimal.Decimal `json:"salePrice,omitempty"`
	ImageURL     string           `json:"imageUrl,omitempty"`
	Stock        int              `json:"stock"`
	CategoryID   *int64           `json:"categoryId,omitempty"`
	CategoryName string           `json:"categoryName,omitempty"`
}

type ProductQuery struct {
	Page       int
	Size       int
	Keyword    string
	CategoryID int64
	Sort       string
}

type ProductInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	SalePrice   *decimal.Decimal `json:"salePrice,omitempty"`
	Stock       int              `json:"stock"`
	CategoryID  *int64           `json:"categoryId,omitempty"`
	ImageURL    string           `json:"imageUrl,omitempty"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    *int64 `json:"parentId,omitempty"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    *int64 `json:"parentId,omitempty"`
}

type Banner struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	LinkURL  string `json:"linkUrl,omitempty"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

type BannerInput struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	LinkURL  string `json:"linkUrl,omitempty"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

type CartItem struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type Cart struct {
	ID    int64      `json:"id"`
	Items []CartItem `json:"items"`
}

type OrderItem struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type Order struct {
	ID              int64           `json:"id"`
	OrderCode       string          `json:"orderCode"`
	Items           []OrderItem     `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	ShippingFee     decimal.Decimal `json:"shippingFee"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	OrderStatus     string          `json:"orderStatus"`
	PaymentStatus   string          `json:"paymentStatus"`
	PaymentMethod   string          `json:"paymentMethod"`
	VoucherCode     string          `json:"voucherCode,omitempty"`
	CustomerName    string          `json:"customerName"`
	CustomerPhone   string          `json:"customerPhone"`
	CustomerEmail   string          `json:"customerEmail,omitempty"`
	ShippingAddress string          `json:"shippingAddress"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CreateOrderInput is sent to POST /api/orders as query parameters.
type CreateOrderInput struct {
	FullName      string
	Phone         string
	Email         string
	Address       string
	Note          string
	PaymentMethod string
	VoucherCode   string
}

type VoucherCheck struct {
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}

type Voucher struct {
	ID            int64            `json:"id,omitempty"`
	Code          string           `json:"code"`
	DiscountType  string           `json:"discountType"` // PERCENT | FIXED
	DiscountValue decimal.Decimal  `json:"discountValue"`
	MinOrderValue decimal.Decimal  `json:"minOrderValue"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount,omitempty"`
	Quantity      int              `json:"quantity"`
	StartDate     *time.Time       `json:"startDate,omitempty"`
	EndDate       *time.Time       `json:"endDate,omitempty"`
	Active        bool             `json:"active"`
}

type Wallet struct {
	Balance decimal.Decimal `json:"balance"`
}

type PayURL struct {
	PayURL string `json:"payUrl"`
}

type WishlistItem struct {
	ID      int64   `json:"id"`
	Product Product `json:"product"`
}

type WishlistState struct {
	InWishlist bool `json:"inWishlist"`
}

type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReviewInput struct {
	ProductID int64  `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
