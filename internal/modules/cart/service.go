package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/pricing"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

const MsgInvalidQty = "Số lượng phải lớn hơn 0."

var ErrInvalidQty = apperr.InvalidErr(MsgInvalidQty, map[string]string{"quantity": MsgInvalidQty})

type api interface {
	GetCart(ctx context.Context, token string) (backend.Cart, error)
	AddToCart(ctx context.Context, token string, productID int64, qty int) error
	UpdateCartItem(ctx context.Context, token string, itemID int64, qty int) error
	RemoveCartItem(ctx context.Context, token string, itemID int64) error
}

// Service is a read-through view of the backend cart. Every mutation is
// followed by a fresh read so the page never shows a locally patched copy.
type Service struct {
	api api
}

func NewService(a api) *Service { return &Service{api: a} }

func (s *Service) Page(ctx context.Context, token string) (view.CartPage, error) {
	c, err := s.api.GetCart(ctx, token)
	if err != nil {
		return view.CartPage{}, err
	}
	return BuildPage(c), nil
}

func (s *Service) Add(ctx context.Context, token string, productID int64, qty int) (view.CartPage, error) {
	if qty < 1 {
		return view.CartPage{}, ErrInvalidQty
	}
	if err := s.api.AddToCart(ctx, token, productID, qty); err != nil {
		return view.CartPage{}, err
	}
	return s.Page(ctx, token)
}

func (s *Service) Update(ctx context.Context, token string, itemID int64, qty int) (view.CartPage, error) {
	if qty < 1 {
		return view.CartPage{}, ErrInvalidQty
	}
	if err := s.api.UpdateCartItem(ctx, token, itemID, qty); err != nil {
		return view.CartPage{}, err
	}
	return s.Page(ctx, token)
}

func (s *Service) Remove(ctx context.Context, token string, itemID int64) (view.CartPage, error) {
	if err := s.api.RemoveCartItem(ctx, token, itemID); err != nil {
		return view.CartPage{}, err
	}
	return s.Page(ctx, token)
}

// Lines converts backend cart items into pricing input, keeping order.
func Lines(c backend.Cart) []pricing.Line {
	out := make([]pricing.Line, 0, len(c.Items))
	for _, it := range c.Items {
		out = append(out, pricing.Line{
			Quantity:  it.Quantity,
			UnitPrice: it.Product.Price,
			SalePrice: it.Product.SalePrice,
		})
	}
	return out
}

func BuildPage(c backend.Cart) view.CartPage {
	lines := Lines(c)
	page := view.CartPage{Items: make([]view.CartItem, 0, len(c.Items))}
	for i, it := range c.Items {
		var sale *view.Money
		if it.Product.SalePrice != nil && it.Product.SalePrice.IsPositive() {
			m := view.VND(*it.Product.SalePrice)
			sale = &m
		}
		page.Items = append(page.Items, view.CartItem{
			ItemID:         it.ID,
			ProductID:      it.Product.ID,
			Name:           it.Product.Name,
			ImageURL:       it.Product.ImageURL,
			Qty:            it.Quantity,
			Stock:          it.Product.Stock,
			UnitPrice:      view.VND(it.Product.Price),
			SalePrice:      sale,
			EffectivePrice: view.VND(pricing.EffectivePrice(lines[i])),
			LineTotal:      view.VND(pricing.LineTotal(lines[i])),
		})
		if it.Quantity > 0 {
			page.Count += it.Quantity
		}
	}
	page.Subtotal = view.VND(pricing.Subtotal(lines))
	return page
}

// Subtotal is a shortcut for checkout.
func Subtotal(c backend.Cart) decimal.Decimal { return pricing.Subtotal(Lines(c)) }
