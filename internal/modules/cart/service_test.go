package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
)

func dp(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

func sampleCart() backend.Cart {
	return backend.Cart{ID: 1, Items: []backend.CartItem{
		{ID: 10, Quantity: 2, Product: backend.Product{ID: 100, Name: "Bàn làm việc", Price: decimal.NewFromInt(300000), Stock: 5}},
		{ID: 11, Quantity: 1, Product: backend.Product{ID: 101, Name: "Ghế xoay", Price: decimal.NewFromInt(500000), SalePrice: dp(400000)}},
	}}
}

type fakeCartAPI struct {
	cart    backend.Cart
	added   []int64
	updated map[int64]int
	removed []int64
}

func (f *fakeCartAPI) GetCart(context.Context, string) (backend.Cart, error) { return f.cart, nil }
func (f *fakeCartAPI) AddToCart(_ context.Context, _ string, productID int64, _ int) error {
	f.added = append(f.added, productID)
	return nil
}
func (f *fakeCartAPI) UpdateCartItem(_ context.Context, _ string, itemID int64, qty int) error {
	if f.updated == nil {
		f.updated = map[int64]int{}
	}
	f.updated[itemID] = qty
	return nil
}
func (f *fakeCartAPI) RemoveCartItem(_ context.Context, _ string, itemID int64) error {
	f.removed = append(f.removed, itemID)
	return nil
}

func TestBuildPage(t *testing.T) {
	p := BuildPage(sampleCart())
	require.Len(t, p.Items, 2)
	assert.Equal(t, 3, p.Count)
	assert.Equal(t, "1.000.000 ₫", p.Subtotal.Display)

	assert.Nil(t, p.Items[0].SalePrice)
	assert.Equal(t, "600.000 ₫", p.Items[0].LineTotal.Display)

	require.NotNil(t, p.Items[1].SalePrice)
	assert.Equal(t, "400.000 ₫", p.Items[1].EffectivePrice.Display)
	assert.True(t, Subtotal(sampleCart()).Equal(decimal.NewFromInt(1000000)))
}

func TestMutationsRejectNonPositiveQty(t *testing.T) {
	f := &fakeCartAPI{cart: sampleCart()}
	s := NewService(f)

	_, err := s.Add(context.Background(), "t", 100, 0)
	assert.ErrorIs(t, err, ErrInvalidQty)
	_, err = s.Update(context.Background(), "t", 10, -1)
	assert.ErrorIs(t, err, ErrInvalidQty)
	assert.Empty(t, f.added)
	assert.Empty(t, f.updated)
}

func TestMutationsReturnFreshPage(t *testing.T) {
	f := &fakeCartAPI{cart: sampleCart()}
	s := NewService(f)

	p, err := s.Update(context.Background(), "t", 10, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, f.updated[10])
	assert.Len(t, p.Items, 2)

	_, err = s.Remove(context.Background(), "t", 11)
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, f.removed)

	_, err = s.Add(context.Background(), "t", 102, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{102}, f.added)
}
