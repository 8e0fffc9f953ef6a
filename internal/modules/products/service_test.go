package products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func i64(v int64) *int64 { return &v }

type fakeCatalog struct {
	lastQuery  backend.ProductQuery
	products   map[int64]backend.Product
	reviews    []backend.Review
	reviewsErr error
	categories []backend.Category
	banners    []backend.Banner
}

func (f *fakeCatalog) ListProducts(_ context.Context, q backend.ProductQuery) (backend.Page[backend.Product], error) {
	f.lastQuery = q
	var out backend.Page[backend.Product]
	for _, p := range f.products {
		out.Content = append(out.Content, p)
	}
	out.TotalElements = int64(len(out.Content))
	out.TotalPages = 1
	return out, nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int64) (backend.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return backend.Product{}, &apperr.AppError{Kind: apperr.NotFound}
	}
	return p, nil
}

func (f *fakeCatalog) ListCategories(context.Context) ([]backend.Category, error) {
	return f.categories, nil
}

func (f *fakeCatalog) ListBanners(context.Context) ([]backend.Banner, error) { return f.banners, nil }

func (f *fakeCatalog) ListReviews(context.Context, int64) ([]backend.Review, error) {
	return f.reviews, f.reviewsErr
}

type fakeAccount struct {
	wish    map[int64]bool
	reviews []backend.ReviewInput
}

func (f *fakeAccount) ListWishlist(context.Context, string) ([]backend.WishlistItem, error) {
	var out []backend.WishlistItem
	for id := range f.wish {
		out = append(out, backend.WishlistItem{Product: backend.Product{ID: id, Name: "Kệ", Price: d(100000)}})
	}
	return out, nil
}

func (f *fakeAccount) ToggleWishlist(_ context.Context, _ string, id int64) (backend.WishlistState, error) {
	if f.wish == nil {
		f.wish = map[int64]bool{}
	}
	f.wish[id] = !f.wish[id]
	return backend.WishlistState{InWishlist: f.wish[id]}, nil
}

func (f *fakeAccount) CheckWishlist(_ context.Context, _ string, id int64) (backend.WishlistState, error) {
	return backend.WishlistState{InWishlist: f.wish[id]}, nil
}

func (f *fakeAccount) CreateReview(_ context.Context, _ string, in backend.ReviewInput) (backend.Review, error) {
	f.reviews = append(f.reviews, in)
	return backend.Review{ProductID: in.ProductID, Rating: in.Rating, Comment: in.Comment, Username: "an"}, nil
}

func desk() backend.Product {
	sale := d(800000)
	return backend.Product{ID: 7, Name: "Bàn làm việc", Price: d(1000000), SalePrice: &sale, Stock: 2}
}

func TestCardComputesSaleAndURL(t *testing.T) {
	c := Card(desk())
	assert.Equal(t, "/products/7/ban-lam-viec", c.URL)
	require.NotNil(t, c.SalePrice)
	assert.True(t, c.EffectivePrice.Amount.Equal(d(800000)))
	assert.Equal(t, 20, c.DiscountPct)
	assert.True(t, c.InStock)

	plain := Card(backend.Product{ID: 8, Name: "Ghế", Price: d(500000)})
	assert.Nil(t, plain.SalePrice)
	assert.Zero(t, plain.DiscountPct)
	assert.False(t, plain.InStock)
}

func TestListNormalizesQuery(t *testing.T) {
	cat := &fakeCatalog{products: map[int64]backend.Product{7: desk()}}
	svc := NewService(cat, &fakeAccount{}, nil)

	page, err := svc.List(context.Background(), ListQuery{Page: -1, Size: 500, Keyword: "  bàn ", Sort: "price_asc"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 0, cat.lastQuery.Page)
	assert.Equal(t, MaxPageSize, cat.lastQuery.Size)
	assert.Equal(t, "bàn", cat.lastQuery.Keyword)
	assert.Equal(t, "price,asc", cat.lastQuery.Sort)

	_, err = svc.List(context.Background(), ListQuery{Sort: "drop table"})
	require.NoError(t, err)
	assert.Empty(t, cat.lastQuery.Sort)
	assert.Equal(t, DefaultPageSize, cat.lastQuery.Size)
}

func TestDetailSurvivesReviewFailure(t *testing.T) {
	cat := &fakeCatalog{products: map[int64]backend.Product{7: desk()}, reviewsErr: errors.New("boom")}
	acc := &fakeAccount{wish: map[int64]bool{7: true}}
	svc := NewService(cat, acc, nil)

	det, err := svc.Detail(context.Background(), 7, "tok")
	require.NoError(t, err)
	assert.Empty(t, det.Reviews)
	assert.True(t, det.InWishlist)

	det, err = svc.Detail(context.Background(), 7, "")
	require.NoError(t, err)
	assert.False(t, det.InWishlist)
}

func TestDetailAverageRating(t *testing.T) {
	cat := &fakeCatalog{
		products: map[int64]backend.Product{7: desk()},
		reviews: []backend.Review{
			{Rating: 5, Comment: "Tốt", CreatedAt: time.Now()},
			{Rating: 4, Comment: "Ổn"},
			{Rating: 4, Comment: "Được"},
		},
	}
	det, err := NewService(cat, &fakeAccount{}, nil).Detail(context.Background(), 7, "")
	require.NoError(t, err)
	assert.Len(t, det.Reviews, 3)
	assert.InDelta(t, 4.3, det.AvgRating, 0.001)
}

func TestDetailNotFound(t *testing.T) {
	_, err := NewService(&fakeCatalog{}, &fakeAccount{}, nil).Detail(context.Background(), 99, "")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	assert.Equal(t, MsgProductMissing, apperr.PublicMessage(err))
}

func TestCategoryTree(t *testing.T) {
	cat := &fakeCatalog{categories: []backend.Category{
		{ID: 1, Name: "Ghế"},
		{ID: 2, Name: "Bàn"},
		{ID: 3, Name: "Ghế xoay", ParentID: i64(1)},
		{ID: 4, Name: "Mồ côi", ParentID: i64(99)},
	}}
	tree, err := NewService(cat, &fakeAccount{}, nil).Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 3)
	assert.Equal(t, "Bàn", tree[0].Name)
	assert.Equal(t, "Ghế", tree[1].Name)
	require.Len(t, tree[1].Children, 1)
	assert.Equal(t, "Ghế xoay", tree[1].Children[0].Name)
}

func TestBannersActiveByPosition(t *testing.T) {
	cat := &fakeCatalog{banners: []backend.Banner{
		{ID: 1, Title: "b", Position: 2, Active: true},
		{ID: 2, Title: "hidden", Position: 0, Active: false},
		{ID: 3, Title: "a", Position: 1, Active: true},
	}}
	bs, err := NewService(cat, &fakeAccount{}, nil).Banners(context.Background())
	require.NoError(t, err)
	require.Len(t, bs, 2)
	assert.Equal(t, int64(3), bs[0].ID)
	assert.Equal(t, int64(1), bs[1].ID)
}

func TestAddReviewValidation(t *testing.T) {
	acc := &fakeAccount{}
	svc := NewService(&fakeCatalog{}, acc, nil)

	_, err := svc.AddReview(context.Background(), "tok", ReviewInput{ProductID: 7, Rating: 6, Comment: "x"})
	require.Error(t, err)
	ae, _ := apperr.As(err)
	assert.Equal(t, MsgRatingRange, ae.Fields["rating"])

	_, err = svc.AddReview(context.Background(), "tok", ReviewInput{ProductID: 7, Rating: 5, Comment: "   "})
	require.Error(t, err)
	assert.Equal(t, MsgCommentEmpty, apperr.PublicMessage(err))
	assert.Empty(t, acc.reviews)

	r, err := svc.AddReview(context.Background(), "tok", ReviewInput{ProductID: 7, Rating: 5, Comment: " Rất chắc chắn "})
	require.NoError(t, err)
	assert.Equal(t, "Rất chắc chắn", r.Comment)
}

func TestToggleWishlist(t *testing.T) {
	acc := &fakeAccount{}
	svc := NewService(&fakeCatalog{}, acc, nil)

	on, err := svc.ToggleWishlist(context.Background(), "tok", 7)
	require.NoError(t, err)
	assert.True(t, on)

	items, err := svc.Wishlist(context.Background(), "tok")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	on, err = svc.ToggleWishlist(context.Background(), "tok", 7)
	require.NoError(t, err)
	assert.False(t, on)
}
