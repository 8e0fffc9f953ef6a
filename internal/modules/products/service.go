// Package products is the storefront catalog: product listing and detail,
// categories, banners, reviews and the wishlist.
package products

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/pricing"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/slug"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 48
	MaxCommentLen   = 1000

	MsgRatingRange    = "Vui lòng chọn số sao từ 1 đến 5."
	MsgCommentEmpty   = "Vui lòng nhập nội dung đánh giá."
	MsgCommentTooLong = "Nội dung đánh giá tối đa 1000 ký tự."
	MsgReviewSent     = "Cảm ơn bạn đã đánh giá sản phẩm."
	MsgProductMissing = "Không tìm thấy sản phẩm."
)

// sorts maps the public sort names to the backend's sort parameter.
var sorts = map[string]string{
	"newest":     "id,desc",
	"price_asc":  "price,asc",
	"price_desc": "price,desc",
	"name":       "name,asc",
}

type catalogAPI interface {
	ListProducts(ctx context.Context, q backend.ProductQuery) (backend.Page[backend.Product], error)
	GetProduct(ctx context.Context, id int64) (backend.Product, error)
	ListCategories(ctx context.Context) ([]backend.Category, error)
	ListBanners(ctx context.Context) ([]backend.Banner, error)
	ListReviews(ctx context.Context, productID int64) ([]backend.Review, error)
}

type accountAPI interface {
	ListWishlist(ctx context.Context, token string) ([]backend.WishlistItem, error)
	ToggleWishlist(ctx context.Context, token string, productID int64) (backend.WishlistState, error)
	CheckWishlist(ctx context.Context, token string, productID int64) (backend.WishlistState, error)
	CreateReview(ctx context.Context, token string, in backend.ReviewInput) (backend.Review, error)
}

type Service struct {
	catalog catalogAPI
	account accountAPI
	log     *slog.Logger
}

func NewService(c catalogAPI, a accountAPI, l *slog.Logger) *Service {
	if l == nil {
		l = slog.Default()
	}
	return &Service{catalog: c, account: a, log: l}
}

type ListQuery struct {
	Page       int
	Size       int
	Keyword    string
	CategoryID int64
	Sort       string
}

func (q ListQuery) normalize() ListQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
	q.Keyword = strings.TrimSpace(q.Keyword)
	if _, ok := sorts[q.Sort]; !ok {
		q.Sort = ""
	}
	return q
}

func (s *Service) List(ctx context.Context, q ListQuery) (view.ProductsPage, error) {
	q = q.normalize()
	p, err := s.catalog.ListProducts(ctx, backend.ProductQuery{
		Page:       q.Page,
		Size:       q.Size,
		Keyword:    q.Keyword,
		CategoryID: q.CategoryID,
		Sort:       sorts[q.Sort],
	})
	if err != nil {
		return view.ProductsPage{}, err
	}

	out := view.ProductsPage{
		Items:      make([]view.ProductCard, 0, len(p.Content)),
		Total:      p.TotalElements,
		Page:       p.Number,
		PageSize:   q.Size,
		TotalPages: p.TotalPages,
		Keyword:    q.Keyword,
		CategoryID: q.CategoryID,
		Sort:       q.Sort,
	}
	for _, prod := range p.Content {
		out.Items = append(out.Items, Card(prod))
	}
	return out, nil
}

// Detail loads a product with its reviews. Reviews and wishlist state are
// decorations: failures there are logged and the page still renders.
func (s *Service) Detail(ctx context.Context, id int64, token string) (view.ProductDetail, error) {
	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return view.ProductDetail{}, apperr.NotFoundErr(MsgProductMissing)
		}
		return view.ProductDetail{}, err
	}

	out := view.ProductDetail{
		ProductCard: Card(p),
		Description: p.Description,
		Stock:       p.Stock,
	}

	reviews, err := s.catalog.ListReviews(ctx, id)
	if err != nil {
		s.log.WarnContext(ctx, "reviews_unavailable", slog.Int64("product_id", id), slog.Any("err", err))
	}
	out.Reviews, out.AvgRating = reviewViews(reviews)

	if token != "" {
		st, err := s.account.CheckWishlist(ctx, token, id)
		if err != nil {
			s.log.WarnContext(ctx, "wishlist_check_failed", slog.Int64("product_id", id), slog.Any("err", err))
		}
		out.InWishlist = st.InWishlist
	}
	return out, nil
}

// Reviews lists a product's reviews with the average rounded down to one
// decimal.
func (s *Service) Reviews(ctx context.Context, productID int64) ([]view.Review, float64, error) {
	rs, err := s.catalog.ListReviews(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	list, avg := reviewViews(rs)
	return list, avg, nil
}

func reviewViews(rs []backend.Review) ([]view.Review, float64) {
	out := make([]view.Review, 0, len(rs))
	sum := 0
	for _, r := range rs {
		out = append(out, reviewView(r))
		sum += r.Rating
	}
	if len(rs) == 0 {
		return out, 0
	}
	return out, float64(sum*10/len(rs)) / 10
}

func reviewView(r backend.Review) view.Review {
	return view.Review{Username: r.Username, Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt}
}

// Card is the listing view of a product.
func Card(p backend.Product) view.ProductCard {
	line := pricing.Line{Quantity: 1, UnitPrice: p.Price, SalePrice: p.SalePrice}
	eff := pricing.EffectivePrice(line)

	c := view.ProductCard{
		ID:             p.ID,
		Name:           p.Name,
		URL:            ProductURL(p.ID, p.Name),
		ImageURL:       p.ImageURL,
		CategoryName:   p.CategoryName,
		Price:          view.VND(p.Price),
		EffectivePrice: view.VND(eff),
		InStock:        p.Stock > 0,
	}
	if eff.LessThan(p.Price) && p.Price.IsPositive() {
		m := view.VND(eff)
		c.SalePrice = &m
		c.DiscountPct = int(decimal.NewFromInt(100).Sub(eff.Mul(decimal.NewFromInt(100)).Div(p.Price)).Round(0).IntPart())
	}
	return c
}

func ProductURL(id int64, name string) string {
	return fmt.Sprintf("/products/%d/%s", id, slug.FromName(name))
}

// Categories returns the category tree, roots first, by name.
func (s *Service) Categories(ctx context.Context) ([]view.Category, error) {
	cats, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return categoryTree(cats), nil
}

func categoryTree(cats []backend.Category) []view.Category {
	children := map[int64][]backend.Category{}
	known := map[int64]bool{}
	for _, c := range cats {
		known[c.ID] = true
	}
	var roots []backend.Category
	for _, c := range cats {
		if c.ParentID != nil && known[*c.ParentID] && *c.ParentID != c.ID {
			children[*c.ParentID] = append(children[*c.ParentID], c)
			continue
		}
		roots = append(roots, c)
	}

	var build func(list []backend.Category, depth int) []view.Category
	build = func(list []backend.Category, depth int) []view.Category {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		out := make([]view.Category, 0, len(list))
		for _, c := range list {
			vc := view.Category{ID: c.ID, Name: c.Name}
			// cycles in bad data stop at a fixed depth
			if depth < 4 {
				vc.Children = build(children[c.ID], depth+1)
			}
			out = append(out, vc)
		}
		return out
	}
	return build(roots, 0)
}

// Banners returns the active banners by position.
func (s *Service) Banners(ctx context.Context) ([]view.Banner, error) {
	bs, err := s.catalog.ListBanners(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(bs, func(i, j int) bool { return bs[i].Position < bs[j].Position })
	out := make([]view.Banner, 0, len(bs))
	for _, b := range bs {
		if !b.Active {
			continue
		}
		out = append(out, view.Banner{ID: b.ID, Title: b.Title, ImageURL: b.ImageURL, LinkURL: b.LinkURL})
	}
	return out, nil
}

type ReviewInput struct {
	ProductID int64
	Rating    int
	Comment   string
}

func (in ReviewInput) validate() error {
	fields := map[string]string{}
	if in.Rating < 1 || in.Rating > 5 {
		fields["rating"] = MsgRatingRange
	}
	switch c := strings.TrimSpace(in.Comment); {
	case c == "":
		fields["comment"] = MsgCommentEmpty
	case utf8.RuneCountInString(c) > MaxCommentLen:
		fields["comment"] = MsgCommentTooLong
	}
	if len(fields) == 0 {
		return nil
	}
	msg := fields["rating"]
	if msg == "" {
		msg = fields["comment"]
	}
	return apperr.InvalidErr(msg, fields)
}

func (s *Service) AddReview(ctx context.Context, token string, in ReviewInput) (view.Review, error) {
	if err := in.validate(); err != nil {
		return view.Review{}, err
	}
	r, err := s.account.CreateReview(ctx, token, backend.ReviewInput{
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
	})
	if err != nil {
		return view.Review{}, err
	}
	return reviewView(r), nil
}

func (s *Service) Wishlist(ctx context.Context, token string) ([]view.ProductCard, error) {
	items, err := s.account.ListWishlist(ctx, token)
	if err != nil {
		return nil, err
	}
	out := make([]view.ProductCard, 0, len(items))
	for _, it := range items {
		out = append(out, Card(it.Product))
	}
	return out, nil
}

// ToggleWishlist flips the product's wishlist membership and reports the
// new state.
func (s *Service) ToggleWishlist(ctx context.Context, token string, productID int64) (bool, error) {
	st, err := s.account.ToggleWishlist(ctx, token, productID)
	if err != nil {
		return false, err
	}
	return st.InWishlist, nil
}
