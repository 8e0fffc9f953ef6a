package products

import (
	"context"
	"log/slog"
	"strings"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

const (
	MsgNameRequired    = "Vui lòng nhập tên."
	MsgPriceInvalid    = "Giá phải lớn hơn 0."
	MsgSaleNotLower    = "Giá khuyến mãi phải nhỏ hơn giá gốc."
	MsgStockNegative   = "Tồn kho không được âm."
	MsgImageRequired   = "Vui lòng chọn ảnh."
	MsgParentIsSelf    = "Danh mục cha không được là chính nó."
	MsgPositionInvalid = "Vị trí không được âm."
)

type adminAPI interface {
	AdminSaveProduct(ctx context.Context, token string, id int64, in backend.ProductInput) (backend.Product, error)
	AdminDeleteProduct(ctx context.Context, token string, id int64) error
	AdminSaveCategory(ctx context.Context, token string, id int64, in backend.CategoryInput) (backend.Category, error)
	AdminDeleteCategory(ctx context.Context, token string, id int64) error
	AdminListBanners(ctx context.Context, token string) ([]backend.Banner, error)
	AdminSaveBanner(ctx context.Context, token string, id int64, in backend.BannerInput) (backend.Banner, error)
	AdminDeleteBanner(ctx context.Context, token string, id int64) error
}

// AdminService validates back-office catalog edits before they reach the
// backend, so the form gets per-field messages instead of one 400.
type AdminService struct {
	api adminAPI
	log *slog.Logger
}

func NewAdminService(api adminAPI, l *slog.Logger) *AdminService {
	if l == nil {
		l = slog.Default()
	}
	return &AdminService{api: api, log: l}
}

func invalid(fields map[string]string, order ...string) error {
	if len(fields) == 0 {
		return nil
	}
	for _, k := range order {
		if m, ok := fields[k]; ok {
			return apperr.InvalidErr(m, fields)
		}
	}
	return apperr.InvalidErr("Dữ liệu gửi lên không hợp lệ.", fields)
}

func ValidateProduct(in backend.ProductInput) error {
	f := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		f["name"] = MsgNameRequired
	}
	if !in.Price.IsPositive() {
		f["price"] = MsgPriceInvalid
	}
	if in.SalePrice != nil && in.SalePrice.IsPositive() && !in.SalePrice.LessThan(in.Price) {
		f["sale_price"] = MsgSaleNotLower
	}
	if in.Stock < 0 {
		f["stock"] = MsgStockNegative
	}
	return invalid(f, "name", "price", "sale_price", "stock")
}

// SaveProduct creates when id is 0, otherwise updates.
func (s *AdminService) SaveProduct(ctx context.Context, token, actor string, id int64, in backend.ProductInput) (backend.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := ValidateProduct(in); err != nil {
		return backend.Product{}, err
	}
	p, err := s.api.AdminSaveProduct(ctx, token, id, in)
	if err != nil {
		return backend.Product{}, err
	}
	s.audit(ctx, "product_saved", actor, p.ID)
	return p, nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, token, actor string, id int64) error {
	if err := s.api.AdminDeleteProduct(ctx, token, id); err != nil {
		return err
	}
	s.audit(ctx, "product_deleted", actor, id)
	return nil
}

func (s *AdminService) SaveCategory(ctx context.Context, token, actor string, id int64, in backend.CategoryInput) (backend.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	f := map[string]string{}
	if in.Name == "" {
		f["name"] = MsgNameRequired
	}
	if id > 0 && in.ParentID != nil && *in.ParentID == id {
		f["parent_id"] = MsgParentIsSelf
	}
	if err := invalid(f, "name", "parent_id"); err != nil {
		return backend.Category{}, err
	}
	cat, err := s.api.AdminSaveCategory(ctx, token, id, in)
	if err != nil {
		return backend.Category{}, err
	}
	s.audit(ctx, "category_saved", actor, cat.ID)
	return cat, nil
}

func (s *AdminService) DeleteCategory(ctx context.Context, token, actor string, id int64) error {
	if err := s.api.AdminDeleteCategory(ctx, token, id); err != nil {
		return err
	}
	s.audit(ctx, "category_deleted", actor, id)
	return nil
}

func (s *AdminService) Banners(ctx context.Context, token string) ([]backend.Banner, error) {
	return s.api.AdminListBanners(ctx, token)
}

func (s *AdminService) SaveBanner(ctx context.Context, token, actor string, id int64, in backend.BannerInput) (backend.Banner, error) {
	in.Title = strings.TrimSpace(in.Title)
	f := map[string]string{}
	if in.Title == "" {
		f["title"] = MsgNameRequired
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		f["image_url"] = MsgImageRequired
	}
	if in.Position < 0 {
		f["position"] = MsgPositionInvalid
	}
	if err := invalid(f, "title", "image_url", "position"); err != nil {
		return backend.Banner{}, err
	}
	b, err := s.api.AdminSaveBanner(ctx, token, id, in)
	if err != nil {
		return backend.Banner{}, err
	}
	s.audit(ctx, "banner_saved", actor, b.ID)
	return b, nil
}

func (s *AdminService) DeleteBanner(ctx context.Context, token, actor string, id int64) error {
	if err := s.api.AdminDeleteBanner(ctx, token, id); err != nil {
		return err
	}
	s.audit(ctx, "banner_deleted", actor, id)
	return nil
}

func (s *AdminService) audit(ctx context.Context, event, actor string, id int64) {
	s.log.InfoContext(ctx, event, slog.String("actor", actor), slog.Int64("id", id))
}
