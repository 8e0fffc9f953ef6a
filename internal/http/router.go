package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/flash"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/handlers"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/handlers/admin"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/sesscookie"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/session"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

var errNotFound = apperr.NotFoundErr("Không tìm thấy trang.")

// Deps is everything the router hands out to handlers.
type Deps struct {
	Logger   *slog.Logger
	Sessions *session.Store
	Cookie   *sesscookie.Codec
	Flash    *flash.Codec

	// UploadsDir is served under /uploads when avatars and product images
	// are stored on local disk. Empty disables it.
	UploadsDir string

	Auth         *handlers.AuthHandler
	Catalog      *handlers.CatalogHandler
	Cart         *handlers.CartHandler
	Checkout     *handlers.CheckoutHandler
	Orders       *handlers.OrdersHandler
	Account      *handlers.AccountHandler
	Geo          *handlers.GeoHandler
	AdminOrders  *admin.OrdersHandler
	AdminCatalog *admin.CatalogHandler
	AdminUploads *admin.UploadsHandler
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler(d.Logger))
	r.Use(middleware.FlashMiddleware(d.Flash))
	r.Use(middleware.SessionMiddleware(d.Sessions, d.Cookie))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/static", "./static")
	if d.UploadsDir != "" {
		r.Static("/uploads", d.UploadsDir)
	}

	requireAuth := middleware.RequireAuth(d.Flash)
	requireStaff := middleware.RequireStaff(d.Flash)

	// Public API
	api := r.Group("/api")
	{
		api.GET("/session", d.Auth.Session)
		api.POST("/auth/login", d.Auth.Login)
		api.POST("/auth/register", d.Auth.Register)
		api.POST("/auth/logout", d.Auth.Logout)
		api.POST("/auth/forgot-password", d.Auth.ForgotPassword)
		api.POST("/auth/reset-password", d.Auth.ResetPassword)
		api.GET("/auth/verify", d.Auth.VerifyEmail)

		api.GET("/products", d.Catalog.List)
		api.GET("/products/:id", d.Catalog.Detail)
		api.GET("/products/:id/reviews", d.Catalog.Reviews)
		api.GET("/categories", d.Catalog.Categories)
		api.GET("/banners", d.Catalog.Banners)
		api.GET("/cart/count", d.Cart.Count)

		api.GET("/geo/provinces", d.Geo.Provinces)
		api.GET("/geo/provinces/:code/districts", d.Geo.Districts)
		api.GET("/geo/districts/:code/wards", d.Geo.Wards)
	}

	// Signed-in API
	authAPI := r.Group("/api", requireAuth)
	{
		authAPI.GET("/cart", d.Cart.Get)
		authAPI.POST("/cart/items", d.Cart.Add)
		authAPI.PATCH("/cart/items/:id", d.Cart.Update)
		authAPI.DELETE("/cart/items/:id", d.Cart.Remove)

		authAPI.GET("/checkout", d.Checkout.Summary)
		authAPI.POST("/checkout/voucher", d.Checkout.ApplyVoucher)
		authAPI.DELETE("/checkout/voucher", d.Checkout.RemoveVoucher)
		authAPI.POST("/checkout/orders", d.Checkout.PlaceOrder)

		authAPI.GET("/orders", d.Orders.List)
		authAPI.GET("/orders/:code", d.Orders.Get)
		authAPI.POST("/orders/:code/cancel", d.Orders.RequestCancel)
		authAPI.POST("/orders/:code/pay", d.Orders.Pay)

		authAPI.GET("/wishlist", d.Catalog.Wishlist)
		authAPI.POST("/wishlist/:id/toggle", d.Catalog.ToggleWishlist)
		authAPI.POST("/reviews", d.Catalog.AddReview)

		authAPI.GET("/profile", d.Account.Profile)
		authAPI.PUT("/profile", d.Account.UpdateProfile)
		authAPI.GET("/wallet", d.Account.Wallet)
		authAPI.POST("/wallet/deposit", d.Account.Deposit)
	}

	// Back office API
	adminAPI := r.Group("/api/admin", requireStaff)
	{
		adminAPI.GET("/orders", d.AdminOrders.List)
		adminAPI.GET("/orders/:id", d.AdminOrders.Detail)
		adminAPI.POST("/orders/:id/actions", d.AdminOrders.Action)

		adminAPI.POST("/products", d.AdminCatalog.SaveProduct)
		adminAPI.PUT("/products/:id", d.AdminCatalog.SaveProduct)
		adminAPI.DELETE("/products/:id", d.AdminCatalog.DeleteProduct)
		adminAPI.POST("/categories", d.AdminCatalog.SaveCategory)
		adminAPI.PUT("/categories/:id", d.AdminCatalog.SaveCategory)
		adminAPI.DELETE("/categories/:id", d.AdminCatalog.DeleteCategory)
		adminAPI.GET("/banners", d.AdminCatalog.Banners)
		adminAPI.POST("/banners", d.AdminCatalog.SaveBanner)
		adminAPI.PUT("/banners/:id", d.AdminCatalog.SaveBanner)
		adminAPI.DELETE("/banners/:id", d.AdminCatalog.DeleteBanner)
		adminAPI.GET("/vouchers", d.AdminCatalog.ListVouchers)
		adminAPI.POST("/vouchers", d.AdminCatalog.SaveVoucher)
		adminAPI.PUT("/vouchers/:id", d.AdminCatalog.SaveVoucher)
		adminAPI.DELETE("/vouchers/:id", d.AdminCatalog.DeleteVoucher)

		adminAPI.POST("/uploads", d.AdminUploads.Upload)
	}

	// Form posts and redirects
	login := &handlers.LoginForm{Auth: d.Auth, Flash: d.Flash}
	r.GET("/login", login.Get)
	r.POST("/login", login.Post)
	r.POST("/logout", login.Logout)
	r.GET("/verify-email", login.VerifyEmail)
	momo := &handlers.MomoReturn{Flash: d.Flash}
	r.GET("/payment/momo/return", momo.Handle)

	// HTML shell. The promo popup only counts page views, not API calls.
	pages := r.Group("/", middleware.PromoPopup(d.Sessions, d.Cookie))
	{
		pages.GET("/", handlers.Shell("home", "Nội Thất Văn Phòng"))
		pages.GET("/products", handlers.Shell("products", "Sản phẩm"))
		pages.GET("/products/:id/:slug", handlers.Shell("product", "Chi tiết sản phẩm"))
		pages.GET("/cart", handlers.Shell("cart", "Giỏ hàng"))
		pages.GET("/register", handlers.Shell("register", "Đăng ký"))
		pages.GET("/forgot-password", handlers.Shell("forgot-password", "Quên mật khẩu"))
		pages.GET("/reset-password", handlers.Shell("reset-password", "Đặt lại mật khẩu"))

		account := pages.Group("/", requireAuth)
		account.GET("/checkout", handlers.Shell("checkout", "Thanh toán"))
		account.GET("/account/profile", handlers.Shell("account/profile", "Tài khoản"))
		account.GET("/account/orders", handlers.Shell("account/orders", "Đơn hàng của tôi"))
		account.GET("/account/orders/:code", handlers.Shell("account/order", "Chi tiết đơn hàng"))
		account.GET("/account/wallet", handlers.Shell("account/wallet", "Ví"))
		account.GET("/account/wishlist", handlers.Shell("account/wishlist", "Yêu thích"))

		back := pages.Group("/admin", requireStaff)
		back.GET("", handlers.AdminDashboard)
		back.GET("/*page", func(c *gin.Context) {
			handlers.Shell("admin"+c.Param("page"), "Quản trị")(c)
		})
	}

	r.NoRoute(func(c *gin.Context) {
		middleware.Fail(c, errNotFound)
	})
	return r
}
