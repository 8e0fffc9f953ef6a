package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/config"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/geo"
	apphttp "github.com/khanh208/shop-noithat-vp-sub000/internal/http"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/flash"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/handlers"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/handlers/admin"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/sesscookie"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/logging"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/mailer"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/cart"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/checkout"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/orders"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/payments"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/products"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/users"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/voucher"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/session"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/storage"
)

func main() {
	// .env is optional; production uses real env vars
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	cfg, err := config.Load("configs", env)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.Init(logging.Options{
		Component: cfg.App.Name,
		Level:     cfg.App.LogLevel,
		FilePath:  cfg.App.LogFile,
	})
	if env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessStorage, closeStorage, err := session.OpenStorage(ctx, cfg)
	if err != nil {
		logger.Error("session_storage_failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer closeStorage()
	if g, ok := sessStorage.(*session.GormStorage); ok {
		go purgeSessions(ctx, g, logger)
	}

	files, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Error("file_storage_failed", slog.Any("err", err))
		os.Exit(1)
	}

	client := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, backend.WithLogger(logging.New("backend")))
	provinces := geo.New(cfg.Geo.BaseURL, cfg.Geo.Timeout)

	store := session.NewStore(sessStorage, client, session.Options{
		TTL:                cfg.Session.TTL,
		TokenClaimFallback: cfg.Session.TokenClaimFallback,
		Logger:             logging.New("session"),
	})
	cookie := sesscookie.New([]byte(cfg.Session.Secret), cfg.Session.CookieName, cfg.Session.Secure, cfg.Session.TTL)
	flashCodec := flash.NewCodec([]byte(cfg.Flash.Secret), cfg.Flash.CookieName, cfg.Session.Secure)

	mail := mailer.New(cfg.SMTP, logging.New("mailer"))
	notifier := orders.NewMailNotifier(mail, cfg.SMTP.From, cfg.SMTP.FromName, cfg.SMTP.BackofficeTo, cfg.App.BaseURL)

	momo := payments.NewMomoProvider(client)
	paySvc := payments.NewService(client, momo)
	checkoutSvc := checkout.NewService(client, momo, store, cfg.ShippingFee(), logging.New("checkout"))
	orderSvc := orders.NewService(client, notifier, logging.New("orders"))
	catalogSvc := products.NewService(client, client, logging.New("catalog"))
	profileSvc := users.NewProfileService(client, store, files, logging.New("users"))
	passwordSvc := users.NewPasswordService(client, logging.New("users"))
	verifySvc := users.NewVerifyService(client)

	uploadsDir := ""
	if cfg.Storage.Driver == "local" {
		uploadsDir = cfg.Storage.LocalDir
	}

	r := apphttp.NewRouter(apphttp.Deps{
		Logger:     logger,
		Sessions:   store,
		Cookie:     cookie,
		Flash:      flashCodec,
		UploadsDir: uploadsDir,

		Auth:         handlers.NewAuthHandler(store, cookie, passwordSvc, verifySvc),
		Catalog:      handlers.NewCatalogHandler(catalogSvc),
		Cart:         handlers.NewCartHandler(cart.NewService(client)),
		Checkout:     handlers.NewCheckoutHandler(checkoutSvc),
		Orders:       handlers.NewOrdersHandler(orderSvc, paySvc),
		Account:      handlers.NewAccountHandler(profileSvc, paySvc),
		Geo:          handlers.NewGeoHandler(provinces),
		AdminOrders:  admin.NewOrdersHandler(orders.NewAdminService(client, logging.New("admin"))),
		AdminCatalog: admin.NewCatalogHandler(products.NewAdminService(client, logging.New("admin")), voucher.NewAdminService(client, logging.New("admin"))),
		AdminUploads: admin.NewUploadsHandler(files),
	})

	srv := &http.Server{
		Addr:              cfg.App.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http_listen", slog.String("addr", srv.Addr), slog.String("env", env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_serve_failed", slog.Any("err", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_shutdown_failed", slog.Any("err", err))
	}
	logger.Info("http_stopped")
}

// purgeSessions drops expired rows from the session table every hour.
func purgeSessions(ctx context.Context, g *session.GormStorage, l *slog.Logger) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := g.PurgeExpired(ctx)
			if err != nil {
				l.Warn("session_purge_failed", slog.Any("err", err))
				continue
			}
			if n > 0 {
				l.Info("session_purge", slog.Int64("rows", n))
			}
		}
	}
}
