// Package app wires the storefront together: storage, catalog, domain
// services, HTTP surface, health probes, and graceful shutdown.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/sritelangana/storefront/internal/domain/cart"
	"github.com/sritelangana/storefront/internal/domain/catalog"
	"github.com/sritelangana/storefront/internal/domain/giftbox"
	"github.com/sritelangana/storefront/internal/domain/newsletter"
	"github.com/sritelangana/storefront/internal/domain/order"
	"github.com/sritelangana/storefront/internal/domain/review"
	"github.com/sritelangana/storefront/internal/domain/wishlist"
	"github.com/sritelangana/storefront/internal/handler"
	"github.com/sritelangana/storefront/internal/storage/localstore"
	"github.com/sritelangana/storefront/pkg/health"
	"github.com/sritelangana/storefront/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.String("data_dir", cfg.DataDir),
	)

	store, err := localstore.NewFileStore(cfg.DataDir)
	if err != nil {
		return errors.Wrap(err, "open local store")
	}

	cat, err := catalog.LoadEmbedded()
	if err != nil {
		return errors.Wrap(err, "load embedded catalog")
	}
	lg.Info("Catalog loaded", zap.Int("products", len(cat.List())))

	pricing, err := cfg.Pricing()
	if err != nil {
		return errors.Wrap(err, "pricing config")
	}

	// Domain services. All share the same durable store under distinct keys.
	carts := cart.NewService(store, lg.Named("cart"))
	wishlists := wishlist.NewService(store, lg.Named("wishlist"))
	orders := order.NewService(store, carts, pricing, lg.Named("order"))
	reviews := review.NewService(cat, store, lg.Named("review"))
	news := newsletter.NewService(store, lg.Named("newsletter"))
	boxes := giftbox.NewService(cat, carts, store, lg.Named("giftbox"))

	healthSvc := health.New()
	healthSvc.AddReadinessCheck("store", 5*time.Second, health.StoreWritableCheck(store))
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.SetReady(true)

	h := handler.New(
		handler.Config{ImageBaseURL: cfg.ImageBaseURL},
		cat, carts, wishlists, orders, reviews, news, boxes,
	)

	router := h.Routes()
	router.HandleFunc("/livez", healthSvc.LiveEndpoint).Methods(http.MethodGet)
	router.HandleFunc("/readyz", healthSvc.ReadyEndpoint).Methods(http.MethodGet)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(router,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins: cfg.CORS.Origins,
			}),
			httpmiddleware.RateLimit(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: flip readiness, let load balancers drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
