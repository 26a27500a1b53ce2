package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront-cart/internal/cart"
	"storefront-cart/internal/config"
	"storefront-cart/internal/db"
	"storefront-cart/internal/httpserver"
	"storefront-cart/internal/mail"
	productrepo "storefront-cart/internal/repository/product"
	abandonmentsvc "storefront-cart/internal/service/abandonment"
	cartsvc "storefront-cart/internal/service/cart"
	catalogsvc "storefront-cart/internal/service/catalog"
	"storefront-cart/internal/storage"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	store := cart.New(storage.NewFile(cfg.CartFile), logger)

	// Hydration races any add-to-cart request that lands during
	// startup; the store resolves that in favor of the earlier write.
	go store.Hydrate(ctx)

	productRepo := productrepo.NewPostgres(dbpool, logger)
	catalogService := catalogsvc.New(productRepo)
	cartService := cartsvc.New(store, productRepo, cfg.TaxRate)

	watcherCtx, stopWatcher := context.WithCancel(ctx)
	defer stopWatcher()
	if cfg.SendGridAPIKey != "" && cfg.AbandonmentTo != "" {
		mailer := mail.NewSendGridClient(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName, logger)
		watcher := abandonmentsvc.New(store, mailer, cfg.AbandonmentTo, cfg.AbandonmentAfter, logger)
		go watcher.Run(watcherCtx)
		logger.Printf("abandonment watcher enabled, idle window %s", cfg.AbandonmentAfter)
	} else {
		logger.Printf("abandonment watcher disabled (mail not configured)")
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartStore:  store,
		CartSvc:    cartService,
		CatalogSvc: catalogService,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
