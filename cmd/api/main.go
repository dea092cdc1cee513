package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"jaayma/auth"
	"jaayma/category"
	"jaayma/config"
	"jaayma/db"
	"jaayma/gie"
	"jaayma/httpapi"
	"jaayma/order"
	"jaayma/payment"
	"jaayma/product"
	"jaayma/region"
)

func main() {
	logger := newLogger(os.Getenv("LOG_LEVEL"))

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("api exited")
	}
}

func run(logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	codec, err := auth.NewCodec(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}
	deliveryCodec, err := auth.NewDeliveryCodec(cfg.DeliveryJWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	authSvc := auth.NewService(auth.NewRepository(pool), codec, deliveryCodec)
	gieSvc := gie.NewService(gie.NewRepository(pool))
	categorySvc := category.NewService(category.NewRepository(pool))
	regionSvc := region.NewService(region.NewRepository(pool))
	productSvc := product.NewService(product.NewRepository(pool), gieSvc)
	orderSvc := order.NewService(pool, order.NewRepository(pool))
	paymentSvc := payment.NewService(pool, payment.NewRepository(pool))

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         logger,
		Guards:         httpapi.NewGuards(codec, deliveryCodec),
		Auth:           httpapi.NewAuthHandler(authSvc),
		Catalog:        httpapi.NewCatalogHandler(categorySvc, regionSvc),
		GIEs:           httpapi.NewGIEHandler(gieSvc),
		Products:       httpapi.NewProductHandler(productSvc),
		Orders:         httpapi.NewOrderHandler(orderSvc),
		Payments:       httpapi.NewPaymentHandler(paymentSvc),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Str("service", "jaayma-api").Logger()
}
