// Command storefront runs the storefront order API.
//
//	@title       Storefront API
//	@version     1.0
//	@description Checkout, mobile payment reconciliation and order tracking.
//	@BasePath    /
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gookit/slog"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MikeMC777/storefront-ecom/internal/config"
	"github.com/MikeMC777/storefront-ecom/internal/customer"
	"github.com/MikeMC777/storefront-ecom/internal/events"
	"github.com/MikeMC777/storefront-ecom/internal/invoice"
	"github.com/MikeMC777/storefront-ecom/internal/order"
	"github.com/MikeMC777/storefront-ecom/internal/payment"
	"github.com/MikeMC777/storefront-ecom/internal/product"
	"github.com/MikeMC777/storefront-ecom/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "storefront",
		Short:        "Storefront order and payment service",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), migrateCmd())
	return root
}

func setupLogging(level string) {
	slog.SetLogLevel(slog.LevelByName(level))
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			setupLogging(cfg.LogLevel)

			db, err := store.Open(cmd.Context(), cfg.PostgresDSN, cfg.MaxConns)
			if err != nil {
				return err
			}
			defer db.Close()
			return store.Migrate(cmd.Context(), db)
		},
	}
}

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, config.Load(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before serving")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, migrate bool) error {
	setupLogging(cfg.LogLevel)

	db, err := store.Open(ctx, cfg.PostgresDSN, cfg.MaxConns)
	if err != nil {
		return err
	}
	defer db.Close()
	if migrate {
		if err := store.Migrate(ctx, db); err != nil {
			return err
		}
	}

	var pub events.Publisher = events.Noop{}
	if cfg.NATSURL != "" {
		nc, err := events.Connect(cfg.NATSURL)
		if err != nil {
			slog.Warnf("[events] nats unavailable, events disabled: %v", err)
		} else {
			defer nc.Close()
			pub = nc
		}
	}

	orders := order.NewPGRepo(db)
	payments := payment.NewPGRepo(db)
	reader := order.NewReader(orders)
	company := invoice.Company{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
	}

	gin.SetMode(gin.ReleaseMode)
	router := newRouter(deps{
		Orders:       order.NewWriter(orders, pub),
		Tracker:      reader,
		Status:       order.NewStatusUpdater(orders),
		Invoices:     invoice.NewDispatcher(invoice.NewClient(cfg.InvoiceURL, cfg.InvoiceTimeout), reader, orders, company),
		Ingestor:     payment.NewIngestor(payments, cfg.IngestKey, pub),
		Verifier:     payment.NewVerifier(payments),
		Products:     product.NewPGRepo(db),
		Customers:    customer.NewPGRepo(db),
		AdminKeyHash: cfg.AdminKeyHash,
	})

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}
	gs := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	go watchDB(ctx, db, hs, 15*time.Second)
	go func() {
		slog.Infof("storefront grpc health listening on %s", cfg.GRPCAddr)
		if err := gs.Serve(lis); err != nil {
			slog.Errorf("grpc serve: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Infof("storefront listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			gs.Stop()
			return err
		}
	}

	slog.Info("shutting down")
	hs.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	gs.GracefulStop()
	return srv.Shutdown(shutdownCtx)
}
