package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	anoncredshandler "prover/internal/anoncreds/handler"
	anoncredsservice "prover/internal/anoncreds/service"
	anoncredsstore "prover/internal/anoncreds/store"
	ledgerhandler "prover/internal/ledger/handler"
	ledgerservice "prover/internal/ledger/service"
	"prover/internal/platform/config"
	"prover/internal/platform/database"
	"prover/internal/platform/health"
	"prover/internal/platform/logger"
	"prover/internal/platform/metrics"
	"prover/internal/platform/tracer"
	httptransport "prover/internal/transport/http"
	wallethandler "prover/internal/wallet/handler"
	walletservice "prover/internal/wallet/service"
	walletstore "prover/internal/wallet/store"
	"prover/migrations"
	request "prover/pkg/platform/middleware/request"
)

const readHeaderTimeout = 5 * time.Second

type stores struct {
	wallets walletservice.Store
	claims  interface {
		anoncredsservice.ClaimStore
		walletservice.ClaimPurger
	}
	pool    *database.Pool
	backend string
}

// main wires stores, services and handlers, then serves until SIGINT or SIGTERM.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("initializing prover",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"postgres", cfg.UsesPostgres(),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	if st.pool != nil {
		defer func() {
			if err := st.pool.Close(); err != nil {
				log.Warn("closing database pool", "error", err)
			}
		}()
	}

	wallets := walletservice.New(st.wallets, st.claims,
		walletservice.WithLogger(log),
		walletservice.WithMetrics(m),
	)
	claims := anoncredsservice.New(st.claims, wallets,
		anoncredsservice.WithLogger(log),
		anoncredsservice.WithMetrics(m),
		anoncredsservice.WithTracer(tracer.NewOTel()),
	)
	builder := ledgerservice.NewBuilder(ledgerservice.WithMetrics(m))

	healthHandler := health.New(cfg.Environment, health.WithStorage(st.backend))
	if st.pool != nil {
		healthHandler.RegisterCheck("database", st.pool.Health)
		reg.MustRegister(collectors.NewDBStatsCollector(st.pool.DB(), "prover"))
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         log,
		Gatherer:       reg,
		Metrics:        request.NewMetrics(reg),
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RequestTimeout: cfg.RequestTimeout,
		Health:         healthHandler,
		Handlers: []httptransport.Registrar{
			wallethandler.New(wallets, log),
			anoncredshandler.New(claims, log),
			ledgerhandler.New(builder, log),
		},
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStores(ctx context.Context, cfg config.Server) (*stores, error) {
	if !cfg.UsesPostgres() {
		return &stores{
			wallets: walletstore.NewInMemory(),
			claims:  anoncredsstore.NewInMemory(),
			backend: "memory",
		}, nil
	}

	pool, err := database.New(ctx, database.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		return nil, err
	}
	if err := migrations.Up(ctx, pool.DB()); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return &stores{
		wallets: walletstore.NewPostgres(pool.DB()),
		claims:  anoncredsstore.NewPostgres(pool.DB()),
		pool:    pool,
		backend: "postgres",
	}, nil
}
