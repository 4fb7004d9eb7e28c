package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/collegegate/collegegate/internal/dotenv"
	"github.com/collegegate/collegegate/pkg/core/counselor"
	"github.com/collegegate/collegegate/pkg/gateway/config"
	gatewayserver "github.com/collegegate/collegegate/pkg/gateway/server"
	"github.com/collegegate/collegegate/pkg/store"
)

type gatewayDeps struct {
	loadConfig   func() (config.Config, error)
	openStore    func(ctx context.Context, dsn string) (*store.PostgresStore, error)
	newCounselor func(ctx context.Context, cfg counselor.Config) (*counselor.Client, error)
	signalNotify func(chan<- os.Signal, ...os.Signal)
	signalStop   func(chan<- os.Signal)
}

func defaultGatewayDeps() gatewayDeps {
	return gatewayDeps{
		loadConfig:   config.LoadFromEnv,
		openStore:    store.OpenPostgres,
		newCounselor: counselor.NewClient,
		signalNotify: func(c chan<- os.Signal, sig ...os.Signal) {
			signal.Notify(c, sig...)
		},
		signalStop: signal.Stop,
	}
}

func buildHTTPServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
	}
}

func buildServerDeps(ctx context.Context, cfg config.Config, logger *slog.Logger, deps gatewayDeps) (gatewayserver.Deps, func(), error) {
	out := gatewayserver.Deps{}
	cleanup := func() {}

	if cfg.DatabaseURL != "" {
		pg, err := deps.openStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return out, cleanup, fmt.Errorf("open store: %w", err)
		}
		out.Users = pg.Users()
		out.Inquiries = pg.Inquiries()
		cleanup = pg.Close
		logger.Info("using postgres store")
	} else {
		logger.Info("using in-memory store")
	}

	if cfg.GeminiAPIKey != "" {
		client, err := deps.newCounselor(ctx, counselor.Config{
			APIKey:            cfg.GeminiAPIKey,
			VideoPollInterval: cfg.VideoPollInterval,
			VideoPollBudget:   cfg.VideoPollBudget,
			Logger:            logger,
		})
		if err != nil {
			cleanup()
			return gatewayserver.Deps{}, func() {}, fmt.Errorf("create counselor client: %w", err)
		}
		out.Research = client
		out.Media = client
	} else {
		logger.Warn("GEMINI_API_KEY not set; research and campus media routes disabled")
	}

	return out, cleanup, nil
}

func runGateway(ctx context.Context, logger *slog.Logger, deps gatewayDeps) error {
	if deps.loadConfig == nil || deps.openStore == nil || deps.newCounselor == nil {
		return errors.New("missing dependency")
	}
	if deps.signalNotify == nil || deps.signalStop == nil {
		return errors.New("missing signal dependency")
	}
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := deps.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	serverDeps, cleanup, err := buildServerDeps(ctx, cfg, logger, deps)
	if err != nil {
		return err
	}
	defer cleanup()

	gw := gatewayserver.New(cfg, logger, serverDeps)
	httpSrv := buildHTTPServer(cfg, gw.Handler())

	logger.Info("starting gateway", "addr", cfg.Addr)

	listenErrCh := make(chan error, 1)
	go func() {
		err := httpSrv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErrCh <- err
			return
		}
		listenErrCh <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	deps.signalNotify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer deps.signalStop(sigCh)

	select {
	case err := <-listenErrCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	if err := <-listenErrCh; err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	logger.Info("gateway stopped")
	return nil
}

func runMain(ctx context.Context, stderr io.Writer, deps gatewayDeps) int {
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	if err := dotenv.LoadFile(".env"); err != nil {
		fmt.Fprintf(stderr, "collegegate-gateway: %v\n", err)
		return 1
	}

	if err := runGateway(ctx, logger, deps); err != nil {
		fmt.Fprintf(stderr, "collegegate-gateway: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(runMain(context.Background(), os.Stderr, defaultGatewayDeps()))
}
