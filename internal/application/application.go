package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"resell_margin/internal/config"
	"resell_margin/internal/domain/service/analysis"
	"resell_margin/internal/infrastructure/exchange"
	"resell_margin/internal/infrastructure/naver"
	"resell_margin/internal/infrastructure/persistence"
	"resell_margin/internal/infrastructure/poizon"
	"resell_margin/internal/server"
	"resell_margin/pkg/application/connectors"
	"resell_margin/pkg/application/modules"
	"resell_margin/pkg/logx"
	"resell_margin/pkg/middlewarex"
)

const (
	serviceName    = "resell-margin"
	serviceVersion = "dev"

	logFieldMaxLen = 2048
)

func Run(ctx context.Context, log *slog.Logger) error {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	// 2. Database
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info("database connection OK")

	// 3. Repositories
	bidRepo := persistence.NewBidRepository(db)
	settingsRepo := persistence.NewSettingsRepository(db)

	// 4. Upstream clients
	poizonClient, err := poizon.NewClient(cfg.Poizon)
	if err != nil {
		return fmt.Errorf("poizon client: %w", err)
	}

	naverClient, err := naver.NewClient(cfg.Naver)
	if err != nil {
		return fmt.Errorf("naver client: %w", err)
	}

	rateProvider := exchange.NewProvider(cfg.Exchange)

	// 5. Services
	analysisService := analysis.NewService(poizonClient, naverClient, rateProvider, bidRepo, cfg.Analysis)

	srv := server.NewServer(
		server.NewAnalysisServer(analysisService, settingsRepo),
		server.NewBidServer(analysisService, bidRepo),
		server.NewSettingsServer(settingsRepo),
		server.NewRateServer(rateProvider),
	)

	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.UserID,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)
	srv.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 6. Modules
	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.Server.ShutdownTimeout}.Run(ctx, g, httpServer)
	modules.MetricServer{ListenAddress: cfg.Server.MetricsAddress}.Run(ctx, g)
	modules.ProbeServer{
		Name:          serviceName,
		Version:       serviceVersion,
		ListenAddress: cfg.Server.ProbeAddress,
	}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
