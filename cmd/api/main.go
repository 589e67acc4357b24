package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"kakasaku_backend/internal/adapter/repo"
	"kakasaku_backend/internal/http/handlers"
	httpapi "kakasaku_backend/internal/http/httpapi"
	"kakasaku_backend/internal/infra"
	"kakasaku_backend/internal/infra/geoip"
	"kakasaku_backend/internal/realtime"
	"kakasaku_backend/internal/stats"
)

func main() {
	// Muat .env (opsional)
	_ = godotenv.Load()

	// Konfigurasi & logger
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB pool (pgxpool)
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	// Redis: bus realtime + penyimpanan sesi yang dicabut
	rdb, err := infra.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}
	defer rdb.Close()

	bus, err := realtime.NewBus(rdb)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create change bus")
	}
	revocations := infra.NewRevocationStore(rdb)

	// GeoIP opsional; tanpa database file, deteksi bahasa jatuh ke header
	country, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable, locale detection uses headers only")
	}

	// Repositories di atas SQL runner
	runner := infra.NewSQLRunner(dbpool, logger)
	donations := repo.NewDonationRepository(runner)
	programs := repo.NewProgramRepository(runner)
	members := repo.NewMemberRepository(runner)
	admins := repo.NewAdminRepository(runner)

	// Agregasi progres + hub websocket
	registry := stats.NewRegistry(ctx, bus, donations, programs, cfg.GeneralTarget, logger)
	defer registry.Close()

	hub := realtime.NewHub(bus, logger)
	go hub.Run(ctx)

	app := handlers.NewApp(runner, handlers.App{
		Donations:   donations,
		Programs:    programs,
		Members:     members,
		Admins:      admins,
		Bus:         bus,
		Hub:         hub,
		Stats:       registry,
		Revocations: revocations,
		Logger:      logger,
		JWTSecret:   cfg.JWTSecret,
		SessionTTL:  cfg.SessionTTL,

		AllowedOrigins: cfg.CORSOrigins,
	})

	router := httpapi.NewRouter(app, cfg, revocations, country)
	server := infra.NewHTTPServer(cfg, router)

	// Start async
	go func() {
		logger.Info().Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
