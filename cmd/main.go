package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"
	"golang.org/x/sync/errgroup"

	"memorywall/cmd/buildCFG"
	"memorywall/internal/api/api"
	"memorywall/internal/approval"
	rabbitReader "memorywall/internal/consumerWorker"
	"memorywall/internal/feed"
	"memorywall/internal/metrics"
	"memorywall/internal/rabbit"
	"memorywall/internal/repo"
	"memorywall/internal/service"
)

func main() {
	zlog.Init()
	log := zlog.Logger

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "'"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	serverCfg := buildCFG.BuildServerConfig(cfg, &log)

	masterDSN, slaveDSNs, poolOptions, err := buildCFG.BuildDBConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build DB config")
	}
	db, err := dbpg.New(masterDSN, slaveDSNs, poolOptions)
	if err != nil {
		log.Fatal().Msgf("failed to connect to DB: %v", err)
	}
	if err := db.Master.Ping(); err != nil {
		log.Fatal().Msgf("DB ping failed: %v", err)
	}
	log.Info().Msg("Database connected successfully")

	repository, err := repo.NewRepository(db, &log)
	if err != nil {
		log.Fatal().Msgf("failed to initialize repository: %v", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot get working directory")
	}
	migrationPath := filepath.Join(cwd, "migrations/postgres")
	if err := repository.MigrateUp(migrationPath); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("Migrations applied successfully")

	rabbitCfg, err := buildCFG.BuildRabbitConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load RabbitMQ config")
	}
	rmq, err := rabbit.NewRabbit(rabbitCfg.Url, rabbitCfg.Exchange, rabbitCfg.Queue)
	if err != nil {
		log.Fatal().Msgf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rmq.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	m := metrics.New(prometheus.DefaultRegisterer)
	hub := feed.NewHub(m)
	var publisher feed.Publisher = hub

	redisCfg := buildCFG.BuildRedisConfig(cfg)
	redisClient, err := feed.Dial(ctx, redisCfg.Url)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
		broker := feed.NewRedisBroker(redisClient, redisCfg.ChannelPrefix, hub, &log)
		publisher = broker
		g.Go(func() error { return broker.Run(gctx) })
	} else {
		log.Info().Msg("redis.url not set, feed stays in-process")
	}

	modCfg := buildCFG.BuildModerationConfig(cfg)
	approver := approval.NewApprover(repository, publisher, &log, m)
	scheduler := approval.NewScheduler(rmq, &log, m)
	sweeper := approval.NewSweeper(approver, modCfg.SweepInterval, modCfg.SweepBatch, &log)

	rabbitReaderer := rabbitReader.NewReader(rmq, approver)
	rabbitReaderer.Start(gctx)

	g.Go(func() error { return sweeper.Run(gctx) })

	serviceInstance := service.NewService(service.Config{
		Repo:              repository,
		Log:               &log,
		Scheduler:         scheduler,
		Publisher:         publisher,
		Feed:              hub,
		Metrics:           m,
		ReconcileInterval: modCfg.ReconcileInterval,
		ScheduleTimeout:   rabbitCfg.PublishTimeout,
	})
	adminCfg := buildCFG.BuildAdminConfig(cfg, &log)
	app := api.NewRouters(&api.Routers{
		Service:    serviceInstance,
		Metrics:    m,
		AdminToken: adminCfg.Token,
		Mode:       serverCfg.Mode,
	})

	srv := &http.Server{Addr: ":" + serverCfg.Port, Handler: app}
	g.Go(func() error {
		log.Info().Msgf("Starting server on %s", serverCfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Initiating shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("service stopped with error")
	}
	rabbitReaderer.Stop()

	if buildCFG.RollbackOnShutdown(cfg) {
		log.Info().Msg("Rolling back migrations...")
		if err := repository.MigrateDown(migrationPath); err != nil {
			log.Error().Msgf("failed to rollback migrations: %v", err)
		} else {
			log.Info().Msg("Migrations rolled back successfully")
		}
	}
	log.Info().Msg("Shutdown complete")
}
