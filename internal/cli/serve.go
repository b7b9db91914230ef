package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ev-chart-station/internal/api"
	"ev-chart-station/internal/config"
	"ev-chart-station/internal/conflict"
	"ev-chart-station/internal/logger"
	"ev-chart-station/internal/repository"
	"ev-chart-station/internal/session"
	"ev-chart-station/pkg/idgen"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (yaml)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := repository.Open(cfg.Database.Driver, cfg.Database.DSN, log)
	if err != nil {
		return err
	}
	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	ids, err := idgen.NewSnowflake(cfg.IDGen.DatacenterID, cfg.IDGen.WorkerID)
	if err != nil {
		return err
	}

	tracker, closeTracker := newTracker(ctx, cfg.Redis, log)
	defer closeTracker()

	gin.SetMode(cfg.Server.Mode)
	h := api.NewHandler(repository.NewStationStore(db, ids), tracker, cfg.Features, log)
	codec := session.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.Issuer, 0)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.NewRouter(h, codec, log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.Bool("register_non_fed_funded_station", cfg.Features.RegisterNonFedFundedStation),
			zap.Bool("sr_adds_station", cfg.Features.SRAddsStation),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newTracker 配置了 redis 时使用 redis，否则使用进程内实现
func newTracker(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (conflict.Tracker, func()) {
	if cfg.Addr == "" {
		log.Info("conflict tracker: in-memory")
		return conflict.NewMemoryTracker(cfg.ConflictTTL), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, conflicts will not be shared", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		log.Info("conflict tracker: redis", zap.String("addr", cfg.Addr))
	}
	return conflict.NewRedisTracker(client, cfg.ConflictTTL), func() { _ = client.Close() }
}
