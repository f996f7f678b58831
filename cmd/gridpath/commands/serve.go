package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pdrpinto/gridpath/internal/cache"
	"github.com/pdrpinto/gridpath/internal/config"
	"github.com/pdrpinto/gridpath/internal/printer"
	"github.com/pdrpinto/gridpath/internal/server"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	serveConfigPath string
	serveAddr       string
	serveRedisAddr  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the path engine to the grid editor over HTTP",
	Long: `Serve the path engine to the grid editor over HTTP.

Endpoints:
  POST /api/path   one search, obstacles and path as flat x,y arrays
  POST /api/paths  several searches at once
  GET  /healthz    liveness, including the Redis cache when enabled

Results are cached in Redis when cache.redis_addr (or --redis) is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to gridpath.yml")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().StringVar(&serveRedisAddr, "redis", "", "Redis address for the path cache (overrides cache.redis_addr)")

	rootCmd.AddCommand(serveCmd)
}

func loadServeConfig() (*config.Config, error) {
	cfg := config.Default()
	if serveConfigPath != "" {
		loaded, err := config.Load(serveConfigPath)
		if err != nil {
			return nil, printer.Error("Cannot load configuration", err.Error(), []string{"Check " + serveConfigPath})
		}
		cfg = loaded
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveRedisAddr != "" {
		cfg.Cache.RedisAddr = serveRedisAddr
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pc cache.PathCache
	if cfg.CacheEnabled() {
		rc, err := cache.NewRedisCache(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		}, cfg.Cache.Prefix, cfg.CacheTTL())
		if err != nil {
			return printer.Error("Invalid cache configuration", err.Error(), nil)
		}
		defer func() {
			if err := rc.Close(); err != nil {
				log.Printf("[ERROR] Error closing Redis cache: %v", err)
			}
		}()

		if err := rc.Ping(ctx); err != nil {
			log.Printf("[WARN] Redis at %s not reachable, serving without cache hits until it is: %v", cfg.Cache.RedisAddr, err)
		} else {
			log.Printf("[INFO] Connected to Redis at %s", cfg.Cache.RedisAddr)
		}
		pc = rc
	}

	out := cmd.OutOrStdout()
	printer.Step(out, "Serving grid paths on %s\n", cfg.Server.Addr)
	if pc == nil {
		printer.Info(out, "  cache: disabled\n")
	} else {
		printer.Info(out, "  cache: redis at %s, ttl %s\n", cfg.Cache.RedisAddr, cfg.CacheTTL())
	}
	return server.New(cfg, pc).ListenAndServe(ctx)
}
