package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariebrainware/basis-data-dental/config"
	"github.com/ariebrainware/basis-data-dental/endpoint"
	"github.com/ariebrainware/basis-data-dental/middleware"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/schedule"
	"github.com/ariebrainware/basis-data-dental/service"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/ariebrainware/basis-data-dental/validation"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var (
		shutdownTimeout time.Duration
		migrate         bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Viper().BindPFlag("APPPORT", cmd.Flags().Lookup("port")); err != nil {
				return err
			}
			return serve(cmd.Context(), migrate, shutdownTimeout)
		},
	}

	cmd.Flags().Uint16("port", 8080, "port to listen on (overrides APPPORT)")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "run the schema migration before serving")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 15*time.Second, "maximum time to wait for in-flight requests")
	return cmd
}

func serve(parent context.Context, migrate bool, shutdownTimeout time.Duration) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg := config.LoadConfig()
	logger := util.InitLogger(cfg)
	gin.SetMode(cfg.GinMode)

	if cfg.JWTSecret == "" && !cfg.IsTest() {
		return errors.New("JWTSECRET must be set")
	}
	util.SetJWTSecret(cfg.JWTSecret)

	db, err := config.ConnectDatabase()
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if migrate {
		if err := model.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	if _, err := config.ConnectRedis(); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, sessions are checked against the database only")
	}
	if err := util.InitGeoIP(cfg.GeoIPPath); err != nil {
		logger.Warn().Err(err).Str("path", cfg.GeoIPPath).Msg("geoip disabled")
	}
	defer util.CloseGeoIP()

	util.InitIdentityCache(1000)
	util.SetSecurityLoggerDB(db)
	if err := validation.RegisterGin(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	grid, err := schedule.NewGrid(cfg.DayStart, cfg.DayEnd, cfg.SlotMinutes)
	if err != nil {
		return fmt.Errorf("appointment grid: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(geoIPCacheCollectors()...)

	svc := service.New(service.Deps{
		DB:       db,
		Lists:    service.NewListCache(time.Minute),
		Grid:     grid,
		PageSize: cfg.PageSize,
		Metrics:  registry,
		Logger:   &logger,
	})

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go svc.Dashboard.Run(ctx, cfg.DashboardRefresh)

	router := endpoint.NewRouter(endpoint.RouterOptions{
		AppName:     cfg.AppName,
		DB:          db,
		Services:    svc,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
		IPResolver:  util.NewIPResolver(cfg.IPLookupURL),
		Gatherer:    registry,
		AuthLimit:   middleware.RateLimitConfig{},
	})

	port := config.Viper().GetUint("APPPORT")
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
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

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func geoIPCacheCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "dental", Name: "geoip_cache_hits_total",
			Help: "GeoIP lookups answered from the cache.",
		}, func() float64 {
			hits, _, _ := util.GetGeoIPCacheMetrics()
			return float64(hits)
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "dental", Name: "geoip_cache_misses_total",
			Help: "GeoIP lookups that went to the database.",
		}, func() float64 {
			_, misses, _ := util.GetGeoIPCacheMetrics()
			return float64(misses)
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "dental", Name: "geoip_cache_entries",
			Help: "Entries held by the GeoIP cache.",
		}, func() float64 {
			_, _, size := util.GetGeoIPCacheMetrics()
			return float64(size)
		}),
	}
}
