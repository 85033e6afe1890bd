package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/coaching-backend/internal/adapter/notifier"
	"github.com/heartmarshall/coaching-backend/internal/adapter/postgres"
	clientrepo "github.com/heartmarshall/coaching-backend/internal/adapter/postgres/client"
	"github.com/heartmarshall/coaching-backend/internal/adapter/postgres/event"
	"github.com/heartmarshall/coaching-backend/internal/adapter/postgres/generationlog"
	programrepo "github.com/heartmarshall/coaching-backend/internal/adapter/postgres/program"
	"github.com/heartmarshall/coaching-backend/internal/adapter/provider/claude"
	"github.com/heartmarshall/coaching-backend/internal/auth"
	"github.com/heartmarshall/coaching-backend/internal/config"
	"github.com/heartmarshall/coaching-backend/internal/metrics"
	"github.com/heartmarshall/coaching-backend/internal/service/artifact"
	clientsvc "github.com/heartmarshall/coaching-backend/internal/service/client"
	"github.com/heartmarshall/coaching-backend/internal/service/generation"
	programsvc "github.com/heartmarshall/coaching-backend/internal/service/program"
	"github.com/heartmarshall/coaching-backend/internal/service/timeline"
	"github.com/heartmarshall/coaching-backend/internal/transport/dataloader"
	"github.com/heartmarshall/coaching-backend/internal/transport/middleware"
	"github.com/heartmarshall/coaching-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL (and Redis when configured), wires services and serves HTTP
// until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("generator_enabled", cfg.Generator.Enabled()),
		slog.Bool("notifier_enabled", cfg.Notifier.Enabled()),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	var redisClient *redis.Client
	if cfg.Notifier.Enabled() {
		redisClient, err = notifier.Connect(ctx, cfg.Notifier.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	handler := NewHandler(cfg, logger, pool, redisClient, limiter)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}

// NewHandler wires repositories, services and transport into the root HTTP
// handler. redisClient may be nil, which disables event publishing.
func NewHandler(
	cfg *config.Config,
	logger *slog.Logger,
	pool *pgxpool.Pool,
	redisClient *redis.Client,
	limiter *middleware.RateLimiter,
) http.Handler {
	m := metrics.New()

	// Repositories.
	clients := clientrepo.New(pool)
	programs := programrepo.New(pool)
	logs := generationlog.New(pool)
	events := event.New(pool)
	tx := postgres.NewTxManager(pool)

	// Collaborators. Interfaces stay nil unless configured.
	var pub artifact.Notifier
	health := rest.NewHealthHandler(pool, BuildVersion())
	if redisClient != nil {
		n := notifier.New(redisClient, cfg.Notifier.Stream, cfg.Notifier.MaxLen)
		pub = n
		health.WithOptional("notifier", n)
	}

	var gen generation.Generator
	if cfg.Generator.Enabled() {
		gen = claude.NewGenerator(claude.Config{
			APIKey:     cfg.Generator.APIKey,
			Model:      cfg.Generator.Model,
			MaxTokens:  cfg.Generator.MaxTokens,
			Timeout:    cfg.Generator.Timeout,
			BaseURL:    cfg.Generator.BaseURL,
			MaxRetries: cfg.Generator.MaxRetries,
		}, logger)
	}

	// Services.
	clientService := clientsvc.NewService(logger, clients)
	programService := programsvc.NewService(logger, programs)
	generationService := generation.NewService(logger, clients, logs, gen, m)
	artifactService := artifact.NewService(logger, pool, tx, clients, programs, logs, events, pub, m)
	timelineService := timeline.NewService(logger, clients, events, logs, m)

	// Transport.
	handlers := rest.Handlers{
		Health:      health,
		Clients:     rest.NewClientHandler(clientService, programService, logger),
		Artifacts:   rest.NewArtifactHandler(artifactService, logger),
		Generations: rest.NewGenerationHandler(generationService, logger),
		Timeline:    rest.NewTimelineHandler(timelineService, logger),
	}
	if cfg.Server.MetricsEnabled {
		handlers.Metrics = m.Handler()
	}

	mux := rest.NewRouter(handlers, limiter.Limit(cfg.RateLimit.GeneratePerMinute))

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		m.InstrumentHandler,
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
		middleware.Logger(logger),
		dataloader.Middleware(&dataloader.Repos{GenerationLog: logs}),
	)

	return chain(mux)
}
