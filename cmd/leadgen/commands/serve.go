package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/stroomai/leadgen/modules/brief"
	"github.com/stroomai/leadgen/modules/brief/store/pgstore"
	"github.com/stroomai/leadgen/modules/brief/store/sqlitestore"
	"github.com/stroomai/leadgen/pkg/clientip"
	"github.com/stroomai/leadgen/pkg/config"
	"github.com/stroomai/leadgen/pkg/email"
	"github.com/stroomai/leadgen/pkg/environment"
	"github.com/stroomai/leadgen/pkg/httpserver"
	"github.com/stroomai/leadgen/pkg/logger"
	"github.com/stroomai/leadgen/pkg/pg"
	"github.com/stroomai/leadgen/pkg/ratelimiter"
	"github.com/stroomai/leadgen/pkg/redis"
	"github.com/stroomai/leadgen/pkg/requestid"
)

const readinessTimeout = 2 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the intake HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

type serveConfig struct {
	http   httpserver.Config
	client clientip.Config
	email  email.Config
	brief  brief.Config
	redis  redis.Config
	pg     pg.Config
	sqlite sqlitestore.Config
}

func loadServeConfig() (serveConfig, error) {
	var c serveConfig
	err := errors.Join(
		config.Load(&c.http),
		config.Load(&c.client),
		config.Load(&c.email),
		config.Load(&c.brief),
		config.Load(&c.redis),
		config.Load(&c.pg),
		config.Load(&c.sqlite),
	)
	return c, err
}

func serve(ctx context.Context) error {
	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}

	var (
		checks  []httpserver.Check
		closers []func()
	)
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	sender, err := email.NewSender(cfg.email, appEnv)
	if err != nil {
		return err
	}
	if !cfg.email.UsePostmark() {
		appLog.WarnContext(ctx, "development mode, writing emails to disk", slog.String("dir", cfg.email.DevDir))
	}

	dispatcher, err := brief.NewDispatcher(sender, brief.DispatcherConfig{
		OperatorEmail:  cfg.brief.OperatorEmail,
		From:           cfg.email.SenderEmail,
		ResponseWindow: cfg.brief.ResponseWindow,
		SiteName:       cfg.brief.SiteName,
	}, appLog)
	if err != nil {
		return err
	}

	var limiterStore ratelimiter.Store
	if cfg.redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.redis)
		if err != nil {
			return err
		}
		closers = append(closers, func() { _ = client.Close() })
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
		limiterStore = ratelimiter.NewRedisStore(client, serviceName+":brief")
	} else {
		mem := ratelimiter.NewMemoryStore()
		closers = append(closers, mem.Close)
		limiterStore = mem
	}
	limiter, err := ratelimiter.NewBucket(limiterStore, ratelimiter.Config{
		Capacity:       cfg.brief.SpamRateBurst,
		RefillRate:     1,
		RefillInterval: cfg.brief.SpamRateRefill,
	})
	if err != nil {
		return err
	}

	repo, repoChecks, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	closers = append(closers, closeRepo)
	checks = append(checks, repoChecks...)

	policy := brief.DefaultContentPolicy()
	if cfg.brief.SpamPolicyFile != "" {
		if policy, err = brief.LoadContentPolicyFile(cfg.brief.SpamPolicyFile); err != nil {
			return err
		}
	}

	var hasher *clientip.Hasher
	if cfg.brief.IPHashKey != "" {
		if hasher, err = clientip.NewHasher([]byte(cfg.brief.IPHashKey)); err != nil {
			return err
		}
	} else {
		appLog.WarnContext(ctx, "BRIEF_IP_HASH_KEY not set, ip hashes will not survive restarts")
	}

	svc, err := brief.NewService(dispatcher,
		brief.WithSpamClassifier(brief.NewSpamClassifier(
			brief.WithRateLimiter(limiter),
			brief.WithDuplicateCheck(repo, cfg.brief.SpamDuplicateWindow),
			brief.WithContentPolicy(policy),
		)),
		brief.WithRepository(repo),
		brief.WithIPHasher(hasher),
		brief.WithLogger(appLog),
		brief.WithFallbackContact(cfg.brief.FallbackContact),
	)
	if err != nil {
		return err
	}

	resolver, err := clientip.NewResolver(cfg.client)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		resolver.Middleware,
		environment.Middleware(appEnv),
	)
	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(appLog, readinessTimeout, checks...))
	r.Mount("/api", svc.Handle())

	appLog.InfoContext(ctx, "starting intake server",
		slog.String("addr", cfg.http.Addr),
		slog.Bool("postmark", cfg.email.UsePostmark()),
		slog.Bool("redis", cfg.redis.Enabled()),
	)
	return httpserver.New(cfg.http, httpserver.WithLogger(appLog)).Run(ctx, r)
}

// openRepository picks Postgres, then SQLite, then memory.
func openRepository(ctx context.Context, cfg serveConfig) (brief.Repository, []httpserver.Check, func(), error) {
	switch {
	case cfg.pg.Enabled():
		pool, err := pg.Connect(ctx, cfg.pg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := pgstore.Migrate(ctx, pool, cfg.pg, appLog); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		checks := []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}}
		return pgstore.New(pool), checks, pool.Close, nil

	case cfg.sqlite.Enabled():
		store, err := sqlitestore.Open(ctx, cfg.sqlite.DSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open intake log: %w", err)
		}
		checks := []httpserver.Check{{Name: "sqlite", Fn: store.Healthcheck}}
		return store, checks, func() { _ = store.Close() }, nil

	default:
		appLog.WarnContext(ctx, "no database configured, intake log is kept in memory",
			logger.Component("brief"))
		return brief.NewMemoryRepository(), nil, func() {}, nil
	}
}
