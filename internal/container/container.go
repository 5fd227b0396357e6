// Package container wires the service together with samber/do. Each concern
// is provided by its own Package function so the binaries can register only
// what they need.
package container

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortlinks/internal/analytics"
	"github.com/serroba/shortlinks/internal/auth"
	"github.com/serroba/shortlinks/internal/handlers"
	"github.com/serroba/shortlinks/internal/health"
	"github.com/serroba/shortlinks/internal/messaging"
	"github.com/serroba/shortlinks/internal/middleware"
	"github.com/serroba/shortlinks/internal/ratelimit"
	"github.com/serroba/shortlinks/internal/shortlink"
	"github.com/serroba/shortlinks/internal/stats"
	"github.com/serroba/shortlinks/internal/store"
	"github.com/serroba/shortlinks/internal/sweeper"
	"go.uber.org/zap"
)

// Options holds the externally supplied configuration. Nothing below reads
// the environment at call time; values flow into constructors from here.
type Options struct {
	Port            int    `default:"8888"                  help:"Port to listen on"                            short:"p"`
	Domain          string `default:"http://localhost:8888" help:"Base URL short links are assembled from"`
	ExpireMinutes   int    `default:"60"                    help:"Default link lifetime in minutes"`
	SweepSeconds    int    `default:"15"                    help:"Seconds between expiry sweeps"`
	DatabaseURL     string `default:""                      help:"PostgreSQL connection string (empty: in-memory store)"`
	RedisAddr       string `default:"localhost:6379"        help:"Redis server address"                         short:"r"`
	CacheTTLSeconds int    `default:"300"                   help:"Redis resolve cache TTL in seconds (0: no cache)"`
	RateLimitMax    int64  `default:"120"                   help:"Default requests allowed per rate limit window"`
	RateLimitWindow int    `default:"60"                    help:"Default rate limit window in seconds"`
	AuthUsername    string `default:"admin"                 help:"Basic auth username for private endpoints"`
	AuthPassword    string `default:"admin"                 help:"Basic auth password for private endpoints"`
	LogFormat       string `default:"console"               help:"Log format: console or json"`
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}

// PostgresPackage provides the pgx connection pool.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		return pgxpool.New(context.Background(), options.DatabaseURL)
	})
}

// RepositoryPackage provides the link and click repositories. With a database
// configured it wires postgres behind the Redis resolve cache; without one it
// falls back to the in-memory stores.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortlink.LinkRepository, error) {
		options := do.MustInvoke[*Options](i)

		if options.DatabaseURL == "" {
			return store.NewMemoryLinkStore(), nil
		}

		pool := do.MustInvoke[*pgxpool.Pool](i)

		pg := store.NewPostgresLinkStore(pool)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			return nil, err
		}

		if options.CacheTTLSeconds <= 0 {
			return pg, nil
		}

		client := do.MustInvoke[*redis.Client](i)
		ttl := time.Duration(options.CacheTTLSeconds) * time.Second

		return store.NewRedisCacheLinkStore(pg, client, ttl), nil
	})

	do.Provide(injector, func(i *do.Injector) (shortlink.ClickRepository, error) {
		options := do.MustInvoke[*Options](i)

		if options.DatabaseURL == "" {
			return store.NewMemoryClickStore(), nil
		}

		return store.NewPostgresClickStore(do.MustInvoke[*pgxpool.Pool](i)), nil
	})
}

// ServicePackage provides the link service and the stats aggregator.
func ServicePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortlink.Service, error) {
		options := do.MustInvoke[*Options](i)

		generate, err := shortlink.NewTokenGenerator()
		if err != nil {
			return nil, err
		}

		cfg := shortlink.Config{
			BaseURL: options.Domain,
			TTL:     time.Duration(options.ExpireMinutes) * time.Minute,
		}

		return shortlink.NewService(
			do.MustInvoke[shortlink.LinkRepository](i),
			do.MustInvoke[shortlink.ClickRepository](i),
			generate,
			cfg,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (*stats.Aggregator, error) {
		return stats.NewAggregator(
			do.MustInvoke[shortlink.LinkRepository](i),
			do.MustInvoke[shortlink.ClickRepository](i),
		), nil
	})
}

// SweeperPackage provides the expiry sweeper.
func SweeperPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*sweeper.Sweeper, error) {
		options := do.MustInvoke[*Options](i)
		interval := time.Duration(options.SweepSeconds) * time.Second

		return sweeper.New(
			do.MustInvoke[shortlink.LinkRepository](i),
			interval,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
}

// PublisherPackage provides the analytics event publishers over Redis streams.
func PublisherPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.Bus, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: client},
			watermill.NopLogger{},
		)
		if err != nil {
			return nil, err
		}

		return messaging.NewBus(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkCreatedEvent], error) {
		bus := do.MustInvoke[*messaging.Bus](i)

		return messaging.PublishOn[analytics.LinkCreatedEvent](bus, analytics.TopicLinkCreated), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkResolvedEvent], error) {
		bus := do.MustInvoke[*messaging.Bus](i)

		return messaging.PublishOn[analytics.LinkResolvedEvent](bus, analytics.TopicLinkResolved), nil
	})
}

// PipelinePackage provides the analytics consumer pipeline.
func PipelinePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.Pipeline, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        client,
				ConsumerGroup: "shortlinks-analytics",
			},
			watermill.NopLogger{},
		)
		if err != nil {
			return nil, err
		}

		pipeline, err := messaging.NewPipeline(subscriber, logger)
		if err != nil {
			return nil, err
		}

		counters := analytics.NewRedisCounterStore(client)

		messaging.AddHandler(pipeline, "link_created_counters", analytics.TopicLinkCreated,
			analytics.NewLinkCreatedHandler(counters))
		messaging.AddHandler(pipeline, "link_resolved_counters", analytics.TopicLinkResolved,
			analytics.NewLinkResolvedHandler(counters))

		return pipeline, nil
	})
}

// RateLimitPackage provides the default limiter and its backing store.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		return store.NewRateLimitRedisStore(do.MustInvoke[*redis.Client](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (ratelimit.Limiter, error) {
		options := do.MustInvoke[*Options](i)
		window := time.Duration(options.RateLimitWindow) * time.Second

		return ratelimit.NewSlidingWindowLimiter(
			do.MustInvoke[ratelimit.Store](i),
			options.RateLimitMax,
			window,
		), nil
	})
}

// HTTPPackage provides the router and the configured Huma API with all routes
// and middlewares registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)

		api := humachi.New(router, huma.DefaultConfig("Short Links", "1.0.0"))

		creds := auth.Credentials{
			Username: options.AuthUsername,
			Password: options.AuthPassword,
		}

		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.RateLimiter(api,
				do.MustInvoke[ratelimit.Limiter](i),
				do.MustInvoke[ratelimit.Store](i),
				logger,
			),
			middleware.BasicAuth(api, creds),
		)

		service := do.MustInvoke[*shortlink.Service](i)

		linkHandler := handlers.NewLinkHandler(
			service,
			options.Domain,
			do.MustInvoke[messaging.Publish[analytics.LinkCreatedEvent]](i),
			do.MustInvoke[messaging.Publish[analytics.LinkResolvedEvent]](i),
			logger,
		)
		listingHandler := handlers.NewListingHandler(
			service,
			do.MustInvoke[*stats.Aggregator](i),
			logger,
		)

		handlers.RegisterRoutes(api, linkHandler, listingHandler)

		healthHandler := health.NewHandler(
			health.NewRedisChecker(do.MustInvoke[*redis.Client](i)),
			postgresChecker(i, options),
		)
		health.RegisterRoutes(api, healthHandler)

		return api, nil
	})
}

func postgresChecker(i *do.Injector, options *Options) health.Checker {
	if options.DatabaseURL == "" {
		return nil
	}

	return health.NewPostgresChecker(do.MustInvoke[*pgxpool.Pool](i))
}
