// Package main is the entry point for the bookstore back end.
// It wires together all modules and starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/internal/platform/cache"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/internal/platform/eventbus"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/internal/platform/httpserver"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/internal/platform/rabbitmq"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/internal/platform/spanner"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart"
	cartpersistence "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/infrastructure/persistence"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog"
	catalogdomain "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	catalogpersistence "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/infrastructure/persistence"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/notifications"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders"
	orderspersistence "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/infrastructure/persistence"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events/contracts"
)

func main() {
	// Initialize logger
	slogOptions := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	slogJsonHandler := slog.NewJSONHandler(os.Stdout, slogOptions)
	logger := slog.New(slogJsonHandler)
	slog.SetDefault(logger)

	logger.Info("starting bookstore application")

	// Initialize Spanner client
	ctx := context.Background()
	spannerCfg := spanner.ConfigFromEnv()

	spannerClient, err := spanner.NewClient(ctx, spannerCfg)
	if err != nil {
		logger.Error("failed to create spanner client", slog.Any("error", err))
		os.Exit(1)
	}
	defer spannerClient.Close()

	logger.Info("connected to spanner", slog.String("dsn", spannerCfg.DSN()))

	txScope := spanner.NewReadWriteTransactionScope(spannerClient)
	readScope := spanner.NewReadOnlyTransactionScope(spannerClient)

	// Initialize event bus (for inter-module communication)
	eventBus := eventbus.New(logger)

	// Initialize repositories
	var bookRepo catalogdomain.BookRepository = catalogpersistence.NewSpannerBookRepository(spannerClient)
	categoryRepo := catalogpersistence.NewSpannerCategoryRepository(spannerClient)
	cartRepo := cartpersistence.NewSpannerCartRepository(spannerClient)
	ordersRepo := orderspersistence.NewSpannerRepository(spannerClient)

	// Optional Redis cache in front of book lookups
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisCache, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			logger.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer redisCache.Close()

		bookRepo = catalogpersistence.NewCachedBookRepository(bookRepo, redisCache, logger)
		logger.Info("book cache enabled", slog.String("addr", redisAddr))
	}

	// Initialize modules
	catalogModule := catalog.New(catalog.Config{
		BookRepository:     bookRepo,
		CategoryRepository: categoryRepo,
	})

	cartModule := cart.New(cart.Config{
		Repository:  cartRepo,
		BookCatalog: bookCatalogAdapter{catalog: catalogModule},
		TxScope:     txScope,
	})

	ordersModule := orders.New(orders.Config{
		Repository:     ordersRepo,
		CartSource:     cartSourceAdapter{cart: cartModule},
		BookPricer:     bookPricerAdapter{catalog: catalogModule},
		TxScope:        txScope,
		ReadScope:      readScope,
		EventPublisher: eventBus,
	})

	_ = notifications.New(notifications.Config{
		EventSubscriber: eventBus,
		Logger:          logger,
	})

	// Optional RabbitMQ relay for cross-process event delivery.
	// It subscribes on the post-commit bus, never inside a transaction.
	if amqpURL := os.Getenv("RABBITMQ_URL"); amqpURL != "" {
		relay, err := rabbitmq.NewRelay(rabbitmq.Config{URL: amqpURL}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", slog.Any("error", err))
			os.Exit(1)
		}
		defer relay.Close()

		for _, eventType := range []events.EventType{
			contracts.OrderPlacedEventType,
			contracts.OrderStatusChangedEventType,
		} {
			if err := eventBus.Subscribe(eventType, relay); err != nil {
				logger.Error("failed to subscribe relay", slog.String("event_type", eventType.String()), slog.Any("error", err))
			}
		}
		logger.Info("rabbitmq relay enabled")
	}

	// Build HTTP router
	router := buildRouter(catalogModule, cartModule, ordersModule)

	// Apply middleware
	handler := httpserver.Middleware(router, httpserver.Recovery(logger), httpserver.Logging(logger), httpserver.CORS([]string{"*"}))

	// Create and start server
	server := httpserver.New(httpserver.ConfigFromEnv(), handler, logger)

	// Graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	logger.Info("server stopped")
}

// buildRouter creates the main HTTP router with all module handlers.
func buildRouter(catalogModule catalog.Module, cartModule cart.Module, ordersModule orders.Module) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Each module registers its own routes (same pattern as event subscriptions)
	catalogModule.RegisterRoutes(mux)
	cartModule.RegisterRoutes(mux)
	ordersModule.RegisterRoutes(mux)

	return mux
}
