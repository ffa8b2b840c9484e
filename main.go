package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vibecart/internal/catalog"
	"vibecart/internal/config"
	"vibecart/internal/handlers"
	"vibecart/internal/middleware"
	"vibecart/internal/models"
	"vibecart/internal/repositories"
	"vibecart/internal/services"
	"vibecart/pkg/logging"
	"vibecart/pkg/metrics"
	"vibecart/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/idempotency"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	amqp "github.com/streadway/amqp"
)

// App is the wired HTTP application plus the resources it owns.
type App struct {
	Fiber   *fiber.App
	closers []func() error
}

// Close releases every resource opened by NewApp, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type stores struct {
	carts  repositories.CartRepository
	orders repositories.OrderRepository
}

func openStores(cfg config.StoreConfig) (stores, func() error, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return stores{
			carts:  repositories.NewMemoryCartRepository(),
			orders: repositories.NewMemoryOrderRepository(),
		}, nil, nil

	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		db, err := repositories.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return stores{}, nil, err
		}
		if err := repositories.EnsureMongoIndexes(ctx, db); err != nil {
			_ = db.Client().Disconnect(context.Background())
			return stores{}, nil, err
		}
		closer := func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return db.Client().Disconnect(ctx)
		}
		return stores{
			carts:  repositories.NewMongoCartRepository(db),
			orders: repositories.NewMongoOrderRepository(db),
		}, closer, nil

	default:
		db, err := repositories.OpenGORM(cfg.Driver, cfg.DSN)
		if err != nil {
			return stores{}, nil, err
		}
		closer := func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		return stores{
			carts:  repositories.NewGORMCartRepository(db),
			orders: repositories.NewGORMOrderRepository(db),
		}, closer, nil
	}
}

// NewApp wires stores, services, handlers and middleware from cfg.
func NewApp(cfg *config.Config) (*App, error) {
	st, closeStores, err := openStores(cfg.Store)
	if err != nil {
		return nil, err
	}
	a := &App{}
	if closeStores != nil {
		a.closers = append(a.closers, closeStores)
	}
	if err := a.wire(cfg, st); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// wire builds the services and the fiber app on top of already opened stores.
func (a *App) wire(cfg *config.Config, st stores) error {
	var publisher services.EventPublisher
	if cfg.RabbitMQ.Enabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
			Queue:    cfg.RabbitMQ.Queue,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		consumerCtx, cancelConsumer := context.WithCancel(context.Background())
		a.closers = append(a.closers, mqClient.Close, func() error {
			cancelConsumer()
			return nil
		})
		if err := mqClient.Consume(consumerCtx, handleOrderEvent); err != nil {
			log.Error().Err(err).Msg("failed to start order event consumer")
		}
		publisher = mqClient
	}

	srvMetrics := metrics.NewServerMetrics("api")

	cartService := services.NewCartService(st.carts, services.WithOwnerSerialization(cfg.Cart.SerializeWrites))
	checkoutService := services.NewCheckoutService(st.orders, cartService, publisher)
	orderService := services.NewOrderService(st.orders)
	productService := services.NewProductService(catalog.NewClient(catalog.Config{
		BaseURL:   cfg.Catalog.BaseURL,
		Timeout:   cfg.Catalog.Timeout,
		CacheTTL:  cfg.Catalog.CacheTTL,
		CacheSize: cfg.Catalog.CacheSize,
	}))

	app := fiber.New(fiber.Config{
		AppName:               "vibecart",
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.OwnerHeader + ", X-Idempotency-Key",
	}))
	app.Use(middleware.RequestMetrics(srvMetrics))
	app.Use(idempotency.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to Vibe Commerce API"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  cfg.Store.Driver,
			"events": publisher != nil,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(srvMetrics.Handler()))

	api := app.Group("/api", middleware.OwnerIdentity())
	handlers.NewProductHandler(productService).RegisterRoutes(api)
	handlers.NewCartHandler(cartService).RegisterRoutes(api)
	handlers.NewCheckoutHandler(checkoutService, orderService, srvMetrics).RegisterRoutes(api)

	a.Fiber = app
	return nil
}

// handleOrderEvent logs order.placed events delivered on the events queue.
func handleOrderEvent(msg amqp.Delivery) error {
	var event models.OrderPlacedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("invalid %s payload: %w", msg.Type, err)
	}
	log.Info().
		Str("routing_key", msg.RoutingKey).
		Str("order_number", event.OrderNumber).
		Str("owner_id", event.OwnerID).
		Str("grand_total", event.GrandTotal.String()).
		Int("item_count", event.ItemCount).
		Msg("order event received")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Pretty)
	// money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create app")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("store", cfg.Store.Driver).Msg("starting server")
		if err := app.Fiber.Listen(cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")

	if err := app.Fiber.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("error during fiber shutdown")
	}
	if err := app.Close(); err != nil {
		log.Error().Err(err).Msg("error releasing resources")
	}
	log.Info().Msg("server gracefully stopped")
}
