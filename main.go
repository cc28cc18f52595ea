package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tour-booking/database"
	"tour-booking/database/seeders"
	"tour-booking/logger"
	"tour-booking/middleware"
	quoteModel "tour-booking/models/quote"
	"tour-booking/routes"
	"tour-booking/services/account"
	"tour-booking/services/negotiation"
	"tour-booking/services/notifier"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// paymentLinkBuilder points customers at the hosted payment page
func paymentLinkBuilder(base string) negotiation.PaymentLinkBuilder {
	if base == "" {
		return nil
	}
	return func(q *quoteModel.QuoteRequest) (string, error) {
		u, err := url.Parse(base)
		if err != nil {
			return "", err
		}
		query := u.Query()
		query.Set("reference", q.Reference)
		if q.QuotedPrice != nil {
			query.Set("amount", fmt.Sprintf("%d", *q.QuotedPrice))
		}
		u.RawQuery = query.Encode()
		return u.String(), nil
	}
}

// buildSink picks the asynq queue when Redis is configured
func buildSink() (notifier.Sink, func()) {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		logger.Warning("REDIS_ADDR not set, quote events will only be logged")
		return notifier.LogSink{}, func() {}
	}
	sink := notifier.NewAsynqSink(redisAddr)
	logger.Success("Quote events will be queued on " + redisAddr)
	return sink, func() {
		if err := sink.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}
}

func main() {
	env := godotenv.Load()
	if env != nil {
		logger.Error("Error loading .env file", env)
	}

	if name := os.Getenv("LOG_LEVEL"); name != "" {
		if level, ok := logger.ParseLevel(name); ok {
			logger.SetLevel(level)
			logger.Infof("Log level set to %s", name)
		} else {
			logger.Warningf("Unknown LOG_LEVEL %q, keeping info", name)
		}
	}

	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       1 * 1024 * 1024,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		store    negotiation.Store
		resolver middleware.ActorResolver
		db       *gorm.DB
		err      error
	)
	if strings.EqualFold(os.Getenv("STORE_DRIVER"), "memory") {
		memory := negotiation.NewMemoryStore()
		seeders.SeedMemory(memory)
		store = memory
		resolver = account.NewStaticResolver(seeders.DemoUsers(), seeders.DemoOperatorProfiles())
		logger.Warning("Running with the in-memory store, data is lost on restart")
	} else {
		db, err = database.InitDB()
		if err != nil {
			logger.Error("Failed to connect to the database", err)
			return
		}
		if os.Getenv("SEED_DEMO_DATA") == "true" {
			if err := seeders.SeedDemoData(db); err != nil {
				logger.Error("Failed to seed demo data", err)
			}
		}
		store = negotiation.NewGormStore(db)
		resolver = account.NewResolver(db)
	}

	sink, closeSink := buildSink()
	dispatcher := notifier.NewDispatcher(sink, 0)
	// queued events are still delivered while shutting down
	dispatcher.Start(context.Background())

	service := negotiation.NewService(store,
		negotiation.WithNotifier(dispatcher),
		negotiation.WithPaymentLinkBuilder(paymentLinkBuilder(os.Getenv("PAYMENT_LINK_BASE_URL"))),
	)

	interval, err := time.ParseDuration(os.Getenv("QUOTE_EXPIRY_SWEEP_INTERVAL"))
	if err != nil {
		interval = 0
	}
	go negotiation.NewSweeper(service, interval).Run(ctx)

	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()

	app.Use(recover.New())
	frontendURL := os.Getenv("FRONTEND_URL")
	app.Use(cors.New(cors.Config{
		AllowOrigins: frontendURL,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		// credentials cannot be combined with the wildcard origin
		AllowCredentials: frontendURL != "",
	}))

	routes.SetupRoutes(app, routes.DepsFromEnv(service, resolver, asyncLogger))

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Failed to shut down cleanly", err)
		}
	}()

	appHost := os.Getenv("APP_HOST")
	appPort := os.Getenv("APP_PORT")
	logger.Success("Server is running on ip: " + appHost + " port: " + appPort)
	if err := app.Listen(appHost + ":" + appPort); err != nil {
		logger.Error("Server stopped", err)
	}

	dispatcher.Close()
	closeSink()
	asyncLogger.Close()
}
