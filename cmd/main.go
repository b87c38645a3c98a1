package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	catalogapp "github.com/kartanikah/wedding-commerce/application/catalog"
	orderapp "github.com/kartanikah/wedding-commerce/application/order"
	paymentapp "github.com/kartanikah/wedding-commerce/application/payment"
	userapp "github.com/kartanikah/wedding-commerce/application/user"
	"github.com/kartanikah/wedding-commerce/cmd/config"
	redisclient "github.com/kartanikah/wedding-commerce/cmd/redis"
	_ "github.com/kartanikah/wedding-commerce/docs"
	orderRepo "github.com/kartanikah/wedding-commerce/repository/order"
	productRepo "github.com/kartanikah/wedding-commerce/repository/product"
	redisRepo "github.com/kartanikah/wedding-commerce/repository/redis"
	tagRepo "github.com/kartanikah/wedding-commerce/repository/tag"
	txRepo "github.com/kartanikah/wedding-commerce/repository/tx"
	gateway "github.com/kartanikah/wedding-commerce/thirdparty/payment"
	"github.com/kartanikah/wedding-commerce/thirdparty/rabbitmq"
	"github.com/kartanikah/wedding-commerce/thirdparty/storage"
	"github.com/kartanikah/wedding-commerce/transport"
	userRepo "github.com/kartanikah/wedding-commerce/repository/user"
	"github.com/kartanikah/wedding-commerce/utils/logger"
)

// @title WEDDING-COMMERCE API
// @version 1.0
// @description Wedding invitation commerce API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Redis is a read cache; the repository degrades to a no-op when
	// the client is absent
	if err := redisclient.New(cfg); err != nil {
		logger.Warn("err connect redis, cache disabled", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Object storage
	objectStorage, err := storage.New(cfg)
	if err != nil {
		logger.Fatal("err init object storage", zap.Error(err))
	}

	// Payment gateway
	paymentGateway := gateway.New(cfg)

	// RabbitMQ publisher; apps tolerate a nil publisher
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("err connect rabbitmq, events disabled", zap.Error(err))
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	TagRepo := tagRepo.NewTagRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	OrderApp := orderapp.NewOrderApp(cfg, OrderRepo, ProductRepo, UserRepo, objectStorage)
	PaymentApp := paymentapp.NewPaymentApp(cfg, OrderRepo, ProductRepo, UserRepo, paymentGateway, publisher)
	UserApp := userapp.NewUserApp(UserRepo)
	CatalogApp := catalogapp.NewCatalogApp(cfg, TxRepo, ProductRepo, TagRepo, RedisRepo, objectStorage)

	httpTransport := transport.NewTransport(cfg, OrderApp, PaymentApp, UserApp, CatalogApp)

	// Expiration consumer, fed by the delayed exchange
	if publisher != nil {
		consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.APIURL, cfg.Auth.InternalKey)
		if err != nil {
			logger.Warn("err connect rabbitmq consumer", zap.Error(err))
		} else {
			defer consumer.Close()
			if err := consumer.Start(context.Background()); err != nil {
				logger.Warn("err start expiration consumer", zap.Error(err))
			}
		}
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
