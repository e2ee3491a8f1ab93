package main

import (
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/berniyo/vnpay-lambda/internal/config"
	"github.com/berniyo/vnpay-lambda/internal/handler"
	"github.com/berniyo/vnpay-lambda/internal/store"
	"github.com/berniyo/vnpay-lambda/internal/vnpay"
)

func main() {
	// Local .env for development; real env vars win in Lambda.
	_ = godotenv.Load()

	logger := log.New(os.Stdout, "vnpay-lambda ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	gateway, err := vnpay.NewGateway(vnpay.Config{
		TmnCode:    cfg.TmnCode,
		HashSecret: cfg.HashSecret,
		PayURL:     cfg.PayURL,
		ReturnURL:  cfg.ReturnURL,
	})
	if err != nil {
		log.Fatalf("failed to configure payment gateway: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	orders := store.NewOrders(rdb)

	settlerOpts := []handler.SettlerOption{handler.WithSettlerLogger(logger)}
	if cfg.NotifyURL != "" {
		notifier, err := handler.NewRestyNotifier(cfg.NotifyURL, cfg.NotifySecret, nil)
		if err != nil {
			log.Fatalf("failed to configure payment notifier: %v", err)
		}
		settlerOpts = append(settlerOpts, handler.WithSettlerNotifier(notifier))
	}
	settler := handler.NewSettler(orders, cfg.FrontendURL, settlerOpts...)

	router := handler.NewRouter(
		handler.NewPaymentHandler(gateway, settler, handler.WithPaymentLogger(logger)),
		handler.NewOrderHandler(orders, logger),
		handler.NewCatalogHandler(store.NewCatalog(rdb), logger),
		handler.NewContactHandler(store.NewMessages(rdb), logger),
		handler.NewNewsletterHandler(store.NewSubscribers(rdb), logger),
	)

	lambda.Start(router.Handle)
}
