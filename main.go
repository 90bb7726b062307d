package main

import (
	"context"
	"time"

	"kindle/cache"
	"kindle/checkout"
	"kindle/config"
	"kindle/events"
	"kindle/log"
	"kindle/repository"
	"kindle/seed"
	"kindle/server"
)

func main() {
	ctx := context.Background()
	logger := log.GetLogger(ctx)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}
	log.SetLevel(cfg.LogLevel)

	db := repository.InitDatabase(cfg.Database)
	if err := seed.Books(ctx, db); err != nil {
		logger.WithError(err).Fatal("seed books")
	}

	var catalogCache *cache.CatalogCache
	if cfg.Redis.Addr != "" {
		catalogCache, err = cache.New(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSecs)*time.Second,
		)
		if err != nil {
			logger.WithError(err).Fatal("connect redis")
		}
		defer catalogCache.Close()
	}

	var publisher events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			logger.WithError(err).Fatal("connect kafka")
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	coordinator := checkout.NewCoordinator(
		repository.NewCartRepo(db),
		repository.NewOrderRepo(db),
		publisher,
	)

	srv := server.New(cfg, db, coordinator, catalogCache)
	logger.Infof("listening on %s", cfg.ListenAddr)
	if err := srv.Router().Run(cfg.ListenAddr); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
