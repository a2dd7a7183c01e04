package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"yibyerm/internal/models"
	"yibyerm/internal/server"
	"yibyerm/internal/storage"
	"yibyerm/internal/worker"
	"yibyerm/pkg/logger"
)

func main() {
	cfg, err := models.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()

	db, err := storage.NewStorage(cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("failed to init storage", zap.Error(err))
	}
	defer db.Close()

	// Kafka producer
	producer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.KafkaTopic,
	})

	processor := worker.NewProcessor(db, cfg, zl)

	// Start Kafka consumer in background
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		consumer := kafka.NewReader(kafka.ReaderConfig{
			Brokers: []string{cfg.KafkaBroker},
			Topic:   cfg.KafkaTopic,
			GroupID: "asset-image-processor",
		})
		defer consumer.Close()

		for {
			msg, err := consumer.ReadMessage(ctx)
			if err != nil {
				if err == context.Canceled {
					return
				}
				zl.Error("error reading message", zap.Error(err))
				continue
			}
			if err := processor.ProcessImage(ctx, string(msg.Value)); err != nil {
				zl.Error("error processing image", zap.Error(err))
			}
		}
	}()

	srv, err := server.NewServer(cfg, db, producer, zl)
	if err != nil {
		zl.Fatal("failed to init server", zap.Error(err))
	}

	go func() {
		if err := srv.Start(); err != nil {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	cancel()
	srv.Stop()
	producer.Close()
}
