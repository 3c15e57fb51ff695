package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	Redis          *redis.Client
	Logger         *zap.Logger
	RabbitMQ       *amqp091.Connection
	Minio          *minio.Client
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// SnapshotWorkerStop if set is called during Shutdown. It cancels a running snapshot and waits for it to return.
	SnapshotWorkerStop func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.SnapshotWorkerStop != nil {
		b.SnapshotWorkerStop()
		log.Println("Successfully stopped snapshot worker")
	}

	if b.Redis != nil {
		if err := b.Redis.Close(); err != nil {
			return err
		}
		log.Println("Successfully closing Redis")
	}

	if b.RabbitMQ != nil && !b.RabbitMQ.IsClosed() {
		if err := b.RabbitMQ.Close(); err != nil {
			return err
		}
		log.Println("Successfully closing RabbitMQ")
	}

	if b.Logger != nil {
		// Sync on stdout/stderr returns EINVAL on some platforms.
		_ = b.Logger.Sync()
		log.Println("Successfully closing Logger")
	}

	return ctx.Err()
}
