package ports

import "context"

type RMQConsumer interface {
	Init() error
	DeliveryWorker(ctx context.Context)
}
