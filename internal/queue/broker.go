package queue

import (
	"context"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueEstimateRecords    = "estimate-records"
	QueueCatalogReload      = "catalog-reload"
	QueueEstimateRecordsDLQ = "estimate-records-dlq"
	QueueCatalogReloadDLQ   = "catalog-reload-dlq"
)

// Queues lists every queue the service declares.
var Queues = []string{
	QueueEstimateRecords,
	QueueCatalogReload,
	QueueEstimateRecordsDLQ,
	QueueCatalogReloadDLQ,
}

func DeadLetterQueue(queueName string) string {
	return queueName + "-dlq"
}
