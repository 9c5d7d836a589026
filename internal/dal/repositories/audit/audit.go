package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/corray333/pos-core/internal/dal/rabbitmq"
	"github.com/corray333/pos-core/internal/service/models/history"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"
)

// AuditRabbitMQRepository publishes completed settlements so downstream
// reporting consumers can pick them up.
type AuditRabbitMQRepository struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

func NewAuditRabbitMQRepository(client *rabbitmq.Client) (*AuditRabbitMQRepository, error) {
	queueName := viper.GetString("rabbitmq.settlement_queue")
	if queueName == "" {
		queueName = "pos.settlement.completed"
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		return nil, err
	}

	return &AuditRabbitMQRepository{
		client: client,
		queue:  queue,
	}, nil
}

// PublishSettlements publishes one event per settlement record with bounded
// concurrency.
func (r *AuditRabbitMQRepository) PublishSettlements(ctx context.Context, records []history.Record) error {
	publishCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	g, _ := errgroup.WithContext(publishCtx)
	g.SetLimit(3)

	for _, record := range records {
		record := record
		g.Go(func() error {
			payload, err := json.Marshal(record)
			if err != nil {
				return err
			}

			return r.client.Channel().Publish(
				"",
				r.queue.Name,
				false,
				false,
				amqp.Publishing{
					ContentType: "application/json",
					Body:        payload,
				},
			)
		})
	}

	return g.Wait()
}
