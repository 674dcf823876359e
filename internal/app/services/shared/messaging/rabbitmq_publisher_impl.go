package messaging

import (
	"context"
	"sync"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
)

// rabbitMQPublisher shares one channel between goroutines. amqp091 channels
// are not safe for concurrent publishing, hence the mutex.
type rabbitMQPublisher struct {
	mu      sync.Mutex
	Channel *amqp091.Channel
}

func NewRabbitMQPublisher(rabbitMQConnection *amqp091.Connection) (contracts.MessagePublisher, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	return &rabbitMQPublisher{
		Channel: channel,
	}, nil
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, queueName string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"requeue_strategy": "DROP",
	}
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		headers[constvars.LoggingRequestIDKey] = requestID
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     0,
		Headers:      headers,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.Channel.PublishWithContext(ctx, "", queueName, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublish(err, queueName)
	}
	return nil
}
