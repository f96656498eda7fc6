package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitmqPublisher publishes normalized payment events to one durable queue.
type RabbitmqPublisher struct {
	//conn is a tcp connection to rabbitmq server, nil when a channel was injected
	conn  *amqp.Connection
	chn   Channel
	queue string
}

// NewRabbitmqPublisher dials the server, opens a channel and declares queue.
func NewRabbitmqPublisher(url, queue string) (*RabbitmqPublisher, error) {
	//this opens the tcp connection to rabbitmq server
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}
	//Open a channel. This open a logical session inside the connection.
	chn, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	p, err := NewRabbitmqPublisherWithChannel(chn, queue)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewRabbitmqPublisherWithChannel declares queue on an existing channel.
func NewRabbitmqPublisherWithChannel(chn Channel, queue string) (*RabbitmqPublisher, error) {
	_, err := chn.QueueDeclare(
		queue, //name of queue
		true,  //durable
		false, //delete when unused
		false, //exclusive
		false, //no-wait
		nil,   //arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	return &RabbitmqPublisher{chn: chn, queue: queue}, nil
}

// Publish sends value as a persistent JSON message. key becomes the message id.
func (r *RabbitmqPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal rabbitmq message: %w", err)
	}
	return r.chn.PublishWithContext(
		ctx,
		"",      //exchange
		r.queue, //routing key (queue name)
		false,   //mandatory
		false,   //immediate
		amqp.Publishing{
			ContentType:  contentTypeJSON,
			DeliveryMode: amqp.Persistent, // make message persistent
			MessageId:    key,
			Body:         body, //actual data payload
		},
	)
}

// Close cleans up
func (r *RabbitmqPublisher) Close() error {
	if err := r.chn.Close(); err != nil {
		return err
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
