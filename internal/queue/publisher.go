package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/enactusftu/gatekeeper/internal/platform"
)

// ActionPublisher publishes gateway actions to the actions queue.  It
// implements platform.ActionSink.  The function attempts to be robust
// and to never panic; any error is logged and returned so the caller can
// choose to ignore it.  Messages are marked as persistent so pending role
// grants and removals survive a broker restart.
type ActionPublisher struct {
	QueueName string
}

// NewActionPublisher returns a publisher bound to the given queue name.
func NewActionPublisher(queueName string) *ActionPublisher {
	return &ActionPublisher{QueueName: queueName}
}

// Publish sends one action.  A fresh connection per publish keeps the
// failure domain small at this traffic level (a handful of actions per
// joining member).
func (p *ActionPublisher) Publish(ctx context.Context, a platform.Action) error {
	conn, err := amqp.Dial(brokerURL())
	if err != nil {
		log.Printf("actions: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("actions: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent).  Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(
		p.QueueName, // name
		true,        // durable
		false,       // autoDelete
		false,       // exclusive
		false,       // noWait
		nil,         // args
	); err != nil {
		log.Printf("actions: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(a)
	if err != nil {
		log.Printf("actions: marshal action failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",          // default exchange
		p.QueueName, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		pub,
	); err != nil {
		log.Printf("actions: publish failed: %v", err)
		return err
	}

	return nil
}
