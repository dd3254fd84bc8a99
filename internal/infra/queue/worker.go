package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationSender delivers a notification to its final channel (email
// today; SMS or push later).
type NotificationSender interface {
	SendNotificationEmail(to, message, notificationType string) error
}

// UserDirectory resolves a user id to a deliverable address.
type UserDirectory interface {
	EmailForUser(userID string) (string, bool)
}

type Worker struct {
	Channel   *amqp.Channel
	Sender    NotificationSender
	Directory UserDirectory
}

func NewWorker(ch *amqp.Channel, sender NotificationSender, directory UserDirectory) *Worker {
	return &Worker{
		Channel:   ch,
		Sender:    sender,
		Directory: directory,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload NotificationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] invalid JSON: %s", err)
				// Malformed message. Reject without requeue so the queue
				// does not jam.
				d.Nack(false, false)
				continue
			}

			if err := w.deliver(payload); err != nil {
				log.Printf("[WORKER] delivery failed for user %s: %s", payload.UserID, err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] notification worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) deliver(payload NotificationPayload) error {
	if payload.UserID == "" {
		// System alert with no addressee. Log and drop.
		log.Printf("[ALERT] priority=%s message=%s", payload.Priority, payload.Message)
		return nil
	}

	to, ok := w.Directory.EmailForUser(payload.UserID)
	if !ok {
		// Unknown user: nothing to deliver, ack so the message leaves the
		// queue.
		log.Printf("[WORKER] no email for user %s, dropping notification", payload.UserID)
		return nil
	}

	return w.Sender.SendNotificationEmail(to, payload.Message, payload.Type)
}
