package main

import (
	"encoding/json"
	"log"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"

	"github.com/segmently/segmently-backend/internal/config"
	"github.com/segmently/segmently-backend/internal/model"
	"github.com/segmently/segmently-backend/internal/queue"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required for the worker")
	}

	// Connect to RabbitMQ
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("Failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue.DeliveryTopic, // name
		true,                // durable
		false,               // delete when unused
		false,               // exclusive
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		log.Fatal("Failed to declare queue:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("Failed to register consumer:", err)
	}

	sim := queue.HashSimulator{}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var job model.DeliveryJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				log.Println("Invalid job:", err)
				d.Ack(false)
				continue
			}

			// A FAILED status is a simulated outcome, not a handler
			// error; the job is done either way.
			result := sim.Deliver(job.CampaignID, job.Recipient)
			log.Printf("📨 Delivery %s for %s (campaign %s)\n", result.Status, result.Recipient.Email, result.CampaignID)

			d.Ack(false)
		}
	}()

	log.Println("Worker running, waiting for delivery jobs...")
	<-forever
}
