// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/segmently/segmently-backend/internal/config"
	"github.com/segmently/segmently-backend/internal/controller"
	"github.com/segmently/segmently-backend/internal/db"
	"github.com/segmently/segmently-backend/internal/queue"
	"github.com/segmently/segmently-backend/internal/repository"
	"github.com/segmently/segmently-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Init DB
	db.Init(cfg.DSN())
	if cfg.MigrationsDir != "" {
		if err := db.Migrate(cfg.MigrationsDir, cfg.DSN()); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	customerRepo := &repository.CustomerRepository{DB: db.DB}
	logRepo := &repository.CommunicationLogRepository{DB: db.DB}

	// With AMQP configured, delivery jobs go to RabbitMQ and cmd/worker
	// simulates them. Without it, an in-memory subscriber does the same
	// in-process.
	var publisher queue.Publisher
	if cfg.AMQPURL != "" {
		amqpQueue, err := queue.NewAMQPQueue(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("failed to connect to queue: %v", err)
		}
		defer amqpQueue.Close()
		publisher = amqpQueue
		log.Println("📮 Delivery jobs go to RabbitMQ; run cmd/worker to consume them")
	} else {
		memQueue := queue.NewInMemoryQueue()
		queue.StartDeliverySubscriber(memQueue, queue.HashSimulator{}, nil)
		publisher = memQueue
	}

	audienceService := &service.AudienceService{CustomerRepo: customerRepo}
	campaignService := &service.CampaignService{
		LogRepo:  logRepo,
		Audience: audienceService,
		Queue:    publisher,
	}

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
		AudienceService: audienceService,
	}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	// Campaign routes
	r.Post("/campaigns", campaignController.CreateAudience)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Post("/campaigns/audience-size", campaignController.CheckAudienceSize)

	log.Println("🚀 Server running on", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
