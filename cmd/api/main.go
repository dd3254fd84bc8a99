package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lfcamargo/crm-leads/internal/infra/database"
	"github.com/lfcamargo/crm-leads/internal/infra/http/handlers"
	"github.com/lfcamargo/crm-leads/internal/infra/http/middleware"
	"github.com/lfcamargo/crm-leads/internal/infra/mail"
	"github.com/lfcamargo/crm-leads/internal/infra/notification"
	"github.com/lfcamargo/crm-leads/internal/infra/queue"
	"github.com/lfcamargo/crm-leads/internal/infra/worker"
	"github.com/lfcamargo/crm-leads/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	leadRepo := database.NewLeadRepository(db)
	contactRepo := database.NewContactRepository(db)

	// Notification pipeline: producer -> queue -> worker -> SMTP
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	notifier := notification.NewQueueNotifier(producer)

	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort,
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)
	directory := notification.NewStaticUserDirectory(os.Getenv("USER_EMAILS"))

	notificationWorker := queue.NewWorker(rabbitMQ.Ch, mailSender, directory)
	go notificationWorker.Start(queue.QueueName)

	// Services
	leadService := usecase.NewLeadService(leadRepo, contactRepo, notifier)
	contactService := usecase.NewContactService(contactRepo)

	// Follow-up alerts for leads going cold
	staleDays, _ := strconv.Atoi(os.Getenv("STALE_LEAD_DAYS"))
	staleWorker := worker.NewStaleLeadWorker(db, notifier, time.Duration(staleDays)*24*time.Hour)
	go staleWorker.Start(context.Background())

	// Handlers
	leadHandler := handlers.NewLeadHandler(leadService)
	contactHandler := handlers.NewContactHandler(contactService)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// Router
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Route("/api/leads", leadHandler.Routes)
	r.Route("/api/contacts", contactHandler.Routes)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("CRM API listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
