package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/directorcrm/instagram-crm/internal/infra/database"
	"github.com/directorcrm/instagram-crm/internal/infra/http/handlers"
	"github.com/directorcrm/instagram-crm/internal/infra/http/middleware"
	"github.com/directorcrm/instagram-crm/internal/infra/integration/instagram"
	"github.com/directorcrm/instagram-crm/internal/infra/mail"
	"github.com/directorcrm/instagram-crm/internal/infra/queue"
	"github.com/directorcrm/instagram-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ DB connection error: %v", err)
	}
	defer db.Close()
	log.Println("✅ Connected to DB")

	// Checagem de schema uma vez na subida, nunca por request.
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("❌ Schema error: %v", err)
	}

	// RabbitMQ é opcional: sem broker o CRM roda normal, só sem alertas.
	var rabbitConn *amqp.Connection
	var producer *queue.Producer
	if amqpURL := os.Getenv("RABBITMQ_URL"); amqpURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(amqpURL)
		if err != nil {
			log.Fatalf("❌ RabbitMQ error: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		var notifier queue.LeadNotifier
		if host := os.Getenv("MAIL_HOST"); host != "" {
			mailPort, err := strconv.Atoi(os.Getenv("MAIL_PORT"))
			if err != nil {
				mailPort = 587
			}
			notifier = mail.NewEmailSender(
				host, mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
				os.Getenv("ALERT_EMAIL_FROM"), os.Getenv("ALERT_EMAIL_TO"),
			)
		}
		worker := queue.NewWorker(rabbitMQ.Ch, notifier)
		go worker.Start(queue.QueueName)
	}

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	messageRepo := database.NewMessageRepository(db)
	templateRepo := database.NewTemplateRepository(db)
	txManager := database.NewTxManager(db)

	// 2. Graph API (token e base URL injetados, nada de global)
	accessToken := os.Getenv("PAGE_ACCESS_TOKEN")
	igClient := instagram.NewClient(accessToken, os.Getenv("GRAPH_API_URL"))

	// 3. UseCases
	enricher := usecase.NewProfileEnricher(leadRepo, igClient)
	var events usecase.EventPublisherInterface
	if producer != nil {
		events = producer
	}
	ingestUC := usecase.NewIngestMessageUseCase(
		leadRepo, messageRepo, enricher, txManager, events,
		os.Getenv("IG_BUSINESS_ID"),
	)
	sendUC := usecase.NewSendMessageUseCase(leadRepo, messageRepo, igClient)
	syncUC := usecase.NewSyncHistoryUseCase(messageRepo, igClient)

	// 4. Handlers
	verifyToken := os.Getenv("VERIFY_TOKEN")
	if verifyToken == "" {
		verifyToken = "director_verify"
	}
	webhookHandler := handlers.NewWebhookHandler(ingestUC, verifyToken, os.Getenv("APP_SECRET"))
	leadHandler := handlers.NewLeadHandler(leadRepo, messageRepo)
	chatHandler := handlers.NewChatHandler(leadRepo, messageRepo, sendUC, syncUC)
	templateHandler := handlers.NewTemplateHandler(templateRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, accessToken != "")

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/webhook", webhookHandler.HandleVerify)
	r.Post("/webhook", webhookHandler.HandleEvent)

	r.Get("/leads", leadHandler.HandleList)
	r.Get("/leads/{id}", leadHandler.HandleGet)
	r.Patch("/leads/{id}", leadHandler.HandleUpdateStatus)
	r.Get("/lead-statuses", leadHandler.HandleStatuses)

	r.Get("/chats/{id}", chatHandler.HandleGetChat)
	r.Post("/chats/{id}/send", chatHandler.HandleSend)
	r.Post("/chats/{id}/sync", chatHandler.HandleSync)

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", templateHandler.HandleList)
		r.Post("/", templateHandler.HandleCreate)
		r.Get("/{id}", templateHandler.HandleGet)
		r.Put("/{id}", templateHandler.HandleUpdate)
		r.Delete("/{id}", templateHandler.HandleDelete)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if _, err := strconv.Atoi(port); err != nil {
		port = "3000"
	}

	log.Printf("🚀 Servidor rodando na porta %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
