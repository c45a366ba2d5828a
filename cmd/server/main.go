package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"leadquiz/internal/cache"
	"leadquiz/internal/catalog"
	"leadquiz/internal/config"
	"leadquiz/internal/delivery"
	"leadquiz/internal/engine"
	"leadquiz/internal/journal"
	"leadquiz/internal/repository"
	"leadquiz/internal/service"
	"leadquiz/internal/transport/rest"
	"leadquiz/internal/transport/rest/middleware"
	"leadquiz/internal/transport/ws"
)

// @title LeadQuiz API
// @version 1.0
// @description Branching lead-qualification quiz engine with webhook delivery
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	log.Printf("Webhook config:")
	log.Printf("  URL:       %s", cfg.Webhook.URL)
	log.Printf("  Transport: %s", cfg.Webhook.Transport)
	log.Printf("  Timeout:   %v", cfg.Webhook.Timeout())
	if cfg.Webhook.URL == "" {
		log.Println("Warning: WEBHOOK_URL not set, deliveries will fail (leads still land in the journal)")
	}

	// Session store: redis when configured, in-process otherwise
	var sessions cache.SessionCache
	if cfg.RedisURI != "" {
		redisAddr := cfg.RedisURI
		if strings.HasPrefix(redisAddr, "redis://") {
			redisAddr = redisAddr[len("redis://"):]
		}

		rdb := redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal("Failed to ping Redis:", err)
		}
		log.Println("Connected to Redis")
		sessions = cache.NewSessionCache(rdb, cfg.SessionTTL)
	} else {
		log.Println("Warning: REDIS_URI not set, using in-memory session store")
		sessions = cache.NewMemorySessionCache()
	}

	// Submission archive: optional, the journal is the durability guarantee
	var archive repository.SubmissionRepo
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			log.Fatal("Failed to ping MongoDB:", err)
		}
		log.Println("Connected to MongoDB")

		archive = repository.NewSubmissionRepo(mongoClient.Database("leadquiz"))
	} else {
		log.Println("Warning: MONGO_URI not set, lead archive disabled")
	}

	// Durable local log
	leadJournal, err := journal.NewFileJournal(cfg.JournalPath)
	if err != nil {
		log.Fatal("Failed to open journal:", err)
	}
	log.Printf("Journal at %s", cfg.JournalPath)

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize the engine over the production catalog
	cat := catalog.Default()
	eng := engine.New(cat, middleware.ContextGate{})

	// Initialize delivery pipeline
	sink := delivery.NewWebhookClient(cfg.Webhook.URL, delivery.Transport(cfg.Webhook.Transport), cfg.Webhook.Timeout())
	pipeline := delivery.NewPipeline(sink, leadJournal, archive)

	// Initialize services
	authSvc := service.NewAuthService()
	quizSvc := service.NewQuizService(eng, sessions, pipeline)
	leadSvc := service.NewLeadService(archive, leadJournal)

	// Inject notifier (wsHub implements service.Notifier)
	quizSvc.SetNotifier(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService: authSvc,
		QuizService: quizSvc,
		LeadService: leadSvc,
		WSHub:       wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/auth/identify")
		log.Println("  POST /v1/quiz/sessions")
		log.Println("  GET  /v1/quiz/sessions/{id}")
		log.Println("  PUT  /v1/quiz/sessions/{id}/answers/{questionId}")
		log.Println("  POST /v1/quiz/sessions/{id}/advance")
		log.Println("  POST /v1/quiz/sessions/{id}/submit")
		log.Println("  GET  /v1/leads")
		log.Println("  WS   /v1/ws/ops")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
