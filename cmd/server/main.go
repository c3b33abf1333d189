package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/Navaneeth2707/Remindiary/internal/config"
	"github.com/Navaneeth2707/Remindiary/internal/database"
	"github.com/Navaneeth2707/Remindiary/internal/handlers"
	"github.com/Navaneeth2707/Remindiary/internal/llm"
	"github.com/Navaneeth2707/Remindiary/internal/middleware"
	"github.com/Navaneeth2707/Remindiary/internal/pipeline"
	"github.com/Navaneeth2707/Remindiary/internal/routes"
	"github.com/Navaneeth2707/Remindiary/internal/services"
)

// newGateway builds the configured text-completion provider. Provider choice
// is a configuration concern only; the pipeline sees a single Gateway.
func newGateway(cfg *config.Config) (llm.Gateway, string, error) {
	switch cfg.ModelProvider {
	case "openai":
		gw, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.ModelName, cfg.ModelTimeout)
		return gw, "openai", err
	default:
		gw, err := llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.ModelName, cfg.ModelTimeout)
		return gw, "gemini", err
	}
}

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to PostgreSQL (users + model-call audit log)
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis (sessions + rate limiting)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Connect to MongoDB (entries)
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	if err := services.EnsureEntryIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB entry indexes: %v", err)
	} else {
		log.Println("✅ MongoDB entry indexes ensured")
	}

	// Model gateway
	gateway, providerName, err := newGateway(cfg)
	if err != nil {
		log.Fatal("Failed to initialize model gateway:", err)
	}
	log.Printf("✅ Model gateway initialized (provider: %s)", providerName)

	// Record every model round-trip in the Postgres audit log
	audited := &services.AuditedGateway{Inner: gateway, Provider: providerName}

	// Date resolver: model-assisted by default, local heuristic parser
	// when DATE_RESOLVER=heuristic
	var resolver pipeline.DateResolver
	if cfg.DateResolver == "heuristic" {
		resolver = pipeline.NewHeuristicDateResolver()
		log.Println("✅ Date resolver: heuristic")
	} else {
		resolver = &pipeline.ModelDateResolver{Gateway: audited}
		log.Println("✅ Date resolver: model-assisted")
	}

	store := services.NewEntryStore()
	handlers.InitPipeline(pipeline.New(audited, store, resolver), store)

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: SecurityHeaders → ModelRateLimit on top of the Redis limit
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, model-call rate limiting)")
	}
	r.Use(middleware.RateLimitMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/signup")
	log.Println("  POST /api/auth/signin")
	log.Println("  POST /api/auth/signout")
	log.Println("  GET  /api/auth/me")
	log.Println("  POST /api/entries")
	log.Println("  GET  /api/entries")
	log.Println("  GET  /api/entries/date")
	log.Println("  POST /api/diary/generate")
	log.Println("  GET  /api/diary")

	log.Printf("🚀 Remindiary backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
