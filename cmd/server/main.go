package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hana-qna/internal/adapters/cache"
	"hana-qna/internal/adapters/http/middleware"
	"hana-qna/internal/adapters/http/routes"
	"hana-qna/internal/adapters/messaging"
	"hana-qna/internal/adapters/persistence/memory"
	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/adapters/persistence/repositories"
	"hana-qna/internal/adapters/storage"
	"hana-qna/internal/config"
	"hana-qna/internal/core/services"
	"hana-qna/internal/pkg/jwt"
	"hana-qna/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "hana-qna/docs" // Swagger docs
)

// @title Hana Q&A API
// @version 1.0
// @description Customer questions, banker answers and engagement rankings
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@hana-qna.example.com

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// stores bundles the repository ports of one store driver
type stores struct {
	questions    repositories.QuestionRepository
	answers      repositories.AnswerRepository
	engagement   repositories.EngagementStore
	customers    repositories.CustomerRepository
	bankers      repositories.BankerRepository
	categories   repositories.CategoryRepository
	comments     repositories.CommentRepository
	branches     repositories.BranchRepository
	reservations repositories.ReservationRepository

	ping  func() error
	close func()
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Open the store selected by STORE_DRIVER
	st, err := openStores(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open store: %v", err)
	}
	defer st.close()

	// Seed categories, branches and dev accounts
	seeder := config.NewSeeder(st.categories, st.branches, st.customers, st.bankers)
	if err := seeder.Run(context.Background(), cfg.SeedDevData); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Token codec; the decoded key lives only inside the codec
	codec, err := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.TokenValidity)
	if err != nil {
		log.Fatalf("❌ Invalid JWT secret: %v", err)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(registry)

	// Event publisher (RabbitMQ when configured)
	var publisher services.EventPublisher = messaging.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		amqpPublisher, err := messaging.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Printf("⚠️ RabbitMQ unavailable, events will be dropped: %v", err)
		} else {
			defer amqpPublisher.Close()
			publisher = amqpPublisher
		}
	}

	// Attachment storage
	files, err := storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to prepare upload storage: %v", err)
	}

	// Redis-backed rate limiting when configured
	var limiterStore fiber.Storage
	if client := config.NewRedisClient(cfg.Redis); client != nil {
		redisStorage := cache.NewRedisStorage(client, "hanaqna:limiter:")
		defer redisStorage.Close()
		limiterStore = redisStorage
	}

	// Initialize services
	accounts := services.NewAccountService(st.customers, st.bankers)
	ranking := services.NewRankingService(st.questions, st.categories, st.branches)
	svc := &routes.Services{
		Auth:         services.NewAuthService(accounts, codec, recorder),
		Accounts:     accounts,
		Questions:    services.NewQuestionService(st.questions, st.categories, st.customers, st.comments, files, recorder),
		Answers:      services.NewAnswerService(st.questions, st.answers, st.bankers, publisher),
		Engagement:   services.NewEngagementService(st.questions, st.answers, st.customers, st.engagement, publisher, recorder),
		Ranking:      ranking,
		Reservations: services.NewReservationService(st.reservations, st.customers),
	}

	// Daily digest of today's top questions
	cronService := services.NewCronService(services.NewDigestService(ranking, publisher), cfg.DigestCron)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Invalid DIGEST_CRON %q: %v", cfg.DigestCron, err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Hana Q&A API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    32 * 1024 * 1024,
	})

	// Setup middlewares
	middleware.Setup(app, cfg, limiterStore)

	// Setup routes
	routes.Setup(app, cfg, svc, routes.Options{
		LimiterStore: limiterStore,
		Gatherer:     registry,
		Ping:         st.ping,
	})

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s, STORE: %s]", cfg.Port, cfg.AppMode, cfg.StoreDriver)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("❌ Server stopped: %v", err)
	}
}

// openStores connects the configured store driver
func openStores(cfg *config.Config) (*stores, error) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Println("⚠️ Using in-memory store, data is lost on restart")
		m := memory.NewStore()
		return &stores{
			questions:    m.Questions(),
			answers:      m.Answers(),
			engagement:   m.Engagement(),
			customers:    m.Customers(),
			bankers:      m.Bankers(),
			categories:   m.Categories(),
			comments:     m.Comments(),
			branches:     m.Branches(),
			reservations: m.Reservations(),
			close:        func() {},
		}, nil
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return nil, err
	}

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		config.CloseDatabase(db)
		return nil, err
	}
	log.Println("✅ Database migration completed")

	return &stores{
		questions:    repositories.NewQuestionRepository(db),
		answers:      repositories.NewAnswerRepository(db),
		engagement:   repositories.NewEngagementRepository(db),
		customers:    repositories.NewCustomerRepository(db),
		bankers:      repositories.NewBankerRepository(db),
		categories:   repositories.NewCategoryRepository(db),
		comments:     repositories.NewCommentRepository(db),
		branches:     repositories.NewBranchRepository(db),
		reservations: repositories.NewReservationRepository(db),
		ping:         func() error { return config.PingDatabase(db) },
		close: func() {
			if err := config.CloseDatabase(db); err != nil {
				log.Printf("❌ Error closing database: %v", err)
			}
		},
	}, nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
