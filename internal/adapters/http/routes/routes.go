package routes

import (
	"time"

	"hana-qna/internal/adapters/http/handlers"
	"hana-qna/internal/adapters/http/middleware"
	"hana-qna/internal/config"
	"hana-qna/internal/core/services"
	"hana-qna/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
)

// Services are the core services the HTTP layer is wired to
type Services struct {
	Auth         *services.AuthService
	Accounts     *services.AccountService
	Questions    *services.QuestionService
	Answers      *services.AnswerService
	Engagement   *services.EngagementService
	Ranking      *services.RankingService
	Reservations *services.ReservationService
}

// Options carries the infrastructure the routes expose
type Options struct {
	// LimiterStore backs the auth rate limiter; nil keeps counters in memory
	LimiterStore fiber.Storage
	// Gatherer serves /metrics; nil disables the endpoint
	Gatherer prometheus.Gatherer
	// Ping checks the backing store for /health
	Ping func() error
}

// listingCache is how long public listings may be cached by clients
const listingCache = 10 * time.Second

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, svc *Services, opts Options) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, cfg.StoreDriver, opts.Ping)
	authHandler := handlers.NewAuthHandler(svc.Auth, svc.Accounts, cfg.Cookie)
	questionHandler := handlers.NewQuestionHandler(svc.Questions, svc.Engagement, svc.Accounts)
	answerHandler := handlers.NewAnswerHandler(svc.Answers, svc.Accounts)
	goodHandler := handlers.NewGoodHandler(svc.Engagement, svc.Accounts)
	rankingHandler := handlers.NewRankingHandler(svc.Ranking, svc.Accounts)
	reservationHandler := handlers.NewReservationHandler(svc.Reservations, svc.Accounts)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Prometheus scrape endpoint
	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(opts.Gatherer)))
	}

	// Uploaded attachments
	app.Static("/uploads", cfg.Upload.Dir)

	requireAuth := middleware.AuthMiddleware(svc.Auth)

	// API v1 group
	api := app.Group("/api/v1")
	api.Get("/", healthHandler.APIInfo)

	// Auth routes
	auth := api.Group("/auth", middleware.NoCacheHeaders())
	auth.Post("/login", middleware.AuthRateLimiter(opts.LimiterStore), authHandler.Login)
	auth.Post("/signup", middleware.AuthRateLimiter(opts.LimiterStore), authHandler.SignupCustomer)
	auth.Post("/signup/banker", middleware.AuthRateLimiter(opts.LimiterStore), authHandler.SignupBanker)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", requireAuth, authHandler.Me)

	// Categories & branches (public)
	api.Get("/categories", middleware.CacheControl(time.Hour), questionHandler.Categories)
	api.Get("/categories/:name/questions", rankingHandler.ByCategory)
	api.Get("/branches/:name/questions", rankingHandler.ByBranch)

	// Question listings (public); static paths before :id
	questions := api.Group("/questions")
	questions.Get("/", rankingHandler.ByLocation)
	questions.Get("/latest", middleware.CacheControl(listingCache), rankingHandler.Latest)
	questions.Get("/recently-answered", middleware.CacheControl(listingCache), rankingHandler.RecentlyAnswered)
	questions.Get("/most-liked", middleware.CacheControl(listingCache), rankingHandler.MostLiked)
	questions.Get("/most-helpful", middleware.CacheControl(listingCache), rankingHandler.MostHelpful)
	questions.Get("/today-top", middleware.CacheControl(listingCache), rankingHandler.TodayTop)
	questions.Get("/search", rankingHandler.Search)
	questions.Get("/:id<int>", questionHandler.GetQuestion)

	// Customer routes
	customer := []fiber.Handler{requireAuth, middleware.CustomerOnly()}
	questions.Post("/", append(customer, questionHandler.AddQuestion)...)
	questions.Put("/:id<int>", append(customer, questionHandler.ModifyQuestion)...)
	questions.Delete("/:id<int>", append(customer, questionHandler.DeleteQuestion)...)
	questions.Post("/:id<int>/comments", append(customer, questionHandler.AddComment)...)
	questions.Post("/:id<int>/good", append(customer, goodHandler.ToggleGood)...)
	questions.Get("/:id<int>/good", append(customer, middleware.NoCacheHeaders(), goodHandler.IsGoodChecked)...)
	api.Get("/me/questions", append(customer, middleware.NoCacheHeaders(), rankingHandler.MyQuestions)...)
	api.Post("/reservations", append(customer, reservationHandler.MakeReservation)...)

	// Banker routes
	banker := []fiber.Handler{requireAuth, middleware.BankerOnly()}
	questions.Post("/:id<int>/answer", append(banker, answerHandler.AddAnswer)...)
	api.Put("/answers/:id<int>", append(banker, answerHandler.UpdateAnswer)...)
	api.Delete("/answers/:id<int>", append(banker, answerHandler.DeleteAnswer)...)
}
