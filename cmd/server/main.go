package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/triotrip/internal/ai"
	"github.com/dharmasatrya/triotrip/internal/amadeus"
	"github.com/dharmasatrya/triotrip/internal/booking"
	"github.com/dharmasatrya/triotrip/internal/cache"
	"github.com/dharmasatrya/triotrip/internal/handler"
	"github.com/dharmasatrya/triotrip/internal/pipeline"
	"github.com/dharmasatrya/triotrip/internal/planner"
	"github.com/dharmasatrya/triotrip/internal/providers"
	"github.com/dharmasatrya/triotrip/internal/ratelimit"
	"github.com/dharmasatrya/triotrip/internal/store"
)

type Config struct {
	Port          string
	CacheEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisTTL      time.Duration

	AIEnabled bool
	AIAPIKey  string
	AIBaseURL string
	AIModel   string
	AITimeout time.Duration

	AmadeusClientID     string
	AmadeusClientSecret string
	AmadeusEnv          string

	BookingAPIURL   string
	BookingAPIToken string

	DatabaseURL  string
	FrontendURLs []string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadConfig()
	e := echo.New()
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.FrontendURLs,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderContentDisposition, "X-Cache"},
		MaxAge:        int((12 * time.Hour).Seconds()),
	}))
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.NewUpstreamLimiterWithDefaults()
	rateLimiter.SetLimit(amadeus.ServiceName, 10, 10)
	rateLimiter.SetLimit(ai.ServiceName, 3, 5)
	rateLimiter.SetLimit(booking.ServiceName, 5, 10)

	amadeusClient := amadeus.NewClient(amadeus.Config{
		ClientID:     cfg.AmadeusClientID,
		ClientSecret: cfg.AmadeusClientSecret,
		BaseURL:      amadeus.BaseURLForEnv(cfg.AmadeusEnv),
		Limiter:      rateLimiter,
	})
	if !amadeusClient.Configured() {
		log.Println("Amadeus credentials not set, plans will not include live offers")
	}

	aiClient := ai.NewClient(ai.Config{
		Enabled: cfg.AIEnabled,
		APIKey:  cfg.AIAPIKey,
		BaseURL: cfg.AIBaseURL,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout,
		Limiter: rateLimiter,
	})
	log.Printf("AI completion: %s", aiClient.Status())

	bookingClient := booking.NewClient(booking.Config{
		BaseURL: cfg.BookingAPIURL,
		Token:   cfg.BookingAPIToken,
		Limiter: rateLimiter,
	})

	planStore := initPlanStore(cfg)
	defer planStore.Close()

	searchCache := initCache(cfg)
	defer searchCache.Close()

	searchPipeline := pipeline.New(providers.NewSyntheticProvider(), pipeline.Config{Timeout: 2 * time.Second})

	searchHandler := handler.NewSearchHandler(searchPipeline, searchCache)
	aiHandler := handler.NewAIHandler(aiClient, planner.NewService(aiClient, amadeusClient, planStore))
	bookingHandler := handler.NewBookingHandler(bookingClient)

	api := e.Group("/api")
	api.POST("/search", searchHandler.Search)
	api.POST("/ai/complete", aiHandler.Complete)
	api.POST("/ai/plan-trip", aiHandler.PlanTrip)
	api.GET("/ai/plans/:id", aiHandler.GetPlan)
	api.POST("/booking/offer", bookingHandler.Offer)
	api.POST("/booking/order", bookingHandler.Order)
	api.POST("/booking/order/get", bookingHandler.OrderGet)
	api.POST("/itinerary/pdf", handler.ItineraryPDFHandler)
	e.GET("/health", handler.HealthHandler(map[string]string{
		"ai":      aiClient.Status(),
		"amadeus": configured(amadeusClient.Configured()),
		"booking": configured(bookingClient.Configured()),
	}))

	log.Printf("Starting TrioTrip server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initPlanStore(cfg Config) store.PlanStore {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, keeping plans in memory")
		return store.NewMemoryStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open plan store: %v", err)
	}
	return pg
}

func initCache(cfg Config) cache.Cache {
	if !cfg.CacheEnabled {
		log.Println("Cache disabled")
		return cache.NewNoOpCache()
	}

	redisCache, err := cache.NewRedisCache(cache.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		TTL:      cfg.RedisTTL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	return redisCache
}

func configured(ok bool) string {
	if ok {
		return "ok"
	}
	return "misconfigured"
}

func loadConfig() Config {
	defaults := cache.DefaultRedisConfig()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		CacheEnabled:  getEnvBool("CACHE_ENABLED", false),
		RedisHost:     getEnv("REDIS_HOST", defaults.Host),
		RedisPort:     getEnv("REDIS_PORT", defaults.Port),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTTL:      getEnvDuration("REDIS_TTL", defaults.TTL),

		AIEnabled: getEnvBool("AI_ENABLED", false),
		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIBaseURL: getEnv("AI_BASE_URL", ai.DefaultBaseURL),
		AIModel:   getEnv("AI_MODEL", ai.DefaultModel),
		AITimeout: getEnvDuration("AI_TIMEOUT", 60*time.Second),

		AmadeusClientID:     getEnv("AMADEUS_CLIENT_ID", ""),
		AmadeusClientSecret: getEnv("AMADEUS_CLIENT_SECRET", ""),
		AmadeusEnv:          getEnv("AMADEUS_ENV", "test"),

		BookingAPIURL:   getEnv("BOOKING_API_URL", ""),
		BookingAPIToken: getEnv("BOOKING_API_TOKEN", ""),

		DatabaseURL:  getEnv("DATABASE_URL", ""),
		FrontendURLs: getEnvList("FRONTEND_URL", []string{"http://localhost:5173", "http://localhost:3000"}),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

// getEnvList splits a comma-separated value and appends it to the defaults.
func getEnvList(key string, defaults []string) []string {
	out := append([]string(nil), defaults...)
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
