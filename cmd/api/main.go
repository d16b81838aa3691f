package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"career-coach/internal/config"
	"career-coach/internal/db"
	"career-coach/internal/extract"
	apihttp "career-coach/internal/http"
	"career-coach/internal/llm"
	"career-coach/internal/metrics"
	"career-coach/internal/repository"
	"career-coach/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	m := metrics.New()
	userRepo := repository.NewPgUserRepository(pool)
	historyRepo := repository.NewPgHistoryRepository(pool)
	assessmentRepo := repository.NewPgAssessmentRepository(pool)

	llmClient, err := llm.NewFromConfig(ctx, cfg, logger)
	if err != nil {
		// sin cliente las rutas de IA responden 503
		logger.Warn("llm client init failed", zap.Error(err))
		llmClient = nil
	}

	var (
		loginLimiter service.LoginRateLimiter
		tokenStore   service.RefreshTokenStore
		historyCache service.HistoryCache
		redisClient  *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, 10*time.Minute, 10)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
			historyCache = service.NewRedisHistoryCache(redisClient, cfg.HistoryCacheTTL(), logger)
		}
		cancel()
		defer redisClient.Close()
	}
	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	userSvc := service.NewUserService(logger, userRepo, loginLimiter)
	assessSvc, err := service.NewAssessmentService(nil, assessmentRepo, m, logger)
	if err != nil {
		logger.Fatal("assessment catalog", zap.Error(err))
	}
	go assessSvc.RunJanitor(ctx, 10*time.Minute)
	analysisSvc := service.NewAnalysisService(llmClient, m, logger)
	historySvc := service.NewHistoryService(historyRepo, historyCache, m, logger)

	limiter := apihttp.NewIPRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer limiter.Stop()

	router := apihttp.NewRouter(logger, limiter, m, jwtSvc,
		apihttp.NewUserHandler(logger, userSvc, jwtSvc),
		apihttp.NewAssessmentHandler(logger, assessSvc),
		apihttp.NewMatchHandler(logger, m),
		apihttp.NewAIHandler(logger, analysisSvc, assessSvc),
		apihttp.NewHistoryHandler(logger, historySvc),
		apihttp.NewCoachHandler(logger, nil),
		apihttp.NewExtractHandler(logger, extract.NewURLFetcher(cfg.FetchTimeout()), cfg.MaxUploadBytes),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
