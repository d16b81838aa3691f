package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-coach/internal/metrics"
	"career-coach/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	limiter *IPRateLimiter,
	m *metrics.Metrics,
	jwtSvc *service.JWTService,
	userH *UserHandler,
	assessH *AssessmentHandler,
	matchH *MatchHandler,
	aiH *AIHandler,
	historyH *HistoryHandler,
	coachH *CoachHandler,
	extractH *ExtractHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery, rate limit y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), rateLimitMiddleware(limiter, logger), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	auth := r.Group("/auth")
	auth.POST("/register", userH.Register)
	auth.POST("/login", userH.Login)
	auth.POST("/refresh", userH.RefreshToken)
	auth.POST("/logout", userH.Logout)

	r.GET("/assessment/questions", assessH.Questions)
	r.POST("/match", matchH.Match)
	r.POST("/coach", coachH.Respond)

	private := r.Group("", JWTAuthMiddleware(jwtSvc))

	sessions := private.Group("/assessment/sessions")
	sessions.POST("", assessH.StartSession)
	sessions.GET("/:id", assessH.GetSession)
	sessions.POST("/:id/answers", assessH.Answer)
	sessions.POST("/:id/finalize", assessH.Finalize)
	private.GET("/assessment/profile", assessH.Profile)

	private.POST("/analysis", aiH.Analyze)
	private.POST("/research", aiH.Research)
	private.POST("/cover-letter", aiH.CoverLetter)
	private.POST("/extract", extractH.Extract)

	history := private.Group("/history")
	history.POST("", historyH.Save)
	history.GET("", historyH.List)
	history.GET("/:id", historyH.Get)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
