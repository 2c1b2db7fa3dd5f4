// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers.
//
// Global middleware order:
//  1. OpenTelemetry
//  2. RequestID
//  3. access log (redacting unless LOG_REDACT=false)
//  4. Recovery
//  5. body size limit
//  6. Metrics
//  7. gzip
//  8. CORS guard + CORS
//  9. security headers
//
// Per route, authenticated endpoints then run Authenticate, the rate
// limiter, and the Idempotency-Key validator, in that order, so the limiter
// keys by account and throttles requests before any replay lookup.
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-qa-backend/docs" // swagger spec registration

	"github.com/tbourn/go-qa-backend/internal/auth"
	"github.com/tbourn/go-qa-backend/internal/config"
	"github.com/tbourn/go-qa-backend/internal/http/handlers"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
	"github.com/tbourn/go-qa-backend/internal/moderation"
	"github.com/tbourn/go-qa-backend/internal/services"
)

// Deps carries what RegisterRoutes cannot build from config alone.
type Deps struct {
	DB      *gorm.DB
	Checker moderation.Checker // nil selects one from cfg.Profanity
	Version string
}

var corsMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
var corsHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey}

// NewChecker returns the APILayer client when filtering is enabled and a
// pass-through checker otherwise.
func NewChecker(p config.ProfanityConfig) moderation.Checker {
	if !p.Enabled {
		return moderation.Noop{}
	}
	return moderation.NewAPILayer(p.APIURL, p.APIKey, p.Timeout)
}

// RegisterRoutes attaches middleware and endpoints to r and returns the
// idempotency service so the caller can schedule purges.
func RegisterRoutes(r *gin.Engine, cfg config.Config, deps Deps) *services.IdempotencyService {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	if cfg.LogRedact {
		r.Use(middleware.RedactingLogger(middleware.RedactOptions{MaskHeaders: []string{"X-API-Key"}}))
	} else {
		r.Use(middleware.Logger())
	}
	r.Use(middleware.Recovery())
	r.Use(limitBody(cfg.MaxBodyBytes))
	r.Use(middleware.Metrics())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
		NoStore:    true,
	}))

	r.NoRoute(func(c *gin.Context) { handlers.Reject(c, handlers.ErrRouteNotFound) })
	r.NoMethod(func(c *gin.Context) { handlers.Reject(c, handlers.ErrMethodNotAllowed) })

	r.GET("/health", health(deps))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	checker := deps.Checker
	if checker == nil {
		checker = NewChecker(cfg.Profanity)
	}
	accounts := &services.AccountService{
		DB:     deps.DB,
		Tokens: &auth.TokenIssuer{Secret: []byte(cfg.Session.Secret), TTL: cfg.Session.TTL},
	}
	idem := &services.IdempotencyService{DB: deps.DB, TTL: cfg.IdempotencyTTL}
	h := handlers.New(
		services.NewQuestionService(deps.DB, checker),
		services.NewAnswerService(deps.DB, checker),
		accounts,
		idem,
	)

	limit := middleware.NewRateLimiter(middleware.RateLimitOptions{
		RPS:    cfg.RateRPS,
		Burst:  cfg.RateBurst,
		Reject: handlers.Reject,
	}).Handler()

	api := groupWithPrefix(r, cfg.APIBasePath)

	public := api.Group("", limit)
	{
		public.GET("/questions", h.ListQuestions)
		public.GET("/questions/:id", h.GetQuestion)
		public.GET("/answers", h.ListAnswers)
		public.GET("/answers/:id", h.GetAnswer)
		public.POST("/registration", h.Register)
		public.POST("/login", h.Login)
	}

	authed := api.Group("",
		handlers.Authenticate(accounts),
		limit,
		middleware.IdempotencyValidator(middleware.IdempotencyOptions{Reject: handlers.Reject}, idem.Lookup),
	)
	{
		authed.POST("/questions", h.CreateQuestion)
		authed.PUT("/questions/:id", h.UpdateQuestion)
		authed.DELETE("/questions/:id", h.DeleteQuestion)
		authed.POST("/answers", h.CreateAnswer)
		authed.DELETE("/answers/:id", h.DeleteAnswer)
	}
	return idem
}

// corsMiddleware allows any origin when the allowlist is empty. Otherwise a
// cross-origin request from an unlisted origin is rejected as forbidden
// before gin-contrib/cors sees it.
func corsMiddleware(allowed []string) []gin.HandlerFunc {
	if len(allowed) == 0 {
		return []gin.HandlerFunc{cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    corsMethods,
			AllowHeaders:    corsHeaders,
			ExposeHeaders:   []string{"X-Request-ID", "Retry-After", "Content-Length"},
			MaxAge:          12 * time.Hour,
		})}
	}

	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = struct{}{}
	}
	guard := func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || sameOrigin(origin, c.Request.Host) {
			c.Next()
			return
		}
		if _, ok := set[origin]; !ok {
			handlers.Reject(c, handlers.ErrOriginForbidden)
			return
		}
		c.Next()
	}
	return []gin.HandlerFunc{guard, cors.New(cors.Config{
		AllowOrigins:  allowed,
		AllowMethods:  corsMethods,
		AllowHeaders:  corsHeaders,
		ExposeHeaders: []string{"X-Request-ID", "Retry-After", "Content-Length"},
		MaxAge:        12 * time.Hour,
	})}
}

func sameOrigin(origin, host string) bool {
	return origin == "http://"+host || origin == "https://"+host
}

// health reports liveness and whether the database answers a ping.
func health(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok", "version": deps.Version}
		sqlDB, err := deps.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			middleware.LoggerFrom(c).Error().Err(err).Msg("health: database unreachable")
			body["status"] = "unavailable"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		c.JSON(http.StatusOK, body)
	}
}

// limitBody caps request bodies at maxBytes; reads beyond it fail and
// surface as a bind error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
