package bootstrap

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	httpHandler "blog-account/internal/handler/http"
	"blog-account/internal/middleware"
)

// AuthService 是路由需要的认证能力：登录和 Token 校验
type AuthService interface {
	httpHandler.Authenticator
	middleware.TokenParser
}

// RouterDeps 汇总 NewRouter 的依赖
type RouterDeps struct {
	Config      *Config
	Log         *logrus.Logger
	RedisClient *redis.Client
	Auth        AuthService
	Users       httpHandler.UserService
}

// NewRouter 组装 Gin Engine、中间件和路由
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(deps.Log))
	router.Use(corsMiddleware(cfg.CORSAllowedOrigin))
	router.Use(middleware.RateLimit(deps.RedisClient, cfg.KeyPrefix, cfg.RateLimitMax, cfg.RateLimitWindow))
	router.MaxMultipartMemory = 8 << 20

	authHandler := httpHandler.NewAuthHandler(deps.Auth)
	userHandler := httpHandler.NewUserHandler(deps.Users)
	requireAuth := middleware.Auth(deps.Auth)

	// --- 设置路由 ---
	api := router.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/users", userHandler.Create)
	userRoutes := api.Group("/users", requireAuth)
	{
		userRoutes.GET("", userHandler.List)
		userRoutes.GET("/:id", userHandler.Get)
		userRoutes.PATCH("/:id", userHandler.Update)
		userRoutes.DELETE("/:id", userHandler.Delete)
	}
	if cfg.StorageDriver == StorageLocal {
		router.Static("/uploads", cfg.LocalStorageDir)
	}
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })

	return router
}

func corsMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggerMiddleware 创建一个 Gin 中间件用于记录请求日志
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next() // 处理请求
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		switch {
		case errorMessage != "":
			entry.Error(errorMessage)
		case statusCode >= 500:
			entry.Error("Server error")
		case statusCode >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Request handled")
		}
	}
}
