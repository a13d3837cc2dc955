package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"blog-account/internal/infra/setup"
	"blog-account/internal/infra/storage"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// 头像存储驱动
const (
	StorageMinio = "minio"
	StorageLocal = "local"
)

// Config 结构体用于存储从环境变量或文件加载的配置
type Config struct {
	ServerPort string
	AppEnv     string // development / production
	LogLevel   string

	DB setup.DBConfig

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string // Redis Key 前缀

	JWTSecret      string
	JWTExpiryHours int
	AdminEmails    []string

	StorageDriver   string
	Minio           storage.MinioConfig
	LocalStorageDir string
	PublicBaseURL   string // 本地存储的访问前缀

	CacheTTL           time.Duration
	AvatarCleanupDelay time.Duration
	RateLimitMax       int
	RateLimitWindow    time.Duration
	CORSAllowedOrigin  string
}

// LoadConfig 从环境变量加载配置
func LoadConfig() (*Config, error) {
	// 优先加载 .env 文件 (如果存在)
	_ = godotenv.Load() // 忽略错误，允许只使用环境变量

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DB: setup.DBConfig{
			Driver:     getEnv("DB_DRIVER", "mysql"),
			User:       os.Getenv("DB_USER"),
			Password:   os.Getenv("DB_PASSWORD"),
			Host:       getEnv("DB_HOST", "127.0.0.1"),
			Port:       getEnv("DB_PORT", "3306"),
			Name:       getEnv("DB_NAME", "blog_db"),
			SQLitePath: getEnv("SQLITE_PATH", "blog.db"),
		},
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		KeyPrefix:      getEnv("REDIS_KEY_PREFIX", "blog:"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		AdminEmails:    splitList(os.Getenv("ADMIN_EMAILS")),
		StorageDriver:  getEnv("STORAGE_DRIVER", StorageMinio),
		Minio: storage.MinioConfig{
			Endpoint:      os.Getenv("MINIO_ENDPOINT"),
			AccessKey:     os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey:     os.Getenv("MINIO_SECRET_KEY"),
			Bucket:        getEnv("MINIO_BUCKET", "avatars"),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: os.Getenv("STORAGE_PUBLIC_BASE_URL"),
		},
		LocalStorageDir:    getEnv("LOCAL_STORAGE_DIR", "uploads"),
		PublicBaseURL:      os.Getenv("STORAGE_PUBLIC_BASE_URL"),
		CacheTTL:           time.Duration(getEnvInt("CACHE_TTL_SECONDS", 600)) * time.Second,
		AvatarCleanupDelay: time.Duration(getEnvInt("AVATAR_CLEANUP_DELAY_SECONDS", 0)) * time.Second,
		RateLimitMax:       getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow:    1 * time.Second,
		CORSAllowedOrigin:  getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
	}
	cfg.DB.Debug = cfg.AppEnv != "production" && cfg.LogLevel == "debug"

	// --- 必要检查 ---
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("environment variable REDIS_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}
	switch cfg.StorageDriver {
	case StorageMinio:
		if cfg.Minio.Endpoint == "" {
			return nil, fmt.Errorf("environment variable MINIO_ENDPOINT must be set when STORAGE_DRIVER=minio")
		}
	case StorageLocal:
		if cfg.PublicBaseURL == "" {
			cfg.PublicBaseURL = "http://localhost:" + cfg.ServerPort + "/uploads"
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 100
	}

	// 验证日志级别
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info" // 修正配置值
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("Invalid %s '%s', using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// splitList 解析逗号分隔的列表，忽略空项
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
