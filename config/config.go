package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/legalbridge/legalbridge-api/logging"
	"github.com/legalbridge/legalbridge-api/models"
)

// Config holds the project config values
type Config struct {
	Env     string
	BaseURL string
	Port    string

	// mongo
	URL          string
	DatabaseName string

	// relational store for contacts and blogs
	SQLDriver string
	SQLDSN    string

	// persisted collection store backend: mongo, redis or memory
	StoreDriver   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GeminiAPIKey string
	GeminiModel  string

	VisitorTokenSecret string
	VisitorTokenTTL    time.Duration

	CodeTTL        time.Duration
	DeliveryMode   string
	SendgridAPIKey string
	SendgridFrom   string
	AWSRegion      string

	RequestTimeout time.Duration
}

// New sets up all config related services
func New() *Config {
	// a missing .env file is normal outside of local development
	_ = godotenv.Load()

	env := getEnv("ENV", "production")
	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		Env:                env,
		BaseURL:            os.Getenv("BASE_URL"),
		Port:               getEnv("PORT", "3001"),
		URL:                getEnv("DB_URI", "mongodb://127.0.0.1:27017"),
		DatabaseName:       getEnv("DB_NAME", "legalbridge"),
		SQLDriver:          getEnv("SQL_DRIVER", "sqlite"),
		SQLDSN:             getEnv("SQL_DSN", "legalbridge.sqlite"),
		StoreDriver:        getEnv("STORE_DRIVER", "mongo"),
		RedisAddr:          getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		VisitorTokenSecret: os.Getenv("VISITOR_TOKEN_SECRET"),
		VisitorTokenTTL:    getEnvDuration("VISITOR_TOKEN_TTL", 365*24*time.Hour),
		CodeTTL:            getEnvDuration("CODE_TTL", 10*time.Minute),
		DeliveryMode:       getEnv("DELIVERY_MODE", "live"),
		SendgridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendgridFrom:       getEnv("SENDGRID_FROM", "no-reply@legalbridge.in"),
		AWSRegion:          getEnv("AWS_REGION", "ap-south-1"),
		RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
	}
}

func setLogger(env string) (*zap.Logger, error) {
	return logging.New(env)
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().Errorw(message, "error", err)

	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	b, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: errMsg}})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
