package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	FrontendURL string
	// EmailJS Configuration
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string // Optional access token for strict mode accounts
	EmailJSAPIURL     string
	EmailJSTimeout    time.Duration
	// Contact form behaviour
	ContactRevertDelay time.Duration
	SessionSecret      string
	SessionIdleTTL     time.Duration
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitGlobalThreshold  int
	// Metrics listener, disabled when empty
	MetricsAddr string
}

func LoadConfig() (*Config, error) {
	// Only effective locally; production environments supply real variables
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:8080"), "/"),
		// EmailJS Configuration
		EmailJSServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),
		EmailJSPublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
		EmailJSPrivateKey: getEnv("EMAILJS_PRIVATE_KEY", ""),
		EmailJSAPIURL:     strings.TrimRight(getEnv("EMAILJS_API_URL", "https://api.emailjs.com"), "/"),
		EmailJSTimeout:    getEnvSeconds("EMAILJS_TIMEOUT_SECONDS", 15),
		// Contact form behaviour
		ContactRevertDelay: getEnvSeconds("CONTACT_REVERT_SECONDS", 5),
		SessionSecret:      getEnv("SESSION_SECRET", ""),
		SessionIdleTTL:     time.Duration(getEnvInt("SESSION_IDLE_MINUTES", 30)) * time.Minute,
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Metrics
		MetricsAddr: getEnv("METRICS_ADDR", ""),
	}

	// Misconfigured EmailJS is handled per submission, not at startup
	if cfg.EmailJSServiceID == "" || cfg.EmailJSTemplateID == "" || cfg.EmailJSPublicKey == "" {
		log.Println("WARNING: EMAILJS_* variables are incomplete. Contact submissions will report a configuration error.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	if cfg.SessionSecret == "" {
		log.Println("WARNING: SESSION_SECRET not set. A random secret will be generated; sessions reset on restart.")
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvSeconds reads a whole number of seconds as a duration
func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Second
}
