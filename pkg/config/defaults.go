// Package config provides centralized default values for WealthStack
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func loadEnvFile() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found -- config defaults will be used")
	}
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseFloat(valStr, 64); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%f (default: %f)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Registry bounds
	MaxVisitorAccounts int
	MaxActivityItems   int
	SessionTTL         time.Duration

	// Scoring thresholds (qualification status bands)
	HotScoreThreshold       float64
	HotScoreOverride        float64
	QualifiedScoreThreshold float64
	WarmScoreThreshold      float64
	HighPriorityScore       float64

	// Signal extraction
	RulesetPath     string
	MinSignalWeight float64

	// SSE Configuration
	MaxSSEConnections           int
	SSEHeartbeatIntervalSeconds int

	// Email notifications
	AlertEmailTo string

	// Cleanup Intervals
	CleanupInterval time.Duration

	// Dashboard cache
	DashboardTTL time.Duration
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Registry bounds
	MaxVisitorAccounts = getEnvInt("MAX_VISITOR_ACCOUNTS", 10000)
	MaxActivityItems = getEnvInt("MAX_ACTIVITY_ITEMS", 200)
	SessionTTL = time.Duration(getEnvInt("SESSION_TTL_HOURS", 72)) * time.Hour

	// Scoring thresholds
	HotScoreThreshold = getEnvFloat("HOT_SCORE_THRESHOLD", 80)
	HotScoreOverride = getEnvFloat("HOT_SCORE_OVERRIDE", 90)
	QualifiedScoreThreshold = getEnvFloat("QUALIFIED_SCORE_THRESHOLD", 60)
	WarmScoreThreshold = getEnvFloat("WARM_SCORE_THRESHOLD", 35)
	HighPriorityScore = getEnvFloat("HIGH_PRIORITY_SCORE", 85)

	// Signal extraction
	RulesetPath = getEnvString("SIGNAL_RULESET_PATH", "")
	MinSignalWeight = getEnvFloat("MIN_SIGNAL_WEIGHT", 3)

	// SSE Configuration
	MaxSSEConnections = getEnvInt("MAX_SSE_CONNECTIONS", 100)
	SSEHeartbeatIntervalSeconds = getEnvInt("SSE_HEARTBEAT_INTERVAL_SECONDS", 30)

	// Email notifications
	AlertEmailTo = getEnvString("ALERT_EMAIL_TO", "")

	// Cleanup Intervals
	CleanupInterval = time.Duration(getEnvInt("CACHE_CLEANUP_INTERVAL_MINUTES", 30)) * time.Minute

	// Dashboard cache
	DashboardTTL = time.Duration(getEnvInt("DASHBOARD_TTL_MINUTES", 10)) * time.Minute
}
