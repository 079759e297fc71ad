package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	TCP      TCPConfig
	Database DatabaseConfig
	Analysis AnalysisConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
	NatsURL     string
}

type TCPConfig struct {
	Host            string
	Port            string
	MaxFrameSize    int
	ClientTimeout   time.Duration
	ClientRetries   int
	PipelineTimeout time.Duration
}

type DatabaseConfig struct {
	Connection string
}

type AnalysisConfig struct {
	AlgorithmServiceURL string

	// Density clustering tunables.
	MinClusterSize int
	MinSamples     int

	// Dimensionality reduction targets.
	ClusterDimensions int
	VizDimensions     int
	ReduceMetric      string

	// Recommendations.
	TopK                int
	SimilarityThreshold float64

	// Labeling.
	TopNKeywords int

	CacheTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "analytics.log"),
			NatsURL:     getEnv("NATS_URL", "nats://localhost:4222"),
		},
		TCP: TCPConfig{
			Host:            getEnv("TCP_SERVER_HOST", "0.0.0.0"),
			Port:            getEnv("TCP_SERVER_PORT", "5555"),
			MaxFrameSize:    getEnvAsInt("TCP_MAX_FRAME_SIZE", 16*1024*1024),
			ClientTimeout:   getEnvAsDuration("TCP_CLIENT_TIMEOUT", 30*time.Second),
			ClientRetries:   getEnvAsInt("TCP_CLIENT_RETRIES", 3),
			PipelineTimeout: getEnvAsDuration("PIPELINE_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Analysis: AnalysisConfig{
			AlgorithmServiceURL: getEnv("ALGO_SERVICE_URL", "http://localhost:8001"),
			MinClusterSize:      getEnvAsInt("MIN_CLUSTER_SIZE", 3),
			MinSamples:          getEnvAsInt("MIN_SAMPLES", 2),
			ClusterDimensions:   getEnvAsInt("REDUCE_DIMS_CLUSTER", 5),
			VizDimensions:       getEnvAsInt("REDUCE_DIMS_VIZ", 2),
			ReduceMetric:        getEnv("REDUCE_METRIC", "cosine"),
			TopK:                getEnvAsInt("TOP_K_RECOMMENDATIONS", 5),
			SimilarityThreshold: getEnvAsFloat("SIMILARITY_THRESHOLD", 0.7),
			TopNKeywords:        getEnvAsInt("TOP_N_KEYWORDS", 10),
			CacheTTL:            getEnvAsDuration("CACHE_TTL", time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
