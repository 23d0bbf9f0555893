package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultOutputFile   = "validators_data.json"
	DefaultRPCURL       = "https://rpc.mainnet.fastnear.com"
	DefaultPoolContract = "pool-details.near"
	DefaultKafkaTopic   = "near-validator-versions"
	DefaultHTTPTimeout  = 30 * time.Second
)

type Config struct {
	OutputPath  string
	RPCURL      string
	HTTPTimeout time.Duration
	LogLevel    string

	// Attach contact details from the pool-details contract to each record
	PoolDetailsEnabled  bool
	PoolDetailsContract string

	// Publishing is disabled when KafkaBroker is empty
	KafkaBroker        string
	KafkaTopicVersions string
}

func LoadConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		logrus.Debug(".env not found, using process environment")
	}

	timeout := DefaultHTTPTimeout
	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			logrus.Warnf("invalid HTTP_TIMEOUT %q, using %s", raw, DefaultHTTPTimeout)
		} else {
			timeout = d
		}
	}

	return &Config{
		OutputPath:          getEnv("OUTPUT_PATH", defaultOutputPath()),
		RPCURL:              getEnv("RPC_URL", DefaultRPCURL),
		HTTPTimeout:         timeout,
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		PoolDetailsEnabled:  parseBool(os.Getenv("POOL_DETAILS_ENABLED")),
		PoolDetailsContract: getEnv("POOL_DETAILS_CONTRACT", DefaultPoolContract),
		KafkaBroker:         os.Getenv("KAFKA_BROKER"),
		KafkaTopicVersions:  getEnv("KAFKA_TOPIC_VERSIONS", DefaultKafkaTopic),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// defaultOutputPath places the report next to the executable.
func defaultOutputPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultOutputFile
	}
	return filepath.Join(filepath.Dir(exe), DefaultOutputFile)
}
