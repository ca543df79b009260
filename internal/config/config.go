package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr     string
	Port           string
	DatabaseDriver string
	DatabasePath   string
	DatabaseDSN    string
	SessionSecret  string
	GinMode        string
	LogLevel       string
	VisionProvider string
	AWSRegion      string
	HealthMock     bool
}

const (
	VisionProviderStub        = "stub"
	VisionProviderRekognition = "rekognition"
)

// LoadDotEnv 读取工作目录下可选的 .env 文件，已存在的环境变量不会被覆盖。
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := envOrDefault("PORT", "8080")

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	visionProvider := strings.ToLower(envOrDefault("VISION_PROVIDER", VisionProviderStub))
	if visionProvider != VisionProviderRekognition {
		visionProvider = VisionProviderStub
	}

	ginMode := strings.ToLower(envOrDefault("GIN_MODE", "release"))
	switch ginMode {
	case "debug", "release", "test":
	default:
		ginMode = "release"
	}

	healthMock := true
	if raw := strings.TrimSpace(os.Getenv("HEALTH_MOCK")); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			healthMock = parsed
		}
	}

	return AppConfig{
		ListenAddr:     listenAddr,
		Port:           port,
		DatabaseDriver: strings.ToLower(envOrDefault("DATABASE_DRIVER", "sqlite")),
		DatabasePath:   envOrDefault("DATABASE_PATH", "smallwins.db"),
		DatabaseDSN:    strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		SessionSecret:  envOrDefault("SESSION_SECRET", "smallwins-dev-secret"),
		GinMode:        ginMode,
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		VisionProvider: visionProvider,
		AWSRegion:      strings.TrimSpace(os.Getenv("AWS_REGION")),
		HealthMock:     healthMock,
	}
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
