package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Upload     UploadConfig
	Classifier ClassifierConfig
	Log        LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	ReportCacheTTL time.Duration
}

type UploadConfig struct {
	MaxFileSizeMB int
}

// ClassifierConfig - пороги эвристик фильтра фантомных сущностей.
// Все значения имеют задокументированные дефолты и могут быть изменены
// через окружение без правки кода.
type ClassifierConfig struct {
	PhantomLayers     []string
	OriginEpsilon     float64
	MaxLengthFactor   float64
	MaxDistanceFactor float64
	CoordinateBound   float64
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Enabled:         viper.GetBool("DB_ENABLED"),
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			ReportCacheTTL: time.Duration(viper.GetInt("REPORT_CACHE_TTL")) * time.Second,
		},
		Upload: UploadConfig{
			MaxFileSizeMB: viper.GetInt("UPLOAD_MAX_FILE_SIZE_MB"),
		},
		Classifier: ClassifierConfig{
			PhantomLayers:     parseLayers(viper.GetString("CLASSIFIER_PHANTOM_LAYERS")),
			OriginEpsilon:     viper.GetFloat64("CLASSIFIER_ORIGIN_EPSILON"),
			MaxLengthFactor:   viper.GetFloat64("CLASSIFIER_MAX_LENGTH_FACTOR"),
			MaxDistanceFactor: viper.GetFloat64("CLASSIFIER_MAX_DISTANCE_FACTOR"),
			CoordinateBound:   viper.GetFloat64("CLASSIFIER_COORDINATE_BOUND"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Cache.ReportCacheTTL == 0 {
		cfg.Cache.ReportCacheTTL = time.Hour
	}
	if cfg.Upload.MaxFileSizeMB == 0 {
		cfg.Upload.MaxFileSizeMB = 25
	}
	if len(cfg.Classifier.PhantomLayers) == 0 {
		cfg.Classifier.PhantomLayers = []string{"DEFPOINTS", "PHANTOM", "HIDDEN", "CONSTRUCTION", "TEMP"}
	}
	if cfg.Classifier.OriginEpsilon == 0 {
		cfg.Classifier.OriginEpsilon = 0.001
	}
	if cfg.Classifier.MaxLengthFactor == 0 {
		cfg.Classifier.MaxLengthFactor = 10
	}
	if cfg.Classifier.MaxDistanceFactor == 0 {
		cfg.Classifier.MaxDistanceFactor = 5
	}
	if cfg.Classifier.CoordinateBound == 0 {
		cfg.Classifier.CoordinateBound = 50000
	}

	return cfg, nil
}

func parseLayers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
