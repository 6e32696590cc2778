package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	RedisAddr     string
	RedisPassword string

	JWTSecret string

	WorkerConcurrency int
	ProcessTimeout    time.Duration
	StaleAfter        time.Duration
	SignedURLTTL      time.Duration
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetDefault("MARIADB_MAX_OPEN_CONN", 25)
	viper.SetDefault("MARIADB_MAX_IDLE_CONNS", 25)
	viper.SetDefault("MARIADB_CONN_MAX_LIFETIME", 300)
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("WORKER_CONCURRENCY", 10)
	viper.SetDefault("PROCESS_TIMEOUT", 25)
	viper.SetDefault("STALE_AFTER", 120)
	viper.SetDefault("SIGNED_URL_TTL", 900)

	if !viper.IsSet("MARIADB_DSN") {
		return nil, fmt.Errorf("MARIADB_DSN is required")
	}
	if !viper.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}
	if !viper.IsSet("MINIO_ENDPOINT") {
		return nil, fmt.Errorf("MINIO_ENDPOINT is required")
	}
	if !viper.IsSet("MINIO_ACCESS_KEY") {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY is required")
	}
	if !viper.IsSet("MINIO_SECRET_KEY") {
		return nil, fmt.Errorf("MINIO_SECRET_KEY is required")
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		JWTSecret: viper.GetString("JWT_SECRET"),

		WorkerConcurrency: viper.GetInt("WORKER_CONCURRENCY"),
		ProcessTimeout:    time.Duration(viper.GetInt("PROCESS_TIMEOUT")) * time.Second,
		StaleAfter:        time.Duration(viper.GetInt("STALE_AFTER")) * time.Second,
		SignedURLTTL:      time.Duration(viper.GetInt("SIGNED_URL_TTL")) * time.Second,
	}, nil
}
