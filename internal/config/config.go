package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file when present. Missing files are fine; plain
// environment variables win in that case.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

func GetEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func PostgresConnString() string {
	user := GetEnv("POSTGRES_USER", "postgres")
	password := GetEnv("POSTGRES_PASSWORD", "postgres")
	host := GetEnv("POSTGRES_HOST", "localhost")
	port := GetEnv("POSTGRES_PORT", "5432")
	dbName := GetEnv("POSTGRES_DB", "contest")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}

func RedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func RedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func JWTSecret() []byte {
	secret := GetEnv("JWT_SECRET", "")
	if secret == "" {
		log.Println("Warning: JWT_SECRET not set")
	}
	return []byte(secret)
}
