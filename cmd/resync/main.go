package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	rediscache "github.com/contest/api/internal/adapters/cache/redis"
	"github.com/contest/api/internal/adapters/repository/postgres"
	"github.com/contest/api/internal/config"
	"github.com/contest/api/internal/core/services"
	_ "github.com/lib/pq"
)

func main() {
	config.LoadEnv()

	var connStr, redisAddr, redisPassword string
	flag.StringVar(&connStr, "postgres", config.PostgresConnString(), "Postgres connection string")
	flag.StringVar(&redisAddr, "redis", config.RedisAddr(), "Redis address")
	flag.StringVar(&redisPassword, "redis-password", config.RedisPassword(), "Redis password")
	flag.Parse()

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	redisClient, err := rediscache.NewClient(ctx, redisAddr, redisPassword)
	if err != nil {
		log.Fatal(err)
	}
	defer redisClient.Close()

	tallyService := services.NewTallyService(
		postgres.NewParticipantRepository(db),
		rediscache.NewTallyCache(redisClient),
	)

	log.Println("Starting tally cache resync...")

	if err := tallyService.Rebuild(ctx); err != nil {
		log.Fatalf("Error rebuilding tally cache: %v", err)
	}

	log.Println("Tally cache resync completed successfully.")
}
