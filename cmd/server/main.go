package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	rediscache "github.com/contest/api/internal/adapters/cache/redis"
	"github.com/contest/api/internal/adapters/handler/http"
	"github.com/contest/api/internal/adapters/repository/postgres"
	"github.com/contest/api/internal/config"
	"github.com/contest/api/internal/core/services"
	_ "github.com/lib/pq"
)

func main() {
	config.LoadEnv()

	db, err := sql.Open("postgres", config.PostgresConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	redisClient, err := rediscache.NewClient(context.Background(), config.RedisAddr(), config.RedisPassword())
	if err != nil {
		log.Fatal(err)
	}
	defer redisClient.Close()

	participantRepo := postgres.NewParticipantRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	userRepo := postgres.NewUserRepository(db)
	tallyCache := rediscache.NewTallyCache(redisClient)

	jwtSecret := config.JWTSecret()
	participantService := services.NewParticipantService(participantRepo)
	voteService := services.NewVoteService(participantRepo, voteRepo, tallyCache)
	tallyService := services.NewTallyService(participantRepo, tallyCache)
	authService := services.NewAuthService(userRepo, jwtSecret)

	// The cache is disposable; bring it in line with the ledger before
	// serving. A failure here only delays freshness, it never blocks writes.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := tallyService.Rebuild(startupCtx); err != nil {
		log.Printf("warning: startup tally rebuild failed: %v", err)
	}
	cancelStartup()

	handler := http.NewHandler(
		http.NewAuthHandler(authService),
		http.NewParticipantHandler(participantService),
		http.NewVoteHandler(voteService),
		http.NewTallyHandler(tallyService),
		http.NewAuthMiddleware(jwtSecret),
	)

	addr := "0.0.0.0:" + config.GetEnv("PORT", "8080")
	server := &stdhttp.Server{Addr: addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
