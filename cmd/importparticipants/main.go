package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	"github.com/contest/api/internal/adapters/importer/jsonfile"
	"github.com/contest/api/internal/adapters/repository/postgres"
	"github.com/contest/api/internal/config"
	"github.com/contest/api/internal/core/services"
	_ "github.com/lib/pq"
)

func main() {
	config.LoadEnv()

	var filePath string
	flag.StringVar(&filePath, "file", "participants.json", "Path to the participants JSON file")
	flag.Parse()

	entries, err := jsonfile.Load(filePath)
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", config.PostgresConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	participantService := services.NewParticipantService(postgres.NewParticipantRepository(db))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	count, err := participantService.BulkReplace(ctx, entries)
	if err != nil {
		log.Fatalf("Error importing participants: %v", err)
	}

	log.Printf("%d participants imported. Run cmd/resync to refresh the tally cache.", count)
}
