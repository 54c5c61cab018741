package integration

import (
	"context"
	"database/sql"
	"fmt"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	rediscache "github.com/contest/api/internal/adapters/cache/redis"
	"github.com/contest/api/internal/adapters/handler/http"
	"github.com/contest/api/internal/adapters/repository/postgres"
	"github.com/contest/api/internal/core/domain"
	"github.com/contest/api/internal/core/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testJWTSecret = "test-secret"

type testApp struct {
	Server *httptest.Server
	Client *stdhttp.Client
	DB     *sql.DB
	Redis  *goredis.Client

	pgContainer    testcontainers.Container
	redisContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()

	pgContainer, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	redisContainer, redisURI, err := setupRedisContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	require.NoError(t, applyMigrations(db))

	opts, err := goredis.ParseURL(redisURI)
	require.NoError(t, err)
	redisClient := goredis.NewClient(opts)
	require.NoError(t, redisClient.Ping(ctx).Err())

	participantRepo := postgres.NewParticipantRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	userRepo := postgres.NewUserRepository(db)
	tallyCache := rediscache.NewTallyCache(redisClient)

	handler := http.NewHandler(
		http.NewAuthHandler(services.NewAuthService(userRepo, []byte(testJWTSecret))),
		http.NewParticipantHandler(services.NewParticipantService(participantRepo)),
		http.NewVoteHandler(services.NewVoteService(participantRepo, voteRepo, tallyCache)),
		http.NewTallyHandler(services.NewTallyService(participantRepo, tallyCache)),
		http.NewAuthMiddleware([]byte(testJWTSecret)),
	)

	server := httptest.NewServer(handler)

	return &testApp{
		Server:         server,
		Client:         server.Client(),
		DB:             db,
		Redis:          redisClient,
		pgContainer:    pgContainer,
		redisContainer: redisContainer,
	}
}

func (app *testApp) Teardown(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	app.Server.Close()
	app.Redis.Close()
	app.DB.Close()
	if err := app.redisContainer.Terminate(ctx); err != nil {
		t.Logf("failed to terminate redis container: %v", err)
	}
	if err := app.pgContainer.Terminate(ctx); err != nil {
		t.Logf("failed to terminate postgres container: %v", err)
	}
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func setupRedisContainer(ctx context.Context) (testcontainers.Container, string, error) {
	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		return nil, "", fmt.Errorf("failed to start redis container: %w", err)
	}

	uri, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		return nil, "", err
	}

	return redisContainer, uri, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func createUserAndToken(t *testing.T, db *sql.DB, role string) (uuid.UUID, string) {
	t.Helper()

	username := fmt.Sprintf("user-%s", uuid.New())
	var userID uuid.UUID
	err := db.QueryRow(
		"INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3) RETURNING id",
		username, "unused", role,
	).Scan(&userID)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  time.Now().Add(15 * time.Minute).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return userID, signedToken
}

func seedParticipant(t *testing.T, db *sql.DB, id int64, name, category string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO participants (id, name, category, photo, vote_count) VALUES ($1, $2, $3, $4, 0)",
		id, name, category, domain.PlaceholderPhotoURL,
	)
	require.NoError(t, err)
}
