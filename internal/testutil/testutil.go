package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/aura-backend/internal/api"
	"github.com/dom/aura-backend/internal/api/handlers"
	"github.com/dom/aura-backend/internal/config"
	"github.com/dom/aura-backend/internal/logger"
	"github.com/dom/aura-backend/internal/repository"
	"github.com/dom/aura-backend/internal/repository/memory"
	repoPostgres "github.com/dom/aura-backend/internal/repository/postgres"
	"github.com/dom/aura-backend/internal/service"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	Conn      *repoPostgres.Connection
	DB        *gorm.DB
	DSN       string
}

// NewTestDB starts a PostgreSQL container, applies the migrations and returns
// a connection. Skipped in -short mode.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres-backed test in short mode")
	}

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:16-alpine",
		tcPostgres.WithDatabase("test_aura"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	conn, err := repoPostgres.NewConnection(ctx, dsn, repoPostgres.Options{MaxConns: 8, Migrate: true}, logger.NewNop())
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		Conn:      conn,
		DB:        conn.DB,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup closes the connection and terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Conn != nil {
		tdb.Conn.Close()
	}
	if tdb.Container != nil {
		_ = tdb.Container.Terminate(context.Background())
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	for _, table := range []string{"profiles", "users"} {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Environment:        "test",
		CORSAllowedOrigins: []string{"*"},
		Storage:            config.StorageMemory,
		JWTSecret:          "test-jwt-secret-key-for-testing-only",
		JWTExpirationHours: 7 * 24,
		BcryptCost:         bcrypt.MinCost,
		LogMode:            "development",
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer creates a test server backed by in-memory repositories
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return newTestServer(t, nil, memory.NewRepositories())
}

// NewPostgresTestServer creates a test server backed by a PostgreSQL container
func NewPostgresTestServer(t *testing.T) *TestServer {
	t.Helper()
	testDB := NewTestDB(t)
	return newTestServer(t, testDB, repoPostgres.NewRepositories(testDB.DB))
}

func newTestServer(t *testing.T, testDB *TestDB, repos *repository.Repositories) *TestServer {
	cfg := TestConfig()
	log := logger.NewNop()

	var store handlers.Pinger
	if testDB != nil {
		store = testDB.Conn
	}

	services := service.NewServices(repos, cfg, log)
	router := api.NewRouter(services, store, cfg, log)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api%s", ts.Server.URL, path)
}
