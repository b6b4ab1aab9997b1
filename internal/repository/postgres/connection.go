package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dom/aura-backend/internal/logger"
	"github.com/dom/aura-backend/internal/repository"
	"github.com/dom/aura-backend/internal/repository/postgres/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connection bundles the pgx pool with the database/sql and gorm handles
// layered on top of it. All three share the same underlying connections.
type Connection struct {
	Pool *pgxpool.Pool
	SQL  *sql.DB
	DB   *gorm.DB
}

type Options struct {
	MaxConns int32
	Migrate  bool
}

func NewConnection(ctx context.Context, databaseURL string, opts Options, log *logger.Logger) (*Connection, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if opts.MaxConns > 0 {
		poolCfg.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	if opts.Migrate {
		if err := Migrate(ctx, sqlDB, log); err != nil {
			sqlDB.Close()
			pool.Close()
			return nil, err
		}
	}

	db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: newGormLogger(log),
	})
	if err != nil {
		sqlDB.Close()
		pool.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	return &Connection{Pool: pool, SQL: sqlDB, DB: db}, nil
}

// Migrate applies every pending embedded migration.
func Migrate(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, res := range results {
		log.Info("applied migration",
			"version", res.Source.Version,
			"path", res.Source.Path,
			"duration", res.Duration,
		)
	}
	return nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.Pool.Ping(ctx)
}

func (c *Connection) Close() {
	_ = c.SQL.Close()
	c.Pool.Close()
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:    NewUserRepository(db),
		Profile: NewProfileRepository(db),
	}
}
