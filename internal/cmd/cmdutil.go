package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/bjarke-xyz/app-tracker/internal/domain"
	"github.com/bjarke-xyz/app-tracker/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/api/option"
)

func newLogger(service string) *slog.Logger {
	env := os.Getenv("ENV")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	child := logger.With(slog.Group("service_info", slog.String("env", env), slog.String("service", service)))
	return child
}

type stores struct {
	users        domain.UserRepository
	categories   domain.CategoryRepository
	applications domain.ApplicationRepository
	close        func()
}

// openStores connects to the backend named by cfg.DatabaseURL. The returned
// close func releases the connection.
func openStores(ctx context.Context, cfg config, logger *slog.Logger) (stores, error) {
	u, err := url.Parse(cfg.DatabaseURL)
	if err != nil {
		return stores{}, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	switch u.Scheme {
	case "memory":
		logger.Warn("using in-memory storage, data is lost on restart")
		mem := repository.NewMemory()
		return stores{
			users:        mem.Users(),
			categories:   mem.Categories(),
			applications: mem.Applications(),
			close:        func() {},
		}, nil
	case "postgres", "postgresql":
		pool, err := newDatabasePool(ctx, cfg.DatabaseURL, 16)
		if err != nil {
			return stores{}, fmt.Errorf("error creating db pool: %w", err)
		}
		return stores{
			users:        repository.NewPostgresUser(pool),
			categories:   repository.NewPostgresCategory(pool),
			applications: repository.NewPostgresApp(pool),
			close:        pool.Close,
		}, nil
	case "firestore":
		app, err := newFirebaseApp(ctx, u.Host, cfg.CredentialsJSON)
		if err != nil {
			return stores{}, fmt.Errorf("error initializing app: %w", err)
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return stores{}, fmt.Errorf("error creating firestore client: %w", err)
		}
		return stores{
			users:        repository.NewFirestoreUser(client),
			categories:   repository.NewFirestoreCategory(client),
			applications: repository.NewFirestoreApp(client),
			close: func() {
				if err := client.Close(); err != nil {
					logger.Error("failed to close firestore client", "error", err)
				}
			},
		}, nil
	default:
		return stores{}, fmt.Errorf("unsupported DATABASE_URL scheme %q", u.Scheme)
	}
}

func newFirebaseApp(ctx context.Context, projectID string, credentialsJson string) (*firebase.App, error) {
	opts := make([]option.ClientOption, 0, 1)
	if credentialsJson != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJson)))
	}
	var fbConfig *firebase.Config
	if projectID != "" {
		fbConfig = &firebase.Config{ProjectID: projectID}
	}
	return firebase.NewApp(ctx, fbConfig, opts...)
}

func newDatabasePool(ctx context.Context, unformattedConnStr string, maxConns int) (*pgxpool.Pool, error) {
	if maxConns == 0 {
		maxConns = 1
	}
	err := repository.Migrate(repository.MigrateUp, unformattedConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	queryChar := "?"
	if strings.Contains(unformattedConnStr, "?") {
		queryChar = "&"
	}
	connStr := fmt.Sprintf(
		"%s%vpool_max_conns=%d&pool_min_conns=%d",
		unformattedConnStr,
		queryChar,
		maxConns,
		2,
	)
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, err
	}

	// Setting the build statement cache to nil helps this work with pgbouncer
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	config.MaxConnLifetime = 1 * time.Hour
	config.MaxConnIdleTime = 30 * time.Second
	return pgxpool.NewWithConfig(ctx, config)
}
