package api

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/YouWantToPinch/pincher-notes/internal/auth"
	"github.com/YouWantToPinch/pincher-notes/internal/database"
)

const (
	defaultPort        = "5001"
	defaultFrontendURL = "*"
	// accessTokenTTL is how long an issued token stays valid.
	accessTokenTTL = time.Hour
	// signingAlgorithm is the only algorithm tokens are minted or accepted with.
	signingAlgorithm = "HS256"
)

type APIConfig struct {
	db          database.Querier
	sqlDB       *sql.DB
	dbURL       string
	platform    string
	secret      string
	port        string
	frontendURL string
	hashAlgo    auth.HashAlgorithm
	logger      *slog.Logger
}

// Init reads configuration from the environment, after loading envPath
// as a .env file when given. altDBUrl overrides every DB_* variable.
// A missing JWT_SECRET is a startup error.
func (cfg *APIConfig) Init(envPath string, altDBUrl string) error {
	// get environment variables
	if len(envPath) != 0 {
		_ = godotenv.Load(envPath)
	}

	cfg.platform = os.Getenv("PLATFORM")
	cfg.secret = os.Getenv("JWT_SECRET")
	cfg.port = envOrDefault("PORT", defaultPort)
	cfg.frontendURL = envOrDefault("FRONTEND_URL", defaultFrontendURL)

	switch {
	case len(altDBUrl) != 0:
		cfg.dbURL = altDBUrl
	case len(os.Getenv("DB_URL")) != 0:
		cfg.dbURL = os.Getenv("DB_URL")
	default:
		cfg.GenerateDBConnectionString()
	}

	{
		slogLevel := os.Getenv("SLOG_LEVEL")
		switch slogLevel {
		case "DEBUG":
			cfg.NewLogger(slog.LevelDebug)
		case "WARN":
			cfg.NewLogger(slog.LevelWarn)
		case "ERROR":
			cfg.NewLogger(slog.LevelError)
		default:
			cfg.NewLogger(slog.LevelInfo)
		}
	}

	if cfg.secret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	algo, err := auth.ParseHashAlgorithm(os.Getenv("PASSWORD_HASH"))
	if err != nil {
		return err
	}
	cfg.hashAlgo = algo

	return nil
}

func (cfg *APIConfig) NewLogger(level slog.Level) {
	cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout,
		&slog.HandlerOptions{Level: level}))
	slog.SetDefault(cfg.logger)
}

func envOrDefault(envVar string, defaultVal string) string {
	envVal := os.Getenv(envVar)
	if len(envVal) == 0 {
		envVal = defaultVal
	}
	return envVal
}

func (cfg *APIConfig) GenerateDBConnectionString() *string {
	dbUser := envOrDefault("DB_USER", "postgres")
	dbPassword := envOrDefault("DB_PASSWORD", "postgres")
	dbHost := envOrDefault("DB_HOST", "localhost")
	dbPort := envOrDefault("DB_PORT", "5432")
	dbName := envOrDefault("DB_NAME", "notes")

	cfg.dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser,
		dbPassword,
		dbHost,
		dbPort,
		dbName,
	)
	return &cfg.dbURL
}

// Addr is the listen address for the configured port.
func (cfg *APIConfig) Addr() string {
	return ":" + cfg.port
}

// ConnectToDB opens the shared connection pool, applies migrations and
// hands the pool to the query layer. It is called once at startup.
func (cfg *APIConfig) ConnectToDB(ctx context.Context, fs embed.FS, migrationsDir string) error {
	db, err := sql.Open("postgres", cfg.dbURL)
	if err != nil {
		return fmt.Errorf("could not open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("could not reach database: %w", err)
	}

	// Default to relative directory so tests know where to find migrations
	// Otherwise, use embedded directory in a compiled binary context
	if len(migrationsDir) == 0 {
		migrationsDir = "../../sql/schema"
	} else {
		goose.SetBaseFS(fs)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return err
	}

	if err = goose.UpContext(ctx, db, migrationsDir); err != nil {
		db.Close()
		return fmt.Errorf("could not apply database migrations with goose: %w", err)
	}

	cfg.sqlDB = db
	cfg.db = database.New(db)
	return nil
}

// Close releases the connection pool opened by ConnectToDB.
func (cfg *APIConfig) Close() error {
	if cfg.sqlDB == nil {
		return nil
	}
	return cfg.sqlDB.Close()
}
