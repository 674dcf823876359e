package database

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/url"
	"strconv"
	"telemed-service/internal/app/config"
	"time"

	_ "github.com/lib/pq"
)

// postgresDSN renders the lib/pq URL form so credentials with reserved
// characters survive without manual quoting.
func postgresDSN(cfg config.PostgresDB) string {
	query := url.Values{}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	query.Set("sslmode", sslMode)
	if cfg.ConnectTimeoutInSeconds > 0 {
		query.Set("connect_timeout", strconv.Itoa(cfg.ConnectTimeoutInSeconds))
	}
	if cfg.ApplicationName != "" {
		query.Set("application_name", cfg.ApplicationName)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.DBName,
		RawQuery: query.Encode(),
	}
	return dsn.String()
}

func NewPostgresDB(driverConfig *config.DriverConfig) *sql.DB {
	cfg := driverConfig.PostgresDB

	db, err := sql.Open("postgres", postgresDSN(cfg))
	if err != nil {
		log.Fatalf("Failed to open postgres database connection: %s", err.Error())
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeInMinutes) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout(cfg.ConnectTimeoutInSeconds))
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to postgres database %s at %s:%s: %s", cfg.DBName, cfg.Host, cfg.Port, err.Error())
	}

	log.Printf("Successfully connected to postgres database %s (max open conns %d)", cfg.DBName, cfg.MaxOpenConns)

	return db
}

func connectTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(seconds) * time.Second
}
