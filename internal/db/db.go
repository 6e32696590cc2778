package db

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Database wraps the SQL connection pool shared by the API and the worker.
type Database struct {
	*sql.DB
}

// New opens a MariaDB pool, applies the pool limits and verifies
// connectivity with a ping before handing it out.
func New(dsn string, maxOpen, maxIdle int, connMaxLifetime time.Duration) (*Database, error) {
	pool, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(maxOpen)
	pool.SetMaxIdleConns(maxIdle)
	pool.SetConnMaxLifetime(connMaxLifetime)

	if err := pool.Ping(); err != nil {
		if cErr := pool.Close(); cErr != nil {
			return nil, cErr
		}
		return nil, err
	}
	return &Database{pool}, nil
}
