package db

import (
	"database/sql"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	conn.SetMaxOpenConns(1)

	gdb, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect gorm: %v", err)
	}
	return &Database{db: gdb}
}

func TestHealthCheck(t *testing.T) {
	d := newTestDatabase(t)

	if !d.HealthCheck() {
		t.Error("expected health check to pass on an open connection")
	}

	if err := d.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.HealthCheck() {
		t.Error("expected health check to fail after the pool is closed")
	}
}
