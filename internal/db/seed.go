package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// ApplySeeds opens a connection to the database and applies all pending
// seed files from the given directory. Used by the setup binary to stand
// up the Quartz table set on a development database.
func ApplySeeds(databaseURL, seedsDir string) error {
	conn, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	if err := goose.Up(conn, seedsDir); err != nil {
		return fmt.Errorf("apply seeds: %w", err)
	}

	return nil
}
