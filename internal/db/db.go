// Caminho: internal/db/db.go
// Resumo: Conexão com o banco de dados relacional a partir de DATABASE_URL.
// Suporta Postgres (pgx) e SQLite (modernc, sem cgo).

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registra driver pgx
	_ "modernc.org/sqlite"             // registra driver sqlite puro Go
)

// Connect estabelece a conexão com o banco de dados a partir de DATABASE_URL.
func Connect(databaseURL string) (*sql.DB, error) {
	driver, dsn := ParseDSN(databaseURL)
	sqldb, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	setCurrentDriver(driver)
	return sqldb, nil
}
