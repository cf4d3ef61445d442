// Caminho: internal/db/dsn.go
// Resumo: Utilidades para interpretar DATABASE_URL e produzir DSN apropriado para drivers suportados.

package db

import (
	"fmt"
	"net/url"
	"strings"
)

// Driver representa os drivers suportados.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "pgx"
)

// sqlitePragmas habilita FK e busy timeout; o CHECK/UNIQUE/FK do schema é o ponto
// de aplicação das invariantes, então foreign_keys precisa estar ligado por conexão.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// ParseDSN interpreta DATABASE_URL e retorna o driver e o DSN compatível com database/sql.
// Suporta esquemas: sqlite:///path.db e postgres://...
func ParseDSN(databaseURL string) (Driver, string) {
	if databaseURL == "" {
		// Default para SQLite em arquivo local
		return DriverSQLite, fmt.Sprintf("file:api_produtos.db?cache=shared&mode=rwc&%s", sqlitePragmas)
	}

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// Formatos aceitos: sqlite:///absolute/path.db ou sqlite://relative/path.db
		u := strings.TrimPrefix(databaseURL, "sqlite://")
		u = strings.TrimPrefix(u, "/") // aceita com 3 barras
		return DriverSQLite, fmt.Sprintf("file:%s?cache=shared&mode=rwc&%s", u, sqlitePragmas)
	}

	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		// pgx aceita DSN URL nativamente
		return DriverPostgres, databaseURL
	}

	if u, err := url.Parse(databaseURL); err == nil && u.Scheme != "" {
		switch u.Scheme {
		case "sqlite":
			path := strings.TrimPrefix(databaseURL, "sqlite://")
			path = strings.TrimPrefix(path, "/")
			return DriverSQLite, fmt.Sprintf("file:%s?cache=shared&mode=rwc&%s", path, sqlitePragmas)
		case "postgres", "postgresql":
			return DriverPostgres, databaseURL
		}
	}

	// Fallback: tratar como caminho de arquivo SQLite
	return DriverSQLite, fmt.Sprintf("file:%s?cache=shared&mode=rwc&%s", databaseURL, sqlitePragmas)
}
