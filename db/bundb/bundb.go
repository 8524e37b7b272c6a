// db/bundb/bundb.go
package bundb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/ss13hub/banwatch/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
)

// ErrConnection indicates the store could not be reached. At startup this is
// fatal; later connection trouble surfaces through query errors instead.
var ErrConnection = errors.New("cannot connect to the ban database")

// DBService owns the bun handle over the MySQL ban database.
type DBService struct {
	db *bun.DB
}

// GetDB returns the underlying database connection pool.
func (s *DBService) GetDB() *bun.DB {
	return s.db
}

// Close releases the connection pool.
func (s *DBService) Close() error {
	return s.db.Close()
}

// NewBunDBService connects to MySQL with the configured credentials and
// wraps the pool in bun. The connection is pinged before use so an
// unreachable store fails here, not on the first lookup.
func NewBunDBService(ctx context.Context, cfg config.DatabaseConfig) (*DBService, error) {
	sqldb, err := mysqlConn(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &DBService{db: bun.NewDB(sqldb, mysqldialect.New())}, nil
}

func mysqlConn(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	addr, dbName, ok := strings.Cut(cfg.URL, "/")
	if !ok {
		return nil, fmt.Errorf("database url %q must be host:port/dbname", cfg.URL)
	}

	dsn := mysql.NewConfig()
	dsn.Net = "tcp"
	dsn.Addr = addr
	dsn.DBName = dbName
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.ParseTime = true

	connector, err := mysql.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	sqldb := sql.OpenDB(connector)
	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	return sqldb, nil
}
