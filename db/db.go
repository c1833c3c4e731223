package db

import (
	"database/sql"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/ignisVeneficus/bistro/config"
	"github.com/ignisVeneficus/bistro/config/database"
	"github.com/rs/zerolog/log"
)

var (
	pool *sql.DB
	once sync.Once
)

// DSN renders cfg for the mysql driver.
func DSN(cfg database.DatabaseConfig, multipleQuery bool) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = cfg.Addr()
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.MultiStatements = multipleQuery
	return mc.FormatDSN()
}

func Open(cfg database.DatabaseConfig, multipleQuery bool) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg, multipleQuery))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func connectToDatabase(cfg database.DatabaseConfig, multipleQuery bool) *sql.DB {
	db, err := Open(cfg, multipleQuery)
	if err != nil {
		log.Logger.Fatal().Err(err).Str("addr", cfg.Addr()).Msg("Connect to database")
	}
	return db
}

func GetDatabase() *sql.DB {
	once.Do(func() {
		pool = connectToDatabase(config.Global().Database, false)
	})
	return pool
}

// GetDatabaseMulti opens a separate handle that accepts multi-statement scripts.
func GetDatabaseMulti() *sql.DB {
	return connectToDatabase(config.Global().Database, true)
}
