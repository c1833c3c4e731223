package db

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/ignisVeneficus/bistro/config/database"
)

func TestDSN(t *testing.T) {
	cfg := database.DatabaseConfig{Host: "db.local", Port: 3307, Name: "bistro", User: "chef", Password: "p@ss:word"}

	for _, multi := range []bool{false, true} {
		dsn := DSN(cfg, multi)
		parsed, err := mysql.ParseDSN(dsn)
		if err != nil {
			t.Fatalf("ParseDSN(%q): %v", dsn, err)
		}
		if parsed.User != "chef" || parsed.Passwd != "p@ss:word" {
			t.Errorf("credentials = %q/%q", parsed.User, parsed.Passwd)
		}
		if parsed.Addr != "db.local:3307" || parsed.DBName != "bistro" {
			t.Errorf("addr/db = %q/%q", parsed.Addr, parsed.DBName)
		}
		if !parsed.ParseTime {
			t.Errorf("parseTime not set")
		}
		if parsed.MultiStatements != multi {
			t.Errorf("multiStatements = %v, want %v", parsed.MultiStatements, multi)
		}
	}
}
