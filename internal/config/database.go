package config

import (
	"fmt"
)

// PostgresDSN builds the keyword/value DSN for the postgres driver from the
// database configuration.
func PostgresDSN(cfg DatabaseConfig) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	dbname := cfg.Database
	if dbname == "" {
		dbname = "watchtrack"
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		host, cfg.Username, cfg.Password, dbname, port)
}

// DatabaseURL returns a URL form of the database location, used for
// logging and the database status endpoint.
func DatabaseURL(cfg DatabaseConfig) string {
	switch cfg.Type {
	case "postgres":
		url := "postgres://"
		if cfg.Username != "" {
			url += cfg.Username + "@"
		}
		url += cfg.Host
		if cfg.Port != 0 && cfg.Port != 5432 {
			url += fmt.Sprintf(":%d", cfg.Port)
		}
		return url + "/" + cfg.Database
	default:
		return "sqlite://" + cfg.DatabasePath
	}
}
