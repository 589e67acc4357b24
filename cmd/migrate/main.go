// Command migrate applies the SQL migrations in lexical order and
// optionally seeds the first admin account from the environment.
package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"kakasaku_backend/internal/infra"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		logger.Fatal().Err(err).Msg("list migrations")
	}
	if len(files) == 0 {
		logger.Fatal().Str("dir", dir).Msg("no migration files found")
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			logger.Fatal().Err(err).Str("file", file).Msg("read migration")
		}
		if _, err := db.Exec(string(content)); err != nil {
			logger.Fatal().Err(err).Str("file", file).Msg("apply migration")
		}
		logger.Info().Str("file", file).Msg("migration applied")
	}

	if err := seedAdmin(db); err != nil {
		logger.Fatal().Err(err).Msg("seed admin")
	}

	logger.Info().Msg("migrations complete")
}

// seedAdmin inserts the bootstrap staff account when SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD are set. An existing account with that email is left
// untouched.
func seedAdmin(db *sql.DB) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	// Stored lowercased so the login lookup matches however the operator
	// typed the env var.
	_, err = db.Exec(
		`insert into admins (email, password_hash) values (lower($1), $2)
		 on conflict (lower(email)) do nothing`,
		email, string(hash),
	)
	if err != nil {
		return fmt.Errorf("insert seed admin: %w", err)
	}
	return nil
}
