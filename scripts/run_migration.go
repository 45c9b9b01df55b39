package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	dir := flag.String("dir", "scripts/migrations", "directory holding *.sql migrations")
	seedName := flag.String("seed-name", "User", "name of the seeded user")
	seedEmail := flag.String("seed-email", "", "create a dashboard user with this email")
	seedPassword := flag.String("seed-password", "", "password for the seeded user")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment variables.")
	}

	// Get database URL
	dbURL := os.Getenv("POSTGRES_URL")
	if dbURL == "" {
		log.Fatalf("POSTGRES_URL environment variable not set")
	}

	ctx := context.Background()

	// Connect to database
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	files, err := filepath.Glob(filepath.Join(*dir, "*.sql"))
	if err != nil {
		log.Fatalf("Unable to list migrations: %v", err)
	}
	sort.Strings(files)

	for _, file := range files {
		migrationSQL, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("Unable to read migration file: %v", err)
		}
		if _, err := pool.Exec(ctx, string(migrationSQL)); err != nil {
			log.Fatalf("Failed to execute migration %s: %v", file, err)
		}
		fmt.Printf("Applied %s\n", filepath.Base(file))
	}

	if *seedEmail != "" {
		if err := seedUser(ctx, pool, *seedName, *seedEmail, *seedPassword); err != nil {
			log.Fatalf("Failed to seed user: %v", err)
		}
		fmt.Printf("Seeded user %s\n", *seedEmail)
	}

	fmt.Println("Migration successfully executed!")
}

// seedUser inserts a user with a bcrypt password hash, skipping existing emails
func seedUser(ctx context.Context, pool *pgxpool.Pool, name, email, password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING`,
		uuid.NewString(), name, email, string(hash))
	return err
}
