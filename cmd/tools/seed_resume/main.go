// Command seed_resume loads a JSON Resume file and saves it as a new version
// for a user.
//
// Usage:
//
//	go run cmd/tools/seed_resume/main.go -user demo -file resume.json
//
// Requires DATABASE_URL environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/KalebGordon/Rivoney/internal/resume"
	"github.com/KalebGordon/Rivoney/internal/store"
)

func main() {
	_ = godotenv.Load()

	userID := flag.String("user", "demo", "User to save the resume for")
	file := flag.String("file", "", "Path to a JSON Resume file")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "ERROR: -file is required")
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read %s: %v\n", *file, err)
		os.Exit(1)
	}

	doc, err := resume.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Invalid resume document: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pg, err := store.ConnectPostgres(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	result, err := pg.Save(ctx, *userID, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to save resume: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Saved resume for %s as version %d\n", *userID, result.Version)
}
