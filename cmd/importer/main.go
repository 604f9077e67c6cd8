package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"clinic-access-api/internal/config"
	"clinic-access-api/internal/repository"

	"github.com/jackc/pgx/v5"
)

func main() {
	file := flag.String("file", "", "Path to the location JSON file to import (defaults to LOCATIONS_FILE)")
	flag.Parse()

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *file == "" {
		*file = cfg.LocationsFile
	}
	if cfg.DBSource == "" {
		fmt.Println("Error: DB_SOURCE is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	files, err := repository.NewFileRepository(repository.FilePaths{Locations: *file}, cfg.FileEncoding)
	if err != nil {
		fmt.Printf("Error setting up reader: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	locations, err := files.LoadLocations(ctx)
	if err != nil {
		fmt.Printf("Error parsing locations: %v\n", err)
		os.Exit(1)
	}

	expected := locations.ClinicCount()
	fmt.Printf("Parsed %d clinics in %d states\n", expected, len(locations))

	// Connect to DB
	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	repo := repository.NewPostgresRepository(conn)

	// Ensure table exists
	if err := repo.EnsureSchema(ctx); err != nil {
		fmt.Printf("Error creating table: %v\n", err)
		os.Exit(1)
	}

	// The dataset is a snapshot, so replace whatever was imported before
	if err := repo.Truncate(ctx); err != nil {
		fmt.Printf("Error clearing table: %v\n", err)
		os.Exit(1)
	}

	n, err := repo.ImportLocations(ctx, locations)
	if err != nil {
		fmt.Printf("Error inserting clinics: %v\n", err)
		os.Exit(1)
	}

	// Verify data
	count, err := repo.CountClinics(ctx)
	if err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}
	if count != expected {
		fmt.Printf("Error verifying import: record count mismatch: expected %d, got %d\n", expected, count)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d clinics\n", n)
}
