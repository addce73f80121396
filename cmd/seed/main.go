package main

import (
	"context"
	"flag"
	"log"
	"os"

	"docit/internal/config"
	"docit/internal/domain/models"
	"docit/internal/repository"
	"docit/internal/repository/transcript"
	"docit/internal/seed"
	serviceAuth "docit/internal/service/auth"
	"docit/internal/service/content"
	"docit/internal/service/organizer"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	clearData := flag.Bool("clear-data", false, "Clear all data (keep schema)")
	userID := flag.String("user", "demo-user", "User id that owns the seeded folders")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	logger := config.NewLogger(cfg, os.Stdout)

	switch {
	case *clearData:
		log.Printf("🧹 Clearing data only (environment: %s, backend: %s)", cfg.Environment, cfg.StoreBackend)
	case *schemaOnly:
		log.Printf("🏗️  Setting up schema only (environment: %s, backend: %s)", cfg.Environment, cfg.StoreBackend)
	default:
		log.Printf("🌱 Seeding (environment: %s, backend: %s)", cfg.Environment, cfg.StoreBackend)
	}

	ctx := context.Background()
	backend, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open %s backend: %v", cfg.StoreBackend, err)
	}
	defer backend.Close()

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := backend.DropTables(ctx); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring schema is up to date...")
	if err := backend.ApplySchema(ctx); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		if err := backend.ClearData(ctx); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	// Create services
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(backend.Folders, backend.Lists, backend.Items)
	sanitizer := content.NewHTMLSanitizer()
	seeder := seed.NewSeeder(
		organizer.NewFolderService(backend.Folders, backend.Lists, backend.Items, backend.Tx, authorizer, nil, logger),
		organizer.NewListService(backend.Lists, backend.Items, backend.Tx, authorizer, nil, logger),
		organizer.NewItemService(backend.Items, authorizer, nil, models.ParseCountFloor(cfg.CountFloor), logger),
		content.NewContentService(backend.Items, authorizer, sanitizer, content.NewMarkdownConverter(sanitizer), nil, logger),
		backend.Billing,
		logger,
	)

	// Start from an empty tree so reruns do not duplicate folders
	if err := backend.ClearData(ctx); err != nil {
		log.Printf("Warning: Could not clear data: %v", err)
	}

	log.Println("📝 Seeding folders, lists and items...")
	created, err := seeder.SeedDemoTree(ctx, *userID)
	if err != nil {
		log.Fatalf("❌ Failed to seed demo tree: %v", err)
	}
	log.Printf("✅ Created %d items for user %s", created, *userID)

	log.Println("💳 Seeding subscription product...")
	if err := seeder.SeedProducts(ctx); err != nil {
		log.Fatalf("❌ Failed to seed product: %v", err)
	}

	// An in-memory transcript would die with this process
	if cfg.RedisURL != "" {
		store, err := transcript.NewRedisStore(cfg.RedisURL, cfg.TranscriptTTL, cfg.TranscriptMaxMessages)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer store.Close()
		if err := seed.SeedTranscript(ctx, store, *userID); err != nil {
			log.Fatalf("❌ Failed to seed transcript: %v", err)
		}
		log.Println("✅ Chat transcript seeded")
	}

	log.Println("🎉 Seeding complete!")
}
