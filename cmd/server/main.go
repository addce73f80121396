package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"docit/internal/auth"
	"docit/internal/capabilities"
	"docit/internal/config"
	"docit/internal/domain/models"
	llmRepo "docit/internal/domain/repositories/llm"
	"docit/internal/handler"
	"docit/internal/middleware"
	"docit/internal/repository"
	"docit/internal/repository/firestore"
	"docit/internal/repository/transcript"
	"docit/internal/service/account"
	serviceAuth "docit/internal/service/auth"
	"docit/internal/service/billing"
	"docit/internal/service/content"
	"docit/internal/service/events"
	serviceLLM "docit/internal/service/llm"
	"docit/internal/service/organizer"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logWriter, closeLog, err := config.LogWriter(cfg)
	if err != nil {
		log.Fatalf("Failed to set up log file: %v", err)
	}
	defer closeLog()

	logger := config.NewLogger(cfg, logWriter)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"auth_provider", cfg.AuthProvider,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage backend
	backend, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open %s backend: %v", cfg.StoreBackend, err)
	}
	defer backend.Close()

	if err := backend.ApplySchema(ctx); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	// Identity provider
	verifier, admin, err := setupAuth(ctx, cfg, backend, logger)
	if err != nil {
		log.Fatalf("Failed to set up %s auth: %v", cfg.AuthProvider, err)
	}
	defer verifier.Close()

	// Transcripts live in Redis when configured, else in process memory
	transcripts, transcriptCheck, err := setupTranscripts(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to set up transcript store: %v", err)
	}

	// Organizer services
	hub := events.NewHub(logger)
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(backend.Folders, backend.Lists, backend.Items)
	folderService := organizer.NewFolderService(backend.Folders, backend.Lists, backend.Items, backend.Tx, authorizer, hub, logger)
	listService := organizer.NewListService(backend.Lists, backend.Items, backend.Tx, authorizer, hub, logger)
	itemService := organizer.NewItemService(backend.Items, authorizer, hub, models.ParseCountFloor(cfg.CountFloor), logger)

	// Editor content with periodic draft flushing
	sanitizer := content.NewHTMLSanitizer()
	markdown := content.NewMarkdownConverter(sanitizer)
	contentService := content.NewContentService(backend.Items, authorizer, sanitizer, markdown, hub, logger)
	autoSaver := content.NewAutoSaver(contentService, cfg.AutoSaveInterval, logger)
	autoSaveDone := make(chan struct{})
	go func() {
		defer close(autoSaveDone)
		autoSaver.Run(ctx)
	}()

	// Initialize capability registry
	capabilityRegistry, err := capabilities.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize capability registry: %v", err)
	}
	logger.Info("capability registry initialized")

	// Setup LLM providers
	providerRegistry, err := serviceLLM.SetupProviders(cfg, capabilityRegistry, logger)
	if err != nil {
		log.Fatalf("Failed to setup LLM providers: %v", err)
	}
	chatService := serviceLLM.SetupChatService(
		cfg,
		providerRegistry,
		transcripts,
		backend.Folders,
		backend.Lists,
		backend.Items,
		markdown,
		logger,
	)

	billingService := billing.NewBillingService(backend.Billing, billing.Config{
		Timeout:      cfg.CheckoutTimeout,
		PollInterval: cfg.CheckoutPollInterval,
	}, logger)
	accountService := account.NewAccountService(backend.Users, folderService, transcripts, admin, logger)

	logger.Info("services initialized")

	healthChecks := map[string]handler.HealthCheck{"database": backend.Ping}
	if transcriptCheck != nil {
		healthChecks["transcripts"] = transcriptCheck
	}

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, &handler.Handlers{
		Health:  handler.NewHealthHandler(healthChecks, logger),
		Account: handler.NewAccountHandler(accountService, logger),
		Folder:  handler.NewFolderHandler(folderService, logger),
		List:    handler.NewListHandler(listService, logger),
		Item:    handler.NewItemHandler(itemService, logger),
		Content: handler.NewContentHandler(contentService, logger),
		Chat:    handler.NewChatHandler(chatService, logger),
		Models:  handler.NewModelsHandler(chatService, capabilityRegistry, logger),
		Billing: handler.NewBillingHandler(billingService, logger),
		Events:  handler.NewEventsHandler(hub, logger),
	})

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.AuthMiddleware(verifier, logger, "/health")(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     h,
		ReadTimeout: 15 * time.Second,
		// Disabled: chat replies wait on the model and checkout waits on
		// the payments extension, and /api/events is long-lived
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	// the auto-saver flushes pending drafts once ctx is done
	<-autoSaveDone
	logger.Info("server stopped")
}

// setupAuth builds the token verifier and the admin client for the
// configured identity provider
func setupAuth(ctx context.Context, cfg *config.Config, backend *repository.Backend, logger *slog.Logger) (auth.TokenVerifier, auth.IdentityAdmin, error) {
	switch cfg.AuthProvider {
	case "firebase":
		app := backend.FirebaseApp
		if app == nil {
			var err error
			if app, err = firestore.NewApp(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredsFile); err != nil {
				return nil, nil, err
			}
		}
		verifier, admin, err := auth.NewFirebaseAuth(ctx, app, logger)
		if err != nil {
			return nil, nil, err
		}
		return verifier, admin, nil
	case "supabase":
		if cfg.SupabaseURL == "" {
			return nil, nil, errors.New("SUPABASE_URL is required for supabase auth")
		}
		verifier, err := auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return verifier, auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey), nil
	default:
		return nil, nil, errors.New("unknown AUTH_PROVIDER " + cfg.AuthProvider)
	}
}

// setupTranscripts returns the transcript store and, for Redis, its
// health check
func setupTranscripts(cfg *config.Config, logger *slog.Logger) (llmRepo.TranscriptStore, handler.HealthCheck, error) {
	if cfg.RedisURL == "" {
		logger.Info("transcripts kept in memory", "cache_size", cfg.TranscriptCacheSize, "ttl", cfg.TranscriptTTL.String())
		return transcript.NewMemoryStore(cfg.TranscriptCacheSize, cfg.TranscriptTTL, cfg.TranscriptMaxMessages), nil, nil
	}

	store, err := transcript.NewRedisStore(cfg.RedisURL, cfg.TranscriptTTL, cfg.TranscriptMaxMessages)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("transcripts kept in redis", "ttl", cfg.TranscriptTTL.String())
	return store, store.Ping, nil
}
