package llm

import (
	"fmt"
	"log/slog"

	"docit/internal/capabilities"
	"docit/internal/config"
	"docit/internal/domain/repositories"
	llmRepo "docit/internal/domain/repositories/llm"
	llmSvc "docit/internal/domain/services/llm"
	"docit/internal/service/llm/chat"
)

// SetupProviders builds the provider registry and checks that the default
// model can be served.
func SetupProviders(cfg *config.Config, caps *capabilities.Registry, logger *slog.Logger) (*ProviderRegistry, error) {
	factory := NewProviderFactory(cfg)
	registry := NewProviderRegistry(factory, caps)

	if err := registry.Validate(cfg.DefaultModel); err != nil {
		return nil, fmt.Errorf("provider registry validation failed: %w", err)
	}

	for name, ok := range factory.Available() {
		if ok {
			logger.Info("provider available", "name", name)
		}
	}
	if cfg.AnthropicAPIKey == "" {
		logger.Warn("ANTHROPIC_API_KEY not set - Anthropic provider not available")
	}

	return registry, nil
}

// SetupChatService wires the assistant to the organizer repositories
func SetupChatService(
	cfg *config.Config,
	registry *ProviderRegistry,
	transcripts llmRepo.TranscriptStore,
	folderRepo repositories.FolderRepository,
	listRepo repositories.ListRepository,
	itemRepo repositories.ItemRepository,
	markdown chat.MarkdownConverter,
	logger *slog.Logger,
) llmSvc.ChatService {
	return chat.NewService(
		transcripts,
		registry,
		llmSvc.NewConfigToolLimitResolver(cfg.ChatMaxToolRounds),
		folderRepo,
		listRepo,
		itemRepo,
		markdown,
		chat.Config{
			DefaultModel: cfg.DefaultModel,
			SystemPrompt: cfg.ChatSystemPrompt,
		},
		logger,
	)
}
