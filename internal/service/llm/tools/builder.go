package tools

import (
	"log/slog"

	"docit/internal/domain/repositories"
)

// ToolRegistryBuilder provides a fluent API for building tool registries.
type ToolRegistryBuilder struct {
	registry *ToolRegistry
	config   *ToolConfig
}

// NewToolRegistryBuilder creates a new builder with a fresh registry.
func NewToolRegistryBuilder() *ToolRegistryBuilder {
	return &ToolRegistryBuilder{
		registry: NewToolRegistry(),
		config:   DefaultToolConfig(),
	}
}

// WithConfig sets custom tool configuration.
// If not called, defaults will be used.
func (b *ToolRegistryBuilder) WithConfig(config *ToolConfig) *ToolRegistryBuilder {
	if config != nil {
		b.config = config
	}
	return b
}

// WithOrganizerTools registers getAllFolders, getAllLists and getAllItems
// scoped to userID. Build a fresh registry per request.
func (b *ToolRegistryBuilder) WithOrganizerTools(
	userID string,
	folderRepo repositories.FolderRepository,
	listRepo repositories.ListRepository,
	itemRepo repositories.ItemRepository,
	logger *slog.Logger,
) *ToolRegistryBuilder {
	b.registry.Register(NewFoldersTool(userID, folderRepo, b.config, logger))
	b.registry.Register(NewListsTool(userID, listRepo, b.config, logger))
	b.registry.Register(NewItemsTool(userID, itemRepo, b.config, logger))
	return b
}

// Build returns the constructed tool registry.
func (b *ToolRegistryBuilder) Build() *ToolRegistry {
	return b.registry
}
