package llm

import "context"

// ToolLimitResolver resolves how many tool rounds a user's message may use
// before the model is forced to answer.
type ToolLimitResolver interface {
	GetToolRoundLimit(ctx context.Context, userID string) (int, error)
}

// ConfigToolLimitResolver returns a static limit for all users.
type ConfigToolLimitResolver struct {
	defaultLimit int
}

// NewConfigToolLimitResolver creates a resolver that returns the same limit
// for all users. Negative limits are treated as zero (no tools).
func NewConfigToolLimitResolver(defaultLimit int) *ConfigToolLimitResolver {
	if defaultLimit < 0 {
		defaultLimit = 0
	}
	return &ConfigToolLimitResolver{
		defaultLimit: defaultLimit,
	}
}

// GetToolRoundLimit returns the configured default limit for any user.
func (r *ConfigToolLimitResolver) GetToolRoundLimit(ctx context.Context, userID string) (int, error) {
	return r.defaultLimit, nil
}
