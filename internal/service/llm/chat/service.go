// Package chat runs the assistant: the per-user transcript, the
// function-calling loop over the organizer tools and the one-shot summary.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docit/internal/config"
	"docit/internal/domain"
	"docit/internal/domain/models"
	llmModels "docit/internal/domain/models/llm"
	"docit/internal/domain/repositories"
	llmRepo "docit/internal/domain/repositories/llm"
	llmSvc "docit/internal/domain/services/llm"
	"docit/internal/service/llm/formatting"
	"docit/internal/service/llm/tools"
)

const (
	fallbackReply     = "Sorry, I don't have an answer for that."
	summarizerPrompt  = "Answer the user's request using only the outline of their folders, lists and items below."
	inlineDataHeading = "The user's folders, lists and items:"
)

// MarkdownConverter renders stored item HTML for the model
type MarkdownConverter interface {
	Convert(html string) (string, error)
}

// Config holds the assistant settings
type Config struct {
	DefaultModel string
	SystemPrompt string
	// MaxTokens caps each generation; zero uses the model's max output
	MaxTokens int
	// MaxHistory caps how many transcript messages are replayed
	MaxHistory int
}

var _ llmSvc.ChatService = (*Service)(nil)

// Service implements the ChatService interface
type Service struct {
	transcripts llmRepo.TranscriptStore
	models      llmSvc.ModelResolver
	limits      llmSvc.ToolLimitResolver
	folderRepo  repositories.FolderRepository
	listRepo    repositories.ListRepository
	itemRepo    repositories.ItemRepository
	markdown    MarkdownConverter
	toolConfig  *tools.ToolConfig
	cfg         Config
	logger      *slog.Logger

	mu      sync.Mutex
	pending map[string]bool
}

// NewService creates a new chat service
func NewService(
	transcripts llmRepo.TranscriptStore,
	models llmSvc.ModelResolver,
	limits llmSvc.ToolLimitResolver,
	folderRepo repositories.FolderRepository,
	listRepo repositories.ListRepository,
	itemRepo repositories.ItemRepository,
	markdown MarkdownConverter,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = config.MaxReplayedMessages
	}
	return &Service{
		transcripts: transcripts,
		models:      models,
		limits:      limits,
		folderRepo:  folderRepo,
		listRepo:    listRepo,
		itemRepo:    itemRepo,
		markdown:    markdown,
		toolConfig:  tools.DefaultToolConfig(),
		cfg:         cfg,
		logger:      logger,
		pending:     make(map[string]bool),
	}
}

// GetTranscript returns the caller's transcript, seeding the greeting on
// first use
func (s *Service) GetTranscript(ctx context.Context, session *models.Session) (*llmModels.Transcript, error) {
	messages, err := s.history(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return &llmModels.Transcript{
		Messages: messages,
		Pending:  s.isPending(session.UserID),
	}, nil
}

// SendMessage appends the prompt and runs the tool loop. The prompt is
// removed again if the model fails.
func (s *Service) SendMessage(ctx context.Context, session *models.Session, req *llmSvc.SendMessageRequest) (*llmSvc.SendMessageResponse, error) {
	if err := validatePrompt(&req.Prompt); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	userID := session.UserID

	resolved, err := s.models.ResolveModel(s.modelOrDefault(req.Model))
	if err != nil {
		return nil, err
	}

	if !s.acquire(userID) {
		return nil, &domain.ConflictError{
			Message:      "wait for the response to your previous message",
			ResourceType: "chat",
			ResourceID:   userID,
		}
	}
	defer s.release(userID)

	history, err := s.history(ctx, userID)
	if err != nil {
		return nil, err
	}

	prompt := llmModels.ChatMessage{Role: llmModels.RoleUser, Text: strings.TrimSpace(req.Prompt), CreatedAt: time.Now()}
	if err := s.transcripts.Append(ctx, userID, prompt); err != nil {
		return nil, fmt.Errorf("append prompt: %w", err)
	}
	history = append(history, prompt)

	text, rounds, err := s.converse(ctx, userID, resolved, history)
	if err != nil {
		// the prompt must not stay in the transcript without an answer
		if popErr := s.transcripts.PopLast(context.WithoutCancel(ctx), userID); popErr != nil {
			s.logger.Error("failed to remove unanswered prompt", "user_id", userID, "error", popErr)
		}
		s.logger.Warn("chat generation failed", "user_id", userID, "model", resolved.Model, "error", err)
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	reply := llmModels.ChatMessage{Role: llmModels.RoleAssistant, Text: text, CreatedAt: time.Now()}
	if err := s.transcripts.Append(ctx, userID, reply); err != nil {
		return nil, fmt.Errorf("append reply: %w", err)
	}

	s.logger.Info("chat reply",
		"user_id", userID,
		"model", resolved.Model,
		"tool_rounds", rounds,
	)

	return &llmSvc.SendMessageResponse{
		Reply:      reply,
		Messages:   append(history, reply),
		ToolRounds: rounds,
		Model:      resolved.Model,
	}, nil
}

// converse runs the generation loop. Each round may execute the organizer
// tools; once the limit is reached the model must answer in text.
func (s *Service) converse(ctx context.Context, userID string, resolved *llmSvc.ResolvedModel, history []llmModels.ChatMessage) (string, int, error) {
	limit := 0
	if resolved.SupportsTools {
		var err error
		if limit, err = s.limits.GetToolRoundLimit(ctx, userID); err != nil {
			return "", 0, fmt.Errorf("tool round limit: %w", err)
		}
	}

	system := s.cfg.SystemPrompt
	var registry *tools.ToolRegistry
	if limit > 0 {
		registry = tools.NewToolRegistryBuilder().
			WithConfig(s.toolConfig).
			WithOrganizerTools(userID, s.folderRepo, s.listRepo, s.itemRepo, s.logger).
			Build()
	} else {
		// no tools: hand the model the data up front
		outline, err := s.outline(ctx, userID)
		if err != nil {
			return "", 0, err
		}
		system = joinPrompt(system, inlineDataHeading+"\n"+outline)
	}

	conversation := toProviderMessages(s.trimHistory(history))
	rounds := 0

	for {
		forced := rounds >= limit
		req := &llmSvc.GenerateRequest{
			Model:     resolved.Model,
			System:    system,
			Messages:  conversation,
			MaxTokens: s.maxTokens(resolved),
		}
		if registry != nil {
			req.Tools = registry.Definitions()
			req.DisableToolUse = forced
		}

		resp, err := resolved.Provider.GenerateResponse(ctx, req)
		if err != nil {
			return "", rounds, err
		}

		uses := resp.ToolUses()
		if registry == nil || forced || len(uses) == 0 {
			return replyText(resp), rounds, nil
		}

		rounds++
		calls := make([]tools.ToolCall, len(uses))
		for i, use := range uses {
			calls[i] = tools.ToolCall{ID: use.ToolUseID, Name: use.ToolName, Input: use.Input}
		}
		results := registry.ExecuteParallel(ctx, calls)

		blocks := make([]*llmModels.ContentBlock, len(results))
		for i, result := range results {
			blocks[i] = result.Block()
		}

		s.logger.Debug("tool round executed",
			"user_id", userID,
			"round", rounds,
			"tools", len(calls),
		)

		conversation = append(conversation,
			llmSvc.Message{Role: llmModels.RoleAssistant, Content: resp.Content},
			llmSvc.Message{Role: llmModels.RoleUser, Content: blocks},
		)
	}
}

// ClearTranscript starts a new chat
func (s *Service) ClearTranscript(ctx context.Context, session *models.Session) error {
	if err := s.transcripts.Clear(ctx, session.UserID); err != nil {
		return fmt.Errorf("clear transcript: %w", err)
	}
	s.logger.Info("chat cleared", "user_id", session.UserID)
	return nil
}

// Summarize answers a one-shot prompt over the caller's outline, without
// tools and without touching the transcript.
func (s *Service) Summarize(ctx context.Context, session *models.Session, req *llmSvc.SummarizeRequest) (*llmSvc.SummarizeResponse, error) {
	if err := validatePrompt(&req.Prompt); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	resolved, err := s.models.ResolveModel(s.cfg.DefaultModel)
	if err != nil {
		return nil, err
	}

	outline, err := s.outline(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	resp, err := resolved.Provider.GenerateResponse(ctx, &llmSvc.GenerateRequest{
		Model:  resolved.Model,
		System: joinPrompt(s.cfg.SystemPrompt, summarizerPrompt+"\n\n"+outline),
		Messages: []llmSvc.Message{
			{Role: llmModels.RoleUser, Content: []*llmModels.ContentBlock{llmModels.NewTextBlock(strings.TrimSpace(req.Prompt))}},
		},
		MaxTokens: s.maxTokens(resolved),
	})
	if err != nil {
		s.logger.Warn("summary generation failed", "user_id", session.UserID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	s.logger.Info("summary generated", "user_id", session.UserID, "model", resolved.Model)
	return &llmSvc.SummarizeResponse{Text: replyText(resp)}, nil
}

// ListModels returns the models clients may pick
func (s *Service) ListModels() []llmModels.ModelInfo {
	return s.models.ListModels(s.cfg.DefaultModel)
}

// history loads the transcript, seeding the greeting when it is empty
func (s *Service) history(ctx context.Context, userID string) ([]llmModels.ChatMessage, error) {
	messages, err := s.transcripts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	if len(messages) > 0 {
		return messages, nil
	}

	greeting := llmModels.GreetingMessages(userID, time.Now())
	if err := s.transcripts.Append(ctx, userID, greeting...); err != nil {
		return nil, fmt.Errorf("seed transcript: %w", err)
	}
	return greeting, nil
}

// outline loads everything the user owns and renders it for the model
func (s *Service) outline(ctx context.Context, userID string) (string, error) {
	folders, err := s.folderRepo.ListByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load folders: %w", err)
	}
	lists, err := s.listRepo.ListByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load lists: %w", err)
	}
	items, err := s.itemRepo.ListByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load items: %w", err)
	}

	notes := make(map[string]string)
	for _, item := range items {
		if item.Content == "" || s.markdown == nil {
			continue
		}
		md, err := s.markdown.Convert(item.Content)
		if err != nil {
			s.logger.Warn("skipping unconvertible item content", "item_id", item.ID, "error", err)
			continue
		}
		notes[item.ID] = md
	}

	o := &formatting.Outline{Folders: folders, Lists: lists, Items: items, Notes: notes}
	return o.Render(), nil
}

func (s *Service) trimHistory(history []llmModels.ChatMessage) []llmModels.ChatMessage {
	if len(history) > s.cfg.MaxHistory {
		history = history[len(history)-s.cfg.MaxHistory:]
	}
	// providers expect the conversation to open with the user
	for len(history) > 0 && history[0].Role != llmModels.RoleUser {
		history = history[1:]
	}
	return history
}

func (s *Service) maxTokens(resolved *llmSvc.ResolvedModel) int {
	if s.cfg.MaxTokens > 0 {
		return s.cfg.MaxTokens
	}
	return resolved.MaxOutput
}

func (s *Service) modelOrDefault(model string) string {
	if strings.TrimSpace(model) == "" {
		return s.cfg.DefaultModel
	}
	return model
}

func (s *Service) acquire(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending[userID] {
		return false
	}
	s.pending[userID] = true
	return true
}

func (s *Service) release(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, userID)
}

func (s *Service) isPending(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[userID]
}

func toProviderMessages(history []llmModels.ChatMessage) []llmSvc.Message {
	out := make([]llmSvc.Message, 0, len(history))
	for _, m := range history {
		out = append(out, llmSvc.Message{
			Role:    m.Role,
			Content: []*llmModels.ContentBlock{llmModels.NewTextBlock(m.Text)},
		})
	}
	return out
}

func replyText(resp *llmSvc.GenerateResponse) string {
	if text := strings.TrimSpace(resp.Text()); text != "" {
		return text
	}
	return fallbackReply
}

func joinPrompt(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

func validatePrompt(prompt *string) error {
	return validation.Validate(strings.TrimSpace(*prompt),
		validation.Required.Error("prompt is required"),
		validation.RuneLength(1, config.MaxPromptLength),
	)
}
