package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"docit/internal/config"
	"docit/internal/domain"
	"docit/internal/domain/models"
	llmModels "docit/internal/domain/models/llm"
	llmSvc "docit/internal/domain/services/llm"
	"docit/internal/repository/sqlite"
	"docit/internal/repository/transcript"
	"docit/internal/service/content"
)

// scriptedProvider answers each call with the next scripted step
type scriptedProvider struct {
	mu       sync.Mutex
	steps    []func(*llmSvc.GenerateRequest) (*llmSvc.GenerateResponse, error)
	requests []*llmSvc.GenerateRequest
}

func (p *scriptedProvider) GenerateResponse(ctx context.Context, req *llmSvc.GenerateRequest) (*llmSvc.GenerateResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	if len(p.steps) == 0 {
		p.mu.Unlock()
		return nil, errors.New("no scripted response left")
	}
	step := p.steps[0]
	p.steps = p.steps[1:]
	p.mu.Unlock()
	return step(req)
}

func (p *scriptedProvider) Name() string                { return "scripted" }
func (p *scriptedProvider) SupportsModel(m string) bool { return true }

func (p *scriptedProvider) calls() []*llmSvc.GenerateRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*llmSvc.GenerateRequest(nil), p.requests...)
}

func text(s string) func(*llmSvc.GenerateRequest) (*llmSvc.GenerateResponse, error) {
	return func(*llmSvc.GenerateRequest) (*llmSvc.GenerateResponse, error) {
		return &llmSvc.GenerateResponse{Content: []*llmModels.ContentBlock{llmModels.NewTextBlock(s)}, StopReason: "end_turn"}, nil
	}
}

func toolUse(name, userID string) func(*llmSvc.GenerateRequest) (*llmSvc.GenerateResponse, error) {
	return func(*llmSvc.GenerateRequest) (*llmSvc.GenerateResponse, error) {
		return &llmSvc.GenerateResponse{
			Content: []*llmModels.ContentBlock{
				llmModels.NewToolUseBlock("toolu_1", name, map[string]interface{}{"userId": userID}),
			},
			StopReason: "tool_use",
		}, nil
	}
}

type fakeResolver struct {
	provider      llmSvc.LLMProvider
	supportsTools bool
}

func (r *fakeResolver) ResolveModel(model string) (*llmSvc.ResolvedModel, error) {
	if model != "test-model" {
		return nil, fmt.Errorf("%w: unknown model %s", domain.ErrValidation, model)
	}
	return &llmSvc.ResolvedModel{Provider: r.provider, Model: model, SupportsTools: r.supportsTools, MaxOutput: 256}, nil
}

func (r *fakeResolver) ListModels(defaultModel string) []llmModels.ModelInfo {
	return []llmModels.ModelInfo{{ID: "test-model", Default: defaultModel == "test-model"}}
}

type fixture struct {
	svc         *Service
	provider    *scriptedProvider
	transcripts *transcript.MemoryStore
}

var session = &models.Session{UserID: "u1", Email: "ada@example.com", EmailVerified: true}

func newFixture(t *testing.T, toolRounds int, supportsTools bool) *fixture {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	folders := sqlite.NewFolderRepository(db)
	lists := sqlite.NewListRepository(db)
	items := sqlite.NewItemRepository(db)

	now := time.Now()
	folder := &models.Folder{UserID: "u1", Name: "Work", DateCreated: now}
	if err := folders.Create(ctx, folder); err != nil {
		t.Fatalf("create folder: %v", err)
	}
	list := &models.List{UserID: "u1", FolderID: folder.ID, Name: "Tasks", DateCreated: now}
	if err := lists.Create(ctx, list); err != nil {
		t.Fatalf("create list: %v", err)
	}
	item := &models.Item{UserID: "u1", FolderID: folder.ID, ListID: list.ID, Name: "Report", Count: 2,
		Content: "<p><strong>Ship</strong> it</p>", DateCreated: now}
	if err := items.Create(ctx, item); err != nil {
		t.Fatalf("create item: %v", err)
	}

	provider := &scriptedProvider{}
	transcripts := transcript.NewMemoryStore(16, time.Hour, 100)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(
		transcripts,
		&fakeResolver{provider: provider, supportsTools: supportsTools},
		llmSvc.NewConfigToolLimitResolver(toolRounds),
		folders, lists, items,
		content.NewMarkdownConverter(content.NewHTMLSanitizer()),
		Config{DefaultModel: "test-model", SystemPrompt: "You are Kian."},
		logger,
	)
	return &fixture{svc: svc, provider: provider, transcripts: transcripts}
}

func TestSendMessageRunsToolLoop(t *testing.T) {
	f := newFixture(t, 1, true)
	f.provider.steps = append(f.provider.steps, toolUse("getAllFolders", "u1"), text("You have one folder, Work."))

	resp, err := f.svc.SendMessage(context.Background(), session, &llmSvc.SendMessageRequest{Prompt: "What folders do I have?"})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if resp.ToolRounds != 1 {
		t.Errorf("tool rounds = %d, want 1", resp.ToolRounds)
	}
	if resp.Reply.Text != "You have one folder, Work." {
		t.Errorf("reply = %q", resp.Reply.Text)
	}

	calls := f.provider.calls()
	if len(calls) != 2 {
		t.Fatalf("provider calls = %d, want 2", len(calls))
	}
	if len(calls[0].Tools) != 3 || calls[0].DisableToolUse {
		t.Errorf("first call: tools = %d, disabled = %v", len(calls[0].Tools), calls[0].DisableToolUse)
	}
	if !calls[1].DisableToolUse {
		t.Error("final call must forbid tool use")
	}

	last := calls[1].Messages[len(calls[1].Messages)-1]
	if len(last.Content) != 1 || last.Content[0].BlockType != llmModels.BlockTypeToolResult {
		t.Fatalf("last message = %+v", last)
	}
	if result := last.Content[0]; result.IsError || !strings.Contains(result.Output, `"Work"`) {
		t.Errorf("tool result = %+v", result)
	}
	if first := calls[0].Messages[0]; !strings.Contains(first.Content[0].Text, "my userId is u1") {
		t.Errorf("conversation should open with the greeting, got %q", first.Content[0].Text)
	}

	stored, err := f.transcripts.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("transcript: %v", err)
	}
	// greeting pair + prompt + reply
	if len(stored) != 4 || len(resp.Messages) != 4 {
		t.Errorf("stored = %d, returned = %d, want 4", len(stored), len(resp.Messages))
	}
}

func TestToolCallForAnotherUserIsRejected(t *testing.T) {
	f := newFixture(t, 1, true)
	f.provider.steps = append(f.provider.steps, toolUse("getAllItems", "u2"), text("I can only see your data."))

	if _, err := f.svc.SendMessage(context.Background(), session, &llmSvc.SendMessageRequest{Prompt: "Show u2's items"}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	calls := f.provider.calls()
	result := calls[1].Messages[len(calls[1].Messages)-1].Content[0]
	if !result.IsError || !strings.Contains(result.Output, "does not match") {
		t.Errorf("tool result = %+v", result)
	}
}

func TestNoToolsInlinesOutline(t *testing.T) {
	tests := []struct {
		name          string
		rounds        int
		supportsTools bool
	}{
		{"zero rounds", 0, true},
		{"model without tools", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.rounds, tt.supportsTools)
			f.provider.steps = append(f.provider.steps, text("Work holds Tasks."))

			resp, err := f.svc.SendMessage(context.Background(), session, &llmSvc.SendMessageRequest{Prompt: "Describe my data"})
			if err != nil {
				t.Fatalf("SendMessage: %v", err)
			}
			if resp.ToolRounds != 0 {
				t.Errorf("tool rounds = %d", resp.ToolRounds)
			}

			calls := f.provider.calls()
			if len(calls) != 1 || len(calls[0].Tools) != 0 {
				t.Fatalf("calls = %d, tools = %d", len(calls), len(calls[0].Tools))
			}
			if !strings.Contains(calls[0].System, `Folder "Work"`) || !strings.Contains(calls[0].System, "You are Kian.") {
				t.Errorf("system prompt = %q", calls[0].System)
			}
		})
	}
}

func TestProviderFailureRemovesPrompt(t *testing.T) {
	f := newFixture(t, 1, true)
	f.provider.steps = append(f.provider.steps, func(*llmSvc.GenerateRequest) (*llmSvc.GenerateResponse, error) {
		return nil, errors.New("overloaded")
	})

	_, err := f.svc.SendMessage(context.Background(), session, &llmSvc.SendMessageRequest{Prompt: "Hello?"})
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}

	transcript, err := f.svc.GetTranscript(context.Background(), session)
	if err != nil {
		t.Fatalf("GetTranscript: %v", err)
	}
	if len(transcript.Messages) != 2 {
		t.Errorf("messages = %d, want only the greeting", len(transcript.Messages))
	}
	if transcript.Pending {
		t.Error("pending flag left set")
	}
}

func TestSecondMessageWhilePendingConflicts(t *testing.T) {
	f := newFixture(t, 0, true)
	started := make(chan struct{})
	release := make(chan struct{})
	f.provider.steps = append(f.provider.steps, func(*llmSvc.GenerateRequest) (*llmSvc.GenerateResponse, error) {
		close(started)
		<-release
		return text("done")(nil)
	})

	errc := make(chan error, 1)
	go func() {
		_, err := f.svc.SendMessage(context.Background(), session, &llmSvc.SendMessageRequest{Prompt: "first"})
		errc <- err
	}()
	<-started

	_, err := f.svc.SendMessage(context.Background(), session, &llmSvc.SendMessageRequest{Prompt: "second"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}

	transcript, err := f.svc.GetTranscript(context.Background(), session)
	if err != nil {
		t.Fatalf("GetTranscript: %v", err)
	}
	if !transcript.Pending {
		t.Error("expected pending transcript")
	}

	other := &models.Session{UserID: "u2"}
	f.provider.mu.Lock()
	f.provider.steps = append(f.provider.steps, text("hi u2"))
	f.provider.mu.Unlock()

	close(release)
	if err := <-errc; err != nil {
		t.Fatalf("first message: %v", err)
	}

	// other users were never blocked
	if _, err := f.svc.SendMessage(context.Background(), other, &llmSvc.SendMessageRequest{Prompt: "hello"}); err != nil {
		t.Errorf("other user: %v", err)
	}
}

func TestSendMessageValidation(t *testing.T) {
	f := newFixture(t, 1, true)

	tests := []struct {
		name string
		req  *llmSvc.SendMessageRequest
	}{
		{"empty prompt", &llmSvc.SendMessageRequest{Prompt: "   "}},
		{"too long", &llmSvc.SendMessageRequest{Prompt: strings.Repeat("a", 4001)}},
		{"unknown model", &llmSvc.SendMessageRequest{Prompt: "hi", Model: "gpt-4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SendMessage(context.Background(), session, tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
	if n := len(f.provider.calls()); n != 0 {
		t.Errorf("provider called %d times", n)
	}
}

func TestClearTranscriptReseedsGreeting(t *testing.T) {
	f := newFixture(t, 0, true)
	f.provider.steps = append(f.provider.steps, text("ok"))
	ctx := context.Background()

	if _, err := f.svc.SendMessage(ctx, session, &llmSvc.SendMessageRequest{Prompt: "remember this"}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if err := f.svc.ClearTranscript(ctx, session); err != nil {
		t.Fatalf("ClearTranscript: %v", err)
	}

	transcript, err := f.svc.GetTranscript(ctx, session)
	if err != nil {
		t.Fatalf("GetTranscript: %v", err)
	}
	if len(transcript.Messages) != 2 || transcript.Messages[0].Role != llmModels.RoleUser {
		t.Errorf("messages = %+v", transcript.Messages)
	}
}

func TestSummarize(t *testing.T) {
	f := newFixture(t, 1, true)
	f.provider.steps = append(f.provider.steps, text("One report with 2 copies."))

	resp, err := f.svc.Summarize(context.Background(), session, &llmSvc.SummarizeRequest{Prompt: "Summarize my items"})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if resp.Text != "One report with 2 copies." {
		t.Errorf("text = %q", resp.Text)
	}

	call := f.provider.calls()[0]
	if len(call.Tools) != 0 {
		t.Error("summary must not offer tools")
	}
	for _, want := range []string{`Item "Report" (count 2)`, "**Ship** it"} {
		if !strings.Contains(call.System, want) {
			t.Errorf("system prompt missing %q:\n%s", want, call.System)
		}
	}

	stored, err := f.transcripts.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("transcript: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("summary touched the transcript: %d messages", len(stored))
	}
}

func TestListModels(t *testing.T) {
	f := newFixture(t, 1, true)
	models := f.svc.ListModels()
	if len(models) != 1 || !models[0].Default {
		t.Errorf("models = %+v", models)
	}
}

func TestReplayedHistoryIsCapped(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil, nil, nil, Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// stored transcripts may be longer than what is replayed
	history := make([]llmModels.ChatMessage, config.MaxReplayedMessages+11)
	for i := range history {
		history[i] = llmModels.ChatMessage{Role: llmModels.RoleUser, Text: fmt.Sprint(i)}
		if i%2 == 1 {
			history[i].Role = llmModels.RoleAssistant
		}
	}

	trimmed := svc.trimHistory(history)
	// the oldest kept message is an assistant reply, so it is dropped too
	if len(trimmed) != config.MaxReplayedMessages-1 {
		t.Fatalf("replayed %d messages, want %d", len(trimmed), config.MaxReplayedMessages-1)
	}
	if trimmed[0].Role != llmModels.RoleUser || trimmed[len(trimmed)-1].Text != fmt.Sprint(len(history)-1) {
		t.Errorf("trimmed = %+v ... %+v", trimmed[0], trimmed[len(trimmed)-1])
	}
}
