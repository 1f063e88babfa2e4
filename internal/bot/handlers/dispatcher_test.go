package handlers

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

	"github.com/bwmarrin/discordgo"

	"github.com/alephbot/alephbot/internal/config"
	"github.com/alephbot/alephbot/internal/nakdan"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSession records interaction responses. Safe for concurrent use.
type fakeSession struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
}

func (f *fakeSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeSession) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, edit)
	return &discordgo.Message{}, nil
}

// replyText flattens the single recorded edit into comparable text.
func (f *fakeSession) replyText(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.edits) != 1 {
		t.Fatalf("recorded %d edits, want exactly 1 reply", len(f.edits))
	}
	edit := f.edits[0]
	if edit.Content != nil {
		return *edit.Content
	}
	if edit.Embeds != nil && len(*edit.Embeds) > 0 {
		return (*edit.Embeds)[0].Description
	}
	return ""
}

// fakeNakdan counts calls and delegates to the configured behavior.
type fakeNakdan struct {
	mu        sync.Mutex
	calls     []string
	vowelize  func(ctx context.Context, text string) (*nakdan.Result, error)
	analyze   func(ctx context.Context, text string) (*nakdan.Result, error)
	lemmatize func(ctx context.Context, text string) ([]nakdan.Lemma, error)
}

func (f *fakeNakdan) record(text string) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()
}

func (f *fakeNakdan) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeNakdan) Vowelize(ctx context.Context, text string) (*nakdan.Result, error) {
	f.record(text)
	if f.vowelize != nil {
		return f.vowelize(ctx, text)
	}
	return &nakdan.Result{Text: text}, nil
}

func (f *fakeNakdan) Analyze(ctx context.Context, text string) (*nakdan.Result, error) {
	f.record(text)
	if f.analyze != nil {
		return f.analyze(ctx, text)
	}
	return &nakdan.Result{Text: text}, nil
}

func (f *fakeNakdan) Lemmatize(ctx context.Context, text string) ([]nakdan.Lemma, error) {
	f.record(text)
	if f.lemmatize != nil {
		return f.lemmatize(ctx, text)
	}
	return nil, nil
}

type fakeTranslator struct {
	out string
	err error
}

func (f *fakeTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.out != "" {
		return f.out, nil
	}
	return text, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Nakdan: config.NakdanConfig{MaxTextLength: 500},
		Bot: config.BotConfig{
			RequestTimeout:        5 * time.Second,
			CommandCooldown:       0,
			MsgProvideText:        "provide some text",
			MsgProvideHebrew:      "provide hebrew text",
			MsgTextTooLong:        "too long, max %d",
			MsgServiceUnavailable: "service unavailable",
			MsgCouldNotProcess:    "could not process",
			MsgGeneralError:       "unexpected error",
			MsgCooldown:           "wait %.1f seconds",
		},
	}
}

func newTestDispatcher(cfg *config.Config, nk nakdan.Client) *Dispatcher {
	deps := HandlerDeps{
		Logger:     discardLogger(),
		Config:     cfg,
		Nakdan:     nk,
		Translator: &fakeTranslator{},
	}
	return NewDispatcher(deps, RegisterAllCommands(deps))
}

func newInteraction(command, text, userID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "interaction-1",
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   "guild-1",
			ChannelID: "channel-1",
			Member:    &discordgo.Member{User: &discordgo.User{ID: userID}},
			Data: discordgo.ApplicationCommandInteractionData{
				Name: command,
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{
						Name:  OptText,
						Type:  discordgo.ApplicationCommandOptionString,
						Value: text,
					},
				},
			},
		},
	}
}

func TestDispatcherRepliesWithVowelizedText(t *testing.T) {
	t.Parallel()

	nk := &fakeNakdan{vowelize: func(_ context.Context, text string) (*nakdan.Result, error) {
		return &nakdan.Result{Text: "שָׁלוֹם"}, nil
	}}
	d := newTestDispatcher(testConfig(), nk)
	s := &fakeSession{}

	d.HandleInteraction(s, newInteraction(CmdVowelize, "שלום", "user-1"))

	if len(s.responses) != 1 {
		t.Fatalf("recorded %d acknowledgements, want 1", len(s.responses))
	}
	if s.responses[0].Type != discordgo.InteractionResponseDeferredChannelMessageWithSource {
		t.Errorf("acknowledgement type = %v, want deferred channel message", s.responses[0].Type)
	}

	reply := s.replyText(t)
	if !strings.Contains(reply, "שָׁלוֹם") {
		t.Errorf("reply = %q, want it to carry the vowelized text", reply)
	}
	if !strings.Contains(reply, "שלום") {
		t.Errorf("reply = %q, want it to echo the original text", reply)
	}

	if nk.callCount() != 1 || nk.calls[0] != "שלום" {
		t.Errorf("service calls = %v, want exactly one with the input verbatim", nk.calls)
	}
}

func TestDispatcherEmptyInputSkipsService(t *testing.T) {
	t.Parallel()

	nk := &fakeNakdan{}
	cfg := testConfig()
	d := newTestDispatcher(cfg, nk)
	s := &fakeSession{}

	d.HandleInteraction(s, newInteraction(CmdVowelize, "   ", "user-1"))

	if got := s.replyText(t); got != cfg.Bot.MsgProvideText {
		t.Errorf("reply = %q, want usage hint %q", got, cfg.Bot.MsgProvideText)
	}
	if nk.callCount() != 0 {
		t.Errorf("service called %d times for empty input, want 0", nk.callCount())
	}
}

func TestDispatcherFailureMessages(t *testing.T) {
	t.Parallel()

	cfg := testConfig()

	tests := []struct {
		name string
		text string
		fail error
		want string
	}{
		{
			name: "not hebrew",
			text: "hello world",
			want: cfg.Bot.MsgProvideHebrew,
		},
		{
			name: "too long",
			text: strings.Repeat("א", cfg.Nakdan.MaxTextLength+1),
			want: fmt.Sprintf(cfg.Bot.MsgTextTooLong, cfg.Nakdan.MaxTextLength),
		},
		{
			name: "service unavailable",
			text: "שלום",
			fail: fmt.Errorf("wrapped: %w", nakdan.ErrUnavailable),
			want: cfg.Bot.MsgServiceUnavailable,
		},
		{
			name: "deadline exceeded",
			text: "שלום",
			fail: context.DeadlineExceeded,
			want: cfg.Bot.MsgServiceUnavailable,
		},
		{
			name: "service rejected",
			text: "שלום",
			fail: fmt.Errorf("wrapped: %w", nakdan.ErrRejected),
			want: cfg.Bot.MsgCouldNotProcess,
		},
		{
			name: "unexpected error",
			text: "שלום",
			fail: errors.New("boom"),
			want: cfg.Bot.MsgGeneralError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			nk := &fakeNakdan{vowelize: func(_ context.Context, _ string) (*nakdan.Result, error) {
				return nil, tc.fail
			}}
			d := newTestDispatcher(cfg, nk)
			s := &fakeSession{}

			d.HandleInteraction(s, newInteraction(CmdVowelize, tc.text, "user-1"))

			got := s.replyText(t)
			if got != tc.want {
				t.Errorf("reply = %q, want %q", got, tc.want)
			}
			if tc.fail != nil && strings.Contains(got, tc.fail.Error()) {
				t.Errorf("reply %q leaks raw error text", got)
			}
		})
	}
}

func TestDispatcherIgnoresUnknownCommand(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(testConfig(), &fakeNakdan{})
	s := &fakeSession{}

	d.HandleInteraction(s, newInteraction("unknown", "שלום", "user-1"))

	if len(s.responses) != 0 || len(s.edits) != 0 {
		t.Errorf("unknown command produced %d responses and %d edits, want none",
			len(s.responses), len(s.edits))
	}
}

func TestDispatcherEnforcesCooldown(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Bot.CommandCooldown = time.Minute
	d := newTestDispatcher(cfg, &fakeNakdan{})

	first := &fakeSession{}
	d.HandleInteraction(first, newInteraction(CmdVowelize, "שלום", "user-1"))
	if got := first.replyText(t); strings.HasPrefix(got, "wait") {
		t.Fatalf("first invocation hit cooldown: %q", got)
	}

	second := &fakeSession{}
	d.HandleInteraction(second, newInteraction(CmdVowelize, "שלום", "user-1"))
	if got := second.replyText(t); !strings.HasPrefix(got, "wait") {
		t.Errorf("second invocation reply = %q, want cooldown message", got)
	}

	other := &fakeSession{}
	d.HandleInteraction(other, newInteraction(CmdVowelize, "שלום", "user-2"))
	if got := other.replyText(t); strings.HasPrefix(got, "wait") {
		t.Errorf("different user hit cooldown: %q", got)
	}
}

func TestDispatcherConcurrentInvocations(t *testing.T) {
	t.Parallel()

	nk := &fakeNakdan{vowelize: func(_ context.Context, text string) (*nakdan.Result, error) {
		return &nakdan.Result{Text: "נ:" + text}, nil
	}}
	d := newTestDispatcher(testConfig(), nk)

	const n = 10
	sessions := make([]*fakeSession, n)
	var wg sync.WaitGroup
	for i := range n {
		sessions[i] = &fakeSession{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			text := fmt.Sprintf("שלום%d", i)
			user := fmt.Sprintf("user-%d", i)
			d.HandleInteraction(sessions[i], newInteraction(CmdVowelize, text, user))
		}()
	}
	wg.Wait()

	for i := range n {
		want := fmt.Sprintf("נ:שלום%d", i)
		if got := sessions[i].replyText(t); !strings.Contains(got, want) {
			t.Errorf("session %d reply = %q, want its own result %q", i, got, want)
		}
	}
}
