package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"food-assistant/internal/application"
	"food-assistant/internal/domain"
	"food-assistant/internal/order"
)

// Speaker synthesizes a spoken rendition of a reply. Optional: a nil Speaker
// downgrades voice replies to plain text.
type Speaker interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Bot is the Telegram transport: it feeds text and voice turns into the
// agent and routes replies (and apologies) back on the same chat.
type Bot struct {
	api        *tgbotapi.BotAPI
	agent      *application.Agent
	speaker    Speaker
	httpClient *http.Client
	logger     *slog.Logger
}

func New(token string, agent *application.Agent, speaker Speaker, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating bot api: %w", err)
	}
	return &Bot{
		api:        api,
		agent:      agent,
		speaker:    speaker,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}, nil
}

// Run consumes updates until the context is cancelled. Each update is
// handled in its own goroutine; the agent serializes turns per user.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("telegram bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	switch {
	case msg.IsCommand():
		b.handleCommand(msg)
	case msg.Voice != nil:
		b.handleVoice(ctx, userID, msg)
	case msg.Text != "":
		b.handleText(ctx, userID, msg)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendText(msg.Chat.ID, application.WelcomeText)
	case "checkout":
		receipt, err := b.agent.Checkout(msg.From.ID)
		if errors.Is(err, order.ErrEmptyOrder) {
			b.sendText(msg.Chat.ID, application.EmptyOrderText)
			return
		}
		if err != nil {
			b.logger.Error("checkout failed", "user_id", msg.From.ID, "error", err)
			b.sendText(msg.Chat.ID, application.TurnFailureText)
			return
		}
		b.sendText(msg.Chat.ID, receipt.String())
	}
}

func (b *Bot) handleText(ctx context.Context, userID int64, msg *tgbotapi.Message) {
	reply, err := b.agent.HandleText(ctx, userID, msg.Text)
	if err != nil {
		b.logger.Error("text turn failed", "user_id", userID, "error", err)
		b.sendText(msg.Chat.ID, application.TurnFailureText)
		return
	}
	b.sendText(msg.Chat.ID, reply)
}

func (b *Bot) handleVoice(ctx context.Context, userID int64, msg *tgbotapi.Message) {
	clip, err := b.downloadVoice(ctx, msg.Voice.FileID)
	if err != nil {
		b.logger.Error("voice download failed", "user_id", userID, "error", err)
		b.sendText(msg.Chat.ID, application.TurnFailureText)
		return
	}

	reply, err := b.agent.HandleVoice(ctx, userID, clip)
	if errors.Is(err, domain.ErrNoSpeech) {
		b.sendText(msg.Chat.ID, application.RecognitionApology)
		return
	}
	if err != nil {
		b.logger.Error("voice turn failed", "user_id", userID, "error", err)
		b.sendText(msg.Chat.ID, application.TurnFailureText)
		return
	}

	b.replyWithVoice(ctx, msg.Chat.ID, reply)
}

func (b *Bot) downloadVoice(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("resolving voice file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("creating download request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading voice file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voice download error: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// replyWithVoice answers a voice turn with synthesized speech and the reply
// text as caption. TTS failures degrade to a plain text reply.
func (b *Bot) replyWithVoice(ctx context.Context, chatID int64, text string) {
	if b.speaker == nil {
		b.sendText(chatID, text)
		return
	}

	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.logger.Warn("sending chat action", "error", err)
	}

	clip, err := b.speaker.Synthesize(ctx, text)
	if err != nil {
		b.logger.Error("speech synthesis failed", "error", err)
		b.sendText(chatID, text)
		return
	}

	voice := tgbotapi.NewVoice(chatID, tgbotapi.FileBytes{Name: "reply.mp3", Bytes: clip})
	voice.Caption = text
	if _, err := b.api.Send(voice); err != nil {
		b.logger.Error("sending voice reply", "error", err)
		b.sendText(chatID, text)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("sending message", "chat_id", chatID, "error", err)
	}
}
