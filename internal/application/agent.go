package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"food-assistant/internal/domain"
	"food-assistant/internal/metrics"
	"food-assistant/internal/order"
)

// Agent orchestrates one turn: utterance in, model reply out, order
// mutations applied as a side effect of scanning the reply.
type Agent struct {
	chat    ChatModel
	stt     SpeechToText
	store   *order.Store
	catalog []domain.Dish
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewAgent(
	chat ChatModel,
	stt SpeechToText,
	store *order.Store,
	catalog []domain.Dish,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Agent {
	return &Agent{
		chat:    chat,
		stt:     stt,
		store:   store,
		catalog: catalog,
		metrics: m,
		logger:  logger,
	}
}

// HandleText runs one text turn: the model sees the fixed instruction, a
// summary of the user's current order, and the utterance. The reply is
// scanned for order instructions and returned verbatim. Turns for the same
// user are serialized; a model failure fails the turn.
func (a *Agent) HandleText(ctx context.Context, userID int64, text string) (string, error) {
	defer a.store.LockUser(userID)()

	o := a.store.Get(userID)
	msgs := a.buildMessages(o, text)

	start := time.Now()
	reply, err := a.chat.Complete(ctx, msgs)
	a.metrics.ModelLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		a.metrics.TurnsTotal.WithLabelValues("text", "error").Inc()
		return "", fmt.Errorf("chat model: %w", err)
	}

	reply = strings.TrimSpace(reply)
	a.applyReply(o, reply)
	o.Record(text, reply)

	a.metrics.TurnsTotal.WithLabelValues("text", "ok").Inc()
	a.logger.Info("turn completed", "user_id", userID, "reply_lines", strings.Count(reply, "\n")+1)
	return reply, nil
}

// HandleVoice transcribes the clip and runs a text turn on the result.
// domain.ErrNoSpeech surfaces to the caller, which renders the apology.
func (a *Agent) HandleVoice(ctx context.Context, userID int64, oggOpus []byte) (string, error) {
	text, err := a.stt.Transcribe(ctx, oggOpus)
	if err != nil {
		a.metrics.TurnsTotal.WithLabelValues("voice", outcomeFor(err)).Inc()
		return "", err
	}

	a.logger.Info("voice transcribed", "user_id", userID, "text", text)
	return a.HandleText(ctx, userID, text)
}

// Checkout formats the user's receipt. No model call, no mutation.
func (a *Agent) Checkout(userID int64) (domain.Receipt, error) {
	receipt, err := a.store.Checkout(userID)
	if err != nil {
		a.metrics.CheckoutsTotal.WithLabelValues("empty").Inc()
		return domain.Receipt{}, err
	}
	a.metrics.CheckoutsTotal.WithLabelValues("ok").Inc()
	return receipt, nil
}

func (a *Agent) buildMessages(o *domain.UserOrder, userText string) []Message {
	summary := orderEmptySummary
	if names := o.LineNames(); len(names) > 0 {
		summary = orderSummaryPrefix + strings.Join(names, ", ")
	}
	return []Message{
		{Role: RoleSystem, Content: systemInstruction},
		{Role: RoleSystem, Content: summary},
		{Role: RoleUser, Content: userText},
	}
}

func outcomeFor(err error) string {
	if errors.Is(err, domain.ErrNoSpeech) {
		return "no_speech"
	}
	return "error"
}
