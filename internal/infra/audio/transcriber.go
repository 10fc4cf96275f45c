package audio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"food-assistant/internal/domain"
	"food-assistant/internal/metrics"
)

// Recognizer submits a packed WAV buffer to a speech backend and returns the
// recognized text, empty when nothing was understood.
type Recognizer interface {
	Recognize(ctx context.Context, wav []byte) (string, error)
}

// Transcriber is the full transcription pipeline: Opus decode → WAV packing →
// speech recognition. Decode failures are hard errors; recognizer failures
// and empty results degrade to domain.ErrNoSpeech.
type Transcriber struct {
	recognizer Recognizer
	decode     func([]byte) (*Clip, error)
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewTranscriber(r Recognizer, m *metrics.Metrics, logger *slog.Logger) *Transcriber {
	return NewTranscriberWithDecoder(r, DecodeOggOpus, m, logger)
}

func NewTranscriberWithDecoder(r Recognizer, decode func([]byte) (*Clip, error), m *metrics.Metrics, logger *slog.Logger) *Transcriber {
	return &Transcriber{recognizer: r, decode: decode, metrics: m, logger: logger}
}

func (t *Transcriber) Transcribe(ctx context.Context, oggOpus []byte) (string, error) {
	clip, err := t.decode(oggOpus)
	if err != nil {
		return "", fmt.Errorf("decoding voice clip: %w", err)
	}

	wav, err := EncodeWAV(clip.Samples, clip.SampleRate)
	if err != nil {
		return "", fmt.Errorf("packing pcm: %w", err)
	}

	start := time.Now()
	text, err := t.recognizer.Recognize(ctx, wav)
	t.metrics.RecognizerLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		t.logger.Error("speech recognition failed", "error", err)
		t.metrics.TranscriptionFailures.Inc()
		return "", domain.ErrNoSpeech
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.ErrNoSpeech
	}
	return text, nil
}
