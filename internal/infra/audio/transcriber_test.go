package audio_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"food-assistant/internal/domain"
	"food-assistant/internal/infra/audio"
	"food-assistant/internal/metrics"
)

type fakeRecognizer struct {
	text string
	err  error
	wav  []byte
}

func (r *fakeRecognizer) Recognize(_ context.Context, wav []byte) (string, error) {
	r.wav = wav
	return r.text, r.err
}

func okDecoder(_ []byte) (*audio.Clip, error) {
	return &audio.Clip{Samples: []int16{1, 2, 3, 4}, SampleRate: 48000, Channels: 1}, nil
}

func newTranscriber(r audio.Recognizer, decode func([]byte) (*audio.Clip, error)) *audio.Transcriber {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return audio.NewTranscriberWithDecoder(r, decode, metrics.New(prometheus.NewRegistry()), logger)
}

func TestTranscriber_TrimsRecognizedText(t *testing.T) {
	rec := &fakeRecognizer{text: "  хочу піцу  \n"}
	tr := newTranscriber(rec, okDecoder)

	text, err := tr.Transcribe(context.Background(), []byte("opus"))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "хочу піцу" {
		t.Errorf("text: got %q, want %q", text, "хочу піцу")
	}
	if len(rec.wav) == 0 {
		t.Error("recognizer never received a WAV buffer")
	}
}

func TestTranscriber_EmptyTextIsNoSpeech(t *testing.T) {
	tr := newTranscriber(&fakeRecognizer{text: "   "}, okDecoder)

	_, err := tr.Transcribe(context.Background(), []byte("opus"))
	if !errors.Is(err, domain.ErrNoSpeech) {
		t.Errorf("got %v, want ErrNoSpeech", err)
	}
}

func TestTranscriber_RecognizerErrorDegradesToNoSpeech(t *testing.T) {
	tr := newTranscriber(&fakeRecognizer{err: fmt.Errorf("backend unreachable")}, okDecoder)

	_, err := tr.Transcribe(context.Background(), []byte("opus"))
	if !errors.Is(err, domain.ErrNoSpeech) {
		t.Errorf("got %v, want ErrNoSpeech", err)
	}
}

func TestTranscriber_DecodeErrorIsHard(t *testing.T) {
	badDecoder := func(_ []byte) (*audio.Clip, error) {
		return nil, fmt.Errorf("truncated stream")
	}
	tr := newTranscriber(&fakeRecognizer{text: "привіт"}, badDecoder)

	_, err := tr.Transcribe(context.Background(), []byte("opus"))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if errors.Is(err, domain.ErrNoSpeech) {
		t.Error("decode failure must be distinct from ErrNoSpeech")
	}
}
