package application

import (
	"context"
	"fmt"
)

// SpeechToText turns an Opus-compressed voice clip into text. A clip with no
// recognizable utterance (or an unreachable recognizer backend) yields
// domain.ErrNoSpeech; a clip that fails to decode yields a distinct error.
type SpeechToText interface {
	Transcribe(ctx context.Context, oggOpus []byte) (string, error)
}

// NoopSTT is a no-op speech-to-text client for text-only deployments.
// It returns an error if called with actual audio data.
type NoopSTT struct{}

func (n *NoopSTT) Transcribe(ctx context.Context, oggOpus []byte) (string, error) {
	return "", fmt.Errorf("speech-to-text not configured: set openai.api_key to enable voice messages")
}
