package domain

import "errors"

// ErrNoSpeech signals that a voice clip decoded fine but the recognizer
// found no utterance in it (or the recognizer backend was unavailable).
// It is a soft, expected outcome: callers render an apology, not a failure.
var ErrNoSpeech = errors.New("no speech recognized")
