// Package local is a development transport: it watches a directory for
// dropped files and treats each as one turn from a fixed user id. A .txt
// file is a text turn ("/checkout" triggers the receipt), a .ogg/.oga file
// is a voice turn through the full transcription pipeline. Replies are
// written to stdout.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"food-assistant/internal/application"
	"food-assistant/internal/domain"
	"food-assistant/internal/order"
)

type Source struct {
	dir    string
	userID int64
	agent  *application.Agent
	logger *slog.Logger
	out    io.Writer

	mu        sync.Mutex
	processed map[string]bool
}

func New(dir string, userID int64, agent *application.Agent, logger *slog.Logger) *Source {
	return &Source{
		dir:       dir,
		userID:    userID,
		agent:     agent,
		logger:    logger,
		out:       os.Stdout,
		processed: make(map[string]bool),
	}
}

func (s *Source) Run(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating inbox dir: %w", err)
	}

	s.logger.Info("local transport watching", "dir", s.dir, "user_id", s.userID)

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.checkForNewFile(ctx); err != nil {
				s.logger.Error("processing inbox file", "error", err)
			}
		}
	}
}

func (s *Source) checkForNewFile(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("reading dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if ext != ".txt" && ext != ".ogg" && ext != ".oga" {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		if s.processed[path] {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading file %s: %w", path, err)
		}

		s.processed[path] = true
		if err := os.Rename(path, path+".processed"); err != nil {
			s.logger.Warn("marking file processed", "file", path, "error", err)
		}

		reply := s.runTurn(ctx, ext, data)
		fmt.Fprintln(s.out, reply)
	}

	return nil
}

func (s *Source) runTurn(ctx context.Context, ext string, data []byte) string {
	if ext == ".txt" {
		text := strings.TrimSpace(string(data))
		if text == "/checkout" {
			receipt, err := s.agent.Checkout(s.userID)
			if errors.Is(err, order.ErrEmptyOrder) {
				return application.EmptyOrderText
			}
			if err != nil {
				return application.TurnFailureText
			}
			return receipt.String()
		}
		reply, err := s.agent.HandleText(ctx, s.userID, text)
		if err != nil {
			s.logger.Error("text turn failed", "error", err)
			return application.TurnFailureText
		}
		return reply
	}

	reply, err := s.agent.HandleVoice(ctx, s.userID, data)
	if errors.Is(err, domain.ErrNoSpeech) {
		return application.RecognitionApology
	}
	if err != nil {
		s.logger.Error("voice turn failed", "error", err)
		return application.TurnFailureText
	}
	return reply
}
