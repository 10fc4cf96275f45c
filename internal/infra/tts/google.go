// Package tts synthesizes speech through the Google Translate TTS endpoint.
package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// The endpoint rejects long inputs, so text is synthesized in chunks and the
// MP3 payloads concatenated (valid for MPEG audio streams).
const maxChunkRunes = 180

type Client struct {
	httpClient *http.Client
	baseURL    string
	lang       string
}

func NewClient(lang string) *Client {
	return NewClientWithURL(lang, "https://translate.google.com/translate_tts")
}

func NewClientWithURL(lang, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		lang:       lang,
	}
}

func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	var clip []byte
	for _, chunk := range splitChunks(text, maxChunkRunes) {
		part, err := c.fetchChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		clip = append(clip, part...)
	}
	if len(clip) == 0 {
		return nil, fmt.Errorf("nothing to synthesize")
	}
	return clip, nil
}

func (c *Client) fetchChunk(ctx context.Context, text string) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", c.lang)
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching speech: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts error: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// splitChunks breaks text into runs of at most limit runes, preferring
// whitespace boundaries.
func splitChunks(text string, limit int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var current strings.Builder
	for _, word := range words {
		if current.Len() > 0 && len([]rune(current.String()))+len([]rune(word))+1 > limit {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
