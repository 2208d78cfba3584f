// Package whisper calls the OpenAI audio transcription endpoint.
package whisper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultExtension is used for uploads whose name carries no extension; the
// API infers the audio format from it.
const DefaultExtension = ".m4a"

// Request describes one transcription call.
type Request struct {
	Audio    []byte
	Filename string
	Language string
	Prompt   string
}

// Client talks to an OpenAI-compatible API.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds a client for baseURL, e.g. https://api.openai.com. The
// /v1 suffix is added when missing.
func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL = strings.TrimRight(baseURL, "/"); baseURL != "" {
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL += "/v1"
		}
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: 2 * time.Minute}
	if model == "" {
		model = openai.Whisper1
	}
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

// uploadName returns the multipart file name for r, always with an extension.
func uploadName(r Request) string {
	name := path.Base(r.Filename)
	if name == "" || name == "." || name == "/" {
		name = "audio"
	}
	if path.Ext(name) == "" {
		name += DefaultExtension
	}
	return name
}

// Transcribe uploads the audio and returns the recognised text.
func (c *Client) Transcribe(ctx context.Context, r Request) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: uploadName(r),
		Reader:   bytes.NewReader(r.Audio),
		Language: r.Language,
		Prompt:   r.Prompt,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		var apiErr *openai.APIError
		var reqErr *openai.RequestError
		switch {
		case errors.As(err, &apiErr):
			return "", fmt.Errorf("whisper status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
		case errors.As(err, &reqErr):
			return "", fmt.Errorf("whisper status %d: %w", reqErr.HTTPStatusCode, err)
		}
		return "", fmt.Errorf("whisper: %w", err)
	}
	return resp.Text, nil
}
