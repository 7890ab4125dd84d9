// Package metadata talks to the AI metadata-suggestion collaborator. It is
// strictly best effort: every failure path returns a nil suggestion and
// the caller leaves the fields blank.
package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"resource-portal/internal/config"

	"go.uber.org/zap"
)

// Suggestion is the optional metadata the collaborator proposes for a new
// resource.
type Suggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Color       string   `json:"color"`
}

type Client struct {
	cfg    config.AIConfig
	http   *http.Client
	logger *zap.Logger
}

func NewClient(cfg config.AIConfig, log *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: log,
	}
}

// SuggestForFile asks for metadata for an uploaded file by name and type.
func (c *Client) SuggestForFile(ctx context.Context, fileName, fileType string) *Suggestion {
	prompt := fmt.Sprintf(
		`Analiza el archivo: %q (%s). Responde JSON: {"title": "string", "category": "Documentos|Finanzas|Legal|Otros", "tags": ["tag1"], "description": "string", "color": "#hex"}`,
		fileName, fileType)
	return c.suggest(ctx, prompt)
}

// SuggestForLink asks for metadata for an external URL.
func (c *Client) SuggestForLink(ctx context.Context, url string) *Suggestion {
	prompt := fmt.Sprintf(
		`Analiza URL: %q. Responde JSON: {"title": "string", "category": "Herramientas|Nube|Videos|Otros", "tags": ["web"], "description": "string", "color": "#hex"}`,
		url)
	return c.suggest(ctx, prompt)
}

func (c *Client) suggest(ctx context.Context, prompt string) *Suggestion {
	if c.cfg.Endpoint == "" || c.cfg.APIKey == "" {
		return nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"model":  c.cfg.Model,
		"prompt": prompt,
	})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("metadata suggestion request build failed", zap.Error(err))
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("metadata suggestion call failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("metadata suggestion rejected", zap.Int("status", resp.StatusCode))
		return nil
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("metadata suggestion payload unreadable", zap.Error(err))
		return nil
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(cleanText(payload.Text)), &suggestion); err != nil {
		c.logger.Warn("metadata suggestion unparseable", zap.Error(err))
		return nil
	}
	return &suggestion
}

// cleanText strips markdown code fences the model tends to wrap JSON in.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
