package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/smartsupport/triage-backend/internal/domain"
)

// RemoteConfig configures the HTTP clients for externally-hosted
// capabilities.
type RemoteConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	HTTPClient *http.Client
}

func (cfg RemoteConfig) normalized() RemoteConfig {
	cfg.BaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	return cfg
}

// RemoteClassifier calls a classifier service over HTTP.
type RemoteClassifier struct {
	cfg RemoteConfig
}

func NewRemoteClassifier(cfg RemoteConfig) *RemoteClassifier {
	return &RemoteClassifier{cfg: cfg.normalized()}
}

func (c *RemoteClassifier) Classify(ctx context.Context, text string, topK int) ([]domain.Prediction, error) {
	request := map[string]any{"text": text, "top_k": topK}
	var response struct {
		Predictions []domain.Prediction `json:"predictions"`
	}
	if err := postJSON(ctx, c.cfg, "/classify", request, &response); err != nil {
		return nil, fmt.Errorf("remote classify: %w", err)
	}
	if len(response.Predictions) == 0 {
		return nil, fmt.Errorf("remote classify: empty prediction list")
	}
	if topK > 0 && len(response.Predictions) > topK {
		response.Predictions = response.Predictions[:topK]
	}
	return response.Predictions, nil
}

// RemoteTranslator calls a translation service over HTTP.
type RemoteTranslator struct {
	cfg RemoteConfig
}

func NewRemoteTranslator(cfg RemoteConfig) *RemoteTranslator {
	return &RemoteTranslator{cfg: cfg.normalized()}
}

func (t *RemoteTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	request := map[string]any{"text": text, "target": target}
	var response struct {
		TranslatedText string `json:"translated_text"`
	}
	if err := postJSON(ctx, t.cfg, "/translate", request, &response); err != nil {
		return "", fmt.Errorf("remote translate: %w", err)
	}
	if strings.TrimSpace(response.TranslatedText) == "" {
		return "", fmt.Errorf("remote translate: empty translation")
	}
	return response.TranslatedText, nil
}

// RemoteDetector calls a language-detection service over HTTP.
type RemoteDetector struct {
	cfg RemoteConfig
}

func NewRemoteDetector(cfg RemoteConfig) *RemoteDetector {
	return &RemoteDetector{cfg: cfg.normalized()}
}

func (d *RemoteDetector) Detect(ctx context.Context, text string) (string, error) {
	request := map[string]any{"text": text}
	var response struct {
		Language string `json:"language"`
	}
	if err := postJSON(ctx, d.cfg, "/detect", request, &response); err != nil {
		return "", fmt.Errorf("remote detect: %w", err)
	}
	if strings.TrimSpace(response.Language) == "" {
		return "", ErrUndetermined
	}
	return response.Language, nil
}

func postJSON(ctx context.Context, cfg RemoteConfig, path string, request, response any) error {
	encoded, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		lastErr = doPost(ctx, cfg, path, encoded, response)
		if lastErr == nil {
			return nil
		}
		if attempt == cfg.MaxRetries {
			break
		}

		backoff := time.Duration(250*(attempt+1)) * time.Millisecond
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return lastErr
}

func doPost(ctx context.Context, cfg RemoteConfig, path string, body []byte, response any) error {
	callCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("call %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
