package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"codepair/internal/config"
	"codepair/internal/model"

	"go.uber.org/zap"
)

// ExecutorService delegates code execution to an external sandboxed
// runner over HTTP. The runner owns sandboxing, output capture and the
// execution timeout; this adapter only relays code and results.
type ExecutorService struct {
	runnerURL string
	client    *http.Client
	logger    *zap.Logger
}

// NewExecutorService creates a new executor service
func NewExecutorService(cfg *config.Config, logger *zap.Logger) *ExecutorService {
	return &ExecutorService{
		runnerURL: cfg.RunnerURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.RunnerTimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

// IsReady reports whether a runtime can accept code right now
func (s *ExecutorService) IsReady(lang model.SupportedLanguage) bool {
	if !supportedLanguage(lang) || s.runnerURL == "" {
		return false
	}

	resp, err := s.client.Get(fmt.Sprintf("%s/runtimes/%s", s.runnerURL, lang))
	if err != nil {
		s.logger.Debug("runner readiness check failed",
			zap.String("language", string(lang)),
			zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Execute runs code in the external runner and returns its result.
// Unsupported languages and an unconfigured runner come back as a
// structured result, not an error.
func (s *ExecutorService) Execute(ctx context.Context, code string, lang model.SupportedLanguage) (*model.ExecutionResult, error) {
	if !supportedLanguage(lang) {
		return &model.ExecutionResult{Error: fmt.Sprintf("Unsupported language: %s", lang)}, nil
	}
	if s.runnerURL == "" {
		return &model.ExecutionResult{Error: fmt.Sprintf("Runtime not ready: %s", lang)}, nil
	}

	body, err := json.Marshal(model.ExecuteRequest{Code: code, Language: lang})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.runnerURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("runner request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read runner response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("runner returned status %d", resp.StatusCode)
	}

	var result model.ExecutionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode runner response: %w", err)
	}
	return &result, nil
}

func supportedLanguage(lang model.SupportedLanguage) bool {
	switch lang {
	case model.LangJavaScript, model.LangPython:
		return true
	}
	return false
}
