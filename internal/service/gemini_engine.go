package service

import (
	"context"
	"exam_template_backend/internal/config"
	"exam_template_backend/internal/util"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiEngine 通过 generative-ai-go 调用 Gemini
type GeminiEngine struct {
	mu     sync.RWMutex
	apiKey string
	model  string
}

func NewGeminiEngine(cfg config.GeminiConfig) *GeminiEngine {
	return &GeminiEngine{
		apiKey: strings.TrimSpace(cfg.APIKey),
		model:  strings.TrimSpace(cfg.Model),
	}
}

func (e *GeminiEngine) Name() string { return util.EngineGemini }

func (e *GeminiEngine) UpdateConfig(cfg config.GeminiConfig) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.apiKey = strings.TrimSpace(cfg.APIKey)
	e.model = strings.TrimSpace(cfg.Model)
}

func (e *GeminiEngine) CheckKey(apiKey string) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if resolveKey(apiKey, e.apiKey) == "" {
		return util.ErrGeminiKeyMissing
	}
	return nil
}

func (e *GeminiEngine) Chat(ctx context.Context, apiKey, system, user string) (string, error) {
	e.mu.RLock()
	key := resolveKey(apiKey, e.apiKey)
	model := e.model
	e.mu.RUnlock()

	if key == "" {
		return "", util.ErrGeminiKeyMissing
	}
	if strings.TrimSpace(user) == "" {
		return "", util.ErrContentMissing
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	// 瞬时错误重试
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, genai.Text(user))
		if err != nil {
			lastErr = err
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 300 * time.Millisecond):
			}
			continue
		}
		txt := firstText(resp)
		if txt == "" {
			return "", util.ErrEmptyCompletion
		}
		return txt, nil
	}
	return "", fmt.Errorf("gemini: %w", lastErr)
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
