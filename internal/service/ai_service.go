package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"exam_template_backend/internal/config"
	"exam_template_backend/internal/util"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// AIService OpenAI 兼容的 chat/completions 客户端（默认 DeepSeek）
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
		Delta   AIChatMessage `json:"delta"` // 流式响应
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AIService) Name() string { return util.EngineDeepSeek }

// UpdateConfig 配置热更新时替换地址、模型和默认 Key
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.client = &http.Client{Timeout: cfg.Timeout()}
}

func (s *AIService) snapshot() (config.AIConfig, *http.Client) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, s.client
}

// resolveKey 请求中携带的 Key 优先，否则使用配置
func resolveKey(override, fallback string) string {
	if k := strings.TrimSpace(override); k != "" {
		return k
	}
	return strings.TrimSpace(fallback)
}

func (s *AIService) CheckKey(apiKey string) error {
	cfg, _ := s.snapshot()
	if resolveKey(apiKey, cfg.APIKey) == "" {
		return util.ErrAPIKeyMissing
	}
	return nil
}

func (s *AIService) newRequest(ctx context.Context, apiKey, system, user string, stream bool) (*http.Request, *http.Client, error) {
	cfg, client := s.snapshot()

	key := resolveKey(apiKey, cfg.APIKey)
	if key == "" {
		return nil, nil, util.ErrAPIKeyMissing
	}
	if strings.TrimSpace(user) == "" {
		return nil, nil, util.ErrContentMissing
	}

	reqBody := ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream: stream,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, nil, err
	}

	endpoint := strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)
	return req, client, nil
}

// Chat 阻塞调用，返回第一条 choice 的内容
func (s *AIService) Chat(ctx context.Context, apiKey, system, user string) (string, error) {
	req, client, err := s.newRequest(ctx, apiKey, system, user, false)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("API 请求失败: %d - %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", util.ErrEmptyCompletion
	}
	return result.Choices[0].Message.Content, nil
}

// ChatStream 流式调用，按 SSE data 行逐段输出增量内容
func (s *AIService) ChatStream(ctx context.Context, apiKey, system, user string) (<-chan string, <-chan error) {
	out := make(chan string)
	errChan := make(chan error, 1)

	req, client, err := s.newRequest(ctx, apiKey, system, user, true)
	if err != nil {
		close(out)
		errChan <- err
		close(errChan)
		return out, errChan
	}

	go func() {
		defer close(out)
		defer close(errChan)

		resp, err := client.Do(req)
		if err != nil {
			errChan <- err
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(resp.Body)
			errChan <- fmt.Errorf("API 请求失败: %d - %s", resp.StatusCode, string(body))
			return
		}

		received := false
		reader := bufio.NewReader(resp.Body)
		for {
			line, err := reader.ReadString('\n')
			if err != nil && err != io.EOF {
				errChan <- err
				return
			}

			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "data:") {
				data := strings.TrimSpace(strings.TrimPrefix(trimmed, "data:"))
				if data == "[DONE]" {
					break
				}

				var streamResp ChatCompletionResponse
				if jsonErr := json.Unmarshal([]byte(data), &streamResp); jsonErr == nil && len(streamResp.Choices) > 0 {
					if content := streamResp.Choices[0].Delta.Content; content != "" {
						received = true
						select {
						case out <- content:
						case <-ctx.Done():
							errChan <- ctx.Err()
							return
						}
					}
				}
			}

			if err == io.EOF {
				break
			}
		}

		if !received {
			errChan <- util.ErrEmptyCompletion
		}
	}()

	return out, errChan
}
