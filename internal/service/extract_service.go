package service

import (
	"context"
	"exam_template_backend/internal/config"
	"exam_template_backend/internal/model"
	"exam_template_backend/internal/util"
	"exam_template_backend/pkg/logger"
	"exam_template_backend/pkg/monitoring"
	"exam_template_backend/pkg/tracing"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SystemPrompt 试卷整理助手的系统提示词
const SystemPrompt = `你是一个智能试卷处理助手，能够从试卷中提取题目并处理答案。你需要：
1. 根据用户提供的内容和格式要求，提取指定范围的题目
2. 如果用户提供了答案，根据答案格式要求处理并输出结果
3. 严格按照用户要求的格式输出，不要添加任何额外内容
4. 确保输出的内容准确无误，符合用户的预期`

// DefaultFormat 默认的 1-12 题整理格式
const DefaultFormat = `请将1-12题按照下列格式重新整理：1.题目中代码部分要按markdown格式整理。2.删除选项中ABCD。3.题目前有情景文字的，要加上。具体格式如下：

（可能包含的情景文字）
1.下列关于数据和信息的说法，正确的是
{{ select(1) }}
- 选项1
- 选项2
- 选项3
- 选项4

2.下列关于人工智能的说法，不正确的是
{{ select(2) }}
- 选项1
- 选项2
- 选项3
- 选项4`

// ExtractEngine 大模型调用
type ExtractEngine interface {
	Name() string
	Chat(ctx context.Context, apiKey, system, user string) (string, error)
}

// StreamEngine 支持增量输出的引擎
type StreamEngine interface {
	ExtractEngine
	ChatStream(ctx context.Context, apiKey, system, user string) (<-chan string, <-chan error)
}

// KeyChecker 调用前校验 API Key，未实现的引擎跳过
type KeyChecker interface {
	CheckKey(apiKey string) error
}

type ExtractRequest struct {
	Content   string `json:"content"`
	FormatReq string `json:"formatReq"`
	APIKey    string `json:"apiKey,omitempty"`
	Engine    string `json:"engine,omitempty"`
}

type ExtractResult struct {
	ID     string `json:"id"`
	Result string `json:"result"`
	Engine string `json:"engine"`
}

type ExtractService struct {
	engines       map[string]ExtractEngine
	defaultEngine string
	store         ConversionStore

	mu      sync.RWMutex
	timeout time.Duration
}

func NewExtractService(store ConversionStore, timeout time.Duration, engines ...ExtractEngine) *ExtractService {
	s := &ExtractService{
		engines: make(map[string]ExtractEngine, len(engines)),
		store:   store,
		timeout: timeout,
	}
	for i, e := range engines {
		if i == 0 {
			s.defaultEngine = e.Name()
		}
		s.engines[e.Name()] = e
	}
	return s
}

// UpdateConfig 配置热更新回调，超时时间一并刷新
func (s *ExtractService) UpdateConfig(cfg *config.Config) {
	s.mu.Lock()
	s.timeout = cfg.AI.Timeout()
	s.mu.Unlock()

	for _, e := range s.engines {
		switch eng := e.(type) {
		case *AIService:
			eng.UpdateConfig(cfg.AI)
		case *GeminiEngine:
			eng.UpdateConfig(cfg.Gemini)
		}
	}
}

// BuildUserPrompt 内容与格式要求之间空一行
func BuildUserPrompt(content, formatReq string) string {
	if strings.TrimSpace(formatReq) == "" {
		formatReq = DefaultFormat
	}
	return content + "\n\n" + formatReq
}

func (s *ExtractService) Engine(name string) (ExtractEngine, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = s.defaultEngine
	}
	e, ok := s.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", util.ErrUnknownEngine, name)
	}
	return e, nil
}

// precheck 先校验 Key 再校验内容，与前端提示顺序一致
func precheck(engine ExtractEngine, req ExtractRequest) error {
	if kc, ok := engine.(KeyChecker); ok {
		if err := kc.CheckKey(req.APIKey); err != nil {
			return err
		}
	}
	if strings.TrimSpace(req.Content) == "" {
		return util.ErrContentMissing
	}
	return nil
}

func (s *ExtractService) currentTimeout() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeout
}

func (s *ExtractService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.currentTimeout()
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// Extract 调用模型整理题目
func (s *ExtractService) Extract(ctx context.Context, req ExtractRequest) (result *ExtractResult, err error) {
	engine, err := s.Engine(req.Engine)
	if err != nil {
		return nil, err
	}

	if err := precheck(engine, req); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "ExtractService.Extract", attribute.String("engine", engine.Name()))
	defer func() { tracing.EndSpan(span, err) }()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	text, err := engine.Chat(ctx, req.APIKey, SystemPrompt, BuildUserPrompt(req.Content, req.FormatReq))
	monitoring.ObserveExtraction(engine.Name(), start)
	if err != nil {
		monitoring.ObserveConversion(string(model.KindQuestionExtraction), "failed")
		logger.Log.Warn("question extraction failed", zap.String("engine", engine.Name()), zap.Error(err))
		return nil, err
	}

	result = &ExtractResult{
		ID:     model.GenerateUUID(),
		Result: text,
		Engine: engine.Name(),
	}
	s.persist(ctx, result.ID, req.Content, text, engine.Name())
	monitoring.ObserveConversion(string(model.KindQuestionExtraction), "ok")
	return result, nil
}

// ExtractStream 流式整理；不支持流式的引擎一次性输出完整结果
func (s *ExtractService) ExtractStream(ctx context.Context, req ExtractRequest) (<-chan string, <-chan error, string, error) {
	engine, err := s.Engine(req.Engine)
	if err != nil {
		return nil, nil, "", err
	}
	if err := precheck(engine, req); err != nil {
		return nil, nil, "", err
	}

	user := BuildUserPrompt(req.Content, req.FormatReq)
	ctx, cancel := s.withTimeout(ctx)

	var upstream <-chan string
	var upstreamErr <-chan error
	if se, ok := engine.(StreamEngine); ok {
		upstream, upstreamErr = se.ChatStream(ctx, req.APIKey, SystemPrompt, user)
	} else {
		ch := make(chan string, 1)
		ec := make(chan error, 1)
		go func() {
			defer close(ch)
			defer close(ec)
			text, err := engine.Chat(ctx, req.APIKey, SystemPrompt, user)
			if err != nil {
				ec <- err
				return
			}
			ch <- text
		}()
		upstream, upstreamErr = ch, ec
	}

	out := make(chan string)
	errChan := make(chan error, 1)
	start := time.Now()

	go func() {
		defer cancel()
		defer close(out)
		defer close(errChan)

		var sb strings.Builder
		for chunk := range upstream {
			sb.WriteString(chunk)
			out <- chunk
		}
		monitoring.ObserveExtraction(engine.Name(), start)

		if err := <-upstreamErr; err != nil {
			monitoring.ObserveConversion(string(model.KindQuestionExtraction), "failed")
			errChan <- err
			return
		}

		s.persist(context.WithoutCancel(ctx), model.GenerateUUID(), req.Content, sb.String(), engine.Name())
		monitoring.ObserveConversion(string(model.KindQuestionExtraction), "ok")
	}()

	return out, errChan, engine.Name(), nil
}

func (s *ExtractService) persist(ctx context.Context, id, input, output, engine string) {
	if s.store == nil {
		return
	}
	record := &model.ConversionRecord{
		Kind:      model.KindQuestionExtraction,
		InputHash: model.HashInput(model.KindQuestionExtraction, input),
		Input:     input,
		Output:    output,
		Engine:    engine,
	}
	record.ID = id
	if err := s.store.Create(ctx, record); err != nil {
		logger.Log.Error("failed to persist extraction", zap.String("id", id), zap.Error(err))
	}
}
