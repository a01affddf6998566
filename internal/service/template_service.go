package service

import (
	"bytes"
	"context"
	"exam_template_backend/internal/config"
	"exam_template_backend/internal/model"
	"exam_template_backend/internal/parser"
	"exam_template_backend/internal/util"
	"exam_template_backend/pkg/logger"
	"exam_template_backend/pkg/monitoring"
	"exam_template_backend/pkg/tracing"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ConversionStore 转换记录持久化
type ConversionStore interface {
	Create(ctx context.Context, record *model.ConversionRecord) error
	UpdateArtifactURL(ctx context.Context, id, url string) error
}

// ResultCache 转换结果缓存
type ResultCache interface {
	Get(ctx context.Context, hash string, dst interface{}) (bool, error)
	Set(ctx context.Context, hash string, value interface{}, ttl time.Duration) error
}

// ArtifactUploader 模版二归档
type ArtifactUploader interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

type DualTemplateResult struct {
	ID        string `json:"id"`
	Template1 string `json:"template1"`
	Template2 string `json:"template2"`
	Blocks    int    `json:"blocks"`
	Graded    int    `json:"graded"`
	Skipped   int    `json:"skipped"`
	Cached    bool   `json:"cached"`
	Failed    bool   `json:"failed,omitempty"`
}

type LetterAnswerResult struct {
	ID     string `json:"id"`
	Result string `json:"result"`
	OK     bool   `json:"ok"`
}

type TemplateService struct {
	mu      sync.RWMutex
	cfg     config.ParserConfig
	store   ConversionStore
	cache   ResultCache
	storage ArtifactUploader

	generate func(content string) parser.DualTemplates
	encode   func(answers, format string) (string, bool)
}

func NewTemplateService(cfg config.ParserConfig, store ConversionStore, cache ResultCache, storage ArtifactUploader) *TemplateService {
	return &TemplateService{
		cfg:      cfg,
		store:    store,
		cache:    cache,
		storage:  storage,
		generate: parser.GenerateDualTemplates,
		encode:   parser.EncodeLetterAnswers,
	}
}

func (s *TemplateService) UpdateConfig(cfg config.ParserConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *TemplateService) parserConfig() config.ParserConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// safeGenerate 任何 panic 都转换为失败结果
func (s *TemplateService) safeGenerate(content string) (out parser.DualTemplates, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("template generation panicked",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			out = parser.DualTemplates{Template1: parser.ProcessingFailed}
			failed = true
		}
	}()
	return s.generate(content), false
}

func (s *TemplateService) safeEncode(answers, format string) (result string, ok bool, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("letter encoding panicked",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			result, ok, failed = parser.ProcessingFailed, false, true
		}
	}()
	result, ok = s.encode(answers, format)
	return result, ok, false
}

// GenerateDual 生成模版一（填空）和模版二（评分 YAML）
func (s *TemplateService) GenerateDual(ctx context.Context, content string) (result *DualTemplateResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "TemplateService.GenerateDual",
		attribute.Int("input.bytes", len(content)),
	)
	defer func() { tracing.EndSpan(span, err) }()

	if strings.TrimSpace(content) == "" {
		return nil, util.ErrEmptyAnswerInput
	}

	cfg := s.parserConfig()
	hash := model.HashInput(model.KindDualTemplate, content)

	if s.cache != nil {
		var cached DualTemplateResult
		hit, cacheErr := s.cache.Get(ctx, hash, &cached)
		if cacheErr != nil {
			logger.Log.Warn("template cache read failed", zap.Error(cacheErr))
		}
		if hit {
			cached.Cached = true
			span.SetAttributes(attribute.Bool("cache.hit", true))
			monitoring.ObserveConversion(string(model.KindDualTemplate), "cached")
			return &cached, nil
		}
	}

	out, failed := s.safeGenerate(content)

	if !failed && cfg.ValidateOutput {
		if _, vErr := parser.ValidateScoringYAML(out.Template2); vErr != nil {
			logger.Log.Warn("generated scoring document is not valid YAML", zap.Error(vErr))
		}
	}

	result = &DualTemplateResult{
		ID:        model.GenerateUUID(),
		Template1: out.Template1,
		Template2: out.Template2,
		Blocks:    out.Blocks,
		Graded:    out.Graded,
		Skipped:   out.Skipped,
		Failed:    failed,
	}

	record := &model.ConversionRecord{
		Kind:         model.KindDualTemplate,
		InputHash:    hash,
		Input:        content,
		Template1:    result.Template1,
		Template2:    result.Template2,
		BlockCount:   result.Blocks,
		GradedCount:  result.Graded,
		SkippedCount: result.Skipped,
		Failed:       failed,
	}
	record.ID = result.ID
	s.persist(ctx, record)

	if failed {
		monitoring.ObserveConversion(string(model.KindDualTemplate), "failed")
		return result, nil
	}

	if cfg.Archive {
		s.archive(ctx, result.ID, result.Template2)
	}

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, hash, result, cfg.CacheTTL()); cacheErr != nil {
			logger.Log.Warn("template cache write failed", zap.Error(cacheErr))
		}
	}

	monitoring.ObserveConversion(string(model.KindDualTemplate), "ok")
	monitoring.ObserveSubParts(result.Graded, result.Skipped)
	span.SetAttributes(
		attribute.Int("blocks", result.Blocks),
		attribute.Int("graded", result.Graded),
		attribute.Int("skipped", result.Skipped),
	)

	logger.Log.Info("dual templates generated",
		zap.String("id", result.ID),
		zap.Int("blocks", result.Blocks),
		zap.Int("graded", result.Graded),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// ProcessAnswers 将连续字母答案转换为评分 YAML，format 参数保留但不参与处理
func (s *TemplateService) ProcessAnswers(ctx context.Context, answers, format string) (result *LetterAnswerResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "TemplateService.ProcessAnswers")
	defer func() { tracing.EndSpan(span, err) }()

	if strings.TrimSpace(answers) == "" {
		return nil, util.ErrEmptyAnswerInput
	}

	text, ok, failed := s.safeEncode(answers, format)
	result = &LetterAnswerResult{
		ID:     model.GenerateUUID(),
		Result: text,
		OK:     ok,
	}

	record := &model.ConversionRecord{
		Kind:      model.KindLetterAnswers,
		InputHash: model.HashInput(model.KindLetterAnswers, answers),
		Input:     answers,
		Output:    text,
		Failed:    failed || !ok,
	}
	record.ID = result.ID
	s.persist(ctx, record)

	outcome := "ok"
	switch {
	case failed:
		outcome = "failed"
	case !ok:
		outcome = "unsupported"
	}
	monitoring.ObserveConversion(string(model.KindLetterAnswers), outcome)
	return result, nil
}

func (s *TemplateService) persist(ctx context.Context, record *model.ConversionRecord) {
	if s.store == nil {
		return
	}
	if err := s.store.Create(ctx, record); err != nil {
		logger.Log.Error("failed to persist conversion",
			zap.String("id", record.ID),
			zap.String("kind", string(record.Kind)),
			zap.Error(err),
		)
	}
}

// Archive 补传历史记录的模版二，用于归档开关打开前生成的记录
func (s *TemplateService) Archive(ctx context.Context, record *model.ConversionRecord) {
	if record.Kind != model.KindDualTemplate || record.Failed || record.ArtifactURL != "" {
		return
	}
	s.archive(ctx, record.ID, record.Template2)
}

func (s *TemplateService) archive(ctx context.Context, id, template2 string) {
	if s.storage == nil {
		return
	}
	filename := fmt.Sprintf("templates/%s.yaml", id)
	data := []byte(template2)
	url, err := s.storage.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), util.MimeYAML)
	if err != nil {
		logger.Log.Error("failed to archive scoring document", zap.String("id", id), zap.Error(err))
		return
	}
	if s.store == nil {
		return
	}
	if err := s.store.UpdateArtifactURL(ctx, id, url); err != nil {
		logger.Log.Error("failed to record artifact url", zap.String("id", id), zap.Error(err))
	}
}
