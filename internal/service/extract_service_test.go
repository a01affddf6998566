package service

import (
	"context"
	"exam_template_backend/internal/config"
	"exam_template_backend/internal/model"
	"exam_template_backend/internal/util"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	name   string
	reply  string
	err    error
	system string
	user   string
	key    string
}

func (e *fakeEngine) Name() string { return e.name }

func (e *fakeEngine) Chat(ctx context.Context, apiKey, system, user string) (string, error) {
	e.key, e.system, e.user = apiKey, system, user
	return e.reply, e.err
}

func drain(t *testing.T, stream <-chan string, errs <-chan error) (string, error) {
	t.Helper()
	var sb strings.Builder
	for chunk := range stream {
		sb.WriteString(chunk)
	}
	return sb.String(), <-errs
}

func TestBuildUserPrompt(t *testing.T) {
	assert.Equal(t, "试卷内容\n\n格式", BuildUserPrompt("试卷内容", "格式"))
	assert.Equal(t, "试卷内容\n\n"+DefaultFormat, BuildUserPrompt("试卷内容", " "))
}

func TestExtractService_Extract(t *testing.T) {
	store := newFakeStore()
	engine := &fakeEngine{name: "deepseek", reply: "1.题目\n{{ select(1) }}"}
	s := NewExtractService(store, time.Second, engine)

	res, err := s.Extract(context.Background(), ExtractRequest{Content: "原文", FormatReq: "格式", APIKey: "k"})

	require.NoError(t, err)
	assert.Equal(t, "1.题目\n{{ select(1) }}", res.Result)
	assert.Equal(t, "deepseek", res.Engine)
	assert.Equal(t, SystemPrompt, engine.system)
	assert.Equal(t, "原文\n\n格式", engine.user)
	assert.Equal(t, "k", engine.key)

	record, err := store.FindByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.KindQuestionExtraction, record.Kind)
	assert.Equal(t, "deepseek", record.Engine)
}

func TestExtractService_EngineSelection(t *testing.T) {
	ds := &fakeEngine{name: "deepseek", reply: "ds"}
	gm := &fakeEngine{name: "gemini", reply: "gm"}
	s := NewExtractService(nil, 0, ds, gm)

	res, err := s.Extract(context.Background(), ExtractRequest{Content: "x", Engine: "Gemini"})
	require.NoError(t, err)
	assert.Equal(t, "gm", res.Result)

	_, err = s.Extract(context.Background(), ExtractRequest{Content: "x", Engine: "openai"})
	assert.ErrorIs(t, err, util.ErrUnknownEngine)
}

func TestExtractService_ExtractError(t *testing.T) {
	store := newFakeStore()
	s := NewExtractService(store, 0, &fakeEngine{name: "deepseek", err: util.ErrEmptyCompletion})

	_, err := s.Extract(context.Background(), ExtractRequest{Content: "x"})

	assert.ErrorIs(t, err, util.ErrEmptyCompletion)
	assert.Equal(t, 0, store.count())
}

func TestExtractService_ExtractStream_NonStreamingEngine(t *testing.T) {
	store := newFakeStore()
	s := NewExtractService(store, 0, &fakeEngine{name: "gemini", reply: "整理结果"})

	stream, errs, engine, err := s.ExtractStream(context.Background(), ExtractRequest{Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", engine)

	text, streamErr := drain(t, stream, errs)
	assert.NoError(t, streamErr)
	assert.Equal(t, "整理结果", text)
	assert.Equal(t, 1, store.count())
}

func TestExtractService_ExtractStream_DeepSeek(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"A\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"B\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	store := newFakeStore()
	ai := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "k", Model: "deepseek-chat"})
	s := NewExtractService(store, 5*time.Second, ai)

	stream, errs, engine, err := s.ExtractStream(context.Background(), ExtractRequest{Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, util.EngineDeepSeek, engine)

	text, streamErr := drain(t, stream, errs)
	assert.NoError(t, streamErr)
	assert.Equal(t, "AB", text)

	records, total, err := store.List(context.Background(), model.KindQuestionExtraction, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "AB", records[0].Output)
}

func TestExtractService_ExtractStream_Error(t *testing.T) {
	s := NewExtractService(nil, 0, &fakeEngine{name: "gemini", err: util.ErrGeminiKeyMissing})

	stream, errs, _, err := s.ExtractStream(context.Background(), ExtractRequest{Content: "x"})
	require.NoError(t, err)

	text, streamErr := drain(t, stream, errs)
	assert.Equal(t, "", text)
	assert.ErrorIs(t, streamErr, util.ErrGeminiKeyMissing)
}

func TestExtractService_UpdateConfig(t *testing.T) {
	ai := NewAIService(config.AIConfig{Model: "old"})
	gm := NewGeminiEngine(config.GeminiConfig{Model: "old"})
	s := NewExtractService(nil, 0, ai, gm)

	s.UpdateConfig(&config.Config{
		AI:     config.AIConfig{Model: "deepseek-reasoner", APIKey: "k1"},
		Gemini: config.GeminiConfig{Model: "gemini-2.5-pro", APIKey: "k2"},
	})

	cfg, _ := ai.snapshot()
	assert.Equal(t, "deepseek-reasoner", cfg.Model)
	assert.Equal(t, "gemini-2.5-pro", gm.model)
	assert.Equal(t, "k2", gm.apiKey)
	assert.Equal(t, 120*time.Second, s.currentTimeout())
}

type deadlineEngine struct {
	deadline time.Time
	ok       bool
}

func (e *deadlineEngine) Name() string { return "deadline" }

func (e *deadlineEngine) Chat(ctx context.Context, apiKey, system, user string) (string, error) {
	e.deadline, e.ok = ctx.Deadline()
	return "ok", nil
}

func TestExtractService_UpdateConfigRefreshesTimeout(t *testing.T) {
	eng := &deadlineEngine{}
	s := NewExtractService(nil, time.Hour, eng)

	s.UpdateConfig(&config.Config{AI: config.AIConfig{TimeoutSeconds: 7}})
	assert.Equal(t, 7*time.Second, s.currentTimeout())

	start := time.Now()
	_, err := s.Extract(context.Background(), ExtractRequest{Content: "1. 题目"})
	require.NoError(t, err)
	require.True(t, eng.ok)
	assert.WithinDuration(t, start.Add(7*time.Second), eng.deadline, 2*time.Second)
}

func TestGeminiEngine_MissingKey(t *testing.T) {
	_, err := NewGeminiEngine(config.GeminiConfig{Model: "gemini-2.5-flash"}).Chat(context.Background(), "", "sys", "x")
	assert.ErrorIs(t, err, util.ErrGeminiKeyMissing)
}

func TestExtractService_Precheck(t *testing.T) {
	tests := []struct {
		name    string
		engine  ExtractEngine
		req     ExtractRequest
		wantErr error
	}{
		{
			name:    "deepseek key checked before content",
			engine:  NewAIService(config.AIConfig{}),
			req:     ExtractRequest{Content: "  "},
			wantErr: util.ErrAPIKeyMissing,
		},
		{
			name:    "empty content with key",
			engine:  NewAIService(config.AIConfig{}),
			req:     ExtractRequest{Content: "", APIKey: "sk"},
			wantErr: util.ErrContentMissing,
		},
		{
			name:    "gemini key from config",
			engine:  NewGeminiEngine(config.GeminiConfig{}),
			req:     ExtractRequest{Content: "x"},
			wantErr: util.ErrGeminiKeyMissing,
		},
		{
			name:    "engine without key check",
			engine:  &fakeEngine{name: "gemini", reply: "ok"},
			req:     ExtractRequest{Content: "\n"},
			wantErr: util.ErrContentMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewExtractService(nil, 0, tt.engine)

			_, err := s.Extract(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)

			stream, errs, _, err := s.ExtractStream(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, stream)
			assert.Nil(t, errs)
		})
	}
}
