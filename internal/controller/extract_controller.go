package controller

import (
	"errors"
	"exam_template_backend/internal/service"
	"exam_template_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExtractController struct {
	service *service.ExtractService
}

func NewExtractController(s *service.ExtractService) *ExtractController {
	return &ExtractController{service: s}
}

// writeExtractError 区分调用方输入错误与上游模型错误
func writeExtractError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrAPIKeyMissing),
		errors.Is(err, util.ErrGeminiKeyMissing),
		errors.Is(err, util.ErrContentMissing),
		errors.Is(err, util.ErrUnknownEngine):
		util.BadRequest(ctx, err.Error())
	default:
		util.BadGateway(ctx, err.Error())
	}
}

// Extract godoc
// @Summary 提取并整理题目
// @Description 将试卷文本发送至大模型（默认 DeepSeek），按格式要求整理 1-12 题
// @Tags 题目提取
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ExtractRequest true "试卷内容与格式要求"
// @Success 200 {object} util.Response{data=service.ExtractResult}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /questions/extract [post]
func (c *ExtractController) Extract(ctx *gin.Context) {
	var req service.ExtractRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.service.Extract(ctx.Request.Context(), req)
	if err != nil {
		writeExtractError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// ExtractStream godoc
// @Summary 流式提取题目
// @Description SSE 输出，事件依次为 engine、message（多次）、error（可选）、end
// @Tags 题目提取
// @Accept json
// @Produce text/event-stream
// @Security ApiKeyAuth
// @Param body body service.ExtractRequest true "试卷内容与格式要求"
// @Router /questions/extract/stream [post]
func (c *ExtractController) ExtractStream(ctx *gin.Context) {
	var req service.ExtractRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	stream, errChan, engine, err := c.service.ExtractStream(ctx.Request.Context(), req)
	if err != nil {
		writeExtractError(ctx, err)
		return
	}

	// 设置SSE响应头
	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	ctx.SSEvent("engine", engine)
	ctx.Writer.Flush()

	clientGone := ctx.Request.Context().Done()
loop:
	for {
		select {
		case <-clientGone:
			break loop
		case content, ok := <-stream:
			if !ok {
				break loop
			}
			ctx.SSEvent("message", content)
			ctx.Writer.Flush()
		}
	}

	// 客户端提前断开时继续消费，保证上游 goroutine 退出
	for range stream {
	}

	if err := <-errChan; err != nil {
		ctx.SSEvent("error", err.Error())
		ctx.Writer.Flush()
	}

	ctx.SSEvent("end", "done")
	ctx.Writer.Flush()
}

// DefaultFormat godoc
// @Summary 默认整理格式
// @Tags 题目提取
// @Produce json
// @Success 200 {object} util.Response{data=map[string]string}
// @Router /questions/format [get]
func (c *ExtractController) DefaultFormat(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"formatReq":    service.DefaultFormat,
		"systemPrompt": service.SystemPrompt,
	})
}
