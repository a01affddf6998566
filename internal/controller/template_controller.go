package controller

import (
	"errors"
	"exam_template_backend/internal/parser"
	"exam_template_backend/internal/service"
	"exam_template_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TemplateController struct {
	service *service.TemplateService
}

func NewTemplateController(s *service.TemplateService) *TemplateController {
	return &TemplateController{service: s}
}

type GenerateDualRequest struct {
	Content string `json:"content"`
}

type ProcessAnswersRequest struct {
	Answers string `json:"answers"`
	Format  string `json:"format"`
}

// GenerateDual godoc
// @Summary 生成双模版
// @Description 解析答案原文，生成模版一（填空占位）和模版二（评分 YAML）
// @Tags 模版
// @Accept json
// @Produce json
// @Param body body GenerateDualRequest true "答案原文"
// @Success 200 {object} util.Response{data=service.DualTemplateResult}
// @Failure 400 {object} util.Response
// @Router /templates/dual [post]
func (c *TemplateController) GenerateDual(ctx *gin.Context) {
	var req GenerateDualRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.service.GenerateDual(ctx.Request.Context(), req.Content)
	if err != nil {
		if errors.Is(err, util.ErrEmptyAnswerInput) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// ProcessAnswers godoc
// @Summary 处理客观题答案
// @Description 将连续字母答案（如 ABCD）转换为评分 YAML；其他格式返回提示文本
// @Tags 模版
// @Accept json
// @Produce json
// @Param body body ProcessAnswersRequest true "答案字母"
// @Success 200 {object} util.Response{data=service.LetterAnswerResult}
// @Failure 400 {object} util.Response
// @Router /answers/process [post]
func (c *TemplateController) ProcessAnswers(ctx *gin.Context) {
	var req ProcessAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.service.ProcessAnswers(ctx.Request.Context(), req.Answers, req.Format)
	if err != nil {
		if errors.Is(err, util.ErrEmptyAnswerInput) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// Example godoc
// @Summary 示例答案
// @Tags 模版
// @Produce json
// @Success 200 {object} util.Response{data=map[string]string}
// @Router /templates/example [get]
func (c *TemplateController) Example(ctx *gin.Context) {
	util.Success(ctx, gin.H{"content": parser.ExampleAnswerKey})
}
