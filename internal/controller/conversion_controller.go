package controller

import (
	"errors"
	"exam_template_backend/internal/model"
	"exam_template_backend/internal/service"
	"exam_template_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ConversionController struct {
	service *service.ConversionService
}

func NewConversionController(s *service.ConversionService) *ConversionController {
	return &ConversionController{service: s}
}

// List godoc
// @Summary 转换记录列表
// @Tags 转换记录
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页条数" default(20)
// @Param kind query string false "类型 dual_template / letter_answers / question_extraction"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /conversions [get]
func (c *ConversionController) List(ctx *gin.Context) {
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)
	kind := model.ConversionKind(ctx.Query("kind"))
	if kind != "" && !kind.Valid() {
		util.BadRequest(ctx, "invalid kind")
		return
	}

	page, limit = service.NormalizePage(page, limit)
	records, total, err := c.service.List(ctx.Request.Context(), kind, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if records == nil {
		records = []model.ConversionRecord{}
	}

	util.Success(ctx, util.PageResponse{
		List:  records,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get godoc
// @Summary 转换记录详情
// @Tags 转换记录
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "记录ID"
// @Success 200 {object} util.Response{data=model.ConversionRecord}
// @Failure 404 {object} util.Response
// @Router /conversions/{id} [get]
func (c *ConversionController) Get(ctx *gin.Context) {
	record, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrConversionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, record)
}

// Delete godoc
// @Summary 删除转换记录
// @Tags 转换记录
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "记录ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /conversions/{id} [delete]
func (c *ConversionController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrConversionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"id": ctx.Param("id")})
}
