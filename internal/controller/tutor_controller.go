package controller

import (
	"edumate_backend/internal/latex"
	"edumate_backend/internal/service"
	"edumate_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type TutorController struct {
	TutorService *service.TutorService
}

func NewTutorController(tutorService *service.TutorService) *TutorController {
	return &TutorController{TutorService: tutorService}
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
	Grade    int    `json:"grade"`
}

// Ask godoc
// @Summary AI 辅导问答
// @Description 先检索知识库，再调用大模型按年级口吻回答，上游失败时返回降级答案
// @Tags 辅导
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AskRequest true "问题和年级"
// @Success 200 {object} util.Response{data=service.TutorAnswer}
// @Router /api/ask [post]
func (c *TutorController) Ask(ctx *gin.Context) {
	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer := c.TutorService.Ask(ctx.Request.Context(), req.Question, req.Grade)
	util.Success(ctx, answer)
}

// AskStream godoc
// @Summary AI 辅导问答（流式）
// @Description SSE 推送增量回答，结束时附带整理后的全文
// @Tags 辅导
// @Accept json
// @Produce text/event-stream
// @Security ApiKeyAuth
// @Param body body AskRequest true "问题和年级"
// @Router /api/ask/stream [post]
func (c *TutorController) AskStream(ctx *gin.Context) {
	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	stream, sources, errChan := c.TutorService.AskStream(ctx.Request.Context(), req.Question, req.Grade)

	util.SSEHeaders(ctx)

	ctx.SSEvent("sources", sources)
	ctx.Writer.Flush()

	var full strings.Builder
	for content := range stream {
		full.WriteString(content)
		ctx.SSEvent("message", content)
		ctx.Writer.Flush()
	}

	if err := <-errChan; err != nil {
		ctx.SSEvent("error", err.Error())
		ctx.Writer.Flush()
	}

	// 增量里无法做 LaTeX 整理，结束时补发整理后的全文
	ctx.SSEvent("final", latex.Normalize(full.String()))
	ctx.SSEvent("end", "done")
	ctx.Writer.Flush()
}
