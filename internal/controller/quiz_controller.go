package controller

import (
	"edumate_backend/internal/quiz"
	"edumate_backend/internal/service"
	"edumate_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Generate godoc
// @Summary 生成测验
// @Description 基于知识库上下文出题，解析失败时返回占位测验（raw_ok=false），不会失败
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.GenerateRequest true "主题、年级、题数、难度"
// @Success 200 {object} util.Response{data=service.QuizPayload}
// @Router /api/quiz/generate [post]
func (c *QuizController) Generate(ctx *gin.Context) {
	var req service.GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	payload := c.QuizService.Generate(ctx.Request.Context(), req)
	util.Success(ctx, payload)
}

type GradeRequest struct {
	Items   []quiz.Item   `json:"items" binding:"required"`
	Answers []quiz.Answer `json:"answers" binding:"required"`
}

// Grade godoc
// @Summary 测验判分
// @Description 对提交的作答确定性判分，未匹配题目的作答只计入 submitted
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body GradeRequest true "题目和作答"
// @Success 200 {object} util.Response{data=quiz.GradingResult}
// @Router /api/quiz/grade [post]
func (c *QuizController) Grade(ctx *gin.Context) {
	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, c.QuizService.Grade(req.Items, req.Answers))
}

// Track godoc
// @Summary 记录测验结果
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TrackRequest true "测验记录"
// @Success 201 {object} util.Response{data=model.QuizAttempt}
// @Router /api/quiz/track [post]
func (c *QuizController) Track(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TrackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	// 测验记录始终落在当前登录用户名下
	req.StudentID = claims.UserID

	attempt, err := c.QuizService.Track(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, attempt)
}
