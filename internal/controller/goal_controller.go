package controller

import (
	"edumate_backend/internal/model"
	"edumate_backend/internal/service"
	"edumate_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

// GetToday godoc
// @Summary 今日学习目标
// @Description 未设置时返回默认目标（1800秒 / 2次测验）
// @Tags 目标
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.DailyGoal}
// @Router /api/goals [get]
func (c *GoalController) GetToday(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	goal, err := c.GoalService.TodayGoals(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, goal)
}

// SetToday godoc
// @Summary 设置今日学习目标
// @Tags 目标
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SetGoalsRequest true "目标"
// @Success 200 {object} util.Response{data=model.DailyGoal}
// @Router /api/goals [post]
func (c *GoalController) SetToday(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SetGoalsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.SetToday(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, goal)
}

// ParentSet godoc
// @Summary 家长为学生设置今日目标
// @Tags 目标
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path string true "学生ID"
// @Param body body service.SetGoalsRequest true "目标"
// @Success 200 {object} util.Response{data=model.DailyGoal}
// @Failure 403 {object} util.Response "未绑定该学生"
// @Router /api/goals/students/{studentId} [post]
func (c *GoalController) ParentSet(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.Role != model.Parent {
		util.Forbidden(ctx)
		return
	}

	var req service.SetGoalsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.ParentSet(claims.UserID, ctx.Param("studentId"), req)
	if err != nil {
		if errors.Is(err, util.ErrNotLinked) {
			util.Forbidden(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, goal)
}

// MonthCompletion godoc
// @Summary 月度目标完成日历
// @Description 整月逐日的目标与实际学习时长、测验次数对照
// @Tags 目标
// @Produce json
// @Security ApiKeyAuth
// @Param year path int true "年份"
// @Param month path int true "月份 1-12"
// @Success 200 {object} util.Response{data=[]service.DayCompletion}
// @Router /api/goals/month/{year}/{month} [get]
func (c *GoalController) MonthCompletion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		util.BadRequest(ctx, "invalid year")
		return
	}
	month, err := strconv.Atoi(ctx.Param("month"))
	if err != nil || month < 1 || month > 12 {
		util.BadRequest(ctx, "invalid month")
		return
	}

	days, err := c.GoalService.MonthCompletion(claims.UserID, year, month)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, days)
}
