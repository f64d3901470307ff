package controller

import (
	"edumate_backend/internal/model"
	"edumate_backend/internal/service"
	"edumate_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
	UserService  *service.UserService
}

func NewStatsController(statsService *service.StatsService, userService *service.UserService) *StatsController {
	return &StatsController{
		StatsService: statsService,
		UserService:  userService,
	}
}

// StudentStats godoc
// @Summary 学生统计面板
// @Description 测验汇总、今日学习时长和最近动态。学生看自己，家长看绑定的学生。
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path string true "学生ID"
// @Success 200 {object} util.Response{data=service.StudentStats}
// @Failure 403 {object} util.Response "无权查看"
// @Router /api/stats/student/{studentId} [get]
func (c *StatsController) StudentStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	studentID := ctx.Param("studentId")
	switch claims.Role {
	case model.Student:
		if claims.UserID != studentID {
			util.Forbidden(ctx)
			return
		}
	case model.Parent:
		if err := c.UserService.VerifyLink(claims.UserID, studentID); err != nil {
			if errors.Is(err, util.ErrNotLinked) {
				util.Forbidden(ctx)
			} else {
				util.LogInternalError(ctx, err)
			}
			return
		}
	default:
		util.Forbidden(ctx)
		return
	}

	stats, err := c.StatsService.StudentStats(ctx.Request.Context(), studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
