package controller

import (
	"edumate_backend/internal/model"
	"edumate_backend/internal/service"
	"edumate_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

// UserController 处理家长-学生关系相关的HTTP请求
type UserController struct {
	UserService *service.UserService
}

// NewUserController 创建一个新的用户控制器实例
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

type LinkStudentRequest struct {
	StudentEmail string `json:"student_email" binding:"required,email"`
}

// LinkStudent godoc
// @Summary 家长绑定学生
// @Description 家长通过学生邮箱建立绑定关系
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body LinkStudentRequest true "学生邮箱"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "学生不存在"
// @Failure 409 {object} util.Response "已绑定"
// @Router /api/auth/link [post]
func (c *UserController) LinkStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.Role != model.Parent {
		util.Forbidden(ctx)
		return
	}

	var req LinkStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.UserService.LinkStudent(claims.UserID, req.StudentEmail)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyLinked):
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, student)
}

// LinkedStudents godoc
// @Summary 家长名下的学生列表
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/auth/students [get]
func (c *UserController) LinkedStudents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.Role != model.Parent {
		util.Forbidden(ctx)
		return
	}

	students, err := c.UserService.LinkedStudents(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, students)
}

type UpdateGradeRequest struct {
	Grade int `json:"grade" binding:"required"`
}

// UpdateStudentGrade godoc
// @Summary 家长修改学生年级
// @Description 年级范围 1-12，需要已有绑定关系
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path string true "学生ID"
// @Param body body UpdateGradeRequest true "新年级"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "未绑定该学生"
// @Router /api/students/{studentId}/grade [put]
func (c *UserController) UpdateStudentGrade(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.Role != model.Parent {
		util.Forbidden(ctx)
		return
	}

	var req UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.UserService.UpdateStudentGrade(claims.UserID, ctx.Param("studentId"), req.Grade)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidGrade):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrNotLinked):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"updated": true})
}
