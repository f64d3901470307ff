package controller

import (
	"edumate_backend/internal/service"
	"edumate_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type StudyTimeController struct {
	StudyTimeService *service.StudyTimeService
}

func NewStudyTimeController(studyTimeService *service.StudyTimeService) *StudyTimeController {
	return &StudyTimeController{StudyTimeService: studyTimeService}
}

// Track godoc
// @Summary 记录学习时长
// @Description 记录一次学习会话并累计当日模块总时长，module 取 s1/s2/s3
// @Tags 学习时长
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TrackTimeRequest true "学习时长"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "参数非法"
// @Router /api/time/track [post]
func (c *StudyTimeController) Track(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TrackTimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	// 只能给自己记时长
	req.StudentID = claims.UserID

	if err := c.StudyTimeService.Track(req); err != nil {
		if errors.Is(err, util.ErrInvalidModule) || errors.Is(err, util.ErrInvalidSeconds) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"tracked": true})
}
