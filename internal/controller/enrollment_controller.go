package controller

import (
	"aivra_backend/internal/service"
	"aivra_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// GetEnrollment godoc
// @Summary 获取选课记录（不存在则自动创建）
// @Description 首次访问即选课；已存在时刷新最后访问时间
// @Tags 选课
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} model.Enrollment
// @Failure 401 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /enrollments/{courseId} [get]
func (c *EnrollmentController) GetEnrollment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := ctx.Param("courseId")

	enrollment, err := c.EnrollmentService.GetOrCreateEnrollment(claims.UserID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, enrollment)
}

// GetUserEnrollments godoc
// @Summary 获取当前用户的全部选课记录
// @Tags 选课
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.Enrollment
// @Failure 401 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /enrollments [get]
func (c *EnrollmentController) GetUserEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	enrollments, err := c.EnrollmentService.ListEnrollments(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, enrollments)
}

// UpdateProgressRequest 章节完成标记请求
// swagger:model UpdateProgressRequest
type UpdateProgressRequest struct {
	ChapterID   string `json:"chapterId" binding:"required"`
	IsCompleted *bool  `json:"isCompleted" binding:"required"`
}

// UpdateProgress godoc
// @Summary 标记/取消标记章节完成
// @Description 幂等操作；选课记录不存在时返回404，不自动创建
// @Tags 选课
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param body body UpdateProgressRequest true "章节完成标记"
// @Success 200 {object} object
// @Failure 404 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /enrollments/{courseId}/progress [post]
func (c *EnrollmentController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID := ctx.Param("courseId")

	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	completedChapters, err := c.EnrollmentService.SetChapterCompletion(claims.UserID, courseID, req.ChapterID, *req.IsCompleted)
	if err != nil {
		if errors.Is(err, util.ErrEnrollmentNotFound) {
			util.NotFound(ctx, "Enrollment not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"message":           "Progress updated",
		"completedChapters": completedChapters,
	})
}
