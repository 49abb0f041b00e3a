package controller

import (
	"aivra_backend/internal/model"
	"aivra_backend/internal/service"
	"aivra_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// GetAllCourses godoc
// @Summary 获取课程列表
// @Tags 课程
// @Produce json
// @Success 200 {array} model.Course
// @Failure 500 {object} util.ErrorResponse
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.CourseService.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourseByID godoc
// @Summary 获取单个课程
// @Tags 课程
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} model.Course
// @Failure 404 {object} util.ErrorResponse
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	course, err := c.CourseService.GetCourse(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "Course not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// CreateCourseRequest 建课向导提交的课程数据
// swagger:model CreateCourseRequest
type CreateCourseRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Duration    model.Duration     `json:"duration"`
	Seats       int                `json:"seats"`
	StartDate   string             `json:"startDate"`
	Attachments []model.Attachment `json:"attachments"`
	Tags        []string           `json:"tags"`
	Domain      string             `json:"domain"`
	Level       string             `json:"level"`
	Status      model.CourseStatus `json:"status"`
	Modules     []model.Module     `json:"modules"`
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateCourseRequest true "课程信息"
// @Success 201 {object} model.Course
// @Failure 400 {object} util.ErrorResponse
// @Failure 403 {object} util.ErrorResponse
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: claims.UserID,
		Duration:     req.Duration,
		Seats:        req.Seats,
		StartDate:    req.StartDate,
		Attachments:  req.Attachments,
		Tags:         req.Tags,
		Domain:       req.Domain,
		Level:        req.Level,
		Status:       req.Status,
		Modules:      req.Modules,
	}

	if err := c.CourseService.CreateCourse(course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// UpdateCourseRequest 课程更新请求，未出现的字段保持不变
// swagger:model UpdateCourseRequest
type UpdateCourseRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Duration    *model.Duration     `json:"duration"`
	Seats       *int                `json:"seats"`
	StartDate   *string             `json:"startDate"`
	Attachments *[]model.Attachment `json:"attachments"`
	Tags        *[]string           `json:"tags"`
	Domain      *string             `json:"domain"`
	Level       *string             `json:"level"`
	Status      *model.CourseStatus `json:"status"`
	Modules     *[]model.Module     `json:"modules"`
}

// UpdateCourse godoc
// @Summary 更新课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param body body UpdateCourseRequest true "要更新的字段"
// @Success 200 {object} object
// @Failure 404 {object} util.ErrorResponse
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Duration != nil {
		fields["duration"] = *req.Duration
	}
	if req.Seats != nil {
		fields["seats"] = *req.Seats
	}
	if req.StartDate != nil {
		fields["start_date"] = *req.StartDate
	}
	if req.Attachments != nil {
		fields["attachments"] = *req.Attachments
	}
	if req.Tags != nil {
		fields["tags"] = *req.Tags
	}
	if req.Domain != nil {
		fields["domain"] = *req.Domain
	}
	if req.Level != nil {
		fields["level"] = *req.Level
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Modules != nil {
		fields["modules"] = *req.Modules
	}

	if err := c.CourseService.UpdateCourse(ctx.Param("id"), fields); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "Course not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Course updated successfully"})
}

// DeleteCourse godoc
// @Summary 删除课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} object
// @Failure 404 {object} util.ErrorResponse
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.CourseService.DeleteCourse(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "Course not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "Course deleted successfully"})
}
