package controller

import (
	"aivra_backend/internal/model"
	"aivra_backend/internal/service"
	"aivra_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary 获取当前用户档案
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} model.User
// @Failure 404 {object} util.ErrorResponse
// @Router /users/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	user, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "User profile not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// UpdateProfileRequest 档案更新请求
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	DisplayName string         `json:"displayName"`
	Role        model.UserRole `json:"role" binding:"omitempty,oneof=student professor admin"`
	Bio         string         `json:"bio"`
}

// UpdateProfile godoc
// @Summary 更新当前用户档案
// @Description 合并式更新，完成引导流程标记置为 true
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpdateProfileRequest true "档案字段"
// @Success 200 {object} object
// @Failure 400 {object} util.ErrorResponse
// @Router /users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, service.ProfileUpdate{
		DisplayName: req.DisplayName,
		Role:        req.Role,
		Bio:         req.Bio,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"message": "User profile updated",
		"user":    user,
	})
}

// CreateProfileRequest 档案创建请求（注册后调用）
// swagger:model CreateProfileRequest
type CreateProfileRequest struct {
	UID       string `json:"uid" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CreateProfile godoc
// @Summary 创建用户档案（幂等）
// @Description 档案已存在时原样返回，不覆盖
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateProfileRequest true "档案信息"
// @Success 200 {object} object
// @Success 201 {object} object
// @Router /users [post]
func (c *UserController) CreateProfile(ctx *gin.Context) {
	var req CreateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, created, err := c.UserService.CreateProfile(req.UID, req.Email, req.FirstName, req.LastName)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if !created {
		util.Success(ctx, gin.H{
			"message": "User already exists",
			"user":    user,
		})
		return
	}

	util.Created(ctx, gin.H{
		"message": "User profile created",
		"user":    user,
	})
}

// PromoteToProfessor godoc
// @Summary 提升为教授（测试路由）
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} object
// @Router /users/promote [post]
func (c *UserController) PromoteToProfessor(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.UserService.Promote(claims.UserID, model.Professor); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "User promoted to professor"})
}

// PromoteToAdmin godoc
// @Summary 提升为管理员（测试路由）
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} object
// @Router /users/promote-admin [post]
func (c *UserController) PromoteToAdmin(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.UserService.Promote(claims.UserID, model.Admin); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "User promoted to admin"})
}
