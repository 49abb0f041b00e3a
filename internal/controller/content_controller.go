package controller

import (
	"aivra_backend/internal/service"
	"aivra_backend/internal/util"
	"bytes"
	"io"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContentController 处理课程附件与章节资料的上传
type ContentController struct {
	StorageService *service.StorageService
}

func NewContentController(storageService *service.StorageService) *ContentController {
	return &ContentController{StorageService: storageService}
}

// UploadAttachment godoc
// @Summary 上传课程附件
// @Description 接收 multipart 文件，MIME 深度校验后写入配置的存储后端
// @Tags 内容
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "附件文件"
// @Success 200 {object} object
// @Failure 400 {object} util.ErrorResponse
// @Failure 403 {object} util.ErrorResponse
// @Router /upload [post]
func (c *ContentController) UploadAttachment(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	// MIME 校验会消耗前512字节，校验后拼回完整流
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		util.LogInternalError(ctx, err)
		return
	}
	mimeType, err := util.ValidateMimeType(bytes.NewReader(head[:n]), util.AllowedAttachmentTypes)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	filename := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	reader := io.MultiReader(bytes.NewReader(head[:n]), file)

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, reader, fileHeader.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"name": fileHeader.Filename,
		"url":  url,
	})
}
