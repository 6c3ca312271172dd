package controller

import (
	"gradebook_backend/internal/service"
	"gradebook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	MaterialService *service.MaterialService
}

func NewMaterialController(materialService *service.MaterialService) *MaterialController {
	return &MaterialController{MaterialService: materialService}
}

// Upload godoc
// @Summary 上传课程资料
// @Description 视频文件自动探测时长并生成缩略图
// @Tags 课程资料
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param title formData string true "标题"
// @Param file formData file true "资料文件"
// @Success 201 {object} util.Response{data=model.CourseMaterial}
// @Router /api/courses/{id}/materials [post]
func (c *MaterialController) Upload(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}

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

	material, err := c.MaterialService.Upload(ctx.Request.Context(), courseID, claims, file, fileHeader.Size, title, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, material)
}

// ListForCourse godoc
// @Summary 课程资料列表
// @Tags 课程资料
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.CourseMaterial}
// @Router /api/courses/{id}/materials [get]
func (c *MaterialController) ListForCourse(ctx *gin.Context) {
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	materials, err := c.MaterialService.ListForCourse(courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, materials)
}

// Delete godoc
// @Summary 删除课程资料
// @Tags 课程资料
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "资料ID"
// @Success 200 {object} util.Response
// @Router /api/materials/{id} [delete]
func (c *MaterialController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.MaterialService.Delete(ctx.Request.Context(), ctx.Param("id"), claims); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
