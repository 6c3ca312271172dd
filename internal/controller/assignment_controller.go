package controller

import (
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/service"
	"gradebook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// Create godoc
// @Summary 创建作业（草稿状态）
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.AssignmentRequest true "作业信息"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Router /api/courses/{id}/assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req service.AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.Create(courseID, claims, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, assignment)
}

// ListForCourse godoc
// @Summary 课程作业列表
// @Description 学生只能看到已发布/已截止的作业
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/courses/{id}/assignments [get]
func (c *AssignmentController) ListForCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	assignments, err := c.AssignmentService.ListForCourse(courseID, claims.Role)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// Get godoc
// @Summary 作业详情
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Router /api/assignments/{id} [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}
	assignment, err := c.AssignmentService.GetByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if claims.Role == model.Student && assignment.Status == model.AssignmentDraft {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, assignment)
}

// Update godoc
// @Summary 更新作业
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Param body body service.AssignmentRequest true "作业信息"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Router /api/assignments/{id} [put]
func (c *AssignmentController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	var req service.AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.Update(id, claims, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

// Delete godoc
// @Summary 删除作业
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Success 200 {object} util.Response
// @Router /api/assignments/{id} [delete]
func (c *AssignmentController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}
	if err := c.AssignmentService.Delete(id, claims); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// SetStatus godoc
// @Summary 变更作业状态（发布/关闭）
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Router /api/assignments/{id}/status [patch]
func (c *AssignmentController) SetStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	var body struct {
		Status model.AssignmentStatus `json:"status" binding:"required,oneof=draft published closed"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.SetStatus(id, claims, body.Status)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

// UploadAttachment godoc
// @Summary 上传作业附件
// @Tags 作业
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Param file formData file true "附件"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Router /api/assignments/{id}/attachment [post]
func (c *AssignmentController) UploadAttachment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid assignment id")
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

	assignment, err := c.AssignmentService.UploadAttachment(ctx.Request.Context(), id, claims, file, fileHeader.Size, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}
