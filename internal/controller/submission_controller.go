package controller

import (
	"gradebook_backend/internal/service"
	"gradebook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// Submit godoc
// @Summary 提交作业
// @Description 截止时间后的提交仍被接收，但标记为迟交
// @Tags 提交
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Param file formData file true "作业文件"
// @Success 201 {object} util.Response{data=model.Submission}
// @Failure 400 {object} util.Response "作业未开放或文件类型不允许"
// @Router /api/assignments/{id}/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	assignmentID, ok := util.ParseUintParam(ctx.Param("id"))
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

	submission, err := c.SubmissionService.Submit(ctx.Request.Context(), assignmentID, claims.UserID, file, fileHeader.Size, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, submission)
}

// ListForAssignment godoc
// @Summary 作业提交列表（教师）
// @Tags 提交
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/assignments/{id}/submissions [get]
func (c *SubmissionController) ListForAssignment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	assignmentID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}
	submissions, err := c.SubmissionService.ListForAssignment(assignmentID, claims)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// ListMine godoc
// @Summary 我的提交记录
// @Tags 提交
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/submissions/mine [get]
func (c *SubmissionController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	submissions, err := c.SubmissionService.ListForStudent(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// Grade godoc
// @Summary 批改提交
// @Description 写入成绩并将提交状态置为已批改，成绩缓存随之失效
// @Tags 提交
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "提交ID"
// @Param body body service.GradeSubmissionRequest true "分数与评语"
// @Success 201 {object} util.Response{data=model.Grade}
// @Router /api/submissions/{id}/grade [post]
func (c *SubmissionController) Grade(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.GradeSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	grade, err := c.SubmissionService.GradeSubmission(ctx.Param("id"), claims, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, grade)
}

// Download godoc
// @Summary 下载提交文件
// @Tags 提交
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "提交ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/submissions/{id}/download [get]
func (c *SubmissionController) Download(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	submission, url, err := c.SubmissionService.Download(ctx.Param("id"), claims)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"fileName": submission.FileName,
		"url":      url,
	})
}
