package controller

import (
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/service"
	"gradebook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradeController struct {
	GradeService *service.GradeService
}

func NewGradeController(gradeService *service.GradeService) *GradeController {
	return &GradeController{GradeService: gradeService}
}

// Record godoc
// @Summary 录入成绩
// @Description 作业成绩与构成项直评成绩二选一
// @Tags 成绩
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.GradeRequest true "成绩"
// @Success 201 {object} util.Response{data=model.Grade}
// @Router /api/courses/{id}/grades [post]
func (c *GradeController) Record(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req service.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	grade, err := c.GradeService.Record(courseID, claims, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, grade)
}

// Update godoc
// @Summary 更新成绩
// @Tags 成绩
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "成绩ID"
// @Param body body service.GradeUpdateRequest true "成绩"
// @Success 200 {object} util.Response{data=model.Grade}
// @Router /api/grades/{id} [put]
func (c *GradeController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	gradeID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid grade id")
		return
	}

	var req service.GradeUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	grade, err := c.GradeService.Update(gradeID, claims, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, grade)
}

// Delete godoc
// @Summary 删除成绩
// @Tags 成绩
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "成绩ID"
// @Success 200 {object} util.Response
// @Router /api/grades/{id} [delete]
func (c *GradeController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	gradeID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid grade id")
		return
	}
	if err := c.GradeService.Delete(gradeID, claims); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListMine godoc
// @Summary 学生查看自己在某课程的全部成绩
// @Tags 成绩
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Grade}
// @Router /api/grades/course/{courseId} [get]
func (c *GradeController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("courseId"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	grades, err := c.GradeService.ListForStudent(courseID, claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, grades)
}

// ListForAssignment godoc
// @Summary 教师查看某作业的全部成绩
// @Tags 成绩
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Success 200 {object} util.Response{data=[]model.Grade}
// @Router /api/assignments/{id}/grades [get]
func (c *GradeController) ListForAssignment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	assignmentID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}
	grades, err := c.GradeService.ListForAssignment(assignmentID, claims)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, grades)
}

// GetMyProjection godoc
// @Summary 学生查看自己的成绩投影
// @Description 按课程成绩构成加权计算当前成绩、预测成绩、及格状态与对应分数段
// @Tags 成绩投影
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=service.ProjectedGrade}
// @Failure 400 {object} util.Response "未选课"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/grades/projected/{courseId} [get]
func (c *GradeController) GetMyProjection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("courseId"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	projection, err := c.GradeService.GetProjection(ctx.Request.Context(), courseID, claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, projection)
}

// GetStudentProjection godoc
// @Summary 教师查看指定学生的成绩投影
// @Tags 成绩投影
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response{data=service.ProjectedGrade}
// @Router /api/courses/{id}/projected-grade/{studentId} [get]
func (c *GradeController) GetStudentProjection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	studentID, ok2 := util.ParseUintParam(ctx.Param("studentId"))
	if !ok || !ok2 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	// 学生只能看自己的投影，教师/管理员看任意学生
	if claims.Role == model.Student && studentID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	projection, err := c.GradeService.GetProjection(ctx.Request.Context(), courseID, studentID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, projection)
}

// GetGradebook godoc
// @Summary 课程成绩册（全部在读学生的投影汇总）
// @Tags 成绩投影
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]service.GradebookEntry}
// @Router /api/courses/{id}/gradebook [get]
func (c *GradeController) GetGradebook(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	entries, err := c.GradeService.GetGradebook(ctx.Request.Context(), courseID, claims)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
