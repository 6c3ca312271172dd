package controller

import (
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/service"
	"gradebook_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService     *service.CourseService
	GradeService      *service.GradeService
	EnrollmentService *service.EnrollmentService
}

func NewCourseController(courseService *service.CourseService, gradeService *service.GradeService, enrollmentService *service.EnrollmentService) *CourseController {
	return &CourseController{
		CourseService:     courseService,
		GradeService:      gradeService,
		EnrollmentService: enrollmentService,
	}
}

// Create godoc
// @Summary 创建课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 409 {object} util.Response "课程代码已存在"
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Create(claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// List godoc
// @Summary 课程列表
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param search query string false "搜索"
// @Param semester query string false "学期过滤"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	courses, total, err := c.CourseService.List(ctx.Query("search"), ctx.Query("semester"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// GetDetail godoc
// @Summary 课程详情（含成绩构成与分数段）
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/courses/{id} [get]
func (c *CourseController) GetDetail(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	course, err := c.CourseService.GetDetail(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Update godoc
// @Summary 更新课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Update(id, claims, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	// 及格线等配置变化会影响缓存的投影结果
	c.GradeService.InvalidateCourse(id)
	util.Success(ctx, course)
}

// Archive godoc
// @Summary 归档/恢复课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/archive [patch]
func (c *CourseController) Archive(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var body struct {
		Archived bool `json:"archived"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.Archive(id, claims, body.Archived); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"archived": body.Archived})
}

// Delete godoc
// @Summary 删除课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	if err := c.CourseService.Delete(id, claims); err != nil {
		respondServiceError(ctx, err)
		return
	}
	c.GradeService.InvalidateCourse(id)
	util.Success(ctx, nil)
}

// ListMine godoc
// @Summary 我的课程（教师为所授课程，学生为所选课程）
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses/mine [get]
func (c *CourseController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var (
		courses []model.Course
		err     error
	)
	if claims.Role == model.Student {
		courses, err = c.EnrollmentService.ListStudentCourses(claims.UserID)
	} else {
		courses, err = c.CourseService.ListByProfessor(claims.UserID)
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// --- 成绩构成项 ---

// CreateComponent godoc
// @Summary 新增成绩构成项
// @Description 权重之和超过100会被拒绝，不足100返回提示
// @Tags 成绩构成
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.ComponentRequest true "构成项"
// @Success 201 {object} util.Response{data=service.ComponentResult}
// @Failure 400 {object} util.Response "权重超限"
// @Router /api/courses/{id}/components [post]
func (c *CourseController) CreateComponent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req service.ComponentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.CourseService.CreateComponent(courseID, claims, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	c.GradeService.InvalidateCourse(courseID)
	util.Created(ctx, result)
}

// ListComponents godoc
// @Summary 课程成绩构成项列表
// @Tags 成绩构成
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.GradeComponent}
// @Router /api/courses/{id}/components [get]
func (c *CourseController) ListComponents(ctx *gin.Context) {
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	components, err := c.CourseService.ListComponents(courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, components)
}

// UpdateComponent godoc
// @Summary 更新成绩构成项
// @Tags 成绩构成
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param componentId path int true "构成项ID"
// @Param body body service.ComponentRequest true "构成项"
// @Success 200 {object} util.Response{data=service.ComponentResult}
// @Router /api/courses/{id}/components/{componentId} [put]
func (c *CourseController) UpdateComponent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	componentID, ok2 := util.ParseUintParam(ctx.Param("componentId"))
	if !ok || !ok2 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.ComponentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.CourseService.UpdateComponent(courseID, componentID, claims, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	c.GradeService.InvalidateCourse(courseID)
	util.Success(ctx, result)
}

// DeleteComponent godoc
// @Summary 删除成绩构成项
// @Tags 成绩构成
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param componentId path int true "构成项ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/components/{componentId} [delete]
func (c *CourseController) DeleteComponent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	componentID, ok2 := util.ParseUintParam(ctx.Param("componentId"))
	if !ok || !ok2 {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.CourseService.DeleteComponent(courseID, componentID, claims); err != nil {
		respondServiceError(ctx, err)
		return
	}
	c.GradeService.InvalidateCourse(courseID)
	util.Success(ctx, nil)
}

// --- 分数段 ---

// CreateBand godoc
// @Summary 新增分数段
// @Description 分数段可重叠，匹配时按存储顺序取先匹配者；重叠时返回提示
// @Tags 分数段
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.BandRequest true "分数段"
// @Success 201 {object} util.Response{data=service.BandResultWithWarning}
// @Router /api/courses/{id}/bands [post]
func (c *CourseController) CreateBand(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req service.BandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.CourseService.CreateBand(courseID, claims, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	c.GradeService.InvalidateCourse(courseID)
	util.Created(ctx, result)
}

// ListBands godoc
// @Summary 课程分数段列表
// @Tags 分数段
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.GradeBand}
// @Router /api/courses/{id}/bands [get]
func (c *CourseController) ListBands(ctx *gin.Context) {
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	bands, err := c.CourseService.ListBands(courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, bands)
}

// UpdateBand godoc
// @Summary 更新分数段
// @Tags 分数段
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param bandId path int true "分数段ID"
// @Param body body service.BandRequest true "分数段"
// @Success 200 {object} util.Response{data=service.BandResultWithWarning}
// @Router /api/courses/{id}/bands/{bandId} [put]
func (c *CourseController) UpdateBand(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	bandID, ok2 := util.ParseUintParam(ctx.Param("bandId"))
	if !ok || !ok2 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.BandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.CourseService.UpdateBand(courseID, bandID, claims, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	c.GradeService.InvalidateCourse(courseID)
	util.Success(ctx, result)
}

// DeleteBand godoc
// @Summary 删除分数段
// @Tags 分数段
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param bandId path int true "分数段ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/bands/{bandId} [delete]
func (c *CourseController) DeleteBand(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	bandID, ok2 := util.ParseUintParam(ctx.Param("bandId"))
	if !ok || !ok2 {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.CourseService.DeleteBand(courseID, bandID, claims); err != nil {
		respondServiceError(ctx, err)
		return
	}
	c.GradeService.InvalidateCourse(courseID)
	util.Success(ctx, nil)
}

// --- 选课 ---

// Enroll godoc
// @Summary 学生选课
// @Tags 选课
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 409 {object} util.Response "重复选课"
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	enrollment, err := c.EnrollmentService.Enroll(courseID, claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// Drop godoc
// @Summary 学生退课
// @Tags 选课
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/enroll [delete]
func (c *CourseController) Drop(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	if err := c.EnrollmentService.Drop(courseID, claims.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	c.GradeService.InvalidateProjection(courseID, claims.UserID)
	util.Success(ctx, nil)
}

// ListRoster godoc
// @Summary 课程花名册（在读学生）
// @Tags 选课
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/courses/{id}/roster [get]
func (c *CourseController) ListRoster(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	if _, err := c.CourseService.CheckOwnership(courseID, claims); err != nil {
		respondServiceError(ctx, err)
		return
	}
	roster, err := c.EnrollmentService.ListRoster(courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, roster)
}

// CompleteEnrollment godoc
// @Summary 标记学生完成课程
// @Tags 选课
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/roster/{studentId}/complete [patch]
func (c *CourseController) CompleteEnrollment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := util.ParseUintParam(ctx.Param("id"))
	studentID, ok2 := util.ParseUintParam(ctx.Param("studentId"))
	if !ok || !ok2 {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if _, err := c.CourseService.CheckOwnership(courseID, claims); err != nil {
		respondServiceError(ctx, err)
		return
	}
	if err := c.EnrollmentService.Complete(courseID, studentID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
