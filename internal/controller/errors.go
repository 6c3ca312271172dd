package controller

import (
	"errors"
	"gradebook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondServiceError 统一把 service 层的业务错误映射到 HTTP 状态码，
// 未识别的错误按 500 记录
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrComponentNotFound),
		errors.Is(err, util.ErrBandNotFound),
		errors.Is(err, util.ErrAssignmentNotFound),
		errors.Is(err, util.ErrSubmissionNotFound),
		errors.Is(err, util.ErrGradeNotFound),
		errors.Is(err, util.ErrEnrollmentNotFound),
		errors.Is(err, util.ErrMaterialNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNotEnrolled),
		errors.Is(err, util.ErrCourseArchived),
		errors.Is(err, util.ErrAssignmentNotOpen),
		errors.Is(err, util.ErrInvalidScore),
		errors.Is(err, util.ErrInvalidBandRange),
		errors.Is(err, util.ErrWeightExceeded):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrCourseCodeTaken),
		errors.Is(err, util.ErrCourseHasEnrollments),
		errors.Is(err, util.ErrDuplicateEnrollment),
		errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
