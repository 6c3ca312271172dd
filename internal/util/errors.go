package util

import "errors"

var (
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseArchived       = errors.New("course archived")
	ErrCourseCodeTaken      = errors.New("course code already in use")
	ErrCourseHasEnrollments = errors.New("course still has active enrollments")
	ErrComponentNotFound    = errors.New("grade component not found")
	ErrBandNotFound         = errors.New("grade band not found")
	ErrInvalidBandRange     = errors.New("band min score greater than max score")
	ErrWeightExceeded       = errors.New("component weights would exceed 100")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrAssignmentNotOpen    = errors.New("assignment not open for submissions")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrGradeNotFound        = errors.New("grade not found")
	ErrEnrollmentNotFound   = errors.New("enrollment not found")
	ErrNotEnrolled          = errors.New("student not enrolled in course")
	ErrDuplicateEnrollment  = errors.New("student already enrolled")
	ErrInvalidScore         = errors.New("score out of range")
	ErrMaterialNotFound     = errors.New("material not found")
)
