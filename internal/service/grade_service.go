package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/repository"
	"gradebook_backend/internal/util"
	"gradebook_backend/pkg/logger"
	"gradebook_backend/pkg/monitoring"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const projectionCacheTTL = 5 * time.Minute

type GradeService struct {
	GradeRepo      *repository.GradeRepository
	CourseRepo     *repository.CourseRepository
	AssignmentRepo *repository.AssignmentRepository
	UserRepo       *repository.UserRepository
	Enrollment     *EnrollmentService
	Redis          *redis.Client
}

func NewGradeService(gradeRepo *repository.GradeRepository, courseRepo *repository.CourseRepository, assignmentRepo *repository.AssignmentRepository, userRepo *repository.UserRepository, enrollment *EnrollmentService, rdb *redis.Client) *GradeService {
	return &GradeService{
		GradeRepo:      gradeRepo,
		CourseRepo:     courseRepo,
		AssignmentRepo: assignmentRepo,
		UserRepo:       userRepo,
		Enrollment:     enrollment,
		Redis:          rdb,
	}
}

type GradeRequest struct {
	StudentID        uint    `json:"studentId" binding:"required"`
	AssignmentID     *uint   `json:"assignmentId"`
	GradeComponentID *uint   `json:"gradeComponentId"`
	Score            float64 `json:"score" binding:"gte=0"`
	MaxScore         float64 `json:"maxScore" binding:"gt=0"`
	Comment          string  `json:"comment"`
}

// Record 录入一条成绩，作业成绩与构成项直评成绩二选一
func (s *GradeService) Record(courseID uint, claims *util.Claims, req GradeRequest) (*model.Grade, error) {
	if _, err := s.courseOwnership(courseID, claims); err != nil {
		return nil, err
	}
	if req.AssignmentID == nil && req.GradeComponentID == nil {
		return nil, errors.New("either assignmentId or gradeComponentId is required")
	}
	if req.Score > req.MaxScore {
		return nil, util.ErrInvalidScore
	}

	if _, err := s.Enrollment.RequireActive(courseID, req.StudentID); err != nil {
		return nil, err
	}

	if req.AssignmentID != nil {
		assignment, err := s.AssignmentRepo.FindByID(*req.AssignmentID)
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && assignment.CourseID != courseID) {
			return nil, util.ErrAssignmentNotFound
		} else if err != nil {
			return nil, err
		}
	}
	if req.GradeComponentID != nil {
		component, err := s.CourseRepo.FindComponentByID(*req.GradeComponentID)
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && component.CourseID != courseID) {
			return nil, util.ErrComponentNotFound
		} else if err != nil {
			return nil, err
		}
	}

	grade := &model.Grade{
		StudentID:        req.StudentID,
		CourseID:         courseID,
		AssignmentID:     req.AssignmentID,
		GradeComponentID: req.GradeComponentID,
		Score:            req.Score,
		MaxScore:         req.MaxScore,
		GraderID:         claims.UserID,
		Comment:          req.Comment,
	}
	if err := s.GradeRepo.Create(grade); err != nil {
		return nil, err
	}
	s.InvalidateProjection(courseID, req.StudentID)
	return grade, nil
}

type GradeUpdateRequest struct {
	Score    float64 `json:"score" binding:"gte=0"`
	MaxScore float64 `json:"maxScore" binding:"gt=0"`
	Comment  string  `json:"comment"`
}

func (s *GradeService) Update(gradeID uint, claims *util.Claims, req GradeUpdateRequest) (*model.Grade, error) {
	grade, err := s.GradeRepo.FindByID(gradeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrGradeNotFound
	} else if err != nil {
		return nil, err
	}
	if _, err := s.courseOwnership(grade.CourseID, claims); err != nil {
		return nil, err
	}
	if req.Score > req.MaxScore {
		return nil, util.ErrInvalidScore
	}

	grade.Score = req.Score
	grade.MaxScore = req.MaxScore
	grade.Comment = req.Comment
	grade.GraderID = claims.UserID

	if err := s.GradeRepo.Update(grade); err != nil {
		return nil, err
	}
	s.InvalidateProjection(grade.CourseID, grade.StudentID)
	return grade, nil
}

func (s *GradeService) Delete(gradeID uint, claims *util.Claims) error {
	grade, err := s.GradeRepo.FindByID(gradeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrGradeNotFound
	} else if err != nil {
		return err
	}
	if _, err := s.courseOwnership(grade.CourseID, claims); err != nil {
		return err
	}
	if err := s.GradeRepo.Delete(gradeID); err != nil {
		return err
	}
	s.InvalidateProjection(grade.CourseID, grade.StudentID)
	return nil
}

func (s *GradeService) ListForStudent(courseID, studentID uint) ([]model.Grade, error) {
	if _, err := s.Enrollment.RequireActive(courseID, studentID); err != nil {
		return nil, err
	}
	return s.GradeRepo.FindByCourseAndStudent(courseID, studentID)
}

func (s *GradeService) ListForAssignment(assignmentID uint, claims *util.Claims) ([]model.Grade, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssignmentNotFound
	} else if err != nil {
		return nil, err
	}
	if _, err := s.courseOwnership(assignment.CourseID, claims); err != nil {
		return nil, err
	}
	return s.GradeRepo.FindByAssignment(assignmentID)
}

// GetProjection 加载 (课程, 学生) 快照并计算成绩投影。课程、学生、选课关系的
// 存在性在这里校验完毕后才进入纯计算；结果在 Redis 缓存 5 分钟，任何相关写
// 入都会使其失效。
func (s *GradeService) GetProjection(ctx context.Context, courseID, studentID uint) (*ProjectedGrade, error) {
	course, err := s.CourseRepo.FindByIDWithGrading(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	} else if err != nil {
		return nil, err
	}

	if _, err := s.UserRepo.FindByID(studentID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	if _, err := s.Enrollment.RequireActive(courseID, studentID); err != nil {
		return nil, err
	}

	if cached := s.cachedProjection(ctx, courseID, studentID); cached != nil {
		monitoring.ProjectionCounter.WithLabelValues("cache").Inc()
		return cached, nil
	}

	assignments, err := s.AssignmentRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}
	grades, err := s.GradeRepo.FindByCourseAndStudent(courseID, studentID)
	if err != nil {
		return nil, err
	}

	projection := ComputeProjection(course, course.GradeComponents, assignments, grades)
	monitoring.ProjectionCounter.WithLabelValues("computed").Inc()

	s.cacheProjection(ctx, courseID, studentID, projection)
	return projection, nil
}

// GradebookEntry 教师端花名册里单个学生的投影
type GradebookEntry struct {
	StudentID   uint            `json:"studentId"`
	StudentName string          `json:"studentName"`
	StudentNo   string          `json:"studentNo"`
	Projection  *ProjectedGrade `json:"projection"`
}

// GetGradebook 对课程全部在读学生逐一计算投影
func (s *GradeService) GetGradebook(ctx context.Context, courseID uint, claims *util.Claims) ([]GradebookEntry, error) {
	if _, err := s.courseOwnership(courseID, claims); err != nil {
		return nil, err
	}

	course, err := s.CourseRepo.FindByIDWithGrading(courseID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.AssignmentRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.Enrollment.EnrollmentRepo.FindActiveByCourse(courseID)
	if err != nil {
		return nil, err
	}

	entries := make([]GradebookEntry, 0, len(enrollments))
	for _, e := range enrollments {
		student, err := s.UserRepo.FindByID(e.StudentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		} else if err != nil {
			return nil, err
		}

		grades, err := s.GradeRepo.FindByCourseAndStudent(courseID, e.StudentID)
		if err != nil {
			return nil, err
		}

		entries = append(entries, GradebookEntry{
			StudentID:   student.ID,
			StudentName: student.Name,
			StudentNo:   student.StudentNo,
			Projection:  ComputeProjection(course, course.GradeComponents, assignments, grades),
		})
	}
	return entries, nil
}

func (s *GradeService) courseOwnership(courseID uint, claims *util.Claims) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	} else if err != nil {
		return nil, err
	}
	if claims.Role != model.Admin && course.ProfessorID != claims.UserID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

// --- 投影缓存 ---

func projectionCacheKey(courseID, studentID uint) string {
	return fmt.Sprintf("projection:%d:%d", courseID, studentID)
}

func (s *GradeService) cachedProjection(ctx context.Context, courseID, studentID uint) *ProjectedGrade {
	if s.Redis == nil {
		return nil
	}
	data, err := s.Redis.Get(ctx, projectionCacheKey(courseID, studentID)).Bytes()
	if err != nil {
		return nil
	}
	var projection ProjectedGrade
	if err := json.Unmarshal(data, &projection); err != nil {
		return nil
	}
	return &projection
}

func (s *GradeService) cacheProjection(ctx context.Context, courseID, studentID uint, projection *ProjectedGrade) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(projection)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, projectionCacheKey(courseID, studentID), data, projectionCacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache projection", zap.Error(err))
	}
}

// InvalidateProjection 单个学生的缓存失效
func (s *GradeService) InvalidateProjection(courseID, studentID uint) {
	if s.Redis == nil {
		return
	}
	ctx := context.Background()
	if err := s.Redis.Del(ctx, projectionCacheKey(courseID, studentID)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate projection cache", zap.Error(err))
	}
}

// InvalidateCourse 课程配置（构成项/分数段/作业）变更后整门课缓存失效
func (s *GradeService) InvalidateCourse(courseID uint) {
	if s.Redis == nil {
		return
	}
	ctx := context.Background()
	pattern := fmt.Sprintf("projection:%d:*", courseID)
	iter := s.Redis.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.Redis.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Log.Warn("failed to invalidate projection cache", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		logger.Log.Warn("projection cache scan error", zap.Error(err))
	}
}
