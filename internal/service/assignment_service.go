package service

import (
	"context"
	"errors"
	"fmt"
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/repository"
	"gradebook_backend/internal/util"
	"gradebook_backend/pkg/logger"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	CourseService  *CourseService
	GradeService   *GradeService
	Storage        *StorageService
}

func NewAssignmentService(assignmentRepo *repository.AssignmentRepository, courseService *CourseService, gradeService *GradeService, storage *StorageService) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		CourseService:  courseService,
		GradeService:   gradeService,
		Storage:        storage,
	}
}

type AssignmentRequest struct {
	Title       string                  `json:"title" binding:"required"`
	Description string                  `json:"description"`
	Category    model.ComponentCategory `json:"category" binding:"required"`
	MaxScore    float64                 `json:"maxScore" binding:"gt=0"`
	Weight      float64                 `json:"weight" binding:"gte=0,lte=100"`
	DueDate     time.Time               `json:"dueDate" binding:"required"`
}

func (s *AssignmentService) Create(courseID uint, claims *util.Claims, req AssignmentRequest) (*model.Assignment, error) {
	if _, err := s.CourseService.CheckOwnership(courseID, claims); err != nil {
		return nil, err
	}
	if !req.Category.Valid() {
		return nil, errors.New("invalid assignment category")
	}

	assignment := &model.Assignment{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		MaxScore:    req.MaxScore,
		Weight:      req.Weight,
		DueDate:     req.DueDate,
		Status:      model.AssignmentDraft,
	}
	if err := s.AssignmentRepo.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) GetByID(id uint) (*model.Assignment, error) {
	assignment, err := s.AssignmentRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssignmentNotFound
	}
	return assignment, err
}

func (s *AssignmentService) Update(assignmentID uint, claims *util.Claims, req AssignmentRequest) (*model.Assignment, error) {
	assignment, err := s.GetByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.CourseService.CheckOwnership(assignment.CourseID, claims); err != nil {
		return nil, err
	}
	if !req.Category.Valid() {
		return nil, errors.New("invalid assignment category")
	}

	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.Category = req.Category
	assignment.MaxScore = req.MaxScore
	assignment.Weight = req.Weight
	assignment.DueDate = req.DueDate

	if err := s.AssignmentRepo.Update(assignment); err != nil {
		return nil, err
	}
	s.GradeService.InvalidateCourse(assignment.CourseID)
	return assignment, nil
}

func (s *AssignmentService) Delete(assignmentID uint, claims *util.Claims) error {
	assignment, err := s.GetByID(assignmentID)
	if err != nil {
		return err
	}
	if _, err := s.CourseService.CheckOwnership(assignment.CourseID, claims); err != nil {
		return err
	}
	if err := s.AssignmentRepo.Delete(assignmentID); err != nil {
		return err
	}
	s.GradeService.InvalidateCourse(assignment.CourseID)
	return nil
}

func (s *AssignmentService) SetStatus(assignmentID uint, claims *util.Claims, status model.AssignmentStatus) (*model.Assignment, error) {
	assignment, err := s.GetByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.CourseService.CheckOwnership(assignment.CourseID, claims); err != nil {
		return nil, err
	}

	if err := s.AssignmentRepo.UpdateStatus(assignmentID, status); err != nil {
		return nil, err
	}
	assignment.Status = status
	return assignment, nil
}

// UploadAttachment 教师上传作业附件（题目说明等）
func (s *AssignmentService) UploadAttachment(ctx context.Context, assignmentID uint, claims *util.Claims, reader io.Reader, size int64, filename, contentType string) (*model.Assignment, error) {
	assignment, err := s.GetByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.CourseService.CheckOwnership(assignment.CourseID, claims); err != nil {
		return nil, err
	}

	clean := util.SanitizeFileName(filename)
	key := fmt.Sprintf("assignments/%d/%d_%s", assignmentID, time.Now().Unix(), clean)
	if _, err := s.Storage.Upload(ctx, key, reader, size, contentType); err != nil {
		return nil, err
	}

	assignment.AttachmentKey = key
	assignment.AttachmentName = clean
	if err := s.AssignmentRepo.Update(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// ListForCourse viewerRole 为学生时仅返回非草稿作业
func (s *AssignmentService) ListForCourse(courseID uint, viewerRole model.UserRole) ([]model.Assignment, error) {
	if _, err := s.CourseService.GetByID(courseID); err != nil {
		return nil, err
	}
	if viewerRole == model.Student {
		return s.AssignmentRepo.FindPublishedByCourse(courseID)
	}
	return s.AssignmentRepo.FindByCourse(courseID)
}

// CloseOverdue 后台任务入口：关闭逾期作业
func (s *AssignmentService) CloseOverdue() error {
	affected, err := s.AssignmentRepo.CloseOverdue(time.Now())
	if err != nil {
		return err
	}
	if affected > 0 {
		logger.Log.Info("closed overdue assignments", zap.Int64("count", affected))
	}
	return nil
}
