package service

import (
	"context"
	"errors"
	"fmt"
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/repository"
	"gradebook_backend/internal/util"
	"io"
	"time"

	"gorm.io/gorm"
)

type SubmissionService struct {
	SubmissionRepo *repository.SubmissionRepository
	AssignmentRepo *repository.AssignmentRepository
	GradeRepo      *repository.GradeRepository
	CourseService  *CourseService
	GradeService   *GradeService
	Enrollment     *EnrollmentService
	Storage        *StorageService
}

func NewSubmissionService(submissionRepo *repository.SubmissionRepository, assignmentRepo *repository.AssignmentRepository, gradeRepo *repository.GradeRepository, courseService *CourseService, gradeService *GradeService, enrollment *EnrollmentService, storage *StorageService) *SubmissionService {
	return &SubmissionService{
		SubmissionRepo: submissionRepo,
		AssignmentRepo: assignmentRepo,
		GradeRepo:      gradeRepo,
		CourseService:  courseService,
		GradeService:   gradeService,
		Enrollment:     enrollment,
		Storage:        storage,
	}
}

// Submit 学生上传作业文件。截止后仍接收提交，但标记为 late
func (s *SubmissionService) Submit(ctx context.Context, assignmentID, studentID uint, reader io.Reader, size int64, filename, contentType string) (*model.Submission, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssignmentNotFound
	} else if err != nil {
		return nil, err
	}
	if assignment.Status == model.AssignmentDraft {
		return nil, util.ErrAssignmentNotOpen
	}

	if _, err := s.Enrollment.RequireActive(assignment.CourseID, studentID); err != nil {
		return nil, err
	}

	clean := util.SanitizeFileName(filename)
	if !util.HasAllowedExtension(clean, util.AllowedSubmissionExtensions) {
		return nil, errors.New("file type not allowed for submissions")
	}

	now := time.Now()
	key := fmt.Sprintf("submissions/%d/%d/%d_%s", assignmentID, studentID, now.Unix(), clean)
	if _, err := s.Storage.Upload(ctx, key, reader, size, contentType); err != nil {
		return nil, err
	}

	submission := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FileKey:      key,
		FileName:     clean,
		ContentType:  contentType,
		Size:         size,
		SubmittedAt:  now,
		Late:         now.After(assignment.DueDate),
		Status:       model.SubmissionSubmitted,
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *SubmissionService) GetByID(id string) (*model.Submission, error) {
	submission, err := s.SubmissionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubmissionNotFound
	}
	return submission, err
}

// ListForAssignment 教师查看某作业全部提交
func (s *SubmissionService) ListForAssignment(assignmentID uint, claims *util.Claims) ([]model.Submission, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssignmentNotFound
	} else if err != nil {
		return nil, err
	}
	if _, err := s.CourseService.CheckOwnership(assignment.CourseID, claims); err != nil {
		return nil, err
	}
	return s.SubmissionRepo.FindByAssignment(assignmentID)
}

func (s *SubmissionService) ListForStudent(studentID uint) ([]model.Submission, error) {
	return s.SubmissionRepo.FindByStudent(studentID)
}

type GradeSubmissionRequest struct {
	Score    float64 `json:"score" binding:"gte=0"`
	MaxScore float64 `json:"maxScore"`
	Comment  string  `json:"comment"`
}

// GradeSubmission 教师批改提交：写入成绩并将提交置为已批改，同一事务完成
func (s *SubmissionService) GradeSubmission(submissionID string, claims *util.Claims, req GradeSubmissionRequest) (*model.Grade, error) {
	submission, err := s.GetByID(submissionID)
	if err != nil {
		return nil, err
	}

	assignment, err := s.AssignmentRepo.FindByID(submission.AssignmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssignmentNotFound
	} else if err != nil {
		return nil, err
	}
	if _, err := s.CourseService.CheckOwnership(assignment.CourseID, claims); err != nil {
		return nil, err
	}

	maxScore := req.MaxScore
	if maxScore <= 0 {
		maxScore = assignment.MaxScore
	}
	if req.Score > maxScore {
		return nil, util.ErrInvalidScore
	}

	assignmentID := assignment.ID
	grade := &model.Grade{
		StudentID:    submission.StudentID,
		CourseID:     assignment.CourseID,
		AssignmentID: &assignmentID,
		Score:        req.Score,
		MaxScore:     maxScore,
		GraderID:     claims.UserID,
		Comment:      req.Comment,
	}
	if err := s.GradeRepo.CreateForSubmission(grade, submission); err != nil {
		return nil, err
	}
	s.GradeService.InvalidateProjection(assignment.CourseID, submission.StudentID)
	return grade, nil
}

// Download 下载提交文件，学生只能下载自己的
func (s *SubmissionService) Download(submissionID string, claims *util.Claims) (*model.Submission, string, error) {
	submission, err := s.GetByID(submissionID)
	if err != nil {
		return nil, "", err
	}

	if claims.Role == model.Student && submission.StudentID != claims.UserID {
		return nil, "", util.ErrPermissionDenied
	}
	if claims.Role == model.Professor {
		assignment, err := s.AssignmentRepo.FindByID(submission.AssignmentID)
		if err != nil {
			return nil, "", util.ErrAssignmentNotFound
		}
		if _, err := s.CourseService.CheckOwnership(assignment.CourseID, claims); err != nil {
			return nil, "", err
		}
	}

	return submission, s.Storage.GetURL(submission.FileKey), nil
}
