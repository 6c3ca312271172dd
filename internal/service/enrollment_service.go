package service

import (
	"errors"
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/repository"
	"gradebook_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	UserRepo       *repository.UserRepository
}

func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository, userRepo *repository.UserRepository) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		UserRepo:       userRepo,
	}
}

func (s *EnrollmentService) Enroll(courseID, studentID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	} else if err != nil {
		return nil, err
	}
	if course.Archived {
		return nil, util.ErrCourseArchived
	}

	if _, err := s.UserRepo.FindByID(studentID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	existing, err := s.EnrollmentRepo.FindByCourseAndStudent(courseID, studentID)
	if err == nil {
		if existing.Status == model.EnrollmentActive {
			return nil, util.ErrDuplicateEnrollment
		}
		// 曾退课的学生重新选课
		if err := s.EnrollmentRepo.UpdateStatus(existing.ID, model.EnrollmentActive); err != nil {
			return nil, err
		}
		existing.Status = model.EnrollmentActive
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{
		CourseID:   courseID,
		StudentID:  studentID,
		Status:     model.EnrollmentActive,
		EnrolledAt: time.Now(),
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) Drop(courseID, studentID uint) error {
	enrollment, err := s.EnrollmentRepo.FindByCourseAndStudent(courseID, studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrEnrollmentNotFound
	} else if err != nil {
		return err
	}
	return s.EnrollmentRepo.UpdateStatus(enrollment.ID, model.EnrollmentDropped)
}

// RequireActive 校验学生在某课程的在读状态，投影等读取操作的前置检查
func (s *EnrollmentService) RequireActive(courseID, studentID uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByCourseAndStudent(courseID, studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotEnrolled
	} else if err != nil {
		return nil, err
	}
	if enrollment.Status == model.EnrollmentDropped {
		return nil, util.ErrNotEnrolled
	}
	return enrollment, nil
}

// ListStudentCourses 学生在读/已修课程
func (s *EnrollmentService) ListStudentCourses(studentID uint) ([]model.Course, error) {
	enrollments, err := s.EnrollmentRepo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}

	courses := make([]model.Course, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Status == model.EnrollmentDropped {
			continue
		}
		course, err := s.CourseRepo.FindByID(e.CourseID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		} else if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, nil
}

func (s *EnrollmentService) ListRoster(courseID uint) ([]model.Enrollment, error) {
	if _, err := s.CourseRepo.FindByID(courseID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	} else if err != nil {
		return nil, err
	}
	return s.EnrollmentRepo.FindActiveByCourse(courseID)
}

func (s *EnrollmentService) Complete(courseID, studentID uint) error {
	enrollment, err := s.EnrollmentRepo.FindByCourseAndStudent(courseID, studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrEnrollmentNotFound
	} else if err != nil {
		return err
	}
	return s.EnrollmentRepo.UpdateStatus(enrollment.ID, model.EnrollmentCompleted)
}
