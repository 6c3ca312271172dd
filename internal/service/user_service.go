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

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{UserRepo: userRepo, Storage: storage}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

type ProfileUpdateRequest struct {
	Name      string `json:"name"`
	StudentNo string `json:"studentNo"`
}

func (s *UserService) UpdateProfile(userID uint, req ProfileUpdateRequest) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.StudentNo != "" {
		user.StudentNo = req.StudentNo
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar 校验并保存头像，返回可访问的 URL
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, reader io.Reader, size int64, filename string) (string, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%d/%d_%s", userID, time.Now().Unix(), util.SanitizeFileName(filename))
	url, err := s.Storage.Upload(ctx, key, reader, size, util.MimeOctetStream)
	if err != nil {
		return "", err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) List(role model.UserRole, search string, page, limit int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.UserRepo.ListWithPagination(role, search, page, limit)
}

func (s *UserService) SetDisabled(id uint, disabled bool) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.UserRepo.SetDisabled(id, disabled)
}
