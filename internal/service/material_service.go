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
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MaterialService struct {
	MaterialRepo  *repository.MaterialRepository
	CourseService *CourseService
	Storage       *StorageService
}

func NewMaterialService(materialRepo *repository.MaterialRepository, courseService *CourseService, storage *StorageService) *MaterialService {
	return &MaterialService{
		MaterialRepo:  materialRepo,
		CourseService: courseService,
		Storage:       storage,
	}
}

// Upload 上传课程资料。视频文件先落到临时目录探测时长并截取缩略图，
// 再交给存储后端
func (s *MaterialService) Upload(ctx context.Context, courseID uint, claims *util.Claims, reader io.Reader, size int64, title, filename, contentType string) (*model.CourseMaterial, error) {
	if _, err := s.CourseService.CheckOwnership(courseID, claims); err != nil {
		return nil, err
	}

	clean := util.SanitizeFileName(filename)
	kind := model.MaterialDocument
	if util.IsVideo(contentType) || util.HasAllowedExtension(clean, util.AllowedVideoExtensions) {
		kind = model.MaterialVideo
	}

	material := &model.CourseMaterial{
		CourseID:   courseID,
		Title:      title,
		Kind:       kind,
		Size:       size,
		UploadedBy: claims.UserID,
	}

	key := fmt.Sprintf("materials/%d/%d_%s", courseID, time.Now().Unix(), clean)

	if kind == model.MaterialVideo {
		tmpDir, err := os.MkdirTemp("", "material")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(tmpDir)

		tmpPath := filepath.Join(tmpDir, clean)
		tmpFile, err := os.Create(tmpPath)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(tmpFile, reader); err != nil {
			tmpFile.Close()
			return nil, err
		}
		tmpFile.Close()

		if info, err := util.GetVideoInfo(tmpPath); err == nil {
			material.Duration = info.Duration
		} else {
			logger.Log.Warn("video probe failed", zap.String("file", clean), zap.Error(err))
		}

		thumbPath := filepath.Join(tmpDir, "thumb.jpg")
		if err := util.GenerateThumbnail(tmpPath, thumbPath, "00:00:01"); err == nil {
			thumbKey := key + ".thumb.jpg"
			if url, err := s.Storage.UploadFile(ctx, thumbKey, thumbPath, "image/jpeg"); err == nil {
				material.ThumbnailURL = url
			}
		}

		url, err := s.Storage.UploadFile(ctx, key, tmpPath, contentType)
		if err != nil {
			return nil, err
		}
		material.FileKey = key
		material.URL = url
	} else {
		url, err := s.Storage.Upload(ctx, key, reader, size, contentType)
		if err != nil {
			return nil, err
		}
		material.FileKey = key
		material.URL = url
	}

	if err := s.MaterialRepo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) ListForCourse(courseID uint) ([]model.CourseMaterial, error) {
	if _, err := s.CourseService.GetByID(courseID); err != nil {
		return nil, err
	}
	return s.MaterialRepo.FindByCourse(courseID)
}

func (s *MaterialService) Delete(ctx context.Context, materialID string, claims *util.Claims) error {
	material, err := s.MaterialRepo.FindByID(materialID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrMaterialNotFound
	} else if err != nil {
		return err
	}
	if _, err := s.CourseService.CheckOwnership(material.CourseID, claims); err != nil {
		return err
	}

	if err := s.Storage.Delete(ctx, material.FileKey); err != nil {
		logger.Log.Warn("failed to delete material file", zap.String("key", material.FileKey), zap.Error(err))
	}
	return s.MaterialRepo.Delete(materialID)
}
