package service

import (
	"context"
	"exam_template_backend/internal/model"
	"exam_template_backend/pkg/logger"

	"go.uber.org/zap"
)

// ConversionReader 查询与删除历史记录
type ConversionReader interface {
	FindByID(ctx context.Context, id string) (*model.ConversionRecord, error)
	List(ctx context.Context, kind model.ConversionKind, page, limit int) ([]model.ConversionRecord, int64, error)
	Delete(ctx context.Context, id string) error
}

type ConversionService struct {
	repo    ConversionReader
	storage *StorageService
}

func NewConversionService(repo ConversionReader, storage *StorageService) *ConversionService {
	return &ConversionService{repo: repo, storage: storage}
}

func (s *ConversionService) Get(ctx context.Context, id string) (*model.ConversionRecord, error) {
	return s.repo.FindByID(ctx, id)
}

// NormalizePage 页码从 1 开始，每页最多 100 条
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func (s *ConversionService) List(ctx context.Context, kind model.ConversionKind, page, limit int) ([]model.ConversionRecord, int64, error) {
	page, limit = NormalizePage(page, limit)
	return s.repo.List(ctx, kind, page, limit)
}

// Delete 删除记录及其归档文件
func (s *ConversionService) Delete(ctx context.Context, id string) error {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if record.ArtifactURL != "" && s.storage != nil {
		if key := s.storage.ObjectKeyFromURL(record.ArtifactURL); key != "" {
			if err := s.storage.Delete(ctx, key); err != nil {
				logger.Log.Warn("failed to delete archived artifact",
					zap.String("id", id),
					zap.String("key", key),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}
