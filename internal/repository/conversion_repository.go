package repository

import (
	"context"
	"errors"
	"exam_template_backend/internal/model"
	"exam_template_backend/internal/util"

	"gorm.io/gorm"
)

type ConversionRepository struct {
	DB *gorm.DB
}

func NewConversionRepository(db *gorm.DB) *ConversionRepository {
	return &ConversionRepository{DB: db}
}

func (r *ConversionRepository) Create(ctx context.Context, record *model.ConversionRecord) error {
	return r.DB.WithContext(ctx).Create(record).Error
}

func (r *ConversionRepository) UpdateArtifactURL(ctx context.Context, id, url string) error {
	return r.DB.WithContext(ctx).
		Model(&model.ConversionRecord{}).
		Where("id = ?", id).
		Update("artifact_url", url).Error
}

func (r *ConversionRepository) FindByID(ctx context.Context, id string) (*model.ConversionRecord, error) {
	var record model.ConversionRecord
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrConversionNotFound
		}
		return nil, err
	}
	return &record, nil
}

// List 分页查询，kind 为空时不过滤
func (r *ConversionRepository) List(ctx context.Context, kind model.ConversionKind, page, limit int) ([]model.ConversionRecord, int64, error) {
	var records []model.ConversionRecord
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.ConversionRecord{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *ConversionRepository) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.ConversionRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrConversionNotFound
	}
	return nil
}

// FindUnarchived 尚未归档模版二的双模版记录
func (r *ConversionRepository) FindUnarchived(ctx context.Context, limit int) ([]model.ConversionRecord, error) {
	var records []model.ConversionRecord
	err := r.DB.WithContext(ctx).
		Where("kind = ? AND failed = ? AND (artifact_url = '' OR artifact_url IS NULL)", model.KindDualTemplate, false).
		Order("created_at ASC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
