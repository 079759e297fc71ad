package implementation

import (
	"context"

	"doc-analytics-be/internal/entity"
	"doc-analytics-be/internal/mapper"
	"doc-analytics-be/internal/model"
	"doc-analytics-be/internal/repository/contract"

	"gorm.io/gorm"
)

type VisualizationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VisualizationMapper
}

func NewVisualizationRepository(db *gorm.DB) contract.VisualizationRepository {
	return &VisualizationRepositoryImpl{
		db:     db,
		mapper: mapper.NewVisualizationMapper(),
	}
}

func (r *VisualizationRepositoryImpl) CreateBulk(ctx context.Context, points []*entity.VisualizationPoint) error {
	if len(points) == 0 {
		return nil
	}
	models := r.mapper.ToModels(points)
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *VisualizationRepositoryImpl) DeleteByUser(ctx context.Context, userId string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.VisualizationPoint{}).Error
}

func (r *VisualizationRepositoryImpl) FindByUser(ctx context.Context, userId string) ([]*entity.VisualizationPoint, error) {
	var models []*model.VisualizationPoint
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("document_id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
