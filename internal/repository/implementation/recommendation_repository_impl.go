package implementation

import (
	"context"

	"doc-analytics-be/internal/entity"
	"doc-analytics-be/internal/mapper"
	"doc-analytics-be/internal/model"
	"doc-analytics-be/internal/repository/contract"

	"gorm.io/gorm"
)

type RecommendationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RecommendationMapper
}

func NewRecommendationRepository(db *gorm.DB) contract.RecommendationRepository {
	return &RecommendationRepositoryImpl{
		db:     db,
		mapper: mapper.NewRecommendationMapper(),
	}
}

func (r *RecommendationRepositoryImpl) CreateBulk(ctx context.Context, edges []*entity.RecommendationEdge) error {
	if len(edges) == 0 {
		return nil
	}
	models := r.mapper.ToModels(edges)
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *RecommendationRepositoryImpl) DeleteBySourceDocument(ctx context.Context, userId, sourceDocumentId string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND source_document_id = ?", userId, sourceDocumentId).
		Delete(&model.RecommendationEdge{}).Error
}

func (r *RecommendationRepositoryImpl) FindBySourceDocument(ctx context.Context, userId, sourceDocumentId string) ([]*entity.RecommendationEdge, error) {
	var models []*model.RecommendationEdge
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND source_document_id = ?", userId, sourceDocumentId).
		Order("rank").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
