package implementation

import (
	"context"

	"doc-analytics-be/internal/entity"
	"doc-analytics-be/internal/mapper"
	"doc-analytics-be/internal/model"
	"doc-analytics-be/internal/repository/contract"

	"gorm.io/gorm"
)

type ClusterRepositoryImpl struct {
	db               *gorm.DB
	mapper           *mapper.ClusterMapper
	assignmentMapper *mapper.ClusterAssignmentMapper
}

func NewClusterRepository(db *gorm.DB) contract.ClusterRepository {
	return &ClusterRepositoryImpl{
		db:               db,
		mapper:           mapper.NewClusterMapper(),
		assignmentMapper: mapper.NewClusterAssignmentMapper(),
	}
}

func (r *ClusterRepositoryImpl) CreateBulk(ctx context.Context, clusters []*entity.Cluster) error {
	if len(clusters) == 0 {
		return nil
	}
	models := r.mapper.ToModels(clusters)
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *ClusterRepositoryImpl) CreateAssignmentsBulk(ctx context.Context, assignments []*entity.ClusterAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	models := r.assignmentMapper.ToModels(assignments)
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *ClusterRepositoryImpl) DeleteByUser(ctx context.Context, userId string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.ClusterAssignment{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.Cluster{}).Error
}

func (r *ClusterRepositoryImpl) FindByUser(ctx context.Context, userId string) ([]*entity.Cluster, error) {
	var models []*model.Cluster
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("cluster_id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ClusterRepositoryImpl) FindAssignmentsByUser(ctx context.Context, userId string) ([]*entity.ClusterAssignment, error) {
	var models []*model.ClusterAssignment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("document_id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.assignmentMapper.ToEntities(models), nil
}
