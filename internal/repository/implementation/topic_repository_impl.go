package implementation

import (
	"context"

	"doc-analytics-be/internal/entity"
	"doc-analytics-be/internal/mapper"
	"doc-analytics-be/internal/model"
	"doc-analytics-be/internal/repository/contract"

	"gorm.io/gorm"
)

type TopicRepositoryImpl struct {
	db               *gorm.DB
	mapper           *mapper.TopicMapper
	assignmentMapper *mapper.TopicAssignmentMapper
}

func NewTopicRepository(db *gorm.DB) contract.TopicRepository {
	return &TopicRepositoryImpl{
		db:               db,
		mapper:           mapper.NewTopicMapper(),
		assignmentMapper: mapper.NewTopicAssignmentMapper(),
	}
}

func (r *TopicRepositoryImpl) CreateBulk(ctx context.Context, topics []*entity.Topic) error {
	if len(topics) == 0 {
		return nil
	}
	models := r.mapper.ToModels(topics)
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *TopicRepositoryImpl) CreateAssignmentsBulk(ctx context.Context, assignments []*entity.TopicAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	models := r.assignmentMapper.ToModels(assignments)
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *TopicRepositoryImpl) DeleteByUser(ctx context.Context, userId string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.TopicAssignment{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.Topic{}).Error
}

func (r *TopicRepositoryImpl) FindByUser(ctx context.Context, userId string) ([]*entity.Topic, error) {
	var models []*model.Topic
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("topic_id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TopicRepositoryImpl) FindAssignmentsByUser(ctx context.Context, userId string) ([]*entity.TopicAssignment, error) {
	var models []*model.TopicAssignment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("document_id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.assignmentMapper.ToEntities(models), nil
}
