package contract

import (
	"context"

	"doc-analytics-be/internal/entity"
)

type TopicRepository interface {
	CreateBulk(ctx context.Context, topics []*entity.Topic) error
	CreateAssignmentsBulk(ctx context.Context, assignments []*entity.TopicAssignment) error
	DeleteByUser(ctx context.Context, userId string) error
	FindByUser(ctx context.Context, userId string) ([]*entity.Topic, error)
	FindAssignmentsByUser(ctx context.Context, userId string) ([]*entity.TopicAssignment, error)
}
