package contract

import (
	"context"

	"doc-analytics-be/internal/entity"
)

type VisualizationRepository interface {
	CreateBulk(ctx context.Context, points []*entity.VisualizationPoint) error
	DeleteByUser(ctx context.Context, userId string) error
	FindByUser(ctx context.Context, userId string) ([]*entity.VisualizationPoint, error)
}
