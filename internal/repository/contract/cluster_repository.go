package contract

import (
	"context"

	"doc-analytics-be/internal/entity"
)

type ClusterRepository interface {
	CreateBulk(ctx context.Context, clusters []*entity.Cluster) error
	CreateAssignmentsBulk(ctx context.Context, assignments []*entity.ClusterAssignment) error
	// DeleteByUser removes the full artifact set of the previous run.
	DeleteByUser(ctx context.Context, userId string) error
	FindByUser(ctx context.Context, userId string) ([]*entity.Cluster, error)
	FindAssignmentsByUser(ctx context.Context, userId string) ([]*entity.ClusterAssignment, error)
}
