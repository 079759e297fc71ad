package unitofwork

import (
	"context"

	"doc-analytics-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one transaction. PERSIST stages
// run delete-then-insert of a full artifact set between Begin and Commit so
// readers never observe a partial replacement.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	EmbeddingRepository() contract.EmbeddingRepository
	ClusterRepository() contract.ClusterRepository
	TopicRepository() contract.TopicRepository
	RecommendationRepository() contract.RecommendationRepository
	VisualizationRepository() contract.VisualizationRepository
}
