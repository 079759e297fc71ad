package contract

import (
	"context"

	"doc-analytics-be/internal/entity"
)

type RecommendationRepository interface {
	CreateBulk(ctx context.Context, edges []*entity.RecommendationEdge) error
	// DeleteBySourceDocument clears the previous edges of one source document.
	DeleteBySourceDocument(ctx context.Context, userId, sourceDocumentId string) error
	FindBySourceDocument(ctx context.Context, userId, sourceDocumentId string) ([]*entity.RecommendationEdge, error)
}
