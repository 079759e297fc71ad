package contract

import (
	"context"

	"doc-analytics-be/internal/entity"
)

// ScoredDocument pairs a document id with its cosine similarity to a query
// vector (1.0 = identical).
type ScoredDocument struct {
	DocumentId string
	Similarity float64
}

// EmbeddingRepository is the read-only view over the embedding store the
// ingestion service maintains.
type EmbeddingRepository interface {
	// FindByUser returns all chunk embeddings for a user ordered by
	// (document_id, chunk_index).
	FindByUser(ctx context.Context, userId string) ([]*entity.DocumentEmbedding, error)
	// FindByDocument returns the chunk embeddings of one document.
	FindByDocument(ctx context.Context, userId, documentId string) ([]*entity.DocumentEmbedding, error)
	CountDocuments(ctx context.Context, userId string) (int64, error)
	// SearchSimilar ranks the other documents of the user against the query
	// vector using pgvector cosine distance, best first.
	SearchSimilar(ctx context.Context, userId, excludeDocumentId string, query []float32, limit int, threshold float64) ([]*ScoredDocument, error)
}
