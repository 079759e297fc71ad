package implementation

import (
	"context"

	"doc-analytics-be/internal/entity"
	"doc-analytics-be/internal/mapper"
	"doc-analytics-be/internal/model"
	"doc-analytics-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type EmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentEmbeddingMapper
}

func NewEmbeddingRepository(db *gorm.DB) contract.EmbeddingRepository {
	return &EmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentEmbeddingMapper(),
	}
}

func (r *EmbeddingRepositoryImpl) FindByUser(ctx context.Context, userId string) ([]*entity.DocumentEmbedding, error) {
	var models []*model.DocumentEmbedding
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("document_id, chunk_index").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *EmbeddingRepositoryImpl) FindByDocument(ctx context.Context, userId, documentId string) ([]*entity.DocumentEmbedding, error) {
	var models []*model.DocumentEmbedding
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND document_id = ?", userId, documentId).
		Order("chunk_index").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *EmbeddingRepositoryImpl) CountDocuments(ctx context.Context, userId string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DocumentEmbedding{}).
		Where("user_id = ?", userId).
		Distinct("document_id").
		Count(&count).Error
	return count, err
}

// SearchSimilar ranks other documents of the user against the query vector.
// Chunk embeddings are averaged per document in SQL so each document appears
// once, then ordered by cosine similarity via pgvector.
func (r *EmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, userId, excludeDocumentId string, query []float32, limit int, threshold float64) ([]*contract.ScoredDocument, error) {
	if limit <= 0 {
		limit = 5
	}

	type row struct {
		DocumentId string
		Similarity float64
	}
	var rows []row

	queryVector := pgvector.NewVector(query)

	// Cosine distance in pgvector is 1 - cosine_similarity.
	err := r.db.WithContext(ctx).
		Table("document_embeddings").
		Select("document_id, 1 - (AVG(embedding) <=> ?) AS similarity", queryVector).
		Where("user_id = ?", userId).
		Where("document_id <> ?", excludeDocumentId).
		Group("document_id").
		Having("1 - (AVG(embedding) <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredDocument, len(rows))
	for i, res := range rows {
		scored[i] = &contract.ScoredDocument{
			DocumentId: res.DocumentId,
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
