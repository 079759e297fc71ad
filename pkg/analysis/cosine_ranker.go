package analysis

import (
	"context"
	"math"
	"sort"
)

// CosineRanker ranks candidates by cosine similarity in the original
// embedding space. Recommendation runs use it directly; no dimensionality
// reduction is involved.
type CosineRanker struct{}

var _ SimilarityRanker = (*CosineRanker)(nil)

func NewCosineRanker() *CosineRanker {
	return &CosineRanker{}
}

func (r *CosineRanker) RankBySimilarity(ctx context.Context, query []float32, candidates []DocumentVector) ([]Similarity, error) {
	ranked := make([]Similarity, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, Similarity{
			DocumentID: c.DocumentID,
			Score:      cosineSimilarity(query, c.Vector),
		})
	}

	// Descending by score; equal scores keep input order for stable output.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
