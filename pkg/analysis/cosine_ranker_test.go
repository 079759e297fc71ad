package analysis

import (
	"context"
	"math"
	"testing"
)

func TestRankBySimilarity(t *testing.T) {
	ranker := NewCosineRanker()

	query := []float32{1, 0, 0}
	candidates := []DocumentVector{
		{DocumentID: "orthogonal", Vector: []float32{0, 1, 0}},
		{DocumentID: "identical", Vector: []float32{1, 0, 0}},
		{DocumentID: "close", Vector: []float32{0.9, 0.1, 0}},
	}

	ranked, err := ranker.RankBySimilarity(context.Background(), query, candidates)
	if err != nil {
		t.Fatalf("RankBySimilarity() error = %v", err)
	}

	if len(ranked) != 3 {
		t.Fatalf("got %d results, want 3", len(ranked))
	}

	wantOrder := []string{"identical", "close", "orthogonal"}
	for i, want := range wantOrder {
		if ranked[i].DocumentID != want {
			t.Errorf("rank %d = %s, want %s", i, ranked[i].DocumentID, want)
		}
	}

	if math.Abs(ranked[0].Score-1.0) > 1e-9 {
		t.Errorf("identical vector score = %f, want 1.0", ranked[0].Score)
	}
	if math.Abs(ranked[2].Score) > 1e-9 {
		t.Errorf("orthogonal vector score = %f, want 0", ranked[2].Score)
	}
}

func TestCosineSimilarityEdgeCases(t *testing.T) {
	if got := cosineSimilarity([]float32{1, 2}, []float32{1}); got != 0 {
		t.Errorf("mismatched lengths = %f, want 0", got)
	}
	if got := cosineSimilarity([]float32{0, 0}, []float32{1, 1}); got != 0 {
		t.Errorf("zero vector = %f, want 0", got)
	}
	if got := cosineSimilarity(nil, nil); got != 0 {
		t.Errorf("empty vectors = %f, want 0", got)
	}
}
