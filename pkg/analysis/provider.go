package analysis

import "context"

// DocumentVector is one document's embedding (chunks already collapsed).
type DocumentVector struct {
	DocumentID string
	Vector     []float32
}

// DocumentText is one document's concatenated chunk text.
type DocumentText struct {
	DocumentID string
	Text       string
}

// Assignment maps a document to a discovered group. GroupID -1 means the
// algorithm left the document unassigned.
type Assignment struct {
	DocumentID  string
	GroupID     int
	Probability float64
}

// TopicGroup is one discovered theme with its member documents.
type TopicGroup struct {
	GroupID           int
	Keywords          []string
	MemberDocumentIDs []string
}

// Similarity is one ranked candidate document.
type Similarity struct {
	DocumentID string
	Score      float64
}

// Reducer projects vectors into a lower-dimensional space.
type Reducer interface {
	ReduceDimensions(ctx context.Context, vectors []DocumentVector, targetDim int, metric string) ([]DocumentVector, error)
}

// Clusterer groups vectors by density. Implementations may omit documents
// from the result; callers treat missing documents as outliers.
type Clusterer interface {
	Cluster(ctx context.Context, vectors []DocumentVector, minGroupSize, minSamples int) ([]Assignment, error)
}

// TopicExtractor discovers themes across document texts. Vectors carry the
// documents' embeddings in the same order as documents. numTopics caps how
// many themes are returned; 0 lets the algorithm decide.
type TopicExtractor interface {
	ExtractTopics(ctx context.Context, documents []DocumentText, vectors []DocumentVector, minGroupSize, numTopics int) ([]TopicGroup, error)
}

// SimilarityRanker orders candidates by similarity to the query vector,
// best first.
type SimilarityRanker interface {
	RankBySimilarity(ctx context.Context, query []float32, candidates []DocumentVector) ([]Similarity, error)
}
