package entity

import (
	"time"

	"github.com/google/uuid"
)

// Cluster is one discovered document group for a user, produced by a
// CLUSTER run. ClusterId is the algorithm's group id, never the row id.
type Cluster struct {
	Id        uuid.UUID
	RunId     uuid.UUID
	UserId    string
	ClusterId int
	Label     string
	Size      int
	Keywords  []string
	CreatedAt time.Time
}

// ClusterAssignment maps one document to its cluster. Every document in a
// successful run has exactly one assignment; outliers carry ClusterId -1
// and probability 0.
type ClusterAssignment struct {
	Id          uuid.UUID
	RunId       uuid.UUID
	UserId      string
	DocumentId  string
	ClusterId   int
	Probability float64
	IsOutlier   bool
	CreatedAt   time.Time
}

// Topic is one discovered theme for a user, produced by a TOPICS run.
type Topic struct {
	Id            uuid.UUID
	RunId         uuid.UUID
	UserId        string
	TopicId       int
	Label         string
	Keywords      []string
	DocumentCount int
	CreatedAt     time.Time
}

// TopicAssignment maps one document to its topic (-1 = no topic).
type TopicAssignment struct {
	Id         uuid.UUID
	RunId      uuid.UUID
	UserId     string
	DocumentId string
	TopicId    int
	CreatedAt  time.Time
}

// RecommendationEdge is one ranked similarity edge between two documents.
type RecommendationEdge struct {
	Id               uuid.UUID
	RunId            uuid.UUID
	UserId           string
	SourceDocumentId string
	TargetDocumentId string
	Score            float64
	Rank             int
	CreatedAt        time.Time
}

// VisualizationPoint is one document projected to the 2-D plane.
type VisualizationPoint struct {
	Id         uuid.UUID
	RunId      uuid.UUID
	UserId     string
	DocumentId string
	X          float64
	Y          float64
	ClusterId  int
	CreatedAt  time.Time
}
