package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentEmbedding is one chunk-level embedding row written by the
// ingestion service. This service only ever reads them.
type DocumentEmbedding struct {
	Id         uuid.UUID
	UserId     string
	DocumentId string
	ChunkIndex int
	Content    string
	Embedding  []float32
	CreatedAt  time.Time
}
