package model

import (
	"time"

	"github.com/google/uuid"
)

type RecommendationEdge struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunId            uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId           string    `gorm:"type:varchar(64);not null;index"`
	SourceDocumentId string    `gorm:"type:varchar(64);not null;index"`
	TargetDocumentId string    `gorm:"type:varchar(64);not null"`
	Score            float64   `gorm:"not null"`
	Rank             int       `gorm:"not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (RecommendationEdge) TableName() string {
	return "recommendation_edges"
}
