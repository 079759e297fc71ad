package model

import (
	"time"

	"github.com/google/uuid"
)

type VisualizationPoint struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunId      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId     string    `gorm:"type:varchar(64);not null;index"`
	DocumentId string    `gorm:"type:varchar(64);not null"`
	X          float64   `gorm:"not null"`
	Y          float64   `gorm:"not null"`
	ClusterId  int       `gorm:"not null;default:-1"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (VisualizationPoint) TableName() string {
	return "visualization_points"
}
