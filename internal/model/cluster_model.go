package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Cluster struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId    string         `gorm:"type:varchar(64);not null;index"`
	ClusterId int            `gorm:"not null"`
	Label     string         `gorm:"type:varchar(255)"`
	Size      int            `gorm:"not null"`
	Keywords  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (Cluster) TableName() string {
	return "clusters"
}

type ClusterAssignment struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunId       uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId      string    `gorm:"type:varchar(64);not null;index"`
	DocumentId  string    `gorm:"type:varchar(64);not null"`
	ClusterId   int       `gorm:"not null"` // -1 = outlier
	Probability float64   `gorm:"not null;default:0"`
	IsOutlier   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (ClusterAssignment) TableName() string {
	return "cluster_assignments"
}
