package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Topic struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId        string         `gorm:"type:varchar(64);not null;index"`
	TopicId       int            `gorm:"not null"`
	Label         string         `gorm:"type:varchar(255)"`
	Keywords      datatypes.JSON `gorm:"type:jsonb"`
	DocumentCount int            `gorm:"not null"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

func (Topic) TableName() string {
	return "topics"
}

type TopicAssignment struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunId      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId     string    `gorm:"type:varchar(64);not null;index"`
	DocumentId string    `gorm:"type:varchar(64);not null"`
	TopicId    int       `gorm:"not null"` // -1 = no topic
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (TopicAssignment) TableName() string {
	return "topic_assignments"
}
