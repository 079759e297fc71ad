package mapper

import (
	"encoding/json"

	"doc-analytics-be/internal/entity"
	"doc-analytics-be/internal/model"

	"gorm.io/datatypes"
)

type TopicMapper struct{}

func NewTopicMapper() *TopicMapper {
	return &TopicMapper{}
}

func (m *TopicMapper) ToEntity(e *model.Topic) *entity.Topic {
	if e == nil {
		return nil
	}

	var keywords []string
	if len(e.Keywords) > 0 {
		_ = json.Unmarshal(e.Keywords, &keywords)
	}

	return &entity.Topic{
		Id:            e.Id,
		RunId:         e.RunId,
		UserId:        e.UserId,
		TopicId:       e.TopicId,
		Label:         e.Label,
		Keywords:      keywords,
		DocumentCount: e.DocumentCount,
		CreatedAt:     e.CreatedAt,
	}
}

func (m *TopicMapper) ToModel(e *entity.Topic) *model.Topic {
	if e == nil {
		return nil
	}

	keywords, _ := json.Marshal(e.Keywords)

	return &model.Topic{
		Id:            e.Id,
		RunId:         e.RunId,
		UserId:        e.UserId,
		TopicId:       e.TopicId,
		Label:         e.Label,
		Keywords:      datatypes.JSON(keywords),
		DocumentCount: e.DocumentCount,
		CreatedAt:     e.CreatedAt,
	}
}

func (m *TopicMapper) ToEntities(topics []*model.Topic) []*entity.Topic {
	entities := make([]*entity.Topic, len(topics))
	for i, t := range topics {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

func (m *TopicMapper) ToModels(topics []*entity.Topic) []*model.Topic {
	models := make([]*model.Topic, len(topics))
	for i, t := range topics {
		models[i] = m.ToModel(t)
	}
	return models
}

type TopicAssignmentMapper struct{}

func NewTopicAssignmentMapper() *TopicAssignmentMapper {
	return &TopicAssignmentMapper{}
}

func (m *TopicAssignmentMapper) ToEntity(e *model.TopicAssignment) *entity.TopicAssignment {
	if e == nil {
		return nil
	}

	return &entity.TopicAssignment{
		Id:         e.Id,
		RunId:      e.RunId,
		UserId:     e.UserId,
		DocumentId: e.DocumentId,
		TopicId:    e.TopicId,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *TopicAssignmentMapper) ToModel(e *entity.TopicAssignment) *model.TopicAssignment {
	if e == nil {
		return nil
	}

	return &model.TopicAssignment{
		Id:         e.Id,
		RunId:      e.RunId,
		UserId:     e.UserId,
		DocumentId: e.DocumentId,
		TopicId:    e.TopicId,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *TopicAssignmentMapper) ToEntities(assignments []*model.TopicAssignment) []*entity.TopicAssignment {
	entities := make([]*entity.TopicAssignment, len(assignments))
	for i, a := range assignments {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

func (m *TopicAssignmentMapper) ToModels(assignments []*entity.TopicAssignment) []*model.TopicAssignment {
	models := make([]*model.TopicAssignment, len(assignments))
	for i, a := range assignments {
		models[i] = m.ToModel(a)
	}
	return models
}
