package mapper

import (
	"encoding/json"

	"doc-analytics-be/internal/entity"
	"doc-analytics-be/internal/model"

	"gorm.io/datatypes"
)

type ClusterMapper struct{}

func NewClusterMapper() *ClusterMapper {
	return &ClusterMapper{}
}

func (m *ClusterMapper) ToEntity(e *model.Cluster) *entity.Cluster {
	if e == nil {
		return nil
	}

	var keywords []string
	if len(e.Keywords) > 0 {
		// Malformed keyword JSON degrades to an empty list, never an error.
		_ = json.Unmarshal(e.Keywords, &keywords)
	}

	return &entity.Cluster{
		Id:        e.Id,
		RunId:     e.RunId,
		UserId:    e.UserId,
		ClusterId: e.ClusterId,
		Label:     e.Label,
		Size:      e.Size,
		Keywords:  keywords,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ClusterMapper) ToModel(e *entity.Cluster) *model.Cluster {
	if e == nil {
		return nil
	}

	keywords, _ := json.Marshal(e.Keywords)

	return &model.Cluster{
		Id:        e.Id,
		RunId:     e.RunId,
		UserId:    e.UserId,
		ClusterId: e.ClusterId,
		Label:     e.Label,
		Size:      e.Size,
		Keywords:  datatypes.JSON(keywords),
		CreatedAt: e.CreatedAt,
	}
}

func (m *ClusterMapper) ToEntities(clusters []*model.Cluster) []*entity.Cluster {
	entities := make([]*entity.Cluster, len(clusters))
	for i, c := range clusters {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ClusterMapper) ToModels(clusters []*entity.Cluster) []*model.Cluster {
	models := make([]*model.Cluster, len(clusters))
	for i, c := range clusters {
		models[i] = m.ToModel(c)
	}
	return models
}

type ClusterAssignmentMapper struct{}

func NewClusterAssignmentMapper() *ClusterAssignmentMapper {
	return &ClusterAssignmentMapper{}
}

func (m *ClusterAssignmentMapper) ToEntity(e *model.ClusterAssignment) *entity.ClusterAssignment {
	if e == nil {
		return nil
	}

	return &entity.ClusterAssignment{
		Id:          e.Id,
		RunId:       e.RunId,
		UserId:      e.UserId,
		DocumentId:  e.DocumentId,
		ClusterId:   e.ClusterId,
		Probability: e.Probability,
		IsOutlier:   e.IsOutlier,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *ClusterAssignmentMapper) ToModel(e *entity.ClusterAssignment) *model.ClusterAssignment {
	if e == nil {
		return nil
	}

	return &model.ClusterAssignment{
		Id:          e.Id,
		RunId:       e.RunId,
		UserId:      e.UserId,
		DocumentId:  e.DocumentId,
		ClusterId:   e.ClusterId,
		Probability: e.Probability,
		IsOutlier:   e.IsOutlier,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *ClusterAssignmentMapper) ToEntities(assignments []*model.ClusterAssignment) []*entity.ClusterAssignment {
	entities := make([]*entity.ClusterAssignment, len(assignments))
	for i, a := range assignments {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

func (m *ClusterAssignmentMapper) ToModels(assignments []*entity.ClusterAssignment) []*model.ClusterAssignment {
	models := make([]*model.ClusterAssignment, len(assignments))
	for i, a := range assignments {
		models[i] = m.ToModel(a)
	}
	return models
}
