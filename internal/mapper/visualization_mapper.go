package mapper

import (
	"doc-analytics-be/internal/entity"
	"doc-analytics-be/internal/model"
)

type VisualizationMapper struct{}

func NewVisualizationMapper() *VisualizationMapper {
	return &VisualizationMapper{}
}

func (m *VisualizationMapper) ToEntity(e *model.VisualizationPoint) *entity.VisualizationPoint {
	if e == nil {
		return nil
	}

	return &entity.VisualizationPoint{
		Id:         e.Id,
		RunId:      e.RunId,
		UserId:     e.UserId,
		DocumentId: e.DocumentId,
		X:          e.X,
		Y:          e.Y,
		ClusterId:  e.ClusterId,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *VisualizationMapper) ToModel(e *entity.VisualizationPoint) *model.VisualizationPoint {
	if e == nil {
		return nil
	}

	return &model.VisualizationPoint{
		Id:         e.Id,
		RunId:      e.RunId,
		UserId:     e.UserId,
		DocumentId: e.DocumentId,
		X:          e.X,
		Y:          e.Y,
		ClusterId:  e.ClusterId,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *VisualizationMapper) ToEntities(points []*model.VisualizationPoint) []*entity.VisualizationPoint {
	entities := make([]*entity.VisualizationPoint, len(points))
	for i, p := range points {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *VisualizationMapper) ToModels(points []*entity.VisualizationPoint) []*model.VisualizationPoint {
	models := make([]*model.VisualizationPoint, len(points))
	for i, p := range points {
		models[i] = m.ToModel(p)
	}
	return models
}
