package mapper

import (
	"doc-analytics-be/internal/entity"
	"doc-analytics-be/internal/model"
)

type RecommendationMapper struct{}

func NewRecommendationMapper() *RecommendationMapper {
	return &RecommendationMapper{}
}

func (m *RecommendationMapper) ToEntity(e *model.RecommendationEdge) *entity.RecommendationEdge {
	if e == nil {
		return nil
	}

	return &entity.RecommendationEdge{
		Id:               e.Id,
		RunId:            e.RunId,
		UserId:           e.UserId,
		SourceDocumentId: e.SourceDocumentId,
		TargetDocumentId: e.TargetDocumentId,
		Score:            e.Score,
		Rank:             e.Rank,
		CreatedAt:        e.CreatedAt,
	}
}

func (m *RecommendationMapper) ToModel(e *entity.RecommendationEdge) *model.RecommendationEdge {
	if e == nil {
		return nil
	}

	return &model.RecommendationEdge{
		Id:               e.Id,
		RunId:            e.RunId,
		UserId:           e.UserId,
		SourceDocumentId: e.SourceDocumentId,
		TargetDocumentId: e.TargetDocumentId,
		Score:            e.Score,
		Rank:             e.Rank,
		CreatedAt:        e.CreatedAt,
	}
}

func (m *RecommendationMapper) ToEntities(edges []*model.RecommendationEdge) []*entity.RecommendationEdge {
	entities := make([]*entity.RecommendationEdge, len(edges))
	for i, e := range edges {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *RecommendationMapper) ToModels(edges []*entity.RecommendationEdge) []*model.RecommendationEdge {
	models := make([]*model.RecommendationEdge, len(edges))
	for i, e := range edges {
		models[i] = m.ToModel(e)
	}
	return models
}
