package service

import (
	"context"
	"fmt"

	"doc-analytics-be/internal/config"
	"doc-analytics-be/internal/dto"
	"doc-analytics-be/internal/pkg/apperror"
	"doc-analytics-be/internal/pkg/logger"
	"doc-analytics-be/internal/repository/unitofwork"

	"github.com/patrickmn/go-cache"
)

const serviceVersion = "1.0.0"

// IResultService serves the read side: persisted artifacts of previous runs
// plus the health probes. It never runs a pipeline.
type IResultService interface {
	GetClusters(ctx context.Context, req *dto.GetClustersRequest) (*dto.GetClustersResponse, error)
	GetTopics(ctx context.Context, req *dto.GetTopicsRequest) (*dto.GetTopicsResponse, error)
	GetRecommendations(ctx context.Context, req *dto.GetRecommendationsRequest) (*dto.GetRecommendationsResponse, error)
	GetVisualization(ctx context.Context, req *dto.GetVisualizationRequest) (*dto.GetVisualizationResponse, error)
	Ping(ctx context.Context) *dto.PingResponse
	Status(ctx context.Context) *dto.StatusResponse
}

type resultService struct {
	uowFactory  unitofwork.RepositoryFactory
	resultCache *cache.Cache
	cfg         config.AnalysisConfig
	log         logger.ILogger
}

func NewResultService(
	uowFactory unitofwork.RepositoryFactory,
	resultCache *cache.Cache,
	cfg config.AnalysisConfig,
	log logger.ILogger,
) IResultService {
	return &resultService{
		uowFactory:  uowFactory,
		resultCache: resultCache,
		cfg:         cfg,
		log:         log,
	}
}

func recommendationCacheKey(userId, documentId string) string {
	return fmt.Sprintf("rec:%s:%s", userId, documentId)
}

func (s *resultService) GetClusters(ctx context.Context, req *dto.GetClustersRequest) (*dto.GetClustersResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	clusters, err := uow.ClusterRepository().FindByUser(ctx, req.UserId)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistenceFailure, "load clusters", err)
	}
	assignments, err := uow.ClusterRepository().FindAssignmentsByUser(ctx, req.UserId)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistenceFailure, "load cluster assignments", err)
	}

	resp := &dto.GetClustersResponse{
		UserId:      req.UserId,
		Clusters:    make([]dto.ClusterInfo, 0, len(clusters)),
		Assignments: make([]dto.AssignmentInfo, 0, len(assignments)),
	}
	for _, c := range clusters {
		resp.Clusters = append(resp.Clusters, dto.ClusterInfo{
			ClusterId: c.ClusterId,
			Label:     c.Label,
			Size:      c.Size,
			Keywords:  c.Keywords,
		})
	}
	for _, a := range assignments {
		resp.Assignments = append(resp.Assignments, dto.AssignmentInfo{
			DocumentId:  a.DocumentId,
			ClusterId:   a.ClusterId,
			Probability: a.Probability,
			IsOutlier:   a.IsOutlier,
		})
	}
	return resp, nil
}

func (s *resultService) GetTopics(ctx context.Context, req *dto.GetTopicsRequest) (*dto.GetTopicsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	topics, err := uow.TopicRepository().FindByUser(ctx, req.UserId)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistenceFailure, "load topics", err)
	}
	assignments, err := uow.TopicRepository().FindAssignmentsByUser(ctx, req.UserId)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistenceFailure, "load topic assignments", err)
	}

	resp := &dto.GetTopicsResponse{
		UserId:      req.UserId,
		Topics:      make([]dto.TopicInfo, 0, len(topics)),
		Assignments: make([]dto.TopicAssignmentInfo, 0, len(assignments)),
	}
	for _, t := range topics {
		resp.Topics = append(resp.Topics, dto.TopicInfo{
			TopicId:       t.TopicId,
			Label:         t.Label,
			Keywords:      t.Keywords,
			DocumentCount: t.DocumentCount,
		})
	}
	for _, a := range assignments {
		resp.Assignments = append(resp.Assignments, dto.TopicAssignmentInfo{
			DocumentId: a.DocumentId,
			TopicId:    a.TopicId,
		})
	}
	return resp, nil
}

// GetRecommendations serves persisted edges when a RECOMMEND run exists,
// otherwise it ranks live against the vector store. Either result is cached
// until the TTL expires or a new run invalidates it.
func (s *resultService) GetRecommendations(ctx context.Context, req *dto.GetRecommendationsRequest) (*dto.GetRecommendationsResponse, error) {
	key := recommendationCacheKey(req.UserId, req.DocumentId)
	if s.resultCache != nil {
		if hit, ok := s.resultCache.Get(key); ok {
			if cached, ok := hit.(*dto.GetRecommendationsResponse); ok {
				out := *cached
				out.Cached = true
				return &out, nil
			}
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	edges, err := uow.RecommendationRepository().FindBySourceDocument(ctx, req.UserId, req.DocumentId)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistenceFailure, "load recommendations", err)
	}

	resp := &dto.GetRecommendationsResponse{
		UserId:          req.UserId,
		DocumentId:      req.DocumentId,
		Recommendations: make([]dto.RecommendationInfo, 0, len(edges)),
	}
	for _, e := range edges {
		resp.Recommendations = append(resp.Recommendations, dto.RecommendationInfo{
			DocumentId:      e.TargetDocumentId,
			SimilarityScore: e.Score,
			Rank:            e.Rank,
		})
	}

	if len(edges) == 0 {
		// No committed run for this source document; rank in the database.
		live, err := s.liveRecommendations(ctx, uow, req)
		if err != nil {
			return nil, err
		}
		resp.Recommendations = live
	}

	if s.resultCache != nil {
		s.resultCache.Set(key, resp, cache.DefaultExpiration)
	}
	return resp, nil
}

func (s *resultService) liveRecommendations(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.GetRecommendationsRequest) ([]dto.RecommendationInfo, error) {
	chunks, err := uow.EmbeddingRepository().FindByDocument(ctx, req.UserId, req.DocumentId)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistenceFailure, "load source document", err)
	}
	if len(chunks) == 0 {
		return nil, apperror.Newf(apperror.KindNotFound, "document %s not found for user %s", req.DocumentId, req.UserId)
	}

	dim := len(chunks[0].Embedding)
	sum := make([]float64, dim)
	for _, c := range chunks {
		for i, v := range c.Embedding {
			if i < dim {
				sum[i] += float64(v)
			}
		}
	}
	query := make([]float32, dim)
	for i := range sum {
		query[i] = float32(sum[i] / float64(len(chunks)))
	}

	scored, err := uow.EmbeddingRepository().SearchSimilar(ctx, req.UserId, req.DocumentId, query, s.cfg.TopK, s.cfg.SimilarityThreshold)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistenceFailure, "similarity search", err)
	}

	out := make([]dto.RecommendationInfo, 0, len(scored))
	for i, sd := range scored {
		out = append(out, dto.RecommendationInfo{
			DocumentId:      sd.DocumentId,
			SimilarityScore: sd.Similarity,
			Rank:            i + 1,
		})
	}
	return out, nil
}

func (s *resultService) GetVisualization(ctx context.Context, req *dto.GetVisualizationRequest) (*dto.GetVisualizationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	points, err := uow.VisualizationRepository().FindByUser(ctx, req.UserId)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistenceFailure, "load visualization points", err)
	}

	resp := &dto.GetVisualizationResponse{
		UserId: req.UserId,
		Points: make([]dto.VisualizationPointInfo, 0, len(points)),
	}
	for _, p := range points {
		resp.Points = append(resp.Points, dto.VisualizationPointInfo{
			DocumentId: p.DocumentId,
			X:          p.X,
			Y:          p.Y,
			ClusterId:  p.ClusterId,
		})
	}
	return resp, nil
}

func (s *resultService) Ping(ctx context.Context) *dto.PingResponse {
	return &dto.PingResponse{Message: "pong", Status: "healthy"}
}

func (s *resultService) Status(ctx context.Context) *dto.StatusResponse {
	return &dto.StatusResponse{
		Service: "doc-analytics-be",
		Version: serviceVersion,
		Status:  "running",
		Features: []string{
			"clustering",
			"topic_modeling",
			"recommendations",
			"visualization",
		},
	}
}
