package service

import (
	"context"
	"encoding/json"
	"time"

	"doc-analytics-be/internal/constant"
	"doc-analytics-be/internal/dto"
	"doc-analytics-be/internal/pipeline"
	"doc-analytics-be/internal/pkg/apperror"
	"doc-analytics-be/internal/pkg/logger"

	"github.com/patrickmn/go-cache"
)

// IAnalysisService runs the pipeline actions. One method per action; each
// call is synchronous from the caller's point of view and publishes a run
// event once the pipeline settles.
type IAnalysisService interface {
	Cluster(ctx context.Context, req *dto.ClusterRequest) (*dto.ClusterRunResponse, error)
	Topics(ctx context.Context, req *dto.TopicsRequest) (*dto.TopicsRunResponse, error)
	Recommend(ctx context.Context, req *dto.RecommendRequest) (*dto.RecommendRunResponse, error)
	Visualize(ctx context.Context, req *dto.VisualizeRequest) (*dto.VisualizeRunResponse, error)
}

type analysisService struct {
	orchestrator     *pipeline.Orchestrator
	publisherService IPublisherService
	resultCache      *cache.Cache
	log              logger.ILogger
}

func NewAnalysisService(
	orchestrator *pipeline.Orchestrator,
	publisherService IPublisherService,
	resultCache *cache.Cache,
	log logger.ILogger,
) IAnalysisService {
	return &analysisService{
		orchestrator:     orchestrator,
		publisherService: publisherService,
		resultCache:      resultCache,
		log:              log,
	}
}

func (s *analysisService) Cluster(ctx context.Context, req *dto.ClusterRequest) (*dto.ClusterRunResponse, error) {
	start := time.Now()
	resp, err := s.orchestrator.RunCluster(ctx, req)
	if err != nil {
		s.publishRunEvent(ctx, "", req.UserId, constant.ActionCluster, start, err)
		return nil, err
	}
	s.publishRunEvent(ctx, resp.RunId, req.UserId, constant.ActionCluster, start, nil)
	return resp, nil
}

func (s *analysisService) Topics(ctx context.Context, req *dto.TopicsRequest) (*dto.TopicsRunResponse, error) {
	start := time.Now()
	resp, err := s.orchestrator.RunTopics(ctx, req)
	if err != nil {
		s.publishRunEvent(ctx, "", req.UserId, constant.ActionTopics, start, err)
		return nil, err
	}
	s.publishRunEvent(ctx, resp.RunId, req.UserId, constant.ActionTopics, start, nil)
	return resp, nil
}

func (s *analysisService) Recommend(ctx context.Context, req *dto.RecommendRequest) (*dto.RecommendRunResponse, error) {
	start := time.Now()
	resp, err := s.orchestrator.RunRecommend(ctx, req)
	if err != nil {
		s.publishRunEvent(ctx, "", req.UserId, constant.ActionRecommend, start, err)
		return nil, err
	}

	// The committed edges supersede whatever the read side cached.
	if s.resultCache != nil {
		s.resultCache.Delete(recommendationCacheKey(req.UserId, req.DocumentId))
	}

	s.publishRunEvent(ctx, resp.RunId, req.UserId, constant.ActionRecommend, start, nil)
	return resp, nil
}

func (s *analysisService) Visualize(ctx context.Context, req *dto.VisualizeRequest) (*dto.VisualizeRunResponse, error) {
	start := time.Now()
	resp, err := s.orchestrator.RunVisualize(ctx, req)
	if err != nil {
		s.publishRunEvent(ctx, "", req.UserId, constant.ActionVisualize, start, err)
		return nil, err
	}
	s.publishRunEvent(ctx, resp.RunId, req.UserId, constant.ActionVisualize, start, nil)
	return resp, nil
}

// publishRunEvent is auxiliary; a broken bus is logged and otherwise ignored.
func (s *analysisService) publishRunEvent(ctx context.Context, runId, userId string, action constant.Action, start time.Time, runErr error) {
	if s.publisherService == nil {
		return
	}

	msg := dto.RunEventMessage{
		RunId:      runId,
		UserId:     userId,
		Action:     string(action),
		Status:     "completed",
		DurationMs: time.Since(start).Milliseconds(),
	}
	if runErr != nil {
		msg.Status = "failed"
		msg.Kind = string(apperror.KindOf(runErr))
		msg.Reason = runErr.Error()
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Warn("analysis_service", "Failed to marshal run event", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("analysis_service", "Failed to publish run event", map[string]interface{}{"error": err.Error()})
	}
}
