package tcp

import (
	"context"

	"doc-analytics-be/internal/constant"
	"doc-analytics-be/internal/dto"
	"doc-analytics-be/internal/pkg/apperror"
	"doc-analytics-be/internal/pkg/logger"
	"doc-analytics-be/internal/service"
)

// Dispatcher routes a decoded request to the service owning its action and
// shapes the outcome into a wire response. Unknown actions never reach a
// service.
type Dispatcher struct {
	analysisService service.IAnalysisService
	resultService   service.IResultService
	log             logger.ILogger
}

func NewDispatcher(
	analysisService service.IAnalysisService,
	resultService service.IResultService,
	log logger.ILogger,
) *Dispatcher {
	return &Dispatcher{
		analysisService: analysisService,
		resultService:   resultService,
		log:             log,
	}
}

func (d *Dispatcher) Handle(ctx context.Context, req *Request) *Response {
	if req.Action.IsPipelineAction() {
		d.log.Info("tcp", "Pipeline run requested", map[string]interface{}{
			"action":     string(req.Action),
			"request_id": req.RequestId,
		})
	}
	result, err := d.dispatch(ctx, req)
	if err != nil {
		d.log.Warn("tcp", "Request failed", map[string]interface{}{
			"action":     string(req.Action),
			"request_id": req.RequestId,
			"kind":       string(apperror.KindOf(err)),
			"error":      err.Error(),
		})
		return ErrorResponse(err.Error(), req.RequestId)
	}
	return SuccessResponse(result, req.RequestId)
}

func (d *Dispatcher) dispatch(ctx context.Context, req *Request) (interface{}, error) {
	switch req.Action {
	case constant.ActionCluster:
		var p dto.ClusterRequest
		if err := dto.DecodeData(req.Data, &p); err != nil {
			return nil, apperror.Wrap(apperror.KindInvalidRequest, "invalid CLUSTER parameters", err)
		}
		return d.analysisService.Cluster(ctx, &p)

	case constant.ActionTopics:
		var p dto.TopicsRequest
		if err := dto.DecodeData(req.Data, &p); err != nil {
			return nil, apperror.Wrap(apperror.KindInvalidRequest, "invalid TOPICS parameters", err)
		}
		return d.analysisService.Topics(ctx, &p)

	case constant.ActionRecommend:
		var p dto.RecommendRequest
		if err := dto.DecodeData(req.Data, &p); err != nil {
			return nil, apperror.Wrap(apperror.KindInvalidRequest, "invalid RECOMMEND parameters", err)
		}
		return d.analysisService.Recommend(ctx, &p)

	case constant.ActionVisualize:
		var p dto.VisualizeRequest
		if err := dto.DecodeData(req.Data, &p); err != nil {
			return nil, apperror.Wrap(apperror.KindInvalidRequest, "invalid VISUALIZE parameters", err)
		}
		return d.analysisService.Visualize(ctx, &p)

	case constant.ActionGetClusters:
		var p dto.GetClustersRequest
		if err := dto.DecodeData(req.Data, &p); err != nil {
			return nil, apperror.Wrap(apperror.KindInvalidRequest, "invalid GET_CLUSTERS parameters", err)
		}
		return d.resultService.GetClusters(ctx, &p)

	case constant.ActionGetTopics:
		var p dto.GetTopicsRequest
		if err := dto.DecodeData(req.Data, &p); err != nil {
			return nil, apperror.Wrap(apperror.KindInvalidRequest, "invalid GET_TOPICS parameters", err)
		}
		return d.resultService.GetTopics(ctx, &p)

	case constant.ActionGetRecommendations:
		var p dto.GetRecommendationsRequest
		if err := dto.DecodeData(req.Data, &p); err != nil {
			return nil, apperror.Wrap(apperror.KindInvalidRequest, "invalid GET_RECOMMENDATIONS parameters", err)
		}
		return d.resultService.GetRecommendations(ctx, &p)

	case constant.ActionGetVisualization:
		var p dto.GetVisualizationRequest
		if err := dto.DecodeData(req.Data, &p); err != nil {
			return nil, apperror.Wrap(apperror.KindInvalidRequest, "invalid GET_VISUALIZATION parameters", err)
		}
		return d.resultService.GetVisualization(ctx, &p)

	case constant.ActionPing:
		return d.resultService.Ping(ctx), nil

	case constant.ActionStatus:
		return d.resultService.Status(ctx), nil

	default:
		return nil, apperror.Newf(apperror.KindUnknownAction, "unknown action %q", string(req.Action))
	}
}
