package dto

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DecodeData unmarshals an action's raw "data" payload into its typed
// request struct and validates it. Validation happens here, at the
// deserialization boundary, before anything reaches the pipeline.
func DecodeData(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode request data: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validate request data: %w", err)
	}
	return nil
}

// ---- Pipeline action parameters ----

type ClusterRequest struct {
	UserId         string `json:"user_id" validate:"required"`
	MinClusterSize int    `json:"min_cluster_size" validate:"omitempty,min=2"`
}

type TopicsRequest struct {
	UserId    string `json:"user_id" validate:"required"`
	NumTopics int    `json:"num_topics" validate:"omitempty,min=1"`
}

type RecommendRequest struct {
	UserId     string `json:"user_id" validate:"required"`
	DocumentId string `json:"document_id" validate:"required"`
	TopK       int    `json:"top_k" validate:"omitempty,min=1,max=50"`
}

type VisualizeRequest struct {
	UserId string `json:"user_id" validate:"required"`
}

// ---- Read action parameters ----

type GetClustersRequest struct {
	UserId string `json:"user_id" validate:"required"`
}

type GetTopicsRequest struct {
	UserId string `json:"user_id" validate:"required"`
}

type GetRecommendationsRequest struct {
	UserId     string `json:"user_id" validate:"required"`
	DocumentId string `json:"document_id" validate:"required"`
}

type GetVisualizationRequest struct {
	UserId string `json:"user_id" validate:"required"`
}

// ---- Result payloads ----

type ClusterInfo struct {
	ClusterId int      `json:"cluster_id"`
	Label     string   `json:"label"`
	Size      int      `json:"size"`
	Keywords  []string `json:"keywords"`
}

type ClusterRunResponse struct {
	UserId            string        `json:"user_id"`
	RunId             string        `json:"run_id"`
	TotalDocuments    int           `json:"total_documents"`
	NumClusters       int           `json:"num_clusters"`
	NumOutliers       int           `json:"num_outliers"`
	OutlierPercentage float64       `json:"outlier_percentage"`
	Clusters          []ClusterInfo `json:"clusters"`
}

type TopicInfo struct {
	TopicId       int      `json:"topic_id"`
	Label         string   `json:"label"`
	Keywords      []string `json:"keywords"`
	DocumentCount int      `json:"document_count"`
}

type TopicsRunResponse struct {
	UserId         string      `json:"user_id"`
	RunId          string      `json:"run_id"`
	TotalDocuments int         `json:"total_documents"`
	NumTopics      int         `json:"num_topics"`
	Topics         []TopicInfo `json:"topics"`
}

type RecommendationInfo struct {
	DocumentId      string  `json:"document_id"`
	SimilarityScore float64 `json:"similarity_score"`
	Rank            int     `json:"rank"`
}

type RecommendRunResponse struct {
	UserId          string               `json:"user_id"`
	RunId           string               `json:"run_id"`
	DocumentId      string               `json:"document_id"`
	Recommendations []RecommendationInfo `json:"recommendations"`
}

type VisualizationPointInfo struct {
	DocumentId string  `json:"document_id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	ClusterId  int     `json:"cluster_id"`
}

type VisualizeRunResponse struct {
	UserId         string                   `json:"user_id"`
	RunId          string                   `json:"run_id"`
	TotalDocuments int                      `json:"total_documents"`
	Points         []VisualizationPointInfo `json:"points"`
}

type AssignmentInfo struct {
	DocumentId  string  `json:"document_id"`
	ClusterId   int     `json:"cluster_id"`
	Probability float64 `json:"probability"`
	IsOutlier   bool    `json:"is_outlier"`
}

type GetClustersResponse struct {
	UserId      string           `json:"user_id"`
	Clusters    []ClusterInfo    `json:"clusters"`
	Assignments []AssignmentInfo `json:"assignments"`
}

type TopicAssignmentInfo struct {
	DocumentId string `json:"document_id"`
	TopicId    int    `json:"topic_id"`
}

type GetTopicsResponse struct {
	UserId      string                `json:"user_id"`
	Topics      []TopicInfo           `json:"topics"`
	Assignments []TopicAssignmentInfo `json:"assignments"`
}

type GetRecommendationsResponse struct {
	UserId          string               `json:"user_id"`
	DocumentId      string               `json:"document_id"`
	Recommendations []RecommendationInfo `json:"recommendations"`
	Cached          bool                 `json:"cached"`
}

type GetVisualizationResponse struct {
	UserId string                   `json:"user_id"`
	Points []VisualizationPointInfo `json:"points"`
}

type PingResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type StatusResponse struct {
	Service  string   `json:"service"`
	Version  string   `json:"version"`
	Status   string   `json:"status"`
	Features []string `json:"features"`
}

// RunEventMessage is the payload published on the in-process bus when a
// pipeline run finishes, and forwarded to NATS by the consumer service.
type RunEventMessage struct {
	RunId      string `json:"run_id"`
	UserId     string `json:"user_id"`
	Action     string `json:"action"`
	Status     string `json:"status"`
	Kind       string `json:"kind,omitempty"`
	Reason     string `json:"reason,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}
