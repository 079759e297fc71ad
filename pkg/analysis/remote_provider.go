package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteProvider calls an external algorithm service over HTTP. The service
// owns the actual UMAP/HDBSCAN/BERTopic-style math; this adapter only moves
// vectors in and results out.
type RemoteProvider struct {
	BaseURL string
	http    *http.Client
}

var _ Reducer = (*RemoteProvider)(nil)
var _ Clusterer = (*RemoteProvider)(nil)
var _ TopicExtractor = (*RemoteProvider)(nil)

func NewRemoteProvider(baseURL string) *RemoteProvider {
	if baseURL == "" {
		baseURL = "http://localhost:8001"
	}
	return &RemoteProvider{
		BaseURL: baseURL,
		http:    &http.Client{Timeout: 90 * time.Second},
	}
}

type reduceRequest struct {
	Vectors   []DocumentVector `json:"vectors"`
	TargetDim int              `json:"target_dim"`
	Metric    string           `json:"metric"`
}

type reduceResponse struct {
	Vectors []DocumentVector `json:"vectors"`
}

func (p *RemoteProvider) ReduceDimensions(ctx context.Context, vectors []DocumentVector, targetDim int, metric string) ([]DocumentVector, error) {
	var resp reduceResponse
	err := p.post(ctx, "/reduce", reduceRequest{Vectors: vectors, TargetDim: targetDim, Metric: metric}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Vectors) != len(vectors) {
		return nil, fmt.Errorf("reduce returned %d vectors for %d inputs", len(resp.Vectors), len(vectors))
	}
	return resp.Vectors, nil
}

type clusterRequest struct {
	Vectors      []DocumentVector `json:"vectors"`
	MinGroupSize int              `json:"min_group_size"`
	MinSamples   int              `json:"min_samples"`
}

type clusterResponse struct {
	Assignments []Assignment `json:"assignments"`
}

func (p *RemoteProvider) Cluster(ctx context.Context, vectors []DocumentVector, minGroupSize, minSamples int) ([]Assignment, error) {
	var resp clusterResponse
	err := p.post(ctx, "/cluster", clusterRequest{Vectors: vectors, MinGroupSize: minGroupSize, MinSamples: minSamples}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Assignments, nil
}

type topicsRequest struct {
	Documents    []DocumentText   `json:"documents"`
	Vectors      []DocumentVector `json:"vectors"`
	MinGroupSize int              `json:"min_group_size"`
	NumTopics    int              `json:"num_topics,omitempty"`
}

type topicsResponse struct {
	Topics []TopicGroup `json:"topics"`
}

func (p *RemoteProvider) ExtractTopics(ctx context.Context, documents []DocumentText, vectors []DocumentVector, minGroupSize, numTopics int) ([]TopicGroup, error) {
	var resp topicsResponse
	err := p.post(ctx, "/topics", topicsRequest{Documents: documents, Vectors: vectors, MinGroupSize: minGroupSize, NumTopics: numTopics}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Topics, nil
}

func (p *RemoteProvider) post(ctx context.Context, path string, payload any, v any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("algorithm service %s: %s", path, string(bodyBytes))
	}

	return json.Unmarshal(bodyBytes, v)
}
